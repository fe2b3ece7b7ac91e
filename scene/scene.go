// Package scene drives one animated grid: it owns the lattice and line engine, gates pointer
// spawns, and replays each frame onto a render surface.
package scene

import (
	"fmt"
	"time"

	"github.com/lixenwraith/gridlines/config"
	"github.com/lixenwraith/gridlines/engine"
	"github.com/lixenwraith/gridlines/grid"
	"github.com/lixenwraith/gridlines/logger"
	"github.com/lixenwraith/gridlines/parameter"
	"github.com/lixenwraith/gridlines/render"
	"github.com/lixenwraith/gridlines/stats"
	"github.com/lixenwraith/gridlines/throttle"
	"github.com/lixenwraith/gridlines/vmath"
)

// Option customizes a Scene
type Option func(*Scene)

// WithRand replaces the seeded random source
func WithRand(rng engine.Rand) Option {
	return func(s *Scene) { s.rng = rng }
}

// WithClock replaces time.Now for the spawn gate and frame stats
func WithClock(now func() time.Time) Option {
	return func(s *Scene) { s.now = now }
}

// WithLogger attaches a logger
func WithLogger(l *logger.Logger) Option {
	return func(s *Scene) { s.log = l }
}

// WithOnSpawn registers a callback for every accepted spawn
func WithOnSpawn(fn func(*engine.Line)) Option {
	return func(s *Scene) { s.onSpawn = fn }
}

// Scene is not safe for concurrent use; the frame loop owns it
type Scene struct {
	cfg     config.Config
	style   render.Style
	surface render.Surface

	grid   *grid.Grid
	engine *engine.Engine
	gate   *throttle.Gate
	frames *stats.Frames

	rng     engine.Rand
	now     func() time.Time
	log     *logger.Logger
	onSpawn func(*engine.Line)

	overlayColor render.RGBA
	frame        uint64
	paused       bool
}

// New builds a scene of width x height device pixels drawing onto surface
func New(cfg config.Config, surface render.Surface, width, height int, opts ...Option) (*Scene, error) {
	if surface == nil {
		return nil, fmt.Errorf("scene: surface is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Scene{
		cfg:          cfg,
		style:        cfg.Style(),
		surface:      surface,
		gate:         throttle.New(cfg.SpawnInterval),
		now:          time.Now,
		overlayColor: render.MustHex(parameter.OverlayTextColor),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	if s.rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = uint64(s.now().UnixNano())
		}
		s.rng = vmath.NewFastRand(seed)
	}
	if cfg.Stats {
		s.frames = stats.New(parameter.StatsWindow)
	}

	s.grid = grid.New(width, height, cfg.CellSize, cfg.PixelRatio)
	eng, err := engine.New(cfg.Engine(), s.grid, s.rng)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	s.engine = eng

	s.log.Infow("scene created",
		"width", width, "height", height,
		"cols", s.grid.Cols(), "rows", s.grid.Rows(),
		"cell", s.grid.CellSize(), "speed", cfg.Speed, "length", cfg.LineLength)
	return s, nil
}

// DrawFrame advances every line one step, unless paused, and draws the frame
func (s *Scene) DrawFrame() error {
	if !s.paused {
		res := s.engine.Step()
		if res.Evicted > 0 {
			s.log.Debugw("lines evicted", "count", res.Evicted, "active", s.engine.Len())
		}
	}

	cmds := render.Emit(s.grid, s.engine.Paths(), s.style)
	if s.frames != nil {
		s.frames.Tick(s.now())
		cmds = append(cmds, render.TextCommand(parameter.OverlayX, parameter.OverlayY, s.Overlay(), s.overlayColor))
	}
	s.frame++

	if err := render.Draw(s.surface, cmds); err != nil {
		return fmt.Errorf("frame %d: %w", s.frame, err)
	}
	return nil
}

// HandlePointerMove requests a spawn at the intersection nearest to x, y in CSS pixels.
// Calls arriving faster than the spawn interval are dropped; the result reports acceptance.
func (s *Scene) HandlePointerMove(x, y float64) bool {
	if !s.gate.AllowAt(s.now()) {
		return false
	}
	l := s.engine.Spawn(x, y)
	hx, hy := l.Head.Float()
	s.log.Debugw("line spawned", "id", l.ID, "x", hx, "y", hy, "direction", l.InitialDirection.String())
	if s.onSpawn != nil {
		s.onSpawn(l)
	}
	return true
}

// Resize rebuilds the lattice for a new canvas size. Lines keep their positions.
func (s *Scene) Resize(width, height int) error {
	g := grid.New(width, height, s.cfg.CellSize, s.cfg.PixelRatio)
	if err := s.engine.SetGrid(g); err != nil {
		return fmt.Errorf("scene: resize: %w", err)
	}
	s.grid = g
	s.log.Infow("scene resized", "width", width, "height", height, "cols", g.Cols(), "rows", g.Rows())
	return nil
}

// Overlay returns the stats line drawn in the corner
func (s *Scene) Overlay() string {
	summary := "-- fps"
	if s.frames != nil {
		summary = s.frames.Summary().String()
	}
	return fmt.Sprintf("%s  %d lines", summary, s.engine.Len())
}

// Clear drops every line
func (s *Scene) Clear() {
	s.engine.Clear()
	s.log.Debug("lines cleared")
}

// SetPaused stops or resumes motion. A paused scene still draws.
func (s *Scene) SetPaused(p bool) {
	s.paused = p
	if s.frames != nil {
		s.frames.Reset()
	}
}

// Paused reports whether motion is stopped
func (s *Scene) Paused() bool { return s.paused }

// Lines returns copies of the active lines, oldest first
func (s *Scene) Lines() []*engine.Line { return s.engine.Lines() }

// Grid returns the current lattice
func (s *Scene) Grid() *grid.Grid { return s.grid }

// Frame returns the number of frames drawn
func (s *Scene) Frame() uint64 { return s.frame }

// Spawned returns the number of pointer moves that spawned a line
func (s *Scene) Spawned() uint64 { return s.gate.Passed() }

// Rejected returns the number of pointer moves dropped by the spawn gate
func (s *Scene) Rejected() uint64 { return s.gate.Rejected() }
