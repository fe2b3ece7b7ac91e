// Package engine owns the animated lines and advances them one step per frame.
//
// Lines move at a fixed speed along the grid, turn at random only on intersections,
// never reverse and never resume their spawn heading, and keep a bounded trail length.
package engine

import (
	"errors"
	"fmt"
	"sync"

	"github.com/lixenwraith/gridlines/grid"
	"github.com/lixenwraith/gridlines/render"
	"github.com/lixenwraith/gridlines/vmath"
)

// Config holds the engine parameters, fixed for the engine's lifetime
type Config struct {
	Speed      float64 // device pixels per step
	LineLength float64 // device pixels
	Palette    []render.RGBA

	// MaxLines caps the active set, oldest evicted first. 0 means unbounded.
	MaxLines int
	// EvictOffCanvas drops lines whose whole path has left the canvas
	EvictOffCanvas bool
}

// StepResult summarizes one Step
type StepResult struct {
	Advanced int
	Turns    int
	Evicted  int
}

// Engine owns the active lines.
// Spawn and Step may be called from different goroutines; Step works on a snapshot.
// Lines and Paths must not overlap Step: they copy fields that Step mutates unlocked.
type Engine struct {
	mu     sync.Mutex
	lines  []*Line
	grid   *grid.Grid
	rng    Rand
	nextID uint64

	speed   int64
	length  int64
	palette []render.RGBA

	maxLines       int
	evictOffCanvas bool
}

// Validation errors
var (
	ErrNoGrid       = errors.New("engine: grid is required")
	ErrNoRand       = errors.New("engine: random source is required")
	ErrEmptyPalette = errors.New("engine: palette is empty")
	ErrSpeed        = errors.New("engine: speed must be positive and divide the cell size")
	ErrLength       = errors.New("engine: line length must be positive")
)

// New creates an engine on g drawing randomness from rng
func New(cfg Config, g *grid.Grid, rng Rand) (*Engine, error) {
	if g == nil {
		return nil, ErrNoGrid
	}
	if rng == nil {
		return nil, ErrNoRand
	}
	if len(cfg.Palette) == 0 {
		return nil, ErrEmptyPalette
	}
	if cfg.LineLength <= 0 {
		return nil, ErrLength
	}
	speed := vmath.FromFloat(cfg.Speed)
	if err := CheckSpeed(speed, g.Cell()); err != nil {
		return nil, err
	}

	return &Engine{
		grid:           g,
		rng:            rng,
		speed:          speed,
		length:         vmath.FromFloat(cfg.LineLength),
		palette:        append([]render.RGBA(nil), cfg.Palette...),
		maxLines:       cfg.MaxLines,
		evictOffCanvas: cfg.EvictOffCanvas,
	}, nil
}

// CheckSpeed rejects fixed point speeds that would step over intersections
func CheckSpeed(speed, cell int64) error {
	if speed <= 0 || cell <= 0 || !vmath.IsMultiple(cell, speed) {
		return fmt.Errorf("%w: speed %v, cell %v", ErrSpeed, vmath.ToFloat(speed), vmath.ToFloat(cell))
	}
	return nil
}

// SetGrid swaps the lattice after a resize. Existing lines keep their positions.
func (e *Engine) SetGrid(g *grid.Grid) error {
	if g == nil {
		return ErrNoGrid
	}
	if err := CheckSpeed(e.speed, g.Cell()); err != nil {
		return err
	}
	e.mu.Lock()
	e.grid = g
	e.mu.Unlock()
	return nil
}

// Spawn creates a line at the intersection nearest to the pointer offset x, y
func (e *Engine) Spawn(x, y float64) *Line {
	e.mu.Lock()
	defer e.mu.Unlock()

	dir := ChooseDirection(e.rng)
	e.nextID++
	l := &Line{
		ID:               e.nextID,
		Head:             e.grid.NearestIntersection(x, y),
		CurrentDirection: dir,
		InitialDirection: dir,
		Color:            e.palette[e.rng.Intn(len(e.palette))],
	}

	if e.maxLines > 0 && len(e.lines) >= e.maxLines {
		drop := len(e.lines) - e.maxLines + 1
		clear(e.lines[:drop])
		e.lines = append(e.lines[:0], e.lines[drop:]...)
	}
	e.lines = append(e.lines, l)
	return l
}

// Advance moves one line by one step and reports whether it turned.
// Callers must not advance the same line concurrently.
func (e *Engine) Advance(l *Line) bool {
	e.mu.Lock()
	g := e.grid
	e.mu.Unlock()
	return e.advance(l, g)
}

func (e *Engine) advance(l *Line, g *grid.Grid) bool {
	turned := false
	if g.IsOnIntersection(l.Head) {
		// New waypoint, stored as a copy
		l.Trail = append(l.Trail, grid.Position{})
		copy(l.Trail[1:], l.Trail)
		l.Trail[0] = l.Head

		// The spawn intersection keeps the spawn heading for the first cell
		if l.Traveled > 0 {
			prev := l.CurrentDirection
			l.CurrentDirection = e.choose(l.InitialDirection, prev.Opposite())
			turned = l.CurrentDirection != prev
		}
	}

	dx, dy := l.CurrentDirection.Delta()
	l.Head = grid.Position{X: l.Head.X + dx*e.speed, Y: l.Head.Y + dy*e.speed}
	l.Traveled += e.speed

	e.truncate(l)
	return turned
}

// choose serializes access to the random source with Spawn
func (e *Engine) choose(excluding ...Direction) Direction {
	e.mu.Lock()
	defer e.mu.Unlock()
	return ChooseDirection(e.rng, excluding...)
}

// truncate cuts the trail so the path from the head is at most the line length.
// The cut point is synthesized on the segment that crosses the limit.
func (e *Engine) truncate(l *Line) {
	var acc int64
	prev := l.Head
	for i, p := range l.Trail {
		seg := manhattan(prev, p)
		if acc+seg > e.length {
			rem := e.length - acc
			if rem == 0 {
				l.Trail = l.Trail[:i]
				return
			}
			tail := prev
			if prev.X == p.X {
				tail.Y += vmath.Sign(p.Y-prev.Y) * rem
			} else {
				tail.X += vmath.Sign(p.X-prev.X) * rem
			}
			l.Trail = append(l.Trail[:i], tail)
			return
		}
		acc += seg
		prev = p
	}
}

// Step advances every line once. Lines spawned during the step wait for the next one.
func (e *Engine) Step() StepResult {
	e.mu.Lock()
	snapshot := append([]*Line(nil), e.lines...)
	g := e.grid
	e.mu.Unlock()

	var res StepResult
	for _, l := range snapshot {
		if e.advance(l, g) {
			res.Turns++
		}
		res.Advanced++
	}

	if e.evictOffCanvas {
		res.Evicted = e.evict(g)
	}
	return res
}

// evict removes lines with every point outside the canvas
func (e *Engine) evict(g *grid.Grid) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	kept := e.lines[:0]
	for _, l := range e.lines {
		if onCanvas(l, g) {
			kept = append(kept, l)
		}
	}
	n := len(e.lines) - len(kept)
	clear(e.lines[len(kept):])
	e.lines = kept
	return n
}

func onCanvas(l *Line, g *grid.Grid) bool {
	if g.Contains(l.Head) {
		return true
	}
	for _, p := range l.Trail {
		if g.Contains(p) {
			return true
		}
	}
	return false
}

// Lines returns deep copies of the active lines, oldest first
func (e *Engine) Lines() []*Line {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]*Line, len(e.lines))
	for i, l := range e.lines {
		out[i] = l.clone()
	}
	return out
}

// Paths returns the render paths of the active lines, oldest first
func (e *Engine) Paths() []render.Path {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]render.Path, len(e.lines))
	for i, l := range e.lines {
		out[i] = l.Path()
	}
	return out
}

// Len returns the number of active lines
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.lines)
}

// Clear removes every line
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	clear(e.lines)
	e.lines = e.lines[:0]
}
