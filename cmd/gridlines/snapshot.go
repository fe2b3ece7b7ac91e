package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/lixenwraith/gridlines/config"
	"github.com/lixenwraith/gridlines/logger"
	"github.com/lixenwraith/gridlines/render"
	"github.com/lixenwraith/gridlines/render/raster"
	"github.com/lixenwraith/gridlines/render/svg"
	"github.com/lixenwraith/gridlines/scene"
)

type snapshotOptions struct {
	Path          string
	Frames        int
	Width, Height int
	Spawns        []point // empty drives the autopilot
}

// stepClock advances a fixed step on every read so a headless run never trips the spawn gate
type stepClock struct {
	t    time.Time
	step time.Duration
}

func (c *stepClock) now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

// runSnapshot renders opts.Frames frames without a display and writes the last one
func runSnapshot(cfg config.Config, log *logger.Logger, opts snapshotOptions) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("snapshot: size %dx%d must be positive", opts.Width, opts.Height)
	}
	if opts.Frames < 0 {
		return fmt.Errorf("snapshot: frames must not be negative")
	}

	var (
		surface render.Surface
		write   func() error
	)
	switch ext := strings.ToLower(filepath.Ext(opts.Path)); ext {
	case ".png":
		s := raster.New(opts.Width, opts.Height)
		surface, write = s, func() error { return s.WritePNG(opts.Path) }
	case ".svg":
		s := svg.New(opts.Width, opts.Height)
		surface, write = s, func() error { return s.WriteFile(opts.Path) }
	default:
		return fmt.Errorf("snapshot: unsupported format %q, want .png or .svg", ext)
	}

	clock := &stepClock{t: time.Unix(0, 0), step: max(cfg.SpawnInterval, cfg.FrameInterval())}
	sc, err := scene.New(cfg, surface, opts.Width, opts.Height,
		scene.WithLogger(log), scene.WithClock(clock.now))
	if err != nil {
		return err
	}

	for _, p := range opts.Spawns {
		sc.HandlePointerMove(p.X, p.Y)
	}
	pilot := &autopilot{
		width:  float64(opts.Width) / cfg.PixelRatio,
		height: float64(opts.Height) / cfg.PixelRatio,
	}
	for i := 0; i < opts.Frames; i++ {
		if len(opts.Spawns) == 0 {
			p := pilot.next()
			sc.HandlePointerMove(p.X, p.Y)
		}
		if err := sc.DrawFrame(); err != nil {
			return err
		}
	}
	// Zero frames draws the spawned lines without advancing them
	if opts.Frames == 0 {
		sc.SetPaused(true)
		if err := sc.DrawFrame(); err != nil {
			return err
		}
	}

	if err := write(); err != nil {
		return err
	}
	log.Infow("snapshot written", "path", opts.Path, "frames", sc.Frame(), "lines", len(sc.Lines()))
	return nil
}
