package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/lixenwraith/gridlines/config"
	"github.com/lixenwraith/gridlines/logger"
	"github.com/lixenwraith/gridlines/render/raster"
	"github.com/lixenwraith/gridlines/scene"
)

// runFramebuffer animates onto a framebuffer device with the autopilot as pointer,
// until interrupted
func runFramebuffer(cfg config.Config, log *logger.Logger, path string) error {
	fb, err := raster.OpenFramebuffer(path)
	if err != nil {
		return err
	}
	defer fb.Close()

	bounds := fb.Bounds()
	log.Infow("framebuffer open", "path", path, "width", bounds.Dx(), "height", bounds.Dy())

	surface := raster.New(bounds.Dx(), bounds.Dy())
	surface.Attach(fb)

	opts, cleanup := sceneOptions(cfg, log)
	defer cleanup()
	sc, err := scene.New(cfg, surface, bounds.Dx(), bounds.Dy(), opts...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return animate(ctx, sc, cfg.FrameInterval(), &autopilot{
		width:  float64(bounds.Dx()) / cfg.PixelRatio,
		height: float64(bounds.Dy()) / cfg.PixelRatio,
	})
}

// animate draws a frame per tick, feeding pilot positions as pointer moves, until ctx ends
func animate(ctx context.Context, sc *scene.Scene, interval time.Duration, pilot *autopilot) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if pilot != nil {
				p := pilot.next()
				sc.HandlePointerMove(p.X, p.Y)
			}
			if err := sc.DrawFrame(); err != nil {
				return err
			}
		}
	}
}
