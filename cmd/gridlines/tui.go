package main

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/lixenwraith/gridlines/config"
	"github.com/lixenwraith/gridlines/logger"
	"github.com/lixenwraith/gridlines/parameter"
	"github.com/lixenwraith/gridlines/scene"
	"github.com/lixenwraith/gridlines/terminal"
)

var errNotTerminal = errors.New("stdout is not a terminal; use -snapshot or -fb for headless output")

// app routes terminal events to the scene
type app struct {
	cfg    config.Config
	log    *logger.Logger
	canvas *terminal.Canvas
	scene  *scene.Scene
	pilot  *autopilot
}

func newApp(cfg config.Config, log *logger.Logger, canvas *terminal.Canvas, opts ...scene.Option) (*app, error) {
	w, h := canvas.PixelSize()
	sc, err := scene.New(cfg, canvas, w, h, opts...)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, log: log, canvas: canvas, scene: sc}, nil
}

// handleEvent applies one terminal event, returning false to quit
func (a *app) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case ' ':
				a.scene.SetPaused(!a.scene.Paused())
				a.log.Debugw("pause toggled", "paused", a.scene.Paused())
			case 'c', 'C':
				a.scene.Clear()
			}
		}

	case *tcell.EventMouse:
		// Device pixels back to CSS pixels, the unit pointer offsets arrive in
		col, row := ev.Position()
		x, y := a.canvas.PointerPixel(col, row)
		a.scene.HandlePointerMove(x/a.cfg.PixelRatio, y/a.cfg.PixelRatio)

	case *tcell.EventResize:
		a.canvas.Resize(ev.Size())
		w, h := a.canvas.PixelSize()
		if err := a.scene.Resize(w, h); err != nil {
			a.log.Errorw("resize failed", "error", err)
		}
		if a.pilot != nil {
			a.pilot.width, a.pilot.height = float64(w)/a.cfg.PixelRatio, float64(h)/a.cfg.PixelRatio
		}
	}
	return true
}

// tick advances the autopilot, if any, and draws one frame
func (a *app) tick() error {
	if a.pilot != nil && !a.scene.Paused() {
		p := a.pilot.next()
		a.scene.HandlePointerMove(p.X, p.Y)
	}
	return a.scene.DrawFrame()
}

// runTerminal owns the screen until the user quits
func runTerminal(cfg config.Config, log *logger.Logger, mode terminal.ColorMode, demo bool) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNotTerminal
	}

	screen, err := terminal.Open(mode)
	if err != nil {
		return err
	}
	defer screen.Close()

	canvas := terminal.NewCanvas(screen, mode, parameter.DefaultCellPxW, parameter.DefaultCellPxH)
	opts, cleanup := sceneOptions(cfg, log)
	defer cleanup()

	a, err := newApp(cfg, log, canvas, opts...)
	if err != nil {
		return err
	}
	if demo {
		w, h := canvas.PixelSize()
		a.pilot = &autopilot{width: float64(w) / cfg.PixelRatio, height: float64(h) / cfg.PixelRatio}
	}

	ticker := time.NewTicker(cfg.FrameInterval())
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, parameter.EventQueueSize)
	// Input polling runs on its own goroutine as PollEvent blocks
	go func() {
		defer func() {
			if r := recover(); r != nil {
				terminal.EmergencyReset(os.Stdout)
				fmt.Fprintf(os.Stderr, "\r\n\x1b[31mEVENT POLLER CRASHED: %v\x1b[0m\r\n", r)
				fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
				os.Exit(1)
			}
		}()

		for {
			ev := screen.PollEvent()
			// nil after Fini
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !a.handleEvent(ev) {
				log.Infow("quit", "frames", a.scene.Frame(),
					"spawns", a.scene.Spawned(), "rejected_spawns", a.scene.Rejected())
				return nil
			}
		case <-ticker.C:
			if err := a.tick(); err != nil {
				return err
			}
		}
	}
}
