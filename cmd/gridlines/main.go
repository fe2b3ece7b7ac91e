// Command gridlines animates a grid with lines that spawn under the pointer and wander
// along the grid lines. It runs in a terminal, on a Linux framebuffer, or headless to
// write a PNG or SVG snapshot.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/lixenwraith/gridlines/audio"
	"github.com/lixenwraith/gridlines/config"
	"github.com/lixenwraith/gridlines/engine"
	"github.com/lixenwraith/gridlines/logger"
	"github.com/lixenwraith/gridlines/parameter"
	"github.com/lixenwraith/gridlines/scene"
	"github.com/lixenwraith/gridlines/terminal"
)

var (
	configFlag   = flag.String("config", "", "HCL config file")
	colorFlag    = flag.String("color", "auto", "Color mode: auto, truecolor, 256")
	debugFlag    = flag.Bool("debug", false, "Log to logs/gridlines.log at debug level")
	demoFlag     = flag.Bool("demo", false, "Drive the pointer automatically")
	snapshotFlag = flag.String("snapshot", "", "Render headless to a .png or .svg file and exit")
	framesFlag   = flag.Int("frames", 30, "Frames to advance before writing the snapshot")
	widthFlag    = flag.Int("width", 800, "Snapshot width in device pixels")
	heightFlag   = flag.Int("height", 600, "Snapshot height in device pixels")
	fbFlag       = flag.String("fb", "", "Render to a framebuffer device such as /dev/fb0")
	spawnFlag    points
)

func init() {
	flag.Var(&spawnFlag, "spawn", "Pointer position x,y in CSS pixels for snapshots, repeatable")
}

func main() {
	// Restore the terminal before printing anything if the loop panics
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mGRIDLINES CRASHED: %v\x1b[0m\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "gridlines: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configFlag)
	if err != nil {
		return err
	}

	log, err := logger.New(logOptions(cfg, *debugFlag))
	if err != nil {
		return err
	}
	defer log.Close()
	log.Infow("starting", "config", *configFlag, "snapshot", *snapshotFlag, "fb", *fbFlag)

	switch {
	case *snapshotFlag != "":
		return runSnapshot(cfg, log, snapshotOptions{
			Path:   *snapshotFlag,
			Frames: *framesFlag,
			Width:  *widthFlag,
			Height: *heightFlag,
			Spawns: spawnFlag,
		})
	case *fbFlag != "":
		return runFramebuffer(cfg, log, *fbFlag)
	default:
		return runTerminal(cfg, log, terminal.ParseColorMode(*colorFlag), *demoFlag)
	}
}

// logOptions enables file logging for -debug or a configured log file
func logOptions(cfg config.Config, debug bool) logger.Options {
	opts := logger.Options{
		Enabled: debug || cfg.LogFile != "",
		File:    cfg.LogFile,
		Level:   cfg.LogLevel,
	}
	if debug {
		opts.Level = "debug"
	}
	return opts
}

// spawnTone maps a spawn heading to a cue pitch
func spawnTone(d engine.Direction) float64 {
	steps := map[engine.Direction]float64{
		engine.DirUp:    1,
		engine.DirRight: 1.5,
		engine.DirDown:  2,
		engine.DirLeft:  3,
	}
	return parameter.SpawnToneBase * steps[d]
}

// sceneOptions wires the logger and, when enabled, the audio cue.
// The returned cleanup releases the speaker.
func sceneOptions(cfg config.Config, log *logger.Logger) ([]scene.Option, func()) {
	opts := []scene.Option{scene.WithLogger(log)}
	if !cfg.Audio {
		return opts, func() {}
	}

	player := audio.NewPlayer(parameter.DefaultVolume)
	if err := player.Initialize(); err != nil {
		log.Warnw("audio unavailable, continuing without sound", "error", err)
		return opts, func() {}
	}
	opts = append(opts, scene.WithOnSpawn(func(l *engine.Line) {
		player.PlaySpawn(spawnTone(l.InitialDirection))
	}))
	return opts, player.Cleanup
}
