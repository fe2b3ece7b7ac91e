package main

import (
	"bytes"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/gridlines/config"
	"github.com/lixenwraith/gridlines/engine"
	"github.com/lixenwraith/gridlines/grid"
	"github.com/lixenwraith/gridlines/logger"
	"github.com/lixenwraith/gridlines/parameter"
	"github.com/lixenwraith/gridlines/render"
	"github.com/lixenwraith/gridlines/terminal"
)

func TestPointsFlag(t *testing.T) {
	var p points
	require.NoError(t, p.Set("10,20"))
	require.NoError(t, p.Set(" 1.5 , 2 "))
	assert.Equal(t, points{{10, 20}, {1.5, 2}}, p)
	assert.Equal(t, "10,20 1.5,2", p.String())

	for _, bad := range []string{"10", "x,1", "1,y", ""} {
		assert.Error(t, p.Set(bad), bad)
	}
}

func TestAutopilotStaysInside(t *testing.T) {
	a := &autopilot{width: 300, height: 200}
	for i := 0; i < 1000; i++ {
		p := a.next()
		require.True(t, p.X >= 0 && p.X <= 300 && p.Y >= 0 && p.Y <= 200, "frame %d: %+v", i, p)
	}
}

func TestLogOptions(t *testing.T) {
	cfg := config.Default()
	assert.False(t, logOptions(cfg, false).Enabled)

	opts := logOptions(cfg, true)
	assert.True(t, opts.Enabled)
	assert.Equal(t, "debug", opts.Level)

	cfg.LogFile = "x.log"
	cfg.LogLevel = "warn"
	opts = logOptions(cfg, false)
	assert.True(t, opts.Enabled)
	assert.Equal(t, "x.log", opts.File)
	assert.Equal(t, "warn", opts.Level)
}

func TestSpawnTone(t *testing.T) {
	seen := map[float64]bool{}
	for _, d := range engine.Directions {
		f := spawnTone(d)
		assert.GreaterOrEqual(t, f, parameter.SpawnToneBase)
		seen[f] = true
	}
	assert.Len(t, seen, 4, "each heading should have its own pitch")
}

func TestSceneOptionsWithoutAudio(t *testing.T) {
	opts, cleanup := sceneOptions(config.Default(), logger.Nop())
	defer cleanup()
	assert.Len(t, opts, 1)
}

func newTestApp(t *testing.T) *app {
	t.Helper()
	canvas := terminal.NewCanvas(nil, terminal.ColorModeTrueColor, parameter.DefaultCellPxW, parameter.DefaultCellPxH)
	canvas.Resize(80, 24)
	a, err := newApp(config.Default(), logger.Nop(), canvas)
	require.NoError(t, err)
	return a
}

func TestHandleEventQuit(t *testing.T) {
	a := newTestApp(t)
	assert.False(t, a.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.False(t, a.handleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.False(t, a.handleEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)))
	assert.True(t, a.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)))
}

func TestHandleEventMouseSpawns(t *testing.T) {
	a := newTestApp(t)

	// Cell (4, 2) centre is pixel (45, 50), nearest intersection (40, 40)
	assert.True(t, a.handleEvent(tcell.NewEventMouse(4, 2, tcell.ButtonNone, tcell.ModNone)))
	lines := a.scene.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, grid.Pos(40, 40), lines[0].Head)

	require.NoError(t, a.tick())
	assert.Equal(t, uint64(1), a.scene.Frame())

	a.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'c', tcell.ModNone))
	assert.Empty(t, a.scene.Lines())
}

func TestHandleEventPause(t *testing.T) {
	a := newTestApp(t)
	a.handleEvent(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	assert.True(t, a.scene.Paused())
	a.handleEvent(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	assert.False(t, a.scene.Paused())
}

func TestHandleEventResize(t *testing.T) {
	a := newTestApp(t)
	a.pilot = &autopilot{width: 800, height: 480}
	assert.True(t, a.handleEvent(tcell.NewEventResize(40, 10)))

	cols, rows := a.canvas.Size()
	assert.Equal(t, 40, cols)
	assert.Equal(t, 10, rows)
	assert.Equal(t, 10, a.scene.Grid().Cols())
	assert.Equal(t, 5, a.scene.Grid().Rows())
	assert.Equal(t, 400.0, a.pilot.width)
	assert.Equal(t, 200.0, a.pilot.height)
}

func TestRunSnapshotPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	err := runSnapshot(config.Default(), logger.Nop(), snapshotOptions{
		Path: path, Frames: 10, Width: 200, Height: 120,
		Spawns: []point{{100, 40}, {20, 80}},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 120, img.Bounds().Dy())
}

func TestRunSnapshotZeroFramesKeepsSpawnPoint(t *testing.T) {
	cfg := config.Default()
	cfg.LinesColor = []render.RGBA{{R: 255, A: 255}}
	red := color.RGBA{R: 255, A: 255}

	// Red pixels half a cell step away from the spawn point in each heading
	reddened := func(frames int) int {
		path := filepath.Join(t.TempDir(), "frame.png")
		require.NoError(t, runSnapshot(cfg, logger.Nop(), snapshotOptions{
			Path: path, Frames: frames, Width: 200, Height: 160,
			Spawns: []point{{120, 80}},
		}))
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		img, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err)

		n := 0
		for _, d := range [][2]int{{5, 0}, {-5, 0}, {0, 5}, {0, -5}} {
			if color.RGBAModel.Convert(img.At(120+d[0], 80+d[1])) == red {
				n++
			}
		}
		return n
	}

	assert.Equal(t, 0, reddened(0))
	assert.Equal(t, 1, reddened(1))
}

func TestRunSnapshotSVGAutopilot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.svg")
	err := runSnapshot(config.Default(), logger.Nop(), snapshotOptions{
		Path: path, Frames: 20, Width: 320, Height: 240,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
	assert.Contains(t, string(data), "<polyline")
}

func TestRunSnapshotErrors(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	log := logger.Nop()

	assert.Error(t, runSnapshot(cfg, log, snapshotOptions{Path: filepath.Join(dir, "x.gif"), Frames: 1, Width: 10, Height: 10}))
	assert.Error(t, runSnapshot(cfg, log, snapshotOptions{Path: filepath.Join(dir, "x.png"), Frames: 1, Width: 0, Height: 10}))
	assert.Error(t, runSnapshot(cfg, log, snapshotOptions{Path: filepath.Join(dir, "x.png"), Frames: -1, Width: 10, Height: 10}))
}
