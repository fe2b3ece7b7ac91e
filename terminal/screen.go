package terminal

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Reset sequences for crash recovery when tcell cannot run Fini
var (
	csiMouseMotionOff = []byte("\x1b[?1003l")
	csiMouseDragOff   = []byte("\x1b[?1002l")
	csiMouseClickOff  = []byte("\x1b[?1000l")
	csiMouseSGROff    = []byte("\x1b[?1006l")
	csiCursorShow     = []byte("\x1b[?25h")
	csiAltScreenExit  = []byte("\x1b[?1049l")
	csiSGR0           = []byte("\x1b[0m")
	csiAutoWrapOn     = []byte("\x1b[?7h")
)

// Screen wraps a tcell screen configured for pointer motion
type Screen struct {
	tcell.Screen
	mode ColorMode
	once sync.Once
}

// Open initializes the terminal: alternate screen, hidden cursor, all mouse motion reported
func Open(mode ColorMode) (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	return wrap(s, mode)
}

// OpenSimulation returns an in-memory screen of cols x rows for tests and headless runs
func OpenSimulation(cols, rows int, mode ColorMode) (*Screen, tcell.SimulationScreen, error) {
	sim := tcell.NewSimulationScreen("UTF-8")
	s, err := wrap(sim, mode)
	if err != nil {
		return nil, nil, err
	}
	sim.SetSize(cols, rows)
	return s, sim, nil
}

func wrap(s tcell.Screen, mode ColorMode) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize screen: %w", err)
	}
	s.SetStyle(tcell.StyleDefault)
	s.EnableMouse(tcell.MouseMotionEvents)
	s.HideCursor()
	s.Clear()
	return &Screen{Screen: s, mode: mode}, nil
}

// ColorMode returns the mode colors are converted with
func (s *Screen) ColorMode() ColorMode { return s.mode }

// Close restores the terminal. Safe to call multiple times.
func (s *Screen) Close() {
	s.once.Do(func() {
		s.DisableMouse()
		s.Fini()
	})
}

// EmergencyReset writes raw restore sequences, used from panic handlers
func EmergencyReset(w io.Writer) {
	for _, seq := range [][]byte{
		csiMouseMotionOff, csiMouseDragOff, csiMouseClickOff, csiMouseSGROff,
		csiCursorShow, csiAltScreenExit, csiSGR0, csiAutoWrapOn,
	} {
		w.Write(seq)
	}
	if f, ok := w.(*os.File); ok {
		f.Sync()
	}
}
