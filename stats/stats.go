// Package stats tracks frame timing for the overlay.
package stats

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Frames holds a rolling window of frame intervals in milliseconds
type Frames struct {
	window []float64
	next   int
	full   bool
	last   time.Time
}

// Summary describes the current window
type Summary struct {
	Count    int
	MeanMs   float64
	StdDevMs float64
	FPS      float64
}

// New creates a window of size frames, at least 1
func New(size int) *Frames {
	return &Frames{window: make([]float64, max(size, 1))}
}

// Tick records the interval since the previous tick. The first tick only sets the reference.
func (f *Frames) Tick(now time.Time) {
	if !f.last.IsZero() {
		f.Add(now.Sub(f.last))
	}
	f.last = now
}

// Add records one frame interval
func (f *Frames) Add(d time.Duration) {
	f.window[f.next] = float64(d) / float64(time.Millisecond)
	f.next++
	if f.next == len(f.window) {
		f.next = 0
		f.full = true
	}
}

// Reset drops all samples
func (f *Frames) Reset() {
	f.next, f.full = 0, false
	f.last = time.Time{}
}

func (f *Frames) samples() []float64 {
	if f.full {
		return f.window
	}
	return f.window[:f.next]
}

// Summary computes mean, sample standard deviation and rate over the window
func (f *Frames) Summary() Summary {
	xs := f.samples()
	s := Summary{Count: len(xs)}
	switch len(xs) {
	case 0:
		return s
	case 1:
		s.MeanMs = xs[0]
	default:
		s.MeanMs, s.StdDevMs = stat.MeanStdDev(xs, nil)
	}
	if s.MeanMs > 0 {
		s.FPS = 1000 / s.MeanMs
	}
	return s
}

// String formats the overlay line
func (s Summary) String() string {
	if s.Count == 0 {
		return "-- fps"
	}
	return fmt.Sprintf("%.1f fps  %.1f±%.1f ms", s.FPS, s.MeanMs, s.StdDevMs)
}
