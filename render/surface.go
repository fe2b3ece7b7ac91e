package render

import (
	"fmt"

	"github.com/lixenwraith/gridlines/grid"
)

// Surface is a 2D drawing target. Calls arrive between Begin and End, once per frame.
type Surface interface {
	// Begin starts a frame and fills it with bg
	Begin(bg RGBA)

	// StrokeSegments draws independent axis-aligned segments
	StrokeSegments(segs []grid.Segment, c RGBA, width float64)

	// StrokePolyline draws a connected path through pts
	StrokePolyline(pts []Point, c RGBA, width float64)

	// Text draws a single line of overlay text with its top-left corner at x, y
	Text(x, y float64, s string, c RGBA)

	// End finishes the frame and presents it
	End() error
}

// Draw replays cmds onto s as one frame
func Draw(s Surface, cmds []Command) error {
	began := false
	for _, c := range cmds {
		switch c.Kind {
		case KindClear:
			s.Begin(c.Color)
			began = true
			continue
		}
		if !began {
			return fmt.Errorf("draw: %s command before clear", c.Kind)
		}
		switch c.Kind {
		case KindSegments:
			s.StrokeSegments(c.Segments, c.Color, c.Width)
		case KindPolyline:
			s.StrokePolyline(c.Points, c.Color, c.Width)
		case KindText:
			s.Text(c.At.X, c.At.Y, c.Text, c.Color)
		default:
			return fmt.Errorf("draw: unknown command kind %d", c.Kind)
		}
	}
	if !began {
		return nil
	}
	return s.End()
}
