// Package render turns grid and line state into an ordered list of draw commands and
// replays them onto a Surface.
package render

import (
	"github.com/lixenwraith/gridlines/grid"
)

// Kind identifies a draw command
type Kind uint8

const (
	KindClear Kind = iota
	KindSegments
	KindPolyline
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindClear:
		return "clear"
	case KindSegments:
		return "segments"
	case KindPolyline:
		return "polyline"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Point is a device pixel coordinate
type Point struct {
	X, Y float64
}

// Command is one draw operation. Only the fields relevant to Kind are set.
type Command struct {
	Kind     Kind
	Color    RGBA
	Width    float64
	Segments []grid.Segment
	Points   []Point
	Text     string
	At       Point
}

// Path is a polyline to stroke, head first
type Path struct {
	Points []grid.Position
	Color  RGBA
}

// Style holds the fixed colors and stroke widths of a scene
type Style struct {
	Background RGBA
	Grid       RGBA
	GridWidth  float64
	LineWidth  float64
}

// Emit builds the frame: clear, grid strokes, then one polyline per path in order.
// A path with a single point emits a zero-length polyline from the point to itself.
func Emit(g *grid.Grid, paths []Path, style Style) []Command {
	cmds := make([]Command, 0, len(paths)+2)
	cmds = append(cmds, Command{Kind: KindClear, Color: style.Background})
	cmds = append(cmds, Command{
		Kind:     KindSegments,
		Color:    style.Grid,
		Width:    style.GridWidth,
		Segments: g.Strokes(),
	})

	for _, p := range paths {
		if len(p.Points) == 0 {
			continue
		}
		pts := make([]Point, 0, len(p.Points)+1)
		for _, pos := range p.Points {
			x, y := pos.Float()
			pts = append(pts, Point{X: x, Y: y})
		}
		if len(pts) == 1 {
			pts = append(pts, pts[0])
		}
		cmds = append(cmds, Command{
			Kind:   KindPolyline,
			Color:  p.Color,
			Width:  style.LineWidth,
			Points: pts,
		})
	}
	return cmds
}

// TextCommand builds an overlay text command
func TextCommand(x, y float64, s string, c RGBA) Command {
	return Command{Kind: KindText, Color: c, Text: s, At: Point{X: x, Y: y}}
}
