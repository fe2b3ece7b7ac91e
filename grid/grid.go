// Package grid defines the lattice that lines travel along and that is drawn as the background.
package grid

import (
	"math"

	"github.com/lixenwraith/gridlines/vmath"
)

// Position is a lattice-space point in device pixels, stored as Q32.32 fixed point.
// Value type: copy freely, never share.
type Position struct {
	X, Y int64
}

// Pos builds a Position from device pixel floats
func Pos(x, y float64) Position {
	return Position{X: vmath.FromFloat(x), Y: vmath.FromFloat(y)}
}

// Float returns the device pixel coordinates
func (p Position) Float() (x, y float64) {
	return vmath.ToFloat(p.X), vmath.ToFloat(p.Y)
}

// Grid is an immutable lattice of cols x rows cells
type Grid struct {
	width      int64 // fixed point device pixels
	height     int64
	cell       int64 // fixed point, pixel ratio applied
	pixelRatio float64
	cols       int
	rows       int
}

// New builds a grid for a canvas of width x height device pixels.
// cellSize is in CSS pixels and is scaled by pixelRatio.
func New(width, height int, cellSize, pixelRatio float64) *Grid {
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	cellPx := cellSize * pixelRatio
	g := &Grid{
		width:      vmath.FromInt(width),
		height:     vmath.FromInt(height),
		cell:       vmath.FromFloat(cellPx),
		pixelRatio: pixelRatio,
	}
	if cellPx > 0 {
		g.cols = int(math.Round(float64(width) / cellPx))
		g.rows = int(math.Round(float64(height) / cellPx))
	}
	return g
}

// Cols returns the number of grid columns
func (g *Grid) Cols() int { return g.cols }

// Rows returns the number of grid rows
func (g *Grid) Rows() int { return g.rows }

// Cell returns the fixed point cell size in device pixels
func (g *Grid) Cell() int64 { return g.cell }

// CellSize returns the cell size in device pixels
func (g *Grid) CellSize() float64 { return vmath.ToFloat(g.cell) }

// PixelRatio returns the device pixel ratio the grid was built with
func (g *Grid) PixelRatio() float64 { return g.pixelRatio }

// Size returns the canvas dimensions in device pixels
func (g *Grid) Size() (width, height float64) {
	return vmath.ToFloat(g.width), vmath.ToFloat(g.height)
}

// IsOnIntersection reports whether both coordinates are exact multiples of the cell size
func (g *Grid) IsOnIntersection(p Position) bool {
	return vmath.IsMultiple(p.X, g.cell) && vmath.IsMultiple(p.Y, g.cell)
}

// NearestIntersection snaps a pointer offset to the closest intersection.
// x, y are CSS pixel offsets; they are scaled by the pixel ratio before snapping so the
// result always lies on the device pixel lattice.
func (g *Grid) NearestIntersection(x, y float64) Position {
	p := Pos(x*g.pixelRatio, y*g.pixelRatio)
	if g.cell <= 0 {
		return p
	}
	return Position{
		X: vmath.RoundTo(p.X, g.cell),
		Y: vmath.RoundTo(p.Y, g.cell),
	}
}

// Contains reports whether p lies inside the canvas, edges included
func (g *Grid) Contains(p Position) bool {
	return p.X >= 0 && p.X <= g.width && p.Y >= 0 && p.Y <= g.height
}

// Segment is an axis-aligned grid stroke in device pixels
type Segment struct {
	X1, Y1, X2, Y2 float64
}

// Strokes returns the vertical then horizontal grid lines, 0..Cols and 0..Rows inclusive
func (g *Grid) Strokes() []Segment {
	w, h := g.Size()
	cell := g.CellSize()
	segs := make([]Segment, 0, g.cols+g.rows+2)
	for col := 0; col <= g.cols; col++ {
		x := float64(col) * cell
		segs = append(segs, Segment{X1: x, Y1: 0, X2: x, Y2: h})
	}
	for row := 0; row <= g.rows; row++ {
		y := float64(row) * cell
		segs = append(segs, Segment{X1: 0, Y1: y, X2: w, Y2: y})
	}
	return segs
}
