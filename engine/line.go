package engine

import (
	"slices"

	"github.com/lixenwraith/gridlines/grid"
	"github.com/lixenwraith/gridlines/render"
	"github.com/lixenwraith/gridlines/vmath"
)

// Line is a single animated trail.
// Trail holds value copies ordered nearest-to-head first; every point is an
// intersection except possibly the last, which may be a synthesized mid-segment tail.
type Line struct {
	ID               uint64
	Head             grid.Position
	Trail            []grid.Position
	CurrentDirection Direction
	InitialDirection Direction
	Color            render.RGBA

	// Traveled is the fixed point distance moved since spawn
	Traveled int64
}

// Length returns the fixed point path length from head to the farthest trail point
func (l *Line) Length() int64 {
	var total int64
	prev := l.Head
	for _, p := range l.Trail {
		total += manhattan(prev, p)
		prev = p
	}
	return total
}

// LengthPx returns the path length in device pixels
func (l *Line) LengthPx() float64 {
	return vmath.ToFloat(l.Length())
}

// Path returns the render path head first. Points are copies.
func (l *Line) Path() render.Path {
	pts := make([]grid.Position, 0, len(l.Trail)+1)
	pts = append(pts, l.Head)
	pts = append(pts, l.Trail...)
	return render.Path{Points: pts, Color: l.Color}
}

// clone returns a deep copy safe to hand to readers
func (l *Line) clone() *Line {
	c := *l
	c.Trail = slices.Clone(l.Trail)
	return &c
}

// manhattan equals euclidean distance for axis-aligned neighbours
func manhattan(a, b grid.Position) int64 {
	return vmath.Abs(a.X-b.X) + vmath.Abs(a.Y-b.Y)
}
