package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// point is a pointer position in CSS pixels
type point struct {
	X, Y float64
}

// points collects repeated -spawn x,y flags
type points []point

func (p *points) String() string {
	parts := make([]string, len(*p))
	for i, pt := range *p {
		parts[i] = fmt.Sprintf("%g,%g", pt.X, pt.Y)
	}
	return strings.Join(parts, " ")
}

func (p *points) Set(s string) error {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return fmt.Errorf("invalid point %q: want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return fmt.Errorf("invalid point %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return fmt.Errorf("invalid point %q: %w", s, err)
	}
	*p = append(*p, point{X: x, Y: y})
	return nil
}

// autopilot traces a Lissajous curve over a width x height area, one sample per frame
type autopilot struct {
	width, height float64
	frame         int
}

func (a *autopilot) next() point {
	a.frame++
	t := float64(a.frame)
	return point{
		X: a.width/2 + a.width*0.4*math.Sin(t*0.031),
		Y: a.height/2 + a.height*0.4*math.Sin(t*0.047),
	}
}
