package engine

import (
	"fmt"
	"slices"
)

// Direction is one of the four axis-aligned headings
type Direction uint8

const (
	DirUp Direction = iota + 1
	DirDown
	DirLeft
	DirRight
)

// Directions lists every heading in a fixed order
var Directions = [4]Direction{DirUp, DirDown, DirLeft, DirRight}

// maxExcluded keeps at least two headings selectable
const maxExcluded = 2

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
}

// Opposite returns the reverse heading
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	default:
		return d
	}
}

// Delta returns the unit step, y grows downward
func (d Direction) Delta() (dx, dy int64) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 0
	}
}

// Rand is the random source used for direction and color picks.
// Satisfied by *math/rand.Rand and *vmath.FastRand.
type Rand interface {
	Intn(n int) int
}

// ChooseDirection draws uniformly from the headings not in excluding.
// Pure apart from consuming one draw from rng. Panics if more than two distinct
// headings are excluded.
func ChooseDirection(rng Rand, excluding ...Direction) Direction {
	var avail [len(Directions)]Direction
	n := 0
	for _, d := range Directions {
		if !slices.Contains(excluding, d) {
			avail[n] = d
			n++
		}
	}
	if len(Directions)-n > maxExcluded {
		panic(fmt.Sprintf("engine: %d directions excluded, at most %d allowed", len(Directions)-n, maxExcluded))
	}
	return avail[rng.Intn(n)]
}
