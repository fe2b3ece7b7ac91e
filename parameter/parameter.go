// Package parameter holds compiled-in defaults. Config files override them.
package parameter

import "time"

// Frame Loop Timing
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// DefaultFPS is the frame rate used when the config leaves it unset
	DefaultFPS = 60

	// MaxFPS bounds the ticker so a typo cannot spin the CPU
	MaxFPS = 240

	// EventQueueSize is the capacity of the terminal event channel
	EventQueueSize = 256
)

// Scene Geometry (device pixels unless noted)
const (
	// DefaultCellSize is the grid cell size in CSS pixels, scaled by pixel ratio
	DefaultCellSize = 40.0

	// DefaultPixelRatio matches a non-HiDPI display
	DefaultPixelRatio = 1.0

	// DefaultSpeed is the head displacement per frame
	DefaultSpeed = 10.0

	// DefaultLineLength is the trail length cap
	DefaultLineLength = 110.0

	// DefaultLineWidth is the line stroke width
	DefaultLineWidth = 3.0

	// DefaultGridWidth is the grid stroke width
	DefaultGridWidth = 2.0
)

// Spawning
const (
	// DefaultSpawnInterval is the minimum gap between pointer spawns
	DefaultSpawnInterval = 10 * time.Millisecond

	// DefaultMaxLines caps the active line set, 0 disables the cap
	DefaultMaxLines = 2000

	// DefaultEvictOffCanvas drops lines that left the canvas
	DefaultEvictOffCanvas = true
)

// Colors
const (
	DefaultBackgroundColor = "#181818"
	DefaultGridColor       = "#49bf5d80"
	DefaultPalette         = "matrix"
	OverlayTextColor       = "#e0e0e0"
)

// Palettes are the named color sets exposed to config files as palettes.<name>
var Palettes = map[string][]string{
	"matrix": {"#49bf5dcf", "#1fa936cf", "#0b5217cf", "#2dab1acf", "#3aab1acf"},
	"ice":    {"#7fdbffcf", "#39cccccf", "#0074d9cf", "#b3e5fccf"},
	"ember":  {"#ff851bcf", "#ff4136cf", "#ffdc00cf", "#e65100cf"},
	"mono":   {"#ffffffcf", "#aaaaaacf", "#666666cf"},
}

// Terminal Mapping
const (
	// DefaultCellPxW is the device pixel width covered by one terminal column
	DefaultCellPxW = 10

	// DefaultCellPxH is the device pixel height covered by one terminal row
	DefaultCellPxH = 20
)

// Stats Overlay
const (
	// StatsWindow is the number of frame samples kept for the overlay
	StatsWindow = 120
)

// Logging
const (
	LogDir        = "logs"
	LogFileName   = "gridlines.log"
	LogMaxSizeMB  = 10
	LogMaxBackups = 3
	LogMaxAgeDays = 7
)

// Audio
const (
	// DefaultVolume is the spawn cue gain in [0, 1]
	DefaultVolume = 0.4

	// SpawnToneBase is the cue pitch for an upward spawn, other headings step up a fifth
	SpawnToneBase = 440.0
)

// Overlay Layout (device pixels)
const (
	OverlayX = 8
	OverlayY = 8
)
