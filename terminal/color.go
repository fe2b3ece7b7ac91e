package terminal

import (
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/gridlines/render"
)

// ColorMode indicates terminal color capability
type ColorMode uint8

const (
	ColorMode256       ColorMode = iota // xterm-256 palette
	ColorModeTrueColor                  // 24-bit RGB
)

// ParseColorMode resolves a -color flag value, falling back to detection
func ParseColorMode(s string) ColorMode {
	switch strings.ToLower(s) {
	case "256":
		return ColorMode256
	case "truecolor", "true", "24bit":
		return ColorModeTrueColor
	default:
		return DetectColorMode()
	}
}

// DetectColorMode determines terminal color capability from environment
func DetectColorMode() ColorMode {
	colorterm := os.Getenv("COLORTERM")
	if colorterm == "truecolor" || colorterm == "24bit" {
		return ColorModeTrueColor
	}

	for _, env := range []string{"KITTY_WINDOW_ID", "KONSOLE_VERSION", "ITERM_SESSION_ID", "ALACRITTY_WINDOW_ID", "WEZTERM_PANE"} {
		if os.Getenv(env) != "" {
			return ColorModeTrueColor
		}
	}

	term := strings.ToLower(os.Getenv("TERM"))
	if strings.Contains(term, "truecolor") ||
		strings.Contains(term, "24bit") ||
		strings.Contains(term, "direct") {
		return ColorModeTrueColor
	}

	return ColorMode256
}

// Color cube values for 6x6x6 palette (indices 16-231)
var cubeValues = [6]int{0, 95, 135, 175, 215, 255}

// grayscaleStart is the first grayscale index (232-255 = 24 shades)
const grayscaleStart = 232

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// cubeIndex maps 0-255 to the nearest cube level 0-5
func cubeIndex(v int) int {
	best := 0
	for j := 1; j < len(cubeValues); j++ {
		if abs(v-cubeValues[j]) < abs(v-cubeValues[best]) {
			best = j
		}
	}
	return best
}

// RGBTo256 finds the nearest xterm-256 palette index, preferring the gray ramp for neutral colors
func RGBTo256(c render.RGBA) uint8 {
	r, g, b := int(c.R), int(c.G), int(c.B)
	cr, cg, cb := cubeIndex(r), cubeIndex(g), cubeIndex(b)
	cube := uint8(16 + 36*cr + 6*cg + cb)

	gray := (r + g + b) / 3
	if max(abs(r-gray), abs(g-gray), abs(b-gray)) >= 10 {
		return cube
	}
	if gray < 4 {
		return 16
	}
	if gray > 243 {
		return 231
	}

	grayIdx := min(grayscaleStart+(gray-8)/10, 255)
	grayLevel := 8 + (grayIdx-grayscaleStart)*10
	grayDist := abs(r-grayLevel) + abs(g-grayLevel) + abs(b-grayLevel)
	cubeDist := abs(r-cubeValues[cr]) + abs(g-cubeValues[cg]) + abs(b-cubeValues[cb])
	if grayDist < cubeDist {
		return uint8(grayIdx)
	}
	return cube
}

// TcellColor converts an opaque color for the given mode
func TcellColor(c render.RGBA, mode ColorMode) tcell.Color {
	if mode == ColorMode256 {
		return tcell.PaletteColor(int(RGBTo256(c)))
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
