package terminal

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/gridlines/render"
)

func TestRGBTo256(t *testing.T) {
	tests := []struct {
		name string
		c    render.RGBA
		want uint8
	}{
		{"black", render.RGBA{R: 0, G: 0, B: 0, A: 255}, 16},
		{"white", render.RGBA{R: 255, G: 255, B: 255, A: 255}, 231},
		{"pure red", render.RGBA{R: 255, G: 0, B: 0, A: 255}, 196},
		{"pure green", render.RGBA{R: 0, G: 255, B: 0, A: 255}, 46},
		{"mid gray uses ramp", render.RGBA{R: 128, G: 128, B: 128, A: 255}, 244},
		{"background gray", render.RGBA{R: 0x18, G: 0x18, B: 0x18, A: 255}, 233},
	}
	for _, tt := range tests {
		if got := RGBTo256(tt.c); got != tt.want {
			t.Errorf("%s: RGBTo256(%v) = %d, want %d", tt.name, tt.c, got, tt.want)
		}
	}
}

func TestParseColorMode(t *testing.T) {
	if ParseColorMode("256") != ColorMode256 {
		t.Error("256 should map to ColorMode256")
	}
	for _, s := range []string{"truecolor", "TRUE", "24bit"} {
		if ParseColorMode(s) != ColorModeTrueColor {
			t.Errorf("%q should map to ColorModeTrueColor", s)
		}
	}
	t.Setenv("COLORTERM", "truecolor")
	if ParseColorMode("auto") != ColorModeTrueColor {
		t.Error("auto with COLORTERM=truecolor should detect true color")
	}
}

func TestTcellColor(t *testing.T) {
	c := render.RGBA{R: 10, G: 20, B: 30, A: 255}
	if got := TcellColor(c, ColorModeTrueColor); got != tcell.NewRGBColor(10, 20, 30) {
		t.Errorf("true color = %v", got)
	}
	if got := TcellColor(c, ColorMode256); got != tcell.PaletteColor(int(RGBTo256(c))) {
		t.Errorf("256 color = %v", got)
	}
}
