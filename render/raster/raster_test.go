package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/lixenwraith/gridlines/grid"
	"github.com/lixenwraith/gridlines/render"
)

var (
	bg  = render.MustHex("#181818")
	red = render.MustHex("#ff0000")
)

func px(s *Surface, x, y int) render.RGBA {
	c := s.Image().RGBAAt(x, y)
	return render.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func near(a, b render.RGBA, tol int) bool {
	d := func(x, y uint8) bool {
		v := int(x) - int(y)
		return v <= tol && v >= -tol
	}
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B) && d(a.A, b.A)
}

func TestBegin(t *testing.T) {
	s := New(20, 10)
	s.Begin(render.MustHex("#18181880"))
	if got := px(s, 5, 5); got != bg {
		t.Errorf("pixel = %v, want opaque %v", got, bg)
	}
}

func TestStrokeSegmentsButtCaps(t *testing.T) {
	s := New(100, 100)
	s.Begin(bg)
	s.StrokeSegments([]grid.Segment{{X1: 40, Y1: 10, X2: 40, Y2: 50}}, red, 3)

	tests := []struct {
		x, y int
		want render.RGBA
	}{
		{39, 20, red},
		{40, 20, red},
		{41, 20, red},
		{38, 20, bg},
		{42, 20, bg},
		{40, 10, red},
		{40, 9, bg},
		{40, 49, red},
		{40, 50, bg},
	}
	for _, tt := range tests {
		if got := px(s, tt.x, tt.y); got != tt.want {
			t.Errorf("pixel (%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestStrokeSegmentsBlendOnce(t *testing.T) {
	gridColor := render.MustHex("#49bf5d80")
	s := New(80, 80)
	s.Begin(bg)
	g := grid.New(80, 80, 40, 1)
	s.StrokeSegments(g.Strokes(), gridColor, 2)

	want := render.Over(bg, gridColor)
	// Intersection is covered by two segments but must match a plain line pixel
	if got := px(s, 40, 40); !near(got, want, 2) {
		t.Errorf("intersection = %v, want ~%v", got, want)
	}
	if got := px(s, 40, 20); !near(got, want, 2) {
		t.Errorf("line = %v, want ~%v", got, want)
	}
	if got := px(s, 20, 20); got != bg {
		t.Errorf("cell interior = %v, want %v", got, bg)
	}
}

func TestStrokePolylineCorner(t *testing.T) {
	s := New(100, 100)
	s.Begin(bg)
	s.StrokePolyline([]render.Point{{X: 40, Y: 70}, {X: 40, Y: 40}, {X: 10, Y: 40}}, red, 3)

	// Outer corner pixel is filled by the square join
	if got := px(s, 41, 39); got != red {
		t.Errorf("corner (41, 39) = %v, want %v", got, red)
	}
	// Ends are not extended
	if got := px(s, 40, 70); got != bg {
		t.Errorf("head end (40, 70) = %v, want %v", got, bg)
	}
	if got := px(s, 9, 40); got != bg {
		t.Errorf("tail end (9, 40) = %v, want %v", got, bg)
	}
	if got := px(s, 25, 40); got != red {
		t.Errorf("horizontal run = %v, want %v", got, red)
	}
}

func TestStrokePolylineDot(t *testing.T) {
	s := New(20, 20)
	s.Begin(bg)
	s.StrokePolyline([]render.Point{{X: 10, Y: 10}, {X: 10, Y: 10}}, red, 3)
	count := 0
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			if px(s, x, y) == red {
				count++
			}
		}
	}
	if count != 9 {
		t.Errorf("dot covers %d pixels, want 9", count)
	}
}

func TestStrokeClipped(t *testing.T) {
	s := New(10, 10)
	s.Begin(bg)
	s.StrokePolyline([]render.Point{{X: -50, Y: 0}, {X: 50, Y: 0}}, red, 2)
	if got := px(s, 0, 0); got != red {
		t.Errorf("edge pixel = %v, want %v", got, red)
	}
	if got := px(s, 0, 1); got != bg {
		t.Errorf("below stroke = %v, want %v", got, bg)
	}
}

func TestText(t *testing.T) {
	s := New(60, 20)
	s.Begin(bg)
	s.Text(2, 2, "60", render.RGBAWhite)
	lit := false
	for y := 0; y < 20; y++ {
		for x := 0; x < 60; x++ {
			if px(s, x, y) != bg {
				lit = true
				if y < 2 || x < 2 {
					t.Fatalf("text pixel (%d, %d) outside origin", x, y)
				}
			}
		}
	}
	if !lit {
		t.Error("text drew nothing")
	}
}

func TestEndBlitsToSink(t *testing.T) {
	s := New(10, 10)
	dst := image.NewRGBA(image.Rect(0, 0, 20, 20))
	s.Attach(dst)
	s.Begin(bg)
	s.StrokeSegments([]grid.Segment{{X1: 0, Y1: 0, X2: 10, Y2: 0}}, red, 2)
	if err := s.End(); err != nil {
		t.Fatalf("End() error = %v", err)
	}
	if got := dst.RGBAAt(5, 0); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("scaled stroke = %v", got)
	}
	if got := dst.RGBAAt(10, 10); got != (color.RGBA{R: 0x18, G: 0x18, B: 0x18, A: 255}) {
		t.Errorf("scaled background = %v", got)
	}
}

func TestDrawAndPNG(t *testing.T) {
	g := grid.New(80, 80, 40, 1)
	cmds := render.Emit(g, []render.Path{{
		Points: []grid.Position{grid.Pos(40, 40), grid.Pos(0, 40)},
		Color:  red,
	}}, render.Style{Background: bg, Grid: render.MustHex("#49bf5d80"), GridWidth: 2, LineWidth: 3})

	s := New(80, 80)
	if err := render.Draw(s, cmds); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}

	var buf bytes.Buffer
	if err := s.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG() error = %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if img.Bounds() != s.Bounds() {
		t.Errorf("bounds = %v, want %v", img.Bounds(), s.Bounds())
	}
	r, g2, b, _ := img.At(20, 40).RGBA()
	if r>>8 != 255 || g2>>8 != 0 || b>>8 != 0 {
		t.Errorf("decoded line pixel = %d,%d,%d", r>>8, g2>>8, b>>8)
	}

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := s.WritePNG(path); err != nil {
		t.Fatalf("WritePNG() error = %v", err)
	}
}
