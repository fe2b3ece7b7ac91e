package terminal

import (
	"bytes"
	"testing"

	"github.com/lixenwraith/gridlines/grid"
	"github.com/lixenwraith/gridlines/render"
)

var (
	bg      = render.MustHex("#181818")
	gridCol = render.MustHex("#49bf5d80")
	lineCol = render.MustHex("#49bf5dcf")
	textCol = render.MustHex("#e0e0e0")
	cellPxW = 10
	cellPxH = 20
)

func headless(cols, rows int) *Canvas {
	c := NewCanvas(nil, ColorModeTrueColor, cellPxW, cellPxH)
	c.Resize(cols, rows)
	return c
}

func TestCanvasGeometry(t *testing.T) {
	c := headless(80, 24)
	if w, h := c.PixelSize(); w != 800 || h != 480 {
		t.Errorf("PixelSize() = %d, %d, want 800, 480", w, h)
	}
	if col, row := c.CellAt(40, 40); col != 4 || row != 2 {
		t.Errorf("CellAt(40, 40) = %d, %d, want 4, 2", col, row)
	}
	if col, row := c.CellAt(39.9, 39.9); col != 3 || row != 1 {
		t.Errorf("CellAt(39.9, 39.9) = %d, %d, want 3, 1", col, row)
	}
	if x, y := c.PointerPixel(4, 2); x != 45 || y != 50 {
		t.Errorf("PointerPixel(4, 2) = %v, %v, want 45, 50", x, y)
	}
}

func TestCanvasGridRunes(t *testing.T) {
	c := headless(9, 5)
	g := grid.New(90, 100, 40, 1)
	c.Begin(bg)
	c.StrokeSegments(g.Strokes(), gridCol, 2)

	tests := []struct {
		col, row int
		want     rune
	}{
		{0, 0, '┌'},
		{4, 0, '┬'},
		{4, 2, '┼'},
		{2, 2, '─'},
		{4, 1, '│'},
		{0, 2, '├'},
		{1, 1, ' '},
	}
	for _, tt := range tests {
		if got := c.Cell(tt.col, tt.row).Rune; got != tt.want {
			t.Errorf("Cell(%d, %d) = %q, want %q", tt.col, tt.row, got, tt.want)
		}
	}

	cell := c.Cell(4, 2)
	if cell.Bg != bg {
		t.Errorf("background = %v, want %v", cell.Bg, bg)
	}
	if cell.Fg != render.Over(bg, gridCol) {
		t.Errorf("grid fg = %v, want blended %v", cell.Fg, render.Over(bg, gridCol))
	}
}

func TestCanvasPolylineOverGrid(t *testing.T) {
	c := headless(9, 5)
	g := grid.New(90, 100, 40, 1)
	c.Begin(bg)
	c.StrokeSegments(g.Strokes(), gridCol, 2)
	// Head at (40, 70), corner at (40, 40), tail at (10, 40)
	c.StrokePolyline([]render.Point{{X: 40, Y: 70}, {X: 40, Y: 40}, {X: 10, Y: 40}}, lineCol, 3)

	tests := []struct {
		col, row int
		want     rune
	}{
		{4, 3, '╹'},
		{4, 2, '┓'},
		{2, 2, '━'},
		{1, 2, '╺'},
		{0, 2, '├'}, // grid only
	}
	for _, tt := range tests {
		if got := c.Cell(tt.col, tt.row).Rune; got != tt.want {
			t.Errorf("Cell(%d, %d) = %q, want %q", tt.col, tt.row, got, tt.want)
		}
	}
	if got := c.Cell(2, 2).Fg; got != render.Over(bg, lineCol) {
		t.Errorf("line fg = %v, want %v", got, render.Over(bg, lineCol))
	}
}

func TestCanvasDegeneratePolyline(t *testing.T) {
	c := headless(4, 4)
	c.Begin(bg)
	c.StrokePolyline([]render.Point{{X: 15, Y: 25}, {X: 15, Y: 25}}, lineCol, 3)
	if got := c.Cell(1, 1).Rune; got != '•' {
		t.Errorf("zero-length line rune = %q, want '•'", got)
	}
}

func TestCanvasClipsOutside(t *testing.T) {
	c := headless(4, 4)
	c.Begin(bg)
	c.StrokePolyline([]render.Point{{X: -100, Y: 10}, {X: 100, Y: 10}}, lineCol, 3)
	for col := 0; col < 4; col++ {
		if got := c.Cell(col, 0).Rune; got != '━' {
			t.Errorf("Cell(%d, 0) = %q, want '━'", col, got)
		}
	}
	if got := c.Cell(-1, 0); got.Rune != ' ' {
		t.Errorf("out of range cell = %+v", got)
	}
}

func TestCanvasTextAndBegin(t *testing.T) {
	c := headless(10, 2)
	c.Begin(bg)
	c.StrokePolyline([]render.Point{{X: 0, Y: 0}, {X: 90, Y: 0}}, lineCol, 3)
	c.Text(0, 0, "60fps", textCol)
	if got := c.Cell(0, 0).Rune; got != '6' {
		t.Errorf("text cell = %q, want '6'", got)
	}
	if got := c.Cell(5, 0).Rune; got != '━' {
		t.Errorf("cell after text = %q, want '━'", got)
	}

	c.Begin(bg)
	if got := c.Cell(0, 0).Rune; got != ' ' {
		t.Errorf("Begin did not clear, got %q", got)
	}
}

func TestCanvasFlushToSimulation(t *testing.T) {
	s, _, err := OpenSimulation(12, 4, ColorModeTrueColor)
	if err != nil {
		t.Fatalf("OpenSimulation() error = %v", err)
	}
	defer s.Close()

	c := NewCanvas(s, s.ColorMode(), cellPxW, cellPxH)
	c.Resize(12, 4)
	c.Begin(bg)
	c.StrokePolyline([]render.Point{{X: 0, Y: 10}, {X: 50, Y: 10}}, lineCol, 3)
	if err := c.End(); err != nil {
		t.Fatalf("End() error = %v", err)
	}
	r, _, _, _ := s.GetContent(2, 0)
	if r != '━' {
		t.Errorf("screen content = %q, want '━'", r)
	}
}

func TestEmergencyReset(t *testing.T) {
	var buf bytes.Buffer
	EmergencyReset(&buf)
	if !bytes.Contains(buf.Bytes(), csiAltScreenExit) || !bytes.Contains(buf.Bytes(), csiMouseMotionOff) {
		t.Errorf("reset output missing sequences: %q", buf.String())
	}
}
