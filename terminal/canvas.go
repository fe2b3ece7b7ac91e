package terminal

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/gridlines/grid"
	"github.com/lixenwraith/gridlines/render"
)

// Connection bits of a box-drawing cell
const (
	connN uint8 = 1 << iota
	connS
	connW
	connE
)

// Indexed by connection mask
var (
	lightRunes = [16]rune{' ', '╵', '╷', '│', '╴', '┘', '┐', '┤', '╶', '└', '┌', '├', '─', '┴', '┬', '┼'}
	heavyRunes = [16]rune{'•', '╹', '╻', '┃', '╸', '┛', '┓', '┫', '╺', '┗', '┏', '┣', '━', '┻', '┳', '╋'}
)

// Cell is a composed terminal cell
type Cell struct {
	Rune rune
	Fg   render.RGBA
	Bg   render.RGBA
}

// stroke accumulates connections and color for one layer of one cell
type stroke struct {
	mask  uint8
	color render.RGBA
	set   bool
}

type glyph struct {
	r     rune
	color render.RGBA
}

// Canvas rasterizes render commands into terminal cells and flushes them to a tcell screen.
// A nil screen keeps the canvas headless.
type Canvas struct {
	screen tcell.Screen
	mode   ColorMode
	pxW    float64
	pxH    float64
	cols   int
	rows   int
	bg     render.RGBA

	grid []stroke
	line []stroke
	text []glyph
}

// NewCanvas sizes the canvas from the screen, or to zero when headless
func NewCanvas(screen tcell.Screen, mode ColorMode, cellPxW, cellPxH int) *Canvas {
	c := &Canvas{
		screen: screen,
		mode:   mode,
		pxW:    float64(max(cellPxW, 1)),
		pxH:    float64(max(cellPxH, 1)),
		bg:     render.RGBABlack,
	}
	if screen != nil {
		c.Resize(screen.Size())
	}
	return c
}

// Resize reallocates cell storage for cols x rows
func (c *Canvas) Resize(cols, rows int) {
	cols, rows = max(cols, 0), max(rows, 0)
	c.cols, c.rows = cols, rows
	n := cols * rows
	c.grid = make([]stroke, n)
	c.line = make([]stroke, n)
	c.text = make([]glyph, n)
}

// Size returns the canvas dimensions in cells
func (c *Canvas) Size() (cols, rows int) { return c.cols, c.rows }

// PixelSize returns the canvas dimensions in device pixels
func (c *Canvas) PixelSize() (width, height int) {
	return c.cols * int(c.pxW), c.rows * int(c.pxH)
}

// CellAt maps a device pixel to the cell containing it
func (c *Canvas) CellAt(x, y float64) (col, row int) {
	return int(math.Floor(x / c.pxW)), int(math.Floor(y / c.pxH))
}

// PointerPixel maps a mouse cell to the device pixel at its centre
func (c *Canvas) PointerPixel(col, row int) (x, y float64) {
	return (float64(col) + 0.5) * c.pxW, (float64(row) + 0.5) * c.pxH
}

func (c *Canvas) index(col, row int) (int, bool) {
	if col < 0 || col >= c.cols || row < 0 || row >= c.rows {
		return 0, false
	}
	return row*c.cols + col, true
}

// Begin clears all layers to bg
func (c *Canvas) Begin(bg render.RGBA) {
	c.bg = bg.Opaque()
	clear(c.grid)
	clear(c.line)
	clear(c.text)
}

// StrokeSegments draws grid strokes. Width is ignored, one cell is the unit.
func (c *Canvas) StrokeSegments(segs []grid.Segment, col render.RGBA, _ float64) {
	for _, s := range segs {
		c.segment(c.grid, s.X1, s.Y1, s.X2, s.Y2, col)
	}
}

// StrokePolyline draws a line path. Width is ignored, one cell is the unit.
func (c *Canvas) StrokePolyline(pts []render.Point, col render.RGBA, _ float64) {
	if len(pts) == 1 {
		c.segment(c.line, pts[0].X, pts[0].Y, pts[0].X, pts[0].Y, col)
		return
	}
	for i := 1; i < len(pts); i++ {
		c.segment(c.line, pts[i-1].X, pts[i-1].Y, pts[i].X, pts[i].Y, col)
	}
}

// Text writes s left to right from the cell containing x, y
func (c *Canvas) Text(x, y float64, s string, col render.RGBA) {
	cx, cy := c.CellAt(x, y)
	for _, r := range s {
		if idx, ok := c.index(cx, cy); ok {
			c.text[idx] = glyph{r: r, color: col}
		}
		cx++
	}
}

// segment rasterizes an axis-aligned stroke; off-axis input draws horizontal then vertical
func (c *Canvas) segment(layer []stroke, x1, y1, x2, y2 float64, col render.RGBA) {
	c1, r1 := c.CellAt(x1, y1)
	c2, r2 := c.CellAt(x2, y2)

	if r1 == r2 || c1 != c2 {
		lo, hi := min(c1, c2), max(c1, c2)
		for cx := lo; cx <= hi; cx++ {
			var m uint8
			if cx > lo {
				m |= connW
			}
			if cx < hi {
				m |= connE
			}
			c.mark(layer, cx, r1, m, col)
		}
	}
	if r1 != r2 {
		lo, hi := min(r1, r2), max(r1, r2)
		for ry := lo; ry <= hi; ry++ {
			var m uint8
			if ry > lo {
				m |= connN
			}
			if ry < hi {
				m |= connS
			}
			c.mark(layer, c2, ry, m, col)
		}
	}
}

func (c *Canvas) mark(layer []stroke, col, row int, m uint8, color render.RGBA) {
	idx, ok := c.index(col, row)
	if !ok {
		return
	}
	s := &layer[idx]
	s.mask |= m
	s.color = color
	s.set = true
}

// Cell composes the layers at col, row: text over lines over grid over background
func (c *Canvas) Cell(col, row int) Cell {
	idx, ok := c.index(col, row)
	if !ok {
		return Cell{Rune: ' ', Fg: c.bg, Bg: c.bg}
	}
	cell := Cell{Rune: ' ', Fg: c.bg, Bg: c.bg}
	if g := c.grid[idx]; g.set {
		cell.Rune = lightRunes[g.mask]
		cell.Fg = render.Over(c.bg, g.color)
	}
	if l := c.line[idx]; l.set {
		cell.Rune = heavyRunes[l.mask]
		cell.Fg = render.Over(c.bg, l.color)
	}
	if t := c.text[idx]; t.r != 0 {
		cell.Rune = t.r
		cell.Fg = render.Over(c.bg, t.color)
	}
	return cell
}

// End flushes the composed cells to the screen
func (c *Canvas) End() error {
	if c.screen == nil {
		return nil
	}
	bg := TcellColor(c.bg, c.mode)
	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			cell := c.Cell(col, row)
			style := tcell.StyleDefault.Background(bg).Foreground(TcellColor(cell.Fg, c.mode))
			c.screen.SetContent(col, row, cell.Rune, nil, style)
		}
	}
	c.screen.Show()
	return nil
}
