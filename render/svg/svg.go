// Package svg renders frames as standalone SVG documents.
package svg

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"

	svgo "github.com/ajstarks/svgo"

	"github.com/lixenwraith/gridlines/grid"
	"github.com/lixenwraith/gridlines/render"
)

// Surface implements render.Surface, building one SVG document per frame.
// The last finished document is kept until the next Begin.
type Surface struct {
	width, height int

	buf    bytes.Buffer
	canvas *svgo.SVG
	frame  []byte
}

// New creates a width x height surface
func New(width, height int) *Surface {
	s := &Surface{width: max(width, 0), height: max(height, 0)}
	s.canvas = svgo.New(&s.buf)
	return s
}

// Begin starts a document and fills it with bg
func (s *Surface) Begin(bg render.RGBA) {
	s.buf.Reset()
	s.canvas.Start(s.width, s.height)
	s.canvas.Rect(0, 0, s.width, s.height, "fill:"+bg.Opaque().Hex())
}

// StrokeSegments emits one group of lines sharing a style
func (s *Surface) StrokeSegments(segs []grid.Segment, c render.RGBA, width float64) {
	if len(segs) == 0 {
		return
	}
	s.canvas.Gstyle(stroke(c, width, "butt"))
	for _, seg := range segs {
		s.canvas.Line(coord(seg.X1), coord(seg.Y1), coord(seg.X2), coord(seg.Y2))
	}
	s.canvas.Gend()
}

// StrokePolyline emits a polyline with mitered joints. A zero-length path gets square caps
// so it renders as a dot.
func (s *Surface) StrokePolyline(pts []render.Point, c render.RGBA, width float64) {
	if len(pts) == 0 {
		return
	}
	xs := make([]int, len(pts))
	ys := make([]int, len(pts))
	lineCap := "square"
	for i, p := range pts {
		xs[i], ys[i] = coord(p.X), coord(p.Y)
		if p != pts[0] {
			lineCap = "butt"
		}
	}
	s.canvas.Polyline(xs, ys, stroke(c, width, lineCap)+";stroke-linejoin:miter")
}

// Text places s with its top edge at y
func (s *Surface) Text(x, y float64, str string, c render.RGBA) {
	s.canvas.Text(coord(x), coord(y), str, fmt.Sprintf(
		"fill:%s;fill-opacity:%s;font-family:monospace;font-size:13px;dominant-baseline:hanging",
		c.Opaque().Hex(), opacity(c)))
}

// End closes the document and keeps it as the current frame
func (s *Surface) End() error {
	s.canvas.End()
	s.frame = append(s.frame[:0], s.buf.Bytes()...)
	return nil
}

// Bytes returns the last finished document
func (s *Surface) Bytes() []byte { return s.frame }

// WriteTo writes the last finished document to w
func (s *Surface) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(s.frame)
	return int64(n), err
}

// WriteFile writes the last finished document to path
func (s *Surface) WriteFile(path string) error {
	if len(s.frame) == 0 {
		return fmt.Errorf("write svg: no frame rendered")
	}
	if err := os.WriteFile(path, s.frame, 0o644); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

func stroke(c render.RGBA, width float64, lineCap string) string {
	return fmt.Sprintf("fill:none;stroke:%s;stroke-opacity:%s;stroke-width:%g;stroke-linecap:%s",
		c.Opaque().Hex(), opacity(c), width, lineCap)
}

func opacity(c render.RGBA) string {
	return fmt.Sprintf("%.3g", c.Alpha())
}

func coord(v float64) int {
	return int(math.Round(v))
}
