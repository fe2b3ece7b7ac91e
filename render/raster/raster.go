// Package raster draws frames into an in-memory RGBA image, for PNG snapshots and the Linux framebuffer.
package raster

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/lixenwraith/gridlines/grid"
	"github.com/lixenwraith/gridlines/render"
)

// Surface implements render.Surface on an *image.RGBA.
// Each stroke call is rasterized into a coverage mask first so overlapping pieces of one
// path blend once, matching a canvas stroke.
type Surface struct {
	img  *image.RGBA
	mask *image.Alpha
	face font.Face

	// sink receives a scaled copy of every finished frame
	sink draw.Image
}

// New creates a width x height surface
func New(width, height int) *Surface {
	r := image.Rect(0, 0, max(width, 0), max(height, 0))
	return &Surface{
		img:  image.NewRGBA(r),
		mask: image.NewAlpha(r),
		face: basicfont.Face7x13,
	}
}

// Attach sets a destination that End blits into, nearest-neighbor scaled to its bounds.
// Passing nil detaches.
func (s *Surface) Attach(dst draw.Image) { s.sink = dst }

// Image returns the backing image. It is overwritten by the next frame.
func (s *Surface) Image() *image.RGBA { return s.img }

// Bounds returns the drawable area
func (s *Surface) Bounds() image.Rectangle { return s.img.Bounds() }

// Begin fills the image with bg
func (s *Surface) Begin(bg render.RGBA) {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(bg.Opaque()), image.Point{}, draw.Src)
}

// StrokeSegments draws each segment with butt caps
func (s *Surface) StrokeSegments(segs []grid.Segment, c render.RGBA, width float64) {
	if len(segs) == 0 || width <= 0 {
		return
	}
	s.resetMask()
	for _, seg := range segs {
		s.coverSegment(seg.X1, seg.Y1, seg.X2, seg.Y2, width, false, false)
	}
	s.composite(c)
}

// StrokePolyline draws a connected path. Interior joints are squared off so corners close.
// A zero-length path draws a width x width dot.
func (s *Surface) StrokePolyline(pts []render.Point, c render.RGBA, width float64) {
	if len(pts) == 0 || width <= 0 {
		return
	}
	s.resetMask()
	if len(pts) == 1 {
		s.coverSegment(pts[0].X, pts[0].Y, pts[0].X, pts[0].Y, width, true, true)
	}
	last := len(pts) - 1
	for i := 1; i <= last; i++ {
		a, b := pts[i-1], pts[i]
		degenerate := a == b
		s.coverSegment(a.X, a.Y, b.X, b.Y, width, i > 1 || degenerate, i < last || degenerate)
	}
	s.composite(c)
}

// Text draws s with its top-left corner at x, y using a 7x13 bitmap face
func (s *Surface) Text(x, y float64, str string, c render.RGBA) {
	ascent := s.face.Metrics().Ascent.Ceil()
	d := &font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(c),
		Face: s.face,
		Dot:  fixed.P(int(math.Round(x)), int(math.Round(y))+ascent),
	}
	d.DrawString(str)
}

// End blits to the attached sink, if any
func (s *Surface) End() error {
	if s.sink == nil {
		return nil
	}
	xdraw.NearestNeighbor.Scale(s.sink, s.sink.Bounds(), s.img, s.img.Bounds(), xdraw.Src, nil)
	return nil
}

// EncodePNG writes the current frame as PNG
func (s *Surface) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, s.img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// WritePNG writes the current frame to path
func (s *Surface) WritePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if err := s.EncodePNG(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (s *Surface) resetMask() {
	clear(s.mask.Pix)
}

func (s *Surface) composite(c render.RGBA) {
	draw.DrawMask(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{}, s.mask, image.Point{}, draw.Over)
}

// coverSegment marks the pixels of an axis-aligned stroke in the mask.
// extendStart and extendEnd lengthen the stroke by half its width at that end.
// Off-axis input is covered as horizontal then vertical.
func (s *Surface) coverSegment(x1, y1, x2, y2, width float64, extendStart, extendEnd bool) {
	half := width / 2
	if y1 != y2 && x1 != x2 {
		s.coverSegment(x1, y1, x2, y1, width, extendStart, true)
		s.coverSegment(x2, y1, x2, y2, width, true, extendEnd)
		return
	}

	var startExt, endExt float64
	if extendStart {
		startExt = half
	}
	if extendEnd {
		endExt = half
	}

	var minX, maxX, minY, maxY float64
	if y1 == y2 {
		// Horizontal, or a point
		if x1 <= x2 {
			minX, maxX = x1-startExt, x2+endExt
		} else {
			minX, maxX = x2-endExt, x1+startExt
		}
		minY, maxY = y1-half, y1+half
	} else {
		if y1 <= y2 {
			minY, maxY = y1-startExt, y2+endExt
		} else {
			minY, maxY = y2-endExt, y1+startExt
		}
		minX, maxX = x1-half, x1+half
	}

	// Pixel centers inside the rectangle are covered
	r := image.Rect(pixelEdge(minX), pixelEdge(minY), pixelEdge(maxX), pixelEdge(maxY)).Intersect(s.mask.Bounds())
	if r.Empty() {
		return
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := s.mask.Pix[s.mask.PixOffset(r.Min.X, y):s.mask.PixOffset(r.Max.X, y)]
		for i := range row {
			row[i] = 0xff
		}
	}
}

func pixelEdge(v float64) int {
	return int(math.Floor(v + 0.5))
}
