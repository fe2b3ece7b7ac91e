//go:build !linux

package raster

import (
	"errors"
	"image"
	"image/color"
)

// ErrNoFramebuffer is returned on platforms without /dev/fb support
var ErrNoFramebuffer = errors.New("framebuffer output is only supported on linux")

// Framebuffer is unavailable on this platform
type Framebuffer struct{}

// OpenFramebuffer always fails on this platform
func OpenFramebuffer(path string) (*Framebuffer, error) {
	return nil, ErrNoFramebuffer
}

func (f *Framebuffer) Bounds() image.Rectangle     { return image.Rectangle{} }
func (f *Framebuffer) ColorModel() color.Model     { return color.RGBAModel }
func (f *Framebuffer) At(x, y int) color.Color     { return color.RGBA{} }
func (f *Framebuffer) Set(x, y int, c color.Color) {}
func (f *Framebuffer) Close() error                { return nil }
