//go:build linux

package raster

import (
	"fmt"

	fb "github.com/gonutz/framebuffer"
)

// Framebuffer is an open Linux framebuffer device
type Framebuffer struct {
	*fb.Device
}

// OpenFramebuffer maps the device at path, typically /dev/fb0
func OpenFramebuffer(path string) (*Framebuffer, error) {
	dev, err := fb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open framebuffer %s: %w", path, err)
	}
	return &Framebuffer{Device: dev}, nil
}

// Close unmaps the device
func (f *Framebuffer) Close() error {
	f.Device.Close()
	return nil
}
