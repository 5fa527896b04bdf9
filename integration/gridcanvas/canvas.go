// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gridcanvas

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/switchgrid"
)

// Common errors returned by Canvas operations.
var (
	// ErrCanvasClosed is returned when operations are attempted on a closed canvas.
	ErrCanvasClosed = errors.New("gridcanvas: canvas is closed")

	// ErrNilProvider is returned when a nil DeviceProvider is passed.
	ErrNilProvider = errors.New("gridcanvas: nil DeviceProvider")

	// ErrNilSurface is returned when a nil Surface is passed.
	ErrNilSurface = errors.New("gridcanvas: nil Surface")

	// ErrNoFrame is returned by Flush before the first successful Frame.
	ErrNoFrame = errors.New("gridcanvas: no frame rendered")
)

// textureDestroyer matches gogpu.Texture.Destroy.
type textureDestroyer interface {
	Destroy()
}

// textureUpdater matches gogpu.Texture.UpdateData.
type textureUpdater interface {
	UpdateData(data []byte) error
}

// textureFactory creates a texture from tightly packed RGBA rows.
type textureFactory func(width, height int, data []byte) (any, error)

// Canvas presents a Surface through GPU textures.
type Canvas struct {
	surface  *switchgrid.Surface
	provider gpucontext.DeviceProvider

	pixels        []byte
	width, height int

	texture    any
	oldTexture any // awaiting destruction once the GPU is idle
	texW, texH int
	dirty      bool
	closed     bool
}

// New creates a Canvas that presents surface. The provider should come
// from gogpu.App.GPUContextProvider().
func New(provider gpucontext.DeviceProvider, surface *switchgrid.Surface) (*Canvas, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	if surface == nil {
		return nil, ErrNilSurface
	}
	return &Canvas{surface: surface, provider: provider}, nil
}

// Surface returns the presented surface, or nil once closed.
func (c *Canvas) Surface() *switchgrid.Surface {
	if c.closed {
		return nil
	}
	return c.surface
}

// Provider returns the DeviceProvider, or nil once closed.
func (c *Canvas) Provider() gpucontext.DeviceProvider {
	if c.closed {
		return nil
	}
	return c.provider
}

// Size returns the size of the last captured frame.
func (c *Canvas) Size() (width, height int) {
	return c.width, c.height
}

// IsDirty reports whether a captured frame awaits upload.
func (c *Canvas) IsDirty() bool {
	return c.dirty
}

// Frame renders the surface and captures the result for the next upload.
// It returns true while the surface is animating. A zero-sized surface
// captures nothing.
func (c *Canvas) Frame() (needsMoreFrames bool, err error) {
	if c.closed {
		return false, ErrCanvasClosed
	}
	more, err := c.surface.Render()
	if err != nil {
		return false, err
	}
	if w, h := c.surface.Size(); w <= 0 || h <= 0 {
		return more, nil
	}

	img, err := c.surface.Snapshot()
	if err != nil {
		return false, err
	}
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	c.pixels = append(c.pixels[:0], img.Pix[:w*h*4]...)
	c.width, c.height = w, h
	c.dirty = true
	return more, nil
}

// flush uploads the captured frame through create when dirty and returns
// the current texture. A size change replaces the texture; the old one is
// kept alive until the replacement has been created.
func (c *Canvas) flush(create textureFactory) (any, error) {
	if c.closed {
		return nil, ErrCanvasClosed
	}
	if c.pixels == nil {
		return nil, ErrNoFrame
	}

	if c.texture != nil && (c.texW != c.width || c.texH != c.height) {
		c.destroyOld()
		c.oldTexture = c.texture
		c.texture = nil
	}
	if !c.dirty && c.texture != nil {
		return c.texture, nil
	}

	if c.texture == nil {
		tex, err := create(c.width, c.height, c.pixels)
		if err != nil {
			return nil, fmt.Errorf("gridcanvas: create texture: %w", err)
		}
		switchgrid.Logger().Debug("gridcanvas: texture created", "width", c.width, "height", c.height)
		c.texture, c.texW, c.texH = tex, c.width, c.height
		c.destroyOld()
		c.dirty = false
		return c.texture, nil
	}

	if updater, ok := c.texture.(textureUpdater); ok {
		if err := updater.UpdateData(c.pixels); err != nil {
			return nil, fmt.Errorf("gridcanvas: texture update failed: %w", err)
		}
	}
	c.dirty = false
	return c.texture, nil
}

func (c *Canvas) destroyOld() {
	if d, ok := c.oldTexture.(textureDestroyer); ok {
		d.Destroy()
	}
	c.oldTexture = nil
}

// Texture returns the current texture without uploading.
func (c *Canvas) Texture() any {
	return c.texture
}

// Close releases the textures. It does not close the surface. Close is
// idempotent.
func (c *Canvas) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.destroyOld()
	if d, ok := c.texture.(textureDestroyer); ok {
		d.Destroy()
	}
	c.texture = nil
	c.pixels = nil
	c.provider = nil
	return nil
}
