// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gridcanvas

import (
	"errors"

	"github.com/gogpu/gpucontext"
)

// Rendering errors.
var (
	// ErrInvalidDrawContext is returned when the uploaded texture is not a
	// gpucontext.Texture.
	ErrInvalidDrawContext = errors.New("gridcanvas: texture must implement gpucontext.Texture")

	// ErrInvalidRenderer is returned when the draw context has no
	// gpucontext.TextureCreator.
	ErrInvalidRenderer = errors.New("gridcanvas: renderer must implement gpucontext.TextureCreator")
)

// RenderTo uploads the captured frame and draws it at (0, 0).
//
// The dc parameter should be obtained from gogpu.Context.AsTextureDrawer().
func (c *Canvas) RenderTo(dc gpucontext.TextureDrawer) error {
	return c.RenderToPosition(dc, 0, 0)
}

// RenderToPosition uploads the captured frame and draws it at (x, y).
func (c *Canvas) RenderToPosition(dc gpucontext.TextureDrawer, x, y float32) error {
	creator := dc.TextureCreator()
	if creator == nil {
		return ErrInvalidRenderer
	}
	create := func(width, height int, data []byte) (any, error) {
		return creator.NewTextureFromRGBA(width, height, data)
	}
	return c.present(create, func(tex any) error {
		gpuTex, ok := tex.(gpucontext.Texture)
		if !ok {
			return ErrInvalidDrawContext
		}
		return dc.DrawTexture(gpuTex, x, y)
	})
}

// present flushes the frame through create and hands the texture to draw.
func (c *Canvas) present(create textureFactory, draw func(tex any) error) error {
	tex, err := c.flush(create)
	if err != nil {
		return err
	}
	return draw(tex)
}
