// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gridcanvas presents a switchgrid.Surface in a gogpu window.
//
// The data flow is:
//
//	Surface.Render -> Surface.Snapshot (CPU) -> GPU Texture -> Window
//
// Canvas renders the surface, copies the frame with its status overlay
// into a texture and draws it through gpucontext.TextureDrawer. The
// texture is created lazily on first use and recreated when the surface
// size changes.
//
// # Usage
//
//	canvas, err := gridcanvas.New(app.GPUContextProvider(), surface)
//	...
//	app.OnDraw(func(dc *gogpu.Context) {
//	    more, _ := canvas.Frame()
//	    canvas.RenderTo(dc.AsTextureDrawer())
//	    if more {
//	        app.RequestRedraw()
//	    }
//	})
//
// Canvas is NOT safe for concurrent use.
package gridcanvas
