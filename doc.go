// Package switchgrid renders a switch-grid puzzle in 3D and resolves
// pointer picks through an object-ID attachment.
//
// # Overview
//
// The board is an N×N grid of two-faced panels (1 <= N <= 9). Picking a
// panel turns it and every panel in its row and column half a turn. The
// game is won when every panel shows its starting face again.
//
// Each frame draws the panels twice in one pass: lit colors go to the
// visible attachment and each panel's encoded cell ID goes to a second,
// non-interpolated attachment. A pick reads a single pixel back from the
// ID attachment, so hit testing matches exactly what is on screen.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/switchgrid"
//	    "github.com/gogpu/switchgrid/render"
//	)
//
//	surface, err := switchgrid.New(render.NewSoftwareTarget(), switchgrid.WithSize(4))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer surface.Close()
//
//	var in switchgrid.PointerInput
//	surface.Resize(800, 600)
//	for {
//	    surface.Synchronize(&in) // apply clicks recorded by in.Release
//	    more, err := surface.Render()
//	    ...
//	}
//
// # Renderers
//
// A Surface draws into a render.Target. render.NewSoftwareTarget is a pure
// Go rasterizer that needs no GPU. The gpu package provides a WebGPU target
// for hosts that own a device, and a standalone Vulkan target.
//
// # Coordinate System
//
// Pick coordinates are framebuffer pixels:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//
// Coordinates <= 0 mean "no pick".
//
// # Packages
//
//   - puzzle: grid state, animation, board generation and the solver
//   - pick: cell ID to color codec
//   - render: targets, camera, lighting and the software rasterizer
//   - scene: the panel scene renderer and scene descriptions
//   - hud: localized status overlay
//   - gpu: WebGPU render targets
//   - integration/gridcanvas: presents frames on a gpucontext host
package switchgrid
