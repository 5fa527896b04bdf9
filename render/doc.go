// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render defines the offscreen render target used to draw the switch
// grid and resolve pointer picks.
//
// A Target owns two color attachments written in one pass plus a depth
// buffer:
//
//   - attachment 0 holds the lit, visible image
//   - attachment 1 holds pick.Encode(id) for every covered pixel
//
// Picking reads a single pixel of attachment 1 and decodes it back into the
// ID of the instance drawn there.
//
// # Implementations
//
//   - SoftwareTarget: CPU rasterizer, always available
//   - gpu.NewTarget / gpu.NewStandaloneTarget: wgpu/hal textures
//
// # Coordinates
//
// World space is right handed with Y up. Framebuffer coordinates have their
// origin at the top-left pixel. Front faces wind counter-clockwise after
// projection; back faces are culled.
//
// Targets are not safe for concurrent use.
package render
