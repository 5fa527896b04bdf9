//go:build !nogpu

// Package gpu implements the pick render target on a wgpu/hal device.
//
// A PickTarget owns three textures of equal size:
//
//   - color: RGBA8Unorm, RenderAttachment | CopySrc
//   - id: RGBA8Unorm, RenderAttachment | CopySrc
//   - depth: Depth24PlusStencil8, RenderAttachment
//
// Each Draw records one render pass that clears all three and draws every
// panel with the panel pipeline (two color targets, depth less, back-face
// culling). ReadObjectID copies a single texel of the id texture into a
// staging buffer, waits on a fence and decodes it. ColorImage reads the
// whole color texture back, stripping the 256-byte row alignment.
//
// The device and queue are borrowed: Destroy releases only what the target
// created.
package gpu
