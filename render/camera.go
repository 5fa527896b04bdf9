// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "github.com/go-gl/mathgl/mgl32"

// Camera describes a perspective view of the grid and its light.
type Camera struct {
	Eye    mgl32.Vec3
	Center mgl32.Vec3
	Up     mgl32.Vec3
	Light  mgl32.Vec3

	// FovY is the vertical field of view in degrees.
	FovY float32
	Near float32
	Far  float32
}

// DefaultCamera looks down at the grid from above and slightly behind it.
func DefaultCamera() Camera {
	return Camera{
		Eye:    mgl32.Vec3{0, 500, 250},
		Center: mgl32.Vec3{0, 0, 30},
		Up:     mgl32.Vec3{0, 1, 0},
		Light:  mgl32.Vec3{0, 300, 0},
		FovY:   45,
		Near:   10,
		Far:    1000,
	}
}

// View returns the world-to-eye transform.
func (c Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye, c.Center, c.Up)
}

// Projection returns the perspective transform for an output of the given
// size. A degenerate size uses a square aspect.
func (c Camera) Projection(width, height int) mgl32.Mat4 {
	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = float32(width) / float32(height)
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FovY), aspect, c.Near, c.Far)
}

// Frame builds the per-frame uniforms for an output of the given size.
func (c Camera) Frame(width, height int, background Color) *Frame {
	return &Frame{
		ViewProj:   c.Projection(width, height).Mul4(c.View()),
		Eye:        c.Eye,
		Light:      c.Light,
		Background: background,
	}
}

// Project maps a world-space point to framebuffer coordinates (origin
// top-left). ok is false when the point lies behind the camera.
func Project(viewProj mgl32.Mat4, p mgl32.Vec3, width, height int) (x, y float32, ok bool) {
	clip := viewProj.Mul4x1(p.Vec4(1))
	if clip.W() <= 0 {
		return 0, 0, false
	}
	ndcX := clip.X() / clip.W()
	ndcY := clip.Y() / clip.W()
	x = (ndcX + 1) * 0.5 * float32(width)
	y = (1 - ndcY) * 0.5 * float32(height)
	return x, y, true
}
