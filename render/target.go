// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrNilFrame is returned by Target.Draw when no frame is supplied.
var ErrNilFrame = errors.New("render: nil frame")

// Color is a linear RGBA value in [0, 1].
type Color [4]float32

// DefaultBackground is the clear color of attachment 0.
var DefaultBackground = Color{0.1, 0.2, 0.3, 1}

// Target is an offscreen render target with a visible color attachment, an
// object-ID attachment and a depth buffer.
type Target interface {
	// Width returns the attachment width in pixels, 0 when released.
	Width() int

	// Height returns the attachment height in pixels, 0 when released.
	Height() int

	// Resize recreates the attachments at the given size, destroying the old
	// ones. A non-positive dimension releases the attachments; Draw is then
	// a no-op. Resizing to the current size does nothing.
	Resize(width, height int) error

	// Draw clears every attachment and draws the instances. Lit color goes
	// to attachment 0 and pick.Encode(instance.ID) to attachment 1.
	Draw(frame *Frame, instances []Instance) error

	// ReadObjectID reads one pixel of attachment 1 at framebuffer
	// coordinates (origin top-left) and decodes it. Pixels outside the
	// target, or never drawn, decode to pick.None.
	ReadObjectID(x, y int) (int, error)

	// ColorImage reads attachment 0 back into a new image.
	ColorImage() (*image.RGBA, error)

	// Destroy releases all resources. It is safe to call more than once.
	Destroy()
}

// Frame holds the per-frame uniforms shared by every instance.
type Frame struct {
	// ViewProj maps world space to clip space (OpenGL depth range).
	ViewProj mgl32.Mat4

	// Eye is the camera position, used for specular highlights.
	Eye mgl32.Vec3

	// Light is the point light position.
	Light mgl32.Vec3

	// Background clears attachment 0.
	Background Color
}

// Vertex is a model-space mesh vertex.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	Color    Color
}

// Mesh is a triangle list. Front faces wind counter-clockwise when seen
// from outside.
type Mesh struct {
	Vertices []Vertex
}

// Instance places a mesh in the world and tags it with an object ID.
type Instance struct {
	Mesh  *Mesh
	Model mgl32.Mat4
	ID    int
}
