// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"
	"math"

	"github.com/gogpu/switchgrid/internal/parallel"
	"github.com/gogpu/switchgrid/pick"
)

// SoftwareTarget is a CPU implementation of Target.
//
// Triangles are filled with barycentric coverage at pixel centers, vertex
// colors are lit per vertex and interpolated, and a float depth buffer
// implements the less-than depth test. Triangles with any vertex behind the
// camera are skipped rather than clipped.
//
// With more than one worker, each frame is split into row bands rasterized
// concurrently; every band draws the triangles in submission order, so the
// result is identical to a sequential draw.
//
// Example:
//
//	target := render.NewSoftwareTarget()
//	_ = target.Resize(800, 600)
//	_ = target.Draw(camera.Frame(800, 600, render.DefaultBackground), instances)
//	id, _ := target.ReadObjectID(400, 300)
type SoftwareTarget struct {
	color *image.RGBA
	ids   *image.RGBA
	depth []float32

	// verts and tris are reused across frames.
	verts []WorldVertex
	tris  []screenTriangle

	workers int
	pool    *parallel.WorkerPool
}

// SoftwareOption configures a SoftwareTarget.
type SoftwareOption func(*SoftwareTarget)

// WithWorkers rasterizes on n goroutines. Values below 2 draw on the
// calling goroutine, which is the default.
func WithWorkers(n int) SoftwareOption {
	return func(t *SoftwareTarget) { t.workers = n }
}

// NewSoftwareTarget creates a target with no attachments. Call Resize
// before drawing.
func NewSoftwareTarget(opts ...SoftwareOption) *SoftwareTarget {
	t := &SoftwareTarget{}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Width returns the attachment width.
func (t *SoftwareTarget) Width() int {
	if t.color == nil {
		return 0
	}
	return t.color.Rect.Dx()
}

// Height returns the attachment height.
func (t *SoftwareTarget) Height() int {
	if t.color == nil {
		return 0
	}
	return t.color.Rect.Dy()
}

// Resize reallocates the attachments.
func (t *SoftwareTarget) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		t.Destroy()
		return nil
	}
	if width == t.Width() && height == t.Height() {
		return nil
	}
	rect := image.Rect(0, 0, width, height)
	t.color = image.NewRGBA(rect)
	t.ids = image.NewRGBA(rect)
	t.depth = make([]float32, width*height)
	return nil
}

// Draw clears the attachments and rasterizes every instance.
func (t *SoftwareTarget) Draw(frame *Frame, instances []Instance) error {
	if frame == nil {
		return ErrNilFrame
	}
	if t.color == nil {
		return nil
	}
	t.clear(frame.Background)

	t.verts = Expand(t.verts[:0], instances)
	t.tris = t.tris[:0]
	for i := 0; i+2 < len(t.verts); i += 3 {
		if tri, ok := t.setup(frame, t.verts[i:i+3]); ok {
			t.tris = append(t.tris, tri)
		}
	}

	if t.workers < 2 {
		t.rasterize(0, t.Height())
		return nil
	}
	if t.pool == nil {
		t.pool = parallel.NewWorkerPool(t.workers)
	}
	bands := parallel.Bands(t.Height(), t.workers*2)
	work := make([]func(), len(bands))
	for i, b := range bands {
		work[i] = func() { t.rasterize(b.Y0, b.Y1) }
	}
	t.pool.ExecuteAll(work)
	return nil
}

// ReadObjectID decodes the ID attachment at (x, y).
func (t *SoftwareTarget) ReadObjectID(x, y int) (int, error) {
	if t.ids == nil || !(image.Point{X: x, Y: y}).In(t.ids.Rect) {
		return pick.None, nil
	}
	off := t.ids.PixOffset(x, y)
	var px [4]uint8
	copy(px[:], t.ids.Pix[off:off+4])
	return pick.DecodeRGBA8(px), nil
}

// ColorImage returns a copy of the color attachment. A released target
// yields an empty image.
func (t *SoftwareTarget) ColorImage() (*image.RGBA, error) {
	if t.color == nil {
		return image.NewRGBA(image.Rectangle{}), nil
	}
	img := image.NewRGBA(t.color.Rect)
	copy(img.Pix, t.color.Pix)
	return img, nil
}

// Destroy drops the attachments and stops the workers. A later Resize
// makes the target usable again.
func (t *SoftwareTarget) Destroy() {
	t.color = nil
	t.ids = nil
	t.depth = nil
	if t.pool != nil {
		t.pool.Close()
		t.pool = nil
	}
}

func (t *SoftwareTarget) clear(bg Color) {
	fill := pick.Quantize(pick.Color(bg))
	pix := t.color.Pix
	for i := 0; i < len(pix); i += 4 {
		copy(pix[i:i+4], fill[:])
	}
	clear(t.ids.Pix)
	for i := range t.depth {
		t.depth[i] = 1
	}
}

type screenVertex struct {
	x, y, z float32
	color   Color
}

// screenTriangle is a culled, projected triangle with its pixel bounds.
type screenTriangle struct {
	v                      [3]screenVertex
	invArea                float32
	minX, maxX, minY, maxY int
	id                     [4]uint8
}

// setup projects tri to pixel space. It reports false for triangles behind
// the camera, back-facing, or entirely off screen.
func (t *SoftwareTarget) setup(frame *Frame, tri []WorldVertex) (screenTriangle, bool) {
	w, h := t.Width(), t.Height()

	var st screenTriangle
	sv := &st.v
	for i := range 3 {
		clip := frame.ViewProj.Mul4x1(tri[i].Position.Vec4(1))
		if clip.W() <= 0 {
			return st, false
		}
		inv := 1 / clip.W()
		sv[i] = screenVertex{
			x:     (clip.X()*inv + 1) * 0.5 * float32(w),
			y:     (1 - clip.Y()*inv) * 0.5 * float32(h),
			z:     clip.Z() * inv,
			color: Shade(tri[i], frame.Eye, frame.Light),
		}
	}

	// Counter-clockwise in NDC is clockwise once Y points down.
	area := edge(sv[0], sv[1], sv[2].x, sv[2].y)
	if area >= 0 {
		return st, false
	}

	st.minX = max(0, int(math.Floor(float64(min(sv[0].x, sv[1].x, sv[2].x)))))
	st.maxX = min(w-1, int(math.Ceil(float64(max(sv[0].x, sv[1].x, sv[2].x)))))
	st.minY = max(0, int(math.Floor(float64(min(sv[0].y, sv[1].y, sv[2].y)))))
	st.maxY = min(h-1, int(math.Ceil(float64(max(sv[0].y, sv[1].y, sv[2].y)))))
	if st.minX > st.maxX || st.minY > st.maxY {
		return st, false
	}
	st.invArea = 1 / area
	st.id = pick.Quantize(tri[0].ID)
	return st, true
}

// rasterize fills rows [y0, y1) with every set-up triangle in order.
func (t *SoftwareTarget) rasterize(y0, y1 int) {
	for i := range t.tris {
		t.fill(&t.tris[i], y0, y1)
	}
}

func (t *SoftwareTarget) fill(st *screenTriangle, y0, y1 int) {
	w := t.Width()
	sv := &st.v
	for y := max(st.minY, y0); y <= min(st.maxY, y1-1); y++ {
		py := float32(y) + 0.5
		for x := st.minX; x <= st.maxX; x++ {
			px := float32(x) + 0.5

			b0 := edge(sv[1], sv[2], px, py) * st.invArea
			b1 := edge(sv[2], sv[0], px, py) * st.invArea
			b2 := edge(sv[0], sv[1], px, py) * st.invArea
			if b0 < 0 || b1 < 0 || b2 < 0 {
				continue
			}

			z := b0*sv[0].z + b1*sv[1].z + b2*sv[2].z
			di := y*w + x
			if z < -1 || z >= t.depth[di] {
				continue
			}
			t.depth[di] = z

			var c Color
			for k := range c {
				c[k] = b0*sv[0].color[k] + b1*sv[1].color[k] + b2*sv[2].color[k]
			}
			rgba := pick.Quantize(pick.Color(c))
			off := t.color.PixOffset(x, y)
			copy(t.color.Pix[off:off+4], rgba[:])
			copy(t.ids.Pix[off:off+4], st.id[:])
		}
	}
}

// edge is twice the signed area of (a, b, p).
func edge(a, b screenVertex, px, py float32) float32 {
	return (b.x-a.x)*(py-a.y) - (b.y-a.y)*(px-a.x)
}

var _ Target = (*SoftwareTarget)(nil)
