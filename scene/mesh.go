// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/switchgrid/render"
)

// BoxColors assigns a color to the faces of a box.
type BoxColors struct {
	Top    render.Color // +Y
	Bottom render.Color // -Y
	Side   render.Color // ±X and ±Z
}

// Box returns a box centered on the origin with the given full sizes. Every
// face winds counter-clockwise seen from outside.
func Box(sx, sy, sz float32, colors BoxColors) *render.Mesh {
	hx, hy, hz := sx/2, sy/2, sz/2
	x := mgl32.Vec3{1, 0, 0}
	y := mgl32.Vec3{0, 1, 0}
	z := mgl32.Vec3{0, 0, 1}

	m := &render.Mesh{Vertices: make([]render.Vertex, 0, 36)}
	addFace(m, y.Mul(hy), y, x, z, hx, hz, colors.Top)
	addFace(m, y.Mul(-hy), y.Mul(-1), x, z, hx, hz, colors.Bottom)
	addFace(m, x.Mul(hx), x, y, z, hy, hz, colors.Side)
	addFace(m, x.Mul(-hx), x.Mul(-1), y, z, hy, hz, colors.Side)
	addFace(m, z.Mul(hz), z, x, y, hx, hy, colors.Side)
	addFace(m, z.Mul(-hz), z.Mul(-1), x, y, hx, hy, colors.Side)
	return m
}

// addFace appends a rectangle centered at c spanning ±hu along u and ±hv
// along v, wound so that its front side faces n.
func addFace(m *render.Mesh, c, n, u, v mgl32.Vec3, hu, hv float32, color render.Color) {
	if u.Cross(v).Dot(n) < 0 {
		u, v = v, u
		hu, hv = hv, hu
	}
	p0 := c.Sub(u.Mul(hu)).Sub(v.Mul(hv))
	p1 := c.Add(u.Mul(hu)).Sub(v.Mul(hv))
	p2 := c.Add(u.Mul(hu)).Add(v.Mul(hv))
	p3 := c.Sub(u.Mul(hu)).Add(v.Mul(hv))
	for _, p := range []mgl32.Vec3{p0, p1, p2, p0, p2, p3} {
		m.Vertices = append(m.Vertices, render.Vertex{Position: p, Normal: n, Color: color})
	}
}
