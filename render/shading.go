// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/switchgrid/pick"
)

// Lighting terms shared by the software rasterizer and the panel shader.
const (
	Ambient   = 0.25
	Diffuse   = 0.75
	Specular  = 0.25
	Shininess = 32
)

// WorldVertex is a vertex after its instance transform, carrying the ID
// color of the instance it belongs to.
type WorldVertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	Color    Color
	ID       pick.Color
}

// Expand transforms every instance's mesh into world space and appends the
// result to dst. Model matrices are assumed rigid (rotation and
// translation), so normals use the same matrix with w = 0.
func Expand(dst []WorldVertex, instances []Instance) []WorldVertex {
	for _, inst := range instances {
		if inst.Mesh == nil {
			continue
		}
		id := pick.Encode(inst.ID)
		for _, v := range inst.Mesh.Vertices {
			dst = append(dst, WorldVertex{
				Position: inst.Model.Mul4x1(v.Position.Vec4(1)).Vec3(),
				Normal:   normalize(inst.Model.Mul4x1(v.Normal.Vec4(0)).Vec3()),
				Color:    v.Color,
				ID:       id,
			})
		}
	}
	return dst
}

// Shade lights a world-space vertex with one point light: ambient, Lambert
// diffuse and a Blinn-Phong highlight. Alpha is kept.
func Shade(v WorldVertex, eye, light mgl32.Vec3) Color {
	n := normalize(v.Normal)
	l := normalize(light.Sub(v.Position))
	e := normalize(eye.Sub(v.Position))
	h := normalize(l.Add(e))

	diffuse := max(n.Dot(l), 0)
	spec := float32(0)
	if diffuse > 0 {
		spec = Specular * float32(math.Pow(float64(max(n.Dot(h), 0)), Shininess))
	}

	k := Ambient + Diffuse*diffuse
	var out Color
	for i := range 3 {
		out[i] = clamp01(v.Color[i]*k + spec)
	}
	out[3] = v.Color[3]
	return out
}

func normalize(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Mul(1 / l)
}

func clamp01(v float32) float32 {
	return min(max(v, 0), 1)
}
