// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/switchgrid/render"
)

// ErrNotInitialized is returned by Draw before a successful Init.
var ErrNotInitialized = errors.New("scene: renderer not initialized")

// PanelScene is the built-in render.SceneRenderer.
type PanelScene struct {
	// Description is used when Init is given an empty asset path. Nil
	// selects the embedded default.
	Description *Description

	desc      *Description
	size      int
	pitch     float32
	mesh      *render.Mesh
	instances []render.Instance
}

// NewPanelScene returns an uninitialized panel scene.
func NewPanelScene() *PanelScene {
	return &PanelScene{}
}

// Init loads the description and builds the panel mesh for an N×N grid.
// A second call on an initialized scene does nothing.
func (s *PanelScene) Init(asset string, size int) error {
	if s.Valid() {
		return nil
	}
	if size < 1 {
		return fmt.Errorf("scene: grid size %d must be positive", size)
	}

	desc := s.Description
	if asset != "" || desc == nil {
		var err error
		if desc, err = Load(asset); err != nil {
			return err
		}
	} else if err := desc.Validate(); err != nil {
		return err
	}

	pitch := desc.Extent / float32(size)
	side := pitch * (1 - desc.Gap)
	s.mesh = Box(side, desc.Thickness, side, BoxColors{
		Top:    desc.Faces.Up,
		Bottom: desc.Faces.Down,
		Side:   desc.Faces.Edge,
	})
	s.desc = desc
	s.size = size
	s.pitch = pitch
	s.instances = make([]render.Instance, size*size)
	for i := range s.instances {
		s.instances[i] = render.Instance{Mesh: s.mesh, Model: mgl32.Ident4(), ID: i}
	}
	return nil
}

// Valid reports whether Init has succeeded.
func (s *PanelScene) Valid() bool {
	return s.mesh != nil
}

// Size returns the grid size passed to Init.
func (s *PanelScene) Size() int {
	return s.size
}

// Pitch returns the distance between neighboring cell centers.
func (s *PanelScene) Pitch() float32 {
	return s.pitch
}

// CellCenter returns the world-space center of cell id.
func (s *PanelScene) CellCenter(id int) (mgl32.Vec3, bool) {
	if !s.Valid() || id < 0 || id >= s.size*s.size {
		return mgl32.Vec3{}, false
	}
	x, y := id%s.size, id/s.size
	half := float32(s.size-1) / 2
	return mgl32.Vec3{(float32(x) - half) * s.pitch, 0, (float32(y) - half) * s.pitch}, true
}

// Instances positions every panel for the given angles, in half turns.
// The returned slice is reused by the next call.
func (s *PanelScene) Instances(angles []float32) ([]render.Instance, error) {
	if !s.Valid() {
		return nil, ErrNotInitialized
	}
	if len(angles) != len(s.instances) {
		return nil, fmt.Errorf("scene: got %d angles for %d cells", len(angles), len(s.instances))
	}
	for i, a := range angles {
		c, _ := s.CellCenter(i)
		s.instances[i].Model = mgl32.Translate3D(c[0], c[1], c[2]).
			Mul4(mgl32.HomogRotate3DX(a * math.Pi))
	}
	return s.instances, nil
}

// Draw renders every panel into target.
func (s *PanelScene) Draw(target render.Target, frame *render.Frame, angles []float32) error {
	instances, err := s.Instances(angles)
	if err != nil {
		return err
	}
	return target.Draw(frame, instances)
}

var _ render.SceneRenderer = (*PanelScene)(nil)
