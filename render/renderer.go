// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

// SceneRenderer turns the grid's animated angles into draw calls.
//
// Init is called once per surface before the first frame with the scene
// asset path (empty selects the built-in scene) and the grid size N.
// Draw receives one angle per cell, in half turns, indexed like the grid,
// and must draw cell i with object ID i.
//
// Implementations are not required to be safe for concurrent use.
type SceneRenderer interface {
	Init(asset string, size int) error
	Valid() bool
	Draw(target Target, frame *Frame, angles []float32) error
}
