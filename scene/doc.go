// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package scene provides the built-in scene renderer: one flat switch panel
// per grid cell, generated from a JSON scene description.
//
// A panel is a thin box lying in the XZ plane. Its upper face shows the
// "up" color and its lower face the "down" color, so a panel rotated by an
// odd number of half turns about the X axis shows its down side. Cells are
// laid out row by row: cell i sits at column i % N (along +X) and row i / N
// (along +Z), centered on the origin.
//
// An empty asset path selects the embedded default description.
package scene
