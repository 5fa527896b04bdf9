// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package puzzle

import "fmt"

// MaxSize is the largest supported grid side. Cell IDs travel through two
// base-10 digits of the object-ID attachment, so N² must stay below 100.
const MaxSize = 9

// DefaultSize is the grid side used when none is configured.
const DefaultSize = 4

// Grid is an N×N panel matrix flattened to N² cells.
type Grid struct {
	size int

	// Current is the animated angle of each cell in half turns.
	// Always within [0, Aspire[i]].
	Current []float32

	// Aspire is the target angle of each cell in half turns.
	Aspire []int
}

// NewGrid creates a grid with every cell at rest on angle 0.
func NewGrid(size int) (*Grid, error) {
	if size < 1 || size > MaxSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	n := size * size
	return &Grid{
		size:    size,
		Current: make([]float32, n),
		Aspire:  make([]int, n),
	}, nil
}

// Size returns N.
func (g *Grid) Size() int {
	return g.size
}

// Len returns the number of cells, N².
func (g *Grid) Len() int {
	return g.size * g.size
}

// Coords maps a flattened index to its column and row.
func (g *Grid) Coords(i int) (x, y int) {
	return i % g.size, i / g.size
}

// Index maps a column and row to the flattened index.
func (g *Grid) Index(x, y int) int {
	return y*g.size + x
}

// Contains reports whether i is a valid cell index.
func (g *Grid) Contains(i int) bool {
	return i >= 0 && i < g.Len()
}

// Toggle adds one half turn to every cell sharing a row or a column with
// cell id and returns the number of cells changed (always 2N-1).
func (g *Grid) Toggle(id int) int {
	px, py := g.Coords(id)
	changed := 0
	for i := range g.Aspire {
		x, y := g.Coords(i)
		if x == px || y == py {
			g.Aspire[i]++
			changed++
		}
	}
	return changed
}

// Solved reports whether every aspire angle is even.
func (g *Grid) Solved() bool {
	for _, a := range g.Aspire {
		if a%2 != 0 {
			return false
		}
	}
	return true
}

// Parity returns Aspire[i] mod 2 for every cell.
func (g *Grid) Parity() []uint8 {
	p := make([]uint8, len(g.Aspire))
	for i, a := range g.Aspire {
		p[i] = uint8(a & 1)
	}
	return p
}

// Animating reports whether any cell is still below its target.
func (g *Grid) Animating() bool {
	for i, a := range g.Aspire {
		if g.Current[i] < float32(a) {
			return true
		}
	}
	return false
}
