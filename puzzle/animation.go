// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package puzzle

// DefaultRate is the animation speed in half turns per millisecond.
// A single toggle takes about a third of a second.
const DefaultRate float32 = 0.003

// Advance moves every lagging cell toward its aspire angle by deltaMs*rate,
// clamped at the target. It returns true if any cell moved, meaning the
// caller should schedule another frame.
func (g *Grid) Advance(deltaMs, rate float32) bool {
	if deltaMs < 0 {
		deltaMs = 0
	}
	step := deltaMs * rate
	moved := false
	for i, a := range g.Aspire {
		target := float32(a)
		if target <= g.Current[i] {
			continue
		}
		g.Current[i] = min(g.Current[i]+step, target)
		moved = true
	}
	return moved
}
