// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package puzzle

import "errors"

// ErrUnsolvable is returned when no pick set reaches an all-even board.
// Only odd grid sides can produce such boards.
var ErrUnsolvable = errors.New("puzzle: board has no solution")

// Solve returns the cells whose picks turn the grid's current parities all
// even, in ascending order. Picking a cell twice cancels out, so a solution
// is a set, found by Gaussian elimination over GF(2) on the toggle matrix.
// Free variables are left unpicked.
func Solve(g *Grid) ([]int, error) {
	n := g.Len()
	words := (n + 1 + 63) / 64
	rhs := n // column index of the augmented parity bit

	// rows[i] bit j: picking j toggles cell i. Bit rhs: cell i is odd.
	rows := make([][]uint64, n)
	for i := range rows {
		row := make([]uint64, words)
		ix, iy := g.Coords(i)
		for j := 0; j < n; j++ {
			jx, jy := g.Coords(j)
			if ix == jx || iy == jy {
				row[j/64] |= 1 << (j % 64)
			}
		}
		if g.Aspire[i]%2 != 0 {
			row[rhs/64] |= 1 << (rhs % 64)
		}
		rows[i] = row
	}

	bit := func(row []uint64, j int) bool { return row[j/64]>>(j%64)&1 == 1 }

	pivots := make([]int, 0, n) // pivot column of each reduced row
	r := 0
	for col := 0; col < n && r < n; col++ {
		sel := -1
		for i := r; i < n; i++ {
			if bit(rows[i], col) {
				sel = i
				break
			}
		}
		if sel < 0 {
			continue
		}
		rows[r], rows[sel] = rows[sel], rows[r]
		for i := 0; i < n; i++ {
			if i != r && bit(rows[i], col) {
				for w := range rows[i] {
					rows[i][w] ^= rows[r][w]
				}
			}
		}
		pivots = append(pivots, col)
		r++
	}

	// A zero row with an odd right-hand side is a contradiction.
	for i := r; i < n; i++ {
		if bit(rows[i], rhs) {
			return nil, ErrUnsolvable
		}
	}

	picked := make([]bool, n)
	for i, col := range pivots {
		picked[col] = bit(rows[i], rhs)
	}
	var out []int
	for j, p := range picked {
		if p {
			out = append(out, j)
		}
	}
	return out, nil
}
