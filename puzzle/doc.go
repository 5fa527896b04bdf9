// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package puzzle holds the state of a switch grid game.
//
// A grid is N×N panels flattened row by row: cell i sits at column i%N and
// row i/N. Every panel has an aspire angle, an integer count of half turns it
// should reach, and a current angle that animates toward it. A panel is
// solved when its aspire angle is even.
//
// Picking a cell adds one half turn to every panel in its row and column
// (2N-1 panels). The game is won when all panels are solved.
//
//	s := puzzle.NewSession(4, puzzle.WithSeed(42))
//	won, err := s.ApplyPick(6)
//	for s.Grid().Advance(16) {
//	    // draw s.Grid().Current
//	}
//
// Nothing in this package is safe for concurrent use. A session is driven
// from a single frame callback.
package puzzle
