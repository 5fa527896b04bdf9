// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package puzzle

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"
)

// Session errors.
var (
	// ErrInvalidSize is returned for a grid side outside [1, MaxSize].
	ErrInvalidSize = errors.New("puzzle: invalid grid size")

	// ErrCellOutOfRange is returned when a pick names no cell of the grid.
	ErrCellOutOfRange = errors.New("puzzle: cell out of range")
)

// SessionOption configures a Session during creation.
type SessionOption func(*sessionOptions)

type sessionOptions struct {
	rng   *rand.Rand
	clock Clock
}

// WithSeed seeds the session's generator for reproducible boards.
func WithSeed(seed uint64) SessionOption {
	return func(o *sessionOptions) {
		o.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithRand uses r to draw new boards. The session takes ownership of r.
func WithRand(r *rand.Rand) SessionOption {
	return func(o *sessionOptions) {
		o.rng = r
	}
}

// WithClock sets the time source for animation deltas.
func WithClock(c Clock) SessionOption {
	return func(o *sessionOptions) {
		o.clock = c
	}
}

// Session is one game: the grid, the won flag, the move counter, a clock and
// the generator that deals new boards.
type Session struct {
	grid  *Grid
	won   bool
	moves int
	rng   *rand.Rand
	watch stopwatch
}

// NewSession creates a session of the given side and deals a first board.
func NewSession(size int, opts ...SessionOption) (*Session, error) {
	grid, err := NewGrid(size)
	if err != nil {
		return nil, err
	}

	o := sessionOptions{clock: SystemClock{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		seed := uint64(time.Now().UnixNano()) //nolint:gosec // seed only
		o.rng = rand.New(rand.NewPCG(seed, seed>>1))
	}

	s := &Session{
		grid:  grid,
		rng:   o.rng,
		watch: stopwatch{clock: o.clock},
	}
	s.Reset()
	return s, nil
}

// Grid returns the session grid. Callers may read it freely; writes belong
// to ApplyPick, Reset and Advance.
func (s *Session) Grid() *Grid {
	return s.grid
}

// Won reports whether the current game has been won.
func (s *Session) Won() bool {
	return s.won
}

// Moves returns the number of accepted picks since the last reset.
func (s *Session) Moves() int {
	return s.moves
}

// Reset deals a new board: every aspire angle independently 0 or 1, every
// current angle 0, won cleared, move counter zeroed, clock restarted.
func (s *Session) Reset() {
	for i := range s.grid.Aspire {
		s.grid.Aspire[i] = s.rng.IntN(2)
		s.grid.Current[i] = 0
	}
	s.won = false
	s.moves = 0
	s.watch.restart()
}

// ApplyPick applies the row and column toggle around cellID and reports
// whether the board is now solved. Once won, picks are ignored until Reset.
func (s *Session) ApplyPick(cellID int) (bool, error) {
	if s.won {
		return true, nil
	}
	if !s.grid.Contains(cellID) {
		return false, fmt.Errorf("%w: %d", ErrCellOutOfRange, cellID)
	}
	s.grid.Toggle(cellID)
	s.moves++
	s.won = s.grid.Solved()
	return s.won, nil
}

// Tick returns the milliseconds since the previous Tick or RestartClock.
func (s *Session) Tick() float32 {
	return s.watch.restart()
}

// RestartClock discards the time accumulated since the last tick, so the
// next animation step starts from now.
func (s *Session) RestartClock() {
	s.watch.restart()
}
