// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package puzzle

import (
	"errors"
	"slices"
	"testing"
	"time"
)

func newTestSession(t *testing.T, size int) *Session {
	t.Helper()
	s, err := NewSession(size, WithSeed(7), WithClock(NewStepClock(time.Unix(0, 0))))
	if err != nil {
		t.Fatalf("NewSession(%d) failed: %v", size, err)
	}
	return s
}

func TestNewGridInvalidSize(t *testing.T) {
	for _, size := range []int{-1, 0, MaxSize + 1, 100} {
		if _, err := NewGrid(size); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("NewGrid(%d) error = %v, want ErrInvalidSize", size, err)
		}
	}
}

func TestGridCoords(t *testing.T) {
	g, err := NewGrid(4)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		i, x, y int
	}{
		{0, 0, 0},
		{3, 3, 0},
		{4, 0, 1},
		{9, 1, 2},
		{15, 3, 3},
	}
	for _, tt := range tests {
		x, y := g.Coords(tt.i)
		if x != tt.x || y != tt.y {
			t.Errorf("Coords(%d) = (%d, %d), want (%d, %d)", tt.i, x, y, tt.x, tt.y)
		}
		if got := g.Index(tt.x, tt.y); got != tt.i {
			t.Errorf("Index(%d, %d) = %d, want %d", tt.x, tt.y, got, tt.i)
		}
	}
}

func TestResetDealsBinaryBoard(t *testing.T) {
	for size := 1; size <= MaxSize; size++ {
		s := newTestSession(t, size)
		g := s.Grid()
		g.Aspire[0] = 5
		g.Current[0] = 2.5

		s.Reset()

		if g.Len() != size*size {
			t.Fatalf("Len() = %d, want %d", g.Len(), size*size)
		}
		for i := range g.Aspire {
			if a := g.Aspire[i]; a != 0 && a != 1 {
				t.Errorf("N=%d: Aspire[%d] = %d, want 0 or 1", size, i, a)
			}
			if g.Current[i] != 0 {
				t.Errorf("N=%d: Current[%d] = %v, want 0", size, i, g.Current[i])
			}
		}
		if s.Won() {
			t.Errorf("N=%d: Won() = true after Reset", size)
		}
		if s.Moves() != 0 {
			t.Errorf("N=%d: Moves() = %d after Reset, want 0", size, s.Moves())
		}
	}
}

func TestResetIsDeterministicForSeed(t *testing.T) {
	a := newTestSession(t, 6)
	b := newTestSession(t, 6)
	for round := 0; round < 5; round++ {
		if !slices.Equal(a.Grid().Aspire, b.Grid().Aspire) {
			t.Fatalf("round %d: boards differ for equal seeds:\n%v\n%v", round, a.Grid().Aspire, b.Grid().Aspire)
		}
		a.Reset()
		b.Reset()
	}
}

func TestApplyPickTogglesRowAndColumn(t *testing.T) {
	for size := 1; size <= MaxSize; size++ {
		g, err := NewGrid(size)
		if err != nil {
			t.Fatal(err)
		}
		for id := 0; id < g.Len(); id++ {
			before := slices.Clone(g.Aspire)
			if got := g.Toggle(id); got != 2*size-1 {
				t.Errorf("N=%d: Toggle(%d) changed %d cells, want %d", size, id, got, 2*size-1)
			}
			changed := 0
			for i := range g.Aspire {
				switch g.Aspire[i] - before[i] {
				case 0:
				case 1:
					changed++
				default:
					t.Fatalf("N=%d: cell %d moved by %d", size, i, g.Aspire[i]-before[i])
				}
			}
			if changed != 2*size-1 {
				t.Errorf("N=%d: pick %d incremented %d cells, want %d", size, id, changed, 2*size-1)
			}
		}
	}
}

func TestApplyPickScenario(t *testing.T) {
	s := newTestSession(t, 4)
	g := s.Grid()
	before := slices.Clone(g.Aspire)

	id := g.Index(1, 2)
	won, err := s.ApplyPick(id)
	if err != nil {
		t.Fatalf("ApplyPick(%d) failed: %v", id, err)
	}

	incremented := 0
	for i := range g.Aspire {
		x, y := g.Coords(i)
		want := before[i]
		if x == 1 || y == 2 {
			want++
			incremented++
		}
		if g.Aspire[i] != want {
			t.Errorf("Aspire[%d] (x=%d, y=%d) = %d, want %d", i, x, y, g.Aspire[i], want)
		}
	}
	if incremented != 7 {
		t.Errorf("incremented %d cells, want 7", incremented)
	}

	allEven := true
	for _, a := range g.Aspire {
		if a%2 != 0 {
			allEven = false
		}
	}
	if won != allEven {
		t.Errorf("ApplyPick won = %v, want %v", won, allEven)
	}
	if s.Moves() != 1 {
		t.Errorf("Moves() = %d, want 1", s.Moves())
	}
}

func TestApplyPickTwiceRestoresParity(t *testing.T) {
	s := newTestSession(t, 5)
	g := s.Grid()
	for id := 0; id < g.Len(); id++ {
		before := g.Parity()
		if _, err := s.ApplyPick(id); err != nil {
			t.Fatal(err)
		}
		if s.Won() {
			s.Reset()
			continue
		}
		if _, err := s.ApplyPick(id); err != nil {
			t.Fatal(err)
		}
		if !slices.Equal(g.Parity(), before) {
			t.Errorf("double pick of %d changed parities: %v -> %v", id, before, g.Parity())
		}
	}
}

func TestWinTwoByTwo(t *testing.T) {
	s := newTestSession(t, 2)
	g := s.Grid()
	for i := range g.Aspire {
		g.Aspire[i] = 1
	}

	for _, id := range []int{0, 1, 2} {
		won, err := s.ApplyPick(id)
		if err != nil {
			t.Fatal(err)
		}
		if won {
			t.Fatalf("won after pick %d, board %v", id, g.Aspire)
		}
	}
	won, err := s.ApplyPick(3)
	if err != nil {
		t.Fatal(err)
	}
	if !won || !s.Won() {
		t.Fatalf("not won after picking every cell, board %v", g.Aspire)
	}
	for i, a := range g.Aspire {
		if a%2 != 0 {
			t.Errorf("Aspire[%d] = %d, want even", i, a)
		}
	}

	// Picks after a win are ignored.
	frozen := slices.Clone(g.Aspire)
	won, err = s.ApplyPick(0)
	if err != nil || !won {
		t.Errorf("ApplyPick after win = (%v, %v), want (true, nil)", won, err)
	}
	if !slices.Equal(g.Aspire, frozen) {
		t.Errorf("board changed after win: %v -> %v", frozen, g.Aspire)
	}
	if s.Moves() != 4 {
		t.Errorf("Moves() = %d, want 4", s.Moves())
	}

	s.Reset()
	if s.Won() {
		t.Error("Won() = true after Reset")
	}
}

func TestApplyPickOutOfRange(t *testing.T) {
	s := newTestSession(t, 3)
	for _, id := range []int{-1, 9, 100} {
		if _, err := s.ApplyPick(id); !errors.Is(err, ErrCellOutOfRange) {
			t.Errorf("ApplyPick(%d) error = %v, want ErrCellOutOfRange", id, err)
		}
	}
	if s.Moves() != 0 {
		t.Errorf("Moves() = %d after rejected picks, want 0", s.Moves())
	}
}

func TestSessionTick(t *testing.T) {
	clock := NewStepClock(time.Unix(100, 0))
	s, err := NewSession(3, WithSeed(1), WithClock(clock))
	if err != nil {
		t.Fatal(err)
	}

	clock.Step(40 * time.Millisecond)
	if got := s.Tick(); got != 40 {
		t.Errorf("Tick() = %v, want 40", got)
	}
	if got := s.Tick(); got != 0 {
		t.Errorf("second Tick() = %v, want 0", got)
	}

	clock.Step(time.Second)
	s.RestartClock()
	clock.Step(16 * time.Millisecond)
	if got := s.Tick(); got != 16 {
		t.Errorf("Tick() after RestartClock = %v, want 16", got)
	}

	// A clock running backwards reports zero, not a negative delta.
	clock.Step(-time.Second)
	if got := s.Tick(); got != 0 {
		t.Errorf("Tick() on backwards clock = %v, want 0", got)
	}
}
