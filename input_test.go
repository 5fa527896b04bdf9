package switchgrid

import (
	"sync"
	"testing"
)

func TestPointerInput(t *testing.T) {
	var in PointerInput
	if in.Pending() {
		t.Error("Pending() = true on zero value")
	}
	if _, _, ok := in.TakePick(); ok {
		t.Error("TakePick() ok on zero value")
	}

	in.Release(10, 20)
	in.Release(30, 40)
	if !in.Pending() {
		t.Error("Pending() = false after Release")
	}
	x, y, ok := in.TakePick()
	if !ok || x != 30 || y != 40 {
		t.Errorf("TakePick() = (%d, %d, %v), want (30, 40, true)", x, y, ok)
	}
	if _, _, ok := in.TakePick(); ok {
		t.Error("TakePick() returned the same pick twice")
	}
}

func TestPointerInputNonPositive(t *testing.T) {
	tests := []struct{ x, y int }{{0, 5}, {5, 0}, {-1, -1}}
	for _, tt := range tests {
		var in PointerInput
		in.Release(tt.x, tt.y)
		if _, _, ok := in.TakePick(); ok {
			t.Errorf("Release(%d, %d): TakePick() ok, want no pick", tt.x, tt.y)
		}
	}
}

func TestPointerInputNewGame(t *testing.T) {
	var in PointerInput
	in.NewGame()
	if !in.TakeNewGame() {
		t.Error("TakeNewGame() = false after NewGame")
	}
	if in.TakeNewGame() {
		t.Error("TakeNewGame() = true twice")
	}
}

func TestPointerInputConcurrent(t *testing.T) {
	var in PointerInput
	var wg sync.WaitGroup
	for i := 1; i <= 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in.Release(i, i)
			in.NewGame()
		}(i)
	}
	wg.Wait()
	if _, _, ok := in.TakePick(); !ok {
		t.Error("TakePick() lost every release")
	}
	if !in.TakeNewGame() {
		t.Error("TakeNewGame() lost every request")
	}
}

func TestNoInput(t *testing.T) {
	var in NoInput
	if _, _, ok := in.TakePick(); ok {
		t.Error("NoInput.TakePick() ok")
	}
	if in.TakeNewGame() {
		t.Error("NoInput.TakeNewGame() = true")
	}
}
