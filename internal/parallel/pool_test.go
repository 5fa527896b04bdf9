package parallel

import (
	"runtime"
	"sync/atomic"
	"testing"
)

func TestWorkerPool_Create(t *testing.T) {
	tests := []struct {
		workers, want int
	}{
		{4, 4},
		{0, runtime.GOMAXPROCS(0)},
		{-5, runtime.GOMAXPROCS(0)},
	}
	for _, tt := range tests {
		pool := NewWorkerPool(tt.workers)
		if pool.Workers() != tt.want {
			t.Errorf("NewWorkerPool(%d).Workers() = %d, want %d", tt.workers, pool.Workers(), tt.want)
		}
		if !pool.IsRunning() {
			t.Errorf("NewWorkerPool(%d) not running", tt.workers)
		}
		pool.Close()
	}
}

func TestWorkerPool_ExecuteAll(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	work := make([]func(), 100)
	for i := range work {
		work[i] = func() { counter.Add(1) }
	}
	pool.ExecuteAll(work)

	if counter.Load() != 100 {
		t.Errorf("counter = %d, want 100", counter.Load())
	}
}

func TestWorkerPool_ExecuteAllDisjointWrites(t *testing.T) {
	pool := NewWorkerPool(3)
	defer pool.Close()

	out := make([]int, 64)
	bands := Bands(len(out), 7)
	work := make([]func(), len(bands))
	for i, b := range bands {
		work[i] = func() {
			for y := b.Y0; y < b.Y1; y++ {
				out[y] = y * y
			}
		}
	}
	pool.ExecuteAll(work)

	for i, v := range out {
		if v != i*i {
			t.Fatalf("out[%d] = %d, want %d", i, v, i*i)
		}
	}
}

func TestWorkerPool_ClosedRunsInline(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()
	pool.Close()

	if pool.IsRunning() {
		t.Error("IsRunning() = true after Close")
	}
	ran := 0
	pool.ExecuteAll([]func(){func() { ran++ }, func() { ran++ }})
	if ran != 2 {
		t.Errorf("ExecuteAll on closed pool ran %d items, want 2", ran)
	}
}

func TestBands(t *testing.T) {
	tests := []struct {
		name          string
		height, parts int
		want          []Band
	}{
		{"zero height", 0, 4, nil},
		{"single", 10, 1, []Band{{0, 10}}},
		{"even", 8, 4, []Band{{0, 2}, {2, 4}, {4, 6}, {6, 8}}},
		{"uneven", 10, 3, []Band{{0, 3}, {3, 6}, {6, 10}}},
		{"more parts than rows", 2, 5, []Band{{0, 1}, {1, 2}}},
		{"non-positive parts", 5, 0, []Band{{0, 5}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Bands(tt.height, tt.parts)
			if len(got) != len(tt.want) {
				t.Fatalf("Bands(%d, %d) = %v, want %v", tt.height, tt.parts, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Bands(%d, %d)[%d] = %v, want %v", tt.height, tt.parts, i, got[i], tt.want[i])
				}
			}
		})
	}
}
