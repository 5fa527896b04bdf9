package switchgrid

import "sync"

// Input delivers pending user actions to Surface.Synchronize. Each method
// consumes what it returns.
type Input interface {
	// TakePick returns the pending pick in framebuffer coordinates
	// (origin top-left) and clears it.
	TakePick() (x, y int, ok bool)

	// TakeNewGame reports and clears a pending new-game request.
	TakeNewGame() bool
}

// PointerInput is an Input fed by host event handlers. It keeps only the
// most recent release; coordinates <= 0 mean no pick is pending.
//
// PointerInput is safe for concurrent use, so hosts may record events off
// the frame goroutine.
type PointerInput struct {
	mu       sync.Mutex
	x, y     int
	newGame  bool
	released bool
}

// Release records a pointer release at (x, y), replacing any pending one.
func (p *PointerInput) Release(x, y int) {
	p.mu.Lock()
	p.x, p.y = x, y
	p.released = x > 0 && y > 0
	p.mu.Unlock()
}

// NewGame requests a new game.
func (p *PointerInput) NewGame() {
	p.mu.Lock()
	p.newGame = true
	p.mu.Unlock()
}

// Pending reports whether a pick or new-game request is waiting. Hosts use
// it to schedule a frame.
func (p *PointerInput) Pending() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.released || p.newGame
}

// TakePick implements Input.
func (p *PointerInput) TakePick() (x, y int, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.released {
		return -1, -1, false
	}
	x, y = p.x, p.y
	p.x, p.y = -1, -1
	p.released = false
	return x, y, true
}

// TakeNewGame implements Input.
func (p *PointerInput) TakeNewGame() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	ng := p.newGame
	p.newGame = false
	return ng
}

// NoInput is an Input with nothing pending.
type NoInput struct{}

// TakePick implements Input.
func (NoInput) TakePick() (int, int, bool) { return -1, -1, false }

// TakeNewGame implements Input.
func (NoInput) TakeNewGame() bool { return false }
