// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package puzzle

import "time"

// Clock supplies monotonic time to a session.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock. time.Now carries a monotonic reading,
// so differences are immune to wall-clock adjustments.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// StepClock is a manually advanced clock for tests and headless hosts.
type StepClock struct {
	t time.Time
}

// NewStepClock creates a clock frozen at start.
func NewStepClock(start time.Time) *StepClock {
	return &StepClock{t: start}
}

// Now returns the current frozen time.
func (c *StepClock) Now() time.Time { return c.t }

// Step moves the clock forward by d.
func (c *StepClock) Step(d time.Duration) { c.t = c.t.Add(d) }

// stopwatch measures frame deltas against a Clock.
type stopwatch struct {
	clock Clock
	last  time.Time
}

// restart returns the milliseconds elapsed since the previous restart and
// begins a new interval. Negative intervals are reported as zero.
func (w *stopwatch) restart() float32 {
	now := w.clock.Now()
	d := now.Sub(w.last)
	w.last = now
	if d < 0 {
		return 0
	}
	return float32(d) / float32(time.Millisecond)
}
