// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ambient

import (
	"sync"
	"time"
)

// =============================================================================
// SCHEDULING
// =============================================================================

// CancelFunc cancels a pending frame. Calling it more than once is a no-op.
type CancelFunc func()

// Scheduler delivers animation frames. RequestFrame arranges for fn to run
// once, later, with the frame time. Implementations must not call fn from
// within RequestFrame.
type Scheduler interface {
	RequestFrame(fn func(now time.Time)) CancelFunc
}

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// FrameInterval is one frame at 60 fps.
const FrameInterval = time.Second / 60

// TimerScheduler fires frames from time.AfterFunc. Frames run on the timer
// goroutine.
type TimerScheduler struct {
	// Interval between frames. Zero means FrameInterval.
	Interval time.Duration
}

// RequestFrame schedules fn after the frame interval.
func (s TimerScheduler) RequestFrame(fn func(now time.Time)) CancelFunc {
	interval := s.Interval
	if interval <= 0 {
		interval = FrameInterval
	}
	t := time.AfterFunc(interval, func() { fn(time.Now()) })
	return func() { t.Stop() }
}

// =============================================================================
// MANUAL SCHEDULING (tests and offline rendering)
// =============================================================================

// ManualClock is a Clock that only moves when told to.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock returns a clock stopped at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the clock's current time.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type manualFrame struct {
	fn        func(time.Time)
	cancelled bool
}

// ManualScheduler queues frames until Step is called. Use it with a
// ManualClock to drive a Controller deterministically.
type ManualScheduler struct {
	mu      sync.Mutex
	clock   *ManualClock
	pending []*manualFrame
}

// NewManualScheduler returns a scheduler that reads frame times from clock.
func NewManualScheduler(clock *ManualClock) *ManualScheduler {
	return &ManualScheduler{clock: clock}
}

// RequestFrame queues fn for the next Step.
func (s *ManualScheduler) RequestFrame(fn func(now time.Time)) CancelFunc {
	f := &manualFrame{fn: fn}
	s.mu.Lock()
	s.pending = append(s.pending, f)
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		f.cancelled = true
		s.mu.Unlock()
	}
}

// Pending reports how many queued frames have not been cancelled.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, f := range s.pending {
		if !f.cancelled {
			n++
		}
	}
	return n
}

// Step advances the clock by d and runs every frame queued before the call.
// Frames requested while stepping wait for the next Step. It returns the
// number of frames run.
func (s *ManualScheduler) Step(d time.Duration) int {
	s.clock.Advance(d)

	s.mu.Lock()
	batch := s.pending
	s.pending = nil
	s.mu.Unlock()

	now := s.clock.Now()
	ran := 0
	for _, f := range batch {
		s.mu.Lock()
		cancelled := f.cancelled
		s.mu.Unlock()
		if cancelled {
			continue
		}
		f.fn(now)
		ran++
	}
	return ran
}

// RunUntilIdle steps by d until no frames remain or max steps have run. It
// returns the number of steps taken.
func (s *ManualScheduler) RunUntilIdle(d time.Duration, max int) int {
	steps := 0
	for steps < max && s.Pending() > 0 {
		s.Step(d)
		steps++
	}
	return steps
}
