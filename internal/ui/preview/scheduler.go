// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package preview

import (
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ambient/internal/ambient"
)

// frameMsg carries a controller frame into the Update loop.
type frameMsg struct {
	req *frameRequest
}

type frameRequest struct {
	fn        func(time.Time)
	cancelled atomic.Bool
}

func (r *frameRequest) run(now time.Time) {
	if r.cancelled.Load() {
		return
	}
	r.fn(now)
}

// TeaScheduler implements ambient.Scheduler by posting frames to a Bubble
// Tea program. Before Attach it runs frames on the timer goroutine.
type TeaScheduler struct {
	Interval time.Duration

	mu   sync.Mutex
	send func(tea.Msg)
}

var _ ambient.Scheduler = (*TeaScheduler)(nil)

// NewTeaScheduler creates a scheduler ticking at ambient.FrameInterval.
func NewTeaScheduler() *TeaScheduler {
	return &TeaScheduler{Interval: ambient.FrameInterval}
}

// Attach routes frames to send, normally (*tea.Program).Send.
func (s *TeaScheduler) Attach(send func(tea.Msg)) {
	s.mu.Lock()
	s.send = send
	s.mu.Unlock()
}

// RequestFrame schedules fn one interval from now.
func (s *TeaScheduler) RequestFrame(fn func(now time.Time)) ambient.CancelFunc {
	req := &frameRequest{fn: fn}
	interval := s.Interval
	if interval <= 0 {
		interval = ambient.FrameInterval
	}
	timer := time.AfterFunc(interval, func() {
		s.mu.Lock()
		send := s.send
		s.mu.Unlock()
		if send == nil {
			req.run(time.Now())
			return
		}
		send(frameMsg{req: req})
	})
	return func() {
		req.cancelled.Store(true)
		timer.Stop()
	}
}
