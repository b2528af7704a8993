// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ambient

import (
	"sync"
	"time"

	"github.com/jeranaias/ambient/internal/mood"
	"github.com/jeranaias/ambient/internal/theme"
)

// DefaultTransition is the duration of a mood transition when none is set.
const DefaultTransition = 800 * time.Millisecond

// Sink receives every theme the controller displays.
type Sink interface {
	Apply(t theme.Theme)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(t theme.Theme)

// Apply calls f(t).
func (f SinkFunc) Apply(t theme.Theme) { f(t) }

// Phase is the controller's animation state.
type Phase int

const (
	// PhaseIdle means nothing has been displayed yet.
	PhaseIdle Phase = iota
	// PhaseDisplaying means the displayed theme is at rest.
	PhaseDisplaying
	// PhaseTransitioning means a frame loop is moving toward the target.
	PhaseTransitioning
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseDisplaying:
		return "displaying"
	case PhaseTransitioning:
		return "transitioning"
	default:
		return "idle"
	}
}

// ControllerOptions configures a Controller. Nil fields get defaults.
type ControllerOptions struct {
	Scheduler Scheduler
	Clock     Clock
	Sink      Sink
	// Duration of a transition. Zero means DefaultTransition; negative
	// values snap straight to the target.
	Duration time.Duration
	// Easing applied to linear progress. Nil means theme.EaseOutCubic.
	Easing theme.EasingFunc
}

// Controller animates the displayed theme toward the target theme of the
// latest MoodState. At most one frame loop is active at a time; a new
// target restarts the transition from whatever is currently displayed.
type Controller struct {
	mu        sync.Mutex
	scheduler Scheduler
	clock     Clock
	sink      Sink
	duration  time.Duration
	easing    theme.EasingFunc

	enabled bool
	phase   Phase

	displayed  theme.Theme
	target     theme.Theme
	targetMood mood.Mood
	start      theme.Theme
	startedAt  time.Time

	cancel CancelFunc
	gen    uint64

	// seq orders emissions so the sink never sees an older theme after a
	// newer one when frames and updates race.
	seq      uint64
	emitMu   sync.Mutex
	lastEmit uint64

	subs    map[int]func(theme.Theme)
	nextSub int
}

// NewController returns an enabled controller in PhaseIdle.
func NewController(opts ControllerOptions) *Controller {
	c := &Controller{
		scheduler: opts.Scheduler,
		clock:     opts.Clock,
		sink:      opts.Sink,
		easing:    opts.Easing,
		enabled:   true,
		subs:      make(map[int]func(theme.Theme)),
	}
	if c.scheduler == nil {
		c.scheduler = TimerScheduler{}
	}
	if c.clock == nil {
		c.clock = SystemClock{}
	}
	if c.easing == nil {
		c.easing = theme.EaseOutCubic
	}
	c.duration = normalizeDuration(opts.Duration)
	return c
}

func normalizeDuration(d time.Duration) time.Duration {
	if d == 0 {
		return DefaultTransition
	}
	return d
}

// =============================================================================
// TARGETING
// =============================================================================

// Update points the controller at state's theme. The first update displays
// it directly; later ones start a transition when the mood or the resolved
// theme changed.
func (c *Controller) Update(state MoodState) {
	target := state.Theme.Clone()
	if !target.Complete() {
		target = theme.Default(state.Current)
	}

	c.mu.Lock()
	first := c.phase == PhaseIdle
	changed := first || state.Current != c.targetMood || !target.Equal(c.target)
	c.target = target
	c.targetMood = state.Current

	if !c.enabled || !changed {
		c.mu.Unlock()
		return
	}

	c.stopLocked()
	if first || c.duration < 0 {
		c.displayed = target.Clone()
		c.phase = PhaseDisplaying
		c.finishLocked(c.displayed)
		return
	}

	c.start = c.displayed.Clone()
	c.startedAt = c.clock.Now()
	c.phase = PhaseTransitioning
	c.scheduleLocked()
	c.mu.Unlock()
}

// SetEnabled turns the controller on or off. Disabling cancels any
// transition and displays the neutral default; enabling displays the
// latest target directly.
func (c *Controller) SetEnabled(enabled bool) {
	c.mu.Lock()
	if c.enabled == enabled {
		c.mu.Unlock()
		return
	}
	c.enabled = enabled
	c.stopLocked()

	if !enabled {
		c.displayed = theme.Default(mood.Neutral)
		c.phase = PhaseDisplaying
		c.finishLocked(c.displayed)
		return
	}
	if c.target.Complete() {
		c.displayed = c.target.Clone()
		c.phase = PhaseDisplaying
		c.finishLocked(c.displayed)
		return
	}
	c.mu.Unlock()
}

// SetDuration changes the duration used by the next transition.
func (c *Controller) SetDuration(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.duration = normalizeDuration(d)
}

// Stop cancels any pending frame, leaving the displayed theme where it is.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
	if c.phase == PhaseTransitioning {
		c.phase = PhaseDisplaying
	}
}

// =============================================================================
// INSPECTION
// =============================================================================

// Displayed returns the theme currently shown.
func (c *Controller) Displayed() theme.Theme {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.displayed.Clone()
}

// Phase returns the current animation state.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Enabled reports whether the controller follows mood changes.
func (c *Controller) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// Subscribe registers fn to receive every displayed theme after the sink.
// The returned function unregisters it.
func (c *Controller) Subscribe(fn func(theme.Theme)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, id)
			c.mu.Unlock()
		})
	}
}

// =============================================================================
// FRAME LOOP
// =============================================================================

// scheduleLocked requests the next frame for the current generation.
func (c *Controller) scheduleLocked() {
	gen := c.gen
	c.cancel = c.scheduler.RequestFrame(func(now time.Time) {
		c.frame(gen, now)
	})
}

// stopLocked cancels the pending frame and invalidates frames already in
// flight.
func (c *Controller) stopLocked() {
	c.gen++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Controller) frame(gen uint64, now time.Time) {
	c.mu.Lock()
	if gen != c.gen || c.phase != PhaseTransitioning {
		c.mu.Unlock()
		return
	}

	progress := 1.0
	if c.duration > 0 {
		progress = float64(now.Sub(c.startedAt)) / float64(c.duration)
	}
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}

	c.displayed = theme.Interpolate(c.start, c.target, c.easing(progress))
	c.cancel = nil
	if progress >= 1 {
		c.phase = PhaseDisplaying
	} else {
		c.scheduleLocked()
	}
	c.finishLocked(c.displayed.Clone())
}

// finishLocked releases c.mu and delivers t to the sink and subscribers.
func (c *Controller) finishLocked(t theme.Theme) {
	c.seq++
	seq := c.seq
	sink := c.sink
	subs := make([]func(theme.Theme), 0, len(c.subs))
	for id := 0; id < c.nextSub; id++ {
		if fn, ok := c.subs[id]; ok {
			subs = append(subs, fn)
		}
	}
	c.mu.Unlock()

	c.emitMu.Lock()
	defer c.emitMu.Unlock()
	if seq < c.lastEmit {
		return
	}
	c.lastEmit = seq
	if sink != nil {
		sink.Apply(t)
	}
	for _, fn := range subs {
		fn(t)
	}
}
