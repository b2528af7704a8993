// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ambient

import (
	"context"
	"log"
	"sync"

	"github.com/jeranaias/ambient/internal/config"
	"github.com/jeranaias/ambient/internal/mood"
	"github.com/jeranaias/ambient/internal/textfx"
	"github.com/jeranaias/ambient/internal/theme"
)

// SignalSource supplies extra mood signals from outside the built-in
// detectors, such as a language model.
type SignalSource interface {
	Signals(ctx context.Context, texts []string) ([]mood.Signal, error)
}

// EngineOptions configures an Engine. Nil fields get defaults.
type EngineOptions struct {
	// Controller drives the displayed theme. Nil creates one on a
	// TimerScheduler.
	Controller *Controller
	// Source adds signals to every analysis. Optional.
	Source SignalSource
	Clock  Clock
}

// Engine owns the mood state for one session and keeps the controller,
// settings and text rules consistent with it.
type Engine struct {
	mu        sync.Mutex
	settings  *config.Settings
	overrides theme.Overrides
	rules     []textfx.TextRule
	state     MoodState
	source    SignalSource

	ctrl  *Controller
	clock Clock

	subs    map[int]func(MoodState)
	nextSub int
}

// NewEngine builds an engine from settings. A nil settings uses
// config.Default().
func NewEngine(settings *config.Settings, opts EngineOptions) *Engine {
	e := &Engine{
		state:  NewMoodState(),
		source: opts.Source,
		ctrl:   opts.Controller,
		clock:  opts.Clock,
		subs:   make(map[int]func(MoodState)),
	}
	if e.clock == nil {
		e.clock = SystemClock{}
	}
	if e.ctrl == nil {
		e.ctrl = NewController(ControllerOptions{Clock: e.clock})
	}
	e.ApplySettings(settings)
	return e
}

// =============================================================================
// SETTINGS
// =============================================================================

// ApplySettings swaps in new settings: theme overrides are re-resolved for
// the current mood, text rules recompiled and the controller's duration and
// enabled state updated. Rules that fail to compile are logged, skipped and
// returned.
func (e *Engine) ApplySettings(s *config.Settings) []error {
	if s == nil {
		s = config.Default()
	}
	s = s.Clone()

	rules, errs := s.Rules()
	for _, err := range errs {
		log.Printf("ambient: %v", err)
	}

	e.mu.Lock()
	prev := e.state
	next := prev
	switch {
	case s.ManualMood != "":
		next = ForceMood(prev, s.ManualMood, s.MoodThemeOverrides, e.clock.Now())
	case e.settings != nil && e.settings.ManualMood != "":
		next = ReleaseManual(prev)
		next.Theme = theme.Resolve(prev.Current, s.MoodThemeOverrides)
	default:
		next.Theme = theme.Resolve(prev.Current, s.MoodThemeOverrides)
	}
	e.settings = s
	e.overrides = s.MoodThemeOverrides
	e.rules = rules
	e.state = next
	e.mu.Unlock()

	duration := s.TransitionDuration()
	if duration <= 0 {
		duration = -1
	}
	e.ctrl.SetDuration(duration)
	e.ctrl.SetEnabled(s.ThemeActive())
	e.ctrl.Update(next)

	if next.Current != prev.Current {
		e.notify(next)
	}
	return errs
}

// Settings returns a copy of the active settings.
func (e *Engine) Settings() *config.Settings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settings.Clone()
}

// SetSource replaces the external signal source. Nil disables it.
func (e *Engine) SetSource(src SignalSource) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.source = src
}

// =============================================================================
// ANALYSIS
// =============================================================================

// Analyze detects the mood of the conversation and folds it into the state.
// A manual mood in the settings wins over detection. When the external
// source fails the error is logged and analysis continues without it; the
// returned error is only set when ctx is done.
func (e *Engine) Analyze(ctx context.Context, texts []string) (MoodState, error) {
	if err := ctx.Err(); err != nil {
		return e.State(), err
	}

	e.mu.Lock()
	s := e.settings
	overrides := e.overrides
	source := e.source
	e.mu.Unlock()

	if !s.ThemeActive() {
		return e.State(), nil
	}

	var extra []mood.Signal
	if s.ManualMood == "" && source != nil {
		signals, err := source.Signals(ctx, lastN(texts, s.MoodAnalysisWindow))
		switch {
		case err == nil:
			extra = signals
		case ctx.Err() != nil:
			return e.State(), ctx.Err()
		default:
			log.Printf("ambient: external signals unavailable: %v", err)
		}
	}

	now := e.clock.Now()
	e.mu.Lock()
	prev := e.state
	var next MoodState
	if s.ManualMood != "" {
		next = ForceMood(prev, s.ManualMood, overrides, now)
	} else {
		res := mood.DetectWith(texts, s.DetectOptions(), extra...)
		next = UpdateMoodState(prev, res, overrides, now)
	}
	e.state = next
	e.mu.Unlock()

	e.ctrl.Update(next)
	if next.Current != prev.Current {
		e.notify(next)
	}
	return next, nil
}

// State returns the current mood state.
func (e *Engine) State() MoodState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Reset returns to the neutral state.
func (e *Engine) Reset() {
	e.mu.Lock()
	prev := e.state
	next := NewMoodState()
	next.Theme = theme.Resolve(mood.Neutral, e.overrides)
	next.LastChange = e.clock.Now()
	e.state = next
	e.mu.Unlock()

	e.ctrl.Update(next)
	if prev.Current != next.Current {
		e.notify(next)
	}
}

// Subscribe registers fn to be called whenever the current mood changes.
// The returned function unregisters it.
func (e *Engine) Subscribe(fn func(MoodState)) (unsubscribe func()) {
	e.mu.Lock()
	id := e.nextSub
	e.nextSub++
	e.subs[id] = fn
	e.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Lock()
			delete(e.subs, id)
			e.mu.Unlock()
		})
	}
}

func (e *Engine) notify(state MoodState) {
	e.mu.Lock()
	subs := make([]func(MoodState), 0, len(e.subs))
	for id := 0; id < e.nextSub; id++ {
		if fn, ok := e.subs[id]; ok {
			subs = append(subs, fn)
		}
	}
	e.mu.Unlock()

	for _, fn := range subs {
		fn(state)
	}
}

// =============================================================================
// RENDERING HELPERS
// =============================================================================

// Controller returns the engine's transition controller.
func (e *Engine) Controller() *Controller {
	return e.ctrl
}

// Tokens projects the displayed theme onto design tokens at the configured
// intensity. Disabled particle or background layers are written as none.
func (e *Engine) Tokens() []theme.Token {
	e.mu.Lock()
	s := e.settings
	e.mu.Unlock()
	return theme.Tokens(LayerTheme(e.ctrl.Displayed(), s), s.Intensity)
}

// LayerTheme clears the fields of t whose layers are disabled in s.
func LayerTheme(t theme.Theme, s *config.Settings) theme.Theme {
	if !s.Layers.Particles {
		t.ParticleEffect = theme.ParticleNone
	}
	if !s.Layers.Background {
		t.BgAnimation = theme.BackgroundNone
	}
	return t
}

// Rules returns the compiled text rules in effect.
func (e *Engine) Rules() []textfx.TextRule {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]textfx.TextRule(nil), e.rules...)
}

// ProcessText segments text with the configured rules. When text effects
// are off, or nothing matches, the whole text comes back as one plain
// segment.
func (e *Engine) ProcessText(text string) []textfx.Segment {
	e.mu.Lock()
	active := e.settings.TextEffectsActive()
	rules := e.rules
	e.mu.Unlock()

	if text == "" {
		return []textfx.Segment{}
	}
	if !active || !textfx.HasAnyMatch(text, rules) {
		return []textfx.Segment{{Type: textfx.SegmentText, Content: text, Key: "text-0"}}
	}
	return textfx.ProcessText(text, rules)
}

func lastN(texts []string, n int) []string {
	if n <= 0 || len(texts) <= n {
		return texts
	}
	return texts[len(texts)-n:]
}
