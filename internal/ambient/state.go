// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ambient

import (
	"time"

	"github.com/jeranaias/ambient/internal/mood"
	"github.com/jeranaias/ambient/internal/theme"
)

// HysteresisFactor is the share of the current confidence a different mood
// must exceed to take over.
const HysteresisFactor = 0.8

// MoodState is the mood currently shown and the theme it resolves to.
type MoodState struct {
	Current    mood.Mood     `json:"current"`
	Confidence float64       `json:"confidence"`
	Theme      theme.Theme   `json:"theme"`
	Signals    []mood.Signal `json:"signals"`
	LastChange time.Time     `json:"last_change"`
}

// NewMoodState returns the neutral starting state.
func NewMoodState() MoodState {
	return MoodState{
		Current: mood.Neutral,
		Theme:   theme.Default(mood.Neutral),
	}
}

// UpdateMoodState folds a detection into current and returns the new state.
//
// A detection of the current mood always refreshes confidence and signals
// while keeping the theme and LastChange. A different mood is accepted only
// when its confidence is above HysteresisFactor times the current
// confidence; otherwise only the signals are refreshed.
func UpdateMoodState(current MoodState, detection mood.Result, overrides theme.Overrides, now time.Time) MoodState {
	next := current
	next.Signals = detection.Signals

	if detection.Mood == current.Current {
		// The latest reading wins, lower or not.
		next.Confidence = detection.Confidence
		return next
	}
	if detection.Confidence <= current.Confidence*HysteresisFactor {
		return next
	}

	next.Current = detection.Mood
	next.Confidence = detection.Confidence
	next.Theme = theme.Resolve(detection.Mood, overrides)
	next.LastChange = now
	return next
}

// ForceMood pins the state to m regardless of hysteresis, as a manual
// override does. LastChange only moves when the mood actually changes.
func ForceMood(current MoodState, m mood.Mood, overrides theme.Overrides, now time.Time) MoodState {
	next := current
	next.Confidence = 1
	next.Signals = []mood.Signal{{Mood: m, Weight: 1, Source: mood.SourceManual}}
	next.Theme = theme.Resolve(m, overrides)
	if m != current.Current {
		next.Current = m
		next.LastChange = now
	}
	return next
}

// ReleaseManual ends a manual override. The pinned mood stays on display but
// its confidence drops to zero so the next detection of any mood can replace
// it without fighting hysteresis.
func ReleaseManual(current MoodState) MoodState {
	next := current
	next.Confidence = 0
	next.Signals = nil
	return next
}
