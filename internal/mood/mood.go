// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package mood

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMood is returned by Parse for names outside the closed mood set.
var ErrUnknownMood = errors.New("unknown mood")

// Mood is one of the fixed ambient categories driving theme selection.
type Mood string

const (
	Neutral    Mood = "neutral"
	Heated     Mood = "heated"
	Romantic   Mood = "romantic"
	Melancholy Mood = "melancholy"
	Excited    Mood = "excited"
	Mysterious Mood = "mysterious"
	Playful    Mood = "playful"
	Tense      Mood = "tense"
	Serene     Mood = "serene"
	Creative   Mood = "creative"
)

// all is the declaration order. Aggregation ties resolve in this order.
var all = []Mood{
	Neutral,
	Heated,
	Romantic,
	Melancholy,
	Excited,
	Mysterious,
	Playful,
	Tense,
	Serene,
	Creative,
}

// All returns every mood in declaration order, neutral first.
func All() []Mood {
	out := make([]Mood, len(all))
	copy(out, all)
	return out
}

// Valid reports whether m belongs to the closed mood set.
func (m Mood) Valid() bool {
	for _, candidate := range all {
		if m == candidate {
			return true
		}
	}
	return false
}

func (m Mood) String() string {
	return string(m)
}

// Parse converts a case-insensitive name into a Mood.
func Parse(s string) (Mood, error) {
	m := Mood(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return Neutral, fmt.Errorf("%q: %w", s, ErrUnknownMood)
	}
	return m, nil
}

// Source identifies which detector produced a Signal.
type Source string

const (
	SourceKeyword     Source = "keyword"
	SourcePunctuation Source = "punctuation"
	SourceEmoji       Source = "emoji"
	SourceLLM         Source = "llm"
	SourceManual      Source = "manual"
)

// Signal is a single weighted piece of evidence for a mood.
type Signal struct {
	Mood   Mood    `json:"mood"`
	Weight float64 `json:"weight"`
	Source Source  `json:"source"`
}

// Result is the outcome of one detection pass.
type Result struct {
	Mood       Mood     `json:"mood"`
	Confidence float64  `json:"confidence"`
	Signals    []Signal `json:"signals"`
}
