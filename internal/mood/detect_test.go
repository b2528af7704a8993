// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package mood

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// AGGREGATOR TESTS
// =============================================================================

func TestAggregate_NoSignals(t *testing.T) {
	m, c := Aggregate(nil)
	assert.Equal(t, Neutral, m)
	assert.Zero(t, c)
}

func TestAggregate_TieResolvesInDeclarationOrder(t *testing.T) {
	m, c := Aggregate([]Signal{
		{Mood: Romantic, Weight: 1},
		{Mood: Heated, Weight: 1},
	})
	assert.Equal(t, Heated, m)
	assert.InDelta(t, 0.5*0.2, c, 1e-9)
}

func TestAggregate_Saturates(t *testing.T) {
	m, c := Aggregate([]Signal{{Mood: Excited, Weight: 20}})
	assert.Equal(t, Excited, m)
	assert.InDelta(t, 1.0, c, 1e-9)
}

func TestAggregate_IgnoresUnknownMoods(t *testing.T) {
	m, c := Aggregate([]Signal{{Mood: "bogus", Weight: 50}})
	assert.Equal(t, Neutral, m)
	assert.Zero(t, c)
}

// =============================================================================
// DETECT TESTS
// =============================================================================

func TestDetect_Empty(t *testing.T) {
	res := Detect(nil, Options{})
	assert.Equal(t, Neutral, res.Mood)
	assert.Zero(t, res.Confidence)
	assert.Empty(t, res.Signals)
}

func TestDetect_HeatedExample(t *testing.T) {
	res := Detect([]string{"I HATE THIS!!! this is ridiculous, ugh"}, Options{})

	require.Equal(t, Heated, res.Mood)
	// heated: 3 keywords (4.5) + density (2.5) + 2 caps runs (1.6) = 8.6
	// excited: density (2) + one run (1.5) + caps (1.0) = 4.5
	assert.InDelta(t, 8.6/13.1, res.Confidence, 1e-9)
	assert.Greater(t, res.Confidence, 0.35)
}

func TestDetect_ThresholdGating(t *testing.T) {
	res := Detect([]string{"ok"}, Options{ConfidenceThreshold: Threshold(0.9)})
	assert.Equal(t, Neutral, res.Mood)
	assert.Zero(t, res.Confidence)

	// Weak evidence is gated but still reported.
	res = Detect([]string{"haha"}, Options{ConfidenceThreshold: Threshold(0.9)})
	assert.Equal(t, Neutral, res.Mood)
	assert.Zero(t, res.Confidence)
	assert.Len(t, res.Signals, 1)
}

func TestDetect_ZeroThresholdDisablesGating(t *testing.T) {
	// one keyword: 1.5 of 1.5 total, scaled by 1.5/10
	res := Detect([]string{"love"}, Options{ConfidenceThreshold: Threshold(0)})
	assert.Equal(t, Romantic, res.Mood)
	assert.InDelta(t, 0.15, res.Confidence, 1e-9)

	assert.Equal(t, Neutral, Detect([]string{"love"}, Options{}).Mood)
	assert.InDelta(t, DefaultConfidenceThreshold, Options{}.EffectiveThreshold(), 1e-9)
	assert.Zero(t, Options{ConfidenceThreshold: Threshold(0)}.EffectiveThreshold())
}

func TestDetect_DefaultThreshold(t *testing.T) {
	weak := Detect([]string{"haha"}, Options{})
	assert.Equal(t, Neutral, weak.Mood)

	strong := Detect([]string{"haha lol 😂"}, Options{})
	assert.Equal(t, Playful, strong.Mood)
	assert.InDelta(t, 0.5, strong.Confidence, 1e-9)
}

func TestDetect_MessageWindow(t *testing.T) {
	texts := []string{"I HATE THIS!!! ugh", "hi", "hi", "hi", "hi", "hi"}

	assert.Equal(t, Neutral, Detect(texts, Options{}).Mood)
	assert.Equal(t, Heated, Detect(texts, Options{MessageWindow: 6}).Mood)
}

func TestDetect_Deterministic(t *testing.T) {
	texts := []string{"omg this is amazing!!", "haha 😂 so silly", "I love it ❤"}
	a := Detect(texts, Options{})
	b := Detect(texts, Options{})
	assert.Equal(t, a, b)
}

func TestDetect_ExtraSignals(t *testing.T) {
	res := DetectWith([]string{"hello"}, Options{}, Signal{Mood: Serene, Weight: 5, Source: SourceLLM})
	assert.Equal(t, Serene, res.Mood)
	assert.InDelta(t, 0.5, res.Confidence, 1e-9)
	require.Len(t, res.Signals, 1)
	assert.Equal(t, SourceLLM, res.Signals[0].Source)
}

func TestScores_Monotonic(t *testing.T) {
	prev := 0.0
	for n := 1; n <= 6; n++ {
		text := strings.Repeat("haha 😜 ", n)
		score := Scores(Signals(text, false))[Playful]
		assert.GreaterOrEqual(t, score, prev, "n=%d", n)
		prev = score
	}
}

func TestWindow(t *testing.T) {
	assert.Equal(t, "c\nd", Window([]string{"a", "b", "c", "d"}, 2))
	assert.Equal(t, "a\nb", Window([]string{"a", "b"}, 5))
	assert.Equal(t, "", Window(nil, 5))
}

func TestParse(t *testing.T) {
	m, err := Parse(" Heated ")
	require.NoError(t, err)
	assert.Equal(t, Heated, m)

	_, err = Parse("grumpy")
	assert.ErrorIs(t, err, ErrUnknownMood)
}

func TestAll_NeutralFirst(t *testing.T) {
	moods := All()
	require.Len(t, moods, 10)
	assert.Equal(t, Neutral, moods[0])
}
