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
// KEYWORD DETECTOR TESTS
// =============================================================================

func TestKeywordSignals_Empty(t *testing.T) {
	assert.Empty(t, KeywordSignals(""))
}

func TestKeywordSignals_CountsOccurrencesCaseInsensitive(t *testing.T) {
	signals := KeywordSignals("love love LOVE")

	require.Len(t, signals, 1)
	assert.Equal(t, Romantic, signals[0].Mood)
	assert.Equal(t, SourceKeyword, signals[0].Source)
	assert.InDelta(t, 4.5, signals[0].Weight, 1e-9)
}

func TestKeywordSignals_WordBoundary(t *testing.T) {
	assert.Empty(t, KeywordSignals("lovely weather"))
	assert.Empty(t, KeywordSignals("shadowy"))
}

func TestKeywordSignals_SameMoodKeywordsAreSeparate(t *testing.T) {
	signals := KeywordSignals("calm and quiet")

	require.Len(t, signals, 2)
	for _, s := range signals {
		assert.Equal(t, Serene, s.Mood)
		assert.InDelta(t, KeywordWeight, s.Weight, 1e-9)
	}
}

func TestKeywordSignals_MultiWordKeyword(t *testing.T) {
	signals := KeywordSignals("I can't wait for tomorrow")

	require.Len(t, signals, 1)
	assert.Equal(t, Excited, signals[0].Mood)
}

// =============================================================================
// PUNCTUATION DETECTOR TESTS
// =============================================================================

func TestPunctuationSignals(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Signal
	}{
		{
			name: "empty",
			text: "",
			want: nil,
		},
		{
			name: "plain text",
			text: "just a normal sentence",
			want: nil,
		},
		{
			name: "many ellipses",
			text: "Wait... what... really... no",
			want: []Signal{
				{Mood: Melancholy, Weight: 2, Source: SourcePunctuation},
				{Mood: Mysterious, Weight: 1.5, Source: SourcePunctuation},
			},
		},
		{
			name: "single ellipsis",
			text: "Hmm... ok",
			want: []Signal{
				{Mood: Mysterious, Weight: 1, Source: SourcePunctuation},
			},
		},
		{
			name: "unicode ellipsis",
			text: "Hmm… ok",
			want: []Signal{
				{Mood: Mysterious, Weight: 1, Source: SourcePunctuation},
			},
		},
		{
			name: "low exclamation density",
			text: strings.Repeat("a", 49) + "!",
			want: []Signal{
				{Mood: Excited, Weight: 1.5, Source: SourcePunctuation},
			},
		},
		{
			name: "question density",
			text: "why?",
			want: []Signal{
				{Mood: Tense, Weight: 1.5, Source: SourcePunctuation},
			},
		},
		{
			name: "multi exclaim runs",
			text: "no!! way!!",
			want: []Signal{
				{Mood: Heated, Weight: 2.5, Source: SourcePunctuation},
				{Mood: Excited, Weight: 2, Source: SourcePunctuation},
				{Mood: Excited, Weight: 3, Source: SourcePunctuation},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PunctuationSignals(tc.text))
		})
	}
}

func TestPunctuationSignals_CapsRuns(t *testing.T) {
	signals := PunctuationSignals("WHAT are YOU doing")

	require.Len(t, signals, 2)
	assert.Equal(t, Heated, signals[0].Mood)
	assert.InDelta(t, 1.6, signals[0].Weight, 1e-9)
	assert.Equal(t, Excited, signals[1].Mood)
	assert.InDelta(t, 1.0, signals[1].Weight, 1e-9)
}

// =============================================================================
// EMOJI DETECTOR TESTS
// =============================================================================

func TestEmojiSignals_Naive(t *testing.T) {
	signals := EmojiSignals("🔥🔥 that was 😂", false)

	require.Len(t, signals, 2)
	assert.Equal(t, Signal{Mood: Heated, Weight: 4, Source: SourceEmoji}, signals[0])
	assert.Equal(t, Signal{Mood: Playful, Weight: 2, Source: SourceEmoji}, signals[1])
}

func TestEmojiSignals_PresentationSelector(t *testing.T) {
	for _, aware := range []bool{false, true} {
		signals := EmojiSignals("❤\uFE0F", aware)
		require.Len(t, signals, 1, "graphemeAware=%v", aware)
		assert.Equal(t, Romantic, signals[0].Mood)
	}
}

func TestEmojiSignals_GraphemeAware(t *testing.T) {
	// Eye in speech bubble is a ZWJ sequence that contains the eye emoji.
	eyeInBubble := "\U0001F441\uFE0F\u200D\U0001F5E8\uFE0F"

	naive := EmojiSignals(eyeInBubble, false)
	require.Len(t, naive, 1)
	assert.Equal(t, Mysterious, naive[0].Mood)

	assert.Empty(t, EmojiSignals(eyeInBubble, true))

	// Skin tone modifiers are folded into their base emoji.
	aware := EmojiSignals("\U0001F9D8\U0001F3FD", true)
	require.Len(t, aware, 1)
	assert.Equal(t, Serene, aware[0].Mood)
}

func TestEmojiSignals_Empty(t *testing.T) {
	assert.Empty(t, EmojiSignals("", false))
	assert.Empty(t, EmojiSignals("no emoji here", true))
}
