// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package mood

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Detector weights. Emoji carry the strongest single signal.
const (
	KeywordWeight = 1.5
	EmojiWeight   = 2.0
)

// Punctuation thresholds are densities: occurrences per rune of input.
const (
	exclaimHighDensity  = 0.03
	exclaimLowDensity   = 0.015
	questionDensity     = 0.02
	multiExclaimWeight  = 1.5
	capsHeatedWeight    = 0.8
	capsExcitedWeight   = 0.5
	manyEllipsesAtLeast = 3
)

type keywordMatcher struct {
	mood Mood
	re   *regexp.Regexp
}

var (
	keywordMatchers = compileKeywords()

	multiExclaimRE = regexp.MustCompile(`!{2,}`)
	ellipsisRE     = regexp.MustCompile(`\.{3,}|…`)
	capsRunRE      = regexp.MustCompile(`\b[A-Z]{3,}\b`)
)

// compileKeywords builds one matcher per keyword, in mood declaration order
// so the signal list is stable between runs.
func compileKeywords() []keywordMatcher {
	var out []keywordMatcher
	for _, m := range all {
		for _, kw := range keywords[m] {
			out = append(out, keywordMatcher{
				mood: m,
				re:   regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(kw) + `\b`),
			})
		}
	}
	return out
}

// =============================================================================
// KEYWORD DETECTOR
// =============================================================================

// KeywordSignals emits one signal per matching keyword, weighted by the
// number of occurrences. Keywords of the same mood are not pre-summed.
func KeywordSignals(text string) []Signal {
	if text == "" {
		return nil
	}
	var signals []Signal
	for _, km := range keywordMatchers {
		n := len(km.re.FindAllStringIndex(text, -1))
		if n == 0 {
			continue
		}
		signals = append(signals, Signal{
			Mood:   km.mood,
			Weight: KeywordWeight * float64(n),
			Source: SourceKeyword,
		})
	}
	return signals
}

// =============================================================================
// PUNCTUATION DETECTOR
// =============================================================================

// PunctuationSignals derives signals from exclamation and question density,
// ellipses, and runs of capital letters.
func PunctuationSignals(text string) []Signal {
	if text == "" {
		return nil
	}
	length := utf8.RuneCountInString(text)
	if length < 1 {
		length = 1
	}

	var signals []Signal
	add := func(m Mood, w float64) {
		signals = append(signals, Signal{Mood: m, Weight: w, Source: SourcePunctuation})
	}

	exclaimDensity := float64(strings.Count(text, "!")) / float64(length)
	switch {
	case exclaimDensity > exclaimHighDensity:
		add(Heated, 2.5)
		add(Excited, 2)
	case exclaimDensity > exclaimLowDensity:
		add(Excited, 1.5)
	}

	if runs := len(multiExclaimRE.FindAllStringIndex(text, -1)); runs > 0 {
		add(Excited, multiExclaimWeight*float64(runs))
	}

	ellipses := len(ellipsisRE.FindAllStringIndex(text, -1))
	switch {
	case ellipses >= manyEllipsesAtLeast:
		add(Melancholy, 2)
		add(Mysterious, 1.5)
	case ellipses > 0:
		add(Mysterious, 1)
	}

	if float64(strings.Count(text, "?"))/float64(length) > questionDensity {
		add(Tense, 1.5)
	}

	if caps := len(capsRunRE.FindAllStringIndex(text, -1)); caps > 0 {
		add(Heated, float64(caps)*capsHeatedWeight)
		add(Excited, float64(caps)*capsExcitedWeight)
	}

	return signals
}

// =============================================================================
// EMOJI DETECTOR
// =============================================================================

// EmojiSignals counts the emoji of every mood. By default occurrences are
// counted as plain substrings; with graphemeAware set the text is walked one
// grapheme cluster at a time and skin tone modifiers and variation selectors
// are ignored, so "👍🏽" counts as "👍" and ZWJ sequences are not split.
func EmojiSignals(text string, graphemeAware bool) []Signal {
	if text == "" {
		return nil
	}

	var clusters map[string]int
	if graphemeAware {
		clusters = countClusters(text)
	}

	var signals []Signal
	for _, m := range all {
		for _, e := range emoji[m] {
			var n int
			if graphemeAware {
				n = clusters[e]
			} else {
				n = strings.Count(text, e)
			}
			if n == 0 {
				continue
			}
			signals = append(signals, Signal{
				Mood:   m,
				Weight: EmojiWeight * float64(n),
				Source: SourceEmoji,
			})
		}
	}
	return signals
}

func countClusters(text string) map[string]int {
	counts := make(map[string]int)
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		counts[stripEmojiModifiers(g.Str())]++
	}
	return counts
}

// stripEmojiModifiers drops variation selectors and Fitzpatrick modifiers.
func stripEmojiModifiers(cluster string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\uFE0F' || r == '\uFE0E':
			return -1
		case r >= 0x1F3FB && r <= 0x1F3FF:
			return -1
		}
		return r
	}, cluster)
}
