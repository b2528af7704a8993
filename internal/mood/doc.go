// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package mood detects the ambient mood of a conversation from its text.

Detection is a three stage pipeline:

	texts -> detectors (keyword, punctuation, emoji) -> []Signal -> Aggregate -> Result

Every detector is a pure function of its input. Signals are weighted pieces
of evidence for a single mood; the aggregator sums them per mood and derives
a confidence that requires both dominance over the other moods and enough
absolute evidence.

# Usage

	res := mood.Detect(messages, mood.Options{MessageWindow: 5})
	if res.Mood != mood.Neutral {
		fmt.Printf("%s (%.2f)\n", res.Mood, res.Confidence)
	}

A nil ConfidenceThreshold selects the default; mood.Threshold(0) turns the
gate off.

# Tunables

The weights and thresholds below were tuned by hand and are exported so
callers can calibrate against real conversations:

	KeywordWeight, EmojiWeight, SaturationMass,
	DefaultMessageWindow, DefaultConfidenceThreshold
*/
package mood
