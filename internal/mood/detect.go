// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package mood

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Detection defaults.
const (
	DefaultMessageWindow       = 5
	DefaultConfidenceThreshold = 0.2
)

// Options tunes a detection pass. Zero values select the defaults.
type Options struct {
	// MessageWindow is how many of the most recent texts are analyzed.
	MessageWindow int
	// ConfidenceThreshold is the minimum confidence for a non-neutral result.
	// Nil selects DefaultConfidenceThreshold; a threshold of 0 disables gating.
	ConfidenceThreshold *float64
	// GraphemeAwareEmoji counts emoji per grapheme cluster instead of per
	// substring occurrence.
	GraphemeAwareEmoji bool
}

func (o Options) withDefaults() Options {
	if o.MessageWindow <= 0 {
		o.MessageWindow = DefaultMessageWindow
	}
	if o.ConfidenceThreshold == nil {
		o.ConfidenceThreshold = Threshold(DefaultConfidenceThreshold)
	}
	return o
}

// Threshold returns v as an Options.ConfidenceThreshold.
func Threshold(v float64) *float64 {
	return &v
}

// EffectiveThreshold is the threshold a detection with these options uses.
func (o Options) EffectiveThreshold() float64 {
	return *o.withDefaults().ConfidenceThreshold
}

// Detect analyzes the last MessageWindow texts and returns the dominant mood.
// A confidence below the threshold yields (Neutral, 0); the signals are
// returned either way for inspection. Detect is pure.
func Detect(texts []string, opts Options) Result {
	return DetectWith(texts, opts)
}

// DetectWith is Detect with additional signals from outside the built-in
// detectors (an LLM classifier, a manual hint) folded into aggregation.
func DetectWith(texts []string, opts Options, extra ...Signal) Result {
	opts = opts.withDefaults()
	text := Window(texts, opts.MessageWindow)

	signals := Signals(text, opts.GraphemeAwareEmoji)
	signals = append(signals, extra...)

	m, confidence := Aggregate(signals)
	if confidence < *opts.ConfidenceThreshold {
		m, confidence = Neutral, 0
	}
	return Result{Mood: m, Confidence: confidence, Signals: signals}
}

// Signals runs every built-in detector over text in a fixed order:
// keyword, punctuation, emoji.
func Signals(text string, graphemeAware bool) []Signal {
	if text == "" {
		return nil
	}
	text = norm.NFC.String(text)

	var signals []Signal
	signals = append(signals, KeywordSignals(text)...)
	signals = append(signals, PunctuationSignals(text)...)
	signals = append(signals, EmojiSignals(text, graphemeAware)...)
	return signals
}

// Window joins the last n texts with newlines.
func Window(texts []string, n int) string {
	if n > 0 && len(texts) > n {
		texts = texts[len(texts)-n:]
	}
	return strings.Join(texts, "\n")
}
