// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package mood

import "math"

// SaturationMass is the total signal weight at which the evidence factor of
// the confidence formula saturates at 1.
const SaturationMass = 10.0

// Scores sums signal weights per mood. Neutral never receives weight from the
// detectors but is always present in the result.
func Scores(signals []Signal) map[Mood]float64 {
	scores := make(map[Mood]float64, len(all))
	for _, m := range all {
		scores[m] = 0
	}
	for _, s := range signals {
		if !s.Mood.Valid() {
			continue
		}
		scores[s.Mood] += s.Weight
	}
	return scores
}

// Aggregate reduces a flat signal list to the dominant mood and a confidence
// in [0, 1]:
//
//	confidence = min(1, (max / total) * min(1, total / SaturationMass))
//
// Both dominance and absolute evidence are required. With no positive
// evidence the result is (Neutral, 0).
func Aggregate(signals []Signal) (Mood, float64) {
	if len(signals) == 0 {
		return Neutral, 0
	}

	scores := Scores(signals)
	var total float64
	for _, m := range all {
		total += scores[m]
	}
	if total <= 0 {
		return Neutral, 0
	}

	winner := Neutral
	best := 0.0
	for _, m := range all {
		if scores[m] > best {
			best = scores[m]
			winner = m
		}
	}
	if best <= 0 {
		return Neutral, 0
	}

	confidence := (best / total) * math.Min(1, total/SaturationMass)
	return winner, math.Min(1, confidence)
}
