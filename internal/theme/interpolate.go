// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package theme

import "math"

// Snap thresholds for discrete fields. Glow, tint, background, speed and the
// stop count take the target value from SnapThreshold on; particles switch
// only once progress is past ParticleSnapThreshold.
const (
	SnapThreshold         = 0.5
	ParticleSnapThreshold = 0.7
)

// EasingFunc maps linear progress in [0, 1] to eased progress.
type EasingFunc func(t float64) float64

// EaseLinear is constant speed.
func EaseLinear(t float64) float64 {
	return t
}

// EaseOutCubic decelerates to zero: 1 - (1-t)^3.
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// Interpolate blends from toward to at progress in [0, 1]. Gradient stops and
// the accent interpolate continuously; everything else snaps to the target
// at its threshold. Progress is clamped.
func Interpolate(from, to Theme, progress float64) Theme {
	p := math.Max(0, math.Min(1, progress))
	snapped := p >= SnapThreshold

	out := Theme{
		Accent:         InterpolateColor(from.Accent, to.Accent, p),
		Glow:           from.Glow,
		TextTint:       from.TextTint,
		AnimationSpeed: from.AnimationSpeed,
		ParticleEffect: from.ParticleEffect,
		BgAnimation:    from.BgAnimation,
	}
	if snapped {
		out.Glow = to.Glow
		out.TextTint = to.TextTint
		out.AnimationSpeed = to.AnimationSpeed
		out.BgAnimation = to.BgAnimation
	}
	if p > ParticleSnapThreshold {
		out.ParticleEffect = to.ParticleEffect
	}

	stops := len(from.Gradient)
	if snapped {
		stops = len(to.Gradient)
	}
	out.Gradient = make([]string, stops)
	for i := range out.Gradient {
		out.Gradient[i] = InterpolateColor(stopAt(from.Gradient, i), stopAt(to.Gradient, i), p)
	}
	return out
}

// stopAt returns stop i, clamped to the last stop, so two and three stop
// gradients can be blended.
func stopAt(stops []string, i int) string {
	if len(stops) == 0 {
		return ""
	}
	if i >= len(stops) {
		return stops[len(stops)-1]
	}
	return stops[i]
}
