// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package theme

import (
	"github.com/jeranaias/ambient/internal/mood"
)

// =============================================================================
// DISCRETE FIELDS
// =============================================================================

// Speed is the ambient animation tempo.
type Speed string

const (
	SpeedSlower Speed = "slower"
	SpeedSlow   Speed = "slow"
	SpeedNormal Speed = "normal"
	SpeedFast   Speed = "fast"
	SpeedFaster Speed = "faster"
)

var speedMultipliers = map[Speed]float64{
	SpeedSlower: 0.5,
	SpeedSlow:   0.75,
	SpeedNormal: 1,
	SpeedFast:   1.5,
	SpeedFaster: 2,
}

// Valid reports whether s is a known speed.
func (s Speed) Valid() bool {
	_, ok := speedMultipliers[s]
	return ok
}

// Multiplier scales animation rates; unknown speeds are treated as normal.
func (s Speed) Multiplier() float64 {
	if m, ok := speedMultipliers[s]; ok {
		return m
	}
	return 1
}

// Particle selects the particle layer effect.
type Particle string

const (
	ParticleNone      Particle = "none"
	ParticleSparkles  Particle = "sparkles"
	ParticleEmbers    Particle = "embers"
	ParticleHearts    Particle = "hearts"
	ParticleRain      Particle = "rain"
	ParticleFireflies Particle = "fireflies"
	ParticleBubbles   Particle = "bubbles"
	ParticleStars     Particle = "stars"
	ParticleGlitch    Particle = "glitch"
	ParticleLeaves    Particle = "leaves"
)

var particles = map[Particle]bool{
	ParticleNone: true, ParticleSparkles: true, ParticleEmbers: true,
	ParticleHearts: true, ParticleRain: true, ParticleFireflies: true,
	ParticleBubbles: true, ParticleStars: true, ParticleGlitch: true,
	ParticleLeaves: true,
}

// Valid reports whether p is a known particle effect. Empty means none.
func (p Particle) Valid() bool {
	return p == "" || particles[p]
}

// Background selects the animated background treatment.
type Background string

const (
	BackgroundNone    Background = "none"
	BackgroundPulse   Background = "pulse"
	BackgroundWave    Background = "wave"
	BackgroundShimmer Background = "shimmer"
	BackgroundDrift   Background = "drift"
	BackgroundFlicker Background = "flicker"
	BackgroundBreathe Background = "breathe"
)

var backgrounds = map[Background]bool{
	BackgroundNone: true, BackgroundPulse: true, BackgroundWave: true,
	BackgroundShimmer: true, BackgroundDrift: true, BackgroundFlicker: true,
	BackgroundBreathe: true,
}

// Valid reports whether b is a known background animation. Empty means none.
func (b Background) Valid() bool {
	return b == "" || backgrounds[b]
}

// =============================================================================
// THEME
// =============================================================================

// Theme is the bundle of visual parameters associated with a mood.
// Gradient, Accent, Glow and AnimationSpeed are required; the rest are
// optional and empty when unused.
type Theme struct {
	Gradient       []string   `toml:"gradient" json:"gradient"`
	Accent         string     `toml:"accent" json:"accent"`
	Glow           string     `toml:"glow" json:"glow"`
	TextTint       string     `toml:"text_tint,omitempty" json:"text_tint,omitempty"`
	AnimationSpeed Speed      `toml:"animation_speed" json:"animation_speed"`
	ParticleEffect Particle   `toml:"particle_effect,omitempty" json:"particle_effect,omitempty"`
	BgAnimation    Background `toml:"bg_animation,omitempty" json:"bg_animation,omitempty"`
}

// MinStops and MaxStops bound the number of gradient stops.
const (
	MinStops = 2
	MaxStops = 3
)

// Complete reports whether every required field is populated.
func (t Theme) Complete() bool {
	if len(t.Gradient) < MinStops || len(t.Gradient) > MaxStops {
		return false
	}
	for _, stop := range t.Gradient {
		if stop == "" {
			return false
		}
	}
	return t.Accent != "" && t.Glow != "" && t.AnimationSpeed.Valid()
}

// Clone returns a deep copy of t.
func (t Theme) Clone() Theme {
	t.Gradient = append([]string(nil), t.Gradient...)
	return t
}

// Equal compares two themes field by field.
func (t Theme) Equal(o Theme) bool {
	if len(t.Gradient) != len(o.Gradient) {
		return false
	}
	for i := range t.Gradient {
		if t.Gradient[i] != o.Gradient[i] {
			return false
		}
	}
	return t.Accent == o.Accent &&
		t.Glow == o.Glow &&
		t.TextTint == o.TextTint &&
		t.AnimationSpeed == o.AnimationSpeed &&
		t.ParticleEffect == o.ParticleEffect &&
		t.BgAnimation == o.BgAnimation
}

// =============================================================================
// DEFAULTS
// =============================================================================

var defaults = map[mood.Mood]Theme{
	mood.Neutral: {
		Gradient:       []string{"#1e1e2e", "#313244"},
		Accent:         "#89b4fa",
		Glow:           "rgba(137, 180, 250, 0.25)",
		AnimationSpeed: SpeedNormal,
		ParticleEffect: ParticleNone,
		BgAnimation:    BackgroundNone,
	},
	mood.Heated: {
		Gradient:       []string{"#450a0a", "#b91c1c", "#f97316"},
		Accent:         "#ef4444",
		Glow:           "rgba(239, 68, 68, 0.45)",
		TextTint:       "#fecaca",
		AnimationSpeed: SpeedFast,
		ParticleEffect: ParticleEmbers,
		BgAnimation:    BackgroundFlicker,
	},
	mood.Romantic: {
		Gradient:       []string{"#4a044e", "#be185d", "#f9a8d4"},
		Accent:         "#ec4899",
		Glow:           "rgba(236, 72, 153, 0.4)",
		TextTint:       "#fce7f3",
		AnimationSpeed: SpeedSlow,
		ParticleEffect: ParticleHearts,
		BgAnimation:    BackgroundPulse,
	},
	mood.Melancholy: {
		Gradient:       []string{"#0f172a", "#1e3a5f", "#475569"},
		Accent:         "#64748b",
		Glow:           "rgba(100, 116, 139, 0.3)",
		TextTint:       "#cbd5e1",
		AnimationSpeed: SpeedSlower,
		ParticleEffect: ParticleRain,
		BgAnimation:    BackgroundDrift,
	},
	mood.Excited: {
		Gradient:       []string{"#7c2d12", "#f59e0b", "#fde047"},
		Accent:         "#facc15",
		Glow:           "rgba(250, 204, 21, 0.5)",
		AnimationSpeed: SpeedFaster,
		ParticleEffect: ParticleSparkles,
		BgAnimation:    BackgroundShimmer,
	},
	mood.Mysterious: {
		Gradient:       []string{"#1e1b4b", "#4c1d95", "#0f172a"},
		Accent:         "#a78bfa",
		Glow:           "rgba(167, 139, 250, 0.35)",
		TextTint:       "#ddd6fe",
		AnimationSpeed: SpeedSlow,
		ParticleEffect: ParticleFireflies,
		BgAnimation:    BackgroundDrift,
	},
	mood.Playful: {
		Gradient:       []string{"#831843", "#a21caf", "#22d3ee"},
		Accent:         "#f472b6",
		Glow:           "rgba(244, 114, 182, 0.4)",
		AnimationSpeed: SpeedFast,
		ParticleEffect: ParticleBubbles,
		BgAnimation:    BackgroundWave,
	},
	mood.Tense: {
		Gradient:       []string{"#1c1917", "#44403c", "#7f1d1d"},
		Accent:         "#f59e0b",
		Glow:           "rgba(245, 158, 11, 0.35)",
		TextTint:       "#fde68a",
		AnimationSpeed: SpeedFast,
		ParticleEffect: ParticleGlitch,
		BgAnimation:    BackgroundFlicker,
	},
	mood.Serene: {
		Gradient:       []string{"#042f2e", "#0f766e", "#5eead4"},
		Accent:         "#2dd4bf",
		Glow:           "rgba(45, 212, 191, 0.3)",
		AnimationSpeed: SpeedSlower,
		ParticleEffect: ParticleLeaves,
		BgAnimation:    BackgroundBreathe,
	},
	mood.Creative: {
		Gradient:       []string{"#312e81", "#7c3aed", "#f472b6"},
		Accent:         "#c084fc",
		Glow:           "rgba(192, 132, 252, 0.4)",
		AnimationSpeed: SpeedNormal,
		ParticleEffect: ParticleStars,
		BgAnimation:    BackgroundShimmer,
	},
}

// Default returns the canonical theme for m. Unknown moods get the neutral
// theme.
func Default(m mood.Mood) Theme {
	t, ok := defaults[m]
	if !ok {
		t = defaults[mood.Neutral]
	}
	return t.Clone()
}

// Defaults returns a copy of every canonical theme keyed by mood.
func Defaults() map[mood.Mood]Theme {
	out := make(map[mood.Mood]Theme, len(defaults))
	for m, t := range defaults {
		out[m] = t.Clone()
	}
	return out
}
