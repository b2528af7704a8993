// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package theme

import (
	"fmt"

	"github.com/jeranaias/ambient/internal/mood"
)

// Override is a partial theme supplied by the user. Empty fields are left to
// the default.
type Override struct {
	Gradient       []string   `toml:"gradient,omitempty" json:"gradient,omitempty"`
	Accent         string     `toml:"accent,omitempty" json:"accent,omitempty"`
	Glow           string     `toml:"glow,omitempty" json:"glow,omitempty"`
	TextTint       string     `toml:"text_tint,omitempty" json:"text_tint,omitempty"`
	AnimationSpeed Speed      `toml:"animation_speed,omitempty" json:"animation_speed,omitempty"`
	ParticleEffect Particle   `toml:"particle_effect,omitempty" json:"particle_effect,omitempty"`
	BgAnimation    Background `toml:"bg_animation,omitempty" json:"bg_animation,omitempty"`
}

// Overrides maps moods to their user overrides.
type Overrides map[mood.Mood]Override

// Merge layers o over t. Fields of o that are empty or malformed are
// ignored, so the result is complete whenever t is.
func (t Theme) Merge(o Override) Theme {
	out := t.Clone()
	if validGradient(o.Gradient) {
		out.Gradient = append([]string(nil), o.Gradient...)
	}
	if o.Accent != "" {
		out.Accent = o.Accent
	}
	if o.Glow != "" {
		out.Glow = o.Glow
	}
	if o.TextTint != "" {
		out.TextTint = o.TextTint
	}
	if o.AnimationSpeed.Valid() {
		out.AnimationSpeed = o.AnimationSpeed
	}
	if o.ParticleEffect != "" && o.ParticleEffect.Valid() {
		out.ParticleEffect = o.ParticleEffect
	}
	if o.BgAnimation != "" && o.BgAnimation.Valid() {
		out.BgAnimation = o.BgAnimation
	}
	return out
}

// Resolve returns the default theme for m with overrides[m] merged in.
func Resolve(m mood.Mood, overrides Overrides) Theme {
	base := Default(m)
	if o, ok := overrides[m]; ok {
		return base.Merge(o)
	}
	return base
}

// Validate reports the first malformed field of o. Merge tolerates bad
// input; Validate exists so configuration loading can surface it.
func (o Override) Validate() error {
	if len(o.Gradient) > 0 && !validGradient(o.Gradient) {
		return fmt.Errorf("gradient needs %d-%d stops, got %d", MinStops, MaxStops, len(o.Gradient))
	}
	for i, stop := range o.Gradient {
		if _, ok := ParseColor(stop); !ok {
			return fmt.Errorf("gradient[%d]: invalid color %q", i, stop)
		}
	}
	fields := []struct{ name, value string }{
		{"accent", o.Accent},
		{"glow", o.Glow},
		{"text_tint", o.TextTint},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if _, ok := ParseColor(f.value); !ok {
			return fmt.Errorf("%s: invalid color %q", f.name, f.value)
		}
	}
	if o.AnimationSpeed != "" && !o.AnimationSpeed.Valid() {
		return fmt.Errorf("animation_speed: unknown speed %q", o.AnimationSpeed)
	}
	if !o.ParticleEffect.Valid() {
		return fmt.Errorf("particle_effect: unknown effect %q", o.ParticleEffect)
	}
	if !o.BgAnimation.Valid() {
		return fmt.Errorf("bg_animation: unknown animation %q", o.BgAnimation)
	}
	return nil
}

func validGradient(stops []string) bool {
	if len(stops) < MinStops || len(stops) > MaxStops {
		return false
	}
	for _, s := range stops {
		if s == "" {
			return false
		}
	}
	return true
}
