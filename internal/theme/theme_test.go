// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/ambient/internal/mood"
)

// =============================================================================
// DEFAULTS AND OVERRIDES
// =============================================================================

func TestDefaults_Complete(t *testing.T) {
	for _, m := range mood.All() {
		t.Run(string(m), func(t *testing.T) {
			th := Default(m)
			assert.True(t, th.Complete(), "default theme for %s is incomplete", m)
			for i, stop := range th.Gradient {
				_, ok := ParseColor(stop)
				assert.True(t, ok, "gradient[%d] %q does not parse", i, stop)
			}
			_, ok := ParseColor(th.Accent)
			assert.True(t, ok)
			_, ok = ParseColor(th.Glow)
			assert.True(t, ok)
		})
	}
}

func TestDefault_UnknownMoodIsNeutral(t *testing.T) {
	assert.True(t, Default("bogus").Equal(Default(mood.Neutral)))
}

func TestDefault_ReturnsCopy(t *testing.T) {
	a := Default(mood.Heated)
	a.Gradient[0] = "#000000"
	assert.NotEqual(t, "#000000", Default(mood.Heated).Gradient[0])
}

func TestMerge_NeverLeavesRequiredFieldsEmpty(t *testing.T) {
	overrides := []Override{
		{},
		{Accent: "#123456"},
		{Gradient: []string{"#000000"}},
		{Gradient: []string{"#000000", ""}},
		{Gradient: []string{"#1", "#2", "#3", "#4"}},
		{AnimationSpeed: "warp"},
		{ParticleEffect: "lasers", BgAnimation: "spin"},
		{Glow: "rgba(0, 0, 0, 0.1)", TextTint: "#ffffff"},
	}
	for _, m := range mood.All() {
		for i, o := range overrides {
			merged := Resolve(m, Overrides{m: o})
			assert.True(t, merged.Complete(), "mood %s override %d", m, i)
		}
	}
}

func TestResolve_AppliesOverride(t *testing.T) {
	th := Resolve(mood.Serene, Overrides{
		mood.Serene: {
			Gradient:       []string{"#000000", "#111111"},
			Accent:         "#abcdef",
			AnimationSpeed: SpeedFaster,
			ParticleEffect: ParticleStars,
		},
	})
	assert.Equal(t, []string{"#000000", "#111111"}, th.Gradient)
	assert.Equal(t, "#abcdef", th.Accent)
	assert.Equal(t, SpeedFaster, th.AnimationSpeed)
	assert.Equal(t, ParticleStars, th.ParticleEffect)
	assert.Equal(t, Default(mood.Serene).Glow, th.Glow)

	// Overrides for other moods do not leak.
	assert.True(t, Resolve(mood.Tense, Overrides{mood.Serene: {Accent: "#abcdef"}}).Equal(Default(mood.Tense)))
}

func TestOverride_Validate(t *testing.T) {
	assert.NoError(t, Override{}.Validate())
	assert.NoError(t, Override{Accent: "#fff", Glow: "rgba(1, 2, 3, 0.5)"}.Validate())
	assert.Error(t, Override{Gradient: []string{"#fff"}}.Validate())
	assert.Error(t, Override{Gradient: []string{"#fff", "blue"}}.Validate())
	assert.Error(t, Override{Accent: "not-a-color"}.Validate())
	assert.Error(t, Override{AnimationSpeed: "warp"}.Validate())
	assert.Error(t, Override{ParticleEffect: "lasers"}.Validate())
	assert.Error(t, Override{BgAnimation: "spin"}.Validate())
}

// =============================================================================
// COLOR TESTS
// =============================================================================

func TestParseColor(t *testing.T) {
	tests := []struct {
		in    string
		want  RGBA
		valid bool
	}{
		{"#ffffff", RGBA{R: 255, G: 255, B: 255, A: 1}, true},
		{"#FFF", RGBA{R: 255, G: 255, B: 255, A: 1}, true},
		{"#ff000080", RGBA{R: 255, A: 128.0 / 255, Alpha: true}, true},
		{"rgb(1, 2, 3)", RGBA{R: 1, G: 2, B: 3, A: 1, Alpha: true}, true},
		{"rgba(10,20,30,0.5)", RGBA{R: 10, G: 20, B: 30, A: 0.5, Alpha: true}, true},
		{"rgba(10, 20, 30, 50%)", RGBA{R: 10, G: 20, B: 30, A: 0.5, Alpha: true}, true},
		{"rgb(300, 0, 0)", RGBA{}, false},
		{"#ggg", RGBA{}, false},
		{"blue", RGBA{}, false},
		{"", RGBA{}, false},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := ParseColor(tc.in)
			require.Equal(t, tc.valid, ok)
			if !tc.valid {
				return
			}
			assert.InDelta(t, tc.want.R, got.R, 1e-6)
			assert.InDelta(t, tc.want.G, got.G, 1e-6)
			assert.InDelta(t, tc.want.B, got.B, 1e-6)
			assert.InDelta(t, tc.want.A, got.A, 1e-6)
			assert.Equal(t, tc.want.Alpha, got.Alpha)
		})
	}
}

func TestInterpolateColor(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		t    float64
		want string
	}{
		{"start is verbatim", "#FF0000", "#0000ff", 0, "#FF0000"},
		{"end is verbatim", "#ff0000", "#0000FF", 1, "#0000FF"},
		{"midpoint rounds half up", "#000000", "#ffffff", 0.5, "#808080"},
		{"quarter", "#ff0000", "#0000ff", 0.25, "#bf0040"},
		{"rgba blends alpha", "rgba(0, 0, 0, 0)", "rgba(255, 255, 255, 1)", 0.5, "rgba(128, 128, 128, 0.5)"},
		{"mixed forms keep alpha", "#000000", "rgba(255, 255, 255, 0)", 0.5, "rgba(128, 128, 128, 0.5)"},
		{"bad source falls back", "nope", "#ffffff", 0.5, "nope"},
		{"bad target falls back to source", "#ffffff", "nope", 0.5, "#ffffff"},
		{"progress below zero", "#111111", "#222222", -1, "#111111"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, InterpolateColor(tc.a, tc.b, tc.t))
		})
	}
}

func TestHexOf(t *testing.T) {
	assert.Equal(t, "#ef4444", HexOf("rgba(239, 68, 68, 0.45)", "#000000"))
	assert.Equal(t, "#000000", HexOf("garbage", "#000000"))
}

// =============================================================================
// INTERPOLATION TESTS
// =============================================================================

func TestInterpolate_Bounds(t *testing.T) {
	a := Default(mood.Neutral)
	b := Default(mood.Heated)

	assert.True(t, Interpolate(a, b, 0).Equal(a))
	assert.True(t, Interpolate(a, b, 1).Equal(b))
	assert.True(t, Interpolate(a, b, 2).Equal(b))
}

func TestInterpolate_Midpoint(t *testing.T) {
	a := Default(mood.Romantic)
	b := Default(mood.Melancholy)

	before := Interpolate(a, b, 0.49)
	assert.Equal(t, a.Glow, before.Glow)
	assert.Equal(t, a.TextTint, before.TextTint)
	assert.Len(t, before.Gradient, len(a.Gradient))

	mid := Interpolate(a, b, 0.5)
	assert.Equal(t, b.Glow, mid.Glow)
	assert.Equal(t, b.TextTint, mid.TextTint)
	assert.Equal(t, b.BgAnimation, mid.BgAnimation)
	assert.Equal(t, b.AnimationSpeed, mid.AnimationSpeed)
	assert.Equal(t, a.ParticleEffect, mid.ParticleEffect, "particles lag the other discrete fields")

	assert.Equal(t, a.ParticleEffect, Interpolate(a, b, 0.7).ParticleEffect)
	assert.Equal(t, b.ParticleEffect, Interpolate(a, b, 0.71).ParticleEffect)
}

func TestInterpolate_ContinuousFields(t *testing.T) {
	a := Theme{Gradient: []string{"#000000", "#000000"}, Accent: "#000000", Glow: "#000000", AnimationSpeed: SpeedSlow}
	b := Theme{Gradient: []string{"#ffffff", "#ffffff", "#ffffff"}, Accent: "#ffffff", Glow: "#ffffff", AnimationSpeed: SpeedFast}

	early := Interpolate(a, b, 0.25)
	assert.Equal(t, "#404040", early.Accent)
	assert.Equal(t, []string{"#404040", "#404040"}, early.Gradient)

	mid := Interpolate(a, b, 0.5)
	assert.Equal(t, "#808080", mid.Accent)

	late := Interpolate(a, b, 0.75)
	require.Len(t, late.Gradient, 3, "stop count snaps with the discrete fields")
	assert.Equal(t, "#bfbfbf", late.Gradient[2])
}

func TestEaseOutCubic(t *testing.T) {
	assert.InDelta(t, 0.0, EaseOutCubic(0), 1e-9)
	assert.InDelta(t, 1.0, EaseOutCubic(1), 1e-9)
	assert.InDelta(t, 0.875, EaseOutCubic(0.5), 1e-9)
	assert.InDelta(t, 0.5, EaseLinear(0.5), 1e-9)
}

// =============================================================================
// TOKEN TESTS
// =============================================================================

func TestTokens(t *testing.T) {
	tokens := TokenMap(Default(mood.Neutral), 0.8)

	assert.Equal(t, "#1e1e2e", tokens["--mood-gradient-1"])
	assert.Equal(t, "#313244", tokens["--mood-gradient-2"])
	assert.Equal(t, "#313244", tokens["--mood-gradient-3"])
	assert.Equal(t, "#89b4fa", tokens[TokenAccent])
	assert.Equal(t, "inherit", tokens[TokenTextTint])
	assert.Equal(t, "1", tokens[TokenAnimationSpeed])
	assert.Equal(t, "none", tokens[TokenParticle])
	assert.Equal(t, "none", tokens[TokenBgAnimation])
	assert.Equal(t, "0.8", tokens[TokenIntensity])

	ordered := Tokens(Default(mood.Excited), 1)
	require.Len(t, ordered, 10)
	assert.Equal(t, "--mood-gradient-1", ordered[0].Name)
	assert.Equal(t, "2", TokenMap(Default(mood.Excited), 1)[TokenAnimationSpeed])
}
