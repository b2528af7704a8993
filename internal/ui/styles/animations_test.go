// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/jeranaias/ambient/internal/theme"
)

// =============================================================================
// SPINNER TESTS
// =============================================================================

func TestSpinnerFrame(t *testing.T) {
	d := DotsSpinner.Duration()
	assert.Equal(t, DotsSpinner.Frames[0], DotsSpinner.Frame(0, theme.SpeedNormal))
	assert.Equal(t, DotsSpinner.Frames[1], DotsSpinner.Frame(d, theme.SpeedNormal))
	assert.Equal(t, DotsSpinner.Frames[2], DotsSpinner.Frame(d, theme.SpeedFaster))
	assert.Equal(t, DotsSpinner.Frames[0], DotsSpinner.Frame(d*time.Duration(len(DotsSpinner.Frames)), theme.SpeedNormal))
	assert.Empty(t, SpinnerConfig{}.Frame(time.Second, theme.SpeedNormal))
}

// =============================================================================
// PULSE AND WRAP TESTS
// =============================================================================

func TestPulse(t *testing.T) {
	for f := 0; f < 6; f++ {
		assert.False(t, Pulse(f, theme.SpeedNormal), "frame %d", f)
	}
	for f := 6; f < 12; f++ {
		assert.True(t, Pulse(f, theme.SpeedNormal), "frame %d", f)
	}
	assert.True(t, Pulse(3, theme.SpeedFaster))
	assert.False(t, Pulse(12, theme.SpeedNormal))
}

func TestWrapGlyphs(t *testing.T) {
	l, r := WrapGlyphs("Sparkle")
	assert.Equal(t, "✧ ", l)
	assert.Equal(t, " ✧", r)

	l, r = WrapGlyphs("")
	assert.Equal(t, "[", l)
	assert.Equal(t, "]", r)
}

// =============================================================================
// PARTICLE TESTS
// =============================================================================

func TestParticleRow(t *testing.T) {
	row := ParticleRow(theme.ParticleHearts, 200, 3, theme.SpeedSlow)
	assert.Equal(t, 200, utf8.RuneCountInString(row))
	assert.Equal(t, row, ParticleRow(theme.ParticleHearts, 200, 3, theme.SpeedSlow), "deterministic")
	assert.True(t, strings.ContainsAny(row, "♥♡"))

	assert.Equal(t, strings.Repeat(" ", 10), ParticleRow(theme.ParticleNone, 10, 0, theme.SpeedNormal))
	assert.Equal(t, strings.Repeat(" ", 10), ParticleRow("", 10, 0, theme.SpeedNormal))
	assert.Empty(t, ParticleRow(theme.ParticleRain, 0, 0, theme.SpeedNormal))
}

func TestParticleRowDrifts(t *testing.T) {
	a := ParticleRow(theme.ParticleStars, 120, 0, theme.SpeedNormal)
	b := ParticleRow(theme.ParticleStars, 120, 40, theme.SpeedNormal)
	assert.NotEqual(t, a, b)
}

// =============================================================================
// BACKGROUND TESTS
// =============================================================================

func TestBackgroundLevel(t *testing.T) {
	all := []theme.Background{
		theme.BackgroundPulse, theme.BackgroundWave, theme.BackgroundShimmer,
		theme.BackgroundDrift, theme.BackgroundFlicker, theme.BackgroundBreathe,
	}
	for _, bg := range all {
		for ms := 0; ms < 5000; ms += 137 {
			v := BackgroundLevel(bg, time.Duration(ms)*time.Millisecond, theme.SpeedFast)
			assert.True(t, v >= 0 && v <= 1, "%s at %dms = %f", bg, ms, v)
		}
	}

	assert.Zero(t, BackgroundLevel(theme.BackgroundNone, time.Second, theme.SpeedNormal))
	assert.Zero(t, BackgroundLevel("", time.Second, theme.SpeedNormal))
	assert.InDelta(t, 0.5, BackgroundLevel(theme.BackgroundPulse, 0, theme.SpeedNormal), 1e-9)
	assert.InDelta(t, 0, BackgroundLevel(theme.BackgroundWave, 0, theme.SpeedNormal), 1e-9)
}
