// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"hash/fnv"
	"math"
	"strings"
	"time"

	"github.com/jeranaias/ambient/internal/theme"
)

// =============================================================================
// SPINNER ANIMATIONS
// =============================================================================

// SpinnerConfig holds the configuration for a spinner animation.
type SpinnerConfig struct {
	Frames []string
	FPS    int
}

// DotsSpinner - Classic three-dot animation
var DotsSpinner = SpinnerConfig{
	Frames: []string{".  ", ".. ", "...", " ..", "  .", "   "},
	FPS:    6,
}

// LineSpinner - Simple line rotation
var LineSpinner = SpinnerConfig{
	Frames: []string{"|", "/", "-", "\\"},
	FPS:    10,
}

// Duration returns the duration of each frame at normal speed.
func (s SpinnerConfig) Duration() time.Duration {
	if s.FPS <= 0 {
		return time.Second
	}
	return time.Second / time.Duration(s.FPS)
}

// Frame returns the frame shown after elapsed, sped up or slowed down by
// the mood's animation speed.
func (s SpinnerConfig) Frame(elapsed time.Duration, speed theme.Speed) string {
	if len(s.Frames) == 0 {
		return ""
	}
	scaled := time.Duration(float64(elapsed) * speed.Multiplier())
	i := int(scaled/s.Duration()) % len(s.Frames)
	return s.Frames[i]
}

// =============================================================================
// ANIMATE RULES
// =============================================================================

// pulsePeriod is the animate-rule cycle in ambient ticks at normal speed.
const pulsePeriod = 12

// Pulse reports whether an animate rule is in its highlighted half cycle
// on tick frame.
func Pulse(frame int, speed theme.Speed) bool {
	period := int(math.Round(pulsePeriod / speed.Multiplier()))
	if period < 2 {
		period = 2
	}
	if frame < 0 {
		frame = -frame
	}
	return frame%period >= period/2
}

var wrapGlyphs = map[string][2]string{
	"sparkle": {"✧ ", " ✧"},
	"stars":   {"☆ ", " ☆"},
	"hearts":  {"♥ ", " ♥"},
	"glitch":  {"▚", "▞"},
}

// WrapGlyphs returns the decoration placed around a wrap rule's match.
func WrapGlyphs(className string) (left, right string) {
	if g, ok := wrapGlyphs[strings.ToLower(className)]; ok {
		return g[0], g[1]
	}
	return "[", "]"
}

// =============================================================================
// PARTICLES
// =============================================================================

// ParticleGlyphs are the characters drawn for each particle effect.
var ParticleGlyphs = map[theme.Particle][]string{
	theme.ParticleSparkles:  {"✦", "✧", "·"},
	theme.ParticleEmbers:    {"·", "•", "˙"},
	theme.ParticleHearts:    {"♥", "♡"},
	theme.ParticleRain:      {"│", "╎", "'"},
	theme.ParticleFireflies: {"•", "·"},
	theme.ParticleBubbles:   {"o", "°", "O"},
	theme.ParticleStars:     {"☆", "★", "·"},
	theme.ParticleGlitch:    {"▚", "▞", "░"},
	theme.ParticleLeaves:    {"❧", "~", ","},
}

// particleDensity is one particle per this many cells on average.
const particleDensity = 9

// ParticleRow draws one row of width cells for effect p on ambient tick
// tick. Placement is deterministic in (column, tick) and drifts faster
// for faster moods. Unknown or empty effects draw blanks.
func ParticleRow(p theme.Particle, width, tick int, speed theme.Speed) string {
	if width <= 0 {
		return ""
	}
	glyphs := ParticleGlyphs[p]
	if len(glyphs) == 0 {
		return strings.Repeat(" ", width)
	}
	step := int(float64(tick) * speed.Multiplier())

	var b strings.Builder
	for col := 0; col < width; col++ {
		h := cellHash(col+step, step/4)
		if h%particleDensity == 0 {
			b.WriteString(glyphs[int(h/particleDensity)%len(glyphs)])
			continue
		}
		b.WriteByte(' ')
	}
	return b.String()
}

func cellHash(col, row int) uint32 {
	f := fnv.New32a()
	var buf [8]byte
	for i := 0; i < 4; i++ {
		buf[i] = byte(col >> (8 * i))
		buf[4+i] = byte(row >> (8 * i))
	}
	_, _ = f.Write(buf[:])
	return f.Sum32()
}

// =============================================================================
// BACKGROUND
// =============================================================================

// BackgroundLevel returns the brightness lift in [0, 1] that background
// animation bg contributes after elapsed.
func BackgroundLevel(bg theme.Background, elapsed time.Duration, speed theme.Speed) float64 {
	phase := elapsed.Seconds() * speed.Multiplier()
	switch bg {
	case theme.BackgroundPulse:
		return 0.5 + 0.5*math.Sin(2*math.Pi*phase/1.5)
	case theme.BackgroundBreathe:
		return 0.5 + 0.5*math.Sin(2*math.Pi*phase/4)
	case theme.BackgroundDrift:
		return 0.5 + 0.5*math.Sin(2*math.Pi*phase/8)
	case theme.BackgroundWave:
		frac := phase/2 - math.Floor(phase/2)
		return 1 - math.Abs(2*frac-1)
	case theme.BackgroundShimmer:
		return phase - math.Floor(phase)
	case theme.BackgroundFlicker:
		if cellHash(int(phase*10), 0)%5 == 0 {
			return 1
		}
		return 0
	}
	return 0
}
