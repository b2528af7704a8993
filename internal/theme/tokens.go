// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package theme

import (
	"fmt"
	"strconv"
)

// Design token names written by Tokens.
const (
	TokenGradientPrefix = "--mood-gradient-"
	TokenAccent         = "--mood-accent"
	TokenGlow           = "--mood-glow"
	TokenTextTint       = "--mood-text-tint"
	TokenAnimationSpeed = "--mood-animation-speed"
	TokenParticle       = "--mood-particle-effect"
	TokenBgAnimation    = "--mood-bg-animation"
	TokenIntensity      = "--mood-intensity"
)

// Token is one named style variable.
type Token struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Tokens projects t onto an ordered list of design tokens. Missing gradient
// stops repeat the last stop so consumers always see three; empty optional
// fields are written as "none" (text tint falls back to "inherit").
func Tokens(t Theme, intensity float64) []Token {
	tokens := make([]Token, 0, MaxStops+7)
	for i := 0; i < MaxStops; i++ {
		tokens = append(tokens, Token{
			Name:  fmt.Sprintf("%s%d", TokenGradientPrefix, i+1),
			Value: stopAt(t.Gradient, i),
		})
	}

	tint := t.TextTint
	if tint == "" {
		tint = "inherit"
	}
	particle := string(t.ParticleEffect)
	if particle == "" {
		particle = string(ParticleNone)
	}
	bg := string(t.BgAnimation)
	if bg == "" {
		bg = string(BackgroundNone)
	}

	tokens = append(tokens,
		Token{Name: TokenAccent, Value: t.Accent},
		Token{Name: TokenGlow, Value: t.Glow},
		Token{Name: TokenTextTint, Value: tint},
		Token{Name: TokenAnimationSpeed, Value: strconv.FormatFloat(t.AnimationSpeed.Multiplier(), 'f', -1, 64)},
		Token{Name: TokenParticle, Value: particle},
		Token{Name: TokenBgAnimation, Value: bg},
		Token{Name: TokenIntensity, Value: strconv.FormatFloat(intensity, 'f', -1, 64)},
	)
	return tokens
}

// TokenMap is Tokens keyed by name.
func TokenMap(t Theme, intensity float64) map[string]string {
	out := make(map[string]string)
	for _, tok := range Tokens(t, intensity) {
		out[tok.Name] = tok.Value
	}
	return out
}
