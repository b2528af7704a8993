// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package textfx

// Presets returns the built-in rules, compiled and enabled. Each call
// returns fresh copies.
func Presets() []TextRule {
	presets := []TextRule{
		{
			ID:        "preset-roleplay-action",
			Name:      "Roleplay actions",
			Match:     `\*[^*\n]+\*`,
			IsRegex:   true,
			Action:    ActionStyle,
			ClassName: "rp-action",
			Style:     map[string]string{"italic": "true", "color": "#a6adc8"},
		},
		{
			ID:            "preset-shout",
			Name:          "Shouting",
			Match:         `\b[A-Z]{4,}\b`,
			IsRegex:       true,
			CaseSensitive: true,
			Action:        ActionAnimate,
			ClassName:     "shake",
			Style:         map[string]string{"bold": "true", "color": "#f38ba8"},
		},
		{
			ID:          "preset-heart",
			Name:        "Heart",
			Match:       "<3",
			Action:      ActionReplace,
			Replacement: "♥",
		},
		{
			ID:        "preset-sparkle",
			Name:      "Sparkle",
			Match:     `~[^~\n]+~`,
			IsRegex:   true,
			Action:    ActionWrap,
			ClassName: "sparkle",
			Style:     map[string]string{"color": "#f9e2af", "bold": "true"},
		},
	}
	for i := range presets {
		presets[i].Enabled = true
		if err := presets[i].compile(); err != nil {
			panic("textfx: bad preset " + presets[i].ID + ": " + err.Error())
		}
	}
	return presets
}
