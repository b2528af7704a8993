// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package mood

// =============================================================================
// KEYWORDS
// =============================================================================

// keywords lists the words associated with each non-neutral mood. Matching is
// case-insensitive and bounded by word boundaries.
var keywords = map[Mood][]string{
	Heated: {
		"hate", "angry", "furious", "ridiculous", "ugh", "stupid", "pissed",
		"rage", "annoyed", "sick of", "damn", "wtf", "shut up", "livid",
	},
	Romantic: {
		"love", "darling", "kiss", "sweetheart", "adore", "beautiful",
		"romance", "romantic", "honey", "cuddle", "my dear", "crush",
	},
	Melancholy: {
		"sad", "lonely", "miss you", "cry", "crying", "tears", "alone",
		"grief", "hurts", "depressed", "empty", "gone", "regret",
	},
	Excited: {
		"amazing", "awesome", "wow", "can't wait", "omg", "incredible",
		"yay", "excited", "finally", "let's go", "hype", "woohoo",
	},
	Mysterious: {
		"secret", "strange", "shadow", "mystery", "whisper", "unknown",
		"hidden", "riddle", "ancient", "eerie", "cryptic", "enigma",
	},
	Playful: {
		"lol", "haha", "hehe", "lmao", "silly", "tease", "joke", "funny",
		"giggle", "wink", "goofy", "rofl",
	},
	Tense: {
		"worried", "nervous", "afraid", "scared", "careful", "danger",
		"hurry", "urgent", "anxious", "panic", "deadline", "threat",
	},
	Serene: {
		"calm", "peaceful", "relax", "gentle", "quiet", "breathe", "serene",
		"tranquil", "meditate", "cozy", "soothing", "stillness",
	},
	Creative: {
		"imagine", "idea", "create", "design", "story", "write", "paint",
		"invent", "brainstorm", "compose", "sketch", "inspiration",
	},
}

// =============================================================================
// EMOJI
// =============================================================================

// emoji lists the emoji associated with each non-neutral mood. Entries are
// stored without a trailing variation selector so that naive substring
// counting matches both the text and the emoji presentation form.
var emoji = map[Mood][]string{
	Heated:     {"😡", "🤬", "💢", "😤", "🔥", "👿"},
	Romantic:   {"❤", "💕", "💖", "💘", "😍", "🥰", "😘", "💋"},
	Melancholy: {"😢", "😭", "💔", "😞", "😔", "🥀"},
	Excited:    {"🎉", "🤩", "🥳", "😆", "✨", "🚀"},
	Mysterious: {"🔮", "🌙", "👁", "🕯", "🗝", "🌫"},
	Playful:    {"😜", "😝", "🤪", "😂", "🤣", "😏"},
	Tense:      {"😰", "😨", "😬", "😱", "⚠", "😓"},
	Serene:     {"🌿", "🍃", "🌊", "🧘", "☮", "🌸"},
	Creative:   {"🎨", "🎭", "💡", "🖌", "🎶", "📝"},
}

// Keywords returns a copy of the keyword list for m.
func Keywords(m Mood) []string {
	return append([]string(nil), keywords[m]...)
}

// Emoji returns a copy of the emoji list for m.
func Emoji(m Mood) []string {
	return append([]string(nil), emoji[m]...)
}
