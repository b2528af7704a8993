// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package textfx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rule(match string, action Action) TextRule {
	r := TextRule{ID: match, Match: match, Action: action, Enabled: true}
	if action == ActionReplace {
		r.Replacement = "<" + match + ">"
	} else {
		r.ClassName = "fx"
	}
	return r
}

// =============================================================================
// SEGMENTATION TESTS
// =============================================================================

func TestProcessText_NoRules(t *testing.T) {
	segs := ProcessText("hello world", nil)
	require.Len(t, segs, 1)
	assert.Equal(t, SegmentText, segs[0].Type)
	assert.Equal(t, "hello world", segs[0].Content)
	assert.Equal(t, "text-0", segs[0].Key)
}

func TestProcessText_Empty(t *testing.T) {
	assert.Empty(t, ProcessText("", []TextRule{rule("a", ActionStyle)}))
}

func TestProcessText_SplitsAroundMatches(t *testing.T) {
	segs := ProcessText("wow, WOW and wow", []TextRule{rule("wow", ActionStyle)})

	require.Len(t, segs, 5)
	want := []struct {
		typ     SegmentType
		content string
	}{
		{SegmentEffect, "wow"},
		{SegmentText, ", "},
		{SegmentEffect, "WOW"},
		{SegmentText, " and "},
		{SegmentEffect, "wow"},
	}
	for i, w := range want {
		assert.Equal(t, w.typ, segs[i].Type, "segment %d", i)
		assert.Equal(t, w.content, segs[i].Content, "segment %d", i)
	}
	assert.Equal(t, "effect-0", segs[0].Key)
	assert.Equal(t, "text-1", segs[1].Key)
	require.NotNil(t, segs[0].Rule)
	assert.Equal(t, "wow", segs[0].Rule.ID)
}

func TestProcessText_CaseSensitive(t *testing.T) {
	r := rule("wow", ActionStyle)
	r.CaseSensitive = true
	segs := ProcessText("WOW wow", []TextRule{r})
	require.Len(t, segs, 2)
	assert.Equal(t, SegmentText, segs[0].Type)
	assert.Equal(t, "WOW ", segs[0].Content)
	assert.Equal(t, SegmentEffect, segs[1].Type)
}

func TestProcessText_LiteralIsQuoted(t *testing.T) {
	segs := ProcessText("a.b axb", []TextRule{rule("a.b", ActionStyle)})
	require.Len(t, segs, 2)
	assert.Equal(t, "a.b", segs[0].Content)
	assert.Equal(t, " axb", segs[1].Content)
}

func TestProcessText_Replace(t *testing.T) {
	segs := ProcessText("i <3 go", []TextRule{rule("<3", ActionReplace)})
	require.Len(t, segs, 3)
	assert.Equal(t, "<<3>", segs[1].Content)
	assert.Equal(t, "<3", segs[1].Original)
	assert.Equal(t, "i <<3> go", Render(segs))
	assert.Equal(t, "i <3 go", Reconstruct(segs))
}

func TestProcessText_Precedence(t *testing.T) {
	first := rule("hello world", ActionStyle)
	first.ID = "first"
	second := rule("world", ActionReplace)
	second.ID = "second"

	segs := ProcessText("hello world, world", []TextRule{first, second})

	require.Len(t, segs, 3)
	assert.Equal(t, "first", segs[0].Rule.ID)
	assert.Equal(t, "hello world", segs[0].Content)
	assert.Equal(t, ", ", segs[1].Content)
	assert.Equal(t, "second", segs[2].Rule.ID)
	assert.Equal(t, "<world>", segs[2].Content)
}

func TestProcessText_DisabledRulesIgnored(t *testing.T) {
	r := rule("x", ActionStyle)
	r.Enabled = false
	segs := ProcessText("xyz", []TextRule{r})
	require.Len(t, segs, 1)
	assert.Equal(t, SegmentText, segs[0].Type)
}

func TestProcessText_BadRegexSkipped(t *testing.T) {
	bad := TextRule{ID: "bad", Match: "(unclosed", IsRegex: true, Action: ActionStyle, ClassName: "x", Enabled: true}
	good := rule("ok", ActionStyle)

	segs := ProcessText("is it ok", []TextRule{bad, good})
	require.Len(t, segs, 2)
	assert.Equal(t, "ok", segs[1].Content)
	assert.Equal(t, SegmentEffect, segs[1].Type)
}

func TestProcessText_ZeroLengthMatchesIgnored(t *testing.T) {
	r := TextRule{ID: "star", Match: "x*", IsRegex: true, Action: ActionStyle, ClassName: "x", Enabled: true}
	segs := ProcessText("abxxc", []TextRule{r})
	require.Len(t, segs, 3)
	assert.Equal(t, "ab", segs[0].Content)
	assert.Equal(t, "xx", segs[1].Content)
	assert.Equal(t, "c", segs[2].Content)
	assert.False(t, HasAnyMatch("abc", []TextRule{r}))
	assert.True(t, HasAnyMatch("abxc", []TextRule{r}))
}

func TestProcessText_RoundTrip(t *testing.T) {
	rules := append(Presets(), rule("the", ActionReplace), rule("e", ActionStyle))
	inputs := []string{
		"",
		"plain",
		"*waves* hello THERE ~friend~ <3 <3",
		"the theme the end",
		"ééé *ünïcode* 😀 the",
		"***",
		"~~",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			segs := ProcessText(in, rules)
			assert.Equal(t, in, Reconstruct(segs))
			for _, s := range segs {
				assert.NotEmpty(t, s.Content)
			}
		})
	}
}

func TestHasAnyMatch(t *testing.T) {
	rules := []TextRule{rule("foo", ActionStyle)}
	assert.True(t, HasAnyMatch("a FOO b", rules))
	assert.False(t, HasAnyMatch("a bar b", rules))
	assert.False(t, HasAnyMatch("", rules))

	bad := TextRule{Match: "[", IsRegex: true, Enabled: true}
	assert.False(t, HasAnyMatch("[", []TextRule{bad}))
}
