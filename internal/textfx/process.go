// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package textfx

import (
	"log"
	"regexp"
	"strconv"
	"strings"
)

// SegmentType distinguishes untouched text from rule output.
type SegmentType string

const (
	SegmentText   SegmentType = "text"
	SegmentEffect SegmentType = "effect"
)

// Segment is one contiguous span of processed text.
type Segment struct {
	Type    SegmentType `json:"type"`
	Content string      `json:"content"`
	// Original is the matched text of an effect segment. It differs from
	// Content only for replace rules.
	Original string    `json:"original,omitempty"`
	Rule     *TextRule `json:"rule,omitempty"`
	Key      string    `json:"key"`
}

// ProcessText applies the enabled rules to text in order. Each rule only
// sees text segments left unclaimed by the rules before it. Zero-length
// matches are ignored and empty pieces are dropped. Keys are assigned over
// the final sequence.
func ProcessText(text string, rules []TextRule) []Segment {
	if text == "" {
		return []Segment{}
	}
	segments := []Segment{{Type: SegmentText, Content: text}}

	for i := range rules {
		if !rules[i].Enabled {
			continue
		}
		re, err := rules[i].matcher()
		if err != nil {
			log.Printf("textfx: skipping rule %q: %v", rules[i].Label(), err)
			continue
		}
		rule := rules[i]
		rule.re, rule.source = re, rule.Pattern()

		next := make([]Segment, 0, len(segments))
		for _, seg := range segments {
			if seg.Type != SegmentText {
				next = append(next, seg)
				continue
			}
			next = appendSplit(next, seg.Content, re, &rule)
		}
		segments = next
	}

	for i := range segments {
		segments[i].Key = string(segments[i].Type) + "-" + strconv.Itoa(i)
	}
	return segments
}

// appendSplit cuts s at every non-empty match of re.
func appendSplit(dst []Segment, s string, re *regexp.Regexp, rule *TextRule) []Segment {
	last := 0
	for _, loc := range re.FindAllStringIndex(s, -1) {
		if loc[0] == loc[1] {
			continue
		}
		if loc[0] > last {
			dst = append(dst, Segment{Type: SegmentText, Content: s[last:loc[0]]})
		}
		matched := s[loc[0]:loc[1]]
		content := matched
		if rule.Action == ActionReplace {
			content = rule.Replacement
		}
		dst = append(dst, Segment{
			Type:     SegmentEffect,
			Content:  content,
			Original: matched,
			Rule:     rule,
		})
		last = loc[1]
	}
	if last < len(s) {
		dst = append(dst, Segment{Type: SegmentText, Content: s[last:]})
	}
	return dst
}

// HasAnyMatch reports whether any enabled rule would produce an effect
// segment for text. Callers use it to skip ProcessText.
func HasAnyMatch(text string, rules []TextRule) bool {
	if text == "" {
		return false
	}
	for i := range rules {
		if !rules[i].Enabled {
			continue
		}
		re, err := rules[i].matcher()
		if err != nil || !re.MatchString(text) {
			continue
		}
		for _, loc := range re.FindAllStringIndex(text, -1) {
			if loc[1] > loc[0] {
				return true
			}
		}
	}
	return false
}

// Reconstruct joins segments back into the input text, using the matched
// text for effect segments.
func Reconstruct(segments []Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		if seg.Type == SegmentEffect {
			b.WriteString(seg.Original)
			continue
		}
		b.WriteString(seg.Content)
	}
	return b.String()
}

// Render joins segment contents, applying replacements.
func Render(segments []Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		b.WriteString(seg.Content)
	}
	return b.String()
}
