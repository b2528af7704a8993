// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package theme

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGBA is a parsed color. Channels are kept as floats so interpolation can
// round once at the end.
type RGBA struct {
	R, G, B float64 // 0-255
	A       float64 // 0-1
	// Alpha records that the source was written with an alpha channel or in
	// functional notation, so formatting can preserve that form.
	Alpha bool
}

var rgbFuncRE = regexp.MustCompile(`^rgba?\(\s*([\d.]+)\s*,\s*([\d.]+)\s*,\s*([\d.]+)\s*(?:,\s*([\d.]+)(%?)\s*)?\)$`)

// ParseColor accepts #rgb, #rrggbb, #rrggbbaa, rgb(r, g, b) and
// rgba(r, g, b, a).
func ParseColor(s string) (RGBA, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch {
	case strings.HasPrefix(s, "#") && len(s) == 9:
		return parseHexAlpha(s)
	case strings.HasPrefix(s, "#") && (len(s) == 4 || len(s) == 7):
		c, err := colorful.Hex(s)
		if err != nil {
			return RGBA{}, false
		}
		return RGBA{R: c.R * 255, G: c.G * 255, B: c.B * 255, A: 1}, true
	case strings.HasPrefix(s, "rgb"):
		return parseRGBFunc(s)
	}
	return RGBA{}, false
}

func parseHexAlpha(s string) (RGBA, bool) {
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return RGBA{}, false
	}
	return RGBA{
		R:     float64(v >> 24 & 0xff),
		G:     float64(v >> 16 & 0xff),
		B:     float64(v >> 8 & 0xff),
		A:     float64(v&0xff) / 255,
		Alpha: true,
	}, true
}

func parseRGBFunc(s string) (RGBA, bool) {
	m := rgbFuncRE.FindStringSubmatch(s)
	if m == nil {
		return RGBA{}, false
	}
	var ch [3]float64
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(m[i+1], 64)
		if err != nil || v > 255 {
			return RGBA{}, false
		}
		ch[i] = v
	}
	a := 1.0
	if m[4] != "" {
		v, err := strconv.ParseFloat(m[4], 64)
		if err != nil {
			return RGBA{}, false
		}
		if m[5] == "%" {
			v /= 100
		}
		if v > 1 {
			return RGBA{}, false
		}
		a = v
	}
	return RGBA{R: ch[0], G: ch[1], B: ch[2], A: a, Alpha: true}, true
}

// String formats c as #rrggbb, or as rgba(...) when it carries alpha.
func (c RGBA) String() string {
	r, g, b := channel(c.R), channel(c.G), channel(c.B)
	if c.Alpha {
		a := math.Round(c.A*1000) / 1000
		return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, strconv.FormatFloat(a, 'f', -1, 64))
	}
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// Hex formats c as #rrggbb, dropping alpha.
func (c RGBA) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B))
}

func channel(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Round(v))))
}

// InterpolateColor blends a toward b by t in [0, 1], per RGB channel, with
// channels rounded to the nearest integer. At t <= 0 and t >= 1 the inputs
// are returned verbatim. When either color fails to parse the source color a
// is returned unchanged.
func InterpolateColor(a, b string, t float64) string {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	ca, okA := ParseColor(a)
	cb, okB := ParseColor(b)
	if !okA || !okB {
		return a
	}
	return RGBA{
		R:     lerp(ca.R, cb.R, t),
		G:     lerp(ca.G, cb.G, t),
		B:     lerp(ca.B, cb.B, t),
		A:     lerp(ca.A, cb.A, t),
		Alpha: ca.Alpha || cb.Alpha,
	}.String()
}

// HexOf returns c as #rrggbb for renderers that cannot express alpha; colors
// that fail to parse fall back to fallback.
func HexOf(c, fallback string) string {
	parsed, ok := ParseColor(c)
	if !ok {
		return fallback
	}
	return parsed.Hex()
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
