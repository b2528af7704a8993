// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
	"github.com/rivo/uniseg"

	"github.com/jeranaias/ambient/internal/textfx"
	"github.com/jeranaias/ambient/internal/theme"
)

// Theme holds the terminal styles and the mood theme currently on display.
// It satisfies ambient.Sink, so a controller can paint into it directly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	renderer *lipgloss.Renderer

	mu        sync.RWMutex
	mood      theme.Theme
	intensity float64

	// ==========================================================================
	// CHROME STYLES
	// ==========================================================================

	Header       lipgloss.Style
	MoodLabel    lipgloss.Style
	Confidence   lipgloss.Style
	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
	InputPrompt  lipgloss.Style
	Speaker      lipgloss.Style
	Muted        lipgloss.Style
	Separator    lipgloss.Style
}

// NewTheme detects the terminal's color support and background.
func NewTheme() *Theme {
	return newTheme(os.Stdout, termenv.ColorProfile(), termenv.HasDarkBackground())
}

// NewThemeForOutput builds a theme for w with a fixed color profile. Use
// termenv.Ascii for plain text output.
func NewThemeForOutput(w io.Writer, profile termenv.Profile) *Theme {
	return newTheme(w, profile, true)
}

func newTheme(w io.Writer, profile termenv.Profile, isDark bool) *Theme {
	r := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	r.SetColorProfile(profile)
	r.SetHasDarkBackground(isDark)

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: profile == termenv.TrueColor,
		ColorProfile: profile,
		renderer:     r,
		mood:         theme.Default(""),
		intensity:    1,
	}
	t.initStyles()
	return t
}

func (t *Theme) initStyles() {
	r := t.renderer

	t.Header = r.NewStyle().
		Bold(true).
		Padding(0, 1)

	t.MoodLabel = r.NewStyle().
		Bold(true)

	t.Confidence = r.NewStyle().
		Foreground(TextSecondary)

	t.StatusBar = r.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.ShortcutKey = r.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ShortcutDesc = r.NewStyle().
		Foreground(TextMuted)

	t.InputPrompt = r.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.Speaker = r.NewStyle().
		Foreground(TextSecondary).
		Bold(true)

	t.Muted = r.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.Separator = r.NewStyle().
		Foreground(Overlay)
}

// Renderer returns the lipgloss renderer the styles were built on.
func (t *Theme) Renderer() *lipgloss.Renderer {
	return t.renderer
}

// =============================================================================
// MOOD
// =============================================================================

// Apply displays m. It is safe to call from any goroutine.
func (t *Theme) Apply(m theme.Theme) {
	t.mu.Lock()
	t.mood = m.Clone()
	t.mu.Unlock()
}

// Mood returns the theme on display.
func (t *Theme) Mood() theme.Theme {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.mood.Clone()
}

// SetIntensity sets how strongly mood colors show through, in [0, 1].
func (t *Theme) SetIntensity(v float64) {
	t.mu.Lock()
	t.intensity = math.Max(0, math.Min(1, v))
	t.mu.Unlock()
}

func (t *Theme) snapshot() (theme.Theme, float64) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.mood, t.intensity
}

// AccentStyle renders in the mood's accent color.
func (t *Theme) AccentStyle() lipgloss.Style {
	m, intensity := t.snapshot()
	return t.renderer.NewStyle().
		Foreground(lipgloss.Color(t.blend(m.Accent, intensity))).
		Bold(true)
}

// TintStyle renders body text in the mood's text tint. Moods without a
// tint use the primary text color.
func (t *Theme) TintStyle() lipgloss.Style {
	m, intensity := t.snapshot()
	st := t.renderer.NewStyle().Foreground(TextPrimary)
	if _, ok := theme.ParseColor(m.TextTint); ok {
		st = st.Foreground(lipgloss.Color(t.blend(m.TextTint, intensity)))
	}
	return st
}

// GlowStyle renders with the mood's glow as background.
func (t *Theme) GlowStyle() lipgloss.Style {
	m, intensity := t.snapshot()
	return t.renderer.NewStyle().
		Background(lipgloss.Color(t.blend(m.Glow, intensity)))
}

// GradientBar renders width cells shaded along the mood gradient. level in
// [0, 1] lifts the bar toward the accent color for background animations.
func (t *Theme) GradientBar(width int, level float64) string {
	if width <= 0 {
		return ""
	}
	m, intensity := t.snapshot()
	colors := GradientColors(m.Gradient, width)
	var b strings.Builder
	for _, c := range colors {
		c = theme.InterpolateColor(c, m.Accent, clamp01(level)*0.25)
		b.WriteString(t.renderer.NewStyle().
			Background(lipgloss.Color(t.blend(c, intensity))).
			Render(" "))
	}
	return b.String()
}

// GradientText colors each grapheme of s along the mood gradient.
func (t *Theme) GradientText(s string) string {
	n := uniseg.GraphemeClusterCount(s)
	if n == 0 {
		return ""
	}
	m, intensity := t.snapshot()
	colors := GradientColors(brighten(m.Gradient, m.Accent), n)

	var b strings.Builder
	g := uniseg.NewGraphemes(s)
	for i := 0; g.Next(); i++ {
		b.WriteString(t.renderer.NewStyle().
			Foreground(lipgloss.Color(t.blend(colors[i], intensity))).
			Bold(true).
			Render(g.Str()))
	}
	return b.String()
}

// blend flattens c onto the surface and fades it toward the surface as
// intensity drops.
func (t *Theme) blend(c string, intensity float64) string {
	flat := Flatten(c, SurfaceHex)
	return theme.HexOf(theme.InterpolateColor(SurfaceHex, flat, intensity), flat)
}

// brighten lifts the darkest gradient stops toward the accent so text
// stays readable on the surface.
func brighten(stops []string, accent string) []string {
	out := make([]string, len(stops))
	for i, s := range stops {
		out[i] = theme.InterpolateColor(s, accent, 0.5)
	}
	return out
}

// GradientColors samples n evenly spaced colors from stops.
func GradientColors(stops []string, n int) []string {
	if n <= 0 {
		return nil
	}
	out := make([]string, n)
	if len(stops) == 0 {
		for i := range out {
			out[i] = SurfaceHex
		}
		return out
	}
	if len(stops) == 1 || n == 1 {
		for i := range out {
			out[i] = stops[0]
		}
		return out
	}
	segments := float64(len(stops) - 1)
	for i := 0; i < n; i++ {
		pos := float64(i) / float64(n-1) * segments
		k := int(pos)
		if k >= len(stops)-1 {
			k = len(stops) - 2
		}
		out[i] = theme.InterpolateColor(stops[k], stops[k+1], pos-float64(k))
	}
	return out
}

// Flatten composites a translucent color over base and returns #rrggbb.
// Opaque colors come back as hex; unparseable ones as base.
func Flatten(c, base string) string {
	fg, ok := theme.ParseColor(c)
	if !ok {
		return base
	}
	if !fg.Alpha || fg.A >= 1 {
		return fg.Hex()
	}
	bg, err := colorful.Hex(base)
	if err != nil {
		return fg.Hex()
	}
	top := colorful.Color{R: fg.R / 255, G: fg.G / 255, B: fg.B / 255}
	return bg.BlendRgb(top, fg.A).Clamped().Hex()
}

// =============================================================================
// TEXT EFFECTS
// =============================================================================

// RenderSegments styles processed text. Plain segments get the mood tint;
// effect segments get their rule's style, with the accent as default
// color. frame drives animate rules.
func (t *Theme) RenderSegments(segments []textfx.Segment, frame int) string {
	var b strings.Builder
	tint := t.TintStyle()
	for _, seg := range segments {
		if seg.Type != textfx.SegmentEffect || seg.Rule == nil {
			b.WriteString(tint.Render(seg.Content))
			continue
		}
		b.WriteString(t.effectStyle(seg.Rule, frame).Render(effectContent(seg)))
	}
	return b.String()
}

func effectContent(seg textfx.Segment) string {
	if seg.Rule.Action != textfx.ActionWrap {
		return seg.Content
	}
	left, right := WrapGlyphs(seg.Rule.ClassName)
	return left + seg.Content + right
}

func (t *Theme) effectStyle(rule *textfx.TextRule, frame int) lipgloss.Style {
	m, intensity := t.snapshot()
	st := t.renderer.NewStyle().Foreground(lipgloss.Color(t.blend(m.Accent, intensity)))

	color := m.Accent
	for key, value := range rule.Style {
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "color", "foreground":
			if _, ok := theme.ParseColor(value); ok {
				color = value
				st = st.Foreground(lipgloss.Color(t.blend(value, intensity)))
			}
		case "background":
			if _, ok := theme.ParseColor(value); ok {
				st = st.Background(lipgloss.Color(t.blend(value, intensity)))
			}
		case "bold":
			st = st.Bold(parseFlag(value))
		case "italic":
			st = st.Italic(parseFlag(value))
		case "underline":
			st = st.Underline(parseFlag(value))
		case "strikethrough":
			st = st.Strikethrough(parseFlag(value))
		case "faint":
			st = st.Faint(parseFlag(value))
		}
	}

	if rule.Action == textfx.ActionAnimate && Pulse(frame, m.AnimationSpeed) {
		st = st.Foreground(lipgloss.Color(t.blend(theme.InterpolateColor(color, Flatten(m.Glow, SurfaceHex), 0.5), intensity)))
	}
	return st
}

func parseFlag(v string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	return err == nil && b
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
