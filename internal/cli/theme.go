// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// theme.go - Theme command implementation for ambient.
//
// Command: theme [subcommand]
// Short:   Inspect mood themes and transitions
// Aliases: themes
//
// Subcommands:
//   show [mood] (default)       Theme for a mood with overrides applied
//   list                        Every mood and its theme
//   lerp <from> <to> <progress> Theme part way through a transition
//
// Examples:
//   ambient theme                         Theme for the manual mood or neutral
//   ambient theme show heated --tokens    Design tokens for heated
//   ambient theme list --json
//   ambient theme lerp neutral serene 0.25 --eased
//
// Flags:
//   --tokens            Show design tokens instead of fields
//   --eased             Apply the ease-out curve to the progress (lerp)
//   --json              Output in JSON format

package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jeranaias/ambient/internal/config"
	"github.com/jeranaias/ambient/internal/mood"
	"github.com/jeranaias/ambient/internal/theme"
	"github.com/jeranaias/ambient/internal/util"
)

// ThemeView is the --json payload of theme show and theme list entries.
type ThemeView struct {
	Mood     mood.Mood     `json:"mood"`
	Theme    theme.Theme   `json:"theme"`
	Tokens   []theme.Token `json:"tokens,omitempty"`
	Keywords []string      `json:"keywords,omitempty"`
	Emoji    []string      `json:"emoji,omitempty"`
}

// LerpView is the --json payload of theme lerp.
type LerpView struct {
	From     mood.Mood   `json:"from"`
	To       mood.Mood   `json:"to"`
	Progress float64     `json:"progress"`
	Eased    float64     `json:"eased"`
	Theme    theme.Theme `json:"theme"`
}

// HandleTheme handles the "theme" command.
func HandleTheme(args Args) error {
	parser := NewArgParser(args.Raw, "tokens", "eased")

	cfg, err := loadSettings(args)
	if err != nil {
		return fail(args, "theme", err)
	}

	switch sub := parser.Subcommand(); sub {
	case "", "show":
		return handleThemeShow(args, cfg, parser.Positional(1), parser.BoolFlag("tokens"))
	case "list", "ls":
		return handleThemeList(args, cfg)
	case "lerp", "blend":
		return handleThemeLerp(args, cfg, parser)
	default:
		// "ambient theme heated" reads as show.
		if _, perr := mood.Parse(sub); perr == nil {
			return handleThemeShow(args, cfg, sub, parser.BoolFlag("tokens"))
		}
		return fail(args, "theme", fmt.Errorf("unknown theme subcommand: %s", sub))
	}
}

func handleThemeShow(args Args, cfg *config.Settings, name string, tokens bool) error {
	m := cfg.ManualMood
	if m == "" {
		m = mood.Neutral
	}
	if name != "" {
		var err error
		if m, err = mood.Parse(name); err != nil {
			return fail(args, "theme show", err)
		}
	}

	view := ThemeView{
		Mood:     m,
		Theme:    theme.Resolve(m, cfg.MoodThemeOverrides),
		Keywords: mood.Keywords(m),
		Emoji:    mood.Emoji(m),
	}
	if tokens {
		view.Tokens = theme.Tokens(view.Theme, cfg.Intensity)
	}
	if args.JSON {
		return NewJSONResponse("theme show", view).Print()
	}

	if tokens {
		for _, tok := range view.Tokens {
			fmt.Fprintf(stdout, "%s: %s;\n", tok.Name, tok.Value)
		}
		return nil
	}
	printTheme(stdout, view, cfg.Intensity)
	return nil
}

func handleThemeList(args Args, cfg *config.Settings) error {
	views := make([]ThemeView, 0, len(mood.All()))
	for _, m := range mood.All() {
		views = append(views, ThemeView{Mood: m, Theme: theme.Resolve(m, cfg.MoodThemeOverrides)})
	}
	if args.JSON {
		return NewJSONResponse("theme list", views).Print()
	}

	st := newStyles(stdout)
	st.SetIntensity(cfg.Intensity)
	for _, v := range views {
		st.Apply(v.Theme)
		marker := " "
		if _, ok := cfg.MoodThemeOverrides[v.Mood]; ok {
			marker = "*"
		}
		fmt.Fprintf(stdout, "%s %s %s %s\n",
			marker,
			st.AccentStyle().Render(fmt.Sprintf("%-11s", v.Mood)),
			st.GradientBar(16, 1),
			DimStyle.Render(fmt.Sprintf("%s · %s · %s",
				v.Theme.AnimationSpeed, orNone(string(v.Theme.ParticleEffect)), orNone(string(v.Theme.BgAnimation)))))
	}
	if len(cfg.MoodThemeOverrides) > 0 && !args.Quiet {
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, DimStyle.Render("* has overrides"))
	}
	return nil
}

func handleThemeLerp(args Args, cfg *config.Settings, parser *ArgParser) error {
	if parser.PositionalCount() < 4 {
		return fail(args, "theme lerp", errors.New("usage: ambient theme lerp <from> <to> <progress>"))
	}
	from, err := mood.Parse(parser.Positional(1))
	if err != nil {
		return fail(args, "theme lerp", err)
	}
	to, err := mood.Parse(parser.Positional(2))
	if err != nil {
		return fail(args, "theme lerp", err)
	}
	progress, err := strconv.ParseFloat(parser.Positional(3), 64)
	if err != nil {
		return fail(args, "theme lerp", fmt.Errorf("progress must be a number: %w", err))
	}

	eased := progress
	if parser.BoolFlag("eased") {
		eased = theme.EaseOutCubic(progress)
	}
	view := LerpView{
		From:     from,
		To:       to,
		Progress: progress,
		Eased:    eased,
		Theme: theme.Interpolate(
			theme.Resolve(from, cfg.MoodThemeOverrides),
			theme.Resolve(to, cfg.MoodThemeOverrides),
			eased),
	}
	if args.JSON {
		return NewJSONResponse("theme lerp", view).Print()
	}
	fmt.Fprintln(stdout, TitleStyle.Render(fmt.Sprintf("%s → %s at %.2f", from, to, progress)))
	fmt.Fprintln(stdout)
	printTheme(stdout, ThemeView{Mood: to, Theme: view.Theme}, cfg.Intensity)
	return nil
}

// printTheme writes the fields of v with a gradient preview.
func printTheme(w io.Writer, v ThemeView, intensity float64) {
	st := newStyles(w)
	st.SetIntensity(intensity)
	st.Apply(v.Theme)

	fmt.Fprintf(w, "  %s\n\n", st.GradientText(fmt.Sprintf("%s theme", v.Mood)))
	for i, stop := range v.Theme.Gradient {
		printKV(w, fmt.Sprintf("gradient[%d]", i), stop)
	}
	printKV(w, "accent", st.AccentStyle().Render(v.Theme.Accent))
	printKV(w, "glow", v.Theme.Glow)
	printKV(w, "text_tint", orNone(v.Theme.TextTint))
	printKV(w, "animation_speed", v.Theme.AnimationSpeed)
	printKV(w, "particle_effect", orNone(string(v.Theme.ParticleEffect)))
	printKV(w, "bg_animation", orNone(string(v.Theme.BgAnimation)))
	// Cues that detect this mood; cut to fit beside the labels.
	room := GetTerminalWidth() - labelWidth - 2
	if len(v.Keywords) > 0 {
		printKV(w, "keywords", DimStyle.Render(util.TruncateWidth(strings.Join(v.Keywords, ", "), room)))
	}
	if len(v.Emoji) > 0 {
		printKV(w, "emoji", util.TruncateWidth(strings.Join(v.Emoji, " "), room))
	}
	fmt.Fprintf(w, "\n  %s\n", st.GradientBar(labelWidth+12, 1))
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
