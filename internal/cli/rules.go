// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// rules.go - Rules command implementation for ambient.
//
// Command: rules [subcommand]
// Short:   Manage and test text effect rules
// Aliases: rule, fx
//
// Subcommands:
//   list (default)      Configured rules and whether they compile
//   presets             Built-in rules
//   validate            Check every configured rule
//   apply <text>        Run text through the rules
//   add                 Create a rule and save it
//   remove <id>         Delete a rule by ID or name
//
// Examples:
//   ambient rules
//   ambient rules apply "*sighs* I LOVE this <3" --presets
//   ambient rules add --match "\bwow\b" --regex --action wrap --class sparkle
//   ambient rules add --match lol --action replace --replacement "😂"
//   ambient rules add --match magic --style "color=#c084fc,italic=true"
//   ambient rules remove 5f0c...
//
// Flags:
//   --presets           Also use the built-in rules (apply)
//   --match <text>      Text or pattern to match (add)
//   --regex             Treat --match as a regular expression (add)
//   --case-sensitive    Match case exactly (add)
//   --action <a>        style, replace, wrap or animate (add)
//   --replacement <s>   Replacement text (add, replace action)
//   --class <name>      Effect class name (add)
//   --style <k=v,...>   Style properties (add)
//   --name <name>       Display name (add)
//   --disabled          Save the rule switched off (add)
//   --json              Output in JSON format

package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jeranaias/ambient/internal/ambient"
	"github.com/jeranaias/ambient/internal/config"
	"github.com/jeranaias/ambient/internal/textfx"
	"github.com/jeranaias/ambient/internal/util"
)

// RuleView is one rule in --json listings.
type RuleView struct {
	textfx.TextRule
	Error string `json:"error,omitempty"`
}

// ApplyView is the --json payload of rules apply.
type ApplyView struct {
	Input    string           `json:"input"`
	Output   string           `json:"output"`
	Matched  bool             `json:"matched"`
	Segments []textfx.Segment `json:"segments"`
}

// HandleRules handles the "rules" command.
func HandleRules(args Args) error {
	parser := NewArgParser(args.Raw, "presets", "regex", "case-sensitive", "disabled")

	cfg, err := loadSettings(args)
	if err != nil {
		return fail(args, "rules", err)
	}

	switch sub := parser.Subcommand(); sub {
	case "", "list", "ls":
		return handleRulesList(args, cfg.TextRules, "rules list")
	case "presets":
		return handleRulesList(args, textfx.Presets(), "rules presets")
	case "validate", "check":
		return handleRulesValidate(args, cfg)
	case "apply", "test":
		return handleRulesApply(args, cfg, parser)
	case "add", "new":
		return handleRulesAdd(args, cfg, parser)
	case "remove", "rm", "delete":
		return handleRulesRemove(args, cfg, parser.Positional(1))
	default:
		return fail(args, "rules", fmt.Errorf("unknown rules subcommand: %s", sub))
	}
}

// ruleViews pairs each rule with its validation error, if any.
func ruleViews(rules []textfx.TextRule) []RuleView {
	views := make([]RuleView, len(rules))
	for i, r := range rules {
		views[i] = RuleView{TextRule: r}
		if _, errs := textfx.Compile([]textfx.TextRule{r}); len(errs) > 0 {
			views[i].Error = errs[0].Error()
		}
	}
	return views
}

func handleRulesList(args Args, rules []textfx.TextRule, command string) error {
	views := ruleViews(rules)
	if args.JSON {
		return NewJSONResponse(command, views).Print()
	}
	if len(views) == 0 {
		fmt.Fprintln(stdout, DimStyle.Render("No text rules configured. Try: ambient rules presets"))
		return nil
	}
	for _, v := range views {
		printRule(stdout, v)
	}
	return nil
}

func printRule(w io.Writer, v RuleView) {
	status := SuccessStyle.Render("on ")
	switch {
	case v.Error != "":
		status = ErrorStyle.Render("bad")
	case !v.Enabled:
		status = DimStyle.Render("off")
	}
	kind := "text"
	if v.IsRegex {
		kind = "regex"
	}
	// Long patterns are cut so each rule stays on one line.
	match := util.TruncateWidth(v.Match, max(GetTerminalWidth()-matchReserve, 12))
	fmt.Fprintf(w, "%s %s  %s %s → %s\n",
		status,
		ValueStyle.Render(v.Label()),
		DimStyle.Render(kind),
		match,
		describeAction(v.TextRule))
	if v.Error != "" {
		fmt.Fprintf(w, "    %s\n", ErrorStyle.Render(v.Error))
	}
}

// matchReserve is the room printRule keeps for everything but the pattern.
const matchReserve = 48

func describeAction(r textfx.TextRule) string {
	switch r.Action {
	case textfx.ActionReplace:
		return fmt.Sprintf("replace %q", r.Replacement)
	case textfx.ActionWrap, textfx.ActionAnimate:
		if r.ClassName != "" {
			return fmt.Sprintf("%s .%s", r.Action, r.ClassName)
		}
	}
	return string(r.Action)
}

func handleRulesValidate(args Args, cfg *config.Settings) error {
	_, errs := cfg.Rules()
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	if args.JSON {
		if len(errs) > 0 {
			return fail(args, "rules validate", fmt.Errorf("%d invalid rule(s): %s", len(errs), strings.Join(msgs, "; ")))
		}
		return NewJSONResponse("rules validate", map[string]int{"rules": len(cfg.TextRules)}).Print()
	}
	if len(errs) == 0 {
		fmt.Fprintf(stdout, "%s %d rule(s) valid\n", SuccessStyle.Render("OK"), len(cfg.TextRules))
		return nil
	}
	for _, m := range msgs {
		fmt.Fprintf(stdout, "%s %s\n", ErrorStyle.Render("✗"), m)
	}
	return fmt.Errorf("%d invalid rule(s)", len(errs))
}

func handleRulesApply(args Args, cfg *config.Settings, parser *ArgParser) error {
	text := JoinPositionalArgs(parser, 1)
	if text == "" {
		return fail(args, "rules apply", errors.New("usage: ambient rules apply <text>"))
	}

	s := cfg.Clone()
	if parser.BoolFlag("presets") {
		s.TextRules = append(s.TextRules, textfx.Presets()...)
	}
	engine := ambient.NewEngine(s, ambient.EngineOptions{})
	defer engine.Controller().Stop()

	segments := engine.ProcessText(text)
	view := ApplyView{
		Input:    text,
		Output:   textfx.Render(segments),
		Matched:  textfx.HasAnyMatch(text, engine.Rules()) && s.TextEffectsActive(),
		Segments: segments,
	}
	if args.JSON {
		return NewJSONResponse("rules apply", view).Print()
	}

	st := newStyles(stdout)
	st.SetIntensity(s.Intensity)
	fmt.Fprintln(stdout, st.RenderSegments(segments, 0))
	if args.Verbose {
		fmt.Fprintln(stdout)
		for _, seg := range segments {
			if seg.Type != textfx.SegmentEffect {
				continue
			}
			printKV(stdout, seg.Key, fmt.Sprintf("%q ← %s", seg.Content, seg.Rule.Label()))
		}
	}
	return nil
}

func handleRulesAdd(args Args, cfg *config.Settings, parser *ArgParser) error {
	style, err := parseStyle(parser.Flag("style"))
	if err != nil {
		return fail(args, "rules add", err)
	}
	rule, err := textfx.CreateTextRule(textfx.TextRule{
		Name:          parser.Flag("name"),
		Match:         parser.Flag("match"),
		IsRegex:       parser.BoolFlag("regex"),
		CaseSensitive: parser.BoolFlag("case-sensitive"),
		Action:        textfx.Action(strings.ToLower(parser.Flag("action"))),
		Replacement:   parser.Flag("replacement"),
		ClassName:     parser.Flag("class"),
		Style:         style,
	}, textfx.WithEnabled(!parser.BoolFlag("disabled")))
	if err != nil {
		return fail(args, "rules add", err)
	}

	cfg.TextRules = append(cfg.TextRules, rule)
	if err := saveSettings(args, cfg); err != nil {
		return fail(args, "rules add", err)
	}
	if args.JSON {
		return NewJSONResponse("rules add", rule).Print()
	}
	fmt.Fprintf(stdout, "%s rule %s\n", SuccessStyle.Render("Added"), rule.ID)
	return nil
}

func handleRulesRemove(args Args, cfg *config.Settings, id string) error {
	if id == "" {
		return fail(args, "rules remove", errors.New("usage: ambient rules remove <id>"))
	}
	kept := cfg.TextRules[:0:0]
	var removed *textfx.TextRule
	for i, r := range cfg.TextRules {
		if removed == nil && (r.ID == id || r.Name == id) {
			removed = &cfg.TextRules[i]
			continue
		}
		kept = append(kept, r)
	}
	if removed == nil {
		return fail(args, "rules remove", fmt.Errorf("no rule with id or name %q", id))
	}
	out := *removed
	cfg.TextRules = kept
	if err := saveSettings(args, cfg); err != nil {
		return fail(args, "rules remove", err)
	}
	if args.JSON {
		return NewJSONResponse("rules remove", out).Print()
	}
	fmt.Fprintf(stdout, "%s rule %s\n", SuccessStyle.Render("Removed"), out.Label())
	return nil
}

// parseStyle reads "key=value,key=value".
func parseStyle(s string) (map[string]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	style := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		k, v, ok := strings.Cut(pair, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid style %q: want key=value", pair)
		}
		style[k] = strings.TrimSpace(v)
	}
	return style, nil
}
