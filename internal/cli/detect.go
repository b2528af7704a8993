// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// detect.go - Detect command implementation for ambient.
//
// Command: detect [text...]
// Short:   Detect the mood of a conversation
// Aliases: mood
//
// The text arguments form one message. Without them messages are read one
// per line from --file, or from stdin.
//
// Examples:
//   ambient detect "this is SO exciting!!! 🎉"
//   ambient detect --file chat.log --window 10
//   tail -n 20 chat.log | ambient detect --json
//   ambient --llm detect "I miss the old days..."
//
// Flags:
//   --file <path>       Read messages from a file, one per line
//   --window <n>        Number of recent messages analyzed
//   --threshold <f>     Minimum confidence for a non-neutral mood
//   --grapheme          Count emoji per grapheme cluster
//   --json              Output in JSON format

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/jeranaias/ambient/internal/mood"
	"github.com/jeranaias/ambient/internal/theme"
	"github.com/jeranaias/ambient/internal/util"
)

// DetectResult is the --json payload of the detect command.
type DetectResult struct {
	Mood       mood.Mood             `json:"mood"`
	Confidence float64               `json:"confidence"`
	Threshold  float64               `json:"threshold"`
	Window     int                   `json:"window"`
	Messages   int                   `json:"messages"`
	Characters int                   `json:"characters"`
	Scores     map[mood.Mood]float64 `json:"scores"`
	Signals    []mood.Signal         `json:"signals"`
	Theme      theme.Theme           `json:"theme"`
}

// HandleDetect handles the "detect" command.
func HandleDetect(ctx context.Context, args Args) error {
	parser := NewArgParser(args.Raw, "grapheme")

	cfg, err := loadSettings(args)
	if err != nil {
		return fail(args, "detect", err)
	}
	opts := cfg.DetectOptions()
	if parser.HasFlag("window") {
		if opts.MessageWindow, err = parser.FlagInt("window"); err != nil {
			return fail(args, "detect", err)
		}
	}
	if parser.HasFlag("threshold") {
		v, err := parser.FlagFloat("threshold")
		if err != nil {
			return fail(args, "detect", err)
		}
		if v < 0 || v > 1 {
			return fail(args, "detect", fmt.Errorf("--threshold must be between 0 and 1, got %g", v))
		}
		opts.ConfidenceThreshold = mood.Threshold(v)
	}
	if parser.BoolFlag("grapheme") {
		opts.GraphemeAwareEmoji = true
	}

	texts, err := detectInput(parser)
	if err != nil {
		return fail(args, "detect", err)
	}
	if len(texts) == 0 {
		return fail(args, "detect", errors.New("no text to analyze"))
	}

	source, err := signalSource(args, cfg)
	if err != nil {
		return fail(args, "detect", err)
	}
	var extra []mood.Signal
	if source != nil {
		window := texts
		if opts.MessageWindow > 0 && len(window) > opts.MessageWindow {
			window = window[len(window)-opts.MessageWindow:]
		}
		if extra, err = source.Signals(ctx, window); err != nil {
			return fail(args, "detect", err)
		}
	}

	res := mood.DetectWith(texts, opts, extra...)
	out := DetectResult{
		Mood:       res.Mood,
		Confidence: res.Confidence,
		Threshold:  opts.EffectiveThreshold(),
		Window:     effectiveWindow(opts),
		Messages:   len(texts),
		Characters: util.GraphemeLen(mood.Window(texts, effectiveWindow(opts))),
		Scores:     mood.Scores(res.Signals),
		Signals:    res.Signals,
		Theme:      theme.Resolve(res.Mood, cfg.MoodThemeOverrides),
	}
	if out.Signals == nil {
		out.Signals = []mood.Signal{}
	}

	if args.JSON {
		return NewJSONResponse("detect", out).Print()
	}
	printDetectResult(stdout, out, args)
	return nil
}

// detectInput collects the messages to analyze.
func detectInput(parser *ArgParser) ([]string, error) {
	if parser.PositionalCount() > 0 {
		return []string{JoinPositionalArgs(parser, 0)}, nil
	}
	if path := parser.Flag("file"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()
		return readLines(f)
	}
	return readLines(stdin)
}

// readLines returns the non-blank lines of r.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return lines, nil
}

func effectiveWindow(o mood.Options) int {
	if o.MessageWindow <= 0 {
		return mood.DefaultMessageWindow
	}
	return o.MessageWindow
}

func printDetectResult(w io.Writer, r DetectResult, args Args) {
	if args.Quiet {
		fmt.Fprintf(w, "%s %.2f\n", r.Mood, r.Confidence)
		return
	}

	st := newStyles(w)
	st.Apply(r.Theme)

	fmt.Fprintln(w, TitleStyle.Render("Mood Detection"))
	fmt.Fprintln(w)
	printKV(w, "Mood", st.AccentStyle().Render(string(r.Mood)))
	printKV(w, "Confidence", fmt.Sprintf("%.2f (threshold %.2f)", r.Confidence, r.Threshold))
	printKV(w, "Messages", fmt.Sprintf("%d (window %d, %d characters)", r.Messages, r.Window, r.Characters))
	fmt.Fprintf(w, "  %s\n", st.GradientBar(labelWidth+12, 1))

	if len(r.Scores) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, SectionStyle.Render("Scores"))
		moods := make([]mood.Mood, 0, len(r.Scores))
		for m := range r.Scores {
			moods = append(moods, m)
		}
		sort.Slice(moods, func(i, j int) bool {
			if r.Scores[moods[i]] != r.Scores[moods[j]] {
				return r.Scores[moods[i]] > r.Scores[moods[j]]
			}
			return moods[i] < moods[j]
		})
		for _, m := range moods {
			printKV(w, string(m), fmt.Sprintf("%.2f", r.Scores[m]))
		}
	}

	if args.Verbose && len(r.Signals) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, SectionStyle.Render("Signals"))
		for _, s := range r.Signals {
			printKV(w, fmt.Sprintf("%s/%s", s.Source, s.Mood), fmt.Sprintf("%.2f", s.Weight))
		}
	}
}
