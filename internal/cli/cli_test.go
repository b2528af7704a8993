// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/ambient/internal/ambient"
	"github.com/jeranaias/ambient/internal/config"
	"github.com/jeranaias/ambient/internal/mood"
	"github.com/jeranaias/ambient/internal/textfx"
)

const heatedText = "I hate this, I am furious and angry 😡 🤬"

// captureOutput points the command streams at buffers and an isolated
// settings directory for the duration of the test.
func captureOutput(t *testing.T) (out, errOut *bytes.Buffer) {
	t.Helper()
	t.Setenv("AMBIENT_HOME", t.TempDir())
	ForceColorsEnabled(false)

	out, errOut = &bytes.Buffer{}, &bytes.Buffer{}
	prevOut, prevErr, prevIn := stdout, stderr, stdin
	stdout, stderr = out, errOut
	t.Cleanup(func() {
		stdout, stderr, stdin = prevOut, prevErr, prevIn
	})
	return out, errOut
}

// decodeData unmarshals the data field of a JSONResponse into v.
func decodeData(t *testing.T, raw []byte, v interface{}) JSONResponse {
	t.Helper()
	var envelope struct {
		JSONResponse
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &envelope), string(raw))
	if v != nil {
		require.NoError(t, json.Unmarshal(envelope.Data, v))
	}
	return envelope.JSONResponse
}

func run(t *testing.T, argv ...string) error {
	t.Helper()
	cmd, args := ParseArgs(argv)
	return Run(context.Background(), cmd, args)
}

// =============================================================================
// ARG PARSER TESTS
// =============================================================================

func TestArgParser(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		bools    []string
		wantSub  string
		validate func(*testing.T, *ArgParser)
	}{
		{
			name:    "flag with value",
			args:    []string{"apply", "--window", "3"},
			wantSub: "apply",
			validate: func(t *testing.T, p *ArgParser) {
				assert.Equal(t, "3", p.Flag("window"))
				n, err := p.FlagInt("window")
				require.NoError(t, err)
				assert.Equal(t, 3, n)
			},
		},
		{
			name:    "flag with equals",
			args:    []string{"show", "--style=color=#fff,bold=true"},
			wantSub: "show",
			validate: func(t *testing.T, p *ArgParser) {
				assert.Equal(t, "color=#fff,bold=true", p.Flag("style"))
			},
		},
		{
			name:    "declared bool does not take a value",
			args:    []string{"apply", "--presets", "hello", "world"},
			bools:   []string{"presets"},
			wantSub: "apply",
			validate: func(t *testing.T, p *ArgParser) {
				assert.True(t, p.BoolFlag("presets"))
				assert.Equal(t, "hello world", JoinPositionalArgs(p, 1))
			},
		},
		{
			name:  "undeclared flag takes the next value",
			args:  []string{"--presets", "hello"},
			validate: func(t *testing.T, p *ArgParser) {
				assert.False(t, p.BoolFlag("presets"))
				assert.Equal(t, "hello", p.Flag("presets"))
				assert.Equal(t, 0, p.PositionalCount())
			},
		},
		{
			name:  "explicit bool value",
			args:  []string{"--force=false"},
			bools: []string{"force"},
			validate: func(t *testing.T, p *ArgParser) {
				assert.False(t, p.BoolFlag("force"))
				assert.True(t, p.HasFlag("force"))
			},
		},
		{
			name:    "negative number is a value",
			args:    []string{"lerp", "--threshold", "-0.5", "-3"},
			wantSub: "lerp",
			validate: func(t *testing.T, p *ArgParser) {
				f, err := p.FlagFloat("threshold")
				require.NoError(t, err)
				assert.Equal(t, -0.5, f)
				assert.Equal(t, "-3", p.Positional(1))
			},
		},
		{
			name:    "double dash ends flags",
			args:    []string{"apply", "--", "--not-a-flag", "-x"},
			wantSub: "apply",
			validate: func(t *testing.T, p *ArgParser) {
				assert.Equal(t, []string{"--not-a-flag", "-x"}, p.PositionalFrom(1))
				assert.False(t, p.HasFlag("not-a-flag"))
			},
		},
		{
			name: "empty",
			args: []string{},
			validate: func(t *testing.T, p *ArgParser) {
				assert.Equal(t, "", p.Positional(0))
				assert.Empty(t, p.PositionalFrom(1))
				assert.Equal(t, "dflt", p.FlagOrDefault("missing", "dflt"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewArgParser(tt.args, tt.bools...)
			assert.Equal(t, tt.wantSub, p.Subcommand())
			assert.Equal(t, tt.args, p.Raw())
			if tt.validate != nil {
				tt.validate(t, p)
			}
		})
	}
}

func TestArgParser_BadNumbers(t *testing.T) {
	p := NewArgParser([]string{"--window", "three", "--threshold", "high"})

	_, err := p.FlagInt("window")
	assert.ErrorContains(t, err, "--window must be an integer")
	_, err = p.FlagFloat("threshold")
	assert.ErrorContains(t, err, "--threshold must be a number")
	_, err = p.FlagInt("missing")
	assert.Error(t, err)
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"true", "YES", "y", "1", "on"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err, s)
		assert.True(t, v, s)
	}
	for _, s := range []string{"false", "No", "n", "0", "off"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err, s)
		assert.False(t, v, s)
	}
	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}

// =============================================================================
// COMMAND PARSING TESTS
// =============================================================================

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name    string
		argv    []string
		wantCmd Command
		check   func(*testing.T, Args)
	}{
		{"no args runs preview", nil, CmdPreview, nil},
		{"detect", []string{"detect", "hello", "there"}, CmdDetect, func(t *testing.T, a Args) {
			assert.Equal(t, []string{"hello", "there"}, a.Raw)
			assert.Equal(t, "hello", a.Subcommand)
		}},
		{"global flags anywhere", []string{"theme", "--json", "list", "-q"}, CmdTheme, func(t *testing.T, a Args) {
			assert.True(t, a.JSON)
			assert.True(t, a.Quiet)
			assert.Equal(t, []string{"list"}, a.Raw)
		}},
		{"config path", []string{"--config", "/tmp/x.toml", "rules"}, CmdRules, func(t *testing.T, a Args) {
			assert.Equal(t, "/tmp/x.toml", a.ConfigPath)
		}},
		{"config path with equals", []string{"--config=/tmp/y.json", "config", "show"}, CmdConfig, func(t *testing.T, a Args) {
			assert.Equal(t, "/tmp/y.json", a.ConfigPath)
			assert.Equal(t, "show", a.Subcommand)
		}},
		{"llm flag", []string{"--llm", "chat"}, CmdChat, func(t *testing.T, a Args) {
			assert.True(t, a.LLM)
		}},
		{"alias", []string{"fx", "presets"}, CmdRules, nil},
		{"case insensitive", []string{"DETECT"}, CmdDetect, nil},
		{"version", []string{"--version"}, CmdVersion, nil},
		{"help", []string{"-h"}, CmdHelp, func(t *testing.T, a Args) {
			assert.Empty(t, a.Unknown)
		}},
		{"unknown", []string{"frobnicate"}, CmdHelp, func(t *testing.T, a Args) {
			assert.Equal(t, "frobnicate", a.Unknown)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args := ParseArgs(tt.argv)
			assert.Equal(t, tt.wantCmd, cmd, "got %s", cmd)
			if tt.check != nil {
				tt.check(t, args)
			}
		})
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	out, errOut := captureOutput(t)

	err := run(t, "frobnicate")
	assert.ErrorIs(t, err, ErrUnknownCommand)
	assert.Contains(t, errOut.String(), "frobnicate")
	assert.Contains(t, out.String(), "USAGE:")
}

func TestRun_Version(t *testing.T) {
	out, _ := captureOutput(t)

	require.NoError(t, run(t, "--json", "version"))
	var v VersionData
	resp := decodeData(t, out.Bytes(), &v)
	assert.True(t, resp.Success)
	assert.Equal(t, Version, v.Version)
}

// =============================================================================
// DETECT TESTS
// =============================================================================

func TestDetect_JSON(t *testing.T) {
	out, _ := captureOutput(t)

	require.NoError(t, run(t, "--json", "detect", heatedText))

	var r DetectResult
	resp := decodeData(t, out.Bytes(), &r)
	assert.True(t, resp.Success)
	assert.Equal(t, "detect", resp.Command)
	assert.Equal(t, mood.Heated, r.Mood)
	assert.InDelta(t, 0.85, r.Confidence, 1e-9)
	assert.Equal(t, 1, r.Messages)
	assert.Equal(t, 39, r.Characters)
	assert.Equal(t, "#ef4444", r.Theme.Accent)
	assert.NotEmpty(t, r.Signals)
}

func TestDetect_StdinQuiet(t *testing.T) {
	out, _ := captureOutput(t)
	stdin = strings.NewReader("hello\n\n" + heatedText + "\n")

	require.NoError(t, run(t, "-q", "detect"))
	assert.Equal(t, "heated 0.85\n", out.String())
}

func TestDetect_FileWindowAndThreshold(t *testing.T) {
	out, _ := captureOutput(t)
	path := filepath.Join(t.TempDir(), "chat.log")
	require.NoError(t, os.WriteFile(path, []byte(heatedText+"\nnice weather\nsee you\n"), 0600))

	// The heated line falls outside a window of two.
	require.NoError(t, run(t, "--json", "detect", "--file", path, "--window", "2"))
	var r DetectResult
	decodeData(t, out.Bytes(), &r)
	assert.Equal(t, mood.Neutral, r.Mood)
	assert.Equal(t, 3, r.Messages)
	assert.Equal(t, 2, r.Window)

	out.Reset()
	require.NoError(t, run(t, "--json", "detect", heatedText, "--threshold", "0.9"))
	decodeData(t, out.Bytes(), &r)
	assert.Equal(t, mood.Neutral, r.Mood)
	assert.Zero(t, r.Confidence)

	// Zero turns gating off.
	out.Reset()
	require.NoError(t, run(t, "--json", "detect", "love", "--threshold", "0"))
	decodeData(t, out.Bytes(), &r)
	assert.Equal(t, mood.Romantic, r.Mood)
	assert.InDelta(t, 0.15, r.Confidence, 1e-9)
	assert.Zero(t, r.Threshold)

	out.Reset()
	require.Error(t, run(t, "--json", "detect", "love", "--threshold", "1.5"))
}

func TestDetect_NoInput(t *testing.T) {
	out, _ := captureOutput(t)
	stdin = strings.NewReader("")

	err := run(t, "--json", "detect")
	require.Error(t, err)
	resp := decodeData(t, out.Bytes(), nil)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Contains(t, *resp.Error, "no text")
}

func TestDetect_Human(t *testing.T) {
	out, _ := captureOutput(t)

	require.NoError(t, run(t, "-v", "detect", heatedText))
	s := out.String()
	assert.Contains(t, s, "Mood Detection")
	assert.Contains(t, s, "heated")
	assert.Contains(t, s, "keyword/heated")
}

// =============================================================================
// THEME TESTS
// =============================================================================

func TestTheme_ShowTokens(t *testing.T) {
	out, _ := captureOutput(t)

	require.NoError(t, run(t, "theme", "show", "heated", "--tokens"))
	s := out.String()
	assert.Contains(t, s, "--mood-accent: #ef4444;")
	assert.Contains(t, s, "--mood-gradient-3: #f97316;")
	assert.Contains(t, s, "--mood-intensity: 0.8;")
}

func TestTheme_ShowMoodShorthand(t *testing.T) {
	out, _ := captureOutput(t)

	require.NoError(t, run(t, "--json", "theme", "Serene"))
	var v ThemeView
	decodeData(t, out.Bytes(), &v)
	assert.Equal(t, mood.Serene, v.Mood)
	assert.Equal(t, "#2dd4bf", v.Theme.Accent)
	assert.Empty(t, v.Tokens)
	assert.NotEmpty(t, v.Keywords)
	assert.Equal(t, mood.Keywords(mood.Serene), v.Keywords)
	assert.Equal(t, mood.Emoji(mood.Serene), v.Emoji)
}

func TestTheme_ShowListsCues(t *testing.T) {
	out, _ := captureOutput(t)

	require.NoError(t, run(t, "theme", "show", "heated"))
	s := out.String()
	assert.Contains(t, s, "keywords")
	assert.Contains(t, s, "hate, angry")
	assert.Contains(t, s, "emoji")

	out.Reset()
	require.NoError(t, run(t, "theme", "show", "neutral"))
	assert.NotContains(t, out.String(), "keywords")
}

func TestTheme_List(t *testing.T) {
	out, _ := captureOutput(t)

	require.NoError(t, run(t, "--json", "theme", "list"))
	var views []ThemeView
	decodeData(t, out.Bytes(), &views)
	require.Len(t, views, len(mood.All()))
	assert.Equal(t, mood.Neutral, views[0].Mood)
}

func TestTheme_Lerp(t *testing.T) {
	out, _ := captureOutput(t)

	require.NoError(t, run(t, "--json", "theme", "lerp", "neutral", "heated", "1"))
	var v LerpView
	decodeData(t, out.Bytes(), &v)
	assert.Equal(t, "#ef4444", v.Theme.Accent)
	assert.Equal(t, "fast", string(v.Theme.AnimationSpeed))

	out.Reset()
	require.NoError(t, run(t, "--json", "theme", "lerp", "neutral", "heated", "0.5", "--eased"))
	decodeData(t, out.Bytes(), &v)
	assert.InDelta(t, 0.875, v.Eased, 1e-9)
	assert.Equal(t, 0.5, v.Progress)

	assert.Error(t, run(t, "theme", "lerp", "neutral", "bogus", "0.5"))
	assert.Error(t, run(t, "theme", "lerp", "neutral"))
}

// =============================================================================
// RULES TESTS
// =============================================================================

func TestRules_ApplyPresets(t *testing.T) {
	out, _ := captureOutput(t)

	require.NoError(t, run(t, "--json", "rules", "apply", "--presets", "hi", "<3"))
	var v ApplyView
	decodeData(t, out.Bytes(), &v)
	assert.Equal(t, "hi <3", v.Input)
	assert.Equal(t, "hi ♥", v.Output)
	assert.True(t, v.Matched)
	require.Len(t, v.Segments, 2)
	assert.Equal(t, textfx.SegmentEffect, v.Segments[1].Type)
	assert.Equal(t, "<3", v.Segments[1].Original)
}

func TestRules_ApplyWithoutRules(t *testing.T) {
	out, _ := captureOutput(t)

	require.NoError(t, run(t, "rules", "apply", "plain", "text"))
	assert.Equal(t, "plain text\n", out.String())
}

func TestRules_AddListRemove(t *testing.T) {
	out, _ := captureOutput(t)

	require.NoError(t, run(t, "--json", "rules", "add",
		"--match", "wow", "--action", "wrap", "--class", "sparkle",
		"--style", "color=#c084fc, bold=true", "--name", "wow"))
	var added textfx.TextRule
	decodeData(t, out.Bytes(), &added)
	assert.NotEmpty(t, added.ID)
	assert.True(t, added.Enabled)
	assert.Equal(t, map[string]string{"color": "#c084fc", "bold": "true"}, added.Style)

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Len(t, cfg.TextRules, 1)
	assert.Equal(t, "wow", cfg.TextRules[0].Match)

	out.Reset()
	require.NoError(t, run(t, "rules", "list"))
	assert.Contains(t, out.String(), "wrap .sparkle")

	out.Reset()
	require.NoError(t, run(t, "-q", "rules", "remove", "wow"))
	cfg, err = config.Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.TextRules)

	assert.Error(t, run(t, "rules", "remove", "wow"))
}

func TestRules_AddDisabledAndLongMatch(t *testing.T) {
	out, _ := captureOutput(t)

	long := strings.Repeat("a", 200)
	require.NoError(t, run(t, "--json", "rules", "add",
		"--match", long, "--action", "replace", "--replacement", "b", "--disabled"))
	var added textfx.TextRule
	decodeData(t, out.Bytes(), &added)
	assert.False(t, added.Enabled)

	out.Reset()
	require.NoError(t, run(t, "rules", "list"))
	assert.Contains(t, out.String(), "off")
	assert.NotContains(t, out.String(), long, "pattern is cut to the terminal width")
	assert.Contains(t, out.String(), "...")
}

func TestRules_AddInvalid(t *testing.T) {
	captureOutput(t)

	err := run(t, "rules", "add", "--match", "(", "--regex")
	assert.ErrorIs(t, err, textfx.ErrInvalidRule)
	assert.Error(t, run(t, "rules", "add", "--action", "style"))
	assert.Error(t, run(t, "rules", "add", "--match", "x", "--style", "bold"))
}

func TestRules_Presets(t *testing.T) {
	out, _ := captureOutput(t)

	require.NoError(t, run(t, "--json", "rules", "presets"))
	var views []RuleView
	decodeData(t, out.Bytes(), &views)
	require.Len(t, views, len(textfx.Presets()))
	for _, v := range views {
		assert.Empty(t, v.Error, v.ID)
	}
}

func TestParseStyle(t *testing.T) {
	style, err := parseStyle("")
	require.NoError(t, err)
	assert.Nil(t, style)

	style, err = parseStyle("italic=true,color = #fff")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"italic": "true", "color": "#fff"}, style)

	_, err = parseStyle("=x")
	assert.Error(t, err)
}

// =============================================================================
// CONFIG TESTS
// =============================================================================

func TestConfig_InitGetSet(t *testing.T) {
	out, _ := captureOutput(t)

	require.NoError(t, run(t, "-q", "config", "init"))
	path, err := config.ConfigPathTOML()
	require.NoError(t, err)
	assert.FileExists(t, path)
	assert.Error(t, run(t, "config", "init"), "init refuses to overwrite")

	require.NoError(t, run(t, "-q", "config", "set", "intensity", "0.5"))
	out.Reset()
	require.NoError(t, run(t, "config", "get", "intensity"))
	assert.Equal(t, "0.5\n", out.String())

	require.NoError(t, run(t, "-q", "config", "set", "manual_mood", "tense"))
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, mood.Tense, cfg.ManualMood)

	require.NoError(t, run(t, "-q", "config", "set", "manual_mood", "auto"))
	cfg, err = config.Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.ManualMood)

	assert.Error(t, run(t, "config", "set", "intensity", "2"))
	assert.Error(t, run(t, "config", "set", "nope", "1"))
	assert.Error(t, run(t, "config", "get"))
}

func TestConfig_ExplicitPath(t *testing.T) {
	out, _ := captureOutput(t)
	path := filepath.Join(t.TempDir(), "fx.json")

	require.NoError(t, run(t, "--config", path, "-q", "config", "set", "layers.particles", "false"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"particles": false`)

	require.NoError(t, run(t, "--config", path, "--json", "config", "path"))
	var v map[string]interface{}
	decodeData(t, out.Bytes(), &v)
	assert.Equal(t, path, v["path"])
	assert.Equal(t, true, v["exists"])
}

func TestConfig_ShowRedactsKey(t *testing.T) {
	out, _ := captureOutput(t)

	require.NoError(t, run(t, "-q", "config", "set", "llm.api_key", "sk-test-1234567890"))
	out.Reset()
	require.NoError(t, run(t, "--json", "config", "show"))
	assert.NotContains(t, out.String(), "sk-test-1234567890")
	assert.Contains(t, out.String(), "sk-t...7890")
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "", maskAPIKey(""))
	assert.Equal(t, "****", maskAPIKey("short"))
	assert.Equal(t, "abcd...wxyz", maskAPIKey("abcdefghijklmnopqrstuvwxyz"))
}

// =============================================================================
// CHAT SESSION TESTS
// =============================================================================

func newTestSession(t *testing.T) (*ChatSession, *bytes.Buffer) {
	t.Helper()
	captureOutput(t)
	buf := &bytes.Buffer{}
	cfg := config.Default()
	cfg.TextRules = textfx.Presets()
	s := NewChatSession(cfg, nil, buf)
	t.Cleanup(s.Close)
	return s, buf
}

func TestChatSession_MessageChangesMood(t *testing.T) {
	s, buf := newTestSession(t)
	ctx := context.Background()

	cont, err := s.HandleLine(ctx, "I love you darling, kiss me honey 😍 💕 <3")
	require.NoError(t, err)
	assert.True(t, cont)

	assert.Equal(t, mood.Romantic, s.Engine.State().Current)
	assert.Contains(t, buf.String(), "[mood] neutral → romantic")
	assert.Contains(t, buf.String(), "you: ")
	assert.Contains(t, buf.String(), "♥")
	assert.Len(t, s.Messages, 1)
}

func TestChatSession_SlashCommands(t *testing.T) {
	s, buf := newTestSession(t)
	ctx := context.Background()

	cont, err := s.HandleLine(ctx, "/mood heated")
	require.NoError(t, err)
	assert.True(t, cont)
	assert.Equal(t, mood.Heated, s.Engine.State().Current)
	assert.Equal(t, mood.Heated, s.Engine.Settings().ManualMood)

	buf.Reset()
	_, err = s.HandleLine(ctx, "/tokens")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "--mood-particle-effect")

	_, err = s.HandleLine(ctx, "/mood auto")
	require.NoError(t, err)
	assert.Empty(t, s.Engine.Settings().ManualMood)

	_, err = s.HandleLine(ctx, "/effects")
	require.NoError(t, err)
	assert.False(t, s.Engine.Settings().Layers.TextEffects)

	_, err = s.HandleLine(ctx, "hello <3")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "hello <3")

	_, err = s.HandleLine(ctx, "/reset")
	require.NoError(t, err)
	assert.Empty(t, s.Messages)
	assert.Equal(t, mood.Neutral, s.Engine.State().Current)

	_, err = s.HandleLine(ctx, "/bogus")
	assert.ErrorContains(t, err, "unknown command")

	_, err = s.HandleLine(ctx, "/mood bogus")
	assert.ErrorIs(t, err, mood.ErrUnknownMood)

	cont, err = s.HandleLine(ctx, "/quit")
	require.NoError(t, err)
	assert.False(t, cont)

	cont, _ = s.HandleLine(ctx, "exit")
	assert.False(t, cont)
}

type staticSource []mood.Signal

func (s staticSource) Signals(context.Context, []string) ([]mood.Signal, error) {
	return s, nil
}

func TestChatSession_LLMToggle(t *testing.T) {
	s, buf := newTestSession(t)
	ctx := context.Background()
	s.NewSource = func(config.LLMConfig) (ambient.SignalSource, error) {
		return staticSource{{Mood: mood.Mysterious, Weight: 5, Source: mood.SourceLLM}}, nil
	}

	_, err := s.HandleLine(ctx, "/llm")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "model signals off")

	_, err = s.HandleLine(ctx, "/llm on")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "model signals on")

	_, err = s.HandleLine(ctx, "plain words")
	require.NoError(t, err)
	assert.Equal(t, mood.Mysterious, s.Engine.State().Current)

	_, err = s.HandleLine(ctx, "/llm off")
	require.NoError(t, err)
	_, err = s.HandleLine(ctx, "/reset")
	require.NoError(t, err)
	_, err = s.HandleLine(ctx, "plain words")
	require.NoError(t, err)
	assert.Equal(t, mood.Neutral, s.Engine.State().Current)

	_, err = s.HandleLine(ctx, "/llm maybe")
	assert.Error(t, err)

	s.NewSource = func(config.LLMConfig) (ambient.SignalSource, error) {
		return nil, errors.New("no api key")
	}
	_, err = s.HandleLine(ctx, "/llm on")
	assert.ErrorContains(t, err, "no api key")
}

func TestChatSession_QuietSuppressesAnnouncements(t *testing.T) {
	s, buf := newTestSession(t)
	s.Quiet = true

	_, err := s.HandleLine(context.Background(), heatedText)
	require.NoError(t, err)
	assert.Equal(t, mood.Heated, s.Engine.State().Current)
	assert.NotContains(t, buf.String(), "[mood]")
}
