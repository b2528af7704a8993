// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - Config command implementation for ambient.
//
// Command: config [subcommand]
// Short:   View and modify settings
// Aliases: cfg
//
// Subcommands:
//   show (default)      Display current settings
//   get <key>           Print one setting
//   set <key> <value>   Change one setting and save
//   keys                List settable keys
//   init [--force]      Write a default settings file
//   reset               Reset to default settings
//   path                Show the settings file location
//
// Examples:
//   ambient config                        Show current settings
//   ambient config get intensity
//   ambient config set intensity 0.5
//   ambient config set manual_mood heated
//   ambient config set manual_mood auto   Back to detection
//   ambient config set layers.particles false
//   ambient config init --force
//
// Flags:
//   --json              Output in JSON format
//   --force             Overwrite an existing file (init)

package cli

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/jeranaias/ambient/internal/ambient"
	"github.com/jeranaias/ambient/internal/config"
	"github.com/jeranaias/ambient/internal/llm"
)

// =============================================================================
// SETTINGS HELPERS
// =============================================================================

// settingsPath returns the file the command works on: --config when given,
// else the active file in the settings directory.
func settingsPath(args Args) (string, error) {
	if args.ConfigPath != "" {
		return args.ConfigPath, nil
	}
	return config.ActivePath()
}

// loadSettings loads the settings the command should use. A missing file
// yields defaults with environment overrides applied.
func loadSettings(args Args) (*config.Settings, error) {
	if args.ConfigPath == "" {
		return config.Load()
	}
	if _, err := os.Stat(args.ConfigPath); errors.Is(err, os.ErrNotExist) {
		cfg := config.Default()
		cfg.ApplyEnvOverrides()
		return cfg, nil
	}
	return config.LoadFromPath(args.ConfigPath)
}

// saveSettings writes cfg back to the command's settings file.
func saveSettings(args Args, cfg *config.Settings) error {
	path, err := settingsPath(args)
	if err != nil {
		return err
	}
	if strings.HasSuffix(path, ".json") {
		return config.SaveJSON(cfg, path)
	}
	return config.SaveTOML(cfg, path)
}

// signalSource returns the model classifier when --llm is given or the
// settings enable it. A classifier that was only enabled in settings and
// cannot start is logged and skipped.
func signalSource(args Args, cfg *config.Settings) (ambient.SignalSource, error) {
	if !args.LLM && !cfg.LLM.Enabled {
		return nil, nil
	}
	c, err := llm.FromConfig(cfg.LLM)
	if err != nil {
		if args.LLM {
			return nil, err
		}
		log.Printf("ambient: model classifier disabled: %v", err)
		return nil, nil
	}
	return c, nil
}

// =============================================================================
// CONFIG COMMAND
// =============================================================================

// ConfigValue is the --json payload of config get and set.
type ConfigValue struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}

// HandleConfig handles the "config" command.
func HandleConfig(args Args) error {
	parser := NewArgParser(args.Raw, "force")

	switch sub := parser.Subcommand(); sub {
	case "", "show":
		return handleConfigShow(args)
	case "get":
		return handleConfigGet(args, parser.Positional(1))
	case "set":
		return handleConfigSet(args, parser.Positional(1), JoinPositionalArgs(parser, 2))
	case "keys":
		return handleConfigKeys(args)
	case "init":
		return handleConfigInit(args, parser.BoolFlag("force"))
	case "reset":
		return handleConfigInit(args, true)
	case "path":
		return handleConfigPath(args)
	default:
		err := fmt.Errorf("unknown config subcommand: %s", sub)
		if args.JSON {
			_ = NewJSONErrorResponse("config", err).Print()
		}
		return err
	}
}

func handleConfigShow(args Args) error {
	cfg, err := loadSettings(args)
	if err != nil {
		return fail(args, "config show", err)
	}
	redacted := cfg.Clone()
	if redacted.LLM.APIKey != "" {
		redacted.LLM.APIKey = maskAPIKey(redacted.LLM.APIKey)
	}
	if args.JSON {
		return NewJSONResponse("config show", redacted).Print()
	}

	fmt.Fprintln(stdout, TitleStyle.Render("Ambient Settings"))
	fmt.Fprintln(stdout)
	for _, key := range config.GetAllKeys() {
		v, err := redacted.Get(key)
		if err != nil {
			continue
		}
		if s, ok := v.(fmt.Stringer); ok && s.String() == "" {
			v = DimStyle.Render("(not set)")
		} else if s, ok := v.(string); ok && s == "" {
			v = DimStyle.Render("(not set)")
		}
		printKV(stdout, key, v)
	}
	fmt.Fprintln(stdout)
	printKV(stdout, "text_rules", len(cfg.TextRules))
	printKV(stdout, "mood_theme_overrides", len(cfg.MoodThemeOverrides))
	if !args.Quiet {
		if path, err := settingsPath(args); err == nil {
			fmt.Fprintln(stdout)
			fmt.Fprintln(stdout, DimStyle.Render("File: "+path))
		}
	}
	return nil
}

func handleConfigGet(args Args, key string) error {
	if key == "" {
		return fail(args, "config get", errors.New("usage: ambient config get <key>"))
	}
	cfg, err := loadSettings(args)
	if err != nil {
		return fail(args, "config get", err)
	}
	v, err := cfg.Get(key)
	if err != nil {
		return fail(args, "config get", err)
	}
	if key == "llm.api_key" {
		v = maskAPIKey(fmt.Sprint(v))
	}
	if args.JSON {
		return NewJSONResponse("config get", ConfigValue{Key: key, Value: v}).Print()
	}
	fmt.Fprintln(stdout, v)
	return nil
}

func handleConfigSet(args Args, key, value string) error {
	if key == "" {
		return fail(args, "config set", errors.New("usage: ambient config set <key> <value>"))
	}
	cfg, err := loadSettings(args)
	if err != nil {
		return fail(args, "config set", err)
	}
	if key == "manual_mood" && strings.EqualFold(value, "auto") {
		value = ""
	}
	if err := cfg.Set(key, value); err != nil {
		return fail(args, "config set", err)
	}
	if err := cfg.Validate(); err != nil {
		return fail(args, "config set", err)
	}
	if err := saveSettings(args, cfg); err != nil {
		return fail(args, "config set", err)
	}

	v, _ := cfg.Get(key)
	if key == "llm.api_key" {
		v = maskAPIKey(value)
	}
	if args.JSON {
		return NewJSONResponse("config set", ConfigValue{Key: key, Value: v}).Print()
	}
	if !args.Quiet {
		fmt.Fprintf(stdout, "%s %s = %v\n", SuccessStyle.Render("Set"), key, v)
	}
	return nil
}

func handleConfigKeys(args Args) error {
	keys := config.GetAllKeys()
	if args.JSON {
		return NewJSONResponse("config keys", keys).Print()
	}
	for _, k := range keys {
		fmt.Fprintln(stdout, k)
	}
	return nil
}

func handleConfigInit(args Args, force bool) error {
	path, err := settingsPath(args)
	if err != nil {
		return fail(args, "config init", err)
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fail(args, "config init", fmt.Errorf("%s already exists (use --force to overwrite)", path))
	}
	if err := saveSettings(args, config.Default()); err != nil {
		return fail(args, "config init", err)
	}
	if args.JSON {
		return NewJSONResponse("config init", map[string]string{"path": path}).Print()
	}
	if !args.Quiet {
		fmt.Fprintf(stdout, "%s default settings to %s\n", SuccessStyle.Render("Wrote"), path)
	}
	return nil
}

func handleConfigPath(args Args) error {
	path, err := settingsPath(args)
	if err != nil {
		return fail(args, "config path", err)
	}
	_, statErr := os.Stat(path)
	exists := statErr == nil
	if args.JSON {
		return NewJSONResponse("config path", map[string]interface{}{"path": path, "exists": exists}).Print()
	}
	fmt.Fprintln(stdout, path)
	if !exists && !args.Quiet {
		fmt.Fprintln(stderr, DimStyle.Render("(file does not exist yet; defaults are in use)"))
	}
	return nil
}

// maskAPIKey keeps the first and last four characters of key.
func maskAPIKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// fail reports err in the active output mode and returns it.
func fail(args Args, command string, err error) error {
	if args.JSON {
		_ = NewJSONErrorResponse(command, err).Print()
	}
	return err
}
