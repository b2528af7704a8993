// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides settings loading and management for ambient.
//
// Supports both TOML and JSON settings files, with sensible defaults,
// environment variable overrides, and validation.
//
// Settings file locations (in order of precedence):
//   - ~/.ambient/config.toml
//   - ~/.ambient/config.json
//   - Built-in defaults
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/ambient/internal/mood"
	"github.com/jeranaias/ambient/internal/textfx"
	"github.com/jeranaias/ambient/internal/theme"
	"github.com/jeranaias/ambient/internal/util"
)

// =============================================================================
// SETTINGS STRUCTURES
// =============================================================================

// Settings is the complete effects configuration.
type Settings struct {
	// Enabled is the master switch. When off the neutral theme is shown and
	// text rules are not applied.
	Enabled bool   `toml:"enabled" json:"enabled"`
	Layers  Layers `toml:"layers" json:"layers"`

	// Intensity scales effect strength, 0 to 1.
	Intensity float64 `toml:"intensity" json:"intensity"`

	// Mood detection
	MoodTransitionMS        int       `toml:"mood_transition_ms" json:"mood_transition_ms"`
	MoodConfidenceThreshold float64   `toml:"mood_confidence_threshold" json:"mood_confidence_threshold"`
	MoodAnalysisWindow      int       `toml:"mood_analysis_window" json:"mood_analysis_window"`
	ManualMood              mood.Mood `toml:"manual_mood,omitempty" json:"manual_mood,omitempty"`
	GraphemeEmoji           bool      `toml:"grapheme_emoji" json:"grapheme_emoji"`

	TextRules          []textfx.TextRule `toml:"text_rules,omitempty" json:"text_rules,omitempty"`
	MoodThemeOverrides theme.Overrides   `toml:"mood_theme_overrides,omitempty" json:"mood_theme_overrides,omitempty"`

	LLM LLMConfig `toml:"llm" json:"llm"`
}

// Layers toggles individual effect layers.
type Layers struct {
	MoodTheme   bool `toml:"mood_theme" json:"mood_theme"`
	TextEffects bool `toml:"text_effects" json:"text_effects"`
	Particles   bool `toml:"particles" json:"particles"`
	Background  bool `toml:"background" json:"background"`
}

// LLMConfig configures the optional model-backed mood classifier.
type LLMConfig struct {
	Enabled           bool   `toml:"enabled" json:"enabled"`
	Model             string `toml:"model" json:"model"`
	APIKey            string `toml:"api_key,omitempty" json:"api_key,omitempty"`
	BaseURL           string `toml:"base_url,omitempty" json:"base_url,omitempty"`
	RequestsPerMinute int    `toml:"requests_per_minute" json:"requests_per_minute"`
	TimeoutSeconds    int    `toml:"timeout_seconds" json:"timeout_seconds"`
}

// Limits for numeric settings.
const (
	MaxTransitionMS     = 10000
	MaxAnalysisWindow   = 50
	DefaultTransitionMS = 800
)

// =============================================================================
// DEFAULT SETTINGS
// =============================================================================

// Default returns the default settings.
func Default() *Settings {
	return &Settings{
		Enabled: true,
		Layers: Layers{
			MoodTheme:   true,
			TextEffects: true,
			Particles:   true,
			Background:  true,
		},
		Intensity:               0.8,
		MoodTransitionMS:        DefaultTransitionMS,
		MoodConfidenceThreshold: 0.35,
		MoodAnalysisWindow:      mood.DefaultMessageWindow,
		GraphemeEmoji:           false,

		LLM: LLMConfig{
			Enabled:           false,
			Model:             "gpt-4o-mini",
			RequestsPerMinute: 20,
			TimeoutSeconds:    10,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the ambient configuration directory. AMBIENT_HOME
// replaces the default ~/.ambient.
func ConfigDir() (string, error) {
	if dir := os.Getenv("AMBIENT_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".ambient"), nil
}

// ConfigPathTOML returns the path to the TOML settings file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON settings file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// ActivePath returns the settings file Load would read: the TOML file if it
// exists, else the JSON file if it exists, else the TOML path.
func ActivePath() (string, error) {
	tomlPath, err := ConfigPathTOML()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(tomlPath); err == nil {
		return tomlPath, nil
	}
	jsonPath, err := ConfigPathJSON()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(jsonPath); err == nil {
		return jsonPath, nil
	}
	return tomlPath, nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads settings from the config directory. TOML is tried first, then
// JSON, then defaults. Environment overrides are applied last.
func Load() (*Settings, error) {
	path, err := ActivePath()
	if err != nil {
		return nil, err
	}
	if _, statErr := os.Stat(path); statErr == nil {
		return LoadFromPath(path)
	}

	cfg := Default()
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg.
func LoadTOML(cfg *Settings, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return fillDefaults(cfg)
}

// LoadJSON decodes a JSON file over cfg.
func LoadJSON(cfg *Settings, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return fillDefaults(cfg)
}

// LoadFromPath loads settings from a specific file with full validation.
// Keys missing from the file keep their defaults.
func LoadFromPath(path string) (*Settings, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON settings from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML settings from %s: %w", path, err)
		}
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return cfg, nil
}

// fillDefaults repairs values a file can leave unusable.
func fillDefaults(cfg *Settings) error {
	defaults := Default()

	if cfg.MoodAnalysisWindow == 0 {
		cfg.MoodAnalysisWindow = defaults.MoodAnalysisWindow
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = defaults.LLM.Model
	}
	if cfg.LLM.RequestsPerMinute == 0 {
		cfg.LLM.RequestsPerMinute = defaults.LLM.RequestsPerMinute
	}
	if cfg.LLM.TimeoutSeconds == 0 {
		cfg.LLM.TimeoutSeconds = defaults.LLM.TimeoutSeconds
	}
	for i := range cfg.TextRules {
		if cfg.TextRules[i].Action == "" {
			cfg.TextRules[i].Action = textfx.ActionStyle
		}
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the settings to the default TOML file.
func Save(cfg *Settings) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes cfg to path as TOML with a short header.
func SaveTOML(cfg *Settings, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf bytes.Buffer
	fmt.Fprintln(&buf, "# ambient configuration file")
	fmt.Fprintln(&buf, "# Generated by ambient - edit with care")
	fmt.Fprintln(&buf, "")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	// 0600: the file may hold an API key.
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}

// SaveJSON writes cfg to path as indented JSON.
func SaveJSON(cfg *Settings, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a settings validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks ranges, enums, text rules and theme overrides. It returns
// ValidateErrors listing every problem found.
func (c *Settings) Validate() error {
	var errs ValidateErrors

	if c.Intensity < 0 || c.Intensity > 1 {
		errs = append(errs, ValidationError{"intensity", fmt.Sprintf("must be between 0 and 1, got %g", c.Intensity)})
	}
	if c.MoodTransitionMS < 0 || c.MoodTransitionMS > MaxTransitionMS {
		errs = append(errs, ValidationError{"mood_transition_ms", fmt.Sprintf("must be between 0 and %d, got %d", MaxTransitionMS, c.MoodTransitionMS)})
	}
	if c.MoodConfidenceThreshold < 0 || c.MoodConfidenceThreshold > 1 {
		errs = append(errs, ValidationError{"mood_confidence_threshold", fmt.Sprintf("must be between 0 and 1, got %g", c.MoodConfidenceThreshold)})
	}
	if c.MoodAnalysisWindow < 1 || c.MoodAnalysisWindow > MaxAnalysisWindow {
		errs = append(errs, ValidationError{"mood_analysis_window", fmt.Sprintf("must be between 1 and %d, got %d", MaxAnalysisWindow, c.MoodAnalysisWindow)})
	}
	if c.ManualMood != "" && !c.ManualMood.Valid() {
		errs = append(errs, ValidationError{"manual_mood", fmt.Sprintf("unknown mood %q", c.ManualMood)})
	}

	for i, r := range c.TextRules {
		if err := textfx.ValidateRule(r); err != nil {
			errs = append(errs, ValidationError{fmt.Sprintf("text_rules[%d]", i), err.Error()})
		}
	}

	for _, m := range mood.All() {
		o, ok := c.MoodThemeOverrides[m]
		if !ok {
			continue
		}
		if err := o.Validate(); err != nil {
			errs = append(errs, ValidationError{"mood_theme_overrides." + string(m), err.Error()})
		}
	}
	for m := range c.MoodThemeOverrides {
		if !m.Valid() {
			errs = append(errs, ValidationError{"mood_theme_overrides", fmt.Sprintf("unknown mood %q", m)})
		}
	}

	if c.LLM.Enabled {
		if strings.TrimSpace(c.LLM.Model) == "" {
			errs = append(errs, ValidationError{"llm.model", "required when llm is enabled"})
		}
		if c.LLM.RequestsPerMinute < 1 {
			errs = append(errs, ValidationError{"llm.requests_per_minute", "must be at least 1"})
		}
		if c.LLM.TimeoutSeconds < 1 {
			errs = append(errs, ValidationError{"llm.timeout_seconds", "must be at least 1"})
		}
	}
	if c.LLM.BaseURL != "" {
		u, err := url.Parse(c.LLM.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, ValidationError{"llm.base_url", fmt.Sprintf("invalid URL %q", c.LLM.BaseURL)})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// DERIVED VALUES
// =============================================================================

// TransitionDuration is MoodTransitionMS as a duration.
func (c *Settings) TransitionDuration() time.Duration {
	return time.Duration(c.MoodTransitionMS) * time.Millisecond
}

// Rules compiles the configured text rules. Invalid rules are dropped and
// reported.
func (c *Settings) Rules() ([]textfx.TextRule, []error) {
	return textfx.Compile(c.TextRules)
}

// DetectOptions maps the detection settings onto mood.Options.
func (c *Settings) DetectOptions() mood.Options {
	return mood.Options{
		MessageWindow:       c.MoodAnalysisWindow,
		ConfidenceThreshold: mood.Threshold(c.MoodConfidenceThreshold),
		GraphemeAwareEmoji:  c.GraphemeEmoji,
	}
}

// ThemeActive reports whether mood theming should run at all.
func (c *Settings) ThemeActive() bool {
	return c.Enabled && c.Layers.MoodTheme
}

// TextEffectsActive reports whether text rules should be applied.
func (c *Settings) TextEffectsActive() bool {
	return c.Enabled && c.Layers.TextEffects
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the settings.
// Malformed values are logged and ignored.
//
// Supported environment variables:
//   - AMBIENT_ENABLED: "1"/"true" or "0"/"false"
//   - AMBIENT_INTENSITY: overrides intensity
//   - AMBIENT_MANUAL_MOOD: overrides manual_mood ("auto" clears it)
//   - AMBIENT_TRANSITION_MS: overrides mood_transition_ms
//   - AMBIENT_THRESHOLD: overrides mood_confidence_threshold
//   - AMBIENT_WINDOW: overrides mood_analysis_window
//   - AMBIENT_GRAPHEME_EMOJI: overrides grapheme_emoji
//   - AMBIENT_LLM_ENABLED, AMBIENT_LLM_MODEL, AMBIENT_LLM_API_KEY,
//     AMBIENT_LLM_BASE_URL: override the [llm] table
func (c *Settings) ApplyEnvOverrides() {
	if v := os.Getenv("AMBIENT_ENABLED"); v != "" {
		c.Enabled = parseBool(v)
	}
	if v := os.Getenv("AMBIENT_INTENSITY"); v != "" {
		envFloat("AMBIENT_INTENSITY", v, &c.Intensity)
	}
	if v := os.Getenv("AMBIENT_MANUAL_MOOD"); v != "" {
		if strings.EqualFold(v, "auto") {
			c.ManualMood = ""
		} else {
			c.ManualMood = mood.Mood(strings.ToLower(strings.TrimSpace(v)))
		}
	}
	if v := os.Getenv("AMBIENT_TRANSITION_MS"); v != "" {
		envInt("AMBIENT_TRANSITION_MS", v, &c.MoodTransitionMS)
	}
	if v := os.Getenv("AMBIENT_THRESHOLD"); v != "" {
		envFloat("AMBIENT_THRESHOLD", v, &c.MoodConfidenceThreshold)
	}
	if v := os.Getenv("AMBIENT_WINDOW"); v != "" {
		envInt("AMBIENT_WINDOW", v, &c.MoodAnalysisWindow)
	}
	if v := os.Getenv("AMBIENT_GRAPHEME_EMOJI"); v != "" {
		c.GraphemeEmoji = parseBool(v)
	}

	if v := os.Getenv("AMBIENT_LLM_ENABLED"); v != "" {
		c.LLM.Enabled = parseBool(v)
	}
	if v := os.Getenv("AMBIENT_LLM_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("AMBIENT_LLM_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("AMBIENT_LLM_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
}

func parseBool(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "1" || v == "true" || v == "yes"
}

func envFloat(name, v string, dst *float64) {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		log.Printf("config: ignoring %s=%q: %v", name, v, err)
		return
	}
	*dst = f
}

func envInt(name, v string, dst *int) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		log.Printf("config: ignoring %s=%q: %v", name, v, err)
		return
	}
	*dst = n
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a settings value using dot notation (e.g., "layers.particles").
func (c *Settings) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a settings value using dot notation. String values are
// converted to the field's type.
func (c *Settings) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

// lookup walks key through nested structs.
func (c *Settings) lookup(key string) (reflect.Value, error) {
	if strings.TrimSpace(key) == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)
		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			if !isScalar(field.Kind()) {
				return reflect.Value{}, fmt.Errorf("field '%s' is not a scalar setting", key)
			}
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

func isScalar(k reflect.Kind) bool {
	switch k {
	case reflect.String, reflect.Bool, reflect.Int, reflect.Int64, reflect.Float64:
		return true
	}
	return false
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			result.WriteString(strings.ToUpper(string(part[0])))
			result.WriteString(strings.ToLower(part[1:]))
		}
	}
	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Float64:
			floatVal, err := strconv.ParseFloat(strVal, 64)
			if err != nil {
				return fmt.Errorf("invalid float value: %v", err)
			}
			field.SetFloat(floatVal)
			return nil
		case reflect.Bool:
			field.SetBool(parseBool(strVal))
			return nil
		}
	}

	val := reflect.ValueOf(value)
	if !val.IsValid() {
		return fmt.Errorf("cannot assign nil to %s", field.Type())
	}
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) {
		field.Set(val.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// GetAllKeys returns all scalar settings keys in dot notation.
func GetAllKeys() []string {
	return []string{
		"enabled",
		"layers.mood_theme",
		"layers.text_effects",
		"layers.particles",
		"layers.background",
		"intensity",
		"mood_transition_ms",
		"mood_confidence_threshold",
		"mood_analysis_window",
		"manual_mood",
		"grapheme_emoji",
		"llm.enabled",
		"llm.model",
		"llm.api_key",
		"llm.base_url",
		"llm.requests_per_minute",
		"llm.timeout_seconds",
	}
}

// Clone creates a deep copy of the settings.
func (c *Settings) Clone() *Settings {
	clone := *c

	if c.TextRules != nil {
		clone.TextRules = make([]textfx.TextRule, len(c.TextRules))
		for i, r := range c.TextRules {
			if r.Style != nil {
				style := make(map[string]string, len(r.Style))
				for k, v := range r.Style {
					style[k] = v
				}
				r.Style = style
			}
			clone.TextRules[i] = r
		}
	}
	if c.MoodThemeOverrides != nil {
		clone.MoodThemeOverrides = make(theme.Overrides, len(c.MoodThemeOverrides))
		for m, o := range c.MoodThemeOverrides {
			o.Gradient = append([]string(nil), o.Gradient...)
			clone.MoodThemeOverrides[m] = o
		}
	}
	return &clone
}

// String returns the settings as indented JSON with the API key redacted.
func (c *Settings) String() string {
	safe := c.Clone()
	if safe.LLM.APIKey != "" {
		safe.LLM.APIKey = "[REDACTED]"
	}
	data, _ := json.MarshalIndent(safe, "", "  ")
	return string(data)
}
