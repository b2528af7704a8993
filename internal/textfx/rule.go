// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package textfx

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidRule is wrapped by every validation failure.
var ErrInvalidRule = errors.New("invalid text rule")

// Action is what a rule does to the spans it matches.
type Action string

const (
	ActionAnimate Action = "animate"
	ActionReplace Action = "replace"
	ActionStyle   Action = "style"
	ActionWrap    Action = "wrap"
)

// Actions lists every known action.
func Actions() []Action {
	return []Action{ActionAnimate, ActionReplace, ActionStyle, ActionWrap}
}

// Valid reports whether a is a known action.
func (a Action) Valid() bool {
	for _, known := range Actions() {
		if a == known {
			return true
		}
	}
	return false
}

// TextRule is one user-defined pattern and the effect applied to its
// matches. Rules are passed by value; the compiled matcher travels with the
// copy.
type TextRule struct {
	ID            string            `toml:"id" json:"id"`
	Name          string            `toml:"name,omitempty" json:"name,omitempty"`
	Match         string            `toml:"match" json:"match"`
	IsRegex       bool              `toml:"is_regex" json:"is_regex"`
	CaseSensitive bool              `toml:"case_sensitive" json:"case_sensitive"`
	Action        Action            `toml:"action" json:"action"`
	Replacement   string            `toml:"replacement,omitempty" json:"replacement,omitempty"`
	ClassName     string            `toml:"class_name,omitempty" json:"class_name,omitempty"`
	Style         map[string]string `toml:"style,omitempty" json:"style,omitempty"`
	Enabled       bool              `toml:"enabled" json:"enabled"`

	re     *regexp.Regexp
	source string
}

// Label names the rule for messages: its name, else its ID, else its match.
func (r TextRule) Label() string {
	switch {
	case r.Name != "":
		return r.Name
	case r.ID != "":
		return r.ID
	}
	return r.Match
}

// Pattern returns the regular expression the rule compiles to. Literal
// matches are quoted; case-insensitive rules get the (?i) flag.
func (r TextRule) Pattern() string {
	p := r.Match
	if !r.IsRegex {
		p = regexp.QuoteMeta(p)
	}
	if !r.CaseSensitive {
		p = "(?i)" + p
	}
	return p
}

// matcher returns the compiled pattern, reusing the cached one while the
// pattern is unchanged.
func (r TextRule) matcher() (*regexp.Regexp, error) {
	p := r.Pattern()
	if r.re != nil && r.source == p {
		return r.re, nil
	}
	return regexp.Compile(p)
}

// Compiled reports whether r carries a compiled matcher for its current
// pattern.
func (r TextRule) Compiled() bool {
	return r.re != nil && r.source == r.Pattern()
}

func (r *TextRule) compile() error {
	re, err := r.matcher()
	if err != nil {
		return err
	}
	r.re = re
	r.source = r.Pattern()
	return nil
}

// =============================================================================
// VALIDATION AND CONSTRUCTION
// =============================================================================

// ValidateRule checks that r is usable: a non-empty match, a known action,
// a replacement for replace rules, a class name for the others, and a
// compiling pattern for regex rules.
func ValidateRule(r TextRule) error {
	if strings.TrimSpace(r.Match) == "" {
		return fmt.Errorf("%w: match is empty", ErrInvalidRule)
	}
	if r.Action == "" {
		return fmt.Errorf("%w: action is required", ErrInvalidRule)
	}
	if !r.Action.Valid() {
		names := make([]string, 0, len(Actions()))
		for _, a := range Actions() {
			names = append(names, string(a))
		}
		return fmt.Errorf("%w: unknown action %q (want %s)", ErrInvalidRule, r.Action, strings.Join(names, ", "))
	}
	if r.Action == ActionReplace {
		if r.Replacement == "" {
			return fmt.Errorf("%w: replace action requires a replacement", ErrInvalidRule)
		}
	} else if r.ClassName == "" {
		return fmt.Errorf("%w: %s action requires a class name", ErrInvalidRule, r.Action)
	}
	if r.IsRegex {
		if _, err := regexp.Compile(r.Pattern()); err != nil {
			return fmt.Errorf("%w: bad pattern: %v", ErrInvalidRule, err)
		}
	}
	return nil
}

// CreateOption adjusts a rule being created.
type CreateOption func(*TextRule)

// WithEnabled sets the initial enabled state. Rules are created enabled
// unless this says otherwise.
func WithEnabled(enabled bool) CreateOption {
	return func(r *TextRule) { r.Enabled = enabled }
}

// CreateTextRule completes a partial rule: it assigns an ID when missing,
// defaults the action to style, enables the rule, applies opts, then
// validates and compiles it.
func CreateTextRule(r TextRule, opts ...CreateOption) (TextRule, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Action == "" {
		r.Action = ActionStyle
	}
	r.Enabled = true
	for _, opt := range opts {
		opt(&r)
	}
	if err := ValidateRule(r); err != nil {
		return TextRule{}, err
	}
	if err := r.compile(); err != nil {
		return TextRule{}, fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}
	return r, nil
}

// Compile validates and compiles rules loaded from configuration. Invalid
// rules are left out of the result and reported, in order, in errs.
func Compile(rules []TextRule) (compiled []TextRule, errs []error) {
	compiled = make([]TextRule, 0, len(rules))
	for i, r := range rules {
		if err := ValidateRule(r); err != nil {
			errs = append(errs, fmt.Errorf("text_rules[%d] (%s): %w", i, r.Label(), err))
			continue
		}
		if err := r.compile(); err != nil {
			errs = append(errs, fmt.Errorf("text_rules[%d] (%s): %w: %v", i, r.Label(), ErrInvalidRule, err))
			continue
		}
		compiled = append(compiled, r)
	}
	return compiled, errs
}
