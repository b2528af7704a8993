// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// styles.go - Shared styling for the ambient CLI commands.
//
// Colors are disabled for non-TTY output and respect NO_COLOR and
// FORCE_COLOR (see terminal.go).

package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/ambient/internal/ui/styles"
	"github.com/jeranaias/ambient/internal/util"
)

func init() {
	lipgloss.SetColorProfile(GetColorProfile())
}

// =============================================================================
// SHARED STYLES
// =============================================================================

var (
	// TitleStyle is used for command titles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	// SectionStyle is used for section headers within commands
	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255"))

	// LabelStyle is used for field labels
	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	// ValueStyle is used for values
	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	// DimStyle is used for hints and secondary text
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242"))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)
)

// labelWidth is the label column width in key/value listings.
const labelWidth = 28

// printKV writes one aligned "label  value" row. Labels are padded by
// display width so wide characters line up.
func printKV(w io.Writer, label string, value interface{}) {
	fmt.Fprintf(w, "  %s %s\n",
		LabelStyle.Render(util.PadRight(label, labelWidth)),
		ValueStyle.Render(fmt.Sprint(value)))
}

// newStyles returns a mood-aware style set rendering for w.
func newStyles(w io.Writer) *styles.Theme {
	return styles.NewThemeForOutput(w, GetColorProfile())
}
