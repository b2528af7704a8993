// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// preview.go - Preview command implementation for ambient.
//
// Command: preview
// Short:   Live themed preview (the default command)
// Aliases: tui, ui
//
// The settings file is watched while the preview runs; edits apply
// without a restart. Log output goes to preview.log in the settings
// directory.
//
// Examples:
//   ambient
//   ambient preview --inline
//   ambient --llm preview
//
// Flags:
//   --inline            Render below the prompt instead of full screen

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ambient/internal/config"
	"github.com/jeranaias/ambient/internal/ui/preview"
)

// HandlePreview handles the "preview" command.
func HandlePreview(ctx context.Context, args Args) error {
	parser := NewArgParser(args.Raw, "inline")

	if args.JSON {
		return fail(args, "preview", errors.New("preview is interactive and has no JSON output"))
	}
	if !IsTTY() || !IsStdoutTTY() {
		return fmt.Errorf("preview needs an interactive terminal (try: ambient detect or ambient chat)")
	}

	cfg, err := loadSettings(args)
	if err != nil {
		return err
	}
	path, err := settingsPath(args)
	if err != nil {
		return err
	}
	source, err := signalSource(args, cfg)
	if err != nil {
		return err
	}

	// Log lines would tear the screen; send them to a file instead.
	if dir, err := config.ConfigDir(); err == nil && os.MkdirAll(dir, 0700) == nil {
		if f, err := tea.LogToFile(filepath.Join(dir, "preview.log"), "ambient"); err == nil {
			defer f.Close()
		}
	}

	return preview.Run(ctx, preview.Options{
		Settings:     cfg,
		SettingsPath: path,
		Source:       source,
		AltScreen:    !parser.BoolFlag("inline"),
	})
}
