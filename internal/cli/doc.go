// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the commands of ambient.
//
// # Key Types
//
//   - Command: Enumeration of the available commands
//   - Args: Parsed global flags plus the raw command arguments
//   - ArgParser: Per-command flag and positional parsing
//   - JSONResponse: Envelope for --json output
//   - ChatSession: State of the interactive chat REPL
//
// # Usage
//
//	cmd, args := cli.Parse()
//	if err := cli.Run(ctx, cmd, args); err != nil {
//	    fmt.Fprintf(os.Stderr, "Error: %v\n", err)
//	    os.Exit(1)
//	}
//
// # Commands Overview
//
//   - preview: Live themed preview (default)
//   - detect: Mood of text, a file or stdin
//   - theme: Themes, design tokens and transitions
//   - rules: Text effect rules
//   - config: Settings management
//   - chat: Line-based chat with mood tracking
//
// All commands support the --json flag.
package cli
