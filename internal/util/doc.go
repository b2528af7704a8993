// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util holds small helpers shared by the ambient packages.
//
// # Key Functions
//
// File Operations:
//   - AtomicWriteFile: crash-safe settings writes with fsync and rename
//
// Text:
//   - TruncateRunes, RuneLen: rune-safe truncation for logs and prompts
//   - StringWidth, TruncateWidth, PadRight: terminal-cell aware layout
//   - GraphemeLen: user-perceived character count
//
// # Usage
//
//	err := util.AtomicWriteFile(config.ConfigPathTOML(), data, 0600)
//	fmt.Println(util.PadRight(name, 12) + desc)
package util
