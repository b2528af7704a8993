// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides settings loading and management for ambient.
//
// Supports both TOML and JSON settings files, with sensible defaults,
// environment variable overrides, validation, and hot reload.
//
// # Key Types
//
//   - Settings: effects configuration (layers, detection tuning, text rules,
//     theme overrides, LLM classifier)
//   - ValidationError / ValidateErrors: field-level validation failures
//   - Watcher: debounced reload on file change
//
// # Configuration Precedence
//
// Settings are loaded from (in order of precedence):
//   - Environment variables (AMBIENT_*)
//   - ~/.ambient/config.toml
//   - ~/.ambient/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res := mood.Detect(messages, cfg.DetectOptions())
package config
