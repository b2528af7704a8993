// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package llm classifies conversation mood with an OpenAI-compatible model.
//
// A Classifier asks the model for a structured verdict and turns it into a
// mood.Signal with source "llm", so model opinions are weighed alongside
// the keyword, punctuation and emoji detectors instead of replacing them.
// Calls are rate limited and bounded by a timeout.
package llm
