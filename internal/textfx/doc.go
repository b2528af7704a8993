// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package textfx splits text into plain and effect segments using an ordered
// list of user rules. Earlier rules claim spans first; a rule whose pattern
// does not compile is logged and skipped.
package textfx
