// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package preview is the interactive ambient preview: type messages into
// the composer and watch the mood theme, particles and text effects follow
// the conversation.
//
// Theme transition frames are delivered through the Bubble Tea event loop
// (TeaScheduler) so every animation step is followed by a redraw.
package preview
