// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package theme defines the ambient visual theme attached to each mood and
// the math used to blend one theme into another.
//
// Continuous fields (gradient stops, accent) are interpolated per RGB
// channel. Discrete fields snap to the target once a transition passes a
// threshold: glow, text tint, background animation, animation speed and the
// number of gradient stops at 0.5, the particle effect later at 0.7.
package theme
