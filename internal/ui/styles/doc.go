// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles paints mood themes and text effects onto the terminal.

# Color System (colors.go)

Chrome colors are Lip Gloss AdaptiveColors and never follow the mood:

	SurfaceDim, Overlay - status bar and separators
	TextPrimary, TextSecondary, TextMuted - text hierarchy

Status helpers (RenderSuccess, RenderError, ...) pair every color with an
ASCII indicator.

# Theme (theme.go)

Theme detects the terminal with termenv and holds the mood theme on
display. It implements ambient.Sink:

	st := styles.NewTheme()
	ctrl := ambient.NewController(ambient.ControllerOptions{Sink: st})

Mood colors may carry alpha; they are flattened onto the surface before
reaching the terminal. Intensity fades every mood color toward the
surface.

RenderSegments turns textfx segments into styled text. Rule style keys
understood: color, background, bold, italic, underline, strikethrough,
faint.

# Animation (animations.go)

Everything is a pure function of a tick or elapsed time and the mood's
animation speed, so the preview can redraw at any rate:

	Pulse           - animate rule highlight phase
	ParticleRow     - one row of the particle layer
	BackgroundLevel - background animation brightness
*/
package styles
