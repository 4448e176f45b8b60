// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles is the visual styling system for cardstack.
//
// Colors use Lip Gloss AdaptiveColor so the same palette works on light and
// dark terminals. Depth styling for the card stack lives here too: a
// card's scale, brightness, and opacity from the layout engine map onto
// discrete terminal-friendly render levels.
package styles
