// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// ACCENT COLORS
// =============================================================================

// Purple - Primary accent, assistant messages, focused card border
var Purple = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}

// Cyan - Brand color, user highlights, minimap focus marker
var Cyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}

// Emerald - Success states, finished tool calls
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// Rose - Errors, failed tool calls, delete confirmation
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// Amber - Warnings, running tool calls
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// =============================================================================
// SURFACE COLORS
// =============================================================================

// Surface - Main background
var Surface = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}

// SurfaceDim - Background for cards behind the focus
var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F5F5F5", Dark: "#181825"}

// Overlay - Borders, separators
var Overlay = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#313244"}

// OverlayDim - Dimmer borders for deep stack cards
var OverlayDim = lipgloss.AdaptiveColor{Light: "#D4D4D4", Dark: "#45475A"}

// =============================================================================
// TEXT COLORS
// =============================================================================

// TextPrimary - Main body text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}

// TextSecondary - Labels, card titles off focus
var TextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A6ADC8"}

// TextMuted - Hints, timestamps, deep stack card text
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}

// TextFaint - Deepest visible stack text, barely-there
var TextFaint = lipgloss.AdaptiveColor{Light: "#C7CCD4", Dark: "#494D64"}

// =============================================================================
// CARD COLORS
// =============================================================================

// Focused card border
var CardFocusBorder = Purple

// Stack card borders dim with depth.
var CardStackBorder = Overlay
var CardDeepBorder = OverlayDim

// User message accent inside a card
var UserAccent = lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#60A5FA"}

// Assistant message accent inside a card
var AssistantAccent = Purple

// =============================================================================
// MINIMAP COLORS
// =============================================================================

// MinimapNode - Ordinary card marker
var MinimapNode = TextMuted

// MinimapFocus - Focused card marker
var MinimapFocus = Cyan

// MinimapPath - Markers on the root path of the focus
var MinimapPath = Purple
