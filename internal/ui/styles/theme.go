// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style

	// ==========================================================================
	// CARD STYLES
	// ==========================================================================

	CardFocused lipgloss.Style
	CardStacked lipgloss.Style
	CardDeep    lipgloss.Style
	CardTitle   lipgloss.Style
	CardMeta    lipgloss.Style

	UserLabel      lipgloss.Style
	AssistantLabel lipgloss.Style
	ToolSuccess    lipgloss.Style
	ToolError      lipgloss.Style
	ToolPending    lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputText        lipgloss.Style
	InputPlaceholder lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
	ModelName    lipgloss.Style

	// ==========================================================================
	// MINIMAP STYLES
	// ==========================================================================

	MinimapPane      lipgloss.Style
	MinimapNodeMark  lipgloss.Style
	MinimapFocusMark lipgloss.Style
	MinimapPathMark  lipgloss.Style

	// ==========================================================================
	// PROJECT PICKER STYLES
	// ==========================================================================

	PickerBox          lipgloss.Style
	PickerItem         lipgloss.Style
	PickerItemSelected lipgloss.Style
	PickerTitle        lipgloss.Style
	PickerMeta         lipgloss.Style

	// ==========================================================================
	// SPINNER AND LOADING STYLES
	// ==========================================================================

	Spinner      lipgloss.Style
	ThinkingText lipgloss.Style

	// ==========================================================================
	// ERROR BOX STYLES
	// ==========================================================================

	ErrorBox     lipgloss.Style
	ErrorTitle   lipgloss.Style
	ErrorMessage lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	// Detect terminal capabilities
	colorProfile := termenv.ColorProfile()
	hasTrueColor := colorProfile == termenv.TrueColor
	isDark := termenv.HasDarkBackground()

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: hasTrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// App container
	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)

	// Cards
	t.CardFocused = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(CardFocusBorder).
		Padding(0, 2)

	t.CardStacked = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(CardStackBorder).
		Padding(0, 2)

	t.CardDeep = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(CardDeepBorder).
		Padding(0, 1)

	t.CardTitle = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true)

	t.CardMeta = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.UserLabel = lipgloss.NewStyle().
		Foreground(UserAccent).
		Bold(true)

	t.AssistantLabel = lipgloss.NewStyle().
		Foreground(AssistantAccent).
		Bold(true)

	t.ToolSuccess = lipgloss.NewStyle().
		Foreground(Emerald)

	t.ToolError = lipgloss.NewStyle().
		Foreground(Rose)

	t.ToolPending = lipgloss.NewStyle().
		Foreground(Amber)

	// Input area
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.InputText = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.ModelName = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	// Minimap
	t.MinimapPane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.MinimapNodeMark = lipgloss.NewStyle().
		Foreground(MinimapNode)

	t.MinimapFocusMark = lipgloss.NewStyle().
		Foreground(MinimapFocus).
		Bold(true)

	t.MinimapPathMark = lipgloss.NewStyle().
		Foreground(MinimapPath)

	// Project picker
	t.PickerBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(1, 2)

	t.PickerItem = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Padding(0, 1)

	t.PickerItemSelected = lipgloss.NewStyle().
		Background(Purple).
		Foreground(Surface).
		Bold(true).
		Padding(0, 1)

	t.PickerTitle = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.PickerMeta = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Spinner and loading
	t.Spinner = lipgloss.NewStyle().
		Foreground(Purple)

	t.ThinkingText = lipgloss.NewStyle().
		Foreground(TextSecondary)

	// Error boxes
	t.ErrorBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(Rose).
		Padding(1, 2)

	t.ErrorTitle = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.ErrorMessage = lipgloss.NewStyle().
		Foreground(TextPrimary)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)

// ==========================================================================
// DEPTH RENDERING
// ==========================================================================

// DepthForeground maps a render brightness (0-1) onto a discrete text color.
// Terminals cannot dim continuously, so the brightness value coming out of
// the animation system is bucketed into four readability levels.
func DepthForeground(brightness float64) lipgloss.AdaptiveColor {
	switch {
	case brightness >= 0.95:
		return TextPrimary
	case brightness >= 0.85:
		return TextSecondary
	case brightness >= 0.7:
		return TextMuted
	default:
		return TextFaint
	}
}

// CardBorderStyle picks the card frame for a given stack depth. Depth 0 is
// the focused card.
func (t *Theme) CardBorderStyle(depth int) lipgloss.Style {
	switch {
	case depth <= 0:
		return t.CardFocused
	case depth <= 2:
		return t.CardStacked
	default:
		return t.CardDeep
	}
}

// OpacityVisible reports whether a card at the given render opacity should
// be drawn at all. Terminals render fully or not at all below a threshold.
func OpacityVisible(opacity float64) bool {
	return opacity >= 0.15
}
