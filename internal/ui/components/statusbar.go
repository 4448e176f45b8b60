// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/cardstack-tui/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// Status represents the current application status.
type Status int

const (
	StatusReady Status = iota
	StatusStreaming
	StatusThinking
	StatusAnimating
	StatusSaving
	StatusError
)

// String returns the display string for the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusStreaming:
		return "Streaming..."
	case StatusThinking:
		return "Thinking..."
	case StatusAnimating:
		return "Moving"
	case StatusSaving:
		return "Saving..."
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// StatusBar renders the bottom status line.
type StatusBar struct {
	Status      Status
	ModelName   string
	ProjectName string

	// Depth is the focus card's stack depth; Cards the project total.
	Depth int
	Cards int

	// MinimapManual is true while a manual scroll hold is active.
	MinimapManual bool

	Width         int
	ShowShortcuts bool

	theme *styles.Theme
}

// NewStatusBar creates a status bar.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Width:         80,
		ShowShortcuts: true,
		theme:         theme,
	}
}

// View renders the status bar.
func (s *StatusBar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	gap := s.Width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}

	return s.theme.StatusBar.Width(s.Width).Render(
		left + strings.Repeat(" ", gap) + right,
	)
}

func (s *StatusBar) renderLeft() string {
	parts := []string{s.Status.String()}
	if s.ProjectName != "" {
		parts = append(parts, s.ProjectName)
	}
	parts = append(parts, fmt.Sprintf("depth %d / %d cards", s.Depth, s.Cards))
	if s.MinimapManual {
		parts = append(parts, s.theme.ShortcutDesc.Render("map:manual"))
	}
	return strings.Join(parts, "  ")
}

func (s *StatusBar) renderRight() string {
	var parts []string
	if s.ShowShortcuts && s.Width >= 100 {
		parts = append(parts,
			s.shortcut("enter", "send"),
			s.shortcut("^n", "branch"),
			s.shortcut("^d", "delete"),
			s.shortcut("esc", "back"),
		)
	}
	if s.ModelName != "" {
		parts = append(parts, s.theme.ModelName.Render(s.ModelName))
	}
	return strings.Join(parts, "  ")
}

func (s *StatusBar) shortcut(key, desc string) string {
	return s.theme.ShortcutKey.Render(key) + s.theme.ShortcutDesc.Render(" "+desc)
}
