// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/cardstack-tui/internal/ui/styles"
)

// =============================================================================
// INPUT COMPONENT
// =============================================================================

// Input wraps the bubbles text input for the message composer.
type Input struct {
	field textinput.Model
	theme *styles.Theme
	width int
}

// NewInput creates the message composer.
func NewInput(theme *styles.Theme) Input {
	field := textinput.New()
	field.Placeholder = "Type a message..."
	field.Prompt = "> "
	field.CharLimit = 0 // long prompts are legitimate
	field.PromptStyle = theme.InputPrompt
	field.TextStyle = theme.InputText
	field.PlaceholderStyle = theme.InputPlaceholder

	return Input{
		field: field,
		theme: theme,
		width: 80,
	}
}

// Focus gives the composer keyboard focus.
func (i *Input) Focus() tea.Cmd {
	return i.field.Focus()
}

// Blur removes keyboard focus.
func (i *Input) Blur() {
	i.field.Blur()
}

// Focused reports whether the composer has keyboard focus.
func (i *Input) Focused() bool {
	return i.field.Focused()
}

// Value returns the current text.
func (i *Input) Value() string {
	return i.field.Value()
}

// Reset clears the composer.
func (i *Input) Reset() {
	i.field.Reset()
}

// SetWidth resizes the composer.
func (i *Input) SetWidth(width int) {
	i.width = width
	i.field.Width = maxInt(width-8, 20)
}

// Update forwards messages to the underlying text input.
func (i *Input) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	i.field, cmd = i.field.Update(msg)
	return cmd
}

// View renders the composer with its container border.
func (i *Input) View() string {
	return i.theme.InputContainer.Width(i.width).Render(i.field.View())
}
