// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/cardstack-tui/internal/ui/styles"
)

// =============================================================================
// THINKING SPINNER
// =============================================================================

// ThinkingSpinner shows streaming/thinking state while the model responds.
type ThinkingSpinner struct {
	spinner   spinner.Model
	message   string
	startTime time.Time
	active    bool
	theme     *styles.Theme
}

// NewThinkingSpinner creates the spinner used during response streaming.
func NewThinkingSpinner(theme *styles.Theme) ThinkingSpinner {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: styles.BrailleSpinner.Frames,
		FPS:    styles.BrailleSpinner.Duration(),
	}
	s.Style = theme.Spinner

	return ThinkingSpinner{
		spinner: s,
		message: "Thinking",
		theme:   theme,
	}
}

// Start activates the spinner and returns its tick command.
func (t *ThinkingSpinner) Start(message string) tea.Cmd {
	if message != "" {
		t.message = message
	}
	t.active = true
	t.startTime = time.Now()
	return t.spinner.Tick
}

// Stop deactivates the spinner.
func (t *ThinkingSpinner) Stop() {
	t.active = false
}

// Active reports whether the spinner is running.
func (t *ThinkingSpinner) Active() bool {
	return t.active
}

// Update advances the spinner animation.
func (t *ThinkingSpinner) Update(msg tea.Msg) tea.Cmd {
	if !t.active {
		return nil
	}
	var cmd tea.Cmd
	t.spinner, cmd = t.spinner.Update(msg)
	return cmd
}

// View renders the spinner line, including elapsed time past two seconds.
func (t *ThinkingSpinner) View() string {
	if !t.active {
		return ""
	}
	line := t.spinner.View() + " " + t.theme.ThinkingText.Render(t.message+"...")
	if elapsed := time.Since(t.startTime); elapsed > 2*time.Second {
		line += t.theme.CardMeta.Render(" (" + elapsed.Truncate(time.Second).String() + ")")
	}
	return line
}
