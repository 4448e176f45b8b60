// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// MarkdownRenderer wraps a glamour renderer for assistant message bodies.
// USABILITY: Renders markdown responses with syntax highlighting and formatting.
type MarkdownRenderer struct {
	renderer *glamour.TermRenderer
	width    int
}

// NewMarkdownRenderer creates a renderer wrapping at the given width.
// A nil inner renderer (init failure) degrades to plain text.
func NewMarkdownRenderer(width int) *MarkdownRenderer {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		r = nil
	}
	return &MarkdownRenderer{renderer: r, width: width}
}

// Width returns the configured wrap width.
func (m *MarkdownRenderer) Width() int {
	return m.width
}

// Render renders markdown content for terminal display. Returns the original
// content if rendering fails or the renderer is unavailable.
func (m *MarkdownRenderer) Render(content string) string {
	if m == nil || m.renderer == nil {
		return content
	}
	rendered, err := m.renderer.Render(content)
	if err != nil {
		return content
	}
	// Glamour pads with leading/trailing blank lines that fight card layout
	return strings.Trim(rendered, "\n")
}
