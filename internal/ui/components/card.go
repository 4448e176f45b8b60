// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/cardstack-tui/internal/anim"
	"github.com/jeranaias/cardstack-tui/internal/model"
	"github.com/jeranaias/cardstack-tui/internal/ui/styles"
	"github.com/jeranaias/cardstack-tui/internal/util"
)

// =============================================================================
// CARD COMPONENT
// =============================================================================

// Card renders one card of the stacked view from its model node and the
// animation system's per-frame render values.
//
// Continuous render values are quantized for the terminal: scale shrinks the
// box width, brightness picks the text color level, blur drops message
// detail, and opacity below the draw threshold skips the card entirely.
type Card struct {
	Node     *model.CardNode
	Frame    anim.CardFrame
	Depth    int // stack distance; 0 is the focus card
	Focused  bool
	Markdown *MarkdownRenderer

	// BaseWidth is the cell width of the card at scale 1.0.
	BaseWidth int

	// MaxBodyLines caps how many content lines the focus card shows.
	MaxBodyLines int

	theme *styles.Theme
}

// NewCard creates a card renderer with standard sizing.
func NewCard(node *model.CardNode, frame anim.CardFrame, theme *styles.Theme) *Card {
	return &Card{
		Node:         node,
		Frame:        frame,
		BaseWidth:    72,
		MaxBodyLines: 18,
		theme:        theme,
	}
}

// Width returns the card's rendered cell width after scaling.
func (c *Card) Width() int {
	w := int(float64(c.BaseWidth) * c.Frame.Transform.Scale)
	return clampInt(w, 24, c.BaseWidth)
}

// View renders the card box, or an empty string when the card should not be
// drawn this frame.
func (c *Card) View() string {
	tr := c.Frame.Transform
	if !tr.Visible || !styles.OpacityVisible(tr.Opacity) || c.Node == nil {
		return ""
	}

	width := c.Width()
	innerWidth := maxInt(width-6, 16) // border + padding

	header := c.renderHeader(innerWidth)
	body := c.renderBody(innerWidth)

	content := header
	if body != "" {
		content += "\n" + body
	}

	frame := c.borderStyle().Width(width - 2)
	return frame.Render(content)
}

// borderStyle picks the frame for the card's depth, tinting entering and
// exiting cards with the deep border so travel reads as depth change.
func (c *Card) borderStyle() lipgloss.Style {
	if c.Frame.State == anim.StateExiting {
		return c.theme.CardDeep
	}
	return c.theme.CardBorderStyle(c.Depth)
}

// renderHeader renders the title line with the card's depth color.
func (c *Card) renderHeader(width int) string {
	fg := styles.DepthForeground(c.Frame.Transform.Brightness)
	title := util.TruncateWidth(c.Node.DisplayTitle(), width)
	style := lipgloss.NewStyle().Foreground(fg)
	if c.Depth == 0 {
		style = style.Bold(true)
	}
	return style.Render(title)
}

// renderBody renders the message history. Depth of field: blur translates to
// progressively less detail, since terminals cannot soften glyphs.
func (c *Card) renderBody(width int) string {
	blur := c.Frame.Transform.BlurPx

	switch {
	case blur >= 1.5:
		// Deep cards show only a one-line preview
		preview := util.TruncateWidth(c.Node.Preview(), width)
		return c.theme.CardMeta.Render(preview)
	case blur >= 0.5:
		return c.renderMessages(width, 4, false)
	default:
		return c.renderMessages(width, c.MaxBodyLines, true)
	}
}

// renderMessages renders the tail of the message history within a line
// budget. Markdown rendering is reserved for the sharp (focused) card.
func (c *Card) renderMessages(width, maxLines int, markdown bool) string {
	var parts []string
	for _, msg := range c.Node.Messages {
		parts = append(parts, c.renderMessage(msg, width, markdown))
	}
	if len(parts) == 0 {
		return c.theme.CardMeta.Render("No messages yet")
	}

	lines := strings.Split(strings.Join(parts, "\n"), "\n")
	if len(lines) > maxLines {
		// Keep the tail: the newest exchange is what matters mid-stack
		lines = lines[len(lines)-maxLines:]
	}
	return strings.Join(lines, "\n")
}

// renderMessage renders one message with its role label and any tool trace.
func (c *Card) renderMessage(msg *model.Message, width int, markdown bool) string {
	var b strings.Builder

	switch msg.Role {
	case model.RoleUser:
		b.WriteString(c.theme.UserLabel.Render("> " + msg.Role.DisplayName()))
	default:
		b.WriteString(c.theme.AssistantLabel.Render("* " + msg.Role.DisplayName()))
	}
	b.WriteString("\n")

	content := msg.DisplayContent()
	if content == "" && msg.IsStreaming {
		content = "..."
	}
	if markdown && msg.Role == model.RoleAssistant && !msg.IsStreaming && c.Markdown != nil {
		b.WriteString(c.Markdown.Render(content))
	} else {
		b.WriteString(wordWrap(content, width))
	}

	for _, tc := range msg.ToolCalls {
		b.WriteString("\n")
		b.WriteString(c.renderToolCall(tc, width))
	}

	return b.String()
}

// renderToolCall renders one tool invocation line with a status marker.
func (c *Card) renderToolCall(tc model.ToolCall, width int) string {
	var style lipgloss.Style
	var marker string
	switch tc.Status {
	case model.ToolCallDone:
		style, marker = c.theme.ToolSuccess, "[ok]"
	case model.ToolCallFailed:
		style, marker = c.theme.ToolError, "[err]"
	default:
		style, marker = c.theme.ToolPending, "[...]"
	}
	line := marker + " " + tc.Name
	if tc.Input != "" {
		line += " " + util.FirstLine(tc.Input)
	}
	return style.Render(util.TruncateWidth(line, width))
}
