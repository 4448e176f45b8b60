// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package stack

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/cardstack-tui/internal/anim"
	"github.com/jeranaias/cardstack-tui/internal/ui/components"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the current screen.
func (m *Model) View() string {
	if m.mode == modePicker {
		return m.renderPicker()
	}

	main := m.renderStack()
	if m.showMinimap {
		main = lipgloss.JoinHorizontal(lipgloss.Top, main, m.renderMinimap())
	}

	rows := []string{main}
	if m.spinner.Active() {
		rows = append(rows, m.spinner.View())
	}
	if m.errText != "" {
		rows = append(rows, m.theme.ErrorMessage.Render(m.theme.ErrorTitle.Render("! ")+m.errText))
	}
	if m.showHelp {
		rows = append(rows, m.renderHelp())
	}
	rows = append(rows, m.input.View(), m.renderStatusBar())

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// =============================================================================
// STACK AREA
// =============================================================================

// renderStack draws the animation snapshot back to front. The terminal
// quantization of card travel: horizontal position becomes indentation,
// scale becomes box width, brightness the text level, and sub-threshold
// opacity skips the card.
func (m *Model) renderStack() string {
	frames := m.seq.Snapshot(time.Now())
	if len(frames) == 0 {
		return m.renderEmptyProject()
	}

	// Depth along the current focus path; off-path (exiting) cards render
	// as shallow stack cards while they travel out.
	depthOf := make(map[string]int)
	path := m.store.PathIDs(m.store.FocusID())
	for i, id := range path {
		depthOf[id] = len(path) - 1 - i
	}

	// Leftmost card position anchors indentation.
	minX := frames[0].Transform.Position.X
	for _, f := range frames {
		if f.Transform.Visible && f.Transform.Position.X < minX {
			minX = f.Transform.Position.X
		}
	}

	width := m.stackWidth()
	var rows []string
	for _, frame := range frames {
		node := m.store.Node(frame.ID)
		if node == nil {
			// Exiting card of a deleted subtree: the node is gone but the
			// departure still plays as an empty shell.
			if ghost := m.renderGhost(frame); ghost != "" {
				rows = append(rows, ghost)
			}
			continue
		}

		card := components.NewCard(node, frame, m.theme)
		card.BaseWidth = minIntS(width-8, 96)
		depth, onPath := depthOf[frame.ID]
		if !onPath {
			depth = 1
		}
		card.Depth = depth
		card.Focused = depth == 0 && frame.State == anim.StateStable
		if card.Focused {
			card.Markdown = m.markdown
		}

		box := card.View()
		if box == "" {
			continue
		}

		indent := int((frame.Transform.Position.X - minX) / 3)
		indent = clampIntS(indent, 0, maxIntS(width-card.Width()-2, 0))
		rows = append(rows, lipgloss.NewStyle().MarginLeft(indent).Render(box))
	}

	if len(rows) == 0 {
		return m.renderEmptyProject()
	}
	return m.theme.Container.Width(width).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderGhost draws the empty shell of a card whose node no longer exists.
func (m *Model) renderGhost(frame anim.CardFrame) string {
	tr := frame.Transform
	if !tr.Visible || tr.Opacity < 0.15 {
		return ""
	}
	w := clampIntS(int(float64(m.stackWidth()-8)*tr.Scale), 16, m.stackWidth()-8)
	return m.theme.CardDeep.Width(w).Render("")
}

// renderEmptyProject is shown before the first card exists.
func (m *Model) renderEmptyProject() string {
	msg := "Empty project. Type a message and press Enter to start the first card."
	return m.theme.Container.
		Width(m.stackWidth()).
		Height(maxIntS(m.height-6, 5)).
		Align(lipgloss.Center, lipgloss.Center).
		Render(m.theme.CardMeta.Render(msg))
}

// =============================================================================
// SIDE PANES
// =============================================================================

func (m *Model) renderMinimap() string {
	m.mapView.FocusID = m.store.FocusID()
	m.mapView.PathIDs = m.store.PathIDs(m.store.FocusID())
	return m.mapView.View()
}

func (m *Model) renderPicker() string {
	return lipgloss.Place(
		maxIntS(m.width, 40), maxIntS(m.height, 10),
		lipgloss.Center, lipgloss.Center,
		m.picker.View(),
	)
}

func (m *Model) renderStatusBar() string {
	m.statusBar.Status = m.status
	m.statusBar.ModelName = m.cfg.Ollama.ChatModel
	m.statusBar.ProjectName = m.store.Project().Name
	m.statusBar.Cards = m.store.Len()
	m.statusBar.MinimapManual = m.mapCtrl.Manual()
	if focus := m.store.Focus(); focus != nil {
		m.statusBar.Depth = focus.Depth
	} else {
		m.statusBar.Depth = 0
	}
	return m.statusBar.View()
}

// renderHelp renders the key binding overlay.
func (m *Model) renderHelp() string {
	var b strings.Builder
	for gi, group := range m.keyMap.FullHelp() {
		if gi > 0 {
			b.WriteString("\n")
		}
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(m.theme.ShortcutKey.Render(h.Key))
			b.WriteString(" ")
			b.WriteString(m.theme.ShortcutDesc.Render(h.Desc))
			b.WriteString("  ")
		}
	}
	return m.theme.MinimapPane.Render(b.String())
}

func clampIntS(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
