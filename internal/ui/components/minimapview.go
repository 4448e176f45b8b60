// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/jeranaias/cardstack-tui/internal/layout"
	"github.com/jeranaias/cardstack-tui/internal/minimap"
	"github.com/jeranaias/cardstack-tui/internal/ui/styles"
)

// =============================================================================
// MINIMAP VIEW
// =============================================================================

// Minimap marker characters. ASCII by default so degraded terminals still
// show structure.
const (
	markNode  = "o"
	markPath  = "+"
	markFocus = "@"
)

// MinimapView renders the full-tree map through the scroll controller's
// window. Canvas coordinates map 1:1 onto terminal cells.
type MinimapView struct {
	Tree       *layout.TreeMap
	Controller *minimap.Controller

	// FocusID is the focused card; PathIDs the root-to-focus chain.
	FocusID string
	PathIDs []string

	// Width and Height are the visible window in cells.
	Width  int
	Height int

	theme *styles.Theme
}

// NewMinimapView creates a minimap renderer.
func NewMinimapView(theme *styles.Theme) *MinimapView {
	return &MinimapView{
		Width:  24,
		Height: 12,
		theme:  theme,
	}
}

// SetSize updates the visible window and informs the scroll controller.
func (m *MinimapView) SetSize(width, height int) {
	m.Width = maxInt(width, 1)
	m.Height = maxInt(height, 1)
	if m.Controller != nil {
		m.Controller.SetViewport(float64(m.Width), float64(m.Height))
	}
}

// View renders the visible window of the tree map.
func (m *MinimapView) View() string {
	if m.Tree == nil || len(m.Tree.Positions) == 0 {
		return m.theme.MinimapPane.Render(m.emptyGrid())
	}

	var offX, offY float64
	if m.Controller != nil {
		offX, offY = m.Controller.Offset()
	}

	onPath := make(map[string]bool, len(m.PathIDs))
	for _, id := range m.PathIDs {
		onPath[id] = true
	}

	// Cell grid of raw markers; styled on output so multi-byte escape
	// sequences never skew column math.
	grid := make([][]string, m.Height)
	for y := range grid {
		grid[y] = make([]string, m.Width)
		for x := range grid[y] {
			grid[y][x] = " "
		}
	}

	// Paint plain nodes first, then path, then focus, so importance wins
	// when positions collide in a coarse grid.
	m.paint(grid, offX, offY, func(id string) bool { return !onPath[id] }, markNode)
	m.paint(grid, offX, offY, func(id string) bool { return onPath[id] && id != m.FocusID }, markPath)
	m.paint(grid, offX, offY, func(id string) bool { return id == m.FocusID }, markFocus)

	var b strings.Builder
	for y, row := range grid {
		if y > 0 {
			b.WriteString("\n")
		}
		for _, cell := range row {
			b.WriteString(m.styleMark(cell))
		}
	}
	return m.theme.MinimapPane.Render(b.String())
}

// paint writes a marker into the grid for every matching node in view.
func (m *MinimapView) paint(grid [][]string, offX, offY float64, match func(string) bool, mark string) {
	for id, pos := range m.Tree.Positions {
		if !match(id) {
			continue
		}
		x := int(pos.X - offX)
		y := int(pos.Y - offY)
		if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
			continue
		}
		grid[y][x] = mark
	}
}

// styleMark applies the marker's color.
func (m *MinimapView) styleMark(cell string) string {
	switch cell {
	case markFocus:
		return m.theme.MinimapFocusMark.Render(cell)
	case markPath:
		return m.theme.MinimapPathMark.Render(cell)
	case markNode:
		return m.theme.MinimapNodeMark.Render(cell)
	default:
		return cell
	}
}

// emptyGrid renders a blank window so the pane keeps its footprint.
func (m *MinimapView) emptyGrid() string {
	row := strings.Repeat(" ", m.Width)
	rows := make([]string, m.Height)
	for i := range rows {
		rows[i] = row
	}
	return strings.Join(rows, "\n")
}
