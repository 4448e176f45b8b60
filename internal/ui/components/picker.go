// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/jeranaias/cardstack-tui/internal/model"
	"github.com/jeranaias/cardstack-tui/internal/ui/styles"
	"github.com/jeranaias/cardstack-tui/internal/util"
)

// =============================================================================
// PROJECT PICKER
// =============================================================================

// ProjectPicker renders the project selection list shown at startup and
// from the project switcher.
type ProjectPicker struct {
	Projects []model.ProjectMeta
	Selected int
	Width    int

	theme *styles.Theme
}

// NewProjectPicker creates a picker.
func NewProjectPicker(theme *styles.Theme) *ProjectPicker {
	return &ProjectPicker{Width: 60, theme: theme}
}

// MoveUp moves the selection up, clamped at the top.
func (p *ProjectPicker) MoveUp() {
	if p.Selected > 0 {
		p.Selected--
	}
}

// MoveDown moves the selection down. One slot past the end is the
// "new project" row.
func (p *ProjectPicker) MoveDown() {
	if p.Selected < len(p.Projects) {
		p.Selected++
	}
}

// NewProjectSelected reports whether the "new project" row is selected.
func (p *ProjectPicker) NewProjectSelected() bool {
	return p.Selected >= len(p.Projects)
}

// Current returns the selected project's metadata, or nil on the
// "new project" row.
func (p *ProjectPicker) Current() *model.ProjectMeta {
	if p.NewProjectSelected() {
		return nil
	}
	return &p.Projects[p.Selected]
}

// View renders the picker box.
func (p *ProjectPicker) View() string {
	inner := maxInt(p.Width-8, 24)

	var b strings.Builder
	b.WriteString(p.theme.PickerTitle.Render("Projects"))
	b.WriteString("\n\n")

	for i, meta := range p.Projects {
		b.WriteString(p.renderRow(i, meta, inner))
		b.WriteString("\n")
	}

	newRow := "+ New project"
	if p.NewProjectSelected() {
		b.WriteString(p.theme.PickerItemSelected.Render(newRow))
	} else {
		b.WriteString(p.theme.PickerItem.Render(newRow))
	}

	return p.theme.PickerBox.Width(p.Width).Render(b.String())
}

func (p *ProjectPicker) renderRow(i int, meta model.ProjectMeta, width int) string {
	name := util.TruncateWidth(meta.Name, width-16)
	line := fmt.Sprintf("%s  %s", util.PadRight(name, width-16),
		p.theme.PickerMeta.Render(fmt.Sprintf("%d cards", meta.CardCount)))

	if i == p.Selected {
		return p.theme.PickerItemSelected.Render(line)
	}
	return p.theme.PickerItem.Render(line)
}
