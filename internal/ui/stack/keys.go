// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package stack

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings for the stacked view.
type KeyMap struct {
	// Tree navigation
	Ascend      key.Binding
	Descend     key.Binding
	PrevSibling key.Binding
	NextSibling key.Binding

	// Tree mutation
	NewChild key.Binding
	Delete   key.Binding

	// Composer
	Submit key.Binding
	Cancel key.Binding

	// Minimap
	ToggleMinimap key.Binding
	MapUp         key.Binding
	MapDown       key.Binding
	MapLeft       key.Binding
	MapRight      key.Binding

	// Application
	Projects key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default key bindings for the stacked view.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Ascend: key.NewBinding(
			key.WithKeys("esc", "left"),
			key.WithHelp("Esc/left", "to parent"),
		),
		Descend: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("right", "to child"),
		),
		PrevSibling: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("up", "previous branch"),
		),
		NextSibling: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("down", "next branch"),
		),
		NewChild: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("C-n", "branch here"),
		),
		Delete: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("C-d", "delete card"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "send"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("C-x", "cancel streaming"),
		),
		ToggleMinimap: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("C-t", "toggle minimap"),
		),
		MapUp: key.NewBinding(
			key.WithKeys("shift+up"),
			key.WithHelp("S-up", "scroll map up"),
		),
		MapDown: key.NewBinding(
			key.WithKeys("shift+down"),
			key.WithHelp("S-down", "scroll map down"),
		),
		MapLeft: key.NewBinding(
			key.WithKeys("shift+left"),
			key.WithHelp("S-left", "scroll map left"),
		),
		MapRight: key.NewBinding(
			key.WithKeys("shift+right"),
			key.WithHelp("S-right", "scroll map right"),
		),
		Projects: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("C-p", "projects"),
		),
		Help: key.NewBinding(
			key.WithKeys("ctrl+_"),
			key.WithHelp("C-/", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("C-c/C-q", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the status bar help line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.NewChild, k.Delete, k.Ascend, k.Quit}
}

// FullHelp returns all bindings grouped for the help overlay.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Ascend, k.Descend, k.PrevSibling, k.NextSibling},
		{k.NewChild, k.Delete, k.Submit, k.Cancel},
		{k.ToggleMinimap, k.MapUp, k.MapDown, k.MapLeft, k.MapRight},
		{k.Projects, k.Help, k.Quit},
	}
}
