// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package stack

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/cardstack-tui/internal/anim"
	"github.com/jeranaias/cardstack-tui/internal/model"
	"github.com/jeranaias/cardstack-tui/internal/nav"
	"github.com/jeranaias/cardstack-tui/internal/ollama"
	"github.com/jeranaias/cardstack-tui/internal/ui/components"
)

// =============================================================================
// FOCUS MOVEMENT
// =============================================================================

// moveFocus shifts focus to targetID and animates the classified transition.
// Unknown targets are a no-op.
func (m *Model) moveFocus(targetID string, hint nav.Hint) tea.Cmd {
	oldPath := m.store.PathIDs(m.store.FocusID())
	if !m.store.SetFocus(targetID) {
		return nil
	}
	return m.animateTo(oldPath, m.store.PathIDs(targetID), hint)
}

// animateTo hands a classified focus change to the sequencer and aims the
// minimap at the new focus. With animation disabled the stack snaps.
func (m *Model) animateTo(oldPath, newPath []string, hint nav.Hint) tea.Cmd {
	m.session.RecordActivity()

	var cmd tea.Cmd
	vp := m.stackViewport()
	if m.cfg.Animation.Enabled {
		tr := nav.Classify(oldPath, newPath, hint)
		gen := m.seq.Start(tr, oldPath, newPath, vp, time.Now())
		m.status = components.StatusAnimating
		cmd = anim.TickCmd(gen)
	} else {
		m.seq.SetStack(newPath, vp)
	}

	if p, ok := m.treeMap.Position(m.store.FocusID()); ok {
		m.mapCtrl.FocusChanged(p)
		cmd = tea.Batch(cmd, mapTickCmd())
	}
	return cmd
}

// =============================================================================
// TREE NAVIGATION
// =============================================================================

// ascend moves focus to the parent card.
func (m *Model) ascend() tea.Cmd {
	focus := m.store.Focus()
	if focus == nil || focus.ParentID == "" {
		return nil
	}
	return m.moveFocus(focus.ParentID, nav.HintNone)
}

// descend moves focus to the newest child of the focus card.
func (m *Model) descend() tea.Cmd {
	focus := m.store.Focus()
	if focus == nil || len(focus.Children) == 0 {
		return nil
	}
	return m.moveFocus(focus.Children[len(focus.Children)-1], nav.HintNone)
}

// switchSibling moves focus along the parent's child list (or the root list
// for root cards). delta is +1 or -1; movement clamps at the ends.
func (m *Model) switchSibling(delta int) tea.Cmd {
	focus := m.store.Focus()
	if focus == nil {
		return nil
	}

	siblings := m.store.Project().RootIDs
	if focus.ParentID != "" {
		parent := m.store.Node(focus.ParentID)
		if parent == nil {
			return nil
		}
		siblings = parent.Children
	}

	idx := -1
	for i, id := range siblings {
		if id == focus.ID {
			idx = i
			break
		}
	}
	next := idx + delta
	if idx < 0 || next < 0 || next >= len(siblings) {
		return nil
	}
	return m.moveFocus(siblings[next], nav.HintNone)
}

// =============================================================================
// TREE MUTATION
// =============================================================================

// branchHere creates an empty child under the focus card and focuses it.
func (m *Model) branchHere() tea.Cmd {
	oldPath := m.store.PathIDs(m.store.FocusID())
	id := m.store.CreateNode(nil, m.store.FocusID())
	if id == "" {
		return nil
	}

	m.session.MarkDirty()
	m.refreshTreeMap()
	return m.animateTo(oldPath, m.store.PathIDs(id), nav.HintCreate)
}

// deleteFocus removes the focus card's subtree. Focus lands on the nearest
// surviving ancestor; deleting the last card leaves an empty project.
func (m *Model) deleteFocus() tea.Cmd {
	focusID := m.store.FocusID()
	if focusID == "" {
		return nil
	}
	if m.streamCardID != "" {
		// An in-flight response may target the doomed subtree
		m.cancelStream()
	}

	oldPath := m.store.PathIDs(focusID)
	if removed := m.store.DeleteSubtree(focusID); removed == nil {
		return nil
	}

	m.session.MarkDirty()
	m.refreshTreeMap()
	return m.animateTo(oldPath, m.store.PathIDs(m.store.FocusID()), nav.HintDelete)
}

// =============================================================================
// CONTEXT ASSEMBLY
// =============================================================================

// contextMessages flattens the root-to-focus chain into the chat request:
// ancestor cards supply the shared history, the focus card the live
// exchange. Corrupt paths degrade to the focus card alone.
func (m *Model) contextMessages() []ollama.Message {
	msgs := []ollama.Message{ollama.NewSystemMessage(m.cfg.Prompts.System)}

	path, err := m.store.PathToRoot(m.store.FocusID())
	if err != nil || path == nil {
		if focus := m.store.Focus(); focus != nil {
			path = []*model.CardNode{focus}
		}
	}

	for _, card := range path {
		for _, msg := range card.Messages {
			switch msg.Role {
			case model.RoleUser:
				msgs = append(msgs, ollama.NewUserMessage(msg.DisplayContent()))
			case model.RoleAssistant:
				msgs = append(msgs, ollama.NewAssistantMessage(msg.DisplayContent()))
			}
		}
	}
	return msgs
}
