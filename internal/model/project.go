// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for card trees and messages.
package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ERRORS
// =============================================================================

// ErrCorruptTree indicates a loaded snapshot violates the forest invariants
// (cycle, dangling reference, or inconsistent parent/child links).
// Use errors.Is(err, ErrCorruptTree) to check for this error.
var ErrCorruptTree = errors.New("corrupt card tree")

// =============================================================================
// PROJECT TYPE
// =============================================================================

// Project owns a forest of CardNodes plus the current focus card.
// CurrentCardID is empty when the project has no cards.
type Project struct {
	// Identity
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Card forest
	Nodes map[string]*CardNode `json:"nodes"`

	// RootIDs keeps root cards in creation order.
	RootIDs []string `json:"root_ids,omitempty"`

	// CurrentCardID is the focus card, analogous to a cursor in the tree.
	CurrentCardID string `json:"current_card_id,omitempty"`
}

// NewProject creates an empty project with a generated ID.
func NewProject(name string) *Project {
	now := time.Now()
	return &Project{
		ID:        "proj_" + uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
		Nodes:     make(map[string]*CardNode),
	}
}

// Node returns a card by id, or nil.
func (p *Project) Node(id string) *CardNode {
	if p.Nodes == nil {
		return nil
	}
	return p.Nodes[id]
}

// Focus returns the focus card, or nil when the project is empty.
func (p *Project) Focus() *CardNode {
	return p.Node(p.CurrentCardID)
}

// Len returns the number of cards in the forest.
func (p *Project) Len() int {
	return len(p.Nodes)
}

// Touch updates the modification timestamp.
func (p *Project) Touch() {
	p.UpdatedAt = time.Now()
}

// =============================================================================
// INVARIANT VALIDATION
// =============================================================================

// Validate checks the forest invariants on a snapshot. Persistence calls it
// after load so corruption surfaces at the boundary instead of as an
// infinite walk later.
//
// Checked invariants:
//   - every ParentID resolves, and the parent's Children contains the node
//   - every child id resolves, and the child's ParentID points back
//   - Depth equals parent depth + 1 (0 for roots)
//   - following ParentID reaches a root within len(Nodes) steps (no cycles)
//   - CurrentCardID, if set, resolves
func (p *Project) Validate() error {
	for id, node := range p.Nodes {
		if node == nil {
			return fmt.Errorf("%w: nil node %q", ErrCorruptTree, id)
		}
		if node.ID != id {
			return fmt.Errorf("%w: node keyed %q carries id %q", ErrCorruptTree, id, node.ID)
		}

		if node.ParentID == "" {
			if node.Depth != 0 {
				return fmt.Errorf("%w: root %q has depth %d", ErrCorruptTree, id, node.Depth)
			}
		} else {
			parent := p.Node(node.ParentID)
			if parent == nil {
				return fmt.Errorf("%w: node %q references missing parent %q", ErrCorruptTree, id, node.ParentID)
			}
			if parent.ChildIndex(id) < 0 {
				return fmt.Errorf("%w: parent %q does not list child %q", ErrCorruptTree, node.ParentID, id)
			}
			if node.Depth != parent.Depth+1 {
				return fmt.Errorf("%w: node %q depth %d, parent depth %d", ErrCorruptTree, id, node.Depth, parent.Depth)
			}
		}

		for _, childID := range node.Children {
			child := p.Node(childID)
			if child == nil {
				return fmt.Errorf("%w: node %q lists missing child %q", ErrCorruptTree, id, childID)
			}
			if child.ParentID != id {
				return fmt.Errorf("%w: child %q does not point back to %q", ErrCorruptTree, childID, id)
			}
		}

		// Bounded ancestor walk: a well-formed forest reaches a root in at
		// most len(Nodes) steps.
		steps := 0
		for cur := node; cur.ParentID != ""; {
			cur = p.Node(cur.ParentID)
			if cur == nil {
				break
			}
			steps++
			if steps > len(p.Nodes) {
				return fmt.Errorf("%w: cycle through node %q", ErrCorruptTree, id)
			}
		}
	}

	if p.CurrentCardID != "" && p.Node(p.CurrentCardID) == nil {
		return fmt.Errorf("%w: focus %q does not resolve", ErrCorruptTree, p.CurrentCardID)
	}

	return nil
}

// Clone creates a deep copy of the project.
func (p *Project) Clone() *Project {
	clone := &Project{
		ID:            p.ID,
		Name:          p.Name,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		CurrentCardID: p.CurrentCardID,
		Nodes:         make(map[string]*CardNode, len(p.Nodes)),
	}
	if len(p.RootIDs) > 0 {
		clone.RootIDs = append([]string(nil), p.RootIDs...)
	}
	for id, node := range p.Nodes {
		clone.Nodes[id] = node.Clone()
	}
	return clone
}

// =============================================================================
// PROJECT METADATA
// =============================================================================

// ProjectMeta holds lightweight metadata for listing projects.
type ProjectMeta struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CardCount int       `json:"card_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Meta returns metadata about the project.
func (p *Project) Meta() ProjectMeta {
	return ProjectMeta{
		ID:        p.ID,
		Name:      p.Name,
		CardCount: len(p.Nodes),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
