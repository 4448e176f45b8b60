// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tree implements the card tree store.
package tree

import (
	"fmt"
	"log"

	"github.com/jeranaias/cardstack-tui/internal/model"
)

// =============================================================================
// STORE
// =============================================================================

// Store owns the canonical card forest for one project. It is not safe for
// concurrent use; the application mutates it from the single event loop.
type Store struct {
	project *model.Project

	// warnf logs expected no-op conditions (stale ids). Injectable so tests
	// can assert on it. Defaults to log.Printf.
	warnf func(format string, args ...any)
}

// NewStore wraps a project. The project must already satisfy the forest
// invariants (persistence validates on load).
func NewStore(project *model.Project) *Store {
	return &Store{
		project: project,
		warnf:   log.Printf,
	}
}

// SetWarnFunc replaces the warning logger.
func (s *Store) SetWarnFunc(fn func(format string, args ...any)) {
	if fn != nil {
		s.warnf = fn
	}
}

// Project returns the underlying project.
func (s *Store) Project() *model.Project {
	return s.project
}

// Node returns a card by id, or nil.
func (s *Store) Node(id string) *model.CardNode {
	return s.project.Node(id)
}

// Focus returns the focus card, or nil when the project is empty.
func (s *Store) Focus() *model.CardNode {
	return s.project.Focus()
}

// FocusID returns the focus card id, or empty.
func (s *Store) FocusID() string {
	return s.project.CurrentCardID
}

// SetFocus moves focus to an existing card. Unknown ids are a no-op.
func (s *Store) SetFocus(id string) bool {
	if s.project.Node(id) == nil {
		s.warnf("tree: set focus on unknown card %q", id)
		return false
	}
	s.project.CurrentCardID = id
	s.project.Touch()
	return true
}

// Len returns the number of cards.
func (s *Store) Len() int {
	return s.project.Len()
}

// =============================================================================
// CREATE
// =============================================================================

// CreateNode allocates a card at parent.Depth+1 (depth 0 if parentID is
// empty), appends it to the parent's children, and makes it the new focus.
// Returns the new card id, or empty string when parentID does not resolve —
// callers are expected to pre-validate, so the failure is a logged no-op.
func (s *Store) CreateNode(initial []*model.Message, parentID string) string {
	depth := 0
	var parent *model.CardNode
	if parentID != "" {
		parent = s.project.Node(parentID)
		if parent == nil {
			s.warnf("tree: create under unknown parent %q", parentID)
			return ""
		}
		depth = parent.Depth + 1
	}

	node := model.NewCardNode(parentID, depth)
	for _, msg := range initial {
		node.AppendMessage(msg)
	}

	s.project.Nodes[node.ID] = node
	if parent != nil {
		parent.AddChild(node.ID)
	} else {
		s.project.RootIDs = append(s.project.RootIDs, node.ID)
	}

	s.project.CurrentCardID = node.ID
	s.project.Touch()
	return node.ID
}

// =============================================================================
// MESSAGE MUTATION
// =============================================================================

// AppendMessage adds a message to a card. Idempotent by message id; unknown
// card ids are a logged no-op.
func (s *Store) AppendMessage(nodeID string, msg *model.Message) {
	node := s.project.Node(nodeID)
	if node == nil {
		s.warnf("tree: append to unknown card %q", nodeID)
		return
	}
	if node.AppendMessage(msg) {
		s.project.Touch()
	}
}

// PatchMessage merges a partial update into a card's message, used for
// incremental streaming accumulation. Unknown card or message ids are a
// logged no-op.
func (s *Store) PatchMessage(nodeID, msgID string, patch model.MessagePatch) {
	node := s.project.Node(nodeID)
	if node == nil {
		s.warnf("tree: patch on unknown card %q", nodeID)
		return
	}
	if !node.PatchMessage(msgID, patch) {
		s.warnf("tree: patch on unknown message %q in card %q", msgID, nodeID)
		return
	}
	s.project.Touch()
}

// =============================================================================
// DELETE
// =============================================================================

// DeleteSubtree removes a card and its entire descendant subtree, severs the
// parent's reference, and relocates focus to the nearest surviving ancestor
// if focus fell inside the deleted set. Returns the deleted ids (depth-first
// order), or nil when nodeID does not resolve.
func (s *Store) DeleteSubtree(nodeID string) []string {
	node := s.project.Node(nodeID)
	if node == nil {
		s.warnf("tree: delete unknown card %q", nodeID)
		return nil
	}

	// Full descendant set via depth-first walk.
	doomed := s.collectSubtree(nodeID)
	doomedSet := make(map[string]bool, len(doomed))
	for _, id := range doomed {
		doomedSet[id] = true
	}

	// Relocate focus before removal so the surviving ancestor is resolvable.
	if doomedSet[s.project.CurrentCardID] {
		s.project.CurrentCardID = s.nearestSurvivingAncestor(s.project.CurrentCardID, doomedSet)
	}

	// Sever the parent's reference (or the root list entry).
	if node.ParentID != "" {
		if parent := s.project.Node(node.ParentID); parent != nil {
			parent.RemoveChild(nodeID)
		}
	} else {
		for i, id := range s.project.RootIDs {
			if id == nodeID {
				s.project.RootIDs = append(s.project.RootIDs[:i], s.project.RootIDs[i+1:]...)
				break
			}
		}
	}

	for _, id := range doomed {
		delete(s.project.Nodes, id)
	}

	s.project.Touch()
	return doomed
}

// collectSubtree returns nodeID plus all descendants, depth-first.
func (s *Store) collectSubtree(nodeID string) []string {
	var out []string
	stack := []string{nodeID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := s.project.Node(id)
		if node == nil {
			continue
		}
		out = append(out, id)
		// Push in reverse so children pop in creation order.
		for i := len(node.Children) - 1; i >= 0; i-- {
			stack = append(stack, node.Children[i])
		}
	}
	return out
}

// nearestSurvivingAncestor walks parent links from id until it leaves the
// doomed set. Returns empty when the entire path is deleted.
func (s *Store) nearestSurvivingAncestor(id string, doomed map[string]bool) string {
	limit := s.project.Len()
	cur := s.project.Node(id)
	for steps := 0; cur != nil && steps <= limit; steps++ {
		if !doomed[cur.ID] {
			return cur.ID
		}
		if cur.ParentID == "" {
			return ""
		}
		cur = s.project.Node(cur.ParentID)
	}
	return ""
}

// =============================================================================
// PATH QUERY
// =============================================================================

// PathToRoot walks parent links from nodeID and returns the chain root
// first, focus last. Unknown ids return a nil path (logged, not an error);
// a walk exceeding the total node count aborts with ErrCorruptTree rather
// than looping forever.
func (s *Store) PathToRoot(nodeID string) ([]*model.CardNode, error) {
	node := s.project.Node(nodeID)
	if node == nil {
		s.warnf("tree: path query for unknown card %q", nodeID)
		return nil, nil
	}

	limit := s.project.Len()
	var reversed []*model.CardNode
	for cur := node; cur != nil; {
		reversed = append(reversed, cur)
		if len(reversed) > limit {
			return nil, fmt.Errorf("%w: ancestor walk from %q exceeded %d nodes", model.ErrCorruptTree, nodeID, limit)
		}
		if cur.ParentID == "" {
			break
		}
		next := s.project.Node(cur.ParentID)
		if next == nil {
			// Dangling parent reference: report rather than silently truncate.
			return nil, fmt.Errorf("%w: node %q references missing parent %q", model.ErrCorruptTree, cur.ID, cur.ParentID)
		}
		cur = next
	}

	// Reverse to root-first order.
	path := make([]*model.CardNode, len(reversed))
	for i, n := range reversed {
		path[len(reversed)-1-i] = n
	}
	return path, nil
}

// PathIDs is PathToRoot reduced to ids, the shape the navigation classifier
// consumes. Corruption degrades to an empty path here; the caller treats it
// like an unknown node.
func (s *Store) PathIDs(nodeID string) []string {
	path, err := s.PathToRoot(nodeID)
	if err != nil {
		s.warnf("tree: %v", err)
		return nil
	}
	ids := make([]string, len(path))
	for i, n := range path {
		ids[i] = n.ID
	}
	return ids
}
