// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package nav classifies focus changes in the card tree.
//
// Given the root paths of the previous and new focus cards, Classify
// decides which of the fixed transition kinds the change is, which in turn
// selects the animation treatment. Explicit user-intent hints always win
// over structural inference, and structural checks prefer the most specific
// relation (direct ancestor/descendant) before falling back to sibling or
// unrelated.
package nav

// =============================================================================
// TRANSITION KINDS
// =============================================================================

// Kind is the classified transition type between two focus cards.
type Kind int

const (
	// DescendToChild: the old focus is a strict ancestor of the new one.
	DescendToChild Kind = iota
	// AscendToParent: the new focus is a strict ancestor of the old one.
	AscendToParent
	// SwitchSibling: both cards share the same parent.
	SwitchSibling
	// UnrelatedJump: any other pair, routed through the common ancestor.
	UnrelatedJump
	// CreateChild: an explicit create action produced the new focus.
	CreateChild
	// Delete: an explicit delete action moved focus to a surviving ancestor.
	Delete
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case DescendToChild:
		return "descend"
	case AscendToParent:
		return "ascend"
	case SwitchSibling:
		return "sibling"
	case UnrelatedJump:
		return "jump"
	case CreateChild:
		return "create"
	case Delete:
		return "delete"
	default:
		return "unknown"
	}
}

// Hint is the optional user-intent attached to the action that triggered
// the focus change.
type Hint int

const (
	HintNone Hint = iota
	HintCreate
	HintDelete
)

// =============================================================================
// TRANSITION
// =============================================================================

// Transition is the classification result.
type Transition struct {
	Kind Kind

	// CommonAncestorID is set for UnrelatedJump when the two paths share an
	// ancestor; the animation routes through it. When HasCommonAncestor is
	// false the jump degrades to a full teardown and rebuild.
	CommonAncestorID  string
	HasCommonAncestor bool
}

// Classify determines the transition between the previous and new focus.
// Both paths are ordered root first, focus last. Either may be empty (no
// previous focus, or focus cleared by a delete).
func Classify(oldPath, newPath []string, hint Hint) Transition {
	// Explicit hints win over structural inference.
	if hint == HintDelete {
		return Transition{Kind: Delete}
	}
	if hint == HintCreate {
		return Transition{Kind: CreateChild}
	}

	if isStrictPrefix(oldPath, newPath) {
		return Transition{Kind: DescendToChild}
	}
	if isStrictPrefix(newPath, oldPath) {
		return Transition{Kind: AscendToParent}
	}

	if len(oldPath) > 0 && len(newPath) > 0 && sameParent(oldPath, newPath) {
		return Transition{Kind: SwitchSibling}
	}

	ancestor, ok := deepestCommonAncestor(oldPath, newPath)
	return Transition{
		Kind:              UnrelatedJump,
		CommonAncestorID:  ancestor,
		HasCommonAncestor: ok,
	}
}

// isStrictPrefix reports whether a is a strict prefix of b.
func isStrictPrefix(a, b []string) bool {
	if len(a) >= len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// sameParent reports whether the last elements of both paths share a
// parent. Two roots count as siblings of the (empty) forest top.
func sameParent(oldPath, newPath []string) bool {
	oldParent := parentOf(oldPath)
	newParent := parentOf(newPath)
	return oldParent == newParent
}

// parentOf returns the second-to-last path element, or empty for roots.
func parentOf(path []string) string {
	if len(path) < 2 {
		return ""
	}
	return path[len(path)-2]
}

// deepestCommonAncestor scans the new path from the end for the first id
// also present in the old path.
func deepestCommonAncestor(oldPath, newPath []string) (string, bool) {
	seen := make(map[string]bool, len(oldPath))
	for _, id := range oldPath {
		seen[id] = true
	}
	for i := len(newPath) - 1; i >= 0; i-- {
		if seen[newPath[i]] {
			return newPath[i], true
		}
	}
	return "", false
}
