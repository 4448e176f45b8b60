// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyDescendToChild(t *testing.T) {
	tr := Classify([]string{"a", "b"}, []string{"a", "b", "c"}, HintNone)
	assert.Equal(t, DescendToChild, tr.Kind)

	// Multi-level descents are still a single descend.
	tr = Classify([]string{"a"}, []string{"a", "b", "c", "d"}, HintNone)
	assert.Equal(t, DescendToChild, tr.Kind)
}

func TestClassifyAscendToParent(t *testing.T) {
	tr := Classify([]string{"a", "b", "c"}, []string{"a", "b"}, HintNone)
	assert.Equal(t, AscendToParent, tr.Kind)

	tr = Classify([]string{"a", "b", "c", "d"}, []string{"a"}, HintNone)
	assert.Equal(t, AscendToParent, tr.Kind)
}

func TestClassifySwitchSibling(t *testing.T) {
	// [A,B,C] -> [A,B,D]: C and D share parent B.
	tr := Classify([]string{"a", "b", "c"}, []string{"a", "b", "d"}, HintNone)
	assert.Equal(t, SwitchSibling, tr.Kind)

	// Two roots are siblings of the forest top.
	tr = Classify([]string{"r1"}, []string{"r2"}, HintNone)
	assert.Equal(t, SwitchSibling, tr.Kind)
}

func TestClassifyUnrelatedJump(t *testing.T) {
	// [A,B,C] -> [A,E,F]: deepest shared ancestor is A.
	tr := Classify([]string{"a", "b", "c"}, []string{"a", "e", "f"}, HintNone)
	assert.Equal(t, UnrelatedJump, tr.Kind)
	assert.True(t, tr.HasCommonAncestor)
	assert.Equal(t, "a", tr.CommonAncestorID)
}

func TestClassifyJumpPicksDeepestAncestor(t *testing.T) {
	from := []string{"a", "b", "c", "d"}
	to := []string{"a", "b", "e", "f"}
	tr := Classify(from, to, HintNone)
	assert.Equal(t, UnrelatedJump, tr.Kind)
	assert.Equal(t, "b", tr.CommonAncestorID)
}

func TestClassifyJumpAcrossRoots(t *testing.T) {
	tr := Classify([]string{"r1", "x"}, []string{"r2", "y"}, HintNone)
	assert.Equal(t, UnrelatedJump, tr.Kind)
	assert.False(t, tr.HasCommonAncestor)
	assert.Empty(t, tr.CommonAncestorID)
}

func TestClassifyRootToDeepCardIsNotSibling(t *testing.T) {
	// Parent mismatch: one focus is a root, the other is nested elsewhere.
	tr := Classify([]string{"a", "b"}, []string{"c"}, HintNone)
	assert.Equal(t, UnrelatedJump, tr.Kind)
}

func TestClassifyHintsWin(t *testing.T) {
	// A create hint overrides what would otherwise classify as a descend.
	tr := Classify([]string{"a"}, []string{"a", "b"}, HintCreate)
	assert.Equal(t, CreateChild, tr.Kind)

	// A delete hint overrides what would otherwise classify as an ascend.
	tr = Classify([]string{"a", "b"}, []string{"a"}, HintDelete)
	assert.Equal(t, Delete, tr.Kind)
}

func TestClassifyInitialFocus(t *testing.T) {
	// No previous focus: entering the first card reads as a descend.
	tr := Classify(nil, []string{"a"}, HintNone)
	assert.Equal(t, DescendToChild, tr.Kind)
}

func TestClassifySamePath(t *testing.T) {
	// Identical paths are not a strict prefix either way; last elements
	// share a parent, so this lands on sibling (a no-op move).
	tr := Classify([]string{"a", "b"}, []string{"a", "b"}, HintNone)
	assert.Equal(t, SwitchSibling, tr.Kind)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "descend", DescendToChild.String())
	assert.Equal(t, "delete", Delete.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
