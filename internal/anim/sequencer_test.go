// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package anim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/cardstack-tui/internal/layout"
	"github.com/jeranaias/cardstack-tui/internal/nav"
)

var testVP = layout.Viewport{CenterX: 120, CenterY: 90, Height: 80}

var epoch = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func frameByID(frames []CardFrame, id string) (CardFrame, bool) {
	for _, f := range frames {
		if f.ID == id {
			return f, true
		}
	}
	return CardFrame{}, false
}

func TestSetStackIdleSnapshot(t *testing.T) {
	s := NewSequencer()
	s.SetStack([]string{"a", "b"}, testVP)

	assert.False(t, s.Active())

	frames := s.Snapshot(epoch)
	require.Len(t, frames, 2)

	want := layout.PathLayout(2, testVP)
	assert.Equal(t, "a", frames[0].ID)
	assert.Equal(t, want[0], frames[0].Transform)
	assert.Equal(t, "b", frames[1].ID)
	assert.Equal(t, want[1], frames[1].Transform)
	for _, f := range frames {
		assert.Equal(t, StateStable, f.State)
	}
}

func TestDescendEntersNewFocus(t *testing.T) {
	s := NewSequencer()
	s.SetStack([]string{"a"}, testVP)

	gen := s.Start(
		nav.Transition{Kind: nav.DescendToChild},
		[]string{"a"}, []string{"a", "b"}, testVP, epoch,
	)
	require.True(t, s.Active())

	// At t=0 the new focus is present but fully transparent and enlarged.
	frames := s.Snapshot(epoch)
	b, ok := frameByID(frames, "b")
	require.True(t, ok)
	assert.Equal(t, StateEntering, b.State)
	assert.Equal(t, 0.0, b.Transform.Opacity)
	assert.Greater(t, b.Transform.Scale, 1.0)

	// Midway it is neither at the start nor the target.
	mid := s.Snapshot(epoch.Add(150 * time.Millisecond))
	b, _ = frameByID(mid, "b")
	assert.Greater(t, b.Transform.Opacity, 0.0)
	assert.Less(t, b.Transform.Opacity, 1.0)

	// Past the duration the stack commits exactly to the target layout.
	done := s.Tick(gen, epoch.Add(400*time.Millisecond))
	assert.True(t, done)
	assert.False(t, s.Active())

	want := layout.PathLayout(2, testVP)
	final := s.Snapshot(epoch.Add(time.Second))
	require.Len(t, final, 2)
	a, _ := frameByID(final, "a")
	b, _ = frameByID(final, "b")
	assert.Equal(t, want[0], a.Transform)
	assert.Equal(t, want[1], b.Transform)
}

func TestAscendExitsDeepCard(t *testing.T) {
	s := NewSequencer()
	s.SetStack([]string{"a", "b"}, testVP)

	gen := s.Start(
		nav.Transition{Kind: nav.AscendToParent},
		[]string{"a", "b"}, []string{"a"}, testVP, epoch,
	)

	frames := s.Snapshot(epoch.Add(100 * time.Millisecond))
	b, ok := frameByID(frames, "b")
	require.True(t, ok)
	assert.Equal(t, StateExiting, b.State)

	s.Tick(gen, epoch.Add(time.Second))

	// The exiting card is gone after commit.
	final := s.Snapshot(epoch.Add(2 * time.Second))
	require.Len(t, final, 1)
	assert.Equal(t, "a", final[0].ID)
	assert.Equal(t, layout.FocusTransform(testVP), final[0].Transform)
}

func TestStaleTickIsDropped(t *testing.T) {
	s := NewSequencer()
	s.SetStack([]string{"a"}, testVP)

	gen1 := s.Start(nav.Transition{Kind: nav.DescendToChild},
		[]string{"a"}, []string{"a", "b"}, testVP, epoch)
	gen2 := s.Start(nav.Transition{Kind: nav.AscendToParent},
		[]string{"a", "b"}, []string{"a"}, testVP, epoch.Add(50*time.Millisecond))
	require.NotEqual(t, gen1, gen2)

	// A frame from the superseded generation must not advance anything.
	s.Tick(gen1, epoch.Add(10*time.Second))
	assert.True(t, s.Active())

	cmd := s.HandleTick(TickMsg{Generation: gen1, Time: epoch.Add(10 * time.Second)})
	assert.Nil(t, cmd)
	assert.True(t, s.Active())
}

func TestSupersedeCommitsInFlightState(t *testing.T) {
	s := NewSequencer()
	s.SetStack([]string{"a", "b"}, testVP)

	// Ascend away from b, then immediately navigate again mid-flight.
	s.Start(nav.Transition{Kind: nav.AscendToParent},
		[]string{"a", "b"}, []string{"a"}, testVP, epoch)
	gen2 := s.Start(nav.Transition{Kind: nav.SwitchSibling},
		[]string{"a"}, []string{"c"}, testVP, epoch.Add(20*time.Millisecond))

	// The superseded ascend fast-forwarded: b is gone, and the new phase
	// starts from a's committed focus position.
	frames := s.Snapshot(epoch.Add(20 * time.Millisecond))
	_, hasB := frameByID(frames, "b")
	assert.False(t, hasB)
	a, ok := frameByID(frames, "a")
	require.True(t, ok)
	assert.Equal(t, layout.FocusTransform(testVP).Position, a.Transform.Position)

	s.Tick(gen2, epoch.Add(time.Second))
	final := s.Snapshot(epoch.Add(2 * time.Second))
	require.Len(t, final, 1)
	assert.Equal(t, "c", final[0].ID)
}

func TestExitingCardReentersFresh(t *testing.T) {
	s := NewSequencer()
	s.SetStack([]string{"a", "b"}, testVP)

	// b starts exiting, then the user dives right back into it.
	s.Start(nav.Transition{Kind: nav.AscendToParent},
		[]string{"a", "b"}, []string{"a"}, testVP, epoch)
	s.Start(nav.Transition{Kind: nav.DescendToChild},
		[]string{"a"}, []string{"a", "b"}, testVP, epoch.Add(30*time.Millisecond))

	frames := s.Snapshot(epoch.Add(30 * time.Millisecond))
	b, ok := frameByID(frames, "b")
	require.True(t, ok)
	// Fresh entering card, not a resumed exit: transparent and enlarged at
	// its target position, not drifting at the exit corner.
	assert.Equal(t, StateEntering, b.State)
	assert.Equal(t, 0.0, b.Transform.Opacity)
	assert.Greater(t, b.Transform.Scale, 1.0)
	assert.Equal(t, layout.FocusTransform(testVP).Position, b.Transform.Position)
}

func TestUnrelatedJumpPlaysTwoPhases(t *testing.T) {
	s := NewSequencer()
	s.SetStack([]string{"a", "b", "c"}, testVP)

	gen := s.Start(
		nav.Transition{Kind: nav.UnrelatedJump, CommonAncestorID: "a", HasCommonAncestor: true},
		[]string{"a", "b", "c"}, []string{"a", "e", "f"}, testVP, epoch,
	)

	// Phase one: the old branch below the common ancestor exits; the new
	// branch is not on screen yet.
	frames := s.Snapshot(epoch.Add(100 * time.Millisecond))
	b, ok := frameByID(frames, "b")
	require.True(t, ok)
	assert.Equal(t, StateExiting, b.State)
	c, _ := frameByID(frames, "c")
	assert.Equal(t, StateExiting, c.State)
	_, hasE := frameByID(frames, "e")
	assert.False(t, hasE)

	// Advance into phase two: the ancestor holds while the new branch
	// enters.
	done := s.Tick(gen, epoch.Add(350*time.Millisecond))
	assert.False(t, done)
	require.True(t, s.Active())

	frames = s.Snapshot(epoch.Add(350 * time.Millisecond))
	_, hasB := frameByID(frames, "b")
	assert.False(t, hasB)
	e, ok := frameByID(frames, "e")
	require.True(t, ok)
	assert.Equal(t, StateEntering, e.State)
	f, ok := frameByID(frames, "f")
	require.True(t, ok)
	assert.Equal(t, StateEntering, f.State)

	// Both phases done: exactly the new stack, at the exact layout.
	done = s.Tick(gen, epoch.Add(time.Second))
	assert.True(t, done)

	want := layout.PathLayout(3, testVP)
	final := s.Snapshot(epoch.Add(2 * time.Second))
	require.Len(t, final, 3)
	for i, id := range []string{"a", "e", "f"} {
		fr, ok := frameByID(final, id)
		require.True(t, ok)
		assert.Equal(t, want[i], fr.Transform)
	}
}

func TestJumpWithoutCommonAncestorRebuilds(t *testing.T) {
	s := NewSequencer()
	s.SetStack([]string{"a", "b"}, testVP)

	gen := s.Start(
		nav.Transition{Kind: nav.UnrelatedJump},
		[]string{"a", "b"}, []string{"x", "y"}, testVP, epoch,
	)

	// Phase one tears everything down.
	frames := s.Snapshot(epoch.Add(100 * time.Millisecond))
	for _, id := range []string{"a", "b"} {
		fr, ok := frameByID(frames, id)
		require.True(t, ok)
		assert.Equal(t, StateExiting, fr.State)
	}

	s.Tick(gen, epoch.Add(time.Second))
	final := s.Snapshot(epoch.Add(2 * time.Second))
	require.Len(t, final, 2)
	_, hasX := frameByID(final, "x")
	assert.True(t, hasX)
}

func TestDeleteExitsUpwardEnlarging(t *testing.T) {
	s := NewSequencer()
	s.SetStack([]string{"a", "b"}, testVP)

	s.Start(nav.Transition{Kind: nav.Delete},
		[]string{"a", "b"}, []string{"a"}, testVP, epoch)

	start := s.Snapshot(epoch)
	b, ok := frameByID(start, "b")
	require.True(t, ok)
	assert.Equal(t, StateExiting, b.State)

	// Near the end the deleted card has risen, grown, and faded.
	late := s.Snapshot(epoch.Add(299 * time.Millisecond))
	bLate, _ := frameByID(late, "b")
	assert.Less(t, bLate.Transform.Position.Y, b.Transform.Position.Y)
	assert.Greater(t, bLate.Transform.Scale, b.Transform.Scale)
	assert.Less(t, bLate.Transform.Opacity, b.Transform.Opacity)
}

func TestGenerationAdvancesPerTransition(t *testing.T) {
	s := NewSequencer()
	s.SetStack([]string{"a"}, testVP)

	g1 := s.Start(nav.Transition{Kind: nav.DescendToChild},
		[]string{"a"}, []string{"a", "b"}, testVP, epoch)
	g2 := s.Start(nav.Transition{Kind: nav.AscendToParent},
		[]string{"a", "b"}, []string{"a"}, testVP, epoch)
	assert.Equal(t, g1+1, g2)
	assert.Equal(t, g2, s.Generation())
}

func TestMultiEnterStaggersDelays(t *testing.T) {
	s := NewSequencer()
	s.SetStack([]string{"a"}, testVP)

	gen := s.Start(nav.Transition{Kind: nav.DescendToChild},
		[]string{"a"}, []string{"a", "b", "c"}, testVP, epoch)

	// Shortly in, the first entering card has started fading in while the
	// second is still pinned at its staggered start.
	frames := s.Snapshot(epoch.Add(20 * time.Millisecond))
	b, ok := frameByID(frames, "b")
	require.True(t, ok)
	c, ok := frameByID(frames, "c")
	require.True(t, ok)
	assert.Greater(t, b.Transform.Opacity, 0.0)
	assert.Equal(t, 0.0, c.Transform.Opacity, "staggered card has not started yet")

	// The phase runs until the last staggered card finishes its travel.
	done := s.Tick(gen, epoch.Add(320*time.Millisecond))
	assert.False(t, done, "last card is still travelling")
	done = s.Tick(gen, epoch.Add(340*time.Millisecond))
	assert.True(t, done)

	want := layout.PathLayout(3, testVP)
	final := s.Snapshot(epoch.Add(time.Second))
	cFinal, _ := frameByID(final, "c")
	assert.Equal(t, want[2], cFinal.Transform)
}

func TestReducedMotionShortensTransitions(t *testing.T) {
	s := NewSequencer()
	s.SetStack([]string{"a"}, testVP)
	s.SetReducedMotion(true)
	assert.True(t, s.ReducedMotion())

	gen := s.Start(nav.Transition{Kind: nav.DescendToChild},
		[]string{"a"}, []string{"a", "b"}, testVP, epoch)

	// A third of the usual duration is enough to settle.
	done := s.Tick(gen, epoch.Add(150*time.Millisecond))
	assert.True(t, done)

	// Switching back restores the full-length timing.
	s.SetReducedMotion(false)
	gen = s.Start(nav.Transition{Kind: nav.AscendToParent},
		[]string{"a", "b"}, []string{"a"}, testVP, epoch)
	done = s.Tick(gen, epoch.Add(150*time.Millisecond))
	assert.False(t, done)
}
