// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package minimap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jeranaias/cardstack-tui/internal/layout"
)

// fakeClock is a hand-advanced clock for idle-timeout tests.
type fakeClock struct {
	t time.Time
}

func (f *fakeClock) Now() time.Time { return f.t }

func (f *fakeClock) Advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestController() (*Controller, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	c := NewController(clock.Now)
	c.SetViewport(40, 20)
	c.SetContent(&layout.TreeMap{Width: 200, Height: 100})
	return c, clock
}

func settle(c *Controller) {
	for i := 0; i < 100; i++ {
		if !c.Step() {
			return
		}
	}
}

func TestAutoCenterOnFocus(t *testing.T) {
	c, _ := newTestController()

	c.FocusChanged(layout.Point{X: 100, Y: 50})
	settle(c)

	x, y := c.Offset()
	assert.Equal(t, 80.0, x)
	assert.Equal(t, 40.0, y)
}

func TestAutoCenterClampsAtEdges(t *testing.T) {
	c, _ := newTestController()

	// Focus near the origin: centering would need a negative offset.
	c.FocusChanged(layout.Point{X: 5, Y: 5})
	settle(c)
	x, y := c.Offset()
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 0.0, y)

	// Focus at the far corner: offset pins to the content extent.
	c.FocusChanged(layout.Point{X: 200, Y: 100})
	settle(c)
	x, y = c.Offset()
	assert.Equal(t, 160.0, x)
	assert.Equal(t, 80.0, y)
}

func TestGlideApproachesTargetGradually(t *testing.T) {
	c, _ := newTestController()

	c.FocusChanged(layout.Point{X: 100, Y: 50})
	assert.True(t, c.Step())

	x, _ := c.Offset()
	assert.Greater(t, x, 0.0)
	assert.Less(t, x, 80.0)
}

func TestManualScrollHoldsAgainstFocusChanges(t *testing.T) {
	c, _ := newTestController()

	c.ManualScroll(30, 10)
	x, y := c.Offset()
	assert.Equal(t, 30.0, x)
	assert.Equal(t, 10.0, y)
	assert.True(t, c.Manual())

	// New focus does not move a manually scrolled view.
	c.FocusChanged(layout.Point{X: 180, Y: 90})
	settle(c)
	x, y = c.Offset()
	assert.Equal(t, 30.0, x)
	assert.Equal(t, 10.0, y)
}

func TestManualScrollClamps(t *testing.T) {
	c, _ := newTestController()

	c.ManualScroll(-50, -50)
	x, y := c.Offset()
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 0.0, y)

	c.ManualScroll(1e6, 1e6)
	x, y = c.Offset()
	assert.Equal(t, 160.0, x)
	assert.Equal(t, 80.0, y)
}

func TestIdleTimeoutResumesAutoCenter(t *testing.T) {
	c, clock := newTestController()

	c.FocusChanged(layout.Point{X: 100, Y: 50})
	c.ManualScroll(5, 5)

	// Just under the timeout: still holding.
	clock.Advance(DefaultIdleResume - time.Millisecond)
	c.Step()
	assert.True(t, c.Manual())

	// Past the timeout: the hold expires and the view glides back to the
	// remembered focus.
	clock.Advance(2 * time.Millisecond)
	c.Step()
	assert.False(t, c.Manual())

	settle(c)
	x, y := c.Offset()
	assert.Equal(t, 80.0, x)
	assert.Equal(t, 40.0, y)
}

func TestConfiguredIdleResumeOverridesDefault(t *testing.T) {
	c, clock := newTestController()
	c.SetIdleResume(time.Second)
	assert.Equal(t, time.Second, c.IdleResume())

	c.FocusChanged(layout.Point{X: 100, Y: 50})
	c.ManualScroll(5, 5)

	clock.Advance(999 * time.Millisecond)
	c.Step()
	assert.True(t, c.Manual())

	clock.Advance(2 * time.Millisecond)
	c.Step()
	assert.False(t, c.Manual(), "shortened timeout should expire the hold early")

	// Non-positive values fall back to the default.
	c.SetIdleResume(0)
	assert.Equal(t, DefaultIdleResume, c.IdleResume())
}

func TestEachManualScrollRestartsHold(t *testing.T) {
	c, clock := newTestController()

	c.FocusChanged(layout.Point{X: 100, Y: 50})
	c.ManualScroll(5, 0)
	clock.Advance(2 * time.Second)
	c.ManualScroll(5, 0)
	clock.Advance(2 * time.Second)

	// Four seconds after the first scroll, but only two after the last.
	c.Step()
	assert.True(t, c.Manual())
}

func TestContentSmallerThanPanePinsToOrigin(t *testing.T) {
	c, _ := newTestController()
	c.SetContent(&layout.TreeMap{Width: 10, Height: 5})

	c.FocusChanged(layout.Point{X: 5, Y: 2})
	c.ManualScroll(100, 100)
	x, y := c.Offset()
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 0.0, y)
}

func TestShrinkingContentReclampsOffset(t *testing.T) {
	c, _ := newTestController()

	c.ManualScroll(160, 80)
	c.SetContent(&layout.TreeMap{Width: 100, Height: 50})
	x, y := c.Offset()
	assert.Equal(t, 60.0, x)
	assert.Equal(t, 30.0, y)
}

func TestStepIsQuietWhenSettled(t *testing.T) {
	c, _ := newTestController()
	c.FocusChanged(layout.Point{X: 100, Y: 50})
	settle(c)
	assert.False(t, c.Step())
}
