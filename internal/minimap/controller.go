// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package minimap keeps the tree overview scrolled to the right place.
//
// The controller auto-centers the focused card in the minimap pane. A
// manual scroll takes over immediately and holds; once the user has been
// idle for the resume timeout, auto-centering glides back in. The clock is
// injected so the idle timeout is testable without sleeping.
package minimap

import (
	"time"

	"github.com/jeranaias/cardstack-tui/internal/layout"
)

// =============================================================================
// CONSTANTS
// =============================================================================

// DefaultIdleResume is how long after the last manual scroll
// auto-centering takes back over, unless configured otherwise.
const DefaultIdleResume = 3 * time.Second

// stepFactor is the per-frame fraction of the remaining distance covered
// while gliding toward the target offset.
const stepFactor = 0.3

// snapDistance is the threshold below which the glide snaps to its target.
const snapDistance = 0.5

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller tracks the minimap's scroll offset.
type Controller struct {
	now func() time.Time

	// Pane and content extents, in minimap cells.
	viewW, viewH float64
	mapW, mapH   float64

	// Current and target offsets of the pane's top-left corner.
	offsetX, offsetY float64
	targetX, targetY float64

	// Last known focus position, for re-centering after a manual hold.
	focus    layout.Point
	hasFocus bool

	manual     bool
	lastManual time.Time
	idleResume time.Duration
}

// NewController returns a controller using the given clock. A nil clock
// falls back to time.Now.
func NewController(clock func() time.Time) *Controller {
	if clock == nil {
		clock = time.Now
	}
	return &Controller{now: clock, idleResume: DefaultIdleResume}
}

// SetIdleResume overrides the manual-hold expiry. Non-positive durations
// fall back to the default.
func (c *Controller) SetIdleResume(d time.Duration) {
	if d <= 0 {
		d = DefaultIdleResume
	}
	c.idleResume = d
}

// IdleResume returns the manual-hold expiry in effect.
func (c *Controller) IdleResume() time.Duration { return c.idleResume }

// SetViewport records the minimap pane size. The current offset is
// re-clamped so a shrinking pane never scrolls past the content edge.
func (c *Controller) SetViewport(w, h float64) {
	c.viewW, c.viewH = w, h
	c.reclamp()
}

// SetContent records the treemap extents the pane scrolls over.
func (c *Controller) SetContent(tm *layout.TreeMap) {
	if tm == nil {
		c.mapW, c.mapH = 0, 0
	} else {
		c.mapW, c.mapH = tm.Width, tm.Height
	}
	c.reclamp()
}

// reclamp re-fits both the offset and its target after an extent change,
// then re-aims at the focus when auto-centering is live.
func (c *Controller) reclamp() {
	c.offsetX, c.offsetY = c.clamp(c.offsetX, c.offsetY)
	c.targetX, c.targetY = c.clamp(c.targetX, c.targetY)
	if !c.manual {
		c.retarget()
	}
}

// FocusChanged points auto-centering at the focused card's position.
// During a manual hold the focus is remembered but the view stays put.
func (c *Controller) FocusChanged(p layout.Point) {
	c.focus = p
	c.hasFocus = true
	if !c.manual {
		c.retarget()
	}
}

// ManualScroll shifts the view by the given delta and starts a manual
// hold. The offset is clamped to the content extents.
func (c *Controller) ManualScroll(dx, dy float64) {
	c.offsetX, c.offsetY = c.clamp(c.offsetX+dx, c.offsetY+dy)
	c.targetX, c.targetY = c.offsetX, c.offsetY
	c.manual = true
	c.lastManual = c.now()
}

// Manual reports whether a manual hold is in effect.
func (c *Controller) Manual() bool { return c.manual }

// Offset returns the current scroll offset.
func (c *Controller) Offset() (x, y float64) {
	return c.offsetX, c.offsetY
}

// Step advances the controller one frame: it expires the manual hold when
// the idle timeout has passed, then glides the offset toward its target.
// Returns true if the offset changed and the minimap needs a redraw.
func (c *Controller) Step() bool {
	if c.manual && c.now().Sub(c.lastManual) >= c.idleResume {
		c.manual = false
		c.retarget()
	}

	dx := c.targetX - c.offsetX
	dy := c.targetY - c.offsetY
	if abs(dx) < snapDistance && abs(dy) < snapDistance {
		if dx == 0 && dy == 0 {
			return false
		}
		c.offsetX, c.offsetY = c.targetX, c.targetY
		return true
	}

	c.offsetX += dx * stepFactor
	c.offsetY += dy * stepFactor
	return true
}

// retarget aims the view so the focus sits at the pane center.
func (c *Controller) retarget() {
	if !c.hasFocus {
		return
	}
	c.targetX, c.targetY = c.clamp(c.focus.X-c.viewW/2, c.focus.Y-c.viewH/2)
}

// clamp keeps an offset inside the scrollable range. Content smaller than
// the pane pins to zero.
func (c *Controller) clamp(x, y float64) (float64, float64) {
	maxX := c.mapW - c.viewW
	maxY := c.mapH - c.viewH
	if maxX < 0 {
		maxX = 0
	}
	if maxY < 0 {
		maxY = 0
	}
	if x < 0 {
		x = 0
	}
	if x > maxX {
		x = maxX
	}
	if y < 0 {
		y = 0
	}
	if y > maxY {
		y = maxY
	}
	return x, y
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
