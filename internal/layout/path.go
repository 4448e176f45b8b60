// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package layout computes card geometry for the two tree views.
package layout

import "math"

// =============================================================================
// PATH LAYOUT CONSTANTS
// =============================================================================

const (
	// MaxStackDepth is the deepest ancestor still given real geometry.
	// Anything further back collapses instead of extrapolating.
	MaxStackDepth = 24

	// ArcStepDegrees is the angular step between consecutive depth levels
	// on the receding arc.
	ArcStepDegrees = 5.0

	// ScaleStep is the per-depth linear scale decay, floored at 0.
	ScaleStep = 0.04

	// BlurStep is the per-depth blur increase in pixels.
	BlurStep = 0.5

	// BrightnessStep is the per-depth brightness decay.
	BrightnessStep = 0.05

	// BrightnessFloor is the minimum brightness for deep ancestors.
	BrightnessFloor = 0.6

	// BackOpacity is the opacity of every card behind the focus.
	BackOpacity = 0.9

	// minUsableHeight guards against degenerate viewports; below this the
	// whole stack collapses rather than rendering nonsense geometry.
	minUsableHeight = 1.0
)

// =============================================================================
// TYPES
// =============================================================================

// Point is a 2D coordinate on the layout canvas.
type Point struct {
	X float64
	Y float64
}

// Viewport describes the drawable area for the stacked view.
type Viewport struct {
	// CenterX, CenterY anchor the focus card.
	CenterX float64
	CenterY float64

	// Height is the available height the arc radius derives from.
	Height float64
}

// Transform is the visual placement of one card in the stacked view.
type Transform struct {
	Position   Point
	AngleDeg   float64
	Scale      float64
	BlurPx     float64
	Brightness float64
	Opacity    float64

	// Visible is false for collapsed transforms (beyond MaxStackDepth or a
	// degenerate viewport).
	Visible bool
}

// Collapsed is the invisible transform assigned past the depth threshold.
func Collapsed() Transform {
	return Transform{Scale: 0, Opacity: 0, Visible: false}
}

// =============================================================================
// PATH LAYOUT
// =============================================================================

// PathLayout assigns a transform to each node of a root-first path. The
// returned slice is aligned with the input: transforms[i] belongs to
// path[i], so the focus (last element) sits at stack distance 0 and the
// root at distance len-1.
//
// Cards recede along an arc whose radius is half the available height, one
// ArcStepDegrees per level, shrinking, blurring and dimming linearly with
// distance.
func PathLayout(pathLen int, vp Viewport) []Transform {
	transforms := make([]Transform, pathLen)
	if pathLen == 0 {
		return transforms
	}

	if vp.Height < minUsableHeight {
		for i := range transforms {
			transforms[i] = Collapsed()
		}
		return transforms
	}

	radius := vp.Height / 2

	for i := 0; i < pathLen; i++ {
		depth := pathLen - 1 - i // distance from focus
		if depth > MaxStackDepth {
			transforms[i] = Collapsed()
			continue
		}
		transforms[i] = stackTransform(depth, radius, vp)
	}

	return transforms
}

// FocusTransform returns the transform of the focus card alone; convenience
// for callers that animate a single entering node.
func FocusTransform(vp Viewport) Transform {
	if vp.Height < minUsableHeight {
		return Collapsed()
	}
	return stackTransform(0, vp.Height/2, vp)
}

// stackTransform computes the transform for one stack distance.
func stackTransform(depth int, radius float64, vp Viewport) Transform {
	angle := float64(depth) * ArcStepDegrees
	rad := angle * math.Pi / 180

	// The arc pivots behind the focus card: distance 0 sits exactly at the
	// viewport center and deeper cards climb the circle up and slightly
	// aside.
	x := vp.CenterX - radius*math.Sin(rad)
	y := vp.CenterY - radius*(1-math.Cos(rad))

	scale := 1.0 - float64(depth)*ScaleStep
	if scale < 0 {
		scale = 0
	}

	brightness := 1.0 - float64(depth)*BrightnessStep
	if brightness < BrightnessFloor {
		brightness = BrightnessFloor
	}

	opacity := 1.0
	if depth > 0 {
		opacity = BackOpacity
	}

	return Transform{
		Position:   Point{X: x, Y: y},
		AngleDeg:   angle,
		Scale:      scale,
		BlurPx:     float64(depth) * BlurStep,
		Brightness: brightness,
		Opacity:    opacity,
		Visible:    true,
	}
}

// Lerp linearly interpolates between two transforms at progress t in [0,1].
// Collapsed endpoints interpolate scale/opacity toward zero but keep the
// visible endpoint's position so exits have somewhere to go.
func Lerp(from, to Transform, t float64) Transform {
	if t <= 0 {
		return from
	}
	if t >= 1 {
		return to
	}

	fromPos, toPos := from.Position, to.Position
	if !from.Visible && to.Visible {
		fromPos = toPos
	}
	if !to.Visible && from.Visible {
		toPos = fromPos
	}

	return Transform{
		Position: Point{
			X: fromPos.X + (toPos.X-fromPos.X)*t,
			Y: fromPos.Y + (toPos.Y-fromPos.Y)*t,
		},
		AngleDeg:   from.AngleDeg + (to.AngleDeg-from.AngleDeg)*t,
		Scale:      from.Scale + (to.Scale-from.Scale)*t,
		BlurPx:     from.BlurPx + (to.BlurPx-from.BlurPx)*t,
		Brightness: from.Brightness + (to.Brightness-from.Brightness)*t,
		Opacity:    from.Opacity + (to.Opacity-from.Opacity)*t,
		Visible:    from.Visible || to.Visible,
	}
}
