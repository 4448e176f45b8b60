// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "time"

// =============================================================================
// SPINNER ANIMATIONS
// =============================================================================

// SpinnerConfig holds the configuration for a spinner animation.
type SpinnerConfig struct {
	Frames []string
	FPS    int
}

// Duration returns the duration for each frame.
func (s SpinnerConfig) Duration() time.Duration {
	return time.Second / time.Duration(s.FPS)
}

// BrailleSpinner - Smooth ASCII spinner for streaming responses
var BrailleSpinner = SpinnerConfig{
	Frames: []string{"|", "/", "-", "\\", "|", "/", "-", "\\", "|", "/"},
	FPS:    12,
}

// DotsSpinner - Classic three-dot animation for background work
var DotsSpinner = SpinnerConfig{
	Frames: []string{".  ", ".. ", "...", " ..", "  .", "   "},
	FPS:    6,
}

// =============================================================================
// TRANSITION EFFECTS
// =============================================================================

// TransitionConfig defines a transition animation.
type TransitionConfig struct {
	Duration time.Duration
	Easing   EasingFunc
}

// EasingFunc is a function that maps progress (0-1) to output (0-1).
type EasingFunc func(t float64) float64

// Linear easing - constant speed
func EaseLinear(t float64) float64 {
	return t
}

// EaseInQuad - accelerating from zero
func EaseInQuad(t float64) float64 {
	return t * t
}

// EaseOutQuad - decelerating to zero
func EaseOutQuad(t float64) float64 {
	return t * (2 - t)
}

// EaseInOutQuad - acceleration until halfway, then deceleration
func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

// EaseOutCubic - decelerating to zero (smoother)
func EaseOutCubic(t float64) float64 {
	t--
	return t*t*t + 1
}

// Default transitions
var (
	TransitionFast = TransitionConfig{
		Duration: 150 * time.Millisecond,
		Easing:   EaseOutQuad,
	}
	TransitionNormal = TransitionConfig{
		Duration: 300 * time.Millisecond,
		Easing:   EaseOutCubic,
	}
	TransitionSlow = TransitionConfig{
		Duration: 500 * time.Millisecond,
		Easing:   EaseInOutQuad,
	}
)

// ReducedMotion shortens a transition for users who want less movement.
func ReducedMotion(cfg TransitionConfig) TransitionConfig {
	cfg.Duration = cfg.Duration / 3
	cfg.Easing = EaseLinear
	return cfg
}
