// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"testing"
	"time"
)

// =============================================================================
// SPINNER CONFIG TESTS
// =============================================================================

func TestSpinnerConfigs(t *testing.T) {
	spinners := []struct {
		name   string
		config SpinnerConfig
	}{
		{"BrailleSpinner", BrailleSpinner},
		{"DotsSpinner", DotsSpinner},
	}

	for _, s := range spinners {
		t.Run(s.name, func(t *testing.T) {
			if len(s.config.Frames) == 0 {
				t.Errorf("%s should have frames", s.name)
			}
			if s.config.FPS <= 0 {
				t.Errorf("%s FPS should be positive", s.name)
			}
		})
	}
}

func TestSpinnerConfigDuration(t *testing.T) {
	tests := []struct {
		name string
		fps  int
		want time.Duration
	}{
		{"12 FPS", 12, time.Second / 12},
		{"6 FPS", 6, time.Second / 6},
		{"30 FPS", 30, time.Second / 30},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			config := SpinnerConfig{FPS: tc.fps}
			got := config.Duration()
			if got != tc.want {
				t.Errorf("Duration() = %v, want %v", got, tc.want)
			}
		})
	}
}

// =============================================================================
// EASING FUNCTION TESTS
// =============================================================================

func TestEaseLinear(t *testing.T) {
	tests := []struct {
		t    float64
		want float64
	}{
		{0.0, 0.0},
		{0.25, 0.25},
		{0.5, 0.5},
		{1.0, 1.0},
	}

	for _, tc := range tests {
		got := EaseLinear(tc.t)
		if got != tc.want {
			t.Errorf("EaseLinear(%f) = %f, want %f", tc.t, got, tc.want)
		}
	}
}

func TestEaseInQuad(t *testing.T) {
	if EaseInQuad(0.5) != 0.25 {
		t.Errorf("EaseInQuad(0.5) = %f, want 0.25", EaseInQuad(0.5))
	}
}

func TestEaseOutQuad(t *testing.T) {
	// Decelerating: output ahead of input at the midpoint
	mid := EaseOutQuad(0.5)
	if mid <= 0.5 {
		t.Errorf("EaseOutQuad(0.5) = %f, should exceed 0.5", mid)
	}
}

func TestEaseInOutQuad(t *testing.T) {
	if EaseInOutQuad(0.5) != 0.5 {
		t.Errorf("EaseInOutQuad(0.5) = %f, want 0.5", EaseInOutQuad(0.5))
	}
}

func TestEasingFunctionsBounds(t *testing.T) {
	funcs := []struct {
		name string
		fn   EasingFunc
	}{
		{"Linear", EaseLinear},
		{"InQuad", EaseInQuad},
		{"OutQuad", EaseOutQuad},
		{"InOutQuad", EaseInOutQuad},
		{"OutCubic", EaseOutCubic},
	}

	for _, f := range funcs {
		t.Run(f.name, func(t *testing.T) {
			start := f.fn(0.0)
			if start < -0.001 || start > 0.001 {
				t.Errorf("%s(0) = %f, expected 0", f.name, start)
			}

			end := f.fn(1.0)
			if end < 0.999 || end > 1.001 {
				t.Errorf("%s(1) = %f, expected 1", f.name, end)
			}
		})
	}
}

// =============================================================================
// TRANSITION CONFIG TESTS
// =============================================================================

func TestTransitionConfigs(t *testing.T) {
	transitions := []struct {
		name   string
		config TransitionConfig
	}{
		{"Fast", TransitionFast},
		{"Normal", TransitionNormal},
		{"Slow", TransitionSlow},
	}

	for _, tr := range transitions {
		t.Run(tr.name, func(t *testing.T) {
			if tr.config.Duration <= 0 {
				t.Errorf("%s transition duration should be positive", tr.name)
			}
			if tr.config.Easing == nil {
				t.Errorf("%s transition easing function should not be nil", tr.name)
			}
		})
	}
}

func TestTransitionDurations(t *testing.T) {
	if TransitionFast.Duration >= TransitionNormal.Duration {
		t.Error("TransitionFast should be faster than TransitionNormal")
	}
	if TransitionNormal.Duration >= TransitionSlow.Duration {
		t.Error("TransitionNormal should be faster than TransitionSlow")
	}
}

func TestReducedMotion(t *testing.T) {
	reduced := ReducedMotion(TransitionNormal)
	if reduced.Duration >= TransitionNormal.Duration {
		t.Errorf("ReducedMotion duration = %v, should be shorter than %v",
			reduced.Duration, TransitionNormal.Duration)
	}
	if reduced.Easing(0.5) != 0.5 {
		t.Error("ReducedMotion should use linear easing")
	}
}

// =============================================================================
// DEPTH RENDERING TESTS
// =============================================================================

func TestDepthForeground(t *testing.T) {
	tests := []struct {
		name       string
		brightness float64
		want       string
	}{
		{"Focused", 1.0, TextPrimary.Dark},
		{"One back", 0.9, TextSecondary.Dark},
		{"Mid stack", 0.8, TextMuted.Dark},
		{"Deep", 0.6, TextFaint.Dark},
		{"Floor", 0.0, TextFaint.Dark},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := DepthForeground(tc.brightness)
			if got.Dark != tc.want {
				t.Errorf("DepthForeground(%.2f) = %s, want %s", tc.brightness, got.Dark, tc.want)
			}
		})
	}
}

func TestOpacityVisible(t *testing.T) {
	if !OpacityVisible(1.0) {
		t.Error("fully opaque card should be visible")
	}
	if !OpacityVisible(0.5) {
		t.Error("half-opacity card should be visible")
	}
	if OpacityVisible(0.05) {
		t.Error("nearly transparent card should not be drawn")
	}
}

// =============================================================================
// THEME TESTS
// =============================================================================

func TestNewTheme(t *testing.T) {
	theme := NewTheme()
	if theme == nil {
		t.Fatal("NewTheme returned nil")
	}

	// Spot-check that styles were initialized
	if theme.CardFocused.GetPaddingLeft() != 2 {
		t.Error("CardFocused padding not initialized")
	}
	if !theme.CardTitle.GetBold() {
		t.Error("CardTitle should be bold")
	}
}

func TestCardBorderStyle(t *testing.T) {
	theme := NewTheme()

	if theme.CardBorderStyle(0).GetBorderTopForeground() != theme.CardFocused.GetBorderTopForeground() {
		t.Error("depth 0 should use the focused frame")
	}
	if theme.CardBorderStyle(1).GetBorderTopForeground() != theme.CardStacked.GetBorderTopForeground() {
		t.Error("depth 1 should use the stacked frame")
	}
	if theme.CardBorderStyle(5).GetBorderTopForeground() != theme.CardDeep.GetBorderTopForeground() {
		t.Error("depth 5 should use the deep frame")
	}
}

func TestGetLayoutMode(t *testing.T) {
	theme := NewTheme()

	tests := []struct {
		width int
		want  LayoutMode
	}{
		{40, LayoutNarrow},
		{59, LayoutNarrow},
		{60, LayoutMedium},
		{99, LayoutMedium},
		{100, LayoutWide},
		{200, LayoutWide},
	}

	for _, tc := range tests {
		theme.SetSize(tc.width, 40)
		if got := theme.GetLayoutMode(); got != tc.want {
			t.Errorf("GetLayoutMode() at width %d = %v, want %v", tc.width, got, tc.want)
		}
	}
}
