// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package anim drives card stack transitions.
//
// The Sequencer owns the presentation state of the visible card stack: which
// cards are on screen, where they are, and how they get from one arrangement
// to the next. It consumes classified transitions and plays them as one or
// two phases of interpolated movement, ticked from the Bubble Tea event loop.
//
// Every transition bumps a generation token. Ticks carry the token of the
// generation that scheduled them, and ticks from a superseded generation are
// discarded, so a rapid burst of navigation never leaves stray timers
// mutating current state.
package anim
