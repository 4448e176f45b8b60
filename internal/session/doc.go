// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session tracks the editing session and drives autosave.
//
// The manager keeps a dirty flag that tree mutations set and successful
// saves clear, and a once-a-second tick that turns "dirty for long enough"
// into an autosave message for the update loop. Saves always happen in the
// Bubble Tea loop, never from a timer goroutine, so they see a consistent
// tree.
package session
