// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package stack provides the stacked-card view, the main interaction surface
// of cardstack.
//
// The model wires the card tree, the navigation classifier, the animation
// sequencer, and the minimap scroll controller into one Bubble Tea update
// loop. Focus changes are classified into transition kinds, handed to the
// sequencer, and rendered frame by frame from its snapshots; renderers live
// in ui/components and receive only per-frame values.
//
// Streaming responses arrive over a channel subscription: a command reads
// one chunk and re-arms itself, so tokens flow through the update loop
// without blocking it. Autosave piggybacks on the session manager's ticks.
package stack
