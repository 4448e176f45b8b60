// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for cardstack.
//
// Components are pure renderers: they take model data plus the animation
// system's per-card render values and return styled strings. The stack view
// composes them; no component owns update-loop state beyond what bubbles
// widgets carry internally.
package components
