// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package layout computes card geometry for the two tree views.
//
// Two independent pure computations live here:
//
//   - PathLayout: transforms (arc position, scale, blur, brightness,
//     opacity) for the chain of ancestors behind the focus card in the
//     stacked view.
//   - TreeMap: 2D breadth-layer coordinates for every card in the minimap,
//     in vertical or horizontal orientation, plus the canvas bounding size.
//
// Neither function has side effects or reads the clock; identical inputs
// always produce identical outputs.
package layout
