// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package layout computes card geometry for the two tree views.
package layout

import (
	"sort"

	"github.com/jeranaias/cardstack-tui/internal/model"
)

// =============================================================================
// TREE MAP CONSTANTS
// =============================================================================

const (
	// ReferenceLayerCount calibrates the cross-axis spacing unit: this many
	// cards fill the viewport exactly.
	ReferenceLayerCount = 7

	// DefaultLayerStep is the main-axis advance between breadth layers, in
	// canvas cells.
	DefaultLayerStep = 4.0

	// DefaultCrossSize is the fallback cross-axis viewport size.
	DefaultCrossSize = 80.0
)

// Orientation selects the minimap's primary axis.
type Orientation int

const (
	// Vertical lays layers top to bottom (cross axis horizontal).
	Vertical Orientation = iota
	// Horizontal lays layers left to right (cross axis vertical).
	Horizontal
)

// String returns the orientation name.
func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// =============================================================================
// TREE MAP TYPES
// =============================================================================

// TreeMapConfig configures the full-tree layout pass.
type TreeMapConfig struct {
	Orientation Orientation

	// CrossSize is the viewport extent perpendicular to the layer axis.
	CrossSize float64

	// LayerStep is the main-axis advance per breadth layer.
	LayerStep float64
}

// DefaultTreeMapConfig returns the standard minimap configuration.
func DefaultTreeMapConfig(o Orientation) TreeMapConfig {
	return TreeMapConfig{
		Orientation: o,
		CrossSize:   DefaultCrossSize,
		LayerStep:   DefaultLayerStep,
	}
}

// TreeMap is the computed full-tree layout.
type TreeMap struct {
	// Positions maps card id to its canvas coordinate.
	Positions map[string]Point

	// Layers holds card ids per breadth layer, in placement order.
	Layers [][]string

	// Width and Height bound the canvas so callers can size a scrollable
	// surface.
	Width  float64
	Height float64
}

// Position returns a card's coordinate and whether it was placed.
func (t *TreeMap) Position(id string) (Point, bool) {
	p, ok := t.Positions[id]
	return p, ok
}

// =============================================================================
// TREE MAP LAYOUT
// =============================================================================

// ComputeTreeMap performs a breadth-first layering pass over the whole
// forest and assigns every card a 2D coordinate.
//
// Layering starts from every root (empty parent reference); each card gets
// the minimum depth reachable from any root and is placed exactly once.
// Cards stranded by a stale parent reference are repaired: the walk climbs
// to their topmost resolvable ancestor and restarts the BFS from there, so
// a damaged snapshot still renders instead of vanishing (the invariant
// violation itself is the persistence layer's problem to reject).
//
// Within a layer, cards are spaced evenly with a unit calibrated so
// ReferenceLayerCount cards fill the cross-axis viewport; smaller layers
// are centered. The main axis advances LayerStep per layer. Horizontal
// orientation produces the same layering rotated 90 degrees.
func ComputeTreeMap(nodes map[string]*model.CardNode, cfg TreeMapConfig) TreeMap {
	if cfg.CrossSize <= 0 {
		cfg.CrossSize = DefaultCrossSize
	}
	if cfg.LayerStep <= 0 {
		cfg.LayerStep = DefaultLayerStep
	}

	depths := layerByBFS(nodes)

	// Bucket ids by layer, deterministically ordered.
	maxDepth := -1
	for _, d := range depths {
		if d > maxDepth {
			maxDepth = d
		}
	}
	if maxDepth < 0 {
		return TreeMap{Positions: map[string]Point{}}
	}

	layers := make([][]string, maxDepth+1)
	for id, d := range depths {
		layers[d] = append(layers[d], id)
	}
	for _, layer := range layers {
		sortLayer(layer, nodes)
	}

	unit := cfg.CrossSize / ReferenceLayerCount

	// Canvas cross extent grows past the viewport when a layer overflows.
	cross := cfg.CrossSize
	for _, layer := range layers {
		if extent := float64(len(layer)) * unit; extent > cross {
			cross = extent
		}
	}

	positions := make(map[string]Point, len(depths))
	for depth, layer := range layers {
		main := float64(depth) * cfg.LayerStep
		start := (cross-float64(len(layer))*unit)/2 + unit/2
		for i, id := range layer {
			c := start + float64(i)*unit
			if cfg.Orientation == Horizontal {
				positions[id] = Point{X: main, Y: c}
			} else {
				positions[id] = Point{X: c, Y: main}
			}
		}
	}

	mainExtent := float64(maxDepth)*cfg.LayerStep + cfg.LayerStep
	out := TreeMap{Positions: positions, Layers: layers}
	if cfg.Orientation == Horizontal {
		out.Width, out.Height = mainExtent, cross
	} else {
		out.Width, out.Height = cross, mainExtent
	}
	return out
}

// layerByBFS assigns every card its minimum breadth depth.
func layerByBFS(nodes map[string]*model.CardNode) map[string]int {
	depths := make(map[string]int, len(nodes))

	// Ordinary pass from the detected roots.
	var seeds []bfsEntry
	for _, id := range detectRoots(nodes) {
		seeds = append(seeds, bfsEntry{id: id})
	}
	bfs(nodes, seeds, depths)

	// Repair pass: a card stranded by a stale parent reference is layered
	// by climbing to its nearest placed (or topmost resolvable) ancestor
	// and restarting the BFS from there.
	for _, id := range strandedIDs(nodes, depths) {
		if _, ok := depths[id]; ok {
			continue // placed by an earlier repair
		}
		bfs(nodes, []bfsEntry{repairSeed(nodes, id, depths)}, depths)
	}

	return depths
}

// repairSeed climbs parent links from a stranded card, collecting the chain
// until it hits a placed ancestor or an unresolvable parent, and returns
// the deepest chain node as a seed with its repaired depth.
func repairSeed(nodes map[string]*model.CardNode, id string, depths map[string]int) bfsEntry {
	chain := []string{id}
	base := -1 // depth above the top of the chain
	cur := id
	for steps := 0; steps <= len(nodes); steps++ {
		node := nodes[cur]
		if node == nil || node.ParentID == "" || nodes[node.ParentID] == nil {
			break
		}
		if d, ok := depths[node.ParentID]; ok {
			base = d
			break
		}
		cur = node.ParentID
		chain = append(chain, cur)
	}

	// Assign the chain top-down; the stranded card itself ends up deepest.
	depth := base + 1
	for i := len(chain) - 1; i > 0; i-- {
		depths[chain[i]] = depth
		depth++
	}
	return bfsEntry{id: id, depth: depth}
}

// detectRoots returns cards with no parent reference, oldest first.
func detectRoots(nodes map[string]*model.CardNode) []string {
	var roots []string
	for id, n := range nodes {
		if n != nil && n.ParentID == "" {
			roots = append(roots, id)
		}
	}
	sort.Slice(roots, func(i, j int) bool {
		a, b := nodes[roots[i]], nodes[roots[j]]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return roots[i] < roots[j]
	})
	return roots
}

// bfsEntry is a BFS seed or queue element.
type bfsEntry struct {
	id    string
	depth int
}

// bfs layers cards from the given seeds, keeping the first (minimum) depth
// a card is discovered at. A card already placed is never placed again.
func bfs(nodes map[string]*model.CardNode, seeds []bfsEntry, depths map[string]int) {
	queue := make([]bfsEntry, 0, len(seeds))
	for _, seed := range seeds {
		if _, seen := depths[seed.id]; !seen && nodes[seed.id] != nil {
			depths[seed.id] = seed.depth
			queue = append(queue, seed)
		}
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		node := nodes[cur.id]
		if node == nil {
			continue
		}
		for _, childID := range node.Children {
			if nodes[childID] == nil {
				continue
			}
			if _, seen := depths[childID]; seen {
				continue
			}
			depths[childID] = cur.depth + 1
			queue = append(queue, bfsEntry{id: childID, depth: cur.depth + 1})
		}
	}
}

// strandedIDs returns unplaced cards in deterministic order.
func strandedIDs(nodes map[string]*model.CardNode, depths map[string]int) []string {
	var out []string
	for id := range nodes {
		if _, ok := depths[id]; !ok {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// sortLayer orders a layer's ids by creation time, falling back to id, so
// layouts are stable across runs.
func sortLayer(layer []string, nodes map[string]*model.CardNode) {
	sort.Slice(layer, func(i, j int) bool {
		a, b := nodes[layer[i]], nodes[layer[j]]
		if a == nil || b == nil {
			return layer[i] < layer[j]
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return layer[i] < layer[j]
	})
}
