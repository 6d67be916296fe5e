package engine

import (
	"slices"

	"github.com/declutterhq/declutter/pkg/geom"
	"github.com/declutterhq/declutter/pkg/scene"
)

// =============================================================================
// Overlap Detection
// =============================================================================

// OverlapPair records a collision between two nodes, addressed by their
// positions in the layout's node slice with A < B. Pairs are ephemeral:
// recomputed every iteration, never carried across iterations.
type OverlapPair struct {
	A, B int
	Area float64
}

// detectOverlaps returns every colliding node pair, worst offenders first
// (descending overlap area, pair indices as tie-break so the order is
// deterministic). Layouts with fewer than two nodes have no pairs.
//
// Detection switches from brute force O(n²) to the spatial index once the
// node count exceeds the mode's threshold, unless spatial indexing is
// disabled. Both paths return the identical pair set.
func detectOverlaps(l *scene.Layout, opts *Options) []OverlapPair {
	nodes := l.Nodes
	if len(nodes) < 2 {
		return nil
	}

	var pairs []OverlapPair
	if opts.SpatialIndexing && len(nodes) > opts.DetectionMode.IndexThreshold() {
		pairs = detectIndexed(nodes, opts)
	} else {
		pairs = detectBrute(nodes, opts)
	}

	slices.SortFunc(pairs, func(a, b OverlapPair) int {
		switch {
		case a.Area > b.Area:
			return -1
		case a.Area < b.Area:
			return 1
		case a.A != b.A:
			return a.A - b.A
		default:
			return a.B - b.B
		}
	})
	return pairs
}

// detectBrute checks every pair once (i < j).
func detectBrute(nodes []scene.Node, opts *Options) []OverlapPair {
	var pairs []OverlapPair
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			if area := geom.OverlapArea(nodes[i].Rect(), nodes[j].Rect(), opts.SeparationDistance); area > 0 {
				pairs = append(pairs, OverlapPair{A: i, B: j, Area: area})
			}
		}
	}
	return pairs
}

// detectIndexed builds a uniform grid and checks only 3×3 neighborhoods.
// Symmetric pairs are deduplicated by keeping i < j.
func detectIndexed(nodes []scene.Node, opts *Options) []OverlapPair {
	grid := newSpatialGrid(nodes, opts.SeparationDistance, opts.MinCellSize, opts.CellSizeFactor)

	var pairs []OverlapPair
	for i := range nodes {
		for _, j := range grid.neighbors(i, nodes) {
			if j <= i {
				continue
			}
			if area := geom.OverlapArea(nodes[i].Rect(), nodes[j].Rect(), opts.SeparationDistance); area > 0 {
				pairs = append(pairs, OverlapPair{A: i, B: j, Area: area})
			}
		}
	}
	return pairs
}

// overlappingNodes returns the distinct node indices involved in the given
// pairs, in worst-first pair order.
func overlappingNodes(pairs []OverlapPair) []int {
	seen := make(map[int]struct{}, 2*len(pairs))
	var out []int
	for _, p := range pairs {
		if _, ok := seen[p.A]; !ok {
			seen[p.A] = struct{}{}
			out = append(out, p.A)
		}
		if _, ok := seen[p.B]; !ok {
			seen[p.B] = struct{}{}
			out = append(out, p.B)
		}
	}
	return out
}
