package engine

import (
	"math"

	"github.com/declutterhq/declutter/pkg/scene"
)

// =============================================================================
// Adaptive-Hybrid Strategy
// =============================================================================

// applyAdaptiveHybrid runs a three-tier pipeline: force-directed repulsion on
// the worst HybridForceShare of overlaps, grid-snap on the next
// HybridGridShare of whatever remains, and spiral placement on the rest.
// Overlaps are re-detected between tiers - detection is cheap relative to
// resolving the wrong pairs - so each tier works against the current state,
// not a stale pair list.
func applyAdaptiveHybrid(l *scene.Layout, pairs []OverlapPair, opts *Options) int {
	if len(pairs) == 0 {
		return 0
	}

	moved := 0

	// Tier 1: force-directed on the worst overlaps.
	n1 := shareCount(len(pairs), opts.HybridForceShare)
	moved += applyForceDirected(l, pairs[:n1], opts)

	pairs = detectOverlaps(l, opts)
	if len(pairs) == 0 {
		return moved
	}

	// Tier 2: grid-snap on the next share of the remainder.
	n2 := shareCount(len(pairs), opts.HybridGridShare)
	moved += applyGridSnap(l, pairs[:n2], opts)

	pairs = detectOverlaps(l, opts)
	if len(pairs) == 0 {
		return moved
	}

	// Tier 3: spiral placement mops up.
	moved += applySpiralPlacement(l, pairs, opts)
	return moved
}

// shareCount returns how many of n pairs a tier takes, at least one.
func shareCount(n int, share float64) int {
	c := int(math.Ceil(float64(n) * share))
	if c < 1 {
		c = 1
	}
	if c > n {
		c = n
	}
	return c
}
