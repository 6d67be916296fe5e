package engine

import (
	"math"

	"github.com/declutterhq/declutter/pkg/geom"
	"github.com/declutterhq/declutter/pkg/scene"
)

// =============================================================================
// Spiral-Placement Strategy
// =============================================================================

// applySpiralPlacement relocates each overlapping node to the first
// collision-free position found on concentric circles around its current
// location: radius grows by SpiralStep up to SpiralMaxRadius, with
// SpiralSamples angular probes per ring. The exhaustive probing makes this
// the strategy of last resort - slower than the local methods, but able to
// escape configurations where they stall.
//
// When no clear position exists within the radius budget the node falls back
// to a fixed offset right of its current position, trading a possible
// residual overlap for guaranteed progress.
func applySpiralPlacement(l *scene.Layout, pairs []OverlapPair, opts *Options) int {
	if len(pairs) == 0 {
		return 0
	}

	moved := 0
	for _, i := range overlappingNodes(pairs) {
		n := &l.Nodes[i]

		// An earlier placement may have already cleared this node.
		if placementIsClear(l, i, n.Center(), opts) {
			continue
		}

		target, ok := spiralSearch(l, i, opts)
		if !ok {
			// Fallback: shove the node clear of its own footprint.
			target = geom.Point{
				X: n.X + opts.SpiralMaxRadius + n.Width/2 + opts.SeparationDistance,
				Y: n.Y,
			}
		}

		pos := clampToCanvas(target, n, opts)
		if pos.X != n.X || pos.Y != n.Y {
			n.X, n.Y = pos.X, pos.Y
			moved++
		}
	}
	return moved
}

// spiralSearch probes concentric rings around node i's current position and
// returns the first collision-free candidate, post-clamping. Probing starts
// at angle 0 (east) and sweeps counter-clockwise, so results are
// deterministic for a given layout.
func spiralSearch(l *scene.Layout, i int, opts *Options) (geom.Point, bool) {
	n := &l.Nodes[i]
	origin := n.Center()

	for radius := opts.SpiralStep; radius <= opts.SpiralMaxRadius; radius += opts.SpiralStep {
		for k := 0; k < opts.SpiralSamples; k++ {
			angle := 2 * math.Pi * float64(k) / float64(opts.SpiralSamples)
			candidate := clampToCanvas(geom.Point{
				X: origin.X + radius*math.Cos(angle),
				Y: origin.Y + radius*math.Sin(angle),
			}, n, opts)

			if placementIsClear(l, i, candidate, opts) {
				return candidate, true
			}
		}
	}
	return geom.Point{}, false
}
