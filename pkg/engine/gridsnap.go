package engine

import (
	"math"

	"github.com/declutterhq/declutter/pkg/geom"
	"github.com/declutterhq/declutter/pkg/scene"
)

// maxSnapRings bounds the expanding ring search; beyond this the canvas is
// effectively full and the node keeps its position.
const maxSnapRings = 32

// =============================================================================
// Grid-Snap Strategy
// =============================================================================

// applyGridSnap quantizes the canvas into fixed cells and relocates each
// overlapping node to the nearest free cell center. A cell is free when no
// other node's separation-expanded bounding box covers it and placing the
// node there produces zero overlap, so a successful snap resolves that
// node's collisions outright instead of merely nudging them.
//
// Nodes are processed worst-overlap first; each node is moved at most once
// per call.
func applyGridSnap(l *scene.Layout, pairs []OverlapPair, opts *Options) int {
	if len(pairs) == 0 {
		return 0
	}

	occupied := buildOccupancy(l, opts)

	moved := 0
	for _, i := range overlappingNodes(pairs) {
		n := &l.Nodes[i]
		occupied.remove(n, opts)

		// An earlier snap may have already cleared this node.
		if placementIsClear(l, i, n.Center(), opts) {
			occupied.add(n, opts)
			continue
		}

		if target, ok := occupied.nearestFreeCell(l, i, opts); ok {
			pos := clampToCanvas(target, n, opts)
			if pos.X != n.X || pos.Y != n.Y {
				n.X, n.Y = pos.X, pos.Y
				moved++
			}
		}

		occupied.add(n, opts)
	}
	return moved
}

// occupancy tracks how many separation-expanded node boxes cover each cell.
type occupancy map[cellKey]int

// buildOccupancy marks every cell covered by each node's expanded bounds.
func buildOccupancy(l *scene.Layout, opts *Options) occupancy {
	occ := make(occupancy, len(l.Nodes))
	for i := range l.Nodes {
		occ.add(&l.Nodes[i], opts)
	}
	return occ
}

func (occ occupancy) add(n *scene.Node, opts *Options) {
	occ.mark(n, opts, 1)
}

func (occ occupancy) remove(n *scene.Node, opts *Options) {
	occ.mark(n, opts, -1)
}

func (occ occupancy) mark(n *scene.Node, opts *Options, delta int) {
	r := n.Rect().Expand(opts.SeparationDistance / 2)
	if r.Size.Degenerate() {
		r.Size = geom.Size{Width: opts.SeparationDistance, Height: opts.SeparationDistance}
	}
	cell := opts.GridCell
	x0, x1 := int(math.Floor(r.Left()/cell)), int(math.Floor(r.Right()/cell))
	y0, y1 := int(math.Floor(r.Top()/cell)), int(math.Floor(r.Bottom()/cell))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			k := cellKey{X: x, Y: y}
			occ[k] += delta
			if occ[k] <= 0 {
				delete(occ, k)
			}
		}
	}
}

// nearestFreeCell searches outward in expanding square rings from node i's
// current cell for the closest cell center where the node sits collision-free.
// The caller has already removed node i from the occupancy.
func (occ occupancy) nearestFreeCell(l *scene.Layout, i int, opts *Options) (geom.Point, bool) {
	cell := opts.GridCell
	n := &l.Nodes[i]
	cx := int(math.Floor(n.X / cell))
	cy := int(math.Floor(n.Y / cell))

	for ring := 0; ring <= maxSnapRings; ring++ {
		var best geom.Point
		bestDist := math.Inf(1)
		found := false

		forRingCells(cx, cy, ring, func(k cellKey) {
			if occ[k] > 0 {
				return
			}
			candidate := geom.Point{
				X: float64(k.X)*cell + cell/2,
				Y: float64(k.Y)*cell + cell/2,
			}
			if !placementIsClear(l, i, candidate, opts) {
				return
			}
			if d := candidate.DistanceTo(n.Center()); d < bestDist {
				best, bestDist, found = candidate, d, true
			}
		})

		if found {
			return best, true
		}
	}
	return geom.Point{}, false
}

// forRingCells visits every cell on the square ring of the given radius
// around (cx, cy). Ring 0 is the center cell itself.
func forRingCells(cx, cy, ring int, visit func(cellKey)) {
	if ring == 0 {
		visit(cellKey{X: cx, Y: cy})
		return
	}
	for x := cx - ring; x <= cx+ring; x++ {
		visit(cellKey{X: x, Y: cy - ring})
		visit(cellKey{X: x, Y: cy + ring})
	}
	for y := cy - ring + 1; y <= cy+ring-1; y++ {
		visit(cellKey{X: cx - ring, Y: y})
		visit(cellKey{X: cx + ring, Y: y})
	}
}

// placementIsClear reports whether node i placed at pos overlaps no other node.
func placementIsClear(l *scene.Layout, i int, pos geom.Point, opts *Options) bool {
	candidate := geom.Rect{Center: pos, Size: l.Nodes[i].Rect().Size}
	for j := range l.Nodes {
		if j == i {
			continue
		}
		if geom.Overlaps(candidate, l.Nodes[j].Rect(), opts.SeparationDistance) {
			return false
		}
	}
	return true
}
