package engine

import (
	"math"

	"github.com/declutterhq/declutter/pkg/geom"
	"github.com/declutterhq/declutter/pkg/scene"
)

// maxForceStep caps the per-node displacement from a single repulsion, so a
// deep overlap cannot fling a node across the canvas in one step.
const maxForceStep = 40.0

// attractionCap caps the per-edge pull on distant connected nodes.
const attractionCap = 10.0

// =============================================================================
// Force-Directed Strategy
// =============================================================================

// applyForceDirected separates colliding nodes with pairwise repulsion
// proportional to overlap area, plus a weak attraction pulling connected but
// distant nodes back toward their ideal separation.
//
// Edge-connected pairs repel at half strength: connected nodes should stay
// close, so their collisions are corrected more gently. Damping shrinks as
// the overlap count grows, trading convergence speed for stability when many
// nodes are colliding at once.
func applyForceDirected(l *scene.Layout, pairs []OverlapPair, opts *Options) int {
	if len(pairs) == 0 {
		return 0
	}

	adj := l.Adjacency()
	damping := forceDamping(len(pairs))

	dispX := make([]float64, len(l.Nodes))
	dispY := make([]float64, len(l.Nodes))

	// Repulsion from overlaps, worst first.
	for _, p := range pairs {
		a, b := &l.Nodes[p.A], &l.Nodes[p.B]
		ux, uy := separationAxis(a, b, p.A, p.B)

		magnitude := math.Min(maxForceStep, 0.05*p.Area) + 0.5*opts.SeparationDistance
		if adj[[2]int{p.A, p.B}] {
			magnitude *= 0.5
		}

		dispX[p.A] -= ux * magnitude
		dispY[p.A] -= uy * magnitude
		dispX[p.B] += ux * magnitude
		dispY[p.B] += uy * magnitude
	}

	// Attraction for connected nodes that drifted too far apart.
	for _, e := range l.Edges {
		i, okFrom := l.NodeIndex(e.From)
		j, okTo := l.NodeIndex(e.To)
		if !okFrom || !okTo || i == j {
			continue
		}
		a, b := &l.Nodes[i], &l.Nodes[j]

		ideal := (a.Rect().Size.MaxExtent()+b.Rect().Size.MaxExtent())/2 + opts.AttractionMargin
		dist := a.Center().DistanceTo(b.Center())
		if dist <= ideal {
			continue
		}

		pull := math.Min(attractionCap, 0.05*(dist-ideal))
		ux := (b.X - a.X) / dist
		uy := (b.Y - a.Y) / dist

		dispX[i] += ux * pull
		dispY[i] += uy * pull
		dispX[j] -= ux * pull
		dispY[j] -= uy * pull
	}

	moved := 0
	for i := range l.Nodes {
		if dispX[i] == 0 && dispY[i] == 0 {
			continue
		}
		n := &l.Nodes[i]
		pos := clampToCanvas(geom.Point{
			X: n.X + dispX[i]*damping,
			Y: n.Y + dispY[i]*damping,
		}, n, opts)
		if pos.X != n.X || pos.Y != n.Y {
			n.X, n.Y = pos.X, pos.Y
			moved++
		}
	}
	return moved
}

// forceDamping adapts the per-step correction to the collision count:
// more collisions mean gentler steps, avoiding oscillation.
func forceDamping(overlapCount int) float64 {
	return math.Max(0.3, 0.8-math.Min(0.3, 0.02*float64(overlapCount)))
}

// separationAxis returns the unit vector from a toward b. Coincident centers
// get a deterministic horizontal axis (ordered by slice index), so repeated
// runs over the same scene always separate the same way.
func separationAxis(a, b *scene.Node, ai, bi int) (float64, float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist < 1e-9 {
		if ai < bi {
			return 1, 0
		}
		return -1, 0
	}
	return dx / dist, dy / dist
}

// clampToCanvas constrains a node center so its bounding box stays inside
// the canvas by a half-extent margin on each side.
func clampToCanvas(p geom.Point, n *scene.Node, opts *Options) geom.Point {
	halfW := math.Max(0, n.Width/2)
	halfH := math.Max(0, n.Height/2)
	min := geom.Point{X: halfW, Y: halfH}
	max := geom.Point{X: opts.CanvasWidth - halfW, Y: opts.CanvasHeight - halfH}
	if max.X < min.X {
		max.X = min.X
	}
	if max.Y < min.Y {
		max.Y = min.Y
	}
	return geom.Clamp(p, min, max)
}
