package scene

import (
	"maps"

	"github.com/declutterhq/declutter/pkg/geom"
)

// =============================================================================
// Layout - Working Copy of a Scene
// =============================================================================

// Layout is the mutable working form of a scene during one engine run:
// an ordered node slice (positions change between iterations), the immutable
// edge set, and a derived bounding box.
//
// A Layout is owned exclusively by a single engine invocation. The engine
// never hands the caller's Scene to a strategy - it operates on clones, so
// concurrent runs over independent layouts need no coordination.
type Layout struct {
	DiagramType string `json:"diagram_type,omitempty"`
	Nodes       []Node `json:"nodes"`
	Edges       []Edge `json:"edges,omitempty"`

	index map[string]int // node ID → slice position
}

// NewLayout builds a Layout from a Scene with a deep copy of the nodes, so
// resolving never mutates the caller's input.
func NewLayout(s *Scene) *Layout {
	l := &Layout{
		DiagramType: s.DiagramType,
		Nodes:       make([]Node, len(s.Nodes)),
		Edges:       make([]Edge, len(s.Edges)),
	}
	for i, n := range s.Nodes {
		l.Nodes[i] = n
		if n.Meta != nil {
			l.Nodes[i].Meta = maps.Clone(n.Meta)
		}
	}
	copy(l.Edges, s.Edges)
	l.reindex()
	return l
}

// Clone returns an independent deep copy of the layout. Each resolution
// iteration works on a fresh clone, making iteration-to-iteration diffs
// straightforward and keeping snapshots immutable once taken.
func (l *Layout) Clone() *Layout {
	c := &Layout{
		DiagramType: l.DiagramType,
		Nodes:       make([]Node, len(l.Nodes)),
		Edges:       l.Edges, // immutable within a run, safe to share
	}
	for i, n := range l.Nodes {
		c.Nodes[i] = n
		if n.Meta != nil {
			c.Nodes[i].Meta = maps.Clone(n.Meta)
		}
	}
	c.reindex()
	return c
}

// NodeIndex returns the slice position of the node with the given ID.
func (l *Layout) NodeIndex(id string) (int, bool) {
	i, ok := l.index[id]
	return i, ok
}

// NodeCount returns the number of nodes in the layout.
func (l *Layout) NodeCount() int { return len(l.Nodes) }

// EdgeCount returns the number of edges in the layout.
func (l *Layout) EdgeCount() int { return len(l.Edges) }

// Bounds returns the smallest rectangle covering every node's bounding box.
// The second return value is false for an empty layout.
func (l *Layout) Bounds() (geom.Rect, bool) {
	rects := make([]geom.Rect, len(l.Nodes))
	for i := range l.Nodes {
		rects[i] = l.Nodes[i].Rect()
	}
	return geom.Bounds(rects)
}

// Centroid returns the mean of all node centers.
// The second return value is false for an empty layout.
func (l *Layout) Centroid() (geom.Point, bool) {
	points := make([]geom.Point, len(l.Nodes))
	for i := range l.Nodes {
		points[i] = l.Nodes[i].Center()
	}
	return geom.Centroid(points)
}

// Adjacency returns a lookup of connected node index pairs (both directions),
// used by strategies for connectivity-aware force damping.
func (l *Layout) Adjacency() map[[2]int]bool {
	adj := make(map[[2]int]bool, 2*len(l.Edges))
	for _, e := range l.Edges {
		from, okFrom := l.index[e.From]
		to, okTo := l.index[e.To]
		if !okFrom || !okTo {
			continue
		}
		adj[[2]int{from, to}] = true
		adj[[2]int{to, from}] = true
	}
	return adj
}

func (l *Layout) reindex() {
	l.index = make(map[string]int, len(l.Nodes))
	for i, n := range l.Nodes {
		l.index[n.ID] = i
	}
}
