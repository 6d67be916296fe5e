package scene

import (
	"github.com/declutterhq/declutter/pkg/errors"
	"github.com/declutterhq/declutter/pkg/geom"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Diagram type hints supplied by the upstream classifier. The engine treats
// them as opaque labels; they are carried through for logging and results.
const (
	DiagramFlowchart = "flowchart"
	DiagramMindmap   = "mindmap"
	DiagramSequence  = "sequence"
	DiagramTimeline  = "timeline"
	DiagramNetwork   = "network"
	DiagramGeneric   = "generic"
)

// =============================================================================
// Scene - Engine Input
// =============================================================================

// Scene is the canonical input format for the layout engine: typed nodes with
// pre-assigned sizes and positions, directed edges, and a diagram-type hint.
//
// The format is human-readable JSON and designed for round-trip fidelity:
// read → resolve → write keeps node identity and edge structure intact.
type Scene struct {
	DiagramType string `json:"diagram_type,omitempty"`
	Nodes       []Node `json:"nodes"`
	Edges       []Edge `json:"edges,omitempty"`
}

// Node is a diagram node. X and Y address the center of the bounding box.
// Position is mutable during a layout run; ID is fixed for the run's lifetime.
type Node struct {
	ID     string         `json:"id"`
	Label  string         `json:"label,omitempty"` // Display label (defaults to ID)
	X      float64        `json:"x"`
	Y      float64        `json:"y"`
	Width  float64        `json:"width"`
	Height float64        `json:"height"`
	Meta   map[string]any `json:"meta,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Rect returns the node's bounding box as a center-based rectangle.
func (n *Node) Rect() geom.Rect {
	return geom.Rect{
		Center: geom.Point{X: n.X, Y: n.Y},
		Size:   geom.Size{Width: n.Width, Height: n.Height},
	}
}

// Center returns the node's center point.
func (n *Node) Center() geom.Point {
	return geom.Point{X: n.X, Y: n.Y}
}

// Edge represents a directed connection between two nodes.
// Edges are immutable within a layout run; the engine reads them only for
// attraction forces and connectivity-aware damping.
type Edge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label,omitempty"`
}

// =============================================================================
// Validation
// =============================================================================

// Validate checks structural integrity: every node has a non-empty unique ID
// and every edge references existing nodes. It returns a structured error for
// the first violation found.
//
// Non-positive node dimensions are deliberately NOT an error - degenerate
// boxes are treated as never overlapping by the geometry layer, keeping the
// engine total over malformed input.
func (s *Scene) Validate() error {
	seen := make(map[string]struct{}, len(s.Nodes))
	for _, n := range s.Nodes {
		if n.ID == "" {
			return errors.New(errors.ErrCodeInvalidScene, "node ID must not be empty")
		}
		if _, dup := seen[n.ID]; dup {
			return errors.New(errors.ErrCodeDuplicateNode, "duplicate node id: %s", n.ID)
		}
		seen[n.ID] = struct{}{}
	}

	for _, e := range s.Edges {
		if _, ok := seen[e.From]; !ok {
			return errors.New(errors.ErrCodeUnknownEndpoint, "edge %s→%s: unknown source node", e.From, e.To)
		}
		if _, ok := seen[e.To]; !ok {
			return errors.New(errors.ErrCodeUnknownEndpoint, "edge %s→%s: unknown target node", e.From, e.To)
		}
	}

	return nil
}
