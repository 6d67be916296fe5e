package engine

import (
	"github.com/declutterhq/declutter/pkg/scene"
)

// =============================================================================
// Inspection - Detection Without Resolution
// =============================================================================

// NamedOverlap is an overlap pair addressed by node IDs, for reporting.
type NamedOverlap struct {
	NodeA string  `json:"node_a"`
	NodeB string  `json:"node_b"`
	Area  float64 `json:"area"`
}

// Inspection is a read-only diagnosis of a scene: its collisions, complexity
// score, and quality as-is, without running any resolution strategy.
type Inspection struct {
	DiagramType string            `json:"diagram_type,omitempty"`
	NodeCount   int               `json:"node_count"`
	EdgeCount   int               `json:"edge_count"`
	Overlaps    []NamedOverlap    `json:"overlaps,omitempty"`
	Complexity  ComplexityReport  `json:"complexity"`
	Assessment  QualityAssessment `json:"quality_assessment"`
}

// Inspect runs the overlap detector, complexity analyzer, and quality
// assessor over a scene without moving any node. It shares the engine's
// configuration surface so a dry run reports exactly what a resolve run
// would see on its first iteration.
func Inspect(s *scene.Scene, opts Options) (*Inspection, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	l := scene.NewLayout(s)
	pairs := detectOverlaps(l, &opts)

	named := make([]NamedOverlap, len(pairs))
	for i, p := range pairs {
		named[i] = NamedOverlap{
			NodeA: l.Nodes[p.A].ID,
			NodeB: l.Nodes[p.B].ID,
			Area:  p.Area,
		}
	}

	return &Inspection{
		DiagramType: s.DiagramType,
		NodeCount:   l.NodeCount(),
		EdgeCount:   l.EdgeCount(),
		Overlaps:    named,
		Complexity:  analyzeComplexity(l, len(pairs)),
		Assessment:  assessQuality(l, len(pairs), &opts),
	}, nil
}
