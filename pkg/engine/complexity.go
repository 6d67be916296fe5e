package engine

import (
	"math"

	"github.com/samber/lo"

	"github.com/declutterhq/declutter/pkg/scene"
)

// =============================================================================
// Complexity Analysis
// =============================================================================

// Complexity categorizes a layout's structural difficulty.
type Complexity string

// Complexity categories, in increasing order of difficulty.
const (
	ComplexitySimple      Complexity = "simple"
	ComplexityModerate    Complexity = "moderate"
	ComplexityComplex     Complexity = "complex"
	ComplexityVeryComplex Complexity = "very_complex"
)

// Reference scales for normalizing the raw complexity factors. A layout at
// the reference value scores 100 on that factor.
const (
	nodePressureRef = 50.0  // node count saturating the pressure factor
	edgeDensityRef  = 2.5   // average degree saturating the density factor
	spreadRef       = 300.0 // mean centroid distance (px) saturating spread
)

// Factor weights; overlap severity dominates because it measures the actual
// work left for the resolver.
const (
	weightNodePressure    = 0.25
	weightEdgeDensity     = 0.20
	weightOverlapSeverity = 0.30
	weightSpread          = 0.15
	weightSizeVariance    = 0.10
)

// ComplexityFactors holds the five normalized (0–100) inputs to the score.
type ComplexityFactors struct {
	NodePressure    float64 `json:"node_pressure"`
	EdgeDensity     float64 `json:"edge_density"`
	OverlapSeverity float64 `json:"overlap_severity"`
	Spread          float64 `json:"spread"`
	SizeVariance    float64 `json:"size_variance"`
}

// ComplexityReport is the analyzer's output: the weighted score, its
// category band, and the individual factors for diagnostics.
type ComplexityReport struct {
	Score    float64           `json:"score"`
	Category Complexity        `json:"category"`
	Factors  ComplexityFactors `json:"factors"`
}

// analyzeComplexity scores the layout's structural complexity. The analysis
// is pure and deterministic; it is recomputed every iteration because the
// factors shift as nodes move.
func analyzeComplexity(l *scene.Layout, overlapCount int) ComplexityReport {
	n := l.NodeCount()
	if n == 0 {
		return ComplexityReport{Category: ComplexitySimple}
	}

	f := ComplexityFactors{
		NodePressure:    clamp100(100 * float64(n) / nodePressureRef),
		EdgeDensity:     clamp100(100 * (float64(l.EdgeCount()) / float64(n)) / edgeDensityRef),
		OverlapSeverity: clamp100(100 * float64(overlapCount) / float64(n)),
		Spread:          clamp100(100 * meanCentroidDistance(l) / spreadRef),
		SizeVariance:    clamp100(100 * areaVariation(l)),
	}

	score := weightNodePressure*f.NodePressure +
		weightEdgeDensity*f.EdgeDensity +
		weightOverlapSeverity*f.OverlapSeverity +
		weightSpread*f.Spread +
		weightSizeVariance*f.SizeVariance

	return ComplexityReport{
		Score:    score,
		Category: categorize(score),
		Factors:  f,
	}
}

// categorize maps a score to its band.
func categorize(score float64) Complexity {
	switch {
	case score < 30:
		return ComplexitySimple
	case score < 60:
		return ComplexityModerate
	case score < 85:
		return ComplexityComplex
	default:
		return ComplexityVeryComplex
	}
}

// meanCentroidDistance returns the average distance of node centers from
// their centroid.
func meanCentroidDistance(l *scene.Layout) float64 {
	centroid, ok := l.Centroid()
	if !ok {
		return 0
	}
	total := lo.SumBy(l.Nodes, func(n scene.Node) float64 {
		return n.Center().DistanceTo(centroid)
	})
	return total / float64(len(l.Nodes))
}

// areaVariation returns the coefficient of variation of node areas.
func areaVariation(l *scene.Layout) float64 {
	areas := lo.Map(l.Nodes, func(n scene.Node, _ int) float64 {
		return n.Rect().Size.Area()
	})

	mean := lo.Sum(areas) / float64(len(areas))
	if mean == 0 {
		return 0
	}

	var sq float64
	for _, a := range areas {
		d := a - mean
		sq += d * d
	}
	return math.Sqrt(sq/float64(len(areas))) / mean
}

func clamp100(v float64) float64 {
	return math.Min(100, math.Max(0, v))
}
