package engine

import (
	"fmt"
	"math"

	"github.com/samber/lo"

	"github.com/declutterhq/declutter/pkg/geom"
	"github.com/declutterhq/declutter/pkg/scene"
)

// =============================================================================
// Quality Assessment
// =============================================================================

// Sub-score weights for the overall quality score. Overlap freedom dominates
// because it is the engine's contract; the rest are aesthetics.
const (
	weightOverlapFree = 0.50
	weightEfficiency  = 0.20
	weightBalance     = 0.15
	weightReadability = 0.15
)

// Sub-score thresholds below which an improvement hint is emitted.
const (
	thresholdOverlapFree = 100.0
	thresholdEfficiency  = 70.0
	thresholdBalance     = 80.0
	thresholdReadability = 85.0
)

// QualityAssessment is the multi-factor score of a resolved layout, computed
// fresh from the final node positions and never updated incrementally.
type QualityAssessment struct {
	OverlapFreePercent float64  `json:"overlap_free_percent"`
	LayoutEfficiency   float64  `json:"layout_efficiency"`
	VisualBalance      float64  `json:"visual_balance"`
	Readability        float64  `json:"readability"`
	OverallScore       float64  `json:"overall_score"`
	Improvements       []string `json:"improvements,omitempty"`
}

// assessQuality scores the layout given the current overlap count.
//
// OverlapFreePercent is 100 exactly when no separation-expanded pair of
// bounding boxes intersects; the other sub-scores measure space use, mass
// centering on the canvas, and pairwise spacing against the ideal readable
// distance.
func assessQuality(l *scene.Layout, overlapCount int, opts *Options) QualityAssessment {
	qa := QualityAssessment{
		OverlapFreePercent: overlapFreePercent(l.NodeCount(), overlapCount),
		LayoutEfficiency:   layoutEfficiency(l),
		VisualBalance:      visualBalance(l, opts),
		Readability:        readability(l, opts),
	}

	qa.OverallScore = weightOverlapFree*qa.OverlapFreePercent +
		weightEfficiency*qa.LayoutEfficiency +
		weightBalance*qa.VisualBalance +
		weightReadability*qa.Readability

	qa.Improvements = improvements(qa, overlapCount)
	return qa
}

// overlapFreePercent is 100 × (1 − overlaps / possible pairs).
func overlapFreePercent(nodeCount, overlapCount int) float64 {
	pairs := possiblePairs(nodeCount)
	if pairs == 0 {
		return 100
	}
	return 100 * (1 - float64(overlapCount)/float64(pairs))
}

// layoutEfficiency compares total node area against the layout's bounding
// box. The factor 2 grants full marks at 50% coverage - denser than that
// rarely leaves room for edges and labels.
func layoutEfficiency(l *scene.Layout) float64 {
	bounds, ok := l.Bounds()
	if !ok {
		return 0
	}
	boxArea := bounds.Size.Area()
	if boxArea == 0 {
		return 0
	}
	nodeArea := lo.SumBy(l.Nodes, func(n scene.Node) float64 {
		return n.Rect().Size.Area()
	})
	return math.Min(100, 2*nodeArea/boxArea*100)
}

// visualBalance measures how far the node centroid sits from the canvas
// center, normalized by the center-to-corner distance.
func visualBalance(l *scene.Layout, opts *Options) float64 {
	centroid, ok := l.Centroid()
	if !ok {
		return 0
	}
	center := geom.Point{X: opts.CanvasWidth / 2, Y: opts.CanvasHeight / 2}
	maxDeviation := center.DistanceTo(geom.Point{})
	if maxDeviation == 0 {
		return 100
	}
	return 100 * (1 - math.Min(1, centroid.DistanceTo(center)/maxDeviation))
}

// readability scores the average pairwise node distance against the ideal
// readable distance.
func readability(l *scene.Layout, opts *Options) float64 {
	n := len(l.Nodes)
	if n < 2 {
		return 100
	}

	var total float64
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			total += l.Nodes[i].Center().DistanceTo(l.Nodes[j].Center())
		}
	}
	avg := total / float64(possiblePairs(n))
	return math.Min(100, avg/opts.IdealDistance*100)
}

// improvements emits an actionable hint for each sub-score below its
// threshold.
func improvements(qa QualityAssessment, overlapCount int) []string {
	var out []string
	if qa.OverlapFreePercent < thresholdOverlapFree {
		out = append(out, fmt.Sprintf(
			"%d node pair(s) still overlap - raise max_iterations or separation_distance", overlapCount))
	}
	if qa.LayoutEfficiency < thresholdEfficiency {
		out = append(out, fmt.Sprintf(
			"layout fills only %.0f%% of its bounding box - tighten the node spread", qa.LayoutEfficiency))
	}
	if qa.VisualBalance < thresholdBalance {
		out = append(out, "node mass is off-center - recenter the layout on the canvas")
	}
	if qa.Readability < thresholdReadability {
		out = append(out, "average node spacing is below the readable minimum - enlarge the canvas or separation")
	}
	return out
}

// possiblePairs returns n choose 2.
func possiblePairs(n int) int {
	if n < 2 {
		return 0
	}
	return n * (n - 1) / 2
}
