package engine

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/declutterhq/declutter/pkg/scene"
)

// randomNodes builds a reproducible node set from a seed.
func randomNodes(seed int64, count int) []scene.Node {
	rng := rand.New(rand.NewSource(seed))
	nodes := make([]scene.Node, count)
	for i := range nodes {
		nodes[i] = scene.Node{
			ID:     fmt.Sprintf("n%d", i),
			X:      150 + rng.Float64()*1600,
			Y:      100 + rng.Float64()*880,
			Width:  20 + rng.Float64()*200,
			Height: 20 + rng.Float64()*120,
		}
	}
	return nodes
}

// pairSet keys overlap pairs for set comparison.
func pairSet(pairs []OverlapPair) map[[2]int]float64 {
	set := make(map[[2]int]float64, len(pairs))
	for _, p := range pairs {
		set[[2]int{p.A, p.B}] = p.Area
	}
	return set
}

// TestDetectionProperties verifies invariants of the overlap detector over
// randomized scenes: the spatial index must find exactly the pairs brute
// force finds, and the overlap-free score must agree with the pair count.
func TestDetectionProperties(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping property-based test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)
	opts := testOptions(t)

	properties.Property("indexed detection equals brute force", prop.ForAll(
		func(seed int64, count int) bool {
			nodes := randomNodes(seed, count)

			brute := pairSet(detectBrute(nodes, opts))
			indexed := pairSet(detectIndexed(nodes, opts))

			if len(brute) != len(indexed) {
				return false
			}
			for k, area := range brute {
				if indexed[k] != area {
					return false
				}
			}
			return true
		},
		gen.Int64(),
		gen.IntRange(2, 60),
	))

	properties.Property("overlap-free score is 100 exactly when no pair collides", prop.ForAll(
		func(seed int64, count int) bool {
			l := scene.NewLayout(&scene.Scene{Nodes: randomNodes(seed, count)})
			pairs := detectOverlaps(l, opts)
			qa := assessQuality(l, len(pairs), opts)
			return (qa.OverlapFreePercent == 100) == (len(pairs) == 0)
		},
		gen.Int64(),
		gen.IntRange(2, 40),
	))

	properties.TestingRun(t)
}

// TestResolveProperties verifies the engine's output contract over
// randomized scenes: node identity is preserved, positions stay inside the
// canvas, and imperfect outcomes surface as data instead of errors.
func TestResolveProperties(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping property-based test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 25

	properties := gopter.NewProperties(parameters)

	properties.Property("resolve preserves nodes and respects the canvas", prop.ForAll(
		func(seed int64, count int) bool {
			eng, err := New(NewOptions())
			if err != nil {
				return false
			}
			s := &scene.Scene{Nodes: randomNodes(seed, count)}

			result, err := eng.Resolve(context.Background(), s)
			if err != nil || !result.Success {
				return false
			}
			if result.Layout.NodeCount() != count {
				return false
			}

			opts := eng.Options()
			for i, n := range result.Layout.Nodes {
				if n.ID != s.Nodes[i].ID {
					return false
				}
				if n.Width != s.Nodes[i].Width || n.Height != s.Nodes[i].Height {
					return false
				}
				r := n.Rect()
				if r.Left() < 0 || r.Top() < 0 || r.Right() > opts.CanvasWidth || r.Bottom() > opts.CanvasHeight {
					return false
				}
			}

			// A clean result and the quality score must agree.
			return (result.Metrics.TotalOverlaps == 0) == (result.Assessment.OverlapFreePercent == 100)
		},
		gen.Int64(),
		gen.IntRange(1, 30),
	))

	properties.TestingRun(t)
}
