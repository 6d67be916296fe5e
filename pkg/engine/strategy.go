package engine

import (
	"github.com/declutterhq/declutter/pkg/errors"
	"github.com/declutterhq/declutter/pkg/scene"
)

// =============================================================================
// Strategy - Tagged Resolution Algorithm
// =============================================================================

// Strategy names a collision-resolution algorithm. Strategies are dispatched
// through a pure function table rather than an interface hierarchy: each is
// a stateless function over (layout, overlap pairs, options).
type Strategy string

// Resolution strategies.
const (
	StrategyForceDirected   Strategy = "force_directed"
	StrategyGridSnap        Strategy = "grid_snap"
	StrategySpiralPlacement Strategy = "spiral_placement"
	StrategyAdaptive        Strategy = "adaptive"
)

// ValidStrategies is the set of supported resolution strategies.
var ValidStrategies = map[Strategy]bool{
	StrategyForceDirected:   true,
	StrategyGridSnap:        true,
	StrategySpiralPlacement: true,
	StrategyAdaptive:        true,
}

// ParseStrategy validates a strategy string.
func ParseStrategy(s string) (Strategy, error) {
	st := Strategy(s)
	if !ValidStrategies[st] {
		return "", errors.New(errors.ErrCodeInvalidStrategy,
			"invalid strategy: %q (must be one of: force_directed, grid_snap, spiral_placement, adaptive)", s)
	}
	return st, nil
}

// resolveFunc mutates the layout to reduce the given overlaps and returns
// the number of nodes it moved. Implementations must preserve node count and
// identity and clamp final positions inside the canvas.
type resolveFunc func(l *scene.Layout, pairs []OverlapPair, opts *Options) int

// strategyTable maps each strategy to its implementation.
var strategyTable = map[Strategy]resolveFunc{
	StrategyForceDirected:   applyForceDirected,
	StrategyGridSnap:        applyGridSnap,
	StrategySpiralPlacement: applySpiralPlacement,
	StrategyAdaptive:        applyAdaptiveHybrid,
}

// apply dispatches a strategy over the layout.
func (s Strategy) apply(l *scene.Layout, pairs []OverlapPair, opts *Options) int {
	fn, ok := strategyTable[s]
	if !ok {
		fn = applyAdaptiveHybrid
	}
	return fn(l, pairs, opts)
}

// =============================================================================
// Strategy Selection
// =============================================================================

// SelectStrategy picks the resolution strategy for one iteration.
//
// With adaptive selection disabled the configured fixed strategy is always
// used. Otherwise the choice biases alignment-preserving strategies toward
// early iterations and simple layouts, and exhaustive-search strategies
// toward late iterations and complex layouts where local methods stall:
//
//   - simple complexity and ≤5 overlaps → grid_snap
//   - moderate complexity and iteration ≤5 → force_directed
//   - complex complexity or iteration >5 → spiral_placement
//   - otherwise → adaptive (hybrid pipeline)
//
// The selection is a pure function of its inputs.
func SelectStrategy(fixed Strategy, adaptive bool, complexity Complexity, overlapCount, iteration int) Strategy {
	if !adaptive {
		if fixed == "" {
			return StrategyAdaptive
		}
		return fixed
	}

	switch {
	case complexity == ComplexitySimple && overlapCount <= 5:
		return StrategyGridSnap
	case complexity == ComplexityModerate && iteration <= 5:
		return StrategyForceDirected
	case complexity == ComplexityComplex || iteration > 5:
		return StrategySpiralPlacement
	default:
		return StrategyAdaptive
	}
}
