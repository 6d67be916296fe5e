package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/declutterhq/declutter/pkg/errors"
	"github.com/declutterhq/declutter/pkg/observability"
	"github.com/declutterhq/declutter/pkg/scene"
)

// Progress stage names reported through Options.Progress.
const (
	StageInit      = "init"
	StageResolving = "resolving"
	StageDone      = "done"
)

// =============================================================================
// Results
// =============================================================================

// IterationResult logs one detect→resolve→assess round. The iteration log is
// append-only; entries are never mutated after creation.
type IterationResult struct {
	Iteration int           `json:"iteration"`
	Overlaps  int           `json:"overlaps"`
	Resolved  int           `json:"resolved"`
	Strategy  Strategy      `json:"strategy"`
	Quality   float64       `json:"quality"`
	Duration  time.Duration `json:"duration"`
	Action    string        `json:"action"`
}

// Metrics summarizes a finished run.
type Metrics struct {
	TotalOverlaps     int           `json:"total_overlaps"`
	OverlapPercentage float64       `json:"overlap_percentage"`
	ResolutionTime    time.Duration `json:"resolution_time"`
	IterationsUsed    int           `json:"iterations_used"`
	QualityScore      float64       `json:"quality_score"`
}

// Result is the output contract of a layout run.
//
// Success is false only when no usable base layout could be produced; every
// other imperfection - including layouts that still overlap after the
// iteration budget - is reported as data in Assessment, never as an error.
type Result struct {
	RunID      string            `json:"run_id"`
	Success    bool              `json:"success"`
	Layout     *scene.Layout     `json:"layout"`
	Metrics    Metrics           `json:"metrics"`
	Iterations []IterationResult `json:"iterations,omitempty"`
	Assessment QualityAssessment `json:"quality_assessment"`
}

// =============================================================================
// Engine - Iteration Controller
// =============================================================================

// Engine resolves node collisions for diagram scenes.
//
// An Engine is stateless apart from its options and logger: each Resolve
// call owns its layout, spatial index, and iteration log exclusively, so
// independent runs may execute in parallel with no coordination.
type Engine struct {
	opts Options
	log  *log.Logger
}

// New creates an engine with validated options.
func New(opts Options) (*Engine, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	return &Engine{opts: opts, log: opts.Logger}, nil
}

// Options returns a copy of the engine's effective (defaulted) options.
func (e *Engine) Options() Options { return e.opts }

// Resolve runs the detect→resolve→assess loop over the scene until the
// layout converges or the iteration budget is exhausted.
//
// The run is a pure synchronous computation: no I/O, no suspension points,
// and no polling for cancellation - callers wanting a deadline should wrap
// the call and discard the result. The ctx parameter is forwarded to
// observability hooks only.
//
// The returned error is non-nil only for the single fatal case (no usable
// base layout); the Result then carries Success=false and the reason in
// Assessment.Improvements. Budget exhaustion is not an error: the best
// achieved layout is returned with Success=true and the remaining defects
// listed as improvements.
func (e *Engine) Resolve(ctx context.Context, s *scene.Scene) (*Result, error) {
	start := time.Now()
	result := &Result{RunID: uuid.NewString()}

	observability.Engine().OnResolveStart(ctx, s.DiagramType, len(s.Nodes))
	e.progress(StageInit, 0, "building base layout")
	e.log.Debug("starting layout run",
		"run_id", result.RunID,
		"diagram_type", s.DiagramType,
		"nodes", len(s.Nodes),
		"edges", len(s.Edges))

	working, err := e.opts.BaseLayout(s)
	if err != nil {
		wrapped := errors.Wrap(errors.ErrCodeLayoutGeneration, err, "no usable base layout")
		result.Assessment.Improvements = []string{errors.UserMessage(err)}
		e.progress(StageDone, 100, "failed")
		observability.Engine().OnResolveComplete(ctx, s.DiagramType, time.Since(start), wrapped)
		e.log.Error("layout run failed", "run_id", result.RunID, "err", wrapped)
		return result, wrapped
	}

	working, iterations := e.iterate(ctx, working)

	finalPairs := detectOverlaps(working, &e.opts)
	assessment := assessQuality(working, len(finalPairs), &e.opts)

	result.Success = true
	result.Layout = working
	result.Iterations = iterations
	result.Assessment = assessment
	result.Metrics = Metrics{
		TotalOverlaps:     len(finalPairs),
		OverlapPercentage: overlapPercentage(working.NodeCount(), len(finalPairs)),
		ResolutionTime:    time.Since(start),
		IterationsUsed:    len(iterations),
		QualityScore:      assessment.OverallScore,
	}

	e.progress(StageDone, 100, "finished")
	observability.Engine().OnResolveComplete(ctx, s.DiagramType, result.Metrics.ResolutionTime, nil)
	e.log.Info("layout run finished",
		"run_id", result.RunID,
		"iterations", result.Metrics.IterationsUsed,
		"overlaps", result.Metrics.TotalOverlaps,
		"quality", fmt.Sprintf("%.1f", result.Metrics.QualityScore),
		"duration", result.Metrics.ResolutionTime)

	return result, nil
}

// iterate runs the resolution loop and returns the final layout snapshot
// plus the per-iteration log. A layout that is already clean performs zero
// resolution iterations and comes back positionally identical.
func (e *Engine) iterate(ctx context.Context, working *scene.Layout) (*scene.Layout, []IterationResult) {
	var iterations []IterationResult

	for it := 1; it <= e.opts.MaxIterations; it++ {
		iterStart := time.Now()

		pairs := detectOverlaps(working, &e.opts)
		if len(pairs) == 0 {
			// Converged: nothing to resolve.
			break
		}

		report := analyzeComplexity(working, len(pairs))
		strategy := SelectStrategy(e.opts.Strategy, e.opts.AdaptiveStrategy, report.Category, len(pairs), it)

		// Each iteration resolves against a fresh snapshot, keeping the
		// previous state intact for diffing and the caller's input untouched.
		next := working.Clone()
		moved := strategy.apply(next, pairs, &e.opts)
		working = next

		remaining := detectOverlaps(working, &e.opts)
		assessment := assessQuality(working, len(remaining), &e.opts)

		resolved := len(pairs) - len(remaining)
		if resolved < 0 {
			resolved = 0
		}
		action := fmt.Sprintf("applied %s to %d overlap(s), moved %d node(s), %d remain",
			strategy, len(pairs), moved, len(remaining))

		iterations = append(iterations, IterationResult{
			Iteration: it,
			Overlaps:  len(pairs),
			Resolved:  resolved,
			Strategy:  strategy,
			Quality:   assessment.OverallScore,
			Duration:  time.Since(iterStart),
			Action:    action,
		})

		e.progress(StageResolving, 100*float64(it)/float64(e.opts.MaxIterations), action)
		observability.Engine().OnIteration(ctx, it, len(remaining), assessment.OverallScore)
		e.log.Debug("iteration complete",
			"iteration", it,
			"complexity", report.Category,
			"strategy", strategy,
			"overlaps", len(pairs),
			"resolved", resolved,
			"quality", fmt.Sprintf("%.1f", assessment.OverallScore),
			"duration", time.Since(iterStart))

		if len(remaining) == 0 && assessment.OverallScore >= e.opts.QualityThreshold {
			// Converged: clean and above the quality bar.
			break
		}
	}

	return working, iterations
}

// progress reports a one-way progress event if a callback is configured.
func (e *Engine) progress(stage string, percent float64, action string) {
	if e.opts.Progress != nil {
		e.opts.Progress(stage, percent, action)
	}
}

// overlapPercentage is the share of colliding pairs among all possible pairs.
func overlapPercentage(nodeCount, overlapCount int) float64 {
	pairs := possiblePairs(nodeCount)
	if pairs == 0 {
		return 0
	}
	return 100 * float64(overlapCount) / float64(pairs)
}
