// Package engine implements the collision-free diagram layout engine: it
// takes a scene of sized nodes and directed edges and iterates
// detect→resolve→assess rounds until no bounding boxes overlap, the quality
// bar is met, or the iteration budget runs out.
//
// # Overview
//
// The engine is deliberately boring at the edges and interesting in the
// middle. Its input is a [scene.Scene] whose nodes already carry sizes and
// base positions (from an upstream diagram-type layout provider); its output
// is a [Result] with resolved positions, per-iteration telemetry, and a
// weighted quality assessment. Everything in between is geometry:
//
//   - Overlap detection via brute force or a uniform spatial grid, chosen by
//     node count and the configured [DetectionMode].
//   - A complexity analyzer scoring node pressure, edge density, overlap
//     severity, spread, and size variance into a [Complexity] band.
//   - Four interchangeable resolution strategies (force-directed, grid-snap,
//     spiral placement, and an adaptive hybrid pipeline), dispatched through
//     a pure function table.
//   - An adaptive selector that biases alignment-preserving strategies early
//     and exhaustive search late, when local methods have stalled.
//   - A quality assessor weighting overlap freedom, space efficiency, visual
//     balance, and readability 50/20/15/15.
//
// # Basic Usage
//
//	eng, err := engine.New(engine.NewOptions())
//	if err != nil {
//	    return err
//	}
//	result, err := eng.Resolve(ctx, &myScene)
//	if err != nil {
//	    return err // no usable base layout - the only fatal case
//	}
//	for _, n := range result.Layout.Nodes {
//	    // n.X, n.Y are collision-free
//	}
//
// Callers must inspect [Result.Assessment] to learn whether zero overlap was
// actually achieved: an exhausted iteration budget still returns
// Success=true with the residual defects listed as improvements, never an
// error.
//
// # Concurrency
//
// A Resolve call is a pure synchronous computation owning its layout,
// spatial index, and iteration log exclusively. Runs over independent
// scenes are embarrassingly parallel; no coordination is required.
package engine
