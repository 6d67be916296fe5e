// Package scene defines the data model shared between the layout engine and
// its collaborators: diagram scenes (typed nodes, directed edges, a
// diagram-type hint) and the mutable Layout working copy the engine resolves.
//
// # Overview
//
// Upstream, a classifier turns transcribed speech or text into a Scene: nodes
// with display labels and pre-assigned sizes, edges describing the diagram's
// structure, and a type hint such as "flowchart" or "mindmap". Downstream, a
// renderer consumes the resolved node geometry. This package is the contract
// between the two; it knows nothing about collision resolution itself.
//
// # Basic Usage
//
// Read a scene from JSON, validate it, and derive a working layout:
//
//	s, err := scene.ReadSceneFile("scene.json")
//	if err != nil {
//	    return err
//	}
//	l := scene.NewLayout(&s)
//
// NewLayout deep-copies the nodes, so the caller's Scene is never mutated by
// a layout run. Layout.Clone produces iteration snapshots with the same
// guarantee.
//
// # Validation
//
// Scene.Validate enforces the two identity invariants the engine relies on:
// node IDs are non-empty and unique, and edges reference existing nodes.
// Node dimensions are intentionally unchecked - the geometry layer treats
// degenerate boxes as never overlapping, so malformed sizes degrade quietly
// instead of failing the run.
package scene
