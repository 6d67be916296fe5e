package engine

import (
	"testing"

	"github.com/declutterhq/declutter/pkg/scene"
)

func TestNewSpatialGridCellSize(t *testing.T) {
	tests := []struct {
		name       string
		nodes      []scene.Node
		separation float64
		wantCell   float64
	}{
		{
			name: "MinimumFloor",
			nodes: []scene.Node{
				node("a", 0, 0, 10, 10),
				node("b", 100, 0, 10, 10),
			},
			wantCell: 50, // 1.5 × mean extent (15) is below the floor
		},
		{
			name: "MeanExtentScaled",
			nodes: []scene.Node{
				node("a", 0, 0, 100, 40),
				node("b", 400, 0, 100, 40),
			},
			wantCell: 150, // 1.5 × 100
		},
		{
			name: "LargestNodeDominates",
			nodes: []scene.Node{
				node("a", 0, 0, 10, 10),
				node("b", 100, 0, 10, 10),
				node("c", 500, 0, 300, 10),
			},
			separation: 20,
			wantCell:   320, // max extent (300) + separation beats 1.5 × mean (160)
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newSpatialGrid(tt.nodes, tt.separation, DefaultMinCellSize, DefaultCellSizeFactor)
			if g.cell != tt.wantCell {
				t.Errorf("cell = %v, want %v", g.cell, tt.wantCell)
			}
		})
	}
}

func TestSpatialGridNeighbors(t *testing.T) {
	nodes := []scene.Node{
		node("a", 0, 0, 10, 10),
		node("b", 40, 0, 10, 10),  // same or adjacent cell as a
		node("c", 500, 0, 10, 10), // far away
	}
	g := newSpatialGrid(nodes, 0, DefaultMinCellSize, DefaultCellSizeFactor)

	got := g.neighbors(0, nodes)
	foundB, foundC := false, false
	for _, j := range got {
		switch j {
		case 0:
			t.Error("neighbors must not include the query node itself")
		case 1:
			foundB = true
		case 2:
			foundC = true
		}
	}
	if !foundB {
		t.Error("nearby node b missing from the 3×3 neighborhood")
	}
	if foundC {
		t.Error("distant node c should be outside the 3×3 neighborhood")
	}
}

func TestSpatialGridEmpty(t *testing.T) {
	g := newSpatialGrid(nil, 0, DefaultMinCellSize, DefaultCellSizeFactor)
	if g.cell != DefaultMinCellSize {
		t.Errorf("empty grid cell = %v, want %v", g.cell, DefaultMinCellSize)
	}
	if len(g.cells) != 0 {
		t.Errorf("empty grid has %d occupied cells", len(g.cells))
	}
}

// Colliding nodes must always land within one cell of each other, even when
// node sizes vary wildly - the cell floor at max extent plus separation
// guarantees it.
func TestSpatialGridReachability(t *testing.T) {
	nodes := []scene.Node{
		node("small", 0, 0, 10, 10),
		node("large", 140, 0, 280, 280), // deeply overlaps the small node
	}
	g := newSpatialGrid(nodes, 20, DefaultMinCellSize, DefaultCellSizeFactor)

	found := false
	for _, j := range g.neighbors(0, nodes) {
		if j == 1 {
			found = true
		}
	}
	if !found {
		t.Error("colliding large node not reachable from the small node's neighborhood")
	}
}
