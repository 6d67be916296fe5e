package engine

import (
	"math"

	"github.com/declutterhq/declutter/pkg/scene"
)

// =============================================================================
// Spatial Grid - Uniform Cell Index for Neighbor Queries
// =============================================================================

// cellKey addresses one cell of the uniform grid.
type cellKey struct {
	X, Y int
}

// spatialGrid is a uniform grid over node centers, built fresh for each
// detection call and discarded afterwards. Cells are sized to the typical
// node extent so that any two colliding nodes land within one 3×3
// neighborhood of each other.
type spatialGrid struct {
	cell       float64
	minX, minY float64
	cells      map[cellKey][]int // cell → node indices
}

// newSpatialGrid indexes the given nodes. Cell size is
// max(minCell, factor × mean(max(width, height))), recomputed per call, and
// never smaller than the largest overlap-detection radius (max extent plus
// separation). The floor makes the reachability contract unconditional: any
// two colliding nodes are always within one cell index of each other on both
// axes, so the 3×3 neighborhood query cannot miss a pair.
func newSpatialGrid(nodes []scene.Node, separation, minCell, factor float64) *spatialGrid {
	g := &spatialGrid{
		cell:  minCell,
		cells: make(map[cellKey][]int, len(nodes)),
	}
	if len(nodes) == 0 {
		return g
	}

	var extentSum, maxExtent float64
	minX, minY := math.Inf(1), math.Inf(1)
	for i := range nodes {
		ext := nodes[i].Rect().Size.MaxExtent()
		extentSum += ext
		maxExtent = math.Max(maxExtent, ext)
		minX = math.Min(minX, nodes[i].X)
		minY = math.Min(minY, nodes[i].Y)
	}
	g.cell = math.Max(minCell, factor*extentSum/float64(len(nodes)))
	g.cell = math.Max(g.cell, maxExtent+separation)
	g.minX, g.minY = minX, minY

	for i := range nodes {
		k := g.keyFor(nodes[i].X, nodes[i].Y)
		g.cells[k] = append(g.cells[k], i)
	}
	return g
}

// keyFor hashes a position into its cell.
func (g *spatialGrid) keyFor(x, y float64) cellKey {
	return cellKey{
		X: int(math.Floor((x - g.minX) / g.cell)),
		Y: int(math.Floor((y - g.minY) / g.cell)),
	}
}

// neighbors returns the indices of all nodes in the 3×3 cell neighborhood of
// node i, excluding i itself. Order follows cell scan order and is
// deterministic for a given node set.
func (g *spatialGrid) neighbors(i int, nodes []scene.Node) []int {
	center := g.keyFor(nodes[i].X, nodes[i].Y)

	var result []int
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			for _, j := range g.cells[cellKey{X: center.X + dx, Y: center.Y + dy}] {
				if j != i {
					result = append(result, j)
				}
			}
		}
	}
	return result
}
