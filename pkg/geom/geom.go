// Package geom provides the axis-aligned geometry primitives used by the
// layout engine: points, sizes, center-based rectangles, and overlap-area
// computation.
//
// All rectangles are center-based, matching how diagram nodes carry their
// position: a node's (x, y) is the center of its bounding box, not a corner.
// Overlap checks treat degenerate boxes (non-positive width or height) as
// never overlapping, so malformed node dimensions cannot produce spurious
// collisions or panics downstream.
package geom

import "math"

// Point is a 2D coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DistanceTo returns the Euclidean distance between p and q.
func (p Point) DistanceTo(q Point) float64 {
	dx := q.X - p.X
	dy := q.Y - p.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Size is the width and height of a bounding box.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Area returns width × height. Degenerate sizes yield 0.
func (s Size) Area() float64 {
	if s.Degenerate() {
		return 0
	}
	return s.Width * s.Height
}

// MaxExtent returns the larger of width and height.
func (s Size) MaxExtent() float64 {
	return math.Max(s.Width, s.Height)
}

// Degenerate reports whether the size cannot describe a real box.
func (s Size) Degenerate() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Rect is an axis-aligned rectangle identified by its center and size.
type Rect struct {
	Center Point `json:"center"`
	Size   Size  `json:"size"`
}

// Left returns the x coordinate of the rectangle's left edge.
func (r Rect) Left() float64 { return r.Center.X - r.Size.Width/2 }

// Right returns the x coordinate of the rectangle's right edge.
func (r Rect) Right() float64 { return r.Center.X + r.Size.Width/2 }

// Top returns the y coordinate of the rectangle's top edge (minimum y).
func (r Rect) Top() float64 { return r.Center.Y - r.Size.Height/2 }

// Bottom returns the y coordinate of the rectangle's bottom edge (maximum y).
func (r Rect) Bottom() float64 { return r.Center.Y + r.Size.Height/2 }

// Expand returns a copy of r grown by margin on every side.
func (r Rect) Expand(margin float64) Rect {
	return Rect{
		Center: r.Center,
		Size:   Size{Width: r.Size.Width + 2*margin, Height: r.Size.Height + 2*margin},
	}
}

// OverlapArea returns the overlap area between two rectangles whose gap must
// be at least separation on both axes to count as clear. The penetration on
// each axis is (half-extent sum + separation) − center distance; if either
// axis is non-positive the boxes are clear and the result is 0, otherwise
// the result is the product of the two penetrations.
//
// The function is symmetric in a and b. Degenerate boxes never overlap.
func OverlapArea(a, b Rect, separation float64) float64 {
	if a.Size.Degenerate() || b.Size.Degenerate() {
		return 0
	}

	dx := math.Abs(a.Center.X - b.Center.X)
	dy := math.Abs(a.Center.Y - b.Center.Y)

	overlapX := (a.Size.Width+b.Size.Width)/2 + separation - dx
	overlapY := (a.Size.Height+b.Size.Height)/2 + separation - dy

	if overlapX <= 0 || overlapY <= 0 {
		return 0
	}
	return overlapX * overlapY
}

// Overlaps reports whether the two rectangles collide under the given
// separation requirement.
func Overlaps(a, b Rect, separation float64) bool {
	return OverlapArea(a, b, separation) > 0
}

// Bounds returns the smallest rectangle covering all given rectangles.
// The second return value is false when rects is empty.
func Bounds(rects []Rect) (Rect, bool) {
	if len(rects) == 0 {
		return Rect{}, false
	}

	minX, minY := rects[0].Left(), rects[0].Top()
	maxX, maxY := rects[0].Right(), rects[0].Bottom()
	for _, r := range rects[1:] {
		minX = math.Min(minX, r.Left())
		minY = math.Min(minY, r.Top())
		maxX = math.Max(maxX, r.Right())
		maxY = math.Max(maxY, r.Bottom())
	}

	return Rect{
		Center: Point{X: (minX + maxX) / 2, Y: (minY + maxY) / 2},
		Size:   Size{Width: maxX - minX, Height: maxY - minY},
	}, true
}

// Clamp returns p constrained to the inclusive range [min, max] on both axes.
func Clamp(p Point, min, max Point) Point {
	return Point{
		X: math.Min(math.Max(p.X, min.X), max.X),
		Y: math.Min(math.Max(p.Y, min.Y), max.Y),
	}
}

// Centroid returns the arithmetic mean of the given points.
// The second return value is false when points is empty.
func Centroid(points []Point) (Point, bool) {
	if len(points) == 0 {
		return Point{}, false
	}
	var sx, sy float64
	for _, p := range points {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(points))
	return Point{X: sx / n, Y: sy / n}, true
}
