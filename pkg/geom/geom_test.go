package geom

import (
	"math"
	"testing"
)

func rect(x, y, w, h float64) Rect {
	return Rect{Center: Point{X: x, Y: y}, Size: Size{Width: w, Height: h}}
}

func TestOverlapArea(t *testing.T) {
	tests := []struct {
		name       string
		a, b       Rect
		separation float64
		want       float64
	}{
		{
			name: "Coincident",
			a:    rect(0, 0, 100, 60),
			b:    rect(0, 0, 100, 60),
			want: 100 * 60,
		},
		{
			name: "PartialOverlap",
			a:    rect(0, 0, 100, 60),
			b:    rect(80, 40, 100, 60),
			want: 20 * 20,
		},
		{
			name: "TouchingEdges",
			a:    rect(0, 0, 100, 60),
			b:    rect(100, 0, 100, 60),
			want: 0,
		},
		{
			name: "FarApart",
			a:    rect(0, 0, 100, 60),
			b:    rect(500, 500, 100, 60),
			want: 0,
		},
		{
			name:       "SeparationTurnsGapIntoOverlap",
			a:          rect(0, 0, 100, 60),
			b:          rect(110, 0, 100, 60),
			separation: 20,
			want:       10 * 80,
		},
		{
			name:       "SeparationRespected",
			a:          rect(0, 0, 100, 60),
			b:          rect(130, 0, 100, 60),
			separation: 20,
			want:       0,
		},
		{
			name: "DegenerateWidth",
			a:    rect(0, 0, 0, 60),
			b:    rect(0, 0, 100, 60),
			want: 0,
		},
		{
			name: "NegativeHeight",
			a:    rect(0, 0, 100, -5),
			b:    rect(0, 0, 100, 60),
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OverlapArea(tt.a, tt.b, tt.separation)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("OverlapArea = %v, want %v", got, tt.want)
			}
			// Symmetry
			if sym := OverlapArea(tt.b, tt.a, tt.separation); math.Abs(sym-got) > 1e-9 {
				t.Errorf("OverlapArea not symmetric: %v vs %v", got, sym)
			}
			if want := tt.want > 0; Overlaps(tt.a, tt.b, tt.separation) != want {
				t.Errorf("Overlaps = %v, want %v", !want, want)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := rect(50, 30, 100, 60)
	if r.Left() != 0 || r.Right() != 100 {
		t.Errorf("horizontal edges = [%v, %v], want [0, 100]", r.Left(), r.Right())
	}
	if r.Top() != 0 || r.Bottom() != 60 {
		t.Errorf("vertical edges = [%v, %v], want [0, 60]", r.Top(), r.Bottom())
	}
}

func TestRectExpand(t *testing.T) {
	r := rect(0, 0, 100, 60).Expand(10)
	if r.Size.Width != 120 || r.Size.Height != 80 {
		t.Errorf("expanded size = %+v, want 120×80", r.Size)
	}
	if r.Center != (Point{}) {
		t.Errorf("expand moved center to %+v", r.Center)
	}
}

func TestBounds(t *testing.T) {
	tests := []struct {
		name  string
		rects []Rect
		want  Rect
		ok    bool
	}{
		{
			name: "Empty",
			ok:   false,
		},
		{
			name:  "Single",
			rects: []Rect{rect(50, 30, 100, 60)},
			want:  rect(50, 30, 100, 60),
			ok:    true,
		},
		{
			name: "Two",
			rects: []Rect{
				rect(50, 30, 100, 60),
				rect(250, 30, 100, 60),
			},
			want: rect(150, 30, 300, 60),
			ok:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Bounds(tt.rects)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("Bounds = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	min := Point{X: 0, Y: 0}
	max := Point{X: 100, Y: 50}

	tests := []struct {
		name string
		p    Point
		want Point
	}{
		{"Inside", Point{X: 30, Y: 20}, Point{X: 30, Y: 20}},
		{"BelowMin", Point{X: -10, Y: -10}, Point{X: 0, Y: 0}},
		{"AboveMax", Point{X: 200, Y: 80}, Point{X: 100, Y: 50}},
		{"MixedAxes", Point{X: -5, Y: 80}, Point{X: 0, Y: 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.p, min, max); got != tt.want {
				t.Errorf("Clamp = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCentroid(t *testing.T) {
	if _, ok := Centroid(nil); ok {
		t.Error("Centroid of empty slice should report ok=false")
	}

	got, ok := Centroid([]Point{{X: 0, Y: 0}, {X: 100, Y: 50}})
	if !ok {
		t.Fatal("Centroid reported ok=false")
	}
	if got != (Point{X: 50, Y: 25}) {
		t.Errorf("Centroid = %+v, want {50 25}", got)
	}
}

func TestDistanceTo(t *testing.T) {
	p := Point{X: 0, Y: 0}
	q := Point{X: 3, Y: 4}
	if got := p.DistanceTo(q); got != 5 {
		t.Errorf("DistanceTo = %v, want 5", got)
	}
	if got := p.DistanceTo(p); got != 0 {
		t.Errorf("distance to self = %v, want 0", got)
	}
}

func TestSize(t *testing.T) {
	if got := (Size{Width: 10, Height: 4}).Area(); got != 40 {
		t.Errorf("Area = %v, want 40", got)
	}
	if got := (Size{Width: -10, Height: 4}).Area(); got != 0 {
		t.Errorf("degenerate Area = %v, want 0", got)
	}
	if got := (Size{Width: 10, Height: 40}).MaxExtent(); got != 40 {
		t.Errorf("MaxExtent = %v, want 40", got)
	}
	if !(Size{Width: 0, Height: 4}).Degenerate() {
		t.Error("zero width should be degenerate")
	}
	if (Size{Width: 10, Height: 4}).Degenerate() {
		t.Error("positive size should not be degenerate")
	}
}
