package scene

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/declutterhq/declutter/pkg/errors"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		scene    Scene
		wantCode errors.Code
	}{
		{
			name:  "Empty",
			scene: Scene{},
		},
		{
			name: "Valid",
			scene: Scene{
				DiagramType: DiagramFlowchart,
				Nodes: []Node{
					{ID: "a", X: 0, Y: 0, Width: 100, Height: 60},
					{ID: "b", X: 200, Y: 0, Width: 100, Height: 60},
				},
				Edges: []Edge{{From: "a", To: "b"}},
			},
		},
		{
			name: "EmptyNodeID",
			scene: Scene{
				Nodes: []Node{{ID: ""}},
			},
			wantCode: errors.ErrCodeInvalidScene,
		},
		{
			name: "DuplicateNodeID",
			scene: Scene{
				Nodes: []Node{{ID: "a"}, {ID: "a"}},
			},
			wantCode: errors.ErrCodeDuplicateNode,
		},
		{
			name: "UnknownEdgeSource",
			scene: Scene{
				Nodes: []Node{{ID: "a"}},
				Edges: []Edge{{From: "ghost", To: "a"}},
			},
			wantCode: errors.ErrCodeUnknownEndpoint,
		},
		{
			name: "UnknownEdgeTarget",
			scene: Scene{
				Nodes: []Node{{ID: "a"}},
				Edges: []Edge{{From: "a", To: "ghost"}},
			},
			wantCode: errors.ErrCodeUnknownEndpoint,
		},
		{
			name: "DegenerateDimensionsAllowed",
			scene: Scene{
				Nodes: []Node{{ID: "a", Width: 0, Height: -3}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.scene.Validate()
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate: expected error, got nil")
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), tt.wantCode)
			}
		})
	}
}

func TestSceneRoundTrip(t *testing.T) {
	s := Scene{
		DiagramType: DiagramMindmap,
		Nodes: []Node{
			{ID: "root", Label: "Root", X: 960, Y: 540, Width: 120, Height: 60, Meta: map[string]any{"depth": "0"}},
			{ID: "leaf", X: 700, Y: 300, Width: 80, Height: 40},
		},
		Edges: []Edge{{From: "root", To: "leaf", Label: "child"}},
	}

	data, err := MarshalScene(s)
	if err != nil {
		t.Fatalf("MarshalScene: %v", err)
	}

	got, err := UnmarshalScene(data)
	if err != nil {
		t.Fatalf("UnmarshalScene: %v", err)
	}

	if got.DiagramType != s.DiagramType {
		t.Errorf("DiagramType = %q, want %q", got.DiagramType, s.DiagramType)
	}
	if len(got.Nodes) != 2 || len(got.Edges) != 1 {
		t.Fatalf("got %d nodes, %d edges", len(got.Nodes), len(got.Edges))
	}
	if got.Nodes[0].ID != "root" || got.Nodes[0].X != 960 || got.Nodes[0].Meta["depth"] != "0" {
		t.Errorf("node 0 = %+v", got.Nodes[0])
	}
	if got.Edges[0].Label != "child" {
		t.Errorf("edge label = %q, want child", got.Edges[0].Label)
	}
}

func TestUnmarshalSceneRejectsInvalid(t *testing.T) {
	_, err := UnmarshalScene([]byte(`{"nodes": [{"id": "a"}, {"id": "a"}]}`))
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.Is(err, errors.ErrCodeDuplicateNode) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeDuplicateNode)
	}

	if _, err := UnmarshalScene([]byte(`not json`)); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestSceneFileIO(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.json")

	s := Scene{Nodes: []Node{{ID: "a", X: 10, Y: 20, Width: 100, Height: 60}}}
	if err := WriteSceneFile(s, path); err != nil {
		t.Fatalf("WriteSceneFile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading written file: %v", err)
	}
	if !strings.Contains(string(data), `"id": "a"`) {
		t.Errorf("file content missing node: %s", data)
	}

	got, err := ReadSceneFile(path)
	if err != nil {
		t.Fatalf("ReadSceneFile: %v", err)
	}
	if len(got.Nodes) != 1 || got.Nodes[0].X != 10 {
		t.Errorf("round-trip scene = %+v", got)
	}

	if _, err := ReadSceneFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDisplayLabel(t *testing.T) {
	n := Node{ID: "a"}
	if got := n.DisplayLabel(); got != "a" {
		t.Errorf("DisplayLabel = %q, want id fallback", got)
	}
	n.Label = "Alpha"
	if got := n.DisplayLabel(); got != "Alpha" {
		t.Errorf("DisplayLabel = %q, want Alpha", got)
	}
}

func TestNewLayoutDeepCopies(t *testing.T) {
	s := Scene{
		Nodes: []Node{{ID: "a", X: 1, Y: 2, Width: 10, Height: 10, Meta: map[string]any{"k": "v"}}},
	}
	l := NewLayout(&s)

	l.Nodes[0].X = 999
	l.Nodes[0].Meta["k"] = "changed"

	if s.Nodes[0].X != 1 {
		t.Error("layout mutation leaked into scene position")
	}
	if s.Nodes[0].Meta["k"] != "v" {
		t.Error("layout mutation leaked into scene metadata")
	}
}

func TestLayoutClone(t *testing.T) {
	s := Scene{
		Nodes: []Node{
			{ID: "a", X: 0, Y: 0, Width: 10, Height: 10},
			{ID: "b", X: 5, Y: 5, Width: 10, Height: 10},
		},
		Edges: []Edge{{From: "a", To: "b"}},
	}
	l := NewLayout(&s)
	c := l.Clone()

	c.Nodes[0].X = 42
	if l.Nodes[0].X != 0 {
		t.Error("clone mutation leaked into original")
	}

	if i, ok := c.NodeIndex("b"); !ok || i != 1 {
		t.Errorf("clone NodeIndex(b) = %d, %v", i, ok)
	}
}

func TestLayoutAdjacency(t *testing.T) {
	s := Scene{
		Nodes: []Node{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		Edges: []Edge{{From: "a", To: "b"}},
	}
	adj := NewLayout(&s).Adjacency()

	if !adj[[2]int{0, 1}] || !adj[[2]int{1, 0}] {
		t.Error("adjacency should hold both directions of a→b")
	}
	if adj[[2]int{0, 2}] {
		t.Error("unconnected pair reported adjacent")
	}
}

func TestLayoutBoundsAndCentroid(t *testing.T) {
	s := Scene{
		Nodes: []Node{
			{ID: "a", X: 50, Y: 30, Width: 100, Height: 60},
			{ID: "b", X: 250, Y: 30, Width: 100, Height: 60},
		},
	}
	l := NewLayout(&s)

	bounds, ok := l.Bounds()
	if !ok {
		t.Fatal("Bounds reported ok=false")
	}
	if bounds.Size.Width != 300 || bounds.Size.Height != 60 {
		t.Errorf("bounds size = %+v, want 300×60", bounds.Size)
	}

	centroid, ok := l.Centroid()
	if !ok {
		t.Fatal("Centroid reported ok=false")
	}
	if centroid.X != 150 || centroid.Y != 30 {
		t.Errorf("centroid = %+v, want {150 30}", centroid)
	}

	empty := NewLayout(&Scene{})
	if _, ok := empty.Bounds(); ok {
		t.Error("empty layout should have no bounds")
	}
	if _, ok := empty.Centroid(); ok {
		t.Error("empty layout should have no centroid")
	}
}
