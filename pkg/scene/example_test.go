package scene_test

import (
	"bytes"
	"fmt"

	"github.com/declutterhq/declutter/pkg/scene"
)

func ExampleWriteScene() {
	s := scene.Scene{
		DiagramType: scene.DiagramFlowchart,
		Nodes: []scene.Node{
			{ID: "start", X: 100, Y: 50, Width: 120, Height: 60},
			{ID: "end", X: 100, Y: 200, Width: 120, Height: 60},
		},
		Edges: []scene.Edge{{From: "start", To: "end"}},
	}

	var buf bytes.Buffer
	if err := scene.WriteScene(s, &buf); err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Println(buf.String())
	// Output:
	// {
	//   "diagram_type": "flowchart",
	//   "nodes": [
	//     {
	//       "id": "start",
	//       "x": 100,
	//       "y": 50,
	//       "width": 120,
	//       "height": 60
	//     },
	//     {
	//       "id": "end",
	//       "x": 100,
	//       "y": 200,
	//       "width": 120,
	//       "height": 60
	//     }
	//   ],
	//   "edges": [
	//     {
	//       "from": "start",
	//       "to": "end"
	//     }
	//   ]
	// }
}

func ExampleReadScene() {
	jsonData := `{
		"diagram_type": "mindmap",
		"nodes": [
			{"id": "root", "x": 960, "y": 540, "width": 120, "height": 60},
			{"id": "leaf", "x": 700, "y": 300, "width": 80, "height": 40}
		],
		"edges": [
			{"from": "root", "to": "leaf"}
		]
	}`

	s, err := scene.ReadScene(bytes.NewReader([]byte(jsonData)))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Printf("type: %s, nodes: %d, edges: %d\n", s.DiagramType, len(s.Nodes), len(s.Edges))
	// Output:
	// type: mindmap, nodes: 2, edges: 1
}
