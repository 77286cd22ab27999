package flow_test

import (
	"fmt"

	"github.com/saxonthune/flowgrid/pkg/flow"
	"github.com/saxonthune/flowgrid/pkg/geom"
)

func ExampleCompute() {
	nodes := []flow.Node{
		{ID: "ingest", Rect: geom.Rect{X: 0, Y: 0, Width: 200, Height: 100}},
		{ID: "transform", Rect: geom.Rect{X: 0, Y: 100, Width: 200, Height: 100}},
		{ID: "publish", Rect: geom.Rect{X: 0, Y: 200, Width: 200, Height: 100}},
	}
	edges := []flow.Edge{
		{SourceID: "ingest", TargetID: "transform"},
		{SourceID: "transform", TargetID: "publish"},
	}

	result := flow.Compute(nodes, edges, flow.Options{Direction: flow.DirectionTB})

	fmt.Println("ingest layer:", result.Layers["ingest"])
	fmt.Println("transform layer:", result.Layers["transform"])
	fmt.Println("publish layer:", result.Layers["publish"])
	fmt.Println("layer 0:", result.Order[0])
	// Output:
	// ingest layer: 0
	// transform layer: 1
	// publish layer: 2
	// layer 0: [ingest]
}

func ExampleAssignLayers() {
	// A cycle still terminates and yields a layer for every node.
	nodes := []flow.Node{
		{ID: "a", Rect: geom.Rect{Width: 100, Height: 50}},
		{ID: "b", Rect: geom.Rect{Width: 100, Height: 50}},
		{ID: "c", Rect: geom.Rect{Width: 100, Height: 50}},
	}
	edges := []flow.Edge{
		{SourceID: "a", TargetID: "b"},
		{SourceID: "b", TargetID: "c"},
		{SourceID: "c", TargetID: "a"},
	}

	layers := flow.AssignLayers(nodes, edges)
	fmt.Println("assigned:", len(layers))
	// Output:
	// assigned: 3
}
