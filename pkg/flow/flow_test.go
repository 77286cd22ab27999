package flow

import (
	"math"
	"testing"

	"github.com/saxonthune/flowgrid/pkg/geom"
)

// center returns the center of the node's rectangle placed at the computed
// position.
func center(r Result, n Node) geom.Point {
	p := r.Positions[n.ID]
	return geom.Point{X: p.X + n.Rect.Width/2, Y: p.Y + n.Rect.Height/2}
}

func inputCentroid(nodes []Node) geom.Point {
	var x, y float64
	for _, n := range nodes {
		c := n.Rect.Center()
		x += c.X
		y += c.Y
	}
	count := float64(len(nodes))
	return geom.Point{X: x / count, Y: y / count}
}

func outputCentroid(r Result, nodes []Node) geom.Point {
	var x, y float64
	for _, n := range nodes {
		c := center(r, n)
		x += c.X
		y += c.Y
	}
	count := float64(len(nodes))
	return geom.Point{X: x / count, Y: y / count}
}

func TestCompute_ChainTB(t *testing.T) {
	// Concrete scenario: A(0,0), B(0,100), C(0,200), each 200x100,
	// edges A→B and B→C, direction TB.
	nodes := []Node{
		{ID: "A", Rect: geom.Rect{X: 0, Y: 0, Width: 200, Height: 100}},
		{ID: "B", Rect: geom.Rect{X: 0, Y: 100, Width: 200, Height: 100}},
		{ID: "C", Rect: geom.Rect{X: 0, Y: 200, Width: 200, Height: 100}},
	}
	edges := []Edge{{SourceID: "A", TargetID: "B"}, {SourceID: "B", TargetID: "C"}}

	r := Compute(nodes, edges, Options{Direction: DirectionTB})

	want := map[string]int{"A": 0, "B": 1, "C": 2}
	for id, l := range want {
		if r.Layers[id] != l {
			t.Errorf("layer[%s] = %d, want %d", id, r.Layers[id], l)
		}
	}
	if !(r.Positions["A"].Y < r.Positions["B"].Y && r.Positions["B"].Y < r.Positions["C"].Y) {
		t.Errorf("TB ordering violated: y(A)=%v y(B)=%v y(C)=%v",
			r.Positions["A"].Y, r.Positions["B"].Y, r.Positions["C"].Y)
	}
}

func TestCompute_ConvergenceTB(t *testing.T) {
	// Concrete scenario: A→C, B→C places A and B on the same row.
	nodes := []Node{
		{ID: "A", Rect: geom.Rect{X: 0, Y: 0, Width: 200, Height: 100}},
		{ID: "B", Rect: geom.Rect{X: 300, Y: 40, Width: 200, Height: 100}},
		{ID: "C", Rect: geom.Rect{X: 150, Y: 300, Width: 200, Height: 100}},
	}
	edges := []Edge{{SourceID: "A", TargetID: "C"}, {SourceID: "B", TargetID: "C"}}

	r := Compute(nodes, edges, Options{Direction: DirectionTB})

	if r.Layers["A"] != 0 || r.Layers["B"] != 0 || r.Layers["C"] != 1 {
		t.Fatalf("layers = %v, want {A:0 B:0 C:1}", r.Layers)
	}
	if r.Positions["A"].Y != r.Positions["B"].Y {
		t.Errorf("y(A)=%v y(B)=%v, want equal", r.Positions["A"].Y, r.Positions["B"].Y)
	}
	if r.Positions["C"].Y <= r.Positions["A"].Y {
		t.Errorf("sink must sit below its sources: y(C)=%v y(A)=%v",
			r.Positions["C"].Y, r.Positions["A"].Y)
	}
}

func TestCompute_CentroidPreserved(t *testing.T) {
	nodes := []Node{
		{ID: "a", Rect: geom.Rect{X: 500, Y: 700, Width: 120, Height: 60}},
		{ID: "b", Rect: geom.Rect{X: 900, Y: 650, Width: 180, Height: 90}},
		{ID: "c", Rect: geom.Rect{X: 720, Y: 940, Width: 150, Height: 70}},
		{ID: "d", Rect: geom.Rect{X: 410, Y: 1100, Width: 100, Height: 50}},
	}
	edges := []Edge{
		{SourceID: "a", TargetID: "c"},
		{SourceID: "b", TargetID: "c"},
		{SourceID: "c", TargetID: "d"},
	}

	for _, dir := range []Direction{DirectionTB, DirectionBT, DirectionLR, DirectionRL} {
		r := Compute(nodes, edges, Options{Direction: dir})
		in := inputCentroid(nodes)
		out := outputCentroid(r, nodes)
		if math.Abs(in.X-out.X) > 1e-6 || math.Abs(in.Y-out.Y) > 1e-6 {
			t.Errorf("%s: centroid moved from %v to %v", dir, in, out)
		}
	}
}

func TestCompute_DirectionInvariants(t *testing.T) {
	nodes := []Node{
		{ID: "a", Rect: geom.Rect{X: 0, Y: 0, Width: 100, Height: 50}},
		{ID: "b", Rect: geom.Rect{X: 0, Y: 200, Width: 100, Height: 50}},
		{ID: "c", Rect: geom.Rect{X: 0, Y: 400, Width: 100, Height: 50}},
	}
	edges := []Edge{{SourceID: "a", TargetID: "b"}, {SourceID: "b", TargetID: "c"}}

	tb := Compute(nodes, edges, Options{Direction: DirectionTB})
	if !(tb.Positions["a"].Y < tb.Positions["b"].Y && tb.Positions["b"].Y < tb.Positions["c"].Y) {
		t.Error("TB: y must strictly increase with layer")
	}

	lr := Compute(nodes, edges, Options{Direction: DirectionLR})
	if !(lr.Positions["a"].X < lr.Positions["b"].X && lr.Positions["b"].X < lr.Positions["c"].X) {
		t.Error("LR: x must strictly increase with layer")
	}

	bt := Compute(nodes, edges, Options{Direction: DirectionBT})
	if !(bt.Positions["a"].Y > bt.Positions["b"].Y && bt.Positions["b"].Y > bt.Positions["c"].Y) {
		t.Error("BT: y must strictly decrease with layer")
	}

	rl := Compute(nodes, edges, Options{Direction: DirectionRL})
	if !(rl.Positions["a"].X > rl.Positions["b"].X && rl.Positions["b"].X > rl.Positions["c"].X) {
		t.Error("RL: x must strictly decrease with layer")
	}

	// BT mirrors TB: same set of y-offsets, reversed across layers.
	if bt.Positions["a"].X != tb.Positions["a"].X {
		t.Error("BT must not disturb the secondary axis relative to TB")
	}
}

func TestCompute_CyclesTerminate(t *testing.T) {
	nodes := []Node{
		{ID: "a", Rect: geom.Rect{Width: 100, Height: 50}},
		{ID: "b", Rect: geom.Rect{X: 200, Width: 100, Height: 50}},
		{ID: "c", Rect: geom.Rect{X: 400, Width: 100, Height: 50}},
	}

	tests := []struct {
		name  string
		edges []Edge
	}{
		{"three-cycle", []Edge{
			{SourceID: "a", TargetID: "b"},
			{SourceID: "b", TargetID: "c"},
			{SourceID: "c", TargetID: "a"},
		}},
		{"self-loop", []Edge{{SourceID: "a", TargetID: "a"}}},
		{"two-cycle plus self-loop", []Edge{
			{SourceID: "a", TargetID: "b"},
			{SourceID: "b", TargetID: "a"},
			{SourceID: "c", TargetID: "c"},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Compute(nodes, tt.edges, Options{Direction: DirectionTB})
			if len(r.Positions) != len(nodes) {
				t.Fatalf("got %d positions, want %d", len(r.Positions), len(nodes))
			}
			for id, l := range r.Layers {
				if l < 0 {
					t.Errorf("layer[%s] = %d, want >= 0", id, l)
				}
			}
		})
	}
}

func TestCompute_Empty(t *testing.T) {
	r := Compute(nil, nil, Options{})
	if len(r.Positions) != 0 || len(r.Layers) != 0 || len(r.Order) != 0 {
		t.Errorf("empty input must yield empty result, got %+v", r)
	}
}

func TestCompute_SingleNode(t *testing.T) {
	nodes := []Node{{ID: "solo", Rect: geom.Rect{X: 42, Y: 17, Width: 200, Height: 100}}}

	r := Compute(nodes, nil, Options{Direction: DirectionTB})

	// One node: centroid preservation pins it exactly where it was.
	p := r.Positions["solo"]
	if p.X != 42 || p.Y != 17 {
		t.Errorf("single node moved to %v, want {42 17}", p)
	}
	if r.Layers["solo"] != 0 {
		t.Errorf("layer = %d, want 0", r.Layers["solo"])
	}
}

func TestCompute_OrderFollowsInput(t *testing.T) {
	nodes := []Node{
		{ID: "z", Rect: geom.Rect{Width: 100, Height: 50}},
		{ID: "m", Rect: geom.Rect{X: 200, Width: 100, Height: 50}},
		{ID: "a", Rect: geom.Rect{X: 400, Width: 100, Height: 50}},
	}

	r := Compute(nodes, nil, Options{Direction: DirectionTB})

	got := r.Order[0]
	want := []string{"z", "m", "a"}
	if len(got) != len(want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v (insertion order)", got, want)
		}
	}
}

func TestCompute_Deterministic(t *testing.T) {
	nodes := []Node{
		{ID: "a", Rect: geom.Rect{Width: 100, Height: 50}},
		{ID: "b", Rect: geom.Rect{X: 10, Y: 10, Width: 100, Height: 50}},
		{ID: "c", Rect: geom.Rect{X: 20, Y: 20, Width: 100, Height: 50}},
		{ID: "d", Rect: geom.Rect{X: 30, Y: 30, Width: 100, Height: 50}},
	}
	edges := []Edge{
		{SourceID: "a", TargetID: "b"},
		{SourceID: "a", TargetID: "c"},
		{SourceID: "b", TargetID: "d"},
		{SourceID: "c", TargetID: "d"},
	}

	first := Compute(nodes, edges, Options{Direction: DirectionLR})
	for i := 0; i < 10; i++ {
		again := Compute(nodes, edges, Options{Direction: DirectionLR})
		for id, p := range first.Positions {
			if again.Positions[id] != p {
				t.Fatalf("run %d: position[%s] = %v, want %v", i, id, again.Positions[id], p)
			}
		}
	}
}
