package flow

import "github.com/saxonthune/flowgrid/pkg/geom"

// Direction selects the primary flow axis of the layout.
type Direction string

// Supported flow directions.
const (
	DirectionTB Direction = "TB" // top to bottom (canonical)
	DirectionBT Direction = "BT" // bottom to top
	DirectionLR Direction = "LR" // left to right
	DirectionRL Direction = "RL" // right to left
)

// Valid reports whether d is one of the four supported directions.
func (d Direction) Valid() bool {
	switch d {
	case DirectionTB, DirectionBT, DirectionLR, DirectionRL:
		return true
	}
	return false
}

// Node is a layout input: a rectangle with an identifier.
// The input slice is treated as an unordered bag except that order within a
// layer follows the input order, which keeps results deterministic.
type Node struct {
	ID   string
	Rect geom.Rect
}

// Edge is a directed constraint between two nodes, referenced by ID.
// Edges whose endpoints are not present in the node slice contribute no
// constraint. A self-referencing edge is ignored for layering.
type Edge struct {
	SourceID string
	TargetID string
}

// Default spacing between layers and between nodes within a layer, in
// diagram units. These are visual tuning values, not correctness values.
const (
	DefaultLayerGap = 160.0
	DefaultNodeGap  = 240.0
)

// Options configures a layout computation. The zero value is usable:
// direction defaults to TB and gaps to the package defaults.
type Options struct {
	Direction Direction
	LayerGap  float64
	NodeGap   float64
}

func (o Options) withDefaults() Options {
	if !o.Direction.Valid() {
		o.Direction = DirectionTB
	}
	if o.LayerGap <= 0 {
		o.LayerGap = DefaultLayerGap
	}
	if o.NodeGap <= 0 {
		o.NodeGap = DefaultNodeGap
	}
	return o
}

// Result holds one position, one layer, and one layer-order entry per input
// node. Positions are top-left coordinates in the same space as the input
// rectangles. All maps are freshly allocated per call.
type Result struct {
	Positions map[string]geom.Point
	Layers    map[string]int
	Order     map[int][]string
}

// Compute runs the full layered layout: layer assignment, canonical
// positioning, direction transform, and centroid correction.
//
// Every structurally valid input produces a complete result. Empty node
// slices yield empty maps; cycles, self-loops, and dangling edge endpoints
// never cause an error or a missing entry.
func Compute(nodes []Node, edges []Edge, opts Options) Result {
	opts = opts.withDefaults()

	layers := AssignLayers(nodes, edges)
	order := layerOrder(nodes, layers)
	positions := position(nodes, layers, order, opts)

	return Result{
		Positions: positions,
		Layers:    layers,
		Order:     order,
	}
}

// layerOrder groups node IDs by layer, preserving input order within each
// layer.
func layerOrder(nodes []Node, layers map[string]int) map[int][]string {
	order := make(map[int][]string, len(layers))
	for _, n := range nodes {
		l := layers[n.ID]
		order[l] = append(order[l], n.ID)
	}
	return order
}
