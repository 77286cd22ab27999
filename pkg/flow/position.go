package flow

import "github.com/saxonthune/flowgrid/pkg/geom"

// position computes final top-left coordinates for every node.
//
// Coordinates are first computed canonically as top-to-bottom node centers:
// the primary axis is a fixed gap per layer index, the secondary axis spaces
// nodes evenly within their layer. The requested direction is then obtained
// by transforming the canonical pair: LR swaps the axes, BT and RL
// additionally mirror the primary axis against its maximum so the layer
// ordering reverses. Finally the whole arrangement is translated so the
// centroid of the node centers matches the centroid of the input centers.
func position(nodes []Node, layers map[string]int, order map[int][]string, opts Options) map[string]geom.Point {
	positions := make(map[string]geom.Point, len(nodes))
	if len(nodes) == 0 {
		return positions
	}

	maxLayer := 0
	for _, l := range layers {
		if l > maxLayer {
			maxLayer = l
		}
	}
	maxPrimary := float64(maxLayer) * opts.LayerGap

	// Index of each node within its layer's ordered list.
	indexInLayer := make(map[string]int, len(nodes))
	for _, ids := range order {
		for i, id := range ids {
			indexInLayer[id] = i
		}
	}

	centers := make(map[string]geom.Point, len(nodes))
	for _, n := range nodes {
		primary := float64(layers[n.ID]) * opts.LayerGap
		secondary := float64(indexInLayer[n.ID]) * opts.NodeGap

		var c geom.Point
		switch opts.Direction {
		case DirectionLR:
			c = geom.Point{X: primary, Y: secondary}
		case DirectionRL:
			c = geom.Point{X: maxPrimary - primary, Y: secondary}
		case DirectionBT:
			c = geom.Point{X: secondary, Y: maxPrimary - primary}
		default: // TB
			c = geom.Point{X: secondary, Y: primary}
		}
		centers[n.ID] = c
	}

	dx, dy := centroidShift(nodes, centers)
	for _, n := range nodes {
		c := centers[n.ID]
		positions[n.ID] = geom.Point{
			X: c.X + dx - n.Rect.Width/2,
			Y: c.Y + dy - n.Rect.Height/2,
		}
	}
	return positions
}

// centroidShift returns the translation that moves the computed centers so
// their mean matches the mean of the input node centers.
func centroidShift(nodes []Node, centers map[string]geom.Point) (dx, dy float64) {
	var inX, inY, outX, outY float64
	for _, n := range nodes {
		in := n.Rect.Center()
		inX += in.X
		inY += in.Y
		out := centers[n.ID]
		outX += out.X
		outY += out.Y
	}
	count := float64(len(nodes))
	return (inX - outX) / count, (inY - outY) / count
}
