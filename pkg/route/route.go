package route

import "github.com/saxonthune/flowgrid/pkg/geom"

// Default routing parameters, in diagram units. Both are placement policy
// rather than correctness values and can be overridden through Options.
const (
	// DefaultPadding is the clearance kept between a route and any
	// obstacle rectangle.
	DefaultPadding = 20.0

	// DefaultBendPenalty is the extra cost added whenever a path segment
	// changes orientation. It biases the search toward fewer bends instead
	// of shorter-but-zigzagging paths.
	DefaultBendPenalty = 40.0
)

// Endpoint is one side of an edge: the node's identifier plus its rectangle.
// The identifier is used to exclude the edge's own endpoints from the
// obstacle set.
type Endpoint struct {
	ID   string
	Rect geom.Rect
}

// Edge is a routing request between two endpoint rectangles.
type Edge struct {
	ID     string
	Source Endpoint
	Target Endpoint
}

// Obstacle is a rectangle a route must not cross, tagged with the id of the
// node it was derived from.
type Obstacle struct {
	ID   string
	Rect geom.Rect
}

// Options configures routing. The zero value is usable: both fields fall
// back to the package defaults.
type Options struct {
	Padding     float64
	BendPenalty float64
}

func (o Options) withDefaults() Options {
	if o.Padding <= 0 {
		o.Padding = DefaultPadding
	}
	if o.BendPenalty <= 0 {
		o.BendPenalty = DefaultBendPenalty
	}
	return o
}

// Routes computes one orthogonal waypoint list per edge, keyed by edge id.
//
// Each edge is routed independently against the obstacle set minus its own
// source and target rectangles. Waypoints run from the source rectangle's
// boundary to the target's, with consecutive points differing in exactly one
// coordinate. Edges whose target is unreachable map to an empty list; no
// structurally valid input causes an error.
func Routes(edges []Edge, obstacles []Obstacle, opts Options) map[string][]geom.Point {
	opts = opts.withDefaults()

	routes := make(map[string][]geom.Point, len(edges))
	for _, e := range edges {
		routes[e.ID] = routeEdge(e, obstacles, opts)
	}
	return routes
}

// routeEdge runs the full pipeline for a single edge: obstacle filtering,
// anchor computation, grid construction, search, and simplification.
func routeEdge(e Edge, obstacles []Obstacle, opts Options) []geom.Point {
	// An edge must not be forced to avoid its own endpoints.
	blocked := make([]geom.Rect, 0, len(obstacles))
	for _, o := range obstacles {
		if o.ID == e.Source.ID || o.ID == e.Target.ID {
			continue
		}
		blocked = append(blocked, o.Rect.Expand(opts.Padding))
	}

	start := e.Source.Rect.AnchorToward(e.Target.Rect.Center())
	goal := e.Target.Rect.AnchorToward(e.Source.Rect.Center())

	g := buildGrid(start, goal, blocked)
	path := search(g, blocked, opts.BendPenalty)
	return Simplify(path)
}
