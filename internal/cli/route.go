package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saxonthune/flowgrid/pkg/geom"
	"github.com/saxonthune/flowgrid/pkg/graph"
	"github.com/saxonthune/flowgrid/pkg/route"
)

// routeOpts holds the command-line flags for the route command.
type routeOpts struct {
	output      string
	padding     float64
	bendPenalty float64
}

// routeCommand creates the route command. Unlike layout, it leaves node
// positions untouched: edges are routed against the coordinates already in
// the document, which is what a canvas editor needs after a manual move.
func (c *CLI) routeCommand() *cobra.Command {
	var opts routeOpts

	cmd := &cobra.Command{
		Use:   "route [file]",
		Short: "Route edges against the document's existing positions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRoute(args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default <input>.routes.json)")
	cmd.Flags().Float64Var(&opts.padding, "padding", 0, "route clearance around nodes")
	cmd.Flags().Float64Var(&opts.bendPenalty, "bend-penalty", 0, "extra path cost per bend")

	return cmd
}

func (c *CLI) runRoute(path string, opts *routeOpts) error {
	doc, err := graph.ReadDocumentFile(path)
	if err != nil {
		return err
	}
	doc.EnsureEdgeIDs()

	rOpts := route.Options{Padding: opts.padding, BendPenalty: opts.bendPenalty}
	if rOpts.Padding == 0 {
		rOpts.Padding = c.Config.Padding
	}
	if rOpts.BendPenalty == 0 {
		rOpts.BendPenalty = c.Config.BendPenalty
	}

	obstacles := make([]route.Obstacle, len(doc.Nodes))
	rects := make(map[string]route.Endpoint, len(doc.Nodes))
	for i, n := range doc.Nodes {
		obstacles[i] = route.Obstacle{ID: n.ID, Rect: n.Rect()}
		rects[n.ID] = route.Endpoint{ID: n.ID, Rect: n.Rect()}
	}
	reqs := make([]route.Edge, len(doc.Edges))
	for i, e := range doc.Edges {
		reqs[i] = route.Edge{ID: e.ID, Source: rects[e.SourceID], Target: rects[e.TargetID]}
	}

	p := newProgress(c.Logger)
	routes := route.Routes(reqs, obstacles, rOpts)

	routed, unrouted := 0, 0
	for _, points := range routes {
		if len(points) == 0 {
			unrouted++
		} else {
			routed++
		}
	}
	p.done(fmt.Sprintf("Routed %d edges", routed))
	if unrouted > 0 {
		printWarning("%d edges have no clear path", unrouted)
	}

	layout := graph.Layout{
		Positions: positionsFromDoc(doc),
		Routes:    routes,
	}
	out := opts.output
	if out == "" {
		out = strings.TrimSuffix(path, ".json") + ".routes.json"
	}
	if err := graph.WriteLayoutFile(layout, out); err != nil {
		return fmt.Errorf("write routes: %w", err)
	}

	printSuccess("Routes written")
	printStats(len(doc.Nodes), len(doc.Edges), false)
	printFile(out)
	return nil
}

// positionsFromDoc captures the document's own coordinates so the routes
// file is self-describing.
func positionsFromDoc(doc graph.Document) map[string]geom.Point {
	positions := make(map[string]geom.Point, len(doc.Nodes))
	for _, n := range doc.Nodes {
		positions[n.ID] = geom.Point{X: n.X, Y: n.Y}
	}
	return positions
}
