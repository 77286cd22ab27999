package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saxonthune/flowgrid/pkg/graph"
)

// layoutOpts holds the command-line flags for the layout command.
type layoutOpts struct {
	output      string  // output file path (defaults to <input>.layout.json)
	direction   string  // flow direction: TB, BT, LR, RL
	layerGap    float64 // distance between layer center lines
	nodeGap     float64 // distance between node center lines within a layer
	padding     float64 // route clearance around node rectangles
	bendPenalty float64 // extra path cost per bend
	noRoute     bool    // skip edge routing
	noCache     bool    // bypass the result cache
	apply       bool    // write positions back into the document file
}

// layoutCommand creates the layout command. It reads a document, computes
// positions (and routes unless --no-route), and writes the layout JSON.
func (c *CLI) layoutCommand() *cobra.Command {
	var opts layoutOpts

	cmd := &cobra.Command{
		Use:   "layout [file]",
		Short: "Compute node positions and edge routes for a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default <input>.layout.json)")
	cmd.Flags().StringVarP(&opts.direction, "direction", "d", "", "flow direction: TB (default), BT, LR, RL")
	cmd.Flags().Float64Var(&opts.layerGap, "layer-gap", 0, "distance between layer center lines")
	cmd.Flags().Float64Var(&opts.nodeGap, "node-gap", 0, "distance between node center lines within a layer")
	cmd.Flags().Float64Var(&opts.padding, "padding", 0, "route clearance around nodes")
	cmd.Flags().Float64Var(&opts.bendPenalty, "bend-penalty", 0, "extra path cost per bend")
	cmd.Flags().BoolVar(&opts.noRoute, "no-route", false, "skip edge routing")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the result cache")
	cmd.Flags().BoolVar(&opts.apply, "apply", false, "write computed positions back into the document file")

	return cmd
}

func (c *CLI) runLayout(cmd *cobra.Command, path string, opts *layoutOpts) error {
	doc, err := graph.ReadDocumentFile(path)
	if err != nil {
		return err
	}
	doc.EnsureEdgeIDs()

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	pOpts := c.pipelineOptions(opts.direction, opts.layerGap, opts.nodeGap, opts.padding, opts.bendPenalty)
	pOpts.SkipRoute = opts.noRoute

	p := newProgress(loggerFromContext(cmd.Context()))
	layout, cached, err := runner.ComputeLayoutWithCacheInfo(cmd.Context(), doc, "", pOpts)
	if err != nil {
		return err
	}
	p.done(fmt.Sprintf("Laid out %d nodes", len(layout.Positions)))

	out := opts.output
	if out == "" {
		out = strings.TrimSuffix(path, ".json") + ".layout.json"
	}
	if err := graph.WriteLayoutFile(layout, out); err != nil {
		return fmt.Errorf("write layout: %w", err)
	}

	if opts.apply {
		for i, n := range doc.Nodes {
			if pos, ok := layout.Positions[n.ID]; ok {
				doc.Nodes[i].X, doc.Nodes[i].Y = pos.X, pos.Y
			}
		}
		if err := graph.WriteDocumentFile(doc, path); err != nil {
			return fmt.Errorf("apply positions: %w", err)
		}
	}

	printSuccess("Layout written")
	printStats(len(doc.Nodes), len(doc.Edges), cached)
	printFile(out)
	return nil
}
