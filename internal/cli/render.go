package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saxonthune/flowgrid/pkg/graph"
	"github.com/saxonthune/flowgrid/pkg/pipeline"
	"github.com/saxonthune/flowgrid/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output      string   // output file (single format) or base path (multiple)
	formats     []string // output formats: svg, png, pdf, dot, json
	engine      string   // direct (built-in SVG drawing) or graphviz
	direction   string
	layerGap    float64
	nodeGap     float64
	padding     float64
	bendPenalty float64
	noRoute     bool
	noCache     bool
}

// renderCommand creates the render command for generating artifacts.
// It runs the full pipeline (layout, routing, rendering) and writes one
// file per requested format.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a diagram to SVG, PNG, PDF, DOT, or JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, dot, json (comma-separated)")
	cmd.Flags().StringVar(&opts.engine, "engine", "direct", "render engine: direct or graphviz (svg, png, dot only)")
	cmd.Flags().StringVarP(&opts.direction, "direction", "d", "", "flow direction: TB (default), BT, LR, RL")
	cmd.Flags().Float64Var(&opts.layerGap, "layer-gap", 0, "distance between layer center lines")
	cmd.Flags().Float64Var(&opts.nodeGap, "node-gap", 0, "distance between node center lines within a layer")
	cmd.Flags().Float64Var(&opts.padding, "padding", 0, "route clearance around nodes")
	cmd.Flags().Float64Var(&opts.bendPenalty, "bend-penalty", 0, "extra path cost per bend")
	cmd.Flags().BoolVar(&opts.noRoute, "no-route", false, "skip edge routing, draw straight edges")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the result cache")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, path string, opts *renderOpts) error {
	doc, err := graph.ReadDocumentFile(path)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	pOpts := c.pipelineOptions(opts.direction, opts.layerGap, opts.nodeGap, opts.padding, opts.bendPenalty)
	pOpts.SkipRoute = opts.noRoute
	pOpts.Formats = opts.formats

	if opts.engine == "graphviz" {
		return c.runRenderGraphviz(cmd, doc, path, runner, pOpts, opts)
	}
	if opts.engine != "direct" {
		return fmt.Errorf("unknown engine %q (want direct or graphviz)", opts.engine)
	}

	p := newProgress(loggerFromContext(cmd.Context()))
	result, err := runner.Execute(cmd.Context(), doc, pOpts)
	if err != nil {
		return err
	}
	p.done(fmt.Sprintf("Rendered %d format(s)", len(result.Artifacts)))

	base := opts.output
	if base == "" {
		base = strings.TrimSuffix(path, ".json")
	}

	printSuccess("Render complete")
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.LayoutHit)

	for _, format := range opts.formats {
		out := outputPath(base, format, len(opts.formats) == 1 && opts.output != "")
		if err := os.WriteFile(out, result.Artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		printFile(out)
	}
	return nil
}

// runRenderGraphviz renders through the embedded Graphviz engine instead of
// the built-in SVG drawing. Positions stay pinned, but shapes and arrowheads
// come from Graphviz, which some downstream tooling prefers.
func (c *CLI) runRenderGraphviz(cmd *cobra.Command, doc graph.Document, path string, runner *pipeline.Runner, pOpts pipeline.Options, opts *renderOpts) error {
	for _, format := range opts.formats {
		switch format {
		case pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatDOT:
		default:
			return fmt.Errorf("graphviz engine cannot produce %q (want svg, png, or dot)", format)
		}
	}

	p := newProgress(loggerFromContext(cmd.Context()))
	layout, err := runner.ComputeLayout(cmd.Context(), doc, pOpts)
	if err != nil {
		return err
	}
	dot := render.ToDOT(&doc, &layout)
	p.done(fmt.Sprintf("Rendered %d format(s)", len(opts.formats)))

	base := opts.output
	if base == "" {
		base = strings.TrimSuffix(path, ".json")
	}

	printSuccess("Render complete")
	printStats(len(doc.Nodes), len(doc.Edges), false)

	for _, format := range opts.formats {
		var data []byte
		switch format {
		case pipeline.FormatSVG:
			data, err = render.GraphvizSVG(cmd.Context(), dot)
		case pipeline.FormatPNG:
			data, err = render.GraphvizPNG(cmd.Context(), dot)
		case pipeline.FormatDOT:
			data = []byte(dot)
		}
		if err != nil {
			return fmt.Errorf("graphviz %s: %w", format, err)
		}
		out := outputPath(base, format, len(opts.formats) == 1 && opts.output != "")
		if err := os.WriteFile(out, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		printFile(out)
	}
	return nil
}

// outputPath derives the output file name for a format. When the user gave
// an explicit --output and only one format is requested, it is used as-is.
func outputPath(base, format string, exact bool) string {
	if exact {
		return base
	}
	if ext := filepath.Ext(base); ext == "."+format {
		return base
	}
	return base + "." + format
}
