package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/saxonthune/flowgrid/pkg/geom"
	"github.com/saxonthune/flowgrid/pkg/graph"
)

// pointsPerUnit converts diagram units to Graphviz points (72/inch at the
// conventional 96 units per inch).
const pointsPerUnit = 0.75

// ToDOT exports the diagram to Graphviz DOT format. When a layout is given,
// node positions are pinned with pos="x,y!" so Graphviz's neato engine
// reproduces the computed arrangement, and each routed edge carries its
// waypoints in a comment attribute ("x,y x,y ...", diagram units) so
// downstream tooling can recover the orthogonal polylines. Without a
// layout, Graphviz lays out freely.
func ToDOT(doc *graph.Document, layout *graph.Layout) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  splines=ortho;\n")
	buf.WriteString("\n")

	for _, n := range doc.Nodes {
		attrs := []string{fmt.Sprintf("label=%q", nodeLabel(n))}
		if layout != nil {
			if p, ok := layout.Positions[n.ID]; ok {
				// Graphviz pins by center with the y axis pointing up.
				cx := (p.X + n.Width/2) * pointsPerUnit
				cy := -(p.Y + n.Height/2) * pointsPerUnit
				attrs = append(attrs,
					fmt.Sprintf("pos=\"%.2f,%.2f!\"", cx, cy),
					fmt.Sprintf("width=%.3f", n.Width/96),
					fmt.Sprintf("height=%.3f", n.Height/96),
					"fixedsize=true")
			}
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range doc.Edges {
		if layout != nil {
			if points := layout.Routes[e.ID]; len(points) > 0 {
				fmt.Fprintf(&buf, "  %q -> %q [comment=%q];\n", e.SourceID, e.TargetID, waypointList(points))
				continue
			}
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.SourceID, e.TargetID)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeLabel(n graph.Node) string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// waypointList formats route waypoints as space-separated "x,y" pairs.
func waypointList(points []geom.Point) string {
	var b strings.Builder
	for i, p := range points {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%.2f,%.2f", p.X, p.Y)
	}
	return b.String()
}

// GraphvizSVG renders a DOT graph to SVG using the embedded Graphviz engine.
func GraphvizSVG(ctx context.Context, dot string) ([]byte, error) {
	return graphvizRender(ctx, dot, graphviz.SVG)
}

// GraphvizPNG renders a DOT graph to PNG using the embedded Graphviz engine.
func GraphvizPNG(ctx context.Context, dot string) ([]byte, error) {
	return graphvizRender(ctx, dot, graphviz.PNG)
}

func graphvizRender(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
