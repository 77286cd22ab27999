package render

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/saxonthune/flowgrid/pkg/geom"
	"github.com/saxonthune/flowgrid/pkg/graph"
)

// Options configures direct SVG rendering.
type Options struct {
	// Margin is the whitespace around the diagram bounds, in diagram units.
	// Zero means the default of 40.
	Margin float64

	// ShowLabels draws node labels (falling back to the node ID when a
	// node has no label). Enabled unless HideLabels is set.
	HideLabels bool
}

const defaultMargin = 40.0

// RenderSVG draws the document at its computed layout: node boxes at the
// positions in layout.Positions and edges as polylines along the waypoints
// in layout.Routes. Edges without a route entry are drawn as straight lines
// between node centers; edges with an empty route are skipped.
func RenderSVG(doc *graph.Document, layout *graph.Layout, opts Options) []byte {
	margin := opts.Margin
	if margin <= 0 {
		margin = defaultMargin
	}

	rects := placedRects(doc, layout)
	minX, minY, maxX, maxY := bounds(rects, layout.Routes)

	width := maxX - minX + 2*margin
	height := maxY - minY + 2*margin
	dx := margin - minX
	dy := margin - minY

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	buf.WriteString(`  <g fill="none" stroke="#333333" stroke-width="2">` + "\n")

	for _, e := range doc.Edges {
		points, ok := layout.Routes[e.ID]
		if ok && len(points) == 0 {
			// Unroutable edge, leave it out rather than draw through obstacles.
			continue
		}
		if !ok {
			src, srcOK := rects[e.SourceID]
			dst, dstOK := rects[e.TargetID]
			if !srcOK || !dstOK {
				continue
			}
			points = []geom.Point{src.Center(), dst.Center()}
		}
		buf.WriteString(`    <polyline points="`)
		for i, p := range points {
			if i > 0 {
				buf.WriteByte(' ')
			}
			fmt.Fprintf(&buf, "%.2f,%.2f", p.X+dx, p.Y+dy)
		}
		buf.WriteString(`"/>` + "\n")
	}
	buf.WriteString("  </g>\n")

	buf.WriteString(`  <g stroke="#333333" stroke-width="1.5" fill="#ffffff">` + "\n")
	for _, n := range doc.Nodes {
		r, ok := rects[n.ID]
		if !ok {
			continue
		}
		fmt.Fprintf(&buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="6"/>`+"\n",
			r.X+dx, r.Y+dy, r.Width, r.Height)
	}
	buf.WriteString("  </g>\n")

	if !opts.HideLabels {
		buf.WriteString(`  <g font-family="sans-serif" font-size="14" text-anchor="middle" fill="#111111">` + "\n")
		for _, n := range doc.Nodes {
			r, ok := rects[n.ID]
			if !ok {
				continue
			}
			label := n.Label
			if label == "" {
				label = n.ID
			}
			c := r.Center()
			fmt.Fprintf(&buf, `    <text x="%.2f" y="%.2f" dy="0.35em">%s</text>`+"\n",
				c.X+dx, c.Y+dy, escapeXML(label))
		}
		buf.WriteString("  </g>\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// placedRects resolves each node's rect, substituting the layout position
// when one exists.
func placedRects(doc *graph.Document, layout *graph.Layout) map[string]geom.Rect {
	rects := make(map[string]geom.Rect, len(doc.Nodes))
	for _, n := range doc.Nodes {
		r := n.Rect()
		if layout != nil {
			if p, ok := layout.Positions[n.ID]; ok {
				r.X, r.Y = p.X, p.Y
			}
		}
		rects[n.ID] = r
	}
	return rects
}

func bounds(rects map[string]geom.Rect, routes map[string][]geom.Point) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)

	for _, r := range rects {
		minX = math.Min(minX, r.X)
		minY = math.Min(minY, r.Y)
		maxX = math.Max(maxX, r.Right())
		maxY = math.Max(maxY, r.Bottom())
	}
	for _, points := range routes {
		for _, p := range points {
			minX = math.Min(minX, p.X)
			minY = math.Min(minY, p.Y)
			maxX = math.Max(maxX, p.X)
			maxY = math.Max(maxY, p.Y)
		}
	}

	if math.IsInf(minX, 1) {
		return 0, 0, 0, 0
	}
	return minX, minY, maxX, maxY
}

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}
