// Package render turns computed layouts into visual artifacts.
//
// # Overview
//
// Two output paths are provided:
//
//   - [RenderSVG] draws the layout directly: node boxes at their computed
//     positions and orthogonal polylines following the routed waypoints.
//     This is the faithful rendering; nothing re-layouts the diagram.
//   - [ToDOT] exports the diagram to Graphviz DOT with pinned positions,
//     for interop with Graphviz tooling. [GraphvizSVG] and [GraphvizPNG]
//     rasterize the DOT via the embedded Graphviz engine.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg := render.RenderSVG(doc, layout, render.Options{})
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
package render
