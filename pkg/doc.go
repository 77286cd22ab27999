// Package pkg provides the core libraries for FlowGrid diagram layout.
//
// # Overview
//
// FlowGrid computes layered layouts and orthogonal edge routes for flow
// diagrams. The pkg directory is organized into four main areas:
//
//  1. Engines - Pure layout math ([geom], [flow], [route])
//  2. Serialization - Document and layout types ([graph])
//  3. Orchestration - Pipeline, caching, rendering ([pipeline], [cache], [render])
//  4. Surfaces - HTTP API and persistence ([httputil], [store])
//
// # Architecture
//
// The typical data flow through FlowGrid:
//
//	Diagram Document (nodes + edges)
//	         ↓
//	    [flow] package (layer assignment + positioning)
//	         ↓
//	    [route] package (orthogonal edge routing)
//	         ↓
//	    [render] package (SVG/PNG/PDF/DOT output)
//
// # Quick Start
//
// Compute a layout and render it:
//
//	import (
//	    "context"
//	    "github.com/saxonthune/flowgrid/pkg/graph"
//	    "github.com/saxonthune/flowgrid/pkg/pipeline"
//	)
//
//	doc, _ := graph.ReadDocumentFile("diagram.json")
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, _ := runner.Execute(context.Background(), doc, pipeline.Options{
//	    Direction: "TB",
//	    Formats:   []string{"svg"},
//	})
//	svg := result.Artifacts["svg"]
//
// # Main Packages
//
// [geom] - Shared geometry primitives: points, rectangles, anchors, and
// segment/rectangle intersection with boundary-exclusive semantics.
//
// [flow] - Layered layout engine. Assigns nodes to layers with cycle-tolerant
// relaxation, orders and positions them, applies the flow direction
// transform, and preserves the input centroid.
//
// [route] - Orthogonal edge router. Builds a sparse routing grid from padded
// obstacle boundaries and finds bend-minimal paths with A*.
//
// [graph] - Serialization types for documents and layouts (JSON and BSON).
//
// [pipeline] - Complete layout → route → render pipeline used by CLI and
// API. Ensures consistent behavior across entry points, with per-stage
// caching.
//
// [cache] - Byte caches for pipeline results: file-based for the CLI, Redis
// for server deployments, null for tests.
//
// [render] - Artifact generation: direct SVG drawing of computed layouts,
// Graphviz DOT export, and SVG→PNG/PDF conversion.
//
// [store] - Layout persistence: in-memory for tests, MongoDB for the server.
//
// [httputil] - HTTP API exposing the pipeline and the layout store.
//
// [errors] - Structured error codes shared by CLI and API surfaces.
//
// [observability] - Hook interfaces for metrics and tracing backends.
//
// [buildinfo] - Version metadata injected at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...        # All tests
//	go test ./pkg/route/...  # Specific package
//	go test -run Example     # Examples only
//
// [geom]: https://pkg.go.dev/github.com/saxonthune/flowgrid/pkg/geom
// [flow]: https://pkg.go.dev/github.com/saxonthune/flowgrid/pkg/flow
// [route]: https://pkg.go.dev/github.com/saxonthune/flowgrid/pkg/route
// [graph]: https://pkg.go.dev/github.com/saxonthune/flowgrid/pkg/graph
// [pipeline]: https://pkg.go.dev/github.com/saxonthune/flowgrid/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/saxonthune/flowgrid/pkg/cache
// [render]: https://pkg.go.dev/github.com/saxonthune/flowgrid/pkg/render
// [store]: https://pkg.go.dev/github.com/saxonthune/flowgrid/pkg/store
// [httputil]: https://pkg.go.dev/github.com/saxonthune/flowgrid/pkg/httputil
// [errors]: https://pkg.go.dev/github.com/saxonthune/flowgrid/pkg/errors
// [observability]: https://pkg.go.dev/github.com/saxonthune/flowgrid/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/saxonthune/flowgrid/pkg/buildinfo
package pkg
