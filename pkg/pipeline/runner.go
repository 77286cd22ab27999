package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/saxonthune/flowgrid/pkg/cache"
	"github.com/saxonthune/flowgrid/pkg/flow"
	"github.com/saxonthune/flowgrid/pkg/geom"
	"github.com/saxonthune/flowgrid/pkg/graph"
	"github.com/saxonthune/flowgrid/pkg/observability"
	"github.com/saxonthune/flowgrid/pkg/render"
	"github.com/saxonthune/flowgrid/pkg/route"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete layout → route → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, doc graph.Document, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid document: %w", err)
	}
	doc.EnsureEdgeIDs()
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}
	result.Stats.NodeCount = len(doc.Nodes)
	result.Stats.EdgeCount = len(doc.Edges)

	docData, err := graph.MarshalDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("serialize document: %w", err)
	}
	result.DocHash = cache.Hash(docData)

	// Stage 1+2: Layout and routing (cached as one unit; routes are only
	// valid for the positions they were computed against).
	layoutStart := time.Now()
	layout, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, doc, result.DocHash, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = layout
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	opts.Logger.Info("computed layout",
		"direction", layout.Direction,
		"nodes", len(layout.Positions),
		"routes", len(layout.Routes),
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, doc, layout, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ComputeLayoutWithCacheInfo computes positions and routes with caching and
// returns cache hit info. The docHash must be the content hash of doc; pass
// an empty string to have it computed.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, doc graph.Document, docHash string, opts Options) (graph.Layout, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return graph.Layout{}, false, err
	}
	r.applyLogger(&opts)

	if docHash == "" {
		data, err := graph.MarshalDocument(doc)
		if err != nil {
			return graph.Layout{}, false, fmt.Errorf("serialize document: %w", err)
		}
		docHash = cache.Hash(data)
	}
	cacheKey := r.Keyer.LayoutKey(docHash, opts.LayoutKeyOpts())

	// Try cache first
	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		cached, err := graph.UnmarshalLayout(data)
		if err == nil {
			observability.Cache().OnCacheHit(ctx, "layout")
			return cached, true, nil
		}
		// If deserialization fails, fall through to recompute
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	layout := r.computeLayout(ctx, doc, opts)

	// Cache the result
	if data, err := graph.MarshalLayout(layout); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err == nil {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	return layout, false, nil
}

// ComputeLayout is a convenience wrapper that discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, doc graph.Document, opts Options) (graph.Layout, error) {
	layout, _, err := r.ComputeLayoutWithCacheInfo(ctx, doc, "", opts)
	return layout, err
}

// computeLayout runs the layout and routing engines without caching.
func (r *Runner) computeLayout(ctx context.Context, doc graph.Document, opts Options) graph.Layout {
	observability.Layout().OnLayoutStart(ctx, opts.Direction, len(doc.Nodes))
	start := time.Now()

	flowNodes := make([]flow.Node, len(doc.Nodes))
	for i, n := range doc.Nodes {
		flowNodes[i] = flow.Node{ID: n.ID, Rect: n.Rect()}
	}
	flowEdges := make([]flow.Edge, len(doc.Edges))
	for i, e := range doc.Edges {
		flowEdges[i] = flow.Edge{SourceID: e.SourceID, TargetID: e.TargetID}
	}

	res := flow.Compute(flowNodes, flowEdges, flow.Options{
		Direction: flow.Direction(opts.Direction),
		LayerGap:  opts.LayerGap,
		NodeGap:   opts.NodeGap,
	})
	observability.Layout().OnLayoutComplete(ctx, opts.Direction, time.Since(start))

	layout := graph.Layout{
		Direction: opts.Direction,
		Positions: res.Positions,
		Layers:    res.Layers,
		Order:     res.Order,
	}
	if !opts.SkipRoute {
		layout.Routes = r.routeEdges(ctx, doc, res.Positions, opts)
	}
	return layout
}

// routeEdges routes every document edge against the placed node rectangles.
func (r *Runner) routeEdges(ctx context.Context, doc graph.Document, positions map[string]geom.Point, opts Options) map[string][]geom.Point {
	observability.Route().OnRouteStart(ctx, len(doc.Edges), len(doc.Nodes))
	start := time.Now()

	// Placed rectangles double as the obstacle set.
	placed := make(map[string]geom.Rect, len(doc.Nodes))
	obstacles := make([]route.Obstacle, len(doc.Nodes))
	for i, n := range doc.Nodes {
		rect := n.Rect()
		if p, ok := positions[n.ID]; ok {
			rect.X, rect.Y = p.X, p.Y
		}
		placed[n.ID] = rect
		obstacles[i] = route.Obstacle{ID: n.ID, Rect: rect}
	}

	reqs := make([]route.Edge, len(doc.Edges))
	for i, e := range doc.Edges {
		reqs[i] = route.Edge{
			ID:     e.ID,
			Source: route.Endpoint{ID: e.SourceID, Rect: placed[e.SourceID]},
			Target: route.Endpoint{ID: e.TargetID, Rect: placed[e.TargetID]},
		}
	}

	routes := route.Routes(reqs, obstacles, route.Options{
		Padding:     opts.Padding,
		BendPenalty: opts.BendPenalty,
	})

	routed := 0
	for id, points := range routes {
		if len(points) == 0 {
			observability.Route().OnPathNotFound(ctx, id)
			continue
		}
		routed++
	}
	observability.Route().OnRouteComplete(ctx, routed, len(routes)-routed, time.Since(start))
	return routes
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, doc graph.Document, layout graph.Layout, opts Options) (map[string][]byte, bool, error) {
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key from layout data
	layoutData, err := graph.MarshalLayout(layout)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, format)
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	// Render all formats
	rendered, err := renderFormats(ctx, doc, layout, opts.Formats)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, format)
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, doc graph.Document, layout graph.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, doc, layout, opts)
	return artifacts, err
}

// renderFormats produces one artifact per requested format.
func renderFormats(ctx context.Context, doc graph.Document, layout graph.Layout, formats []string) (map[string][]byte, error) {
	out := make(map[string][]byte, len(formats))
	var svg []byte

	needSVG := func() []byte {
		if svg == nil {
			svg = render.RenderSVG(&doc, &layout, render.Options{})
		}
		return svg
	}

	for _, format := range formats {
		switch format {
		case FormatSVG:
			out[format] = needSVG()
		case FormatPNG:
			png, err := render.ToPNG(needSVG(), 2.0)
			if err != nil {
				return nil, fmt.Errorf("render png: %w", err)
			}
			out[format] = png
		case FormatPDF:
			pdf, err := render.ToPDF(needSVG())
			if err != nil {
				return nil, fmt.Errorf("render pdf: %w", err)
			}
			out[format] = pdf
		case FormatDOT:
			out[format] = []byte(render.ToDOT(&doc, &layout))
		case FormatJSON:
			data, err := graph.MarshalLayout(layout)
			if err != nil {
				return nil, fmt.Errorf("render json: %w", err)
			}
			out[format] = data
		default:
			return nil, fmt.Errorf("invalid format: %q", format)
		}
	}
	return out, nil
}
