// Package pipeline provides the layout → route → render pipeline.
//
// This package implements the complete processing chain that turns a diagram
// document into positioned nodes, routed edges, and rendered artifacts. CLI,
// API, and worker components all go through here, which keeps behavior
// consistent across entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Layout: assign nodes to layers and compute positions
//  2. Route: compute orthogonal edge paths around the placed nodes
//  3. Render: generate output in various formats (SVG, PNG, PDF, DOT, JSON)
//
// Layout and routing are combined into one cached unit because routes are
// only valid for the positions they were computed against.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Direction: "TB",
//	    Formats:   []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, doc, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/saxonthune/flowgrid/pkg/cache"
	"github.com/saxonthune/flowgrid/pkg/flow"
	"github.com/saxonthune/flowgrid/pkg/graph"
	"github.com/saxonthune/flowgrid/pkg/route"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Direction string  `json:"direction,omitempty"`
	LayerGap  float64 `json:"layer_gap,omitempty"`
	NodeGap   float64 `json:"node_gap,omitempty"`

	// Routing options
	SkipRoute   bool    `json:"skip_route,omitempty"` // layout only, no edge routing
	Padding     float64 `json:"padding,omitempty"`
	BendPenalty float64 `json:"bend_penalty,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// DocHash is the content hash of the input document.
	DocHash string

	// Layout contains positions, layers, and routes.
	Layout graph.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout (including routes) came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, pdf, dot, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks fields and applies defaults for the full
// pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	if o.Direction == "" {
		o.Direction = string(flow.DirectionTB)
	}
	if !flow.Direction(o.Direction).Valid() {
		return fmt.Errorf("invalid direction: %q (must be one of: TB, BT, LR, RL)", o.Direction)
	}
	if o.LayerGap == 0 {
		o.LayerGap = flow.DefaultLayerGap
	}
	if o.NodeGap == 0 {
		o.NodeGap = flow.DefaultNodeGap
	}
	if o.Padding == 0 {
		o.Padding = route.DefaultPadding
	}
	if o.BendPenalty == 0 {
		o.BendPenalty = route.DefaultBendPenalty
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// LayoutKeyOpts returns cache key options for the layout stage.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Direction:   o.Direction,
		LayerGap:    o.LayerGap,
		NodeGap:     o.NodeGap,
		Padding:     o.Padding,
		BendPenalty: o.BendPenalty,
		Routed:      !o.SkipRoute,
	}
}
