package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/saxonthune/flowgrid/pkg/cache"
	"github.com/saxonthune/flowgrid/pkg/graph"
)

func testDoc() graph.Document {
	return graph.Document{
		Name: "chain",
		Nodes: []graph.Node{
			{ID: "a", Width: 100, Height: 50},
			{ID: "b", Width: 100, Height: 50},
			{ID: "c", Width: 100, Height: 50},
		},
		Edges: []graph.Edge{
			{ID: "e1", SourceID: "a", TargetID: "b"},
			{ID: "e2", SourceID: "b", TargetID: "c"},
		},
	}
}

func TestExecute(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), testDoc(), Options{
		Formats: []string{FormatSVG, FormatDOT, FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if result.Stats.NodeCount != 3 || result.Stats.EdgeCount != 2 {
		t.Errorf("stats = %d nodes / %d edges, want 3/2", result.Stats.NodeCount, result.Stats.EdgeCount)
	}
	if result.DocHash == "" {
		t.Error("DocHash should be set")
	}
	if result.Layout.Direction != "TB" {
		t.Errorf("Direction = %q, want TB (default)", result.Layout.Direction)
	}
	if len(result.Layout.Positions) != 3 {
		t.Errorf("Positions = %d, want 3", len(result.Layout.Positions))
	}
	if len(result.Layout.Routes) != 2 {
		t.Errorf("Routes = %d, want 2", len(result.Layout.Routes))
	}

	for _, format := range []string{FormatSVG, FormatDOT, FormatJSON} {
		if len(result.Artifacts[format]) == 0 {
			t.Errorf("missing %s artifact", format)
		}
	}
	if !strings.HasPrefix(string(result.Artifacts[FormatSVG]), "<svg") {
		t.Error("svg artifact is not SVG")
	}
	if !strings.HasPrefix(string(result.Artifacts[FormatDOT]), "digraph") {
		t.Error("dot artifact is not DOT")
	}
}

func TestExecuteSkipRoute(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), testDoc(), Options{
		SkipRoute: true,
		Formats:   []string{FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if result.Layout.Routes != nil {
		t.Error("SkipRoute should leave Routes nil")
	}
}

func TestExecuteInvalidDirection(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	_, err := runner.Execute(context.Background(), testDoc(), Options{Direction: "NE"})
	if err == nil || !strings.Contains(err.Error(), "invalid direction") {
		t.Errorf("err = %v, want invalid direction", err)
	}
}

func TestExecuteInvalidFormat(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	_, err := runner.Execute(context.Background(), testDoc(), Options{Formats: []string{"gif"}})
	if err == nil || !strings.Contains(err.Error(), "invalid format") {
		t.Errorf("err = %v, want invalid format", err)
	}
}

func TestExecuteInvalidDocument(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	doc := testDoc()
	doc.Edges = append(doc.Edges, graph.Edge{ID: "bad", SourceID: "a", TargetID: "ghost"})
	_, err := runner.Execute(context.Background(), doc, Options{})
	if err == nil || !strings.Contains(err.Error(), "invalid document") {
		t.Errorf("err = %v, want invalid document", err)
	}
}

func TestExecuteCaching(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()

	opts := Options{Formats: []string{FormatJSON}}

	first, err := runner.Execute(ctx, testDoc(), opts)
	if err != nil {
		t.Fatalf("first Execute error: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Error("first run should miss the cache")
	}

	second, err := runner.Execute(ctx, testDoc(), Options{Formats: []string{FormatJSON}})
	if err != nil {
		t.Fatalf("second Execute error: %v", err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run cache info = %+v, want hits", second.CacheInfo)
	}
	if len(second.Layout.Positions) != len(first.Layout.Positions) {
		t.Error("cached layout differs from computed layout")
	}

	// Different options must not share cache entries.
	third, err := runner.Execute(ctx, testDoc(), Options{Direction: "LR", Formats: []string{FormatJSON}})
	if err != nil {
		t.Fatalf("third Execute error: %v", err)
	}
	if third.CacheInfo.LayoutHit {
		t.Error("changed direction should miss the layout cache")
	}
}

func TestExecuteCachingUnnamedEdges(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()

	// Documents from the canvas layer often arrive with unnamed edges. The
	// generated ids must be stable across runs, or the second run would
	// hash a different document and never see the first run's entries.
	unnamed := func() graph.Document {
		d := testDoc()
		for i := range d.Edges {
			d.Edges[i].ID = ""
		}
		return d
	}

	first, err := runner.Execute(ctx, unnamed(), Options{Formats: []string{FormatJSON}})
	if err != nil {
		t.Fatalf("first Execute error: %v", err)
	}
	second, err := runner.Execute(ctx, unnamed(), Options{Formats: []string{FormatJSON}})
	if err != nil {
		t.Fatalf("second Execute error: %v", err)
	}

	if first.DocHash != second.DocHash {
		t.Errorf("DocHash differs across identical runs: %q vs %q", first.DocHash, second.DocHash)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run cache info = %+v, want hits", second.CacheInfo)
	}
	for id := range first.Layout.Routes {
		if _, ok := second.Layout.Routes[id]; !ok {
			t.Errorf("route id %q from first run missing in second", id)
		}
	}
}

func TestComputeLayoutStandalone(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	layout, err := runner.ComputeLayout(context.Background(), testDoc(), Options{Direction: "LR"})
	if err != nil {
		t.Fatalf("ComputeLayout error: %v", err)
	}
	if layout.Direction != "LR" {
		t.Errorf("Direction = %q, want LR", layout.Direction)
	}
	if len(layout.Layers) != 3 {
		t.Errorf("Layers = %d, want 3", len(layout.Layers))
	}
}
