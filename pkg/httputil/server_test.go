package httputil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/saxonthune/flowgrid/pkg/graph"
	"github.com/saxonthune/flowgrid/pkg/pipeline"
	"github.com/saxonthune/flowgrid/pkg/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(nil, nil, logger)
	srv := NewServer(runner, store.NewMemoryStore(), logger)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func testBody() []byte {
	body, _ := json.Marshal(map[string]any{
		"document": graph.Document{
			Nodes: []graph.Node{
				{ID: "a", Width: 100, Height: 50},
				{ID: "b", Width: 100, Height: 50},
			},
			Edges: []graph.Edge{{ID: "e1", SourceID: "a", TargetID: "b"}},
		},
		"options": pipeline.Options{Direction: "TB"},
	})
	return body
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}
}

func TestLayoutEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/layout", "application/json", bytes.NewReader(testBody()))
	if err != nil {
		t.Fatalf("POST /api/layout: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var got layoutResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got.Layout.Positions) != 2 {
		t.Errorf("positions = %d, want 2", len(got.Layout.Positions))
	}
	if got.Layout.Layers["a"] != 0 || got.Layout.Layers["b"] != 1 {
		t.Errorf("layers = %v", got.Layout.Layers)
	}
	if len(got.Layout.Routes) != 1 {
		t.Errorf("routes = %d, want 1", len(got.Layout.Routes))
	}
}

func TestRouteEndpoint(t *testing.T) {
	ts := newTestServer(t)

	body, _ := json.Marshal(map[string]any{
		"document": graph.Document{
			Nodes: []graph.Node{
				{ID: "a", X: 0, Y: 0, Width: 100, Height: 50},
				{ID: "b", X: 300, Y: 0, Width: 100, Height: 50},
			},
			Edges: []graph.Edge{{ID: "e1", SourceID: "a", TargetID: "b"}},
		},
	})
	resp, err := http.Post(ts.URL+"/api/route", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /api/route: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var got routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got.Routes["e1"]) < 2 {
		t.Errorf("route e1 = %v, want at least 2 waypoints", got.Routes["e1"])
	}
}

func TestLayoutEndpointInvalidDocument(t *testing.T) {
	ts := newTestServer(t)

	body, _ := json.Marshal(map[string]any{
		"document": graph.Document{
			Nodes: []graph.Node{{ID: "a"}},
			Edges: []graph.Edge{{SourceID: "a", TargetID: "ghost"}},
		},
	})
	resp, err := http.Post(ts.URL+"/api/layout", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /api/layout: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	var envelope errorEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if envelope.Error.Code != "INVALID_DOCUMENT" {
		t.Errorf("code = %q, want INVALID_DOCUMENT", envelope.Error.Code)
	}
}

func TestPipelineEndpoint(t *testing.T) {
	ts := newTestServer(t)

	body, _ := json.Marshal(map[string]any{
		"document": graph.Document{
			Nodes: []graph.Node{{ID: "a", Width: 100, Height: 50}},
		},
		"options": pipeline.Options{Formats: []string{"svg", "json"}},
	})
	resp, err := http.Post(ts.URL+"/api/pipeline", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /api/pipeline: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var got pipelineResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.DocHash == "" {
		t.Error("missing doc_hash")
	}
	if got.Artifacts["svg"] == "" || got.Artifacts["json"] == "" {
		t.Errorf("missing artifacts: %v", mapsKeys(got.Artifacts))
	}
}

func TestLayoutStoreCRUD(t *testing.T) {
	ts := newTestServer(t)

	// Save
	resp, err := http.Post(ts.URL+"/api/layouts", "application/json", bytes.NewReader(testBody()))
	if err != nil {
		t.Fatalf("POST /api/layouts: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("save status = %d, want 201", resp.StatusCode)
	}
	var rec store.Record
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	resp.Body.Close()
	if rec.ID == "" {
		t.Fatal("saved record has no ID")
	}

	// Get
	resp, err = http.Get(ts.URL + "/api/layouts/" + rec.ID)
	if err != nil {
		t.Fatalf("GET layout: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d, want 200", resp.StatusCode)
	}
	resp.Body.Close()

	// List
	resp, err = http.Get(ts.URL + "/api/layouts")
	if err != nil {
		t.Fatalf("GET layouts: %v", err)
	}
	var recs []store.Record
	if err := json.NewDecoder(resp.Body).Decode(&recs); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	resp.Body.Close()
	if len(recs) != 1 {
		t.Errorf("list len = %d, want 1", len(recs))
	}

	// Delete
	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/api/layouts/"+rec.ID, nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE layout: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", resp.StatusCode)
	}

	// Get after delete
	resp, err = http.Get(ts.URL + "/api/layouts/" + rec.ID)
	if err != nil {
		t.Fatalf("GET layout: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("get-after-delete status = %d, want 404", resp.StatusCode)
	}
}

func mapsKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
