package observability

import (
	"context"
	"testing"
	"time"
)

type recordingRouteHooks struct {
	started  int
	complete int
	missed   []string
}

func (r *recordingRouteHooks) OnRouteStart(_ context.Context, edges, obstacles int) {
	r.started++
}

func (r *recordingRouteHooks) OnRouteComplete(_ context.Context, routed, unrouted int, _ time.Duration) {
	r.complete++
}

func (r *recordingRouteHooks) OnPathNotFound(_ context.Context, edgeID string) {
	r.missed = append(r.missed, edgeID)
}

func TestDefaultHooksAreNoop(t *testing.T) {
	Reset()
	ctx := context.Background()

	// Must not panic.
	Layout().OnLayoutStart(ctx, "TB", 10)
	Layout().OnLayoutComplete(ctx, "TB", time.Millisecond)
	Route().OnRouteStart(ctx, 5, 20)
	Route().OnPathNotFound(ctx, "e1")
	Cache().OnCacheHit(ctx, "layout")
}

func TestSetRouteHooks(t *testing.T) {
	t.Cleanup(Reset)

	rec := &recordingRouteHooks{}
	SetRouteHooks(rec)

	ctx := context.Background()
	Route().OnRouteStart(ctx, 3, 7)
	Route().OnPathNotFound(ctx, "edge-9")
	Route().OnRouteComplete(ctx, 2, 1, time.Millisecond)

	if rec.started != 1 || rec.complete != 1 {
		t.Errorf("started=%d complete=%d, want 1/1", rec.started, rec.complete)
	}
	if len(rec.missed) != 1 || rec.missed[0] != "edge-9" {
		t.Errorf("missed = %v, want [edge-9]", rec.missed)
	}
}

func TestSetNilKeepsCurrent(t *testing.T) {
	t.Cleanup(Reset)

	rec := &recordingRouteHooks{}
	SetRouteHooks(rec)
	SetRouteHooks(nil)

	Route().OnRouteStart(context.Background(), 1, 1)
	if rec.started != 1 {
		t.Error("nil registration should keep the previous hooks")
	}
}
