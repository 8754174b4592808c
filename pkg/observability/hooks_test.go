package observability

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnLoadStart(ctx, "sample:")
	p.OnLoadComplete(ctx, "sample:", 12, 4, time.Second, nil)
	p.OnFilter(ctx, 12, 3)
	p.OnLayoutStart(ctx, 3)
	p.OnLayoutComplete(ctx, 2, time.Second, nil)
	p.OnRenderStart(ctx, []string{"svg"})
	p.OnRenderComplete(ctx, []string{"svg"}, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "dataset")
	c.OnCacheMiss(ctx, "layout")
	c.OnCacheSet(ctx, "artifact", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "timeline.example", "/api/timeline/people")
	h.OnResponse(ctx, "GET", "timeline.example", "/api/timeline/people", 200, time.Second)
	h.OnError(ctx, "GET", "timeline.example", "/api/timeline/people", nil)
}

type recordingHooks struct {
	NoopPipelineHooks
	filtered []int
}

func (r *recordingHooks) OnFilter(_ context.Context, _, after int) {
	r.filtered = append(r.filtered, after)
}

func TestRegistry(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	defaults := []struct {
		name string
		ok   bool
	}{
		{"pipeline", isType[NoopPipelineHooks](Pipeline())},
		{"cache", isType[NoopCacheHooks](Cache())},
		{"http", isType[NoopHTTPHooks](HTTP())},
	}
	for _, d := range defaults {
		if !d.ok {
			t.Errorf("%s hooks are not the no-op default", d.name)
		}
	}

	rec := &recordingHooks{}
	SetPipelineHooks(rec)
	SetPipelineHooks(nil)
	Pipeline().OnFilter(context.Background(), 26, 7)
	if len(rec.filtered) != 1 || rec.filtered[0] != 7 {
		t.Errorf("recorded %v, want [7]; nil must not replace installed hooks", rec.filtered)
	}

	Reset()
	if !isType[NoopPipelineHooks](Pipeline()) {
		t.Error("Reset did not restore the no-op pipeline hooks")
	}
}

func isType[T any](v any) bool {
	_, ok := v.(T)
	return ok
}

func TestPrometheusHooks(t *testing.T) {
	defer Reset()
	ctx := context.Background()

	h := NewPrometheusHooks()
	if NewPrometheusHooks() != h {
		t.Fatal("NewPrometheusHooks should return the same collectors")
	}
	h.Register()
	if Pipeline() != PipelineHooks(h) {
		t.Error("Register should install pipeline hooks")
	}

	Pipeline().OnLoadComplete(ctx, "sample:", 10, 4, time.Millisecond, nil)
	Pipeline().OnFilter(ctx, 10, 5)
	Pipeline().OnLayoutComplete(ctx, 4, time.Millisecond, nil)
	Cache().OnCacheHit(ctx, "layout")
	Cache().OnCacheMiss(ctx, "layout")
	HTTP().OnResponse(ctx, "GET", "timeline.example", "/", 200, time.Millisecond)

	if got := testutil.ToFloat64(h.People); got != 10 {
		t.Errorf("people gauge = %v, want 10", got)
	}
	if got := testutil.ToFloat64(h.FilterRatio); got != 0.5 {
		t.Errorf("filter ratio = %v, want 0.5", got)
	}
	if got := testutil.ToFloat64(h.CacheRequests.WithLabelValues("layout", "hit")); got < 1 {
		t.Errorf("cache hits = %v, want >= 1", got)
	}
	if got := testutil.ToFloat64(h.StageTotal.WithLabelValues("layout", "ok")); got < 1 {
		t.Errorf("layout stage total = %v, want >= 1", got)
	}
}
