package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	l := NoopLayoutHooks{}
	l.OnCycleStart(ctx)
	l.OnCycleComplete(ctx, 3, 1, 2, time.Millisecond)
	l.OnCycleCoalesced(ctx)
	l.OnFetchError(ctx, errors.New("boom"))

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "layout")
	c.OnCacheMiss(ctx, "layout")
	c.OnCacheSet(ctx, "layout", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "/v1/layout")
	h.OnResponse(ctx, "POST", "/v1/layout", 200, time.Second)
}

func TestRegistry(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	if _, ok := Layout().(NoopLayoutHooks); !ok {
		t.Errorf("Layout() = %T, want NoopLayoutHooks", Layout())
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("Cache() = %T, want NoopCacheHooks", Cache())
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Errorf("HTTP() = %T, want NoopHTTPHooks", HTTP())
	}

	layout, cache, http := &countingLayout{}, &countingCache{}, &countingHTTP{}
	SetLayoutHooks(layout)
	SetCacheHooks(cache)
	SetHTTPHooks(http)

	ctx := context.Background()
	Layout().OnCycleStart(ctx)
	Cache().OnCacheHit(ctx, "layout")
	HTTP().OnRequest(ctx, "GET", "/healthz")

	if layout.cycles != 1 || cache.hits != 1 || http.requests != 1 {
		t.Errorf("installed hooks not called: cycles=%d hits=%d requests=%d",
			layout.cycles, cache.hits, http.requests)
	}

	Reset()
	if Layout() == LayoutHooks(layout) {
		t.Error("Reset() kept the installed layout hooks")
	}
}

func TestSetNilRestoresNoop(t *testing.T) {
	t.Cleanup(Reset)

	SetCacheHooks(&countingCache{})
	SetCacheHooks(nil)

	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("Cache() after SetCacheHooks(nil) = %T, want NoopCacheHooks", Cache())
	}
}

type countingLayout struct {
	NoopLayoutHooks
	cycles int
}

func (h *countingLayout) OnCycleStart(context.Context) { h.cycles++ }

type countingCache struct {
	NoopCacheHooks
	hits int
}

func (h *countingCache) OnCacheHit(context.Context, string) { h.hits++ }

type countingHTTP struct {
	NoopHTTPHooks
	requests int
}

func (h *countingHTTP) OnRequest(context.Context, string, string) { h.requests++ }
