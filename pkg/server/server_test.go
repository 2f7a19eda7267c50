package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pagemarks/pkg/buildinfo"
	"github.com/matzehuels/pagemarks/pkg/cache"
	perrors "github.com/matzehuels/pagemarks/pkg/errors"
	"github.com/matzehuels/pagemarks/pkg/geom"
	"github.com/matzehuels/pagemarks/pkg/httputil"
	"github.com/matzehuels/pagemarks/pkg/markers"
	"github.com/matzehuels/pagemarks/pkg/measure"
	"github.com/matzehuels/pagemarks/pkg/observability"
	"github.com/matzehuels/pagemarks/pkg/pipeline"
	"github.com/matzehuels/pagemarks/pkg/scene"
)

func testScene() scene.Scene {
	right := func(title string, top float64) markers.Anchor {
		return markers.Anchor{
			Title: title,
			Side:  markers.SideRight,
			Rect:  geom.Rect{Left: 700, Top: top, Width: 10, Height: 40},
		}
	}
	return scene.Scene{
		Name:     "spread",
		Viewport: geom.Rect{Width: 800, Height: 500},
		Leading:  &geom.Rect{Width: 40, Height: 500},
		Trailing: &geom.Rect{Left: 760, Width: 40, Height: 500},
		Measure:  measure.Config{Kind: measure.KindFixed, Width: 30, Height: 40},
		Anchors:  []markers.Anchor{right("1", 100), right("2", 110), right("3", 260)},
	}
}

func newTestServer(t *testing.T, c cache.Cache) *Server {
	t.Helper()
	logger := log.New(io.Discard)
	return New(pipeline.NewRunner(c, cache.NewScopedKeyer(nil, "api:"), logger), Config{}, logger)
}

func postJSON(t *testing.T, h http.Handler, v any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/v1/layout", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestLayoutEndpoint(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	h := newTestServer(t, c).Handler()

	rec := postJSON(t, h, LayoutRequest{Scene: testScene()})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if rec.Header().Get(httputil.RequestIDHeader) == "" {
		t.Error("missing request id header")
	}

	resp := decodeBody[LayoutResponse](t, rec)
	if resp.CacheHit {
		t.Error("first request should miss")
	}
	trailing := resp.Result.Markers[markers.EdgeTrailing]
	want := []float64{85, 125, 260}
	if len(trailing) != len(want) {
		t.Fatalf("trailing markers = %d, want %d", len(trailing), len(want))
	}
	for i, m := range trailing {
		if m.Rect.Top != want[i] {
			t.Errorf("marker %s top = %v, want %v", m.Title, m.Rect.Top, want[i])
		}
	}

	again := decodeBody[LayoutResponse](t, postJSON(t, h, LayoutRequest{Scene: testScene()}))
	if !again.CacheHit {
		t.Error("second request should hit the cache")
	}

	passes := 0
	fresh := decodeBody[LayoutResponse](t, postJSON(t, h, LayoutRequest{Scene: testScene(), RelaxationPasses: &passes}))
	if fresh.CacheHit {
		t.Error("different pass count should miss")
	}
}

func TestLayoutEndpointErrors(t *testing.T) {
	h := newTestServer(t, nil).Handler()

	invalid := testScene()
	invalid.Leading, invalid.Trailing = nil, nil
	invalid.Viewport.Height = 0
	tooMany := pipeline.MaxRelaxationPasses + 1

	tests := []struct {
		name         string
		contentType  string
		body         string
		wantStatus   int
		wantCode     perrors.Code
		wantProblems int
	}{
		{"malformed json", "application/json", "{", http.StatusBadRequest, perrors.ErrCodeInvalidFormat, 0},
		{"unknown field", "application/json", `{"scene":{},"bogus":1}`, http.StatusBadRequest, perrors.ErrCodeInvalidFormat, 0},
		{"invalid scene", "application/json", mustJSON(t, LayoutRequest{Scene: invalid}), http.StatusBadRequest, perrors.ErrCodeInvalidScene, 2},
		{"bad passes", "application/json", mustJSON(t, LayoutRequest{Scene: testScene(), RelaxationPasses: &tooMany}), http.StatusBadRequest, perrors.ErrCodeInvalidInput, 0},
		{"unsupported type", "text/plain", "hello", http.StatusUnsupportedMediaType, perrors.ErrCodeUnsupported, 0},
		{"non-finite offset", "application/toml", nanOffsetScene, http.StatusBadRequest, perrors.ErrCodeInvalidScene, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/layout", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (%s)", rec.Code, tt.wantStatus, rec.Body)
			}
			body := decodeBody[httputil.ErrorBody](t, rec)
			if body.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", body.Code, tt.wantCode)
			}
			if len(body.Problems) != tt.wantProblems {
				t.Errorf("problems = %v, want %d", body.Problems, tt.wantProblems)
			}
			if body.RequestID != rec.Header().Get(httputil.RequestIDHeader) {
				t.Error("body and header request ids differ")
			}
		})
	}
}

const nanOffsetScene = `
viewport = { left = 0, top = 0, width = 800, height = 500 }
trailing = { left = 760, top = 0, width = 40, height = 500 }
vertical = true

[[anchors]]
title = "1"
vertical_offset = nan
rect = { left = 700, top = 100, width = 10, height = 20 }
`

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestLayoutEndpointYAML(t *testing.T) {
	data, err := os.ReadFile("../scene/testdata/spread.yaml")
	if err != nil {
		t.Fatal(err)
	}
	h := newTestServer(t, nil).Handler()

	req := httptest.NewRequest(http.MethodPost, "/v1/layout?relaxation_passes=1&refresh=true", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/yaml")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	resp := decodeBody[LayoutResponse](t, rec)
	if got := len(resp.Result.Markers[markers.EdgeTrailing]); got != 3 {
		t.Errorf("trailing markers = %d, want 3", got)
	}
	if got := len(resp.Result.Markers[markers.EdgeLeading]); got != 1 {
		t.Errorf("leading markers = %d, want 1", got)
	}

	bad := httptest.NewRequest(http.MethodPost, "/v1/layout?relaxation_passes=many", bytes.NewReader(data))
	bad.Header.Set("Content-Type", "application/yaml")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, bad)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad query status = %d, want 400", rec.Code)
	}
}

func TestRequestIDPropagates(t *testing.T) {
	h := newTestServer(t, nil).Handler()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(httputil.RequestIDHeader, "trace-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get(httputil.RequestIDHeader); got != "trace-1" {
		t.Errorf("request id = %q, want caller's", got)
	}
}

type pingCache struct {
	cache.NullCache
	err error
}

func (c pingCache) Ping(context.Context) error { return c.err }

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		cache      cache.Cache
		wantStatus int
		wantBody   string
	}{
		{"no probe", nil, http.StatusOK, "ok"},
		{"cache up", pingCache{}, http.StatusOK, "ok"},
		{"cache down", pingCache{err: errors.New("refused")}, http.StatusServiceUnavailable, "degraded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newTestServer(t, tt.cache).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := decodeBody[HealthResponse](t, rec).Status; got != tt.wantBody {
				t.Errorf("status field = %q, want %q", got, tt.wantBody)
			}
		})
	}
}

func TestVersion(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(t, nil).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/version", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if v := decodeBody[buildinfo.Info](t, rec); v.Version == "" {
		t.Error("empty version")
	}
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	mu    sync.Mutex
	paths []string
	codes []int
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, path string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.paths = append(h.paths, path)
	h.codes = append(h.codes, status)
}

func TestHTTPHooks(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	h := newTestServer(t, nil).Handler()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/version", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if len(hooks.paths) != 2 {
		t.Fatalf("responses = %v", hooks.paths)
	}
	if hooks.paths[0] != "/version" || hooks.codes[0] != http.StatusOK {
		t.Errorf("first = %s %d", hooks.paths[0], hooks.codes[0])
	}
	if hooks.codes[1] != http.StatusNotFound {
		t.Errorf("unknown route status = %d, want 404", hooks.codes[1])
	}
}

func TestClient(t *testing.T) {
	srv := httptest.NewServer(newTestServer(t, nil).Handler())
	defer srv.Close()

	client := NewClient(srv.URL + "/")
	client.HTTP = srv.Client()

	sc := testScene()
	res, hit, err := client.Layout(context.Background(), &sc, pipeline.NewOptions())
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("null cache cannot hit")
	}
	if res.Count() != 3 {
		t.Errorf("count = %d, want 3", res.Count())
	}

	sc.Trailing, sc.Leading = nil, nil
	if _, _, err := client.Layout(context.Background(), &sc, pipeline.NewOptions()); !perrors.Is(err, perrors.ErrCodeInvalidScene) {
		t.Errorf("err = %v, want invalid scene", err)
	}
}
