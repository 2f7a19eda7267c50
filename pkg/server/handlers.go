package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/matzehuels/pagemarks/pkg/buildinfo"
	perrors "github.com/matzehuels/pagemarks/pkg/errors"
	"github.com/matzehuels/pagemarks/pkg/httputil"
	"github.com/matzehuels/pagemarks/pkg/pipeline"
	"github.com/matzehuels/pagemarks/pkg/scene"
)

// LayoutRequest is the JSON body of POST /v1/layout.
type LayoutRequest struct {
	Scene scene.Scene `json:"scene"`

	// RelaxationPasses overrides the server default when set.
	RelaxationPasses *int `json:"relaxation_passes,omitempty"`

	// Refresh bypasses cached results.
	Refresh bool `json:"refresh,omitempty"`
}

// LayoutResponse is the body of a successful layout.
type LayoutResponse struct {
	RequestID string           `json:"request_id"`
	CacheHit  bool             `json:"cache_hit"`
	Result    *pipeline.Result `json:"result"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
	Cache  string `json:"cache,omitempty"`
}

// pinger is implemented by caches that can check their backend.
type pinger interface {
	Ping(ctx context.Context) error
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeLayoutRequest(w, r)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	opts := s.cfg.Defaults
	if req.RelaxationPasses != nil {
		opts.RelaxationPasses = *req.RelaxationPasses
	}
	opts.Refresh = req.Refresh

	res, hit, err := s.runner.Run(r.Context(), &req.Scene, opts)
	if err != nil {
		if perrors.Is(err, perrors.ErrCodeInvalidScene) {
			httputil.WriteError(w, r, err, scene.Problems(err)...)
			return
		}
		s.logger.Warn("layout failed", "error", err, "request_id", httputil.RequestIDFrom(r.Context()))
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, LayoutResponse{
		RequestID: httputil.RequestIDFrom(r.Context()),
		CacheHit:  hit,
		Result:    res,
	})
}

// decodeLayoutRequest accepts a JSON LayoutRequest, or a bare TOML or YAML
// scene with options in the query string.
func (s *Server) decodeLayoutRequest(w http.ResponseWriter, r *http.Request) (*LayoutRequest, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "read body")
	}

	mediaType := "application/json"
	if ct := r.Header.Get("Content-Type"); ct != "" {
		if mediaType, _, err = mime.ParseMediaType(ct); err != nil {
			return nil, perrors.Wrap(perrors.ErrCodeUnsupported, err, "content type %q", ct)
		}
	}

	var format scene.Format
	switch mediaType {
	case "application/json":
		var req LayoutRequest
		dec := json.NewDecoder(bytes.NewReader(body))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			return nil, perrors.Wrap(perrors.ErrCodeInvalidFormat, err, "decode layout request")
		}
		return &req, nil
	case "application/toml":
		format = scene.FormatTOML
	case "application/yaml", "application/x-yaml", "text/yaml":
		format = scene.FormatYAML
	default:
		return nil, perrors.New(perrors.ErrCodeUnsupported, "unsupported content type %q", mediaType)
	}

	sc, err := scene.Decode(bytes.NewReader(body), format)
	if err != nil {
		return nil, err
	}
	req := &LayoutRequest{Scene: *sc}

	q := r.URL.Query()
	if v := q.Get("relaxation_passes"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "relaxation_passes")
		}
		req.RelaxationPasses = &n
	}
	if v := q.Get("refresh"); v != "" {
		if req.Refresh, err = strconv.ParseBool(v); err != nil {
			return nil, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "refresh")
		}
	}
	return req, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok"}
	status := http.StatusOK
	if p, ok := s.runner.Cache.(pinger); ok {
		if err := p.Ping(r.Context()); err != nil {
			resp.Status, resp.Cache = "degraded", err.Error()
			status = http.StatusServiceUnavailable
		} else {
			resp.Cache = "ok"
		}
	}
	httputil.WriteJSON(w, status, resp)
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, buildinfo.Get())
}
