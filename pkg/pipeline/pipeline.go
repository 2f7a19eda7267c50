// Package pipeline runs scene layouts for the CLI and the HTTP API.
//
// Both entry points load or decode a [scene.Scene], run one update cycle
// against it and serialize the placed markers. Centralizing that here keeps
// caching and defaults identical across frontends.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, hit, err := runner.Run(ctx, sc, pipeline.NewOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, m := range result.Markers[markers.EdgeTrailing] {
//	    fmt.Println(m.Title, m.Rect.Top)
//	}
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pagemarks/pkg/cache"
	perrors "github.com/matzehuels/pagemarks/pkg/errors"
	"github.com/matzehuels/pagemarks/pkg/geom"
	"github.com/matzehuels/pagemarks/pkg/markers"
)

const (
	// DefaultRelaxationPasses matches the layout engine's default.
	DefaultRelaxationPasses = markers.MaxRelaxationPasses

	// MaxRelaxationPasses caps request-supplied pass counts.
	MaxRelaxationPasses = 16

	// DefaultFetchTimeout bounds how long a run waits for anchors.
	DefaultFetchTimeout = 5 * time.Second
)

// Options configures a single run.
type Options struct {
	// RelaxationPasses is the number of passes after the initial one.
	RelaxationPasses int

	// FetchTimeout bounds the anchor fetch. Zero waits indefinitely.
	FetchTimeout time.Duration

	// Refresh bypasses cached results and overwrites them.
	Refresh bool

	// TTL is the lifetime of stored results. Zero uses [cache.TTLLayout].
	TTL time.Duration

	// Logger overrides the runner's logger.
	Logger *log.Logger
}

// NewOptions returns options with defaults applied.
func NewOptions() Options {
	return Options{
		RelaxationPasses: DefaultRelaxationPasses,
		FetchTimeout:     DefaultFetchTimeout,
		TTL:              cache.TTLLayout,
	}
}

// ValidateAndSetDefaults checks the options and fills unset values.
func (o *Options) ValidateAndSetDefaults() error {
	if o.RelaxationPasses < 0 || o.RelaxationPasses > MaxRelaxationPasses {
		return perrors.New(perrors.ErrCodeInvalidInput,
			"relaxation passes must be between 0 and %d, got %d", MaxRelaxationPasses, o.RelaxationPasses)
	}
	if o.FetchTimeout < 0 {
		return perrors.New(perrors.ErrCodeInvalidInput, "fetch timeout cannot be negative")
	}
	if o.TTL <= 0 {
		o.TTL = cache.TTLLayout
	}
	return nil
}

// LayoutKeyOpts returns the options that change the cached result.
func (o Options) LayoutKeyOpts(measurer string) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		RelaxationPasses: o.RelaxationPasses,
		Measurer:         measurer,
	}
}

// Result is the outcome of laying out one scene.
type Result struct {
	Scene     string                            `json:"scene,omitempty"`
	SceneHash string                            `json:"scene_hash"`
	Viewport  geom.Rect                         `json:"viewport"`
	Markers   map[markers.Edge][]markers.Marker `json:"markers"`
	Stats     markers.CycleStats                `json:"stats"`
}

// Count returns the number of markers placed on all edges.
func (r *Result) Count() int {
	n := 0
	for _, ms := range r.Markers {
		n += len(ms)
	}
	return n
}
