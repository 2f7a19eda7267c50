package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pagemarks/pkg/cache"
	perrors "github.com/matzehuels/pagemarks/pkg/errors"
	"github.com/matzehuels/pagemarks/pkg/markers"
	"github.com/matzehuels/pagemarks/pkg/scene"
)

// Runner lays out scenes with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different scenes.
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

// Run lays out s and reports whether the result came from the cache.
func (r *Runner) Run(ctx context.Context, s *scene.Scene, opts Options) (*Result, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, fmt.Errorf("invalid options: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = r.Logger
	}

	if err := s.Validate(); err != nil {
		return nil, false, err
	}

	sceneData, err := json.Marshal(s)
	if err != nil {
		return nil, false, perrors.Wrap(perrors.ErrCodeInternal, err, "serialize scene")
	}
	sceneHash := cache.Hash(sceneData)
	cacheKey := r.Keyer.LayoutKey(sceneHash, opts.LayoutKeyOpts(s.Measure.Kind))

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached Result
			if err := json.Unmarshal(data, &cached); err == nil {
				logger.Debug("layout cache hit", "scene", s.Name, "key", cacheKey)
				return &cached, true, nil
			}
			// Undecodable entries fall through to recompute.
		} else if err != nil {
			logger.Warn("cache read failed", "error", err)
		}
	}

	start := time.Now()
	l, _, err := s.NewLayout(
		markers.WithLogger(logger),
		markers.WithRelaxationPasses(opts.RelaxationPasses),
		markers.WithFetchTimeout(opts.FetchTimeout),
	)
	if err != nil {
		return nil, false, err
	}
	if err := l.UpdatePageBreaks(ctx); err != nil {
		return nil, false, perrors.Wrap(perrors.ErrCodeTimeout, err, "layout cancelled")
	}

	stats := l.LastCycle()
	if stats.FetchErr != nil {
		if errors.Is(stats.FetchErr, context.DeadlineExceeded) {
			return nil, false, perrors.Wrap(perrors.ErrCodeTimeout, stats.FetchErr, "fetch page breaks")
		}
		return nil, false, perrors.Wrap(perrors.ErrCodeInternal, stats.FetchErr, "fetch page breaks")
	}

	result := &Result{
		Scene:     s.Name,
		SceneHash: sceneHash,
		Viewport:  s.Viewport,
		Markers:   l.Snapshot(),
		Stats:     stats,
	}
	logger.Info("computed layout",
		"scene", s.Name,
		"markers", result.Count(),
		"dropped", stats.Dropped,
		"duration", time.Since(start))

	if data, err := json.Marshal(result); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, opts.TTL); err != nil {
			logger.Warn("cache write failed", "error", err)
		}
	}
	return result, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
