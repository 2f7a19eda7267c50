package markers

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pagemarks/pkg/geom"
	"github.com/matzehuels/pagemarks/pkg/observability"
)

// Option configures a [Layout].
type Option func(*Layout)

// WithLogger sets the logger used for cycle diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(lay *Layout) {
		if l != nil {
			lay.logger = l
		}
	}
}

// WithMeasurer sets how attached markers are measured.
func WithMeasurer(m Measurer) Option {
	return func(lay *Layout) {
		if m != nil {
			lay.factory.Measurer = m
		}
	}
}

// WithAxis sets the layout axis (default [geom.AxisVertical]).
func WithAxis(a geom.Axis) Option {
	return func(lay *Layout) { lay.factory.Axis = a }
}

// WithRelaxationPasses sets how many passes run after the initial one.
// Negative values are treated as zero.
func WithRelaxationPasses(n int) Option {
	return func(lay *Layout) {
		if n < 0 {
			n = 0
		}
		lay.passes = n
	}
}

// WithFetchTimeout bounds how long a cycle waits for the renderer. When the
// bound passes, the cycle ends with nothing to show even if the renderer
// ignores its context; the abandoned call finishes in the background.
// Zero (the default) waits indefinitely.
func WithFetchTimeout(d time.Duration) Option {
	return func(lay *Layout) { lay.fetchTimeout = d }
}

// WithHooks overrides the globally registered layout hooks.
func WithHooks(h observability.LayoutHooks) Option {
	return func(lay *Layout) { lay.hooks = h }
}

// WithIDGenerator replaces the random marker ID source.
func WithIDGenerator(fn func() string) Option {
	return func(lay *Layout) { lay.factory.NewID = fn }
}
