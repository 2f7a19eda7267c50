package markers

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pagemarks/pkg/geom"
	"github.com/matzehuels/pagemarks/pkg/observability"
)

// CycleStats summarizes the most recent update cycle.
type CycleStats struct {
	Anchors  int           `json:"anchors"`
	Dropped  int           `json:"dropped"`
	Markers  map[Edge]int  `json:"markers"`
	Passes   map[Edge]int  `json:"passes"`
	Vertical bool          `json:"vertical"`
	Viewport geom.Rect     `json:"viewport"`
	Duration time.Duration `json:"duration"`
	FetchErr error         `json:"-"`
}

// TotalMarkers returns the number of markers placed across all edges.
func (s CycleStats) TotalMarkers() int {
	n := 0
	for _, v := range s.Markers {
		n += v
	}
	return n
}

// TotalPasses returns the relaxation passes used across all edges.
func (s CycleStats) TotalPasses() int {
	n := 0
	for _, v := range s.Passes {
		n += v
	}
	return n
}

// Layout owns the leading and trailing containers and drives update cycles.
//
// A Layout is safe for concurrent use. Cycles are serialized; see
// [Layout.UpdatePageBreaks].
type Layout struct {
	containers map[Edge]*Container
	factory    Factory

	passes       int
	fetchTimeout time.Duration
	logger       *log.Logger
	hooks        observability.LayoutHooks

	// sem admits one cycle at a time.
	sem chan struct{}

	mu        sync.Mutex // guards fields below
	renderer  Renderer
	viewport  geom.Rect
	requested uint64
	adopted   uint64
	last      CycleStats

	// stateMu guards container contents against concurrent snapshots.
	stateMu sync.RWMutex
}

// New creates a layout for a viewport with the given containers. Either
// container may be nil when the application has no affordance on that edge;
// anchors routed there are dropped.
func New(viewport geom.Rect, leading, trailing *Container, opts ...Option) *Layout {
	l := &Layout{
		containers: make(map[Edge]*Container, 2),
		passes:     MaxRelaxationPasses,
		logger:     log.Default(),
		sem:        make(chan struct{}, 1),
		viewport:   viewport,
	}
	if leading != nil {
		leading.Edge = EdgeLeading
		l.containers[EdgeLeading] = leading
	}
	if trailing != nil {
		trailing.Edge = EdgeTrailing
		l.containers[EdgeTrailing] = trailing
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// SetRenderer installs or replaces the renderer consulted by later cycles.
func (l *Layout) SetRenderer(r Renderer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.renderer = r
}

// SetViewport updates the viewport rectangle, in screen coordinates.
func (l *Layout) SetViewport(r geom.Rect) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.viewport = r
}

// Viewport returns the current viewport rectangle.
func (l *Layout) Viewport() geom.Rect {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.viewport
}

// Container returns the container on edge, or nil if none was configured.
func (l *Layout) Container(e Edge) *Container { return l.containers[e] }

// LastCycle returns statistics for the most recently completed cycle.
func (l *Layout) LastCycle() CycleStats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.last
}

// Snapshot copies the markers currently attached to each configured edge.
func (l *Layout) Snapshot() map[Edge][]Marker {
	l.stateMu.RLock()
	defer l.stateMu.RUnlock()
	out := make(map[Edge][]Marker, len(l.containers))
	for e, c := range l.containers {
		out[e] = c.snapshot()
	}
	return out
}

// UpdatePageBreaks runs one layout cycle and returns once markers are
// positioned, or immediately when nothing is visible.
//
// Cycles never overlap. A call made while another cycle runs waits for it
// and then runs a fresh cycle; calls that queued up behind the same cycle are
// all served by whichever of them runs first. The only error returned is
// ctx.Err() when ctx ends while waiting for the running cycle.
func (l *Layout) UpdatePageBreaks(ctx context.Context) error {
	l.mu.Lock()
	l.requested++
	gen := l.requested
	l.mu.Unlock()

	select {
	case l.sem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-l.sem }()

	l.mu.Lock()
	if l.adopted >= gen {
		l.mu.Unlock()
		l.hookset().OnCycleCoalesced(ctx)
		return nil
	}
	l.adopted = l.requested
	renderer, viewport := l.renderer, l.viewport
	l.mu.Unlock()

	stats := l.cycle(ctx, renderer, viewport)

	l.mu.Lock()
	l.last = stats
	l.mu.Unlock()
	return nil
}

func (l *Layout) hookset() observability.LayoutHooks {
	if l.hooks != nil {
		return l.hooks
	}
	return observability.Layout()
}

func (l *Layout) cycle(ctx context.Context, renderer Renderer, viewport geom.Rect) CycleStats {
	start := time.Now()
	hooks := l.hookset()
	hooks.OnCycleStart(ctx)

	stats := CycleStats{
		Markers:  make(map[Edge]int, len(l.containers)),
		Passes:   make(map[Edge]int, len(l.containers)),
		Viewport: viewport,
	}
	defer func() {
		stats.Duration = time.Since(start)
		hooks.OnCycleComplete(ctx, stats.TotalMarkers(), stats.Dropped, stats.TotalPasses(), stats.Duration)
	}()

	l.stateMu.Lock()
	for _, c := range l.containers {
		c.clear()
	}
	l.stateMu.Unlock()

	if renderer == nil {
		l.logger.Debug("no renderer installed, skipping page breaks")
		return stats
	}
	stats.Vertical = renderer.IsVerticalLayout()

	anchors, err := l.fetch(ctx, renderer, viewport)
	if err != nil {
		stats.FetchErr = err
		hooks.OnFetchError(ctx, err)
		l.logger.Warn("fetch visible page breaks", "err", err)
		return stats
	}
	if len(anchors) == 0 {
		return stats
	}
	stats.Anchors = len(anchors)

	l.stateMu.Lock()
	defer l.stateMu.Unlock()

	for i, a := range anchors {
		edge := route(a, viewport, stats.Vertical)
		c := l.containers[edge]
		if c == nil {
			stats.Dropped++
			l.logger.Debug("dropping page break for missing container", "title", a.Title, "edge", edge)
			continue
		}
		l.factory.Create(a, i, c, viewport, stats.Vertical)
	}

	origin := geom.Point{X: viewport.Left, Y: viewport.Top}
	for _, e := range Edges {
		c := l.containers[e]
		if c == nil {
			continue
		}
		stats.Markers[e] = c.Len()
		if c.Len() > 1 {
			stats.Passes[e] = Relax(c, origin, l.factory.Axis, l.passes)
		}
	}

	l.logger.Debug("laid out page breaks",
		"anchors", stats.Anchors,
		"leading", stats.Markers[EdgeLeading],
		"trailing", stats.Markers[EdgeTrailing],
		"dropped", stats.Dropped,
		"passes", stats.TotalPasses())
	return stats
}

// fetch asks r for the visible page breaks. With a fetch timeout the call
// runs on its own goroutine so that a renderer ignoring ctx cannot block the
// cycle; its late answer is discarded.
func (l *Layout) fetch(ctx context.Context, r Renderer, viewport geom.Rect) ([]Anchor, error) {
	if l.fetchTimeout <= 0 {
		return r.VisiblePageBreaks(ctx, viewport)
	}

	ctx, cancel := context.WithTimeout(ctx, l.fetchTimeout)
	defer cancel()

	type answer struct {
		anchors []Anchor
		err     error
	}
	ch := make(chan answer, 1)
	go func() {
		anchors, err := r.VisiblePageBreaks(ctx, viewport)
		ch <- answer{anchors, err}
	}()

	select {
	case a := <-ch:
		return a.anchors, a.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// route picks the container edge for an anchor. Vertical documents use the
// trailing edge only; paginated ones honor the anchor side and otherwise
// compare the anchor's screen x with the viewport's horizontal midpoint.
func route(a Anchor, viewport geom.Rect, vertical bool) Edge {
	if vertical {
		return EdgeTrailing
	}
	switch a.Side {
	case SideLeft:
		return EdgeLeading
	case SideRight:
		return EdgeTrailing
	}
	if a.ScreenRect().Left >= viewport.CenterX() {
		return EdgeTrailing
	}
	return EdgeLeading
}
