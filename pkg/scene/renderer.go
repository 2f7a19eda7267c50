package scene

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/matzehuels/pagemarks/pkg/geom"
	"github.com/matzehuels/pagemarks/pkg/markers"
)

// DocumentRenderer serves page breaks from a scrollable document.
//
// Anchors are stored in document coordinates. The document's origin sits at
// the viewport origin shifted back by the scroll offset along the layout
// axis, so an anchor at document position y appears on screen at
// viewport.Top + y - scroll.
type DocumentRenderer struct {
	axis    geom.Axis
	anchors []markers.Anchor

	mu       sync.RWMutex
	scroll   float64
	extent   float64
	vertical bool
}

// NewDocumentRenderer creates a renderer over anchors.
func NewDocumentRenderer(anchors []markers.Anchor, vertical bool, axis geom.Axis) *DocumentRenderer {
	r := &DocumentRenderer{
		axis:     axis,
		anchors:  append([]markers.Anchor(nil), anchors...),
		vertical: vertical,
	}
	for _, a := range r.anchors {
		r.extent = math.Max(r.extent, a.Rect.End(axis))
	}
	return r
}

// VisiblePageBreaks returns the anchors intersecting viewport along the
// layout axis, translated to screen space and ordered by position.
func (r *DocumentRenderer) VisiblePageBreaks(ctx context.Context, viewport geom.Rect) ([]markers.Anchor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	scroll := r.scroll
	r.mu.RUnlock()

	shift := geom.Point{X: viewport.Left, Y: viewport.Top}
	if r.axis == geom.AxisHorizontal {
		shift.X -= scroll
	} else {
		shift.Y -= scroll
	}

	var visible []markers.Anchor
	for _, a := range r.anchors {
		a.FrameOffset = geom.Point{X: a.FrameOffset.X + shift.X, Y: a.FrameOffset.Y + shift.Y}
		sr := a.ScreenRect()
		if sr.End(r.axis) <= viewport.Start(r.axis) || sr.Start(r.axis) >= viewport.End(r.axis) {
			continue
		}
		visible = append(visible, a)
	}

	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].ScreenRect().Start(r.axis) < visible[j].ScreenRect().Start(r.axis)
	})
	return visible, nil
}

// IsVerticalLayout reports the document's flow mode.
func (r *DocumentRenderer) IsVerticalLayout() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.vertical
}

// SetVertical switches between scrolling and paginated flow.
func (r *DocumentRenderer) SetVertical(v bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vertical = v
}

// SetDocumentExtent sets the document length along the layout axis.
// Values smaller than the furthest anchor are ignored.
func (r *DocumentRenderer) SetDocumentExtent(v float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.extent = math.Max(r.extent, v)
}

// Scroll returns the current scroll offset.
func (r *DocumentRenderer) Scroll() float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.scroll
}

// ScrollTo moves the document so that offset v is at the viewport start.
// The offset is kept within [0, document extent].
func (r *DocumentRenderer) ScrollTo(v float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scroll = math.Max(0, math.Min(v, r.extent))
}

// ScrollBy moves the document by delta.
func (r *DocumentRenderer) ScrollBy(delta float64) {
	r.ScrollTo(r.Scroll() + delta)
}

// Extent returns the document length along the layout axis.
func (r *DocumentRenderer) Extent() float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.extent
}

var _ markers.Renderer = (*DocumentRenderer)(nil)

// StaticRenderer reports the same screen-space anchors on every call,
// regardless of viewport. It stands in for a paginated renderer whose page
// breaks are already known.
type StaticRenderer struct {
	Anchors  []markers.Anchor
	Vertical bool
}

// VisiblePageBreaks returns a copy of the anchors.
func (r StaticRenderer) VisiblePageBreaks(ctx context.Context, _ geom.Rect) ([]markers.Anchor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]markers.Anchor(nil), r.Anchors...), nil
}

// IsVerticalLayout reports r.Vertical.
func (r StaticRenderer) IsVerticalLayout() bool { return r.Vertical }

var _ markers.Renderer = StaticRenderer{}
