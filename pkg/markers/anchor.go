package markers

import (
	"context"

	"github.com/matzehuels/pagemarks/pkg/geom"
)

// Anchor is a visible page break as reported by the renderer.
type Anchor struct {
	// Title is the label shown in the marker, typically a print page number.
	Title string `json:"title" toml:"title" yaml:"title"`

	// Rect is the anchor's box in the coordinate space of the frame that
	// renders it.
	Rect geom.Rect `json:"rect" toml:"rect" yaml:"rect"`

	// FrameOffset is the screen position of that frame's origin.
	FrameOffset geom.Point `json:"frame_offset" toml:"frame_offset" yaml:"frame_offset"`

	// Side selects the container in paginated layouts.
	Side Side `json:"side" toml:"side" yaml:"side"`

	// VerticalOffset is subtracted from the anchor position when the
	// document flows vertically, normalizing it to one spine item.
	VerticalOffset float64 `json:"vertical_offset,omitempty" toml:"vertical_offset" yaml:"vertical_offset,omitempty"`
}

// ScreenRect returns the anchor's box in screen coordinates.
func (a Anchor) ScreenRect() geom.Rect { return a.Rect.Offset(a.FrameOffset) }

// Renderer is the document engine collaborator.
type Renderer interface {
	// VisiblePageBreaks returns the page breaks visible in viewport, in
	// document order. An empty result means nothing to show.
	VisiblePageBreaks(ctx context.Context, viewport geom.Rect) ([]Anchor, error)

	// IsVerticalLayout reports whether the document scrolls continuously
	// instead of being paginated.
	IsVerticalLayout() bool
}

// RendererFunc adapts a function to a paginated [Renderer].
type RendererFunc func(ctx context.Context, viewport geom.Rect) ([]Anchor, error)

// VisiblePageBreaks calls f.
func (f RendererFunc) VisiblePageBreaks(ctx context.Context, viewport geom.Rect) ([]Anchor, error) {
	return f(ctx, viewport)
}

// IsVerticalLayout always returns false.
func (RendererFunc) IsVerticalLayout() bool { return false }
