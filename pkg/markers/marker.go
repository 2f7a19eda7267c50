package markers

import (
	"github.com/google/uuid"

	"github.com/matzehuels/pagemarks/pkg/geom"
)

// Marker is the label placed for one anchor.
type Marker struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Edge  Edge   `json:"edge"`

	// Index is the anchor's position in the renderer's result.
	Index int `json:"index"`

	// Rect is the marker box relative to the viewport origin, which is what a
	// DOM label would receive as its top/left style.
	Rect geom.Rect `json:"rect"`
}

// Measurer reports the size of a marker once it is attached to its
// container. A DOM implementation reads the label's bounding box; headless
// implementations return computed sizes.
type Measurer interface {
	Measure(m *Marker) geom.Size
}

// MeasurerFunc adapts a function to a [Measurer].
type MeasurerFunc func(m *Marker) geom.Size

// Measure calls f.
func (f MeasurerFunc) Measure(m *Marker) geom.Size { return f(m) }

// DefaultMarkerSize is used when no [Measurer] is configured.
var DefaultMarkerSize = geom.Size{Width: 32, Height: 20}

var defaultMeasurer = MeasurerFunc(func(*Marker) geom.Size { return DefaultMarkerSize })

// Factory creates markers and computes their initial position.
type Factory struct {
	Measurer Measurer
	Axis     geom.Axis

	// NewID generates marker IDs. Defaults to random UUIDs.
	NewID func() string
}

// Create attaches a marker for anchor to c, measures it and positions it.
//
// viewport is the viewport in screen coordinates; vertical reports whether
// the document flows vertically, in which case the anchor's VerticalOffset
// applies.
func (f Factory) Create(a Anchor, index int, c *Container, viewport geom.Rect, vertical bool) *Marker {
	id := uuid.NewString
	if f.NewID != nil {
		id = f.NewID
	}
	m := &Marker{
		ID:    id(),
		Title: a.Title,
		Index: index,
	}
	c.attach(m)

	measurer := f.Measurer
	if measurer == nil {
		measurer = defaultMeasurer
	}
	size := measurer.Measure(m)
	m.Rect = geom.Rect{Width: size.Width, Height: size.Height}

	f.position(m, a, c, viewport, vertical)
	return m
}

// position centers m on the anchor along the layout axis, aligns it with the
// container on the cross axis and clamps the result into c.
func (f Factory) position(m *Marker, a Anchor, c *Container, viewport geom.Rect, vertical bool) {
	axis := f.Axis
	cross := crossAxis(axis)
	origin := geom.Point{X: viewport.Left, Y: viewport.Top}

	var offset float64
	if vertical {
		offset = a.VerticalOffset
	}

	screen := a.ScreenRect()
	pos := screen.Start(axis) - viewport.Start(axis) - offset
	pos += screen.Extent(axis)/2 - m.Rect.Extent(axis)/2

	r := m.Rect.WithStart(axis, pos)
	r = r.WithStart(cross, c.Rect.Start(cross)-viewport.Start(cross))
	m.Rect = geom.ClampToContainer(r, c.Rect, origin, axis)
}

func crossAxis(a geom.Axis) geom.Axis {
	if a == geom.AxisHorizontal {
		return geom.AxisVertical
	}
	return geom.AxisHorizontal
}
