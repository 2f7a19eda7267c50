package markers

import "github.com/matzehuels/pagemarks/pkg/geom"

// Container owns the markers shown along one viewport edge.
//
// Markers are kept in attach order, which is also their paint order and their
// order along the layout axis. A container keeps no state across cycles: the
// [Layout] clears and refills it on every update.
type Container struct {
	Edge Edge

	// Rect bounds the markers, in screen coordinates.
	Rect geom.Rect

	markers []*Marker
}

// NewContainer creates an empty container on edge bounded by rect.
func NewContainer(edge Edge, rect geom.Rect) *Container {
	return &Container{Edge: edge, Rect: rect}
}

// Markers returns the attached markers in paint order.
// The slice must not be modified and is only valid until the next cycle.
func (c *Container) Markers() []*Marker { return c.markers }

// Len returns the number of attached markers.
func (c *Container) Len() int { return len(c.markers) }

func (c *Container) attach(m *Marker) {
	m.Edge = c.Edge
	c.markers = append(c.markers, m)
}

func (c *Container) clear() {
	for i := range c.markers {
		c.markers[i] = nil
	}
	c.markers = c.markers[:0]
}

// snapshot copies the attached markers.
func (c *Container) snapshot() []Marker {
	out := make([]Marker, len(c.markers))
	for i, m := range c.markers {
		out[i] = *m
	}
	return out
}
