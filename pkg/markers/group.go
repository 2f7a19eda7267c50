package markers

import "github.com/matzehuels/pagemarks/pkg/geom"

// Group is a run of markers that collide along the layout axis.
// Groups live for a single relaxation pass.
type Group struct {
	// Markers are ordered by position along the layout axis.
	Markers []*Marker

	// CombinedExtent is the sum of the members' extents along the axis.
	CombinedExtent float64

	// Bounds encloses every member, relative to the viewport.
	Bounds geom.Rect
}

func newGroup(first *Marker) *Group {
	return &Group{Markers: []*Marker{first}}
}

func (g *Group) add(m *Marker) {
	g.Markers = append(g.Markers, m)
}

// Len returns the number of members.
func (g *Group) Len() int { return len(g.Markers) }

// CalculateBounds re-measures the members and updates Bounds and
// CombinedExtent.
func (g *Group) CalculateBounds(axis geom.Axis) {
	g.CombinedExtent = 0
	for i, m := range g.Markers {
		if i == 0 {
			g.Bounds = m.Rect
		} else {
			g.Bounds = g.Bounds.Union(m.Rect)
		}
		g.CombinedExtent += m.Rect.Extent(axis)
	}
}

// FindOverlapped walks adjacent pairs of markers and returns the maximal runs
// in which each marker collides with its predecessor. Markers must already be
// sorted along axis. Singletons are never returned.
func FindOverlapped(markers []*Marker, axis geom.Axis) []*Group {
	var (
		groups  []*Group
		current *Group
	)
	flush := func() {
		if current != nil && current.Len() > 1 {
			groups = append(groups, current)
		}
		current = nil
	}

	for i := 0; i+1 < len(markers); i++ {
		a, b := markers[i], markers[i+1]
		if !geom.Overlap(a.Rect, b.Rect, axis) {
			flush()
			continue
		}
		if current == nil {
			current = newGroup(a)
		}
		current.add(b)
	}
	flush()
	return groups
}
