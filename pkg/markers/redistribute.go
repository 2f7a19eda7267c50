package markers

import "github.com/matzehuels/pagemarks/pkg/geom"

// MaxRelaxationPasses is the number of detect-and-redistribute passes run
// after the initial one. Convergence is not guaranteed within the bound.
const MaxRelaxationPasses = 3

// Redistribute stacks the members of g contiguously around the midpoint of
// their current bounds, clamped into c. Members keep their order.
//
// viewport is the viewport origin in screen coordinates; marker rectangles
// are relative to it while c.Rect is not.
func Redistribute(g *Group, c *Container, viewport geom.Point, axis geom.Axis) {
	g.CalculateBounds(axis)

	mid := g.Bounds.Mid(axis)
	region := g.Bounds.
		WithStart(axis, mid-g.CombinedExtent/2).
		WithExtent(axis, g.CombinedExtent)
	region = geom.ClampToContainer(region, c.Rect, viewport, axis)

	pos := region.Start(axis)
	for _, m := range g.Markers {
		m.Rect = m.Rect.WithStart(axis, pos)
		pos += m.Rect.Extent(axis)
	}
}

// Relax runs up to 1+extraPasses rounds of overlap detection and
// redistribution over the markers in c. It returns the number of passes that
// found at least one group; it stops early once a pass finds none.
func Relax(c *Container, viewport geom.Point, axis geom.Axis, extraPasses int) int {
	if extraPasses < 0 {
		extraPasses = 0
	}
	used := 0
	for pass := 0; pass <= extraPasses; pass++ {
		groups := FindOverlapped(c.markers, axis)
		if len(groups) == 0 {
			break
		}
		for _, g := range groups {
			Redistribute(g, c, viewport, axis)
		}
		used++
	}
	return used
}
