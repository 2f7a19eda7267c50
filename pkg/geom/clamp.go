package geom

import "math"

// ClampToContainer shifts rect along axis as little as possible so that it
// lies within container.
//
// rect is relative to a viewport whose screen origin is viewportOffset;
// container is in screen coordinates. The returned rectangle is relative to
// the viewport again. The cross axis is passed through unchanged.
//
// If rect is longer than container it cannot fit. The leading edge is then
// aligned with the container start and the rectangle overflows the end.
func ClampToContainer(rect, container Rect, viewportOffset Point, axis Axis) Rect {
	off := axis.component(viewportOffset)
	start := rect.Start(axis) + off
	extent := rect.Extent(axis)

	if end := container.End(axis); start+extent > end {
		start = end - extent
	}
	if cs := container.Start(axis); start < cs {
		start = cs
	}
	return rect.WithStart(axis, start-off)
}

// Overlap reports whether a and b collide along axis.
//
// Two rectangles collide when the distance between their leading edges is
// smaller than half of their combined extent.
func Overlap(a, b Rect, axis Axis) bool {
	return math.Abs(a.Start(axis)-b.Start(axis)) < (a.Extent(axis)+b.Extent(axis))/2
}
