// Package geom provides the rectangle primitives used by marker layout.
//
// All rectangles use screen-style coordinates: the origin is the top-left
// corner and Y increases downward. A [Rect] is stored as an origin plus a
// size, mirroring what a DOM bounding client rect reports.
//
// # Axes
//
// Marker layout constrains a single axis. [AxisVertical] (the default)
// constrains top/height and passes left/width through untouched;
// [AxisHorizontal] does the opposite. The accessors [Rect.Start],
// [Rect.Extent] and [Rect.WithStart] let layout code stay axis-agnostic.
//
// # Clamping
//
// [ClampToContainer] shifts a viewport-relative rectangle as little as
// possible so it sits inside a container expressed in screen coordinates:
//
//	r := geom.Rect{Top: 480, Height: 40}
//	c := geom.Rect{Top: 0, Height: 500}
//	geom.ClampToContainer(r, c, geom.Point{}, geom.AxisVertical).Top // 460
//
// When the rectangle is larger than the container the leading edge wins, so
// the result starts at the container start and overflows its end.
package geom
