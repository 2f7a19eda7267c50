package geom

import "math"

// Eps is the tolerance used for floating-point comparisons.
const Eps = 1e-9

// Point is a location in screen or viewport coordinates.
type Point struct {
	X float64 `json:"x" toml:"x" yaml:"x"`
	Y float64 `json:"y" toml:"y" yaml:"y"`
}

// Size is the measured extent of an element.
type Size struct {
	Width  float64 `json:"width" toml:"width" yaml:"width"`
	Height float64 `json:"height" toml:"height" yaml:"height"`
}

// Rect is an axis-aligned rectangle given by its top-left corner and size.
type Rect struct {
	Left   float64 `json:"left" toml:"left" yaml:"left"`
	Top    float64 `json:"top" toml:"top" yaml:"top"`
	Width  float64 `json:"width" toml:"width" yaml:"width"`
	Height float64 `json:"height" toml:"height" yaml:"height"`
}

// Right returns the horizontal end of the rectangle.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Bottom returns the vertical end of the rectangle.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// CenterX returns the horizontal center point.
func (r Rect) CenterX() float64 { return r.Left + r.Width/2 }

// CenterY returns the vertical center point.
func (r Rect) CenterY() float64 { return r.Top + r.Height/2 }

// Size returns the width and height of the rectangle.
func (r Rect) Size() Size { return Size{Width: r.Width, Height: r.Height} }

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	r.Left += dx
	r.Top += dy
	return r
}

// Offset returns r moved by p.
func (r Rect) Offset(p Point) Rect { return r.Translate(p.X, p.Y) }

// Union returns the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	left := math.Min(r.Left, o.Left)
	top := math.Min(r.Top, o.Top)
	right := math.Max(r.Right(), o.Right())
	bottom := math.Max(r.Bottom(), o.Bottom())
	return Rect{Left: left, Top: top, Width: right - left, Height: bottom - top}
}

// Start returns the leading coordinate of r along axis.
func (r Rect) Start(axis Axis) float64 {
	if axis == AxisHorizontal {
		return r.Left
	}
	return r.Top
}

// Extent returns the size of r along axis.
func (r Rect) Extent(axis Axis) float64 {
	if axis == AxisHorizontal {
		return r.Width
	}
	return r.Height
}

// End returns the trailing coordinate of r along axis.
func (r Rect) End(axis Axis) float64 { return r.Start(axis) + r.Extent(axis) }

// Mid returns the center of r along axis.
func (r Rect) Mid(axis Axis) float64 { return r.Start(axis) + r.Extent(axis)/2 }

// WithStart returns a copy of r whose leading coordinate along axis is v.
func (r Rect) WithStart(axis Axis, v float64) Rect {
	if axis == AxisHorizontal {
		r.Left = v
	} else {
		r.Top = v
	}
	return r
}

// WithExtent returns a copy of r whose size along axis is v.
func (r Rect) WithExtent(axis Axis, v float64) Rect {
	if axis == AxisHorizontal {
		r.Width = v
	} else {
		r.Height = v
	}
	return r
}

// Contains reports whether o lies inside r along axis, within Eps.
func (r Rect) Contains(o Rect, axis Axis) bool {
	return o.Start(axis) >= r.Start(axis)-Eps && o.End(axis) <= r.End(axis)+Eps
}
