package geom

import "fmt"

// Axis selects which dimension layout constrains.
type Axis int

const (
	// AxisVertical constrains top and height.
	AxisVertical Axis = iota
	// AxisHorizontal constrains left and width.
	AxisHorizontal
)

// String returns the axis name.
func (a Axis) String() string {
	switch a {
	case AxisVertical:
		return "vertical"
	case AxisHorizontal:
		return "horizontal"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// ParseAxis converts a name produced by [Axis.String] back to an Axis.
// The empty string parses as [AxisVertical].
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "", "vertical", "y":
		return AxisVertical, nil
	case "horizontal", "x":
		return AxisHorizontal, nil
	}
	return AxisVertical, fmt.Errorf("unknown axis %q", s)
}

// component returns the coordinate of p along the axis.
func (a Axis) component(p Point) float64 {
	if a == AxisHorizontal {
		return p.X
	}
	return p.Y
}
