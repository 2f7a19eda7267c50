package markers

import "fmt"

// Edge identifies the viewport edge a container sits on.
type Edge int

const (
	// EdgeLeading is the left edge in left-to-right reading.
	EdgeLeading Edge = iota
	// EdgeTrailing is the right edge in left-to-right reading.
	EdgeTrailing
)

// Edges lists all edges in layout order.
var Edges = []Edge{EdgeLeading, EdgeTrailing}

// String returns the edge name.
func (e Edge) String() string {
	switch e {
	case EdgeLeading:
		return "leading"
	case EdgeTrailing:
		return "trailing"
	default:
		return fmt.Sprintf("Edge(%d)", int(e))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (e Edge) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Edge) UnmarshalText(b []byte) error {
	switch string(b) {
	case "leading", "left":
		*e = EdgeLeading
	case "trailing", "right":
		*e = EdgeTrailing
	default:
		return fmt.Errorf("unknown edge %q", b)
	}
	return nil
}

// Side is the half of a spread an anchor belongs to. It is only consulted
// for paginated documents.
type Side int

const (
	// SideAuto derives the side from the anchor's horizontal position.
	SideAuto Side = iota
	// SideLeft routes to the leading container.
	SideLeft
	// SideRight routes to the trailing container.
	SideRight
)

// String returns the side name.
func (s Side) String() string {
	switch s {
	case SideAuto:
		return "auto"
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Side) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Side) UnmarshalText(b []byte) error {
	switch string(b) {
	case "", "auto":
		*s = SideAuto
	case "left":
		*s = SideLeft
	case "right":
		*s = SideRight
	default:
		return fmt.Errorf("unknown side %q", b)
	}
	return nil
}
