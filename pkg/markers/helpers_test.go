package markers

import (
	"context"
	"io"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pagemarks/pkg/geom"
)

func quietLogger() *log.Logger { return log.New(io.Discard) }

func fixedSize(w, h float64) Measurer {
	return MeasurerFunc(func(*Marker) geom.Size { return geom.Size{Width: w, Height: h} })
}

// stubRenderer returns a fixed anchor list.
type stubRenderer struct {
	anchors  []Anchor
	vertical bool
	err      error
	calls    atomic.Int32
}

func (r *stubRenderer) VisiblePageBreaks(ctx context.Context, _ geom.Rect) ([]Anchor, error) {
	r.calls.Add(1)
	return r.anchors, r.err
}

func (r *stubRenderer) IsVerticalLayout() bool { return r.vertical }

// anchorAt returns an anchor whose box starts at top with the given height,
// on the given side.
func anchorAt(title string, top, height float64, side Side) Anchor {
	left := 100.0
	if side == SideRight {
		left = 700
	}
	return Anchor{
		Title: title,
		Rect:  geom.Rect{Left: left, Top: top, Width: 10, Height: height},
		Side:  side,
	}
}

func markerAt(top, height float64) *Marker {
	return &Marker{Rect: geom.Rect{Top: top, Width: 30, Height: height}}
}

func tops(ms []*Marker) []float64 {
	out := make([]float64, len(ms))
	for i, m := range ms {
		out[i] = m.Rect.Top
	}
	return out
}
