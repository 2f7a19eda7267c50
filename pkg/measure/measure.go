// Package measure provides headless [markers.Measurer] implementations.
//
// A DOM host measures labels after attaching them. Outside a browser the
// size has to be computed instead: [Fixed] returns one size for every
// marker, [Text] derives the width from the label's display width in
// terminal cells.
package measure

import (
	"fmt"
	"math"

	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/pagemarks/pkg/geom"
	"github.com/matzehuels/pagemarks/pkg/markers"
)

// Fixed measures every marker with the same size.
type Fixed geom.Size

// Measure returns f.
func (f Fixed) Measure(*markers.Marker) geom.Size { return geom.Size(f) }

// Text measures a marker from the display width of its title.
type Text struct {
	CellWidth  float64 // width of one display cell
	LineHeight float64 // height of one line of text
	Padding    float64 // added on every side
}

// DefaultText approximates a 10px monospace label with 4px padding.
var DefaultText = Text{CellWidth: 7, LineHeight: 12, Padding: 4}

// Measure returns the padded size of m's title.
func (t Text) Measure(m *markers.Marker) geom.Size {
	cells := runewidth.StringWidth(m.Title)
	return geom.Size{
		Width:  float64(cells)*t.CellWidth + 2*t.Padding,
		Height: t.LineHeight + 2*t.Padding,
	}
}

// Config selects and parameterizes a measurer.
type Config struct {
	Kind       string  `json:"kind" toml:"kind" yaml:"kind"`
	Width      float64 `json:"width,omitempty" toml:"width" yaml:"width,omitempty"`
	Height     float64 `json:"height,omitempty" toml:"height" yaml:"height,omitempty"`
	CellWidth  float64 `json:"cell_width,omitempty" toml:"cell_width" yaml:"cell_width,omitempty"`
	LineHeight float64 `json:"line_height,omitempty" toml:"line_height" yaml:"line_height,omitempty"`
	Padding    float64 `json:"padding,omitempty" toml:"padding" yaml:"padding,omitempty"`
}

// Measurer kinds accepted by [New].
const (
	KindFixed = "fixed"
	KindText  = "text"
)

// New builds the measurer described by cfg. Zero fields fall back to
// [markers.DefaultMarkerSize] or [DefaultText].
func New(cfg Config) (markers.Measurer, error) {
	for _, v := range []float64{cfg.Width, cfg.Height, cfg.CellWidth, cfg.LineHeight, cfg.Padding} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("measurer sizes must be finite, got %g", v)
		}
	}
	switch cfg.Kind {
	case "", KindFixed:
		size := markers.DefaultMarkerSize
		if cfg.Width > 0 {
			size.Width = cfg.Width
		}
		if cfg.Height > 0 {
			size.Height = cfg.Height
		}
		return Fixed(size), nil
	case KindText:
		t := DefaultText
		if cfg.CellWidth > 0 {
			t.CellWidth = cfg.CellWidth
		}
		if cfg.LineHeight > 0 {
			t.LineHeight = cfg.LineHeight
		}
		if cfg.Padding > 0 {
			t.Padding = cfg.Padding
		}
		return t, nil
	}
	return nil, fmt.Errorf("unknown measurer kind %q", cfg.Kind)
}
