package scene

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	perrors "github.com/matzehuels/pagemarks/pkg/errors"
	"github.com/matzehuels/pagemarks/pkg/geom"
	"github.com/matzehuels/pagemarks/pkg/markers"
	"github.com/matzehuels/pagemarks/pkg/measure"
)

// Scene is a headless description of a reading viewport.
type Scene struct {
	Name string `json:"name,omitempty" toml:"name" yaml:"name,omitempty"`

	// Viewport is the on-screen area showing the document.
	Viewport geom.Rect `json:"viewport" toml:"viewport" yaml:"viewport"`

	// Leading and Trailing bound the marker containers, in screen
	// coordinates. A nil container is absent.
	Leading  *geom.Rect `json:"leading,omitempty" toml:"leading" yaml:"leading,omitempty"`
	Trailing *geom.Rect `json:"trailing,omitempty" toml:"trailing" yaml:"trailing,omitempty"`

	// Vertical selects continuous scrolling instead of pagination.
	Vertical bool `json:"vertical,omitempty" toml:"vertical" yaml:"vertical,omitempty"`

	// Axis is the layout axis, "vertical" (default) or "horizontal".
	Axis string `json:"axis,omitempty" toml:"axis" yaml:"axis,omitempty"`

	// Scroll is how far the document is scrolled under the viewport.
	Scroll float64 `json:"scroll,omitempty" toml:"scroll" yaml:"scroll,omitempty"`

	// DocumentHeight bounds scrolling. Zero derives it from the anchors.
	DocumentHeight float64 `json:"document_height,omitempty" toml:"document_height" yaml:"document_height,omitempty"`

	Measure measure.Config `json:"measure" toml:"measure" yaml:"measure"`

	// Anchors are page breaks in document coordinates.
	Anchors []markers.Anchor `json:"anchors" toml:"anchors" yaml:"anchors"`
}

// Validate reports every problem with the scene at once.
func (s *Scene) Validate() error {
	var err error

	err = multierr.Append(err, perrors.ValidateRect("viewport", s.Viewport))
	if s.Viewport.Width == 0 || s.Viewport.Height == 0 {
		err = multierr.Append(err, perrors.New(perrors.ErrCodeInvalidScene, "viewport must have a non-zero size"))
	}
	if s.Leading != nil {
		err = multierr.Append(err, perrors.ValidateRect("leading container", *s.Leading))
	}
	if s.Trailing != nil {
		err = multierr.Append(err, perrors.ValidateRect("trailing container", *s.Trailing))
	}
	if s.Leading == nil && s.Trailing == nil {
		err = multierr.Append(err, perrors.New(perrors.ErrCodeInvalidScene, "scene needs at least one container"))
	}
	if _, aerr := geom.ParseAxis(s.Axis); aerr != nil {
		err = multierr.Append(err, fmt.Errorf("axis: %w", aerr))
	}
	if _, merr := measure.New(s.Measure); merr != nil {
		err = multierr.Append(err, fmt.Errorf("measure: %w", merr))
	}
	if ferr := perrors.ValidateFinite("scroll", s.Scroll); ferr != nil {
		err = multierr.Append(err, ferr)
	} else if s.Scroll < 0 {
		err = multierr.Append(err, perrors.New(perrors.ErrCodeInvalidScene, "scroll cannot be negative"))
	}
	err = multierr.Append(err, perrors.ValidateFinite("document height", s.DocumentHeight))

	for i, a := range s.Anchors {
		if terr := perrors.ValidateTitle(a.Title); terr != nil {
			err = multierr.Append(err, fmt.Errorf("anchor %d: %w", i, terr))
		}
		if rerr := perrors.ValidateRect("anchor rect", a.Rect); rerr != nil {
			err = multierr.Append(err, fmt.Errorf("anchor %d: %w", i, rerr))
		}
		if perr := perrors.ValidatePoint("frame offset", a.FrameOffset); perr != nil {
			err = multierr.Append(err, fmt.Errorf("anchor %d: %w", i, perr))
		}
		if ferr := perrors.ValidateFinite("vertical offset", a.VerticalOffset); ferr != nil {
			err = multierr.Append(err, fmt.Errorf("anchor %d: %w", i, ferr))
		}
	}

	if err != nil {
		return perrors.Wrap(perrors.ErrCodeInvalidScene, err, "scene %q has %d problem(s)", s.Name, len(multierr.Errors(err)))
	}
	return nil
}

// Problems splits a validation error into its individual problems.
func Problems(err error) []error { return multierr.Errors(unwrapScene(err)) }

func unwrapScene(err error) error {
	var e *perrors.Error
	if errors.As(err, &e) && e.Code == perrors.ErrCodeInvalidScene && e.Cause != nil {
		return e.Cause
	}
	return err
}

// NewLayout builds the containers, measurer and layout for the scene and
// installs a [DocumentRenderer] positioned at the scene's scroll offset.
func (s *Scene) NewLayout(opts ...markers.Option) (*markers.Layout, *DocumentRenderer, error) {
	if err := s.Validate(); err != nil {
		return nil, nil, err
	}

	axis, _ := geom.ParseAxis(s.Axis)
	m, _ := measure.New(s.Measure)

	var leading, trailing *markers.Container
	if s.Leading != nil {
		leading = markers.NewContainer(markers.EdgeLeading, *s.Leading)
	}
	if s.Trailing != nil {
		trailing = markers.NewContainer(markers.EdgeTrailing, *s.Trailing)
	}

	opts = append([]markers.Option{markers.WithAxis(axis), markers.WithMeasurer(m)}, opts...)
	l := markers.New(s.Viewport, leading, trailing, opts...)

	r := NewDocumentRenderer(s.Anchors, s.Vertical, axis)
	r.SetDocumentExtent(s.DocumentHeight)
	r.ScrollTo(s.Scroll)
	l.SetRenderer(r)
	return l, r, nil
}
