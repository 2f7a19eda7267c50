// Package scene describes a reading viewport without a browser.
//
// A [Scene] holds the viewport and container geometry, the document's flow
// mode and its page-break anchors in document coordinates. Scenes are read
// from JSON, TOML or YAML files with [Load] and drive the marker layout
// through a [DocumentRenderer], which plays the part of the rendering engine:
// it scrolls the document under the viewport and reports the anchors that
// are visible.
//
//	s, err := scene.Load("spread.toml")
//	if err != nil {
//	    return err
//	}
//	l, r, err := s.NewLayout(markers.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	r.ScrollBy(120)
//	_ = l.UpdatePageBreaks(ctx)
package scene
