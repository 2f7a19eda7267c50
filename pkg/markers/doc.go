// Package markers places page-break labels along the edges of a reading
// viewport.
//
// # Overview
//
// A renderer reports the page-break anchors currently visible in its
// viewport. For every anchor this package creates a [Marker] in one of two
// [Container]s, the leading edge or the trailing edge, positions it next to
// the anchor, keeps it inside its container and spreads markers apart when
// they would collide.
//
// # Update Cycle
//
// [Layout.UpdatePageBreaks] runs one cycle:
//
//  1. Both containers are cleared.
//  2. The [Renderer] is asked for the visible anchors.
//  3. Each anchor is routed to an [Edge]. Vertical (scrolling) documents put
//     everything on the trailing edge; paginated documents route by
//     [Anchor.Side], falling back to the anchor's horizontal position.
//  4. A marker is attached, measured through the [Measurer] and centered on
//     its anchor, then clamped into the container.
//  5. Containers holding more than one marker go through relaxation: runs of
//     colliding markers are found ([FindOverlapped]) and each run is stacked
//     around its midpoint ([Redistribute]).
//
// Nothing survives between cycles. Markers are rebuilt from scratch every
// time, so calling UpdatePageBreaks twice with unchanged input yields the
// same rectangles.
//
// # Relaxation
//
// Redistributing one group can push it into a neighbor that did not collide
// before. Detection and redistribution are therefore repeated, up to
// 1 + [MaxRelaxationPasses] times per container. This is a bounded
// relaxation, not a solver: overlaps can remain after the last pass.
// Detection only compares adjacent markers, so a marker pushed past a
// non-adjacent neighbor is caught by a later pass at the earliest.
//
// # Failure Modes
//
// Nothing in a cycle is fatal. A missing container drops the anchors routed
// to it, a failing renderer leaves both containers empty, and markers that
// cannot fit are aligned to the container start.
//
// # Concurrency
//
// Cycles never interleave. A trigger that arrives while a cycle is running
// is served by the next cycle, and triggers that pile up behind it are
// coalesced into that single cycle.
package markers
