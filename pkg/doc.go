// Package pkg holds the pagemarks libraries.
//
// # Overview
//
// Pagemarks places page-number markers in the margins beside a document
// viewport. Each marker sits next to the page break it labels; markers that
// would overlap are grouped and stacked so they stay readable.
//
//  1. [geom] - rectangles, axes, clamping and the overlap predicate
//  2. [markers] - marker factory, overlap detection, redistribution and the
//     layout cycle
//  3. [measure] - marker size providers
//  4. [scene] - headless scenes and document renderers
//  5. [pipeline] - cached scene layout shared by the CLI and the API
//  6. [server] and [httputil] - the HTTP API and its client
//  7. [cache], [errors], [observability], [buildinfo] - infrastructure
//
// # Data flow
//
//	scene file (JSON, TOML, YAML)
//	         ↓
//	    [scene] (validate, build containers and renderer)
//	         ↓
//	    [markers] (fetch page breaks, place, relax)
//	         ↓
//	    [pipeline] (cache, serialize)
//	         ↓
//	    CLI table, JSON file, HTTP response
//
// # Quick Start
//
//	sc, err := scene.Load("spread.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	layout, _, err := sc.NewLayout()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := layout.UpdatePageBreaks(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	for edge, ms := range layout.Snapshot() {
//	    for _, m := range ms {
//	        fmt.Println(edge, m.Title, m.Rect.Top)
//	    }
//	}
package pkg
