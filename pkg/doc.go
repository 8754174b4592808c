// Package pkg holds the toldot libraries: a timeline layout engine for
// historical figures grouped by period.
//
// # Overview
//
// A render pass loads a dataset, narrows it, lays it out and renders it:
//
//	Dataset file / timeline API / MongoDB
//	         ↓
//	    [source] (load and normalize raw person records)
//	         ↓
//	    [filter] (periods, regions, generations, search, year window)
//	         ↓
//	    [bounds] + [layout] (year domain, period blocks, rows, overlap groups)
//	         ↓
//	    [render/sink] (SVG, PNG, PDF, JSON, text)
//
// [pipeline] wires these stages together with caching and is shared by the
// CLI and the HTTP server.
//
// # Quick Start
//
//	opts := pipeline.Options{
//	    Source:  "people.yaml",
//	    Filter:  filter.New("rishonim"),
//	    Formats: []string{pipeline.FormatSVG},
//	}
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	res, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("timeline.svg", res.Artifacts[pipeline.FormatSVG], 0o644)
//
// # Packages
//
// Domain:
//
//   - [timeline]: persons, periods, regions and dataset statistics
//   - [dates]: lifespan and region inference from loose fields
//   - [bounds]: timeline year domain, axis ticks, density bins
//   - [filter]: filter state, query string codec and predicate
//   - [layout]: period blocks, rows, overlap groups and person bars
//   - [layout/viewport]: pan and zoom transforms over a layout
//
// Rendering:
//
//   - [render/sink]: SVG, PNG, PDF, JSON and text output
//   - [render/styles]: simple and hand-drawn visual styles
//   - [render/hierarchy]: period/sub-period tree via Graphviz
//   - [render]: SVG to PNG/PDF conversion
//
// Infrastructure:
//
//   - [source]: file, HTTP, MongoDB and bundled sample datasets
//   - [cache]: file, memory, Redis and layered caches
//   - [httputil]: retrying, rate-limited HTTP client
//   - [observability]: pipeline, cache and HTTP hooks with Prometheus metrics
//   - [errors]: coded errors and input validation
//   - [buildinfo]: version stamped at build time
package pkg
