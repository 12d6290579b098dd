// Package pkg provides the core libraries for planar, a toolkit for line
// arrangements and planar subdivisions.
//
// # Overview
//
// planar clips a set of lines to a rectangle and builds the resulting planar
// subdivision as a doubly connected edge list, one line at a time. It also
// finds every intersection of a set of segments with a plane sweep. The pkg
// directory is organized into four areas:
//
//  1. Data structures: [aatree] (balanced search tree used by the sweep) and
//     [geom] (points, lines, segments, rectangles).
//  2. Algorithms: [dcel] (subdivision, line insertion, invariant checks) and
//     [sweep] (Bentley-Ottmann intersection search).
//  3. Orchestration: [scene] (input files), [pipeline] (build, cache, render)
//     and [io] (JSON documents).
//  4. Infrastructure: [cache], [store], [observability], [errors] and
//     [httputil].
//
// # Architecture
//
// The typical data flow:
//
//	scene file (TOML/JSON)
//	         ↓
//	    [scene] package (lines, bounds, segments)
//	         ↓
//	    [dcel] package (clip rectangle + incremental line insertion)
//	         ↓
//	    [render] / [io] packages
//	         ↓
//	SVG / Graphviz / JSON output
//
// Segments take the other branch: [scene] hands them to [sweep], which
// reports each intersection point with the segments that meet there.
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/planar/pkg/dcel"
//	    "github.com/matzehuels/planar/pkg/geom"
//	    "github.com/matzehuels/planar/pkg/render/svg"
//	)
//
//	s, _ := dcel.NewRect(geom.Rect{XMin: -10, YMin: -10, XMax: 10, YMax: 10})
//	_ = s.InsertLine(geom.LineFromSlope(1, 0.5))
//	_ = s.InsertLine(geom.LineFromSlope(-1, 0.25))
//	fmt.Println(len(s.BoundedFaces())) // 4
//	out := svg.RenderSVG(s)
//
// # Caching and Storage
//
// [pipeline.Runner] caches built subdivisions and sweep results behind the
// [cache.Cache] interface: a file cache for the CLI, Redis for the server.
// The HTTP server persists arrangements through [store.Store], backed by
// memory or MongoDB.
//
// [aatree]: github.com/matzehuels/planar/pkg/aatree
// [geom]: github.com/matzehuels/planar/pkg/geom
// [dcel]: github.com/matzehuels/planar/pkg/dcel
// [sweep]: github.com/matzehuels/planar/pkg/sweep
// [scene]: github.com/matzehuels/planar/pkg/scene
// [pipeline]: github.com/matzehuels/planar/pkg/pipeline
// [pipeline.Runner]: github.com/matzehuels/planar/pkg/pipeline#Runner
// [io]: github.com/matzehuels/planar/pkg/io
// [render]: github.com/matzehuels/planar/pkg/render
// [cache]: github.com/matzehuels/planar/pkg/cache
// [cache.Cache]: github.com/matzehuels/planar/pkg/cache#Cache
// [store]: github.com/matzehuels/planar/pkg/store
// [store.Store]: github.com/matzehuels/planar/pkg/store#Store
// [observability]: github.com/matzehuels/planar/pkg/observability
// [errors]: github.com/matzehuels/planar/pkg/errors
// [httputil]: github.com/matzehuels/planar/pkg/httputil
package pkg
