// Package render groups the visual outputs of a planar subdivision.
//
// # Overview
//
// Two renderers are provided, each in its own subpackage:
//
//   - [svg]: a direct SVG drawing of the clipped arrangement with faces
//     filled, optional vertex dots and labels, and highlighted faces.
//   - [dot]: a Graphviz graph with every vertex pinned at its coordinates,
//     rendered to SVG through go-graphviz.
//
// Both take a *dcel.Subdivision and neither mutates it.
//
//	b := svg.RenderSVG(s, svg.WithLabels(), svg.WithHighlight(3))
//
//	src := dot.ToDOT(s, dot.Options{Labels: true})
//	out, err := dot.RenderSVG(ctx, src)
//
// The JSON export lives in package io; the pipeline package selects between
// all three by format name.
//
// [svg]: github.com/matzehuels/planar/pkg/render/svg
// [dot]: github.com/matzehuels/planar/pkg/render/dot
package render
