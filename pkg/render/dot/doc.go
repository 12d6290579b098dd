// Package dot renders planar subdivisions as Graphviz graphs.
//
// # Overview
//
// Every vertex becomes a point-shaped node pinned at its coordinates and
// every edge of the subdivision becomes a graph edge. The graph is laid out
// with the neato engine, which honours pinned positions, so the picture is
// the subdivision itself rather than a computed layout.
//
// # Usage
//
//	src := dot.ToDOT(s, dot.Options{Labels: true})
//	svg, err := dot.RenderSVG(ctx, src)
//
// # Options
//
//   - Labels: label vertices with their IDs and faces with theirs.
//   - HalfEdges: draw both half-edges of every edge as directed arcs instead
//     of one undirected line per edge.
//   - Scale: inches per coordinate unit; zero fits the bounds into
//     [DefaultSize] inches.
package dot
