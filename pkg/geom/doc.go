// Package geom provides the 2D primitives consumed by the planar subdivision and
// sweep packages: points, rectangles, lines, segments and polygons.
//
// # Overview
//
// All coordinates are float64. Constructors and operations that can produce
// non-finite values report them as errors ([ErrNonFinite]) instead of letting NaN
// or Inf leak into a subdivision.
//
// # Lines
//
// A [Line] is stored as two points. Lines built with [LineThrough] are oriented
// from the first point to the second and support [Line.PointRightOf]. Lines built
// with [LineFromSlope] are unoriented. Vertical lines have an infinite slope and
// no y-axis intercept.
//
// # Bounding Boxes
//
// [BoundingBoxFromLines] derives the rectangle used to clip an arrangement of
// lines: it collects the pairwise intersections of the lines and relaxes their
// bounding box by a margin so that no intersection lies on the boundary.
//
//	lines := []geom.Line{
//	    geom.LineFromSlope(1, 0),
//	    geom.LineFromSlope(-1, 2),
//	    geom.LineThrough(geom.Vec{X: 3, Y: -1}, geom.Vec{X: 3, Y: 1}),
//	}
//	box, err := geom.BoundingBoxFromLines(lines, 10, 10)
//
// # Sweep Order
//
// Segments expose their endpoints in sweep order: [SweepCompare] sorts points by
// decreasing y and then increasing x, so the "upper" endpoint of a horizontal
// segment is its left endpoint.
package geom
