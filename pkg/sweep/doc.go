// Package sweep finds all intersections of a set of line segments with the
// Bentley-Ottmann plane sweep.
//
// A horizontal sweep line moves from top to bottom. Event points (segment
// endpoints and discovered intersections) are kept in an [aatree.Tree] ordered
// by decreasing y and then increasing x. The segments currently cut by the
// sweep line are kept in a second AA-tree, the status, ordered left to right
// along the sweep line.
//
// The status order depends on where the sweep line is, and it also depends on
// what the tree is doing. Segments through the current event point share the
// same x, so they are ordered by where they are just below the event when
// inserting or searching, and by where they were just above it when deleting.
// This is exactly what [aatree.Purpose] is for.
//
// Horizontal segments are placed to the right of every other segment through
// the event point and are processed left to right.
//
// Overlapping collinear segments are not supported.
//
// [Sweeper] exposes the sweep one event at a time; [FindIntersections] runs it
// to completion. [BruteForce] computes the same result by testing every pair
// and is meant for small inputs and cross-checking.
package sweep
