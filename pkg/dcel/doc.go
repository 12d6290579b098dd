// Package dcel implements a doubly-connected edge list (half-edge mesh) for
// planar subdivisions, together with the incremental construction of line
// arrangements.
//
// # Overview
//
// A [Subdivision] partitions the plane into [Face] values bounded by directed
// [HalfEdge] values that connect [Vertex] values. Every undirected edge is stored
// as two half-edges pointing in opposite directions; each half-edge knows its
// twin, the next and previous half-edge around its face, and the face itself.
//
// Subdivisions start as a bounding rectangle ([NewRect]) and only grow. The two
// primitive mutations are:
//
//   - [Subdivision.InsertVertexInEdge], which splits a half-edge and its twin at
//     a point
//   - [Subdivision.InsertEdgeInFace], which connects two boundary vertices of a
//     face and splits that face in two
//
// [Subdivision.InsertLine] combines both to thread a line through every face it
// crosses, and [NewArrangement] builds a full arrangement of lines.
//
// # Orientation
//
// Bounded faces are traversed clockwise, so the interior of a bounded face lies
// to the right of each of its half-edges. The outer face, which stands for the
// unbounded exterior, is traversed counter-clockwise around the rectangle.
// [Face.Contains] relies on this and is only exact for convex faces, which is
// always the case for faces of a line arrangement.
//
// # Invariants
//
// After every mutation the following hold and are checked by
// [Subdivision.Validate]:
//
//  1. e.Next().Prev() == e and e.Prev().Next() == e
//  2. e.Twin().Twin() == e, with endpoints swapped
//  3. walking Next from a face's boundary returns to the start and only visits
//     half-edges of that face
//  4. Euler's formula V - E/2 + F == 2, where E counts half-edges
//  5. e.Prev().To() == e.From() and e.Next().From() == e.To()
//
// # Failure Model
//
// Half-edge splicing is not transactional. [Subdivision.InsertLine] detects the
// geometric preconditions it can ([ErrCrossingCount], [ErrDegenerate]) before
// touching the mesh; a failure after mutation started is reported as
// [ErrCorrupt] and the subdivision refuses further mutations. Discard it and
// rebuild from the input.
//
// # Concurrency
//
// A Subdivision is not safe for concurrent mutation. Concurrent read-only
// traversals are fine. Use [Subdivision.Clone] to hand an independent copy to
// another goroutine.
package dcel
