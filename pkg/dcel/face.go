package dcel

import "github.com/matzehuels/planar/pkg/geom"

// OuterHalfEdges returns the half-edges of the face boundary in cycle order,
// starting at OuterComponent.
func (f *Face) OuterHalfEdges() []*HalfEdge {
	var out []*HalfEdge
	e := f.outer
	for {
		out = append(out, e)
		e = e.next
		if e == f.outer || len(out) > maxWalk {
			return out
		}
	}
}

// OuterVertices returns the origins of [Face.OuterHalfEdges].
func (f *Face) OuterVertices() []*Vertex {
	edges := f.OuterHalfEdges()
	out := make([]*Vertex, len(edges))
	for i, e := range edges {
		out[i] = e.from
	}
	return out
}

// Polygon returns the boundary positions. The polygon is a snapshot and does
// not follow later mutations.
func (f *Face) Polygon() geom.Polygon {
	vs := f.OuterVertices()
	p := make(geom.Polygon, len(vs))
	for i, v := range vs {
		p[i] = v.pos
	}
	return p
}

// Area returns the area enclosed by the face boundary.
func (f *Face) Area() float64 { return f.Polygon().Area() }

// BoundingBox returns the bounding rectangle of the face boundary.
func (f *Face) BoundingBox() (geom.Rect, error) {
	return f.Polygon().BoundingBox()
}

// Contains reports whether p lies strictly to the right of every boundary
// half-edge. This is a point-in-face test for convex bounded faces only.
func (f *Face) Contains(p geom.Vec) bool {
	e := f.outer
	for {
		if geom.Orient(e.from.pos, e.to.pos, p) >= 0 {
			return false
		}
		e = e.next
		if e == f.outer {
			return true
		}
	}
}

// Neighbours returns the distinct faces across the boundary of f.
func (f *Face) Neighbours() []*Face {
	seen := make(map[int]bool)
	var out []*Face
	for _, e := range f.OuterHalfEdges() {
		n := e.twin.face
		if n != f && !seen[n.id] {
			seen[n.id] = true
			out = append(out, n)
		}
	}
	return out
}
