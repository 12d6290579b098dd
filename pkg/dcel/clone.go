package dcel

import (
	"slices"

	"github.com/google/uuid"
)

// Clone returns a deep copy of s with a new ID. The copy shares no elements
// with s and can be mutated independently, for example on another goroutine.
func (s *Subdivision) Clone() *Subdivision {
	c := &Subdivision{
		id:       uuid.New(),
		bounds:   s.bounds,
		lines:    slices.Clone(s.lines),
		corrupt:  s.corrupt,
		logger:   s.logger,
		validate: s.validate,
		vertices: make([]*Vertex, len(s.vertices)),
		edges:    make([]*HalfEdge, len(s.edges)),
		faces:    make([]*Face, len(s.faces)),
	}
	for i, v := range s.vertices {
		c.vertices[i] = &Vertex{id: v.id, pos: v.pos}
	}
	for i, e := range s.edges {
		c.edges[i] = &HalfEdge{id: e.id}
	}
	for i, f := range s.faces {
		c.faces[i] = &Face{id: f.id, isOut: f.isOut}
	}

	edge := func(e *HalfEdge) *HalfEdge {
		if e == nil {
			return nil
		}
		return c.edges[e.id]
	}
	for i, v := range s.vertices {
		c.vertices[i].leaving = edge(v.leaving)
	}
	for i, e := range s.edges {
		ce := c.edges[i]
		ce.from = c.vertices[e.from.id]
		ce.to = c.vertices[e.to.id]
		ce.twin = edge(e.twin)
		ce.next = edge(e.next)
		ce.prev = edge(e.prev)
		if e.face != nil {
			ce.face = c.faces[e.face.id]
		}
	}
	for i, f := range s.faces {
		cf := c.faces[i]
		cf.outer = edge(f.outer)
		for _, h := range f.inner {
			cf.inner = append(cf.inner, edge(h))
		}
	}
	c.outer = c.faces[s.outer.id]
	return c
}
