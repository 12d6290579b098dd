package dcel

import (
	"fmt"

	"github.com/matzehuels/planar/pkg/geom"
)

// InsertVertexInEdge splits e and its twin at p and returns the new vertex.
//
// If p equals one of e's endpoints exactly, no vertex is created and that
// endpoint is returned. The caller is responsible for p lying on e; the
// position is not projected onto the edge.
//
// After the split, e runs from its old origin to the new vertex, followed by a
// new half-edge to the old destination. The twin side is split the same way.
func (s *Subdivision) InsertVertexInEdge(e *HalfEdge, p geom.Vec) (*Vertex, error) {
	if err := s.checkUsable(); err != nil {
		return nil, err
	}
	if !s.ownsEdge(e) {
		return nil, fmt.Errorf("insert vertex in %v: %w", e, ErrForeign)
	}
	if e.from.pos == p {
		return e.from, nil
	}
	if e.to.pos == p {
		return e.to, nil
	}
	if !p.IsFinite() {
		return nil, fmt.Errorf("insert vertex at %v: %w", p, geom.ErrNonFinite)
	}

	v := s.newVertex(p)
	oldTo := e.to
	e.to = v
	e.twin.from = v

	ne := s.newEdge(v, oldTo)
	nt := s.newEdge(oldTo, v)
	twin(ne, nt)

	chain(ne, e.next)
	chain(e, ne)

	chain(e.twin.prev, nt)
	chain(nt, e.twin)

	ne.face = ne.next.face
	nt.face = nt.next.face

	v.leaving = ne
	if oldTo.leaving == e.twin {
		oldTo.leaving = nt
	}
	return v, nil
}

// InsertEdgeInFace connects v1 and v2, both on the boundary of f, with a new
// pair of half-edges and splits f in two.
//
// f keeps the part bounded by the new half-edge from v1 to v2; the returned
// face gets the part bounded by its twin.
func (s *Subdivision) InsertEdgeInFace(v1, v2 *Vertex, f *Face) (*Face, error) {
	if err := s.checkUsable(); err != nil {
		return nil, err
	}
	if !s.ownsVertex(v1) || !s.ownsVertex(v2) || !s.ownsFace(f) {
		return nil, fmt.Errorf("insert edge in face: %w", ErrForeign)
	}
	if v1 == v2 {
		return nil, fmt.Errorf("insert edge %v-%v: %w", v1, v2, ErrSameVertex)
	}

	var to1, to2 *HalfEdge
	start := f.outer
	e := start
	for n := 0; ; n++ {
		if n > len(s.edges) {
			return nil, s.fail(fmt.Errorf("boundary of %v does not close", f))
		}
		if e.to == v1 {
			to1 = e
		}
		if e.to == v2 {
			to2 = e
		}
		e = e.next
		if e == start {
			break
		}
	}
	if to1 == nil {
		return nil, fmt.Errorf("%v on %v: %w", v1, f, ErrNotOnBoundary)
	}
	if to2 == nil {
		return nil, fmt.Errorf("%v on %v: %w", v2, f, ErrNotOnBoundary)
	}
	from1, from2 := to1.next, to2.next

	ne := s.newEdge(v1, v2)
	chain(to1, ne)
	chain(ne, from2)

	nt := s.newEdge(v2, v1)
	chain(to2, nt)
	chain(nt, from1)
	twin(ne, nt)

	nf := s.newFace(nt)
	ne.face = f
	f.outer = ne
	relabel(nt, nf)
	return nf, nil
}

// relabel assigns f to every half-edge in the cycle through start.
func relabel(start *HalfEdge, f *Face) {
	e := start
	for {
		e.face = f
		e = e.next
		if e == start {
			return
		}
	}
}
