package dcel

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/planar/pkg/geom"
)

// ErrBadRecord is returned by [FromRecords] for references outside the record
// tables.
var ErrBadRecord = errors.New("invalid record reference")

// EdgeRecord is the index form of a half-edge. All fields are IDs.
type EdgeRecord struct {
	From int `json:"from" bson:"from"`
	To   int `json:"to" bson:"to"`
	Twin int `json:"twin" bson:"twin"`
	Next int `json:"next" bson:"next"`
	Prev int `json:"prev" bson:"prev"`
	Face int `json:"face" bson:"face"`
}

// FaceRecord is the index form of a face.
type FaceRecord struct {
	Outer int   `json:"outer" bson:"outer"`
	Inner []int `json:"inner,omitempty" bson:"inner,omitempty"`
}

// Records is a flat, pointer-free form of a subdivision, suitable for
// serialization.
type Records struct {
	Bounds    geom.Rect    `json:"bounds" bson:"bounds"`
	Vertices  []geom.Vec   `json:"vertices" bson:"vertices"`
	Leaving   []int        `json:"leaving" bson:"leaving"`
	Edges     []EdgeRecord `json:"edges" bson:"edges"`
	Faces     []FaceRecord `json:"faces" bson:"faces"`
	OuterFace int          `json:"outer_face" bson:"outer_face"`
	Lines     []geom.Line  `json:"lines,omitempty" bson:"lines,omitempty"`
}

// Records returns the flat form of s.
func (s *Subdivision) Records() Records {
	r := Records{
		Bounds:    s.bounds,
		Vertices:  make([]geom.Vec, len(s.vertices)),
		Leaving:   make([]int, len(s.vertices)),
		Edges:     make([]EdgeRecord, len(s.edges)),
		Faces:     make([]FaceRecord, len(s.faces)),
		OuterFace: s.outer.id,
		Lines:     s.Lines(),
	}
	for i, v := range s.vertices {
		r.Vertices[i] = v.pos
		r.Leaving[i] = v.leaving.id
	}
	for i, e := range s.edges {
		r.Edges[i] = EdgeRecord{
			From: e.from.id,
			To:   e.to.id,
			Twin: e.twin.id,
			Next: e.next.id,
			Prev: e.prev.id,
			Face: e.face.id,
		}
	}
	for i, f := range s.faces {
		fr := FaceRecord{Outer: f.outer.id}
		for _, h := range f.inner {
			fr.Inner = append(fr.Inner, h.id)
		}
		r.Faces[i] = fr
	}
	return r
}

// FromRecords rebuilds a subdivision from its flat form and validates it.
func FromRecords(r Records, opts ...Option) (*Subdivision, error) {
	if err := r.Bounds.Validate(); err != nil {
		return nil, err
	}
	nv, ne, nf := len(r.Vertices), len(r.Edges), len(r.Faces)
	if len(r.Leaving) != nv {
		return nil, fmt.Errorf("%w: %d leaving entries for %d vertices", ErrBadRecord, len(r.Leaving), nv)
	}
	if r.OuterFace < 0 || r.OuterFace >= nf {
		return nil, fmt.Errorf("%w: outer face %d", ErrBadRecord, r.OuterFace)
	}

	s := &Subdivision{
		id:       uuid.New(),
		bounds:   r.Bounds,
		logger:   log.New(io.Discard),
		lines:    r.Lines,
		vertices: make([]*Vertex, nv),
		edges:    make([]*HalfEdge, ne),
		faces:    make([]*Face, nf),
	}
	for _, opt := range opts {
		opt(s)
	}
	for i, p := range r.Vertices {
		if !p.IsFinite() {
			return nil, fmt.Errorf("vertex %d: %w", i, geom.ErrNonFinite)
		}
		s.vertices[i] = &Vertex{id: i, pos: p}
	}
	for i := range r.Edges {
		s.edges[i] = &HalfEdge{id: i}
	}
	for i := range r.Faces {
		s.faces[i] = &Face{id: i, isOut: i == r.OuterFace}
	}
	s.outer = s.faces[r.OuterFace]

	edge := func(id int) (*HalfEdge, error) {
		if id < 0 || id >= ne {
			return nil, fmt.Errorf("%w: half-edge %d", ErrBadRecord, id)
		}
		return s.edges[id], nil
	}
	vertex := func(id int) (*Vertex, error) {
		if id < 0 || id >= nv {
			return nil, fmt.Errorf("%w: vertex %d", ErrBadRecord, id)
		}
		return s.vertices[id], nil
	}

	var err error
	for i, id := range r.Leaving {
		if s.vertices[i].leaving, err = edge(id); err != nil {
			return nil, err
		}
	}
	for i, er := range r.Edges {
		e := s.edges[i]
		if e.from, err = vertex(er.From); err != nil {
			return nil, err
		}
		if e.to, err = vertex(er.To); err != nil {
			return nil, err
		}
		if e.twin, err = edge(er.Twin); err != nil {
			return nil, err
		}
		if e.next, err = edge(er.Next); err != nil {
			return nil, err
		}
		if e.prev, err = edge(er.Prev); err != nil {
			return nil, err
		}
		if er.Face < 0 || er.Face >= nf {
			return nil, fmt.Errorf("%w: face %d", ErrBadRecord, er.Face)
		}
		e.face = s.faces[er.Face]
	}
	for i, fr := range r.Faces {
		f := s.faces[i]
		if f.outer, err = edge(fr.Outer); err != nil {
			return nil, err
		}
		for _, id := range fr.Inner {
			h, err := edge(id)
			if err != nil {
				return nil, err
			}
			f.inner = append(f.inner, h)
		}
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
