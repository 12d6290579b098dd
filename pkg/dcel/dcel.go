package dcel

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/planar/pkg/geom"
)

var (
	// ErrCrossingCount is returned by [Subdivision.InsertLine] when the line does
	// not cross the outer boundary in exactly two points.
	ErrCrossingCount = errors.New("line must cross the boundary exactly twice")

	// ErrDegenerate is returned by [Subdivision.InsertLine] when the line passes
	// through an existing vertex or runs along an existing edge. Such
	// arrangements are not supported.
	ErrDegenerate = errors.New("degenerate line position")

	// ErrCorrupt is returned when a mutation failed part way. The subdivision
	// is left inconsistent and rejects further mutations.
	ErrCorrupt = errors.New("subdivision corrupted by failed mutation")

	// ErrNotOnBoundary is returned by [Subdivision.InsertEdgeInFace] when a
	// vertex is not on the boundary of the given face.
	ErrNotOnBoundary = errors.New("vertex not on face boundary")

	// ErrSameVertex is returned by [Subdivision.InsertEdgeInFace] when both
	// endpoints are the same vertex.
	ErrSameVertex = errors.New("edge endpoints must differ")

	// ErrForeign is returned when an element passed to a mutation does not
	// belong to the subdivision.
	ErrForeign = errors.New("element belongs to another subdivision")
)

// Vertex is a point of the subdivision. Leaving is one of the half-edges that
// start at the vertex; use it as a seed for traversals.
type Vertex struct {
	id      int
	pos     geom.Vec
	leaving *HalfEdge
}

func (v *Vertex) ID() int            { return v.id }
func (v *Vertex) Pos() geom.Vec      { return v.pos }
func (v *Vertex) Leaving() *HalfEdge { return v.leaving }
func (v *Vertex) String() string     { return fmt.Sprintf("v%d%v", v.id, v.pos) }

// Outgoing returns every half-edge starting at v, in clockwise order around v.
func (v *Vertex) Outgoing() []*HalfEdge {
	if v.leaving == nil {
		return nil
	}
	var out []*HalfEdge
	e := v.leaving
	for {
		out = append(out, e)
		e = e.twin.next
		if e == v.leaving || len(out) > maxWalk {
			return out
		}
	}
}

// HalfEdge is a directed edge from From to To. Its face lies to its right for
// bounded faces.
type HalfEdge struct {
	id       int
	from, to *Vertex
	twin     *HalfEdge
	next     *HalfEdge
	prev     *HalfEdge
	face     *Face
}

func (e *HalfEdge) ID() int         { return e.id }
func (e *HalfEdge) From() *Vertex   { return e.from }
func (e *HalfEdge) To() *Vertex     { return e.to }
func (e *HalfEdge) Twin() *HalfEdge { return e.twin }
func (e *HalfEdge) Next() *HalfEdge { return e.next }
func (e *HalfEdge) Prev() *HalfEdge { return e.prev }
func (e *HalfEdge) Face() *Face     { return e.face }

// Segment returns the geometric segment covered by e, tagged with e's ID.
func (e *HalfEdge) Segment() geom.Segment {
	return geom.Segment{ID: e.id, A: e.from.pos, B: e.to.pos}
}

func (e *HalfEdge) LengthSquared() float64 {
	d := e.to.pos.Sub(e.from.pos)
	return d.Dot(d)
}

func (e *HalfEdge) String() string {
	return fmt.Sprintf("e%d[%v->%v]", e.id, e.from.pos, e.to.pos)
}

// Face is a region of the subdivision bounded by the cycle through
// OuterComponent.
type Face struct {
	id    int
	outer *HalfEdge
	inner []*HalfEdge
	isOut bool
}

func (f *Face) ID() int                   { return f.id }
func (f *Face) OuterComponent() *HalfEdge { return f.outer }
func (f *Face) IsOuter() bool             { return f.isOut }

// InnerComponents returns one half-edge per hole of the face.
func (f *Face) InnerComponents() []*HalfEdge { return slices.Clone(f.inner) }

func (f *Face) String() string { return fmt.Sprintf("f%d", f.id) }

// Stats summarizes the size of a subdivision.
type Stats struct {
	Vertices  int `json:"vertices" bson:"vertices"`
	HalfEdges int `json:"half_edges" bson:"half_edges"`
	Faces     int `json:"faces" bson:"faces"`
	Lines     int `json:"lines" bson:"lines"`
}

// Subdivision is a planar subdivision bounded by a rectangle.
//
// The zero value is not usable; create one with [NewRect] or [NewArrangement].
// Every element's ID is its index in the corresponding slice returned by
// [Subdivision.Vertices], [Subdivision.HalfEdges] or [Subdivision.Faces].
type Subdivision struct {
	id       uuid.UUID
	bounds   geom.Rect
	vertices []*Vertex
	edges    []*HalfEdge
	faces    []*Face
	outer    *Face
	lines    []geom.Line

	corrupt  error
	logger   *log.Logger
	validate bool
}

// Option configures a subdivision.
type Option func(*Subdivision)

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(s *Subdivision) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithValidation makes [Subdivision.InsertLine] run [Subdivision.Validate]
// after every insertion.
func WithValidation(on bool) Option {
	return func(s *Subdivision) { s.validate = on }
}

// NewRect returns the subdivision of the plane by rectangle r: one bounded face
// inside r and the outer face.
func NewRect(r geom.Rect, opts ...Option) (*Subdivision, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	s := &Subdivision{
		id:     uuid.New(),
		bounds: r,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}

	corners := r.Corners()
	for _, p := range corners {
		s.newVertex(p)
	}
	inner := s.cycle(s.vertices)
	outer := s.cycle([]*Vertex{s.vertices[3], s.vertices[2], s.vertices[1], s.vertices[0]})
	// inner[i] runs corners[i] -> corners[i+1]; its twin is the outer edge
	// corners[i+1] -> corners[i], which is outer[2-i] (mod 4).
	for i, e := range inner {
		twin(e, outer[(6-i)%4])
	}
	outer[0].face.isOut = true
	s.outer = outer[0].face
	return s, nil
}

// cycle creates a closed chain of half-edges through vs and a face for it.
func (s *Subdivision) cycle(vs []*Vertex) []*HalfEdge {
	f := s.newFace(nil)
	edges := make([]*HalfEdge, len(vs))
	for i, v := range vs {
		edges[i] = s.newEdge(v, vs[(i+1)%len(vs)])
		edges[i].face = f
	}
	for i, e := range edges {
		chain(e, edges[(i+1)%len(edges)])
	}
	f.outer = edges[0]
	return edges
}

func (s *Subdivision) newVertex(p geom.Vec) *Vertex {
	v := &Vertex{id: len(s.vertices), pos: p}
	s.vertices = append(s.vertices, v)
	return v
}

func (s *Subdivision) newEdge(from, to *Vertex) *HalfEdge {
	e := &HalfEdge{id: len(s.edges), from: from, to: to}
	s.edges = append(s.edges, e)
	if from.leaving == nil {
		from.leaving = e
	}
	return e
}

func (s *Subdivision) newFace(outer *HalfEdge) *Face {
	f := &Face{id: len(s.faces), outer: outer}
	s.faces = append(s.faces, f)
	return f
}

func chain(first, second *HalfEdge) {
	first.next = second
	second.prev = first
}

func twin(a, b *HalfEdge) {
	a.twin = b
	b.twin = a
}

// ID returns the unique identifier of this subdivision instance.
func (s *Subdivision) ID() uuid.UUID { return s.id }

// Bounds returns the bounding rectangle the subdivision was created with.
func (s *Subdivision) Bounds() geom.Rect { return s.bounds }

// OuterFace returns the face representing the unbounded exterior.
func (s *Subdivision) OuterFace() *Face { return s.outer }

// Vertices returns all vertices indexed by ID. The slice is a copy.
func (s *Subdivision) Vertices() []*Vertex { return slices.Clone(s.vertices) }

// HalfEdges returns all half-edges indexed by ID. The slice is a copy.
func (s *Subdivision) HalfEdges() []*HalfEdge { return slices.Clone(s.edges) }

// Faces returns all faces indexed by ID, including the outer face. The slice
// is a copy.
func (s *Subdivision) Faces() []*Face { return slices.Clone(s.faces) }

// Lines returns the lines inserted with [Subdivision.InsertLine].
func (s *Subdivision) Lines() []geom.Line { return slices.Clone(s.lines) }

// Stats returns the element counts.
func (s *Subdivision) Stats() Stats {
	return Stats{
		Vertices:  len(s.vertices),
		HalfEdges: len(s.edges),
		Faces:     len(s.faces),
		Lines:     len(s.lines),
	}
}

// Err returns the error that corrupted the subdivision, or nil.
func (s *Subdivision) Err() error { return s.corrupt }

// BoundedFaces returns every face except the outer face.
func (s *Subdivision) BoundedFaces() []*Face {
	out := make([]*Face, 0, len(s.faces)-1)
	for _, f := range s.faces {
		if !f.isOut {
			out = append(out, f)
		}
	}
	return out
}

// FaceAt returns the bounded face whose interior contains p.
func (s *Subdivision) FaceAt(p geom.Vec) (*Face, bool) {
	for _, f := range s.faces {
		if !f.isOut && f.Contains(p) {
			return f, true
		}
	}
	return nil, false
}

func (s *Subdivision) ownsEdge(e *HalfEdge) bool {
	return e != nil && e.id < len(s.edges) && s.edges[e.id] == e
}

func (s *Subdivision) ownsVertex(v *Vertex) bool {
	return v != nil && v.id < len(s.vertices) && s.vertices[v.id] == v
}

func (s *Subdivision) ownsFace(f *Face) bool {
	return f != nil && f.id < len(s.faces) && s.faces[f.id] == f
}

func (s *Subdivision) fail(err error) error {
	s.corrupt = err
	return fmt.Errorf("%w: %w", ErrCorrupt, err)
}

func (s *Subdivision) checkUsable() error {
	if s.corrupt != nil {
		return fmt.Errorf("%w: %w", ErrCorrupt, s.corrupt)
	}
	return nil
}
