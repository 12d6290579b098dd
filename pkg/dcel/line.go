package dcel

import (
	"fmt"
	"math"
	"time"

	"github.com/matzehuels/planar/pkg/geom"
)

// crossing is a point where a line crosses a half-edge.
type crossing struct {
	pos  geom.Vec
	edge *HalfEdge
}

// InsertLine threads l through the subdivision, splitting every face it
// crosses. l must cross the outer boundary exactly twice and must not pass
// through an existing vertex.
//
// The insertion runs in four phases: locate the two boundary crossings, walk
// the interior faces from the left crossing collecting one crossing per face
// boundary, insert a vertex at every crossing, and finally insert one edge per
// traversed face. The first two phases are read-only, so precondition failures
// leave the subdivision untouched.
func (s *Subdivision) InsertLine(l geom.Line) error {
	if err := s.checkUsable(); err != nil {
		return err
	}
	if err := l.Validate(); err != nil {
		return err
	}
	start := time.Now()

	left, right, err := s.boundaryCrossings(l)
	if err != nil {
		return err
	}
	path, faces, err := s.walk(l, left, right)
	if err != nil {
		return err
	}

	vertices := make([]*Vertex, len(path))
	for i, c := range path {
		v, err := s.InsertVertexInEdge(c.edge, c.pos)
		if err != nil {
			return s.fail(fmt.Errorf("insert crossing %d of %v: %w", i, l, err))
		}
		vertices[i] = v
	}
	for i, f := range faces {
		if _, err := s.InsertEdgeInFace(vertices[i], vertices[i+1], f); err != nil {
			return s.fail(fmt.Errorf("split %v along %v: %w", f, l, err))
		}
	}
	s.lines = append(s.lines, l)

	if s.validate {
		if err := s.Validate(); err != nil {
			return s.fail(fmt.Errorf("after inserting %v: %w", l, err))
		}
	}
	s.logger.Debug("inserted line",
		"line", l.String(),
		"crossings", len(path),
		"faces", len(s.faces),
		"duration", time.Since(start))
	return nil
}

// boundaryCrossings walks the outer face and returns the two points where l
// enters and leaves the rectangle, ordered by x.
func (s *Subdivision) boundaryCrossings(l geom.Line) (left, right crossing, err error) {
	var found []crossing
	start := s.outer.outer
	e := start
	for {
		if p, ok := e.intersectLine(l); ok {
			if e.touchesVertex(p) {
				return left, right, fmt.Errorf("%v meets boundary vertex near %v: %w", l, p, ErrDegenerate)
			}
			found = append(found, crossing{pos: p, edge: e})
		}
		e = e.next
		if e == start {
			break
		}
	}
	if len(found) != 2 {
		return left, right, fmt.Errorf("%v: found %d crossings: %w", l, len(found), ErrCrossingCount)
	}
	left, right = found[0], found[1]
	if right.pos.X < left.pos.X {
		left, right = right, left
	}
	return left, right, nil
}

// walk follows l through the interior from left to right. It returns the
// crossings in order, starting with left, and the face between each
// consecutive pair of crossings.
func (s *Subdivision) walk(l geom.Line, left, right crossing) ([]crossing, []*Face, error) {
	path := []crossing{left}
	var faces []*Face

	e := left.edge.twin
	for e.face != s.outer {
		if len(faces) >= len(s.faces) {
			return nil, nil, fmt.Errorf("%v: walk does not terminate: %w", l, ErrDegenerate)
		}
		entry := e
		var hit crossing
		for {
			e = e.next
			if e == entry {
				return nil, nil, fmt.Errorf("%v: no exit from %v: %w", l, entry.face, ErrDegenerate)
			}
			if p, ok := e.intersectLine(l); ok {
				hit = crossing{pos: p, edge: e}
				break
			}
		}
		if e.touchesVertex(hit.pos) {
			return nil, nil, fmt.Errorf("%v passes vertex near %v: %w", l, hit.pos, ErrDegenerate)
		}
		path = append(path, hit)
		faces = append(faces, e.face)
		e = e.twin
	}

	if last := path[len(path)-1]; !last.pos.Near(right.pos) {
		return nil, nil, fmt.Errorf("%v: walk ended at %v, want %v: %w", l, last.pos, right.pos, ErrDegenerate)
	}
	return path, faces, nil
}

// intersectLine returns the point where l crosses e, if any. Endpoints count
// as part of the edge.
func (e *HalfEdge) intersectLine(l geom.Line) (geom.Vec, bool) {
	a, b := e.from.pos, e.to.pos
	if a.X == b.X {
		if l.IsVertical() {
			return geom.Vec{}, false
		}
		y, _ := l.Y(a.X)
		if within(y, a.Y, b.Y) {
			return geom.Vec{X: a.X, Y: y}, true
		}
		return geom.Vec{}, false
	}

	p, err := l.Intersect(geom.LineThrough(a, b))
	if err != nil {
		return geom.Vec{}, false
	}
	// Test the coordinate with the larger extent for stability.
	if math.Abs(a.X-b.X) > math.Abs(a.Y-b.Y) {
		if within(p.X, a.X, b.X) {
			return p, true
		}
	} else if within(p.Y, a.Y, b.Y) {
		return p, true
	}
	return geom.Vec{}, false
}

func (e *HalfEdge) touchesVertex(p geom.Vec) bool {
	return p.Near(e.from.pos) || p.Near(e.to.pos)
}

func within(v, a, b float64) bool {
	lo, hi := min(a, b), max(a, b)
	return (v >= lo && v <= hi) || geom.NearlyEqual(v, lo) || geom.NearlyEqual(v, hi)
}

// NewArrangement returns the arrangement of lines clipped to r. Lines are
// inserted in order; the first failure aborts construction.
func NewArrangement(lines []geom.Line, r geom.Rect, opts ...Option) (*Subdivision, error) {
	s, err := NewRect(r, opts...)
	if err != nil {
		return nil, err
	}
	for i, l := range lines {
		if err := s.InsertLine(l); err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
	}
	s.logger.Debug("built arrangement",
		"id", s.id,
		"lines", len(lines),
		"vertices", len(s.vertices),
		"faces", len(s.faces))
	return s, nil
}
