package sweep

import (
	"cmp"
	"math"

	"github.com/matzehuels/planar/pkg/aatree"
	"github.com/matzehuels/planar/pkg/geom"
)

// probe stands for the current event point in status lookups.
var probe = &geom.Segment{ID: -1}

// statusOrder orders segments along the sweep line through p.
type statusOrder struct {
	p geom.Vec
}

var _ aatree.Comparator[*geom.Segment] = (*statusOrder)(nil)

func (o *statusOrder) Compare(a, b *geom.Segment, purpose aatree.Purpose) int {
	switch {
	case a == b:
		return 0
	case a == probe:
		return o.locate(b)
	case b == probe:
		return -o.locate(a)
	}

	xa, xb := o.x(a), o.x(b)
	if !geom.NearlyEqual(xa, xb) {
		return cmp.Compare(xa, xb)
	}
	var ka, kb float64
	if purpose == aatree.PurposeDelete {
		ka, kb = above(a), above(b)
	} else {
		ka, kb = below(a), below(b)
	}
	if c := cmp.Compare(ka, kb); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// x returns where s cuts the sweep line. A horizontal segment is cut at the
// event point, clamped to its extent.
func (o *statusOrder) x(s *geom.Segment) float64 {
	if s.IsHorizontal() {
		lo, hi := min(s.A.X, s.B.X), max(s.A.X, s.B.X)
		return min(max(o.p.X, lo), hi)
	}
	return s.XAt(o.p.Y)
}

// locate compares the event point with s; zero means s passes through it.
func (o *statusOrder) locate(s *geom.Segment) int {
	x := o.x(s)
	if geom.NearlyEqual(o.p.X, x) {
		return 0
	}
	return cmp.Compare(o.p.X, x)
}

// below ranks segments through a common point by their position just below
// it: the x offset per unit of descent.
func below(s *geom.Segment) float64 {
	if s.IsHorizontal() {
		return math.Inf(1)
	}
	u, l := s.Upper(), s.Lower()
	return (l.X - u.X) / (u.Y - l.Y)
}

// above ranks segments through a common point by their position just above it.
func above(s *geom.Segment) float64 {
	if s.IsHorizontal() {
		return math.Inf(-1)
	}
	return -below(s)
}
