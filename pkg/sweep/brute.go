package sweep

import (
	"slices"

	"github.com/matzehuels/planar/pkg/geom"
)

// BruteForce returns the intersections of segs by testing every pair. The
// result has the same form and order as [FindIntersections]. It runs in
// quadratic time.
func BruteForce(segs []geom.Segment) []Intersection {
	type hit struct {
		point geom.Vec
		segs  map[int]*geom.Segment
	}
	var hits []*hit
	at := func(p geom.Vec) *hit {
		for _, h := range hits {
			if h.point.Near(p) {
				return h
			}
		}
		h := &hit{point: p, segs: make(map[int]*geom.Segment)}
		hits = append(hits, h)
		return h
	}

	for i := range segs {
		for j := i + 1; j < len(segs); j++ {
			p, ok := segs[i].Intersect(&segs[j])
			if !ok {
				continue
			}
			h := at(p)
			h.segs[segs[i].ID] = &segs[i]
			h.segs[segs[j].ID] = &segs[j]
		}
	}

	out := make([]Intersection, 0, len(hits))
	for _, h := range hits {
		in := Intersection{Point: h.point}
		for id, s := range h.segs {
			switch {
			case s.Upper().Near(h.point):
				in.Upper = append(in.Upper, id)
			case s.Lower().Near(h.point):
				in.Lower = append(in.Lower, id)
			default:
				in.Containing = append(in.Containing, id)
			}
		}
		slices.Sort(in.Upper)
		slices.Sort(in.Lower)
		slices.Sort(in.Containing)
		out = append(out, in)
	}
	slices.SortFunc(out, func(a, b Intersection) int {
		return geom.SweepCompare(a.Point, b.Point)
	})
	return out
}
