package dcel

import (
	"errors"
	"fmt"
)

var (
	// ErrNextPrev is reported when e.Next().Prev() or e.Prev().Next() is not e.
	ErrNextPrev = errors.New("next/prev mismatch")

	// ErrTwin is reported when twins do not point at each other or their
	// endpoints are not swapped.
	ErrTwin = errors.New("invalid twin")

	// ErrFaceCycle is reported when a face boundary does not close or visits a
	// half-edge of another face.
	ErrFaceCycle = errors.New("invalid face cycle")

	// ErrEuler is reported when V - E/2 + F != 2.
	ErrEuler = errors.New("euler characteristic violated")

	// ErrChain is reported when consecutive half-edges do not share endpoints.
	ErrChain = errors.New("broken endpoint chain")

	// ErrLeaving is reported when a vertex's leaving half-edge does not start
	// at the vertex.
	ErrLeaving = errors.New("invalid leaving half-edge")
)

// maxWalk bounds cycle walks on corrupted meshes.
const maxWalk = 1 << 24

// Validate checks the structural invariants of the subdivision and returns all
// violations joined into one error, or nil. Use errors.Is with the Err*
// sentinels of this file to test for a specific violation.
func (s *Subdivision) Validate() error {
	var errs []error
	add := func(sentinel error, format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...)))
	}

	for _, e := range s.edges {
		if e.next == nil || e.prev == nil || e.twin == nil || e.face == nil {
			add(ErrNextPrev, "%v has unset links", e)
			continue
		}
		if e.next.prev != e {
			add(ErrNextPrev, "%v.next.prev = %v", e, e.next.prev)
		}
		if e.prev.next != e {
			add(ErrNextPrev, "%v.prev.next = %v", e, e.prev.next)
		}
		if e.twin.twin != e {
			add(ErrTwin, "%v.twin.twin = %v", e, e.twin.twin)
		}
		if e.twin.from != e.to || e.twin.to != e.from {
			add(ErrTwin, "%v and twin %v do not swap endpoints", e, e.twin)
		}
		if e.prev.to != e.from {
			add(ErrChain, "%v.prev ends at %v", e, e.prev.to)
		}
		if e.next.from != e.to {
			add(ErrChain, "%v.next starts at %v", e, e.next.from)
		}
	}
	if len(errs) > 0 {
		// Cycle walks below rely on the links being sound.
		return errors.Join(errs...)
	}

	for _, f := range s.faces {
		if f.outer == nil {
			add(ErrFaceCycle, "%v has no boundary", f)
			continue
		}
		if err := s.checkCycle(f, f.outer); err != nil {
			errs = append(errs, err)
		}
		for _, h := range f.inner {
			if err := s.checkCycle(f, h); err != nil {
				errs = append(errs, err)
			}
		}
	}

	for _, v := range s.vertices {
		if v.leaving == nil || v.leaving.from != v {
			add(ErrLeaving, "%v", v)
		}
	}
	if v, e, f := len(s.vertices), len(s.edges), len(s.faces); e%2 != 0 || v-e/2+f != 2 {
		add(ErrEuler, "V=%d E=%d F=%d", v, e, f)
	}
	return errors.Join(errs...)
}

func (s *Subdivision) checkCycle(f *Face, start *HalfEdge) error {
	e := start
	for n := 0; n <= len(s.edges); n++ {
		if e.face != f {
			return fmt.Errorf("%w: %v on boundary of %v belongs to %v", ErrFaceCycle, e, f, e.face)
		}
		e = e.next
		if e == start {
			return nil
		}
	}
	return fmt.Errorf("%w: boundary of %v does not close", ErrFaceCycle, f)
}
