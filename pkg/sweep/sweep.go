package sweep

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/planar/pkg/aatree"
	"github.com/matzehuels/planar/pkg/geom"
)

var (
	// ErrDegenerateSegment is returned for segments whose endpoints coincide.
	ErrDegenerateSegment = errors.New("segment endpoints coincide")

	// ErrDuplicateID is returned when two segments share an ID.
	ErrDuplicateID = errors.New("duplicate segment ID")
)

// Intersection is a point shared by two or more segments. The slices hold
// segment IDs in ascending order, classified by how each segment meets the
// point.
type Intersection struct {
	Point      geom.Vec `json:"point" bson:"point"`
	Upper      []int    `json:"upper,omitempty" bson:"upper,omitempty"`
	Lower      []int    `json:"lower,omitempty" bson:"lower,omitempty"`
	Containing []int    `json:"containing,omitempty" bson:"containing,omitempty"`
}

// Segments returns the IDs of every segment through the point, ascending.
func (in Intersection) Segments() []int {
	out := slices.Concat(in.Upper, in.Lower, in.Containing)
	slices.Sort(out)
	return slices.Compact(out)
}

// Event describes one processed event point.
type Event struct {
	Point geom.Vec

	// Intersection is set when the event point is an intersection.
	Intersection *Intersection

	// Status lists the IDs of the segments cut by the sweep line just below
	// the event, left to right.
	Status []int
}

// Option configures a [Sweeper].
type Option func(*Sweeper)

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(s *Sweeper) {
		if l != nil {
			s.logger = l
		}
	}
}

// Sweeper runs the sweep one event at a time.
type Sweeper struct {
	segments []*geom.Segment
	upper    map[geom.Vec][]*geom.Segment
	queue    *aatree.Tree[geom.Vec]
	status   *aatree.Tree[*geom.Segment]
	order    *statusOrder
	found    []Intersection
	steps    int
	logger   *log.Logger
}

// New prepares a sweep over segs. The segments are copied.
func New(segs []geom.Segment, opts ...Option) (*Sweeper, error) {
	s := &Sweeper{
		upper:  make(map[geom.Vec][]*geom.Segment),
		queue:  aatree.NewFunc(compareEvents),
		order:  &statusOrder{},
		logger: log.New(io.Discard),
	}
	s.status = aatree.New[*geom.Segment](s.order)
	for _, opt := range opts {
		opt(s)
	}

	ids := make(map[int]bool, len(segs))
	for _, seg := range segs {
		if !seg.A.IsFinite() || !seg.B.IsFinite() {
			return nil, fmt.Errorf("segment %d: %w", seg.ID, geom.ErrNonFinite)
		}
		if seg.A.Near(seg.B) {
			return nil, fmt.Errorf("segment %d: %w", seg.ID, ErrDegenerateSegment)
		}
		if ids[seg.ID] {
			return nil, fmt.Errorf("segment %d: %w", seg.ID, ErrDuplicateID)
		}
		ids[seg.ID] = true

		c := seg
		s.segments = append(s.segments, &c)
		u := s.addEvent(c.Upper())
		s.upper[u] = append(s.upper[u], &c)
		s.addEvent(c.Lower())
	}
	return s, nil
}

// compareEvents orders event points top to bottom, then left to right. Points
// within tolerance are the same event.
func compareEvents(a, b geom.Vec) int {
	if a.Near(b) {
		return 0
	}
	return geom.SweepCompare(a, b)
}

// addEvent queues p unless an equal event exists and returns the queued point.
func (s *Sweeper) addEvent(p geom.Vec) geom.Vec {
	if found := s.queue.FindNodes(p); len(found) > 0 {
		return found[0]
	}
	s.queue.Insert(p)
	return p
}

// Done reports whether every event has been processed.
func (s *Sweeper) Done() bool { return s.queue.Count() == 0 }

// Pending returns the number of queued events.
func (s *Sweeper) Pending() int { return s.queue.Count() }

// Steps returns the number of processed events.
func (s *Sweeper) Steps() int { return s.steps }

// Intersections returns the intersections found so far in sweep order.
func (s *Sweeper) Intersections() []Intersection { return slices.Clone(s.found) }

// Step processes the next event. It returns false when the queue is empty.
func (s *Sweeper) Step() (Event, bool) {
	p, ok := s.queue.DeleteMin()
	if !ok {
		return Event{}, false
	}
	s.steps++
	s.order.p = p

	upper := s.upper[p]
	delete(s.upper, p)
	var lower, containing []*geom.Segment
	for _, seg := range s.status.FindNodes(probe) {
		if seg.Lower().Near(p) {
			lower = append(lower, seg)
		} else {
			containing = append(containing, seg)
		}
	}

	ev := Event{Point: p}
	if len(upper)+len(lower)+len(containing) > 1 {
		in := Intersection{
			Point:      p,
			Upper:      sortedIDs(upper),
			Lower:      sortedIDs(lower),
			Containing: sortedIDs(containing),
		}
		s.found = append(s.found, in)
		ev.Intersection = &in
		s.logger.Debug("intersection", "point", p, "segments", len(in.Segments()))
	}

	for _, seg := range slices.Concat(lower, containing) {
		if !s.status.Delete(seg) {
			s.logger.Warn("segment missing from status", "segment", seg.String(), "event", p)
		}
	}
	inserted := slices.Concat(upper, containing)
	for _, seg := range inserted {
		s.status.Insert(seg)
	}

	if len(inserted) == 0 {
		l, okl := s.status.FindNextSmallest(probe)
		r, okr := s.status.FindNextBiggest(probe)
		if okl && okr {
			s.findNewEvent(l, r, p)
		}
	} else {
		slices.SortFunc(inserted, func(a, b *geom.Segment) int {
			return s.order.Compare(a, b, aatree.PurposeInsert)
		})
		leftmost, rightmost := inserted[0], inserted[len(inserted)-1]
		if l, ok := s.status.FindNextSmallest(leftmost); ok {
			s.findNewEvent(l, leftmost, p)
		}
		if r, ok := s.status.FindNextBiggest(rightmost); ok {
			s.findNewEvent(rightmost, r, p)
		}
	}

	ev.Status = sortedStatus(s.status)
	return ev, true
}

// findNewEvent queues the intersection of a and b if it lies after p.
func (s *Sweeper) findNewEvent(a, b *geom.Segment, p geom.Vec) {
	q, ok := a.Intersect(b)
	if !ok || q.Near(p) || geom.SweepCompare(q, p) < 0 {
		return
	}
	s.addEvent(q)
}

// Run processes all remaining events. It checks ctx between events.
func (s *Sweeper) Run(ctx context.Context) ([]Intersection, error) {
	start := time.Now()
	for !s.Done() {
		if s.steps%256 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		s.Step()
	}
	s.logger.Debug("sweep finished",
		"segments", len(s.segments),
		"events", s.steps,
		"intersections", len(s.found),
		"duration", time.Since(start))
	return s.Intersections(), nil
}

// FindIntersections returns every intersection of segs in sweep order.
func FindIntersections(ctx context.Context, segs []geom.Segment, opts ...Option) ([]Intersection, error) {
	s, err := New(segs, opts...)
	if err != nil {
		return nil, err
	}
	return s.Run(ctx)
}

func sortedIDs(segs []*geom.Segment) []int {
	if len(segs) == 0 {
		return nil
	}
	ids := make([]int, len(segs))
	for i, seg := range segs {
		ids[i] = seg.ID
	}
	slices.Sort(ids)
	return ids
}

func sortedStatus(t *aatree.Tree[*geom.Segment]) []int {
	ids := make([]int, 0, t.Count())
	t.Ascend(func(seg *geom.Segment) bool {
		ids = append(ids, seg.ID)
		return true
	})
	return ids
}
