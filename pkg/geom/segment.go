package geom

import "fmt"

// Segment is a closed line segment between A and B. ID identifies the segment in
// sweep results and breaks ties between otherwise equal segments.
type Segment struct {
	ID int `json:"id" toml:"id" bson:"id"`
	A  Vec `json:"a" toml:"a" bson:"a"`
	B  Vec `json:"b" toml:"b" bson:"b"`
}

// Upper returns the endpoint that comes first in sweep order.
func (s *Segment) Upper() Vec {
	if SweepCompare(s.A, s.B) <= 0 {
		return s.A
	}
	return s.B
}

// Lower returns the endpoint that comes last in sweep order.
func (s *Segment) Lower() Vec {
	if SweepCompare(s.A, s.B) <= 0 {
		return s.B
	}
	return s.A
}

func (s *Segment) IsHorizontal() bool { return s.A.Y == s.B.Y }
func (s *Segment) IsPoint() bool      { return s.A == s.B }
func (s *Segment) Line() Line         { return LineThrough(s.A, s.B) }

// XAt returns the x-coordinate of the segment at height y. Horizontal segments
// return the x of their upper (left) endpoint.
func (s *Segment) XAt(y float64) float64 {
	if s.IsHorizontal() {
		return s.Upper().X
	}
	t := (y - s.A.Y) / (s.B.Y - s.A.Y)
	return s.A.X + t*(s.B.X-s.A.X)
}

// HasEndpoint reports whether p is one of the endpoints within tolerance.
func (s *Segment) HasEndpoint(p Vec) bool {
	return s.A.Near(p) || s.B.Near(p)
}

// ContainsPoint reports whether p lies on the segment within tolerance.
func (s *Segment) ContainsPoint(p Vec) bool {
	if s.HasEndpoint(p) {
		return true
	}
	d := s.B.Sub(s.A)
	l := d.Len()
	if l == 0 {
		return false
	}
	if dist := Orient(s.A, s.B, p) / l; !NearlyEqual(dist, 0) {
		return false
	}
	t := p.Sub(s.A).Dot(d) / (l * l)
	return t >= 0 && t <= 1
}

// Intersect returns the single point shared by s and o. Parallel segments,
// including collinear overlapping ones, report no intersection. A result near
// an endpoint is snapped to that endpoint.
func (s *Segment) Intersect(o *Segment) (Vec, bool) {
	d1 := s.B.Sub(s.A)
	d2 := o.B.Sub(o.A)
	denom := d1.Cross(d2)
	if denom == 0 {
		return Vec{}, false
	}
	w := o.A.Sub(s.A)
	t := w.Cross(d2) / denom
	u := w.Cross(d1) / denom
	const tol = 1e-12
	if t < -tol || t > 1+tol || u < -tol || u > 1+tol {
		return Vec{}, false
	}
	p := s.A.Add(d1.Scale(t))
	for _, e := range [...]Vec{s.A, s.B, o.A, o.B} {
		if p.Near(e) {
			return e, true
		}
	}
	return p, true
}

func (s *Segment) String() string {
	return fmt.Sprintf("s%d[%v-%v]", s.ID, s.A, s.B)
}
