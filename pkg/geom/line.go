package geom

import (
	"cmp"
	"errors"
	"fmt"
	"math"
)

// Line is an infinite line through two distinct points.
type Line struct {
	P1 Vec `json:"p1" bson:"p1"`
	P2 Vec `json:"p2" bson:"p2"`

	// Oriented lines run from P1 to P2 and have a right-hand side.
	Oriented bool `json:"oriented,omitempty" bson:"oriented,omitempty"`
}

// LineThrough returns the oriented line from p1 to p2.
func LineThrough(p1, p2 Vec) Line {
	return Line{P1: p1, P2: p2, Oriented: true}
}

// LineFromSlope returns the unoriented line y = slope*x + intercept.
func LineFromSlope(slope, intercept float64) Line {
	return Line{P1: Vec{0, intercept}, P2: Vec{10, intercept + 10*slope}}
}

// LineAtAngle returns the oriented line through p making angle (radians) with
// the positive x-axis.
func LineAtAngle(p Vec, angle float64) Line {
	return LineThrough(p, p.Add(Vec{math.Cos(angle), math.Sin(angle)}))
}

// Validate returns an error for lines with non-finite or coinciding points.
func (l Line) Validate() error {
	if !l.P1.IsFinite() || !l.P2.IsFinite() {
		return fmt.Errorf("line %v: %w", l, ErrNonFinite)
	}
	if l.P1 == l.P2 {
		return fmt.Errorf("line %v: %w", l, ErrDegenerateLine)
	}
	return nil
}

func (l Line) IsVertical() bool   { return l.P1.X == l.P2.X }
func (l Line) IsHorizontal() bool { return l.P1.Y == l.P2.Y }

// Slope returns dy/dx, or +Inf for vertical lines.
func (l Line) Slope() float64 {
	if l.IsVertical() {
		return math.Inf(1)
	}
	return (l.P1.Y - l.P2.Y) / (l.P1.X - l.P2.X)
}

// HeightAtYAxis returns the y-intercept, or NaN for vertical lines.
func (l Line) HeightAtYAxis() float64 {
	if l.IsVertical() {
		return math.NaN()
	}
	return l.P1.Y - l.Slope()*l.P1.X
}

// Angle returns the angle of the line with the x-axis in radians, in (-π/2, π/2].
func (l Line) Angle() float64 {
	return math.Atan(l.Slope())
}

// Normal returns a normal vector of the line.
func (l Line) Normal() Vec {
	d := l.P2.Sub(l.P1)
	return Vec{d.Y, -d.X}
}

// X returns the x-coordinate of the line at height y.
func (l Line) X(y float64) (float64, error) {
	if l.IsVertical() {
		return l.P1.X, nil
	}
	s := l.Slope()
	if s == 0 {
		return 0, ErrHorizontal
	}
	return (y - l.HeightAtYAxis()) / s, nil
}

// Y returns the y-coordinate of the line at x.
func (l Line) Y(x float64) (float64, error) {
	if l.IsVertical() {
		return 0, ErrVertical
	}
	return l.HeightAtYAxis() + l.Slope()*x, nil
}

// Intersect returns the intersection point of l and o. It returns [ErrParallel]
// for parallel or coinciding lines.
func (l Line) Intersect(o Line) (Vec, error) {
	lv, ov := l.IsVertical(), o.IsVertical()
	switch {
	case lv && ov:
		return Vec{}, fmt.Errorf("two vertical lines: %w", ErrParallel)
	case lv || ov:
		vert, other := l, o
		if ov {
			vert, other = o, l
		}
		x := vert.P1.X
		y, _ := other.Y(x)
		return checked(Vec{x, y})
	}

	ls, os := l.Slope(), o.Slope()
	if ls == os {
		return Vec{}, ErrParallel
	}
	x := -(l.HeightAtYAxis() - o.HeightAtYAxis()) / (ls - os)
	y, _ := l.Y(x)
	return checked(Vec{x, y})
}

func checked(p Vec) (Vec, error) {
	if !p.IsFinite() {
		return p, fmt.Errorf("intersection %v: %w", p, ErrNonFinite)
	}
	return p, nil
}

// PointAbove reports whether p lies strictly above the line, or strictly left
// of it when the line is vertical.
func (l Line) PointAbove(p Vec) bool {
	if l.IsVertical() {
		return p.X < l.P1.X
	}
	y, _ := l.Y(p.X)
	return p.Y > y
}

// NumberOfPointsAbove counts the points for which [Line.PointAbove] holds.
func (l Line) NumberOfPointsAbove(pts []Vec) int {
	n := 0
	for _, p := range pts {
		if l.PointAbove(p) {
			n++
		}
	}
	return n
}

// PointRightOf reports whether p lies strictly right of the oriented line.
func (l Line) PointRightOf(p Vec) (bool, error) {
	if !l.Oriented {
		return false, ErrUnoriented
	}
	return Orient(l.P1, l.P2, p) < 0, nil
}

// DistanceToPoint returns the perpendicular distance from p to the line.
func (l Line) DistanceToPoint(p Vec) float64 {
	d := l.P2.Sub(l.P1)
	return math.Abs(d.Cross(p.Sub(l.P1))) / d.Len()
}

func (l Line) String() string {
	if l.IsVertical() {
		return fmt.Sprintf("x = %g", l.P1.X)
	}
	return fmt.Sprintf("y = %gx + %g", l.Slope(), l.HeightAtYAxis())
}

// CompareSlope orders lines by slope; vertical lines sort last.
func CompareSlope(a, b Line) int {
	return cmp.Compare(a.Slope(), b.Slope())
}

// BoundingBoxFromLines returns a rectangle containing every pairwise intersection
// of lines, enlarged by xMargin and yMargin so no intersection lies on its
// boundary. Parallel pairs are skipped. At least two non-parallel lines are
// required.
func BoundingBoxFromLines(lines []Line, xMargin, yMargin float64) (Rect, error) {
	if len(lines) < 2 {
		return Rect{}, fmt.Errorf("%w: have %d, need 2", ErrNotEnoughLines, len(lines))
	}
	if xMargin <= 0 || yMargin <= 0 {
		return Rect{}, fmt.Errorf("margins must be positive, got %g, %g", xMargin, yMargin)
	}

	for _, l := range lines {
		if err := l.Validate(); err != nil {
			return Rect{}, err
		}
	}

	var pts []Vec
	for i := range lines {
		for j := i + 1; j < len(lines); j++ {
			p, err := lines[i].Intersect(lines[j])
			if err != nil {
				if errors.Is(err, ErrParallel) {
					continue
				}
				return Rect{}, err
			}
			pts = append(pts, p)
		}
	}
	if len(pts) == 0 {
		return Rect{}, fmt.Errorf("%w: all lines are parallel", ErrNotEnoughLines)
	}

	r, err := BoundingBoxFromPoints(pts)
	if err != nil {
		return Rect{}, err
	}
	r = r.Expand(xMargin, yMargin)
	if err := r.Validate(); err != nil {
		return Rect{}, err
	}
	return r, nil
}
