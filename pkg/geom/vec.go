package geom

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for geometric operations.
var (
	// ErrNonFinite is returned when a coordinate or derived value is NaN or infinite.
	ErrNonFinite = errors.New("non-finite value")

	// ErrParallel is returned when intersecting lines that do not meet in a single point.
	ErrParallel = errors.New("parallel lines")

	// ErrVertical is returned for operations undefined on vertical lines.
	ErrVertical = errors.New("operation not supported for vertical lines")

	// ErrHorizontal is returned for operations undefined on horizontal lines.
	ErrHorizontal = errors.New("operation not supported for horizontal lines")

	// ErrUnoriented is returned when asking for the side of an unoriented line.
	ErrUnoriented = errors.New("line has no orientation")

	// ErrDegenerateLine is returned for lines defined by two identical points.
	ErrDegenerateLine = errors.New("line points coincide")

	// ErrNotEnoughLines is returned when a bounding box needs more lines.
	ErrNotEnoughLines = errors.New("not enough lines")

	// ErrEmpty is returned for operations on an empty point set.
	ErrEmpty = errors.New("empty point set")

	// ErrInvalidRect is returned for rectangles with non-finite or inverted bounds.
	ErrInvalidRect = errors.New("invalid rectangle")
)

// Epsilon is the relative tolerance used by [NearlyEqual] and [Vec.Near].
const Epsilon = 1e-9

// Vec is a point or direction in the plane.
type Vec struct {
	X float64 `json:"x" toml:"x" bson:"x"`
	Y float64 `json:"y" toml:"y" bson:"y"`
}

func (v Vec) Add(o Vec) Vec       { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec       { return Vec{v.X - o.X, v.Y - o.Y} }
func (v Vec) Scale(f float64) Vec { return Vec{v.X * f, v.Y * f} }
func (v Vec) Dot(o Vec) float64   { return v.X*o.X + v.Y*o.Y }
func (v Vec) Cross(o Vec) float64 { return v.X*o.Y - v.Y*o.X }
func (v Vec) Len() float64        { return math.Hypot(v.X, v.Y) }
func (v Vec) Dist(o Vec) float64  { return v.Sub(o).Len() }
func (v Vec) String() string      { return fmt.Sprintf("(%g, %g)", v.X, v.Y) }

// IsFinite reports whether both coordinates are finite.
func (v Vec) IsFinite() bool { return isFinite(v.X) && isFinite(v.Y) }

// Near reports whether v and o are equal within [Epsilon].
func (v Vec) Near(o Vec) bool { return NearlyEqual(v.X, o.X) && NearlyEqual(v.Y, o.Y) }

// Lerp interpolates between v (t=0) and o (t=1).
func (v Vec) Lerp(o Vec, t float64) Vec { return v.Add(o.Sub(v).Scale(t)) }

// Orient returns a positive value when c lies left of the directed line a→b,
// a negative value when it lies right of it and zero when the points are collinear.
func Orient(a, b, c Vec) float64 {
	return b.Sub(a).Cross(c.Sub(a))
}

// NearlyEqual compares a and b with a tolerance relative to their magnitude.
func NearlyEqual(a, b float64) bool {
	if a == b {
		return true
	}
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return math.Abs(a-b) <= Epsilon*scale
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// SweepCompare orders points by decreasing y, then increasing x.
func SweepCompare(a, b Vec) int {
	switch {
	case a.Y > b.Y:
		return -1
	case a.Y < b.Y:
		return 1
	case a.X < b.X:
		return -1
	case a.X > b.X:
		return 1
	default:
		return 0
	}
}
