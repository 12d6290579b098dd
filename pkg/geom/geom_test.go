package geom

import (
	"errors"
	"math"
	"testing"
)

func TestLineIntersect(t *testing.T) {
	tests := []struct {
		name    string
		a, b    Line
		want    Vec
		wantErr error
	}{
		{"diagonals", LineFromSlope(1, 0), LineFromSlope(-1, 2), Vec{1, 1}, nil},
		{"vertical and slope", LineThrough(Vec{3, -1}, Vec{3, 1}), LineFromSlope(2, 1), Vec{3, 7}, nil},
		{"slope and vertical", LineFromSlope(2, 1), LineThrough(Vec{3, -1}, Vec{3, 1}), Vec{3, 7}, nil},
		{"horizontal", LineFromSlope(0, 4), LineFromSlope(1, 0), Vec{4, 4}, nil},
		{"parallel", LineFromSlope(1, 0), LineFromSlope(1, 5), Vec{}, ErrParallel},
		{"two vertical", LineThrough(Vec{0, 0}, Vec{0, 1}), LineThrough(Vec{1, 0}, Vec{1, 1}), Vec{}, ErrParallel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.a.Intersect(tt.b)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Intersect() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Intersect() error = %v", err)
			}
			if !got.Near(tt.want) {
				t.Errorf("Intersect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLineAccessors(t *testing.T) {
	l := LineFromSlope(2, -3)
	if got := l.Slope(); got != 2 {
		t.Errorf("Slope() = %v, want 2", got)
	}
	if got := l.HeightAtYAxis(); got != -3 {
		t.Errorf("HeightAtYAxis() = %v, want -3", got)
	}
	if x, err := l.X(1); err != nil || x != 2 {
		t.Errorf("X(1) = %v, %v, want 2", x, err)
	}
	if y, err := l.Y(2); err != nil || y != 1 {
		t.Errorf("Y(2) = %v, %v, want 1", y, err)
	}

	v := LineThrough(Vec{5, 0}, Vec{5, 1})
	if !math.IsInf(v.Slope(), 1) {
		t.Errorf("vertical Slope() = %v, want +Inf", v.Slope())
	}
	if !math.IsNaN(v.HeightAtYAxis()) {
		t.Errorf("vertical HeightAtYAxis() = %v, want NaN", v.HeightAtYAxis())
	}
	if _, err := v.Y(0); !errors.Is(err, ErrVertical) {
		t.Errorf("vertical Y() error = %v, want ErrVertical", err)
	}
	if _, err := LineFromSlope(0, 1).X(0); !errors.Is(err, ErrHorizontal) {
		t.Errorf("horizontal X() error = %v, want ErrHorizontal", err)
	}
	if got := LineFromSlope(1, 0).Angle(); !NearlyEqual(got, math.Pi/4) {
		t.Errorf("Angle() = %v, want π/4", got)
	}
}

func TestPointSides(t *testing.T) {
	l := LineThrough(Vec{0, 0}, Vec{1, 1})
	tests := []struct {
		p        Vec
		above    bool
		rightOf  bool
		distance float64
	}{
		{Vec{0, 1}, true, false, math.Sqrt2 / 2},
		{Vec{1, 0}, false, true, math.Sqrt2 / 2},
		{Vec{2, 2}, false, false, 0},
	}
	for _, tt := range tests {
		if got := l.PointAbove(tt.p); got != tt.above {
			t.Errorf("PointAbove(%v) = %v, want %v", tt.p, got, tt.above)
		}
		got, err := l.PointRightOf(tt.p)
		if err != nil {
			t.Fatalf("PointRightOf(%v) error = %v", tt.p, err)
		}
		if got != tt.rightOf {
			t.Errorf("PointRightOf(%v) = %v, want %v", tt.p, got, tt.rightOf)
		}
		if got := l.DistanceToPoint(tt.p); !NearlyEqual(got, tt.distance) {
			t.Errorf("DistanceToPoint(%v) = %v, want %v", tt.p, got, tt.distance)
		}
	}

	if _, err := LineFromSlope(1, 0).PointRightOf(Vec{}); !errors.Is(err, ErrUnoriented) {
		t.Errorf("unoriented PointRightOf() error = %v, want ErrUnoriented", err)
	}
	if n := l.NumberOfPointsAbove([]Vec{{0, 1}, {0, 2}, {1, 0}}); n != 2 {
		t.Errorf("NumberOfPointsAbove() = %d, want 2", n)
	}
}

func TestBoundingBoxFromLines(t *testing.T) {
	lines := []Line{
		LineFromSlope(1, 0),
		LineFromSlope(-1, 2),
		LineThrough(Vec{3, -1}, Vec{3, 1}),
	}
	// intersections: (1,1), (3,3), (3,-1)
	got, err := BoundingBoxFromLines(lines, 10, 5)
	if err != nil {
		t.Fatalf("BoundingBoxFromLines() error = %v", err)
	}
	want := Rect{XMin: -9, YMin: -6, XMax: 13, YMax: 8}
	if got != want {
		t.Errorf("BoundingBoxFromLines() = %v, want %v", got, want)
	}
}

func TestBoundingBoxFromLinesParallelNeighbours(t *testing.T) {
	lines := []Line{
		LineFromSlope(1, 0),
		LineFromSlope(1, 4),
		LineFromSlope(-1, 0),
	}
	got, err := BoundingBoxFromLines(lines, 1, 1)
	if err != nil {
		t.Fatalf("BoundingBoxFromLines() error = %v", err)
	}
	for _, p := range []Vec{{0, 0}, {-2, 2}} {
		if !got.Contains(p) {
			t.Errorf("box %v does not contain %v", got, p)
		}
	}
}

func TestBoundingBoxFromLinesErrors(t *testing.T) {
	tests := []struct {
		name    string
		lines   []Line
		margin  float64
		wantErr error
	}{
		{"none", nil, 1, ErrNotEnoughLines},
		{"one", []Line{LineFromSlope(1, 0)}, 1, ErrNotEnoughLines},
		{"all parallel", []Line{LineFromSlope(1, 0), LineFromSlope(1, 1)}, 1, ErrNotEnoughLines},
		{"degenerate", []Line{LineFromSlope(1, 0), LineThrough(Vec{1, 1}, Vec{1, 1})}, 1, ErrDegenerateLine},
		{"non-finite", []Line{LineFromSlope(1, 0), LineFromSlope(math.NaN(), 0)}, 1, ErrNonFinite},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := BoundingBoxFromLines(tt.lines, tt.margin, tt.margin); !errors.Is(err, tt.wantErr) {
				t.Errorf("BoundingBoxFromLines() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
	if _, err := BoundingBoxFromLines([]Line{LineFromSlope(1, 0), LineFromSlope(-1, 0)}, 0, 1); err == nil {
		t.Error("BoundingBoxFromLines() with zero margin: want error")
	}
}

func TestRect(t *testing.T) {
	r := Rect{XMin: -1, YMin: -2, XMax: 3, YMax: 4}
	if err := r.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	c := r.Corners()
	want := [4]Vec{{-1, 4}, {3, 4}, {3, -2}, {-1, -2}}
	if c != want {
		t.Errorf("Corners() = %v, want %v", c, want)
	}
	if !Polygon(c[:]).IsClockwise() {
		t.Error("Corners() should be clockwise")
	}
	if r.Width() != 4 || r.Height() != 6 {
		t.Errorf("Width(), Height() = %v, %v, want 4, 6", r.Width(), r.Height())
	}

	bad := []Rect{
		{XMin: 1, XMax: 1, YMin: 0, YMax: 1},
		{XMin: 0, XMax: 1, YMin: 2, YMax: 1},
		{XMin: math.Inf(-1), XMax: 1, YMin: 0, YMax: 1},
	}
	for _, b := range bad {
		if err := b.Validate(); !errors.Is(err, ErrInvalidRect) {
			t.Errorf("Validate(%v) error = %v, want ErrInvalidRect", b, err)
		}
	}
	if _, err := BoundingBoxFromPoints(nil); !errors.Is(err, ErrEmpty) {
		t.Errorf("BoundingBoxFromPoints(nil) error = %v, want ErrEmpty", err)
	}
}

func TestPolygon(t *testing.T) {
	square := Polygon{{0, 0}, {0, 2}, {2, 2}, {2, 0}}
	if got := square.SignedArea(); got != -4 {
		t.Errorf("SignedArea() = %v, want -4", got)
	}
	if got := square.Area(); got != 4 {
		t.Errorf("Area() = %v, want 4", got)
	}
	if got := square.Centroid(); !got.Near(Vec{1, 1}) {
		t.Errorf("Centroid() = %v, want (1, 1)", got)
	}
	bb, err := square.BoundingBox()
	if err != nil || bb != (Rect{0, 0, 2, 2}) {
		t.Errorf("BoundingBox() = %v, %v", bb, err)
	}
	if got := (Polygon{{0, 0}, {1, 1}}).Area(); got != 0 {
		t.Errorf("degenerate Area() = %v, want 0", got)
	}
}

func TestSegment(t *testing.T) {
	s := &Segment{ID: 1, A: Vec{0, 0}, B: Vec{2, 4}}
	if s.Upper() != (Vec{2, 4}) || s.Lower() != (Vec{0, 0}) {
		t.Errorf("Upper(), Lower() = %v, %v", s.Upper(), s.Lower())
	}
	if got := s.XAt(2); got != 1 {
		t.Errorf("XAt(2) = %v, want 1", got)
	}
	h := &Segment{ID: 2, A: Vec{5, 1}, B: Vec{-5, 1}}
	if h.Upper() != (Vec{-5, 1}) {
		t.Errorf("horizontal Upper() = %v, want (-5, 1)", h.Upper())
	}
	if !s.ContainsPoint(Vec{1, 2}) || s.ContainsPoint(Vec{3, 6}) {
		t.Error("ContainsPoint() mismatch")
	}
}

func TestSegmentIntersect(t *testing.T) {
	tests := []struct {
		name string
		a, b Segment
		want Vec
		ok   bool
	}{
		{"cross", Segment{A: Vec{-1, -1}, B: Vec{1, 1}}, Segment{A: Vec{-1, 1}, B: Vec{1, -1}}, Vec{0, 0}, true},
		{"touch endpoint", Segment{A: Vec{0, 0}, B: Vec{1, 1}}, Segment{A: Vec{1, 1}, B: Vec{2, 0}}, Vec{1, 1}, true},
		{"T junction", Segment{A: Vec{-1, 0}, B: Vec{1, 0}}, Segment{A: Vec{0, 0}, B: Vec{0, 5}}, Vec{0, 0}, true},
		{"disjoint", Segment{A: Vec{0, 0}, B: Vec{1, 1}}, Segment{A: Vec{2, 0}, B: Vec{3, -1}}, Vec{}, false},
		{"parallel", Segment{A: Vec{0, 0}, B: Vec{1, 1}}, Segment{A: Vec{0, 1}, B: Vec{1, 2}}, Vec{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.a.Intersect(&tt.b)
			if ok != tt.ok || (ok && !got.Near(tt.want)) {
				t.Errorf("Intersect() = %v, %v, want %v, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestSweepCompare(t *testing.T) {
	tests := []struct {
		a, b Vec
		want int
	}{
		{Vec{0, 1}, Vec{0, 0}, -1},
		{Vec{0, 0}, Vec{0, 1}, 1},
		{Vec{-1, 0}, Vec{1, 0}, -1},
		{Vec{1, 0}, Vec{-1, 0}, 1},
		{Vec{1, 1}, Vec{1, 1}, 0},
	}
	for _, tt := range tests {
		if got := SweepCompare(tt.a, tt.b); got != tt.want {
			t.Errorf("SweepCompare(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
