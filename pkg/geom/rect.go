package geom

import "fmt"

// Rect is an axis-aligned rectangle.
type Rect struct {
	XMin float64 `json:"xmin" toml:"xmin" bson:"xmin"`
	YMin float64 `json:"ymin" toml:"ymin" bson:"ymin"`
	XMax float64 `json:"xmax" toml:"xmax" bson:"xmax"`
	YMax float64 `json:"ymax" toml:"ymax" bson:"ymax"`
}

func (r Rect) Width() float64  { return r.XMax - r.XMin }
func (r Rect) Height() float64 { return r.YMax - r.YMin }
func (r Rect) Center() Vec     { return Vec{(r.XMin + r.XMax) / 2, (r.YMin + r.YMax) / 2} }

// Validate returns an error unless all bounds are finite and the rectangle has
// positive width and height.
func (r Rect) Validate() error {
	for _, f := range []float64{r.XMin, r.YMin, r.XMax, r.YMax} {
		if !isFinite(f) {
			return fmt.Errorf("%w: %v: %w", ErrInvalidRect, r, ErrNonFinite)
		}
	}
	if r.XMin >= r.XMax || r.YMin >= r.YMax {
		return fmt.Errorf("%w: %v has no area", ErrInvalidRect, r)
	}
	return nil
}

// Contains reports whether p lies inside r or on its boundary.
func (r Rect) Contains(p Vec) bool {
	return p.X >= r.XMin && p.X <= r.XMax && p.Y >= r.YMin && p.Y <= r.YMax
}

// Expand returns r grown by dx on the left and right and dy on the top and bottom.
func (r Rect) Expand(dx, dy float64) Rect {
	return Rect{XMin: r.XMin - dx, YMin: r.YMin - dy, XMax: r.XMax + dx, YMax: r.YMax + dy}
}

// Corners returns the corners in clockwise order starting top-left:
// top-left, top-right, bottom-right, bottom-left.
func (r Rect) Corners() [4]Vec {
	return [4]Vec{
		{r.XMin, r.YMax},
		{r.XMax, r.YMax},
		{r.XMax, r.YMin},
		{r.XMin, r.YMin},
	}
}

func (r Rect) String() string {
	return fmt.Sprintf("[%g, %g]x[%g, %g]", r.XMin, r.XMax, r.YMin, r.YMax)
}

// BoundingBoxFromPoints returns the smallest rectangle containing pts.
// The result may have zero width or height.
func BoundingBoxFromPoints(pts []Vec) (Rect, error) {
	if len(pts) == 0 {
		return Rect{}, ErrEmpty
	}
	r := Rect{XMin: pts[0].X, XMax: pts[0].X, YMin: pts[0].Y, YMax: pts[0].Y}
	for _, p := range pts[1:] {
		r.XMin = min(r.XMin, p.X)
		r.XMax = max(r.XMax, p.X)
		r.YMin = min(r.YMin, p.Y)
		r.YMax = max(r.YMax, p.Y)
	}
	for _, f := range []float64{r.XMin, r.YMin, r.XMax, r.YMax} {
		if !isFinite(f) {
			return Rect{}, fmt.Errorf("bounding box %v: %w", r, ErrNonFinite)
		}
	}
	return r, nil
}
