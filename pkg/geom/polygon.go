package geom

import "math"

// Polygon is a closed chain of points; the last point connects back to the first.
type Polygon []Vec

// SignedArea returns the shoelace area, positive for counter-clockwise polygons.
func (p Polygon) SignedArea() float64 {
	if len(p) < 3 {
		return 0
	}
	var sum float64
	for i, a := range p {
		b := p[(i+1)%len(p)]
		sum += a.Cross(b)
	}
	return sum / 2
}

func (p Polygon) Area() float64     { return math.Abs(p.SignedArea()) }
func (p Polygon) IsClockwise() bool { return p.SignedArea() < 0 }

// BoundingBox returns the smallest rectangle containing the polygon.
func (p Polygon) BoundingBox() (Rect, error) {
	return BoundingBoxFromPoints(p)
}

// Centroid returns the area centroid, or the vertex mean for degenerate polygons.
func (p Polygon) Centroid() Vec {
	a := p.SignedArea()
	if a == 0 {
		var c Vec
		for _, v := range p {
			c = c.Add(v)
		}
		if len(p) > 0 {
			c = c.Scale(1 / float64(len(p)))
		}
		return c
	}
	var cx, cy float64
	for i, v := range p {
		w := p[(i+1)%len(p)]
		f := v.Cross(w)
		cx += (v.X + w.X) * f
		cy += (v.Y + w.Y) * f
	}
	return Vec{cx / (6 * a), cy / (6 * a)}
}
