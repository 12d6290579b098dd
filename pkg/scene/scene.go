// Package scene loads the input of an arrangement or intersection run: a set
// of lines, an optional clipping rectangle and an optional set of segments.
//
// Scenes are written in TOML:
//
//	name = "three lines"
//	margin = 10
//
//	[[lines]]
//	slope = 1
//	intercept = 0
//
//	[[lines]]
//	p1 = { x = 0, y = 4 }
//	p2 = { x = 1, y = 3 }
//
//	[[lines]]
//	x = 2.5
//
//	[[segments]]
//	id = 1
//	a = { x = 0, y = 0 }
//	b = { x = 4, y = 4 }
//
// When no [bounds] table is given, the clipping rectangle is derived from the
// lines with [geom.BoundingBoxFromLines] and the margin. The same structure is
// accepted as JSON by the HTTP API.
package scene

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/planar/pkg/errors"
	"github.com/matzehuels/planar/pkg/geom"
)

// DefaultMargin is the margin used when a scene without bounds gives none.
const DefaultMargin = 10.0

// Scene is the input of a run.
type Scene struct {
	Name     string        `toml:"name" json:"name,omitempty" bson:"name,omitempty"`
	Bounds   *geom.Rect    `toml:"bounds" json:"bounds,omitempty" bson:"bounds,omitempty"`
	Margin   float64       `toml:"margin" json:"margin,omitempty" bson:"margin,omitempty"`
	Lines    []LineSpec    `toml:"lines" json:"lines,omitempty" bson:"lines,omitempty"`
	Segments []SegmentSpec `toml:"segments" json:"segments,omitempty" bson:"segments,omitempty"`
}

// LineSpec describes a line in one of three ways: two points (P1 and P2), a
// slope and intercept, or a vertical line at X.
type LineSpec struct {
	P1        *geom.Vec `toml:"p1" json:"p1,omitempty" bson:"p1,omitempty"`
	P2        *geom.Vec `toml:"p2" json:"p2,omitempty" bson:"p2,omitempty"`
	Slope     *float64  `toml:"slope" json:"slope,omitempty" bson:"slope,omitempty"`
	Intercept *float64  `toml:"intercept" json:"intercept,omitempty" bson:"intercept,omitempty"`
	X         *float64  `toml:"x" json:"x,omitempty" bson:"x,omitempty"`
}

// SegmentSpec is a segment with a caller-chosen ID.
type SegmentSpec struct {
	ID int      `toml:"id" json:"id" bson:"id"`
	A  geom.Vec `toml:"a" json:"a" bson:"a"`
	B  geom.Vec `toml:"b" json:"b" bson:"b"`
}

// Load reads a scene from a .toml or .json file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "scene %s", path)
		}
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ParseJSON(data)
	}
	return Parse(data)
}

// Parse decodes and validates a TOML scene.
func Parse(data []byte) (*Scene, error) {
	var s Scene
	md, err := toml.Decode(string(data), &s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode scene")
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidScene, "unknown scene key %q", undec[0].String())
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// ParseJSON decodes and validates a JSON scene. Unknown fields are rejected.
func ParseJSON(data []byte) (*Scene, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var s Scene
	if err := dec.Decode(&s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode scene")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the scene without building anything.
func (s *Scene) Validate() error {
	if err := errors.ValidateName(s.Name); err != nil {
		return err
	}
	if err := errors.ValidateCount("lines", len(s.Lines), errors.MaxLines); err != nil {
		return err
	}
	if err := errors.ValidateCount("segments", len(s.Segments), errors.MaxSegments); err != nil {
		return err
	}
	if len(s.Lines) == 0 && len(s.Segments) == 0 {
		return errors.New(errors.ErrCodeInvalidScene, "scene has no lines or segments")
	}
	if err := errors.ValidateFinite("margin", s.Margin); err != nil {
		return err
	}
	if s.Margin < 0 {
		return errors.New(errors.ErrCodeInvalidScene, "margin must not be negative, got %g", s.Margin)
	}
	if s.Bounds != nil {
		if err := s.Bounds.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidGeometry, err, "bounds")
		}
	}
	for i, l := range s.Lines {
		if _, err := l.Line(); err != nil {
			return errors.FieldError("line", i, err)
		}
	}
	ids := make(map[int]bool, len(s.Segments))
	for i, seg := range s.Segments {
		if err := errors.ValidateFinite("segment endpoint", seg.A.X, seg.A.Y, seg.B.X, seg.B.Y); err != nil {
			return errors.FieldError("segment", i, err)
		}
		if seg.A == seg.B {
			return errors.FieldError("segment", i, errors.New(errors.ErrCodeInvalidGeometry, "endpoints coincide"))
		}
		if ids[seg.ID] {
			return errors.FieldError("segment", i, errors.New(errors.ErrCodeInvalidScene, "duplicate id %d", seg.ID))
		}
		ids[seg.ID] = true
	}
	return nil
}

// Line converts the spec to a [geom.Line].
func (l LineSpec) Line() (geom.Line, error) {
	var line geom.Line
	switch {
	case l.P1 != nil && l.P2 != nil && l.Slope == nil && l.Intercept == nil && l.X == nil:
		line = geom.LineThrough(*l.P1, *l.P2)
	case l.Slope != nil && l.P1 == nil && l.P2 == nil && l.X == nil:
		var b float64
		if l.Intercept != nil {
			b = *l.Intercept
		}
		if err := errors.ValidateFinite("slope", *l.Slope, b); err != nil {
			return geom.Line{}, err
		}
		line = geom.LineFromSlope(*l.Slope, b)
	case l.X != nil && l.P1 == nil && l.P2 == nil && l.Slope == nil && l.Intercept == nil:
		line = geom.LineThrough(geom.Vec{X: *l.X, Y: 0}, geom.Vec{X: *l.X, Y: 1})
	default:
		return geom.Line{}, errors.New(errors.ErrCodeInvalidScene, "line needs exactly one of p1+p2, slope[+intercept] or x")
	}
	if err := line.Validate(); err != nil {
		return geom.Line{}, errors.Wrap(errors.ErrCodeInvalidGeometry, err, "invalid line")
	}
	return line, nil
}

// GeomLines returns the scene's lines. The scene must be valid.
func (s *Scene) GeomLines() []geom.Line {
	out := make([]geom.Line, 0, len(s.Lines))
	for _, l := range s.Lines {
		line, err := l.Line()
		if err != nil {
			continue
		}
		out = append(out, line)
	}
	return out
}

// GeomSegments returns the scene's segments.
func (s *Scene) GeomSegments() []geom.Segment {
	out := make([]geom.Segment, len(s.Segments))
	for i, seg := range s.Segments {
		out[i] = geom.Segment{ID: seg.ID, A: seg.A, B: seg.B}
	}
	return out
}

// Rect returns the clipping rectangle: the explicit bounds if set, otherwise
// the bounding box of the line intersections grown by the margin.
func (s *Scene) Rect() (geom.Rect, error) {
	if s.Bounds != nil {
		return *s.Bounds, nil
	}
	m := s.Margin
	if m == 0 {
		m = DefaultMargin
	}
	r, err := geom.BoundingBoxFromLines(s.GeomLines(), m, m)
	if err != nil {
		return geom.Rect{}, errors.Wrap(errors.ErrCodeInvalidScene, err, "derive bounds")
	}
	return r, nil
}

// Hash returns a content hash of the scene. Scenes that differ only in name
// hash the same.
func (s *Scene) Hash() string {
	c := *s
	c.Name = ""
	data, _ := json.Marshal(c)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
