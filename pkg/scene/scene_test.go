package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/planar/pkg/errors"
	"github.com/matzehuels/planar/pkg/geom"
)

const threeLines = `
name = "three lines"
margin = 1

[[lines]]
slope = 1
intercept = 0

[[lines]]
slope = -1
intercept = 2

[[lines]]
x = 3
`

func TestParse(t *testing.T) {
	s, err := Parse([]byte(threeLines))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if s.Name != "three lines" {
		t.Errorf("Name = %q", s.Name)
	}
	lines := s.GeomLines()
	if len(lines) != 3 {
		t.Fatalf("len(GeomLines()) = %d, want 3", len(lines))
	}
	if !lines[2].IsVertical() {
		t.Errorf("line 2 = %v, want vertical", lines[2])
	}

	// Intersections: (1, 1), (3, 3), (3, -1).
	r, err := s.Rect()
	if err != nil {
		t.Fatalf("Rect() error: %v", err)
	}
	want := geom.Rect{XMin: 0, YMin: -2, XMax: 4, YMax: 4}
	if !nearRect(r, want) {
		t.Errorf("Rect() = %v, want %v", r, want)
	}
}

func nearRect(a, b geom.Rect) bool {
	return geom.NearlyEqual(a.XMin, b.XMin) && geom.NearlyEqual(a.YMin, b.YMin) &&
		geom.NearlyEqual(a.XMax, b.XMax) && geom.NearlyEqual(a.YMax, b.YMax)
}

func TestParseExplicitBounds(t *testing.T) {
	src := `
[bounds]
xmin = -5
ymin = -5
xmax = 5
ymax = 5

[[lines]]
p1 = { x = 0, y = 0 }
p2 = { x = 1, y = 2 }

[[segments]]
id = 4
a = { x = 0, y = 0 }
b = { x = 1, y = 1 }
`
	s, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	r, err := s.Rect()
	if err != nil {
		t.Fatalf("Rect() error: %v", err)
	}
	if want := (geom.Rect{XMin: -5, YMin: -5, XMax: 5, YMax: 5}); r != want {
		t.Errorf("Rect() = %v, want %v", r, want)
	}
	segs := s.GeomSegments()
	if len(segs) != 1 || segs[0].ID != 4 {
		t.Errorf("GeomSegments() = %v", segs)
	}
	if !s.GeomLines()[0].Oriented {
		t.Error("two-point line is not oriented")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code errors.Code
	}{
		{"syntax", "lines = [", errors.ErrCodeInvalidScene},
		{"unknown key", "colour = 1\n[[lines]]\nslope = 1", errors.ErrCodeInvalidScene},
		{"empty", "name = \"x\"", errors.ErrCodeInvalidScene},
		{"mixed line forms", "[[lines]]\nslope = 1\nx = 2", errors.ErrCodeInvalidScene},
		{"half a line", "[[lines]]\np1 = { x = 0, y = 0 }", errors.ErrCodeInvalidScene},
		{"degenerate line", "[[lines]]\np1 = { x = 1, y = 1 }\np2 = { x = 1, y = 1 }", errors.ErrCodeInvalidGeometry},
		{"nan slope", "[[lines]]\nslope = nan", errors.ErrCodeInvalidGeometry},
		{"negative margin", "margin = -1\n[[lines]]\nslope = 1", errors.ErrCodeInvalidScene},
		{"inverted bounds", "[bounds]\nxmin = 1\nxmax = 0\nymin = 0\nymax = 1\n[[lines]]\nslope = 1", errors.ErrCodeInvalidGeometry},
		{"point segment", "[[segments]]\nid = 1\na = { x = 1, y = 1 }\nb = { x = 1, y = 1 }", errors.ErrCodeInvalidGeometry},
		{"duplicate segment", "[[segments]]\nid = 1\na = { x = 0, y = 0 }\nb = { x = 1, y = 1 }\n[[segments]]\nid = 1\na = { x = 0, y = 1 }\nb = { x = 1, y = 0 }", errors.ErrCodeInvalidScene},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			if err == nil {
				t.Fatal("Parse() succeeded")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %v, want %v (err: %v)", got, tt.code, err)
			}
		})
	}
}

func TestRectParallel(t *testing.T) {
	s, err := Parse([]byte("[[lines]]\nslope = 1\n[[lines]]\nslope = 1\nintercept = 3"))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if _, err := s.Rect(); !errors.Is(err, errors.ErrCodeInvalidScene) {
		t.Errorf("Rect() error = %v, want %v", err, errors.ErrCodeInvalidScene)
	}
}

func TestParseJSON(t *testing.T) {
	src := `{"name":"json","lines":[{"slope":1},{"slope":-1,"intercept":2}]}`
	s, err := ParseJSON([]byte(src))
	if err != nil {
		t.Fatalf("ParseJSON() error: %v", err)
	}
	if len(s.Lines) != 2 {
		t.Errorf("len(Lines) = %d, want 2", len(s.Lines))
	}
	if _, err := ParseJSON([]byte(`{"lines":[{"slope":1}],"extra":true}`)); err == nil {
		t.Error("ParseJSON() accepted an unknown field")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	tomlPath := filepath.Join(dir, "scene.toml")
	jsonPath := filepath.Join(dir, "scene.json")
	if err := os.WriteFile(tomlPath, []byte(threeLines), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(jsonPath, []byte(`{"lines":[{"slope":1},{"x":0}]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{tomlPath, jsonPath} {
		if _, err := Load(path); err != nil {
			t.Errorf("Load(%s) error: %v", filepath.Base(path), err)
		}
	}
	if _, err := Load(filepath.Join(dir, "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) error = %v, want %v", err, errors.ErrCodeFileNotFound)
	}
}

func TestHash(t *testing.T) {
	a, _ := Parse([]byte(threeLines))
	b, _ := Parse([]byte(threeLines))
	b.Name = "renamed"
	if a.Hash() != b.Hash() {
		t.Error("Hash() depends on the name")
	}
	b.Margin = 2
	if a.Hash() == b.Hash() {
		t.Error("Hash() ignores the margin")
	}
}
