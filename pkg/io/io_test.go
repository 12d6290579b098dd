package io

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/planar/pkg/dcel"
	"github.com/matzehuels/planar/pkg/geom"
)

func arrangement(t *testing.T) *dcel.Subdivision {
	t.Helper()
	lines := []geom.Line{geom.LineFromSlope(1, 0), geom.LineFromSlope(-1, 0)}
	s, err := dcel.NewArrangement(lines, geom.Rect{XMin: -4, YMin: -2, XMax: 4, YMax: 2})
	if err != nil {
		t.Fatalf("NewArrangement: %v", err)
	}
	return s
}

func TestRoundTrip(t *testing.T) {
	s := arrangement(t)

	var buf bytes.Buffer
	if err := WriteJSON(s, &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}

	if got.Stats() != s.Stats() {
		t.Errorf("Stats() = %+v, want %+v", got.Stats(), s.Stats())
	}
	if got.Bounds() != s.Bounds() {
		t.Errorf("Bounds() = %v, want %v", got.Bounds(), s.Bounds())
	}
	if err := got.Validate(); err != nil {
		t.Errorf("Validate() after round trip: %v", err)
	}
	for i, v := range got.Vertices() {
		if v.Pos() != s.Vertices()[i].Pos() {
			t.Errorf("vertex %d = %v, want %v", i, v.Pos(), s.Vertices()[i].Pos())
		}
	}
}

func TestNewDocumentFaces(t *testing.T) {
	doc := NewDocument(arrangement(t))
	if doc.Version != Version {
		t.Errorf("Version = %d, want %d", doc.Version, Version)
	}
	var total float64
	var outer int
	for _, f := range doc.Faces {
		if f.Outer {
			outer++
			continue
		}
		total += f.Area
	}
	if outer != 1 {
		t.Errorf("%d outer faces, want 1", outer)
	}
	if !geom.NearlyEqual(total, 32) {
		t.Errorf("bounded area = %g, want 32", total)
	}
}

func TestReadJSONErrors(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(arrangement(t), &buf); err != nil {
		t.Fatal(err)
	}
	valid := buf.String()

	t.Run("malformed", func(t *testing.T) {
		if _, err := ReadJSON(strings.NewReader("{")); err == nil {
			t.Error("ReadJSON() succeeded")
		}
	})

	t.Run("version", func(t *testing.T) {
		src := strings.Replace(valid, `"version": 1`, `"version": 7`, 1)
		if _, err := ReadJSON(strings.NewReader(src)); !errors.Is(err, ErrVersion) {
			t.Errorf("ReadJSON() error = %v, want %v", err, ErrVersion)
		}
	})

	t.Run("broken twin", func(t *testing.T) {
		doc, err := Decode(strings.NewReader(valid))
		if err != nil {
			t.Fatal(err)
		}
		doc.Subdivision.Edges[0].Twin = 0
		if _, err := doc.Build(); !errors.Is(err, dcel.ErrTwin) {
			t.Errorf("Build() error = %v, want %v", err, dcel.ErrTwin)
		}
	})

	t.Run("dangling reference", func(t *testing.T) {
		doc, err := Decode(strings.NewReader(valid))
		if err != nil {
			t.Fatal(err)
		}
		doc.Subdivision.Edges[0].Next = 999
		if _, err := doc.Build(); !errors.Is(err, dcel.ErrBadRecord) {
			t.Errorf("Build() error = %v, want %v", err, dcel.ErrBadRecord)
		}
	})
}

func TestExportImport(t *testing.T) {
	s := arrangement(t)
	path := filepath.Join(t.TempDir(), "arrangement.json")
	if err := ExportJSON(s, path); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	got, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if got.Stats() != s.Stats() {
		t.Errorf("Stats() = %+v, want %+v", got.Stats(), s.Stats())
	}
	if _, err := ImportJSON(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("ImportJSON(missing) succeeded")
	}
}
