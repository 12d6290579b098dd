package dot

import (
	"bytes"
	"context"
	"fmt"
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

func TestToDOT(t *testing.T) {
	s := arrangement(t)
	st := s.Stats()

	tests := []struct {
		name      string
		opts      Options
		header    string
		edges     int
		edgeToken string
	}{
		{"undirected", Options{}, "graph G {", st.HalfEdges / 2, " -- "},
		{"half-edges", Options{HalfEdges: true}, "digraph G {", st.HalfEdges, " -> "},
		{"labels", Options{Labels: true, Scale: 1}, "graph G {", st.HalfEdges / 2, " -- "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := ToDOT(s, tt.opts)
			if !strings.HasPrefix(src, tt.header) {
				t.Errorf("ToDOT() starts with %q, want %q", strings.SplitN(src, "\n", 2)[0], tt.header)
			}
			if got := strings.Count(src, tt.edgeToken); got != tt.edges {
				t.Errorf("%d edges, want %d", got, tt.edges)
			}
			if got := strings.Count(src, "!\""); got < st.Vertices {
				t.Errorf("%d pinned nodes, want at least %d", got, st.Vertices)
			}
		})
	}
}

func TestToDOTLabels(t *testing.T) {
	s := arrangement(t)
	src := ToDOT(s, Options{Labels: true, Scale: 1})
	for _, f := range s.BoundedFaces() {
		if !strings.Contains(src, fmt.Sprintf("label=\"f%d\"", f.ID())) {
			t.Errorf("no label for %v", f)
		}
	}
	if !strings.Contains(src, `pos="-4.0000,2.0000!"`) {
		t.Error("top-left corner is not pinned at its coordinates")
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(arrangement(t), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Error("output is not SVG")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" viewBox="0.00 0.00 120.25 80.00" xmlns="x"><g/></svg>`)
	out := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 120.25 80.00" width="120" height="80"><g/></svg>`
	if out != want {
		t.Errorf("normalizeViewBox() = %s, want %s", out, want)
	}
}
