package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/planar/pkg/dcel"
)

// DefaultSize is the width of the longer side of the bounds, in inches, when
// Options.Scale is zero.
const DefaultSize = 8.0

// Options configures DOT generation.
type Options struct {
	Labels    bool
	HalfEdges bool
	Scale     float64
}

// ToDOT converts a subdivision to Graphviz DOT source.
func ToDOT(s *dcel.Subdivision, opts Options) string {
	scale := opts.Scale
	if scale <= 0 {
		b := s.Bounds()
		scale = DefaultSize / max(b.Width(), b.Height())
	}

	var buf bytes.Buffer
	kind, arrow := "graph", "--"
	if opts.HalfEdges {
		kind, arrow = "digraph", "->"
	}
	fmt.Fprintf(&buf, "%s G {\n", kind)
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=false;\n")
	if opts.Labels {
		buf.WriteString("  node [shape=circle, width=0.25, fixedsize=true, fontsize=8, style=filled, fillcolor=white];\n")
	} else {
		buf.WriteString("  node [shape=point, width=0.06];\n")
	}
	buf.WriteString("  edge [arrowsize=0.4];\n")
	buf.WriteString("\n")

	for _, v := range s.Vertices() {
		p := v.Pos()
		attrs := fmt.Sprintf("pos=\"%s,%s!\"", num(p.X*scale), num(p.Y*scale))
		if opts.Labels {
			attrs += fmt.Sprintf(", label=\"%d\"", v.ID())
		} else {
			attrs += ", label=\"\""
		}
		fmt.Fprintf(&buf, "  v%d [%s];\n", v.ID(), attrs)
	}

	buf.WriteString("\n")
	for _, e := range s.HalfEdges() {
		if !opts.HalfEdges && e.ID() > e.Twin().ID() {
			continue
		}
		var attrs []string
		if opts.Labels && opts.HalfEdges {
			attrs = append(attrs, fmt.Sprintf("label=\"f%d\"", e.Face().ID()), "fontsize=6")
		}
		if e.Face().IsOuter() && opts.HalfEdges {
			attrs = append(attrs, "style=dashed")
		}
		fmt.Fprintf(&buf, "  v%d %s v%d", e.From().ID(), arrow, e.To().ID())
		if len(attrs) > 0 {
			fmt.Fprintf(&buf, " [%s]", strings.Join(attrs, ", "))
		}
		buf.WriteString(";\n")
	}

	if opts.Labels {
		buf.WriteString("\n")
		for _, f := range s.BoundedFaces() {
			c := f.Polygon().Centroid()
			fmt.Fprintf(&buf, "  f%d [shape=plaintext, style=\"\", label=\"f%d\", fontcolor=grey40, pos=\"%s,%s!\"];\n",
				f.ID(), f.ID(), num(c.X*scale), num(c.Y*scale))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', 4, 64)
}

// RenderSVG lays out DOT source with neato and renders it as SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.-]+)\s+([0-9.-]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the root element so the SVG scales with its
// container.
func normalizeViewBox(svg []byte) []byte {
	m := viewBoxRe.FindSubmatch(svg)
	if m == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(m[3]), 64)
	h, _ := strconv.ParseFloat(string(m[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
