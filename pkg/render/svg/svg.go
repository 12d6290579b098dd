// Package svg draws a planar subdivision directly as SVG, with every bounded
// face filled.
//
//	out := svg.RenderSVG(s, svg.WithWidth(800), svg.WithLabels())
//
// Unlike [github.com/matzehuels/planar/pkg/render/dot] it needs no layout
// engine: coordinates are mapped straight onto the canvas, y pointing up.
package svg

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/planar/pkg/dcel"
	"github.com/matzehuels/planar/pkg/geom"
)

// DefaultWidth is the canvas width in pixels.
const DefaultWidth = 800.0

// palette is cycled over faces by ID.
var palette = []string{
	"#8dd3c7", "#ffffb3", "#bebada", "#fb8072", "#80b1d3", "#fdb462",
	"#b3de69", "#fccde5", "#d9d9d9", "#bc80bd", "#ccebc5", "#ffed6f",
}

// Option configures rendering.
type Option func(*renderer)

type renderer struct {
	width     float64
	padding   float64
	labels    bool
	vertices  bool
	highlight map[int]bool
}

func WithWidth(w float64) Option { return func(r *renderer) { r.width = w } }
func WithLabels() Option         { return func(r *renderer) { r.labels = true } }
func WithVertices() Option       { return func(r *renderer) { r.vertices = true } }

// WithHighlight outlines the given faces.
func WithHighlight(faceIDs ...int) Option {
	return func(r *renderer) {
		for _, id := range faceIDs {
			r.highlight[id] = true
		}
	}
}

// RenderSVG returns an SVG document showing s.
func RenderSVG(s *dcel.Subdivision, opts ...Option) []byte {
	r := renderer{width: DefaultWidth, padding: 10, highlight: make(map[int]bool)}
	for _, opt := range opts {
		opt(&r)
	}

	b := s.Bounds()
	scale := (r.width - 2*r.padding) / b.Width()
	height := b.Height()*scale + 2*r.padding
	tr := func(p geom.Vec) (float64, float64) {
		return r.padding + (p.X-b.XMin)*scale, r.padding + (b.YMax-p.Y)*scale
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		r.width, height, r.width, height)

	for _, f := range s.BoundedFaces() {
		stroke, sw := "#333333", 1.0
		if r.highlight[f.ID()] {
			stroke, sw = "#d62728", 3.0
		}
		buf.WriteString(`  <polygon points="`)
		for i, v := range f.OuterVertices() {
			x, y := tr(v.Pos())
			if i > 0 {
				buf.WriteByte(' ')
			}
			fmt.Fprintf(&buf, "%.2f,%.2f", x, y)
		}
		fmt.Fprintf(&buf, `" id="face-%d" fill="%s" stroke="%s" stroke-width="%.1f" stroke-linejoin="round"/>`+"\n",
			f.ID(), palette[f.ID()%len(palette)], stroke, sw)
	}

	if r.vertices {
		for _, v := range s.Vertices() {
			x, y := tr(v.Pos())
			fmt.Fprintf(&buf, `  <circle id="vertex-%d" cx="%.2f" cy="%.2f" r="3" fill="#111111"/>`+"\n", v.ID(), x, y)
		}
	}

	if r.labels {
		for _, f := range s.BoundedFaces() {
			x, y := tr(f.Polygon().Centroid())
			fmt.Fprintf(&buf, `  <text x="%.2f" y="%.2f" font-family="monospace" font-size="12" text-anchor="middle" dominant-baseline="middle">f%d</text>`+"\n",
				x, y, f.ID())
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
