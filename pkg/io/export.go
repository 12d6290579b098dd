package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/planar/pkg/dcel"
)

// Version is the document format version written by this package.
const Version = 1

// Document is the JSON form of a subdivision.
type Document struct {
	Version     int          `json:"version" bson:"version"`
	ID          string       `json:"id,omitempty" bson:"id,omitempty"`
	Stats       dcel.Stats   `json:"stats" bson:"stats"`
	Subdivision dcel.Records `json:"subdivision" bson:"subdivision"`
	Faces       []FaceInfo   `json:"faces,omitempty" bson:"faces,omitempty"`
}

// FaceInfo summarizes one face.
type FaceInfo struct {
	ID       int     `json:"id" bson:"id"`
	Outer    bool    `json:"outer,omitempty" bson:"outer,omitempty"`
	Area     float64 `json:"area" bson:"area"`
	Vertices int     `json:"vertices" bson:"vertices"`
}

// NewDocument returns the document form of s.
func NewDocument(s *dcel.Subdivision) *Document {
	doc := &Document{
		Version:     Version,
		ID:          s.ID().String(),
		Stats:       s.Stats(),
		Subdivision: s.Records(),
	}
	for _, f := range s.Faces() {
		info := FaceInfo{ID: f.ID(), Outer: f.IsOuter(), Vertices: len(f.OuterVertices())}
		if !f.IsOuter() {
			info.Area = f.Area()
		}
		doc.Faces = append(doc.Faces, info)
	}
	return doc
}

// WriteJSON encodes s as an indented JSON document.
func WriteJSON(s *dcel.Subdivision, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewDocument(s)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes s to a JSON file at path.
func ExportJSON(s *dcel.Subdivision, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(s, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
