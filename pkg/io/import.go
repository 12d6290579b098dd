package io

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/planar/pkg/dcel"
)

// ErrVersion is returned for documents written by an unknown format version.
var ErrVersion = errors.New("unsupported document version")

// Decode reads a document from r without rebuilding the subdivision.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if doc.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, doc.Version)
	}
	return &doc, nil
}

// Build rebuilds and validates the subdivision described by doc.
func (doc *Document) Build(opts ...dcel.Option) (*dcel.Subdivision, error) {
	s, err := dcel.FromRecords(doc.Subdivision, opts...)
	if err != nil {
		return nil, fmt.Errorf("rebuild: %w", err)
	}
	return s, nil
}

// ReadJSON decodes a document from r and rebuilds the subdivision. The result
// has passed [dcel.Subdivision.Validate]. ReadJSON does not close r.
func ReadJSON(r io.Reader, opts ...dcel.Option) (*dcel.Subdivision, error) {
	doc, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return doc.Build(opts...)
}

// ImportJSON reads the JSON file at path with [ReadJSON].
func ImportJSON(path string, opts ...dcel.Option) (*dcel.Subdivision, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f, opts...)
}
