// Package store persists built arrangements so the HTTP API can serve them
// by ID.
//
// Two backends are provided: [MemoryStore], a concurrent in-process map,
// and [MongoStore], a MongoDB collection. Both store whole [Record] values;
// the subdivision inside a record is kept in its flat document form and can
// be rebuilt with [pkgio.Document.Build].
//
// [pkgio.Document.Build]: github.com/matzehuels/planar/pkg/io.Document.Build
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/planar/pkg/dcel"
	pkgio "github.com/matzehuels/planar/pkg/io"
	"github.com/matzehuels/planar/pkg/scene"
)

// ErrNotFound is returned for unknown record IDs.
var ErrNotFound = errors.New("record not found")

// Record is one stored arrangement.
type Record struct {
	ID        string          `json:"id" bson:"_id"`
	Name      string          `json:"name,omitempty" bson:"name,omitempty"`
	SceneHash string          `json:"scene_hash" bson:"scene_hash"`
	Scene     scene.Scene     `json:"scene" bson:"scene"`
	Stats     dcel.Stats      `json:"stats" bson:"stats"`
	Document  *pkgio.Document `json:"document,omitempty" bson:"document,omitempty"`
	CreatedAt time.Time       `json:"created_at" bson:"created_at"`
}

// NewRecord builds a record for a subdivision built from sc. The record gets
// a fresh ID.
func NewRecord(sc *scene.Scene, s *dcel.Subdivision) *Record {
	return &Record{
		ID:        uuid.NewString(),
		Name:      sc.Name,
		SceneHash: sc.Hash(),
		Scene:     *sc,
		Stats:     s.Stats(),
		Document:  pkgio.NewDocument(s),
		CreatedAt: time.Now().UTC(),
	}
}

// Summary returns a copy of r without the document.
func (r *Record) Summary() *Record {
	c := *r
	c.Document = nil
	return &c
}

// Store persists records. Implementations are safe for concurrent use.
type Store interface {
	// Put inserts or replaces a record.
	Put(ctx context.Context, r *Record) error

	// Get returns the record with the given ID or ErrNotFound.
	Get(ctx context.Context, id string) (*Record, error)

	// List returns up to limit record summaries, newest first. A limit of
	// zero or less means no limit.
	List(ctx context.Context, limit int) ([]*Record, error)

	// Delete removes a record. It returns ErrNotFound for unknown IDs.
	Delete(ctx context.Context, id string) error

	Close(ctx context.Context) error
}
