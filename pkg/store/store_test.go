package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/matzehuels/planar/pkg/dcel"
	"github.com/matzehuels/planar/pkg/geom"
	"github.com/matzehuels/planar/pkg/scene"
)

func testRecord(t *testing.T, name string) *Record {
	t.Helper()
	slope := 1.0
	sc := &scene.Scene{
		Name:   name,
		Bounds: &geom.Rect{XMin: -2, YMin: -3, XMax: 2, YMax: 3},
		Lines:  []scene.LineSpec{{Slope: &slope}},
	}
	s, err := dcel.NewArrangement(sc.GeomLines(), *sc.Bounds)
	if err != nil {
		t.Fatalf("NewArrangement: %v", err)
	}
	return NewRecord(sc, s)
}

func TestNewRecord(t *testing.T) {
	r := testRecord(t, "diag")
	if r.ID == "" || r.Name != "diag" || r.SceneHash == "" {
		t.Errorf("NewRecord() = %+v", r)
	}
	if r.Stats.Faces != 3 {
		t.Errorf("Stats.Faces = %d, want 3", r.Stats.Faces)
	}
	if r.Document == nil {
		t.Fatal("Document = nil")
	}
	if r.Summary().Document != nil {
		t.Error("Summary() kept the document")
	}
	if r.Document == nil {
		t.Error("Summary() modified the record")
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	a, b := testRecord(t, "a"), testRecord(t, "b")
	b.CreatedAt = a.CreatedAt.Add(time.Second)

	for _, r := range []*Record{a, b} {
		if err := s.Put(ctx, r); err != nil {
			t.Fatalf("Put(%s): %v", r.Name, err)
		}
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}

	got, err := s.Get(ctx, a.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "a" || got.Document == nil {
		t.Errorf("Get() = %+v", got)
	}
	got.Name = "changed"
	if again, _ := s.Get(ctx, a.ID); again.Name != "a" {
		t.Error("Get() returned a shared record")
	}

	list, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].ID != b.ID || list[1].ID != a.ID {
		t.Errorf("List() order wrong: %v, %v", list[0].Name, list[1].Name)
	}
	for _, r := range list {
		if r.Document != nil {
			t.Errorf("List() entry %s carries a document", r.Name)
		}
	}
	if list, _ := s.List(ctx, 1); len(list) != 1 {
		t.Errorf("List(1) returned %d records", len(list))
	}

	if err := s.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, a.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(deleted) error = %v, want %v", err, ErrNotFound)
	}
	if err := s.Delete(ctx, a.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(deleted) error = %v, want %v", err, ErrNotFound)
	}
}

func TestMemoryStoreRebuild(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	r := testRecord(t, "rebuild")
	if err := s.Put(ctx, r); err != nil {
		t.Fatal(err)
	}
	got, err := s.Get(ctx, r.ID)
	if err != nil {
		t.Fatal(err)
	}
	sub, err := got.Document.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if sub.Stats() != r.Stats {
		t.Errorf("rebuilt Stats() = %+v, want %+v", sub.Stats(), r.Stats)
	}
}

func TestNewMongoStoreBadURI(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if _, err := NewMongoStore(ctx, "not-a-mongo-uri", ""); err == nil {
		t.Error("NewMongoStore() succeeded with an invalid URI")
	}
}
