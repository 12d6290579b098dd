package store

import (
	"cmp"
	"context"
	"slices"

	"github.com/alphadose/haxmap"
)

// MemoryStore keeps records in a lock-free hash map. Records are lost when
// the process exits.
type MemoryStore struct {
	m *haxmap.Map[string, *Record]
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: haxmap.New[string, *Record]()}
}

func (s *MemoryStore) Put(_ context.Context, r *Record) error {
	c := *r
	s.m.Set(r.ID, &c)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Record, error) {
	r, ok := s.m.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	c := *r
	return &c, nil
}

func (s *MemoryStore) List(_ context.Context, limit int) ([]*Record, error) {
	out := make([]*Record, 0, s.m.Len())
	s.m.ForEach(func(_ string, r *Record) bool {
		out = append(out, r.Summary())
		return true
	})
	slices.SortFunc(out, func(a, b *Record) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	if _, ok := s.m.Get(id); !ok {
		return ErrNotFound
	}
	s.m.Del(id)
	return nil
}

// Len returns the number of stored records.
func (s *MemoryStore) Len() int { return int(s.m.Len()) }

func (s *MemoryStore) Close(context.Context) error { return nil }

var _ Store = (*MemoryStore)(nil)
