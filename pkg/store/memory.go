package store

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/matzehuels/radialtree/pkg/graph"
)

// MemoryStore keeps layouts in a map. Layouts are lost on restart.
type MemoryStore struct {
	mu      sync.RWMutex
	layouts map[string]graph.Layout
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{layouts: make(map[string]graph.Layout)}
}

func (s *MemoryStore) Put(ctx context.Context, l graph.Layout) (string, error) {
	l = prepare(l)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.layouts[l.ID] = l
	return l.ID, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (graph.Layout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.layouts[id]
	if !ok {
		return graph.Layout{}, ErrNotFound
	}
	return l, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.layouts, id)
	return nil
}

func (s *MemoryStore) List(ctx context.Context, limit int) ([]Summary, error) {
	s.mu.RLock()
	out := make([]Summary, 0, len(s.layouts))
	for _, l := range s.layouts {
		out = append(out, Summarize(l))
	}
	s.mu.RUnlock()
	return newestFirst(out, limit), nil
}

func (s *MemoryStore) Close(ctx context.Context) error { return nil }

// newestFirst sorts summaries by creation time descending, ties by ID, and
// truncates to limit.
func newestFirst(out []Summary, limit int) []Summary {
	slices.SortFunc(out, func(a, b Summary) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

var _ Store = (*MemoryStore)(nil)
