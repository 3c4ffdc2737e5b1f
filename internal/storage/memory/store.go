// Package memory is an in-process DocumentStore for development and tests.
package memory

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"travelnest/internal/domain"
)

type Store struct {
	mu   sync.RWMutex
	cols map[string]map[string]domain.Document
	// FailWith, when set, is returned by every call.
	FailWith error
}

func New() *Store {
	return &Store{cols: make(map[string]map[string]domain.Document)}
}

func (s *Store) Get(ctx context.Context, collection, id string) (domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	doc, ok := s.cols[collection][id]
	if !ok {
		return nil, fmt.Errorf("%s/%s: %w", collection, id, domain.ErrNotFound)
	}
	return copyDoc(doc), nil
}

func (s *Store) Set(ctx context.Context, collection, id string, doc domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}
	col, ok := s.cols[collection]
	if !ok {
		col = make(map[string]domain.Document)
		s.cols[collection] = col
	}
	col[id] = copyDoc(doc)
	return nil
}

// List returns documents ordered by id.
func (s *Store) List(ctx context.Context, collection string) ([]domain.Snapshot, error) {
	return s.query(collection, func(domain.Document) bool { return true })
}

func (s *Store) QueryEqual(ctx context.Context, collection, field string, value any) ([]domain.Snapshot, error) {
	return s.query(collection, func(d domain.Document) bool {
		v, ok := d[field]
		return ok && reflect.DeepEqual(v, value)
	})
}

func (s *Store) query(collection string, keep func(domain.Document) bool) ([]domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	col := s.cols[collection]
	out := make([]domain.Snapshot, 0, len(col))
	for id, d := range col {
		if keep(d) {
			out = append(out, domain.Snapshot{ID: id, Data: copyDoc(d)})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Shallow; callers never mutate nested slices in place.
func copyDoc(d domain.Document) domain.Document {
	out := make(domain.Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}
