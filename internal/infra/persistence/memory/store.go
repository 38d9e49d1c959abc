// Package memory provides an in-process document store used for tests and
// ephemeral runs.
package memory

import (
	"context"
	"fmt"
	"sync"

	"shoplist/pkg/domain"
)

var _ domain.DocumentStore = (*Store)(nil)

// Store keeps documents in a map. Load and Save copy their payloads so callers
// can not mutate stored state.
type Store struct {
	mu    sync.RWMutex
	docs  map[string][]byte
	saves int
}

// New returns an empty in-memory store.
func New() *Store { return &Store{docs: make(map[string][]byte)} }

// Driver returns the backend identifier.
func (s *Store) Driver() domain.Driver { return domain.DriverMemory }

// Load returns a copy of the document at key.
func (s *Store) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	doc, ok := s.docs[key]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("memory document %s: %w", key, domain.ErrDocumentNotFound)
	}
	return cloneBytes(doc), nil
}

// Save replaces the document at key.
func (s *Store) Save(_ context.Context, key string, doc []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[key] = cloneBytes(doc)
	s.saves++
	return nil
}

// Saves reports how many saves have been applied.
func (s *Store) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

func cloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
