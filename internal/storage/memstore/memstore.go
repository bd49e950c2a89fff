// Package memstore keeps documents in process memory. Used by tests and by
// ephemeral runs that should not touch disk.
package memstore

import (
	"context"
	"sync"

	"github.com/GoSim-25-26J-441/archdesign/internal/storage"
)

type Store struct {
	mu       sync.RWMutex
	docs     map[string][]byte
	failSave error
}

func New() *Store {
	return &Store{docs: map[string][]byte{}}
}

func (s *Store) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.docs[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

func (s *Store) Save(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSave != nil {
		return s.failSave
	}
	s.docs[key] = append([]byte(nil), data...)
	return nil
}

// SetFailSave makes every following Save return err. nil restores normal
// saves.
func (s *Store) SetFailSave(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failSave = err
}

// Delete drops key, if present.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, key)
}

// Len returns the number of stored keys.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

func (s *Store) Close() error { return nil }
