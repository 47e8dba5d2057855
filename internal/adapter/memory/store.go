// Package memory is an in-process settings store for local runs and tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/writeassist-backend/internal/domain"
)

// Store keeps user meta in a map. It is safe for concurrent use; writes are last-write-wins.
type Store struct {
	mu   sync.RWMutex
	data map[uuid.UUID]map[string]string
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{data: make(map[uuid.UUID]map[string]string)}
}

func (s *Store) Get(_ context.Context, userID uuid.UUID, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[userID][key]
	if !ok {
		return "", fmt.Errorf("user_meta %s %s: %w", userID, key, domain.ErrNotFound)
	}
	return v, nil
}

func (s *Store) GetMany(_ context.Context, userID uuid.UUID, keys ...string) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := s.data[userID][k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

func (s *Store) Set(_ context.Context, userID uuid.UUID, key, value string) error {
	if key == "" {
		return fmt.Errorf("user_meta %s: empty key: %w", userID, domain.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.data[userID]
	if !ok {
		m = make(map[string]string)
		s.data[userID] = m
	}
	m[key] = value
	return nil
}

func (s *Store) Delete(_ context.Context, userID uuid.UUID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data[userID], key)
	if len(s.data[userID]) == 0 {
		delete(s.data, userID)
	}
	return nil
}

// TxManager runs callbacks directly. The memory store has no rollback.
type TxManager struct{}

func (TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
