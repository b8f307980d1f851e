package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jewelrender/jewelrender/internal/models"
)

// ErrNotFound is returned when a user has no published catalog
var ErrNotFound = errors.New("no catalog found for user")

// Store holds one catalog snapshot per user. A put fully replaces the prior
// snapshot for that user; snapshots are never merged. The HTTP handlers only
// depend on this interface, so a persistent backend can be swapped in
// without touching them.
type Store interface {
	Put(ctx context.Context, userID string, snapshot *models.CatalogSnapshot) error
	Get(ctx context.Context, userID string) (*models.CatalogSnapshot, error)
	Exists(ctx context.Context, userID string) (bool, error)
	Count(ctx context.Context) (int, error)
	Close() error
}

// MemoryStore is the default in-process backend. Volatile and unbounded;
// a placeholder for a real database.
type MemoryStore struct {
	snapshots map[string]models.CatalogSnapshot
	mu        sync.RWMutex
}

// NewMemoryStore creates an empty in-memory catalog store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		snapshots: make(map[string]models.CatalogSnapshot),
	}
}

func (s *MemoryStore) Put(ctx context.Context, userID string, snapshot *models.CatalogSnapshot) error {
	snapshot.LastUpdated = time.Now().UTC().Format(time.RFC3339)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[userID] = *snapshot
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, userID string) (*models.CatalogSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot, exists := s.snapshots[userID]
	if !exists {
		return nil, ErrNotFound
	}
	return &snapshot, nil
}

func (s *MemoryStore) Exists(ctx context.Context, userID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.snapshots[userID]
	return exists, nil
}

func (s *MemoryStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.snapshots), nil
}

func (s *MemoryStore) Close() error {
	return nil
}
