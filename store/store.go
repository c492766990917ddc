package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Store persists graph snapshots.
type Store interface {
	// Save stores a snapshot, replacing any snapshot with the same id.
	Save(ctx context.Context, snapshot *GraphSnapshot) error

	// Get returns the snapshot with the given id.
	Get(ctx context.Context, id string) (*GraphSnapshot, error)

	// List returns all snapshot ids, newest first.
	List(ctx context.Context) ([]string, error)

	// Delete removes the snapshot with the given id.
	Delete(ctx context.Context, id string) error
}

// MemoryStore is the in-process Store. Access is mutex-guarded, so one
// store can serve concurrent analysis runs.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string]*GraphSnapshot
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		snapshots: make(map[string]*GraphSnapshot),
	}
}

func (s *MemoryStore) Save(_ context.Context, snapshot *GraphSnapshot) error {
	if snapshot == nil || snapshot.ID == "" {
		return fmt.Errorf("snapshot needs an id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[snapshot.ID] = snapshot
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*GraphSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot, ok := s.snapshots[id]
	if !ok {
		return nil, fmt.Errorf("snapshot %q not found", id)
	}
	return snapshot, nil
}

func (s *MemoryStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.snapshots))
	for id := range s.snapshots {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := s.snapshots[ids[i]], s.snapshots[ids[j]]
		if a.CreatedAt.Equal(b.CreatedAt) {
			return ids[i] < ids[j]
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
	return ids, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.snapshots[id]; !ok {
		return fmt.Errorf("snapshot %q not found", id)
	}
	delete(s.snapshots, id)
	return nil
}
