package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/alessiogreco/weekblocks/internal/core/domain"
)

var _ domain.TrackerStore = (*InMemoryTrackerStore)(nil)

// InMemoryTrackerStore keeps the serialized document in process memory.
// Used by tests and by storage-less runs. Round-tripping through JSON keeps
// its value semantics identical to the real stores.
type InMemoryTrackerStore struct {
	mu  sync.RWMutex
	doc []byte
}

func NewInMemoryTrackerStore() *InMemoryTrackerStore {
	return &InMemoryTrackerStore{}
}

func (s *InMemoryTrackerStore) Load(ctx context.Context) (*domain.TrackerState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.doc == nil {
		return nil, domain.ErrStateNotFound
	}

	var state domain.TrackerState
	if err := json.Unmarshal(s.doc, &state); err != nil {
		return nil, domain.ErrStateNotFound
	}
	return &state, nil
}

func (s *InMemoryTrackerStore) Save(ctx context.Context, state *domain.TrackerState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal tracker state: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = data
	return nil
}
