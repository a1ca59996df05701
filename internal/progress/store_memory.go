package progress

import (
	"context"
	"sync"

	id "verifid/pkg/domain"
)

// MemoryStore is an in-memory progress store for tests and single-process
// deployments.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[id.UserID]RegistrationProgress
}

// NewMemoryStore creates an empty in-memory progress store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[id.UserID]RegistrationProgress)}
}

func (s *MemoryStore) Save(_ context.Context, p *RegistrationProgress) error {
	if p == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[p.UserID] = *p
	return nil
}

func (s *MemoryStore) Find(_ context.Context, userID id.UserID) (*RegistrationProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.records[userID]; ok {
		return &p, nil
	}
	return nil, ErrNotFound
}
