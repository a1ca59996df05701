package artifact

import (
	"context"
	"sync"

	id "verifid/pkg/domain"
)

type stageKey struct {
	userID id.UserID
	stage  id.Stage
}

// MemoryStore is an in-memory artifact store for tests and single-process
// deployments.
type MemoryStore struct {
	mu        sync.RWMutex
	artifacts map[stageKey]CapturedArtifact
}

// NewMemoryStore creates an empty in-memory artifact store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{artifacts: make(map[stageKey]CapturedArtifact)}
}

// Save stores a copy of the artifact, replacing any previous entry for the
// same user and stage.
func (s *MemoryStore) Save(_ context.Context, a *CapturedArtifact) error {
	if a == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.artifacts[stageKey{a.UserID, a.Stage}] = *a
	return nil
}

// Find retrieves the artifact for a user and stage, or ErrNotFound.
func (s *MemoryStore) Find(_ context.Context, userID id.UserID, stage id.Stage) (*CapturedArtifact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if a, ok := s.artifacts[stageKey{userID, stage}]; ok {
		return &a, nil
	}
	return nil, ErrNotFound
}

// Delete removes the stage's artifact. Deleting a missing entry is a
// no-op.
func (s *MemoryStore) Delete(_ context.Context, userID id.UserID, stage id.Stage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.artifacts, stageKey{userID, stage})
	return nil
}
