package artifact

import (
	"context"
	"fmt"

	id "verifid/pkg/domain"
	"verifid/pkg/platform/sentinel"
)

// ErrNotFound is returned when no artifact exists for the given user and
// stage. It wraps the shared sentinel so callers can match either.
var ErrNotFound = fmt.Errorf("artifact: %w", sentinel.ErrNotFound)

// Store persists one artifact per (user, stage). Save overwrites; capture
// screens are the only writers of their own stage's entry, so
// last-write-wins is acceptable.
type Store interface {
	Save(ctx context.Context, a *CapturedArtifact) error
	Find(ctx context.Context, userID id.UserID, stage id.Stage) (*CapturedArtifact, error)
	Delete(ctx context.Context, userID id.UserID, stage id.Stage) error
}
