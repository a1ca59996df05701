package progress

import (
	"context"
	"fmt"

	id "verifid/pkg/domain"
	"verifid/pkg/platform/sentinel"
)

// ErrNotFound is returned when a user has no recorded progress yet. It
// wraps the shared sentinel so callers can match either.
var ErrNotFound = fmt.Errorf("registration progress: %w", sentinel.ErrNotFound)

// Store persists one RegistrationProgress record per user under a
// well-known key. Save overwrites; the sequencer is the only caller.
type Store interface {
	Save(ctx context.Context, p *RegistrationProgress) error
	Find(ctx context.Context, userID id.UserID) (*RegistrationProgress, error)
}
