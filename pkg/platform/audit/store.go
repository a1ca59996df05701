package audit

import (
	"context"

	id "verifid/pkg/domain"
)

// Sink accepts audit events for delivery. Implementations range from the
// in-memory store to the Kafka publisher.
type Sink interface {
	Append(ctx context.Context, event Event) error
}

// Store is a queryable sink, used where the trail must be listed back
// (admin views, tests).
type Store interface {
	Sink
	ListByUser(ctx context.Context, userID id.UserID) ([]Event, error)
}
