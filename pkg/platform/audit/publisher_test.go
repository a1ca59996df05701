package audit_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "verifid/pkg/domain"
	audit "verifid/pkg/platform/audit"
	auditmemory "verifid/pkg/platform/audit/store/memory"
)

func TestPublisherEmitAndList(t *testing.T) {
	ctx := context.Background()
	p := audit.NewPublisher(auditmemory.New())
	userID := id.UserID(uuid.New())

	stamp := time.Date(2025, 6, 12, 10, 30, 0, 0, time.UTC)
	require.NoError(t, p.Emit(ctx, audit.Event{
		Timestamp: stamp,
		UserID:    userID,
		Action:    audit.ActionSessionStarted,
		Stage:     "front",
	}))
	require.NoError(t, p.Emit(ctx, audit.Event{
		UserID: userID,
		Action: audit.ActionFrameCaptured,
	}))

	events, err := p.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, stamp, events[0].Timestamp)
	assert.Equal(t, audit.ActionSessionStarted, events[0].Action)
	assert.False(t, events[1].Timestamp.IsZero(), "emit stamps events that arrive without a timestamp")
}

func TestPublisherListIsolatesUsers(t *testing.T) {
	ctx := context.Background()
	p := audit.NewPublisher(auditmemory.New())

	alice := id.UserID(uuid.New())
	bob := id.UserID(uuid.New())
	require.NoError(t, p.Emit(ctx, audit.Event{UserID: alice, Action: audit.ActionStageConfirmed}))
	require.NoError(t, p.Emit(ctx, audit.Event{UserID: bob, Action: audit.ActionSubmissionFailed}))

	events, err := p.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, audit.ActionStageConfirmed, events[0].Action)
}
