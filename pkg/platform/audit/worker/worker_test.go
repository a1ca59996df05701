package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "verifid/pkg/domain"
	audit "verifid/pkg/platform/audit"
	auditmemory "verifid/pkg/platform/audit/store/memory"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func event(userID id.UserID, action audit.Action) audit.Event {
	return audit.Event{
		Timestamp: time.Now().UTC(),
		UserID:    userID,
		Action:    action,
		Stage:     "front",
	}
}

func TestWorkerDeliversToSink(t *testing.T) {
	store := auditmemory.New()
	w := NewWorker(store, 8, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	userID := id.UserID(uuid.New())
	w.Enqueue(event(userID, audit.ActionSessionStarted))
	w.Enqueue(event(userID, audit.ActionFrameCaptured))

	require.Eventually(t, func() bool {
		events, err := store.ListByUser(context.Background(), userID)
		return err == nil && len(events) == 2
	}, time.Second, 5*time.Millisecond)

	events, err := store.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, audit.ActionSessionStarted, events[0].Action)
	assert.Equal(t, audit.ActionFrameCaptured, events[1].Action)
}

func TestWorkerDropsWhenInboxFull(t *testing.T) {
	// No Run loop, so the inbox never drains.
	w := NewWorker(auditmemory.New(), 1, discardLogger())

	userID := id.UserID(uuid.New())
	w.Enqueue(event(userID, audit.ActionSessionStarted))
	w.Enqueue(event(userID, audit.ActionSessionFailed)) // must not block
}

type failOnceSink struct {
	mu     sync.Mutex
	failed bool
	after  []audit.Event
}

func (s *failOnceSink) Append(_ context.Context, e audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.failed {
		s.failed = true
		return errors.New("broker unavailable")
	}
	s.after = append(s.after, e)
	return nil
}

func (s *failOnceSink) delivered() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.after)
}

func TestWorkerSurvivesDeliveryFailure(t *testing.T) {
	sink := &failOnceSink{}
	w := NewWorker(sink, 8, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	userID := id.UserID(uuid.New())
	w.Enqueue(event(userID, audit.ActionDocumentSubmitted)) // dropped by the sink
	w.Enqueue(event(userID, audit.ActionStageConfirmed))

	require.Eventually(t, func() bool {
		return sink.delivered() == 1
	}, time.Second, 5*time.Millisecond, "worker must keep draining after a sink error")
}

func TestWorkerStopsOnContextCancel(t *testing.T) {
	w := NewWorker(auditmemory.New(), 8, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("worker did not stop on cancel")
	}
}

func TestWorkerDefaultBufferSize(t *testing.T) {
	w := NewWorker(auditmemory.New(), 0, discardLogger())
	assert.Equal(t, 256, cap(w.inbox))
}
