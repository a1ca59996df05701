package worker

import (
	"context"
	"log/slog"

	audit "verifid/pkg/platform/audit"
)

// Worker consumes audit events from a channel and delivers them to a
// sink. Domain code writes to the inbox without blocking on delivery;
// events are dropped with a log line rather than stalling the capture
// flow when the inbox is full.
type Worker struct {
	sink   audit.Sink
	inbox  chan audit.Event
	logger *slog.Logger
}

func NewWorker(sink audit.Sink, bufferSize int, logger *slog.Logger) *Worker {
	if bufferSize <= 0 {
		bufferSize = 256
	}
	return &Worker{
		sink:   sink,
		inbox:  make(chan audit.Event, bufferSize),
		logger: logger,
	}
}

// Enqueue offers an event to the worker. Best-effort: a full inbox drops
// the event.
func (w *Worker) Enqueue(event audit.Event) {
	select {
	case w.inbox <- event:
	default:
		w.logger.Warn("audit inbox full, dropping event", "action", string(event.Action))
	}
}

// Run delivers events until the context is cancelled. Delivery errors are
// logged and the event is dropped; the audit trail is best-effort by
// design of the capture flow.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.sink.Append(ctx, event); err != nil {
				w.logger.ErrorContext(ctx, "audit delivery failed",
					"action", string(event.Action),
					"error", err,
				)
			}
		}
	}
}
