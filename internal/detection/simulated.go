package detection

import (
	"context"
	"sync"
	"time"
)

// Activity reports whether the capture session is live. The simulated
// cycle only advances while it is.
type Activity interface {
	Active() bool
}

// Simulated is a timer-driven Source cycling positioning -> aligning ->
// ready -> positioning at a fixed interval while the session is active.
// It must be stopped on teardown so no tick ever fires against a detached
// stream.
type Simulated struct {
	interval time.Duration
	activity Activity

	mu      sync.Mutex
	state   State
	started time.Time
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewSimulated builds a simulated detector. interval defaults to 1.5s when
// zero, matching the observed cadence of the original flow.
func NewSimulated(activity Activity, interval time.Duration) *Simulated {
	if interval <= 0 {
		interval = 1500 * time.Millisecond
	}
	return &Simulated{
		interval: interval,
		activity: activity,
		state:    StatePositioning,
	}
}

// Start launches the cycle. Idempotent; a running detector is left alone.
func (d *Simulated) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	d.cancel = cancel
	d.done = done
	d.started = time.Now()
	d.state = StatePositioning

	go func() {
		// done is captured locally; Stop nils the struct field before the
		// loop observes cancellation.
		defer close(done)
		ticker := time.NewTicker(d.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if !d.activity.Active() {
					// Hold position while the stream is down; reset so a
					// reacquired stream starts the cycle over.
					d.mu.Lock()
					d.state = StatePositioning
					d.mu.Unlock()
					continue
				}
				d.mu.Lock()
				d.state = d.state.next()
				d.mu.Unlock()
			}
		}
	}()
}

// Stop cancels the cycle and blocks until the loop has exited, so teardown
// is synchronous. Safe to call repeatedly.
func (d *Simulated) Stop() {
	d.mu.Lock()
	cancel, done := d.cancel, d.done
	d.cancel, d.done = nil, nil
	d.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

// State returns the current readiness state.
func (d *Simulated) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.activity != nil && !d.activity.Active() {
		return StatePositioning
	}
	return d.state
}

// PulsePhase returns the continuous animation phase in [0,1), derived from
// elapsed time. The overlay renderer uses it to pulse the guide stroke.
func (d *Simulated) PulsePhase() float64 {
	d.mu.Lock()
	started := d.started
	d.mu.Unlock()
	if started.IsZero() {
		return 0
	}
	const period = 1200 * time.Millisecond
	elapsed := time.Since(started) % period
	return float64(elapsed) / float64(period)
}
