package device

import (
	"context"
	"errors"
	"sync"
)

// PermissionState is the camera permission state as reported by the
// provider.
type PermissionState string

const (
	PermissionGranted PermissionState = "granted"
	PermissionDenied  PermissionState = "denied"
	PermissionPrompt  PermissionState = "prompt"
	PermissionUnknown PermissionState = "unknown"
)

// CheckPermission queries the provider for the current permission state.
// Providers that cannot answer report unknown rather than failing.
func CheckPermission(ctx context.Context, camera Camera) PermissionState {
	state, err := camera.Permission(ctx)
	if err != nil {
		return PermissionUnknown
	}
	return state
}

// RequestPermission performs a minimal open-then-stop acquisition solely to
// surface the provider's permission prompt. Returns true when access was
// granted.
func RequestPermission(ctx context.Context, camera Camera) (bool, error) {
	stream, err := camera.Open(ctx, Constraints{AnyCamera: true})
	if err != nil {
		if errors.Is(err, ErrNotAllowed) {
			return false, Classify(err)
		}
		return false, Classify(err)
	}
	// Immediately discard; the prompt was the point.
	_ = stream.Stop()
	return true, nil
}

// PermissionObserver fans permission-change notifications out to
// subscribers when the provider supports watching.
type PermissionObserver struct {
	mu   sync.Mutex
	subs []chan PermissionState
	last PermissionState
}

// NewPermissionObserver subscribes to the provider's permission changes
// when available. It is inert (Last returns unknown) otherwise.
func NewPermissionObserver(ctx context.Context, camera Camera) *PermissionObserver {
	o := &PermissionObserver{last: PermissionUnknown}
	watcher, ok := camera.(PermissionWatcher)
	if !ok {
		return o
	}
	updates, err := watcher.WatchPermission(ctx)
	if err != nil {
		return o
	}
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case state, ok := <-updates:
				if !ok {
					return
				}
				o.broadcast(state)
			}
		}
	}()
	return o
}

// Subscribe returns a channel receiving subsequent permission states.
func (o *PermissionObserver) Subscribe() <-chan PermissionState {
	o.mu.Lock()
	defer o.mu.Unlock()
	ch := make(chan PermissionState, 1)
	o.subs = append(o.subs, ch)
	return ch
}

// Last returns the most recently observed state.
func (o *PermissionObserver) Last() PermissionState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.last
}

func (o *PermissionObserver) broadcast(state PermissionState) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.last = state
	for _, ch := range o.subs {
		select {
		case ch <- state:
		default:
			// Drop rather than block a slow subscriber.
		}
	}
}
