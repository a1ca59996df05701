package device_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"verifid/internal/device"
	"verifid/internal/device/sim"
)

// staticCamera cannot watch permission changes.
type staticCamera struct{}

func (staticCamera) Open(context.Context, device.Constraints) (device.Stream, error) {
	return nil, device.ErrNotFound
}

func (staticCamera) Permission(context.Context) (device.PermissionState, error) {
	return device.PermissionGranted, nil
}

func TestPermissionObserverBroadcasts(t *testing.T) {
	cam := sim.New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	o := device.NewPermissionObserver(ctx, cam)
	assert.Equal(t, device.PermissionUnknown, o.Last())

	sub := o.Subscribe()
	cam.SetPermission(device.PermissionDenied)

	select {
	case state := <-sub:
		assert.Equal(t, device.PermissionDenied, state)
	case <-time.After(time.Second):
		t.Fatal("subscriber never notified")
	}
	require.Eventually(t, func() bool {
		return o.Last() == device.PermissionDenied
	}, time.Second, time.Millisecond)
}

func TestPermissionObserverInertWithoutWatcher(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	o := device.NewPermissionObserver(ctx, staticCamera{})
	assert.Equal(t, device.PermissionUnknown, o.Last())

	// Subscriptions stay silent; there is nothing to observe.
	select {
	case state := <-o.Subscribe():
		t.Fatalf("unexpected notification: %s", state)
	case <-time.After(20 * time.Millisecond):
	}
}
