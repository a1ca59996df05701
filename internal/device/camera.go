// Package device negotiates camera access for the capture flow: permission
// checks, stream acquisition with facing-mode fallback, bounded retry, and
// guaranteed release. The camera itself is abstracted behind the Camera
// interface so platform bindings and test fakes plug in identically.
package device

import (
	"context"
	"time"

	id "verifid/pkg/domain"
)

// Frame is a single decoded video frame. Data holds tightly packed RGBA
// pixels (4 bytes per pixel, row-major).
type Frame struct {
	Seq       uint64
	Timestamp time.Time
	Width     int
	Height    int
	Data      []byte
}

// Stream is a live camera stream.
//
// Implementations must guarantee:
//   - Frames() never closes until Stop()
//   - Stop() is idempotent (safe to call multiple times)
//   - after Stop() returns, no further frames are delivered
type Stream interface {
	// Frames returns the read-only channel of decoded frames. Frames are
	// dropped rather than queued when the consumer lags.
	Frames() <-chan Frame

	// Stop releases all underlying tracks. Idempotent.
	Stop() error

	// Facing reports which camera the stream was opened with.
	Facing() id.CameraFacing
}

// Constraints describe a stream acquisition request. AnyCamera is the
// fallback used when the preferred facing mode cannot be satisfied.
type Constraints struct {
	Facing    id.CameraFacing
	AnyCamera bool
}

// Camera is the device provider boundary. Open must either return a live
// stream or one of the provider sentinel errors declared in errors.go so
// the session manager can classify the failure.
type Camera interface {
	Open(ctx context.Context, c Constraints) (Stream, error)

	// Permission reports the current camera permission state without
	// prompting the user.
	Permission(ctx context.Context) (PermissionState, error)
}

// PermissionWatcher is implemented by providers that can push
// permission-change notifications.
type PermissionWatcher interface {
	WatchPermission(ctx context.Context) (<-chan PermissionState, error)
}

// Surface is the sink a live stream is bound to. Ready is closed once the
// first frame with non-zero dimensions has been decoded; the session is
// not marked active before that.
type Surface interface {
	Attach(Stream)
	Detach()
	Ready() <-chan struct{}
}
