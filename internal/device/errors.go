package device

import (
	"context"
	"errors"

	dErrors "verifid/pkg/domain-errors"
)

// Provider sentinel errors. Camera implementations return these from Open
// so classification stays in one place.
var (
	ErrNotFound        = errors.New("no camera device found")
	ErrNotAllowed      = errors.New("camera permission denied")
	ErrNotReadable     = errors.New("camera is in use by another context")
	ErrOverconstrained = errors.New("no camera satisfies the constraints")
	ErrAborted         = errors.New("camera acquisition aborted")
)

// Classify maps a provider error onto the domain failure taxonomy with a
// user-facing remediation hint where one exists.
func Classify(err error) *dErrors.DomainError {
	switch {
	case errors.Is(err, ErrNotAllowed):
		return dErrors.Wrap(dErrors.CodePermissionDenied, "camera permission denied", err).
			WithHint("Allow camera access in your browser settings and try again")
	case errors.Is(err, ErrNotFound):
		return dErrors.Wrap(dErrors.CodeNoCameraFound, "no camera device found", err).
			WithHint("Connect a camera or use the manual file upload instead")
	case errors.Is(err, ErrNotReadable):
		return dErrors.Wrap(dErrors.CodeCameraBusy, "camera is in use by another application", err).
			WithHint("Close other applications using the camera and retry")
	case errors.Is(err, ErrOverconstrained):
		return dErrors.Wrap(dErrors.CodeCameraUnsupported, "camera does not support the requested mode", err)
	case errors.Is(err, context.DeadlineExceeded):
		return dErrors.Wrap(dErrors.CodeStreamSetupTimeout, "camera stream setup timed out", err).
			WithHint("Check your camera connection and retry")
	default:
		return dErrors.Wrap(dErrors.CodeUnknown, "camera acquisition failed", err)
	}
}
