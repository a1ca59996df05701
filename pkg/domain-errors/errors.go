// Package dErrors defines the domain error vocabulary shared across the
// capture pipeline. Handlers translate codes to HTTP statuses at the
// transport boundary; services return these instead of raw errors so the
// failure taxonomy stays explicit.
package dErrors

import (
	"errors"
	"net/http"
)

// Code identifies a class of failure in the verification flow.
type Code string

const (
	// Environment and permission failures. Terminal for the current
	// attempt; only explicit user action may retry them.
	CodeUnsupportedEnvironment Code = "unsupported_environment"
	CodePermissionDenied       Code = "permission_denied"

	// Device acquisition failures.
	CodeNoCameraFound      Code = "no_camera_found"
	CodeCameraUnsupported  Code = "camera_unsupported"
	CodeCameraBusy         Code = "camera_busy"
	CodeStreamSetupTimeout Code = "stream_setup_timeout"
	CodeStreamNotReady     Code = "stream_not_ready"

	// Workflow failures.
	CodeNotReady           Code = "not_ready"
	CodeNetworkUnavailable Code = "network_unavailable"
	CodeUploadRejected     Code = "upload_rejected"

	// Generic request/infra failures.
	CodeBadRequest   Code = "bad_request"
	CodeInvalidInput Code = "invalid_input"
	CodeNotFound     Code = "not_found"
	CodeUnauthorized Code = "unauthorized"
	CodeConflict     Code = "conflict"
	CodeInternal     Code = "internal_error"
	CodeUnknown      Code = "unknown"
)

// DomainError carries a code, a human-readable message, and an optional
// remediation hint surfaced to the user (e.g. how to re-enable camera
// access after a permission denial).
type DomainError struct {
	Code    Code
	Message string
	Hint    string
	wrapped error
}

func (e *DomainError) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return string(e.Code) + ": " + e.Message
}

func (e *DomainError) Unwrap() error { return e.wrapped }

// New constructs a DomainError with the given code and message.
func New(code Code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// Wrap attaches an underlying cause while keeping the domain code.
func Wrap(code Code, message string, cause error) *DomainError {
	return &DomainError{Code: code, Message: message, wrapped: cause}
}

// WithHint returns a copy carrying a user-facing remediation hint.
func (e *DomainError) WithHint(hint string) *DomainError {
	clone := *e
	clone.Hint = hint
	return &clone
}

// CodeOf extracts the domain code from err, or CodeUnknown when err is not
// a DomainError.
func CodeOf(err error) Code {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeUnknown
}

// HintOf extracts the remediation hint, if any.
func HintOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Hint
	}
	return ""
}

// HasCode reports whether err carries the given domain code.
func HasCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// Recoverable reports whether the failure permits bounded automatic retry.
// Permission and environment failures never do.
func Recoverable(code Code) bool {
	switch code {
	case CodeNoCameraFound, CodeCameraBusy, CodeStreamSetupTimeout:
		return true
	default:
		return false
	}
}

// ToHTTPStatus maps a domain code onto the HTTP status handlers should emit.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest, CodeInvalidInput:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodePermissionDenied:
		return http.StatusForbidden
	case CodeNotFound, CodeNoCameraFound:
		return http.StatusNotFound
	case CodeConflict, CodeNotReady, CodeCameraBusy, CodeStreamNotReady:
		return http.StatusConflict
	case CodeStreamSetupTimeout:
		return http.StatusGatewayTimeout
	case CodeNetworkUnavailable:
		return http.StatusServiceUnavailable
	case CodeUnsupportedEnvironment, CodeCameraUnsupported:
		return http.StatusUnprocessableEntity
	case CodeUploadRejected:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
