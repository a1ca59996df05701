// Package workflow drives one capture stage end to end: acquire the
// camera, gate the shutter on detection readiness, persist the still, and
// submit it to the intake service. Each user owns at most one live stage
// at a time.
package workflow

import (
	"verifid/internal/artifact"
	"verifid/internal/detection"
	"verifid/internal/device"
	id "verifid/pkg/domain"
)

// State is the position of a stage in the capture-and-submit machine.
type State string

const (
	StateCameraInactive   State = "camera-inactive"
	StateAcquiring        State = "acquiring"
	StateLive             State = "live"
	StateCaptured         State = "captured"
	StateSubmitting       State = "submitting"
	StateConfirmed        State = "confirmed"
	StateSavedLocally     State = "saved-locally"
	StateSubmissionFailed State = "submission-failed"
)

// Terminal reports whether the stage has reached a resting outcome. A
// saved-locally or submission-failed stage is terminal for the current
// attempt but still accepts a new Submit.
func (s State) Terminal() bool {
	switch s {
	case StateConfirmed, StateSavedLocally, StateSubmissionFailed:
		return true
	}
	return false
}

// StageStatus is a point-in-time view of a stage, rich enough to rebuild
// a capture screen after a reload: the live session (if any), the
// detection readiness, and the stored artifact with its upload receipt.
type StageStatus struct {
	Stage      id.Stage                   `json:"stage"`
	State      State                      `json:"state"`
	Detection  detection.State            `json:"detection"`
	Permission device.PermissionState     `json:"permission"`
	Session    *device.Snapshot           `json:"session,omitempty"`
	Artifact   *artifact.CapturedArtifact `json:"artifact,omitempty"`
}
