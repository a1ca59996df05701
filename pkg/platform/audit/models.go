// Package audit captures the verification flow's trail: session
// lifecycle, captures, and submission outcomes. Events are
// transport-agnostic so stores and sinks can fan out.
package audit

import (
	"time"

	id "verifid/pkg/domain"
)

// Action names emitted by the capture pipeline.
type Action string

const (
	ActionSessionStarted    Action = "session_started"
	ActionSessionFailed     Action = "session_failed"
	ActionFrameCaptured     Action = "frame_captured"
	ActionArtifactDiscarded Action = "artifact_discarded"
	ActionDocumentSubmitted Action = "document_submitted"
	ActionDocumentSaved     Action = "document_saved_locally"
	ActionSubmissionFailed  Action = "submission_failed"
	ActionStageConfirmed    Action = "stage_confirmed"
)

// Event is emitted from domain logic to capture key actions.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	UserID    id.UserID `json:"user_id"`
	Action    Action    `json:"action"`
	Stage     string    `json:"stage,omitempty"`
	Device    string    `json:"device,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
}
