// Package progress tracks where a user is in the onboarding flow. The
// Sequencer is the sole writer of RegistrationProgress; capture screens
// only read it to resume the correct stage.
package progress

import (
	"time"

	id "verifid/pkg/domain"
)

// Well-known phase values written by the sequencer.
const (
	PhaseIdentity = "identity_verification"

	SubPhaseSelect   = "select"
	SubPhaseFront    = "front"
	SubPhaseBack     = "back"
	SubPhaseSelfie   = "selfie"
	SubPhaseComplete = "complete"
)

// RegistrationProgress is the persisted cursor for a user's onboarding.
type RegistrationProgress struct {
	UserID    id.UserID `json:"user_id"`
	Step      int       `json:"step"`
	SubStep   int       `json:"sub_step"`
	Phase     string    `json:"phase"`
	SubPhase  string    `json:"sub_phase"`
	UpdatedAt time.Time `json:"updated_at"`
}
