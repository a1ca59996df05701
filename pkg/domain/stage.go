package domain

import dErrors "verifid/pkg/domain-errors"

// Stage is one step of the document capture flow. Each stage is handled by
// a structurally similar capture screen and keyed separately in the
// artifact cache.
type Stage string

const (
	StageFront  Stage = "front"
	StageBack   Stage = "back"
	StageSelfie Stage = "selfie"
)

// validStages is the single source of truth for supported capture stages.
var validStages = map[Stage]bool{
	StageFront:  true,
	StageBack:   true,
	StageSelfie: true,
}

// stageOrder drives the navigation contract: front -> back -> selfie.
var stageOrder = []Stage{StageFront, StageBack, StageSelfie}

// ParseStage constructs a Stage from external input.
//
// Errors: returns CodeInvalidInput when the value is empty or unsupported.
func ParseStage(s string) (Stage, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "stage cannot be empty")
	}
	st := Stage(s)
	if !st.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid stage: "+s)
	}
	return st, nil
}

// IsValid checks if the stage is one of the supported enum values.
func (s Stage) IsValid() bool {
	return validStages[s]
}

// String returns the string representation of the stage.
func (s Stage) String() string {
	return string(s)
}

// Next returns the stage that follows s in the flow. The boolean is false
// for the final stage (selfie), which hands off to verification-complete.
func (s Stage) Next() (Stage, bool) {
	for i, st := range stageOrder {
		if st == s && i+1 < len(stageOrder) {
			return stageOrder[i+1], true
		}
	}
	return "", false
}

// Ordinal returns the 1-based position of the stage in the flow, used by
// the sequencer when advancing registration progress.
func (s Stage) Ordinal() int {
	for i, st := range stageOrder {
		if st == s {
			return i + 1
		}
	}
	return 0
}

// DocumentType is the descriptive type reported to the upload endpoint.
func (s Stage) DocumentType() string {
	switch s {
	case StageFront:
		return "id_front"
	case StageBack:
		return "id_back"
	case StageSelfie:
		return "selfie"
	default:
		return "unknown"
	}
}

// CameraFacing selects which camera the stage prefers: the user-facing
// camera for the selfie, the environment-facing camera for documents.
type CameraFacing string

const (
	FacingUser        CameraFacing = "user"
	FacingEnvironment CameraFacing = "environment"
)

// PreferredFacing returns the camera facing a stage should request first.
// The device layer still falls back to any camera when unavailable.
func (s Stage) PreferredFacing() CameraFacing {
	if s == StageSelfie {
		return FacingUser
	}
	return FacingEnvironment
}

// ParseCameraFacing constructs a CameraFacing from external input.
func ParseCameraFacing(s string) (CameraFacing, error) {
	switch CameraFacing(s) {
	case FacingUser, FacingEnvironment:
		return CameraFacing(s), nil
	case "":
		return "", dErrors.New(dErrors.CodeInvalidInput, "camera facing cannot be empty")
	default:
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid camera facing: "+s)
	}
}
