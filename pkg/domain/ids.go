// Package domain holds the shared value types of the verification flow:
// typed identifiers and the capture-stage vocabulary. Identifiers are
// distinct UUID wrappers so a session ID can never be passed where an
// artifact ID is expected.
package domain

import (
	"github.com/google/uuid"

	dErrors "verifid/pkg/domain-errors"
)

// UserID identifies the person going through onboarding.
type UserID uuid.UUID

// SessionID identifies one camera capture session.
type SessionID uuid.UUID

// ArtifactID identifies a captured still image.
type ArtifactID uuid.UUID

func (id UserID) String() string     { return uuid.UUID(id).String() }
func (id SessionID) String() string  { return uuid.UUID(id).String() }
func (id ArtifactID) String() string { return uuid.UUID(id).String() }

func (id UserID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id SessionID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id ArtifactID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// NewSessionID returns a fresh random session identifier.
func NewSessionID() SessionID { return SessionID(uuid.New()) }

// NewArtifactID returns a fresh random artifact identifier.
func NewArtifactID() ArtifactID { return ArtifactID(uuid.New()) }

func parseUUID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id cannot be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid id format")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id cannot be nil")
	}
	return u, nil
}

// ParseUserID constructs a UserID from external input. Call at trust
// boundaries; direct casting bypasses validation.
func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID(s)
	if err != nil {
		return UserID(uuid.Nil), err
	}
	return UserID(u), nil
}

// ParseSessionID constructs a SessionID from external input.
func ParseSessionID(s string) (SessionID, error) {
	u, err := parseUUID(s)
	if err != nil {
		return SessionID(uuid.Nil), err
	}
	return SessionID(u), nil
}

// ParseArtifactID constructs an ArtifactID from external input.
func ParseArtifactID(s string) (ArtifactID, error) {
	u, err := parseUUID(s)
	if err != nil {
		return ArtifactID(uuid.Nil), err
	}
	return ArtifactID(u), nil
}
