// Package artifact holds captured stills and their submission receipts,
// keyed per user and capture stage. A reload restores the "captured" state
// from this cache without reopening the camera.
package artifact

import (
	"time"

	id "verifid/pkg/domain"
)

// FileMetadata describes the encoded still.
type FileMetadata struct {
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	MimeType  string    `json:"mime_type"`
	Timestamp time.Time `json:"timestamp"`
}

// UploadStatus tracks the submission outcome of an artifact.
type UploadStatus string

const (
	UploadPending         UploadStatus = "pending"
	UploadSuccess         UploadStatus = "success"
	UploadFailedLocalOnly UploadStatus = "failed-local-only"
	UploadFailedRemote    UploadStatus = "failed-remote"
)

// UploadResult is the submission receipt mirrored next to the artifact so
// retries are observable across reloads.
type UploadResult struct {
	Status   UploadStatus `json:"status"`
	ServerID string       `json:"server_id,omitempty"`
}

// CapturedArtifact is a captured still plus its metadata. Superseded, not
// merged, on retake.
type CapturedArtifact struct {
	ID        id.ArtifactID `json:"id"`
	UserID    id.UserID     `json:"user_id"`
	Stage     id.Stage      `json:"stage"`
	ImageData string        `json:"image_data"` // base64-encoded JPEG
	Metadata  FileMetadata  `json:"metadata"`
	Upload    UploadResult  `json:"upload"`
	CreatedAt time.Time     `json:"created_at"`
}
