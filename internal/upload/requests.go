package upload

import (
	"time"

	dErrors "verifid/pkg/domain-errors"
)

// DocumentUpload is the typed schema of the primary intake endpoint. All
// fields except SubmissionDate are required; Validate catches malformed
// submissions before any bytes hit the wire.
type DocumentUpload struct {
	DocumentName   string
	Status         string
	UploadedBy     string
	DocumentType   string
	SubmissionDate time.Time

	FileName string
	MimeType string
	Data     []byte
}

// Validate enforces the required fields of the intake schema.
func (d DocumentUpload) Validate() error {
	switch {
	case d.DocumentName == "":
		return dErrors.New(dErrors.CodeInvalidInput, "document_name is required")
	case d.UploadedBy == "":
		return dErrors.New(dErrors.CodeInvalidInput, "uploaded_by is required")
	case d.DocumentType == "":
		return dErrors.New(dErrors.CodeInvalidInput, "document_type is required")
	case len(d.Data) == 0:
		return dErrors.New(dErrors.CodeInvalidInput, "document payload is empty")
	}
	return nil
}

// Receipt is the acceptance object returned by the intake endpoint.
type Receipt struct {
	ServerID string `json:"id"`
	Status   string `json:"status"`
}

// MetadataRecord is the schema of the secondary, best-effort metadata
// endpoint. It travels separately from the raw asset.
type MetadataRecord struct {
	DocumentName string    `json:"document_name"`
	DocumentType string    `json:"document_type"`
	UploadedBy   string    `json:"uploaded_by"`
	SizeBytes    int64     `json:"size_bytes"`
	MimeType     string    `json:"mime_type"`
	SubmittedAt  time.Time `json:"submitted_at"`
}
