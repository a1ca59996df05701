// Package httptransport is the thin HTTP layer over the capture workflow.
// Handlers decode, delegate, and translate domain errors; no business
// logic lives here.
package httptransport

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"verifid/internal/artifact"
	"verifid/internal/detection"
	"verifid/internal/platform/middleware"
	"verifid/internal/progress"
	"verifid/internal/workflow"
	id "verifid/pkg/domain"
	dErrors "verifid/pkg/domain-errors"
	"verifid/pkg/platform/audit"
	"verifid/pkg/platform/httputil"
	"verifid/pkg/requestcontext"
)

// maxFileBytes bounds the manual file fallback upload.
const maxFileBytes = 10 << 20

// CaptureService is the slice of the workflow the capture routes need.
type CaptureService interface {
	StartStage(ctx context.Context, userID id.UserID, stage id.Stage) (*workflow.StageStatus, error)
	RetryStart(ctx context.Context, userID id.UserID, stage id.Stage) (*workflow.StageStatus, error)
	StopStage(ctx context.Context, userID id.UserID)
	Capture(ctx context.Context, userID id.UserID, stage id.Stage) (*artifact.CapturedArtifact, error)
	ImportFile(ctx context.Context, userID id.UserID, stage id.Stage, name, mimeType string, data []byte) (*artifact.CapturedArtifact, error)
	Retake(ctx context.Context, userID id.UserID, stage id.Stage) (*workflow.StageStatus, error)
	Submit(ctx context.Context, userID id.UserID, stage id.Stage) (*workflow.StageStatus, error)
	Status(ctx context.Context, userID id.UserID, stage id.Stage) (*workflow.StageStatus, error)
	Overlay(ctx context.Context, userID id.UserID, stage id.Stage) (*detection.Overlay, error)
	Resume(ctx context.Context, userID id.UserID) (id.Stage, bool, error)
	Progress(ctx context.Context, userID id.UserID) (*progress.RegistrationProgress, error)
}

// CaptureHandler serves the capture and verification-progress routes.
type CaptureHandler struct {
	service      CaptureService
	logger       *slog.Logger
	jwtValidator middleware.JWTValidator
	trail        *audit.Publisher
}

// CaptureOption configures optional handler collaborators.
type CaptureOption func(*CaptureHandler)

// WithActivityTrail exposes the user's audit trail at
// GET /verification/activity. The route is absent when the configured
// audit sink cannot be listed back.
func WithActivityTrail(trail *audit.Publisher) CaptureOption {
	return func(h *CaptureHandler) { h.trail = trail }
}

// NewCaptureHandler creates the capture route handler.
func NewCaptureHandler(service CaptureService, logger *slog.Logger, jwtValidator middleware.JWTValidator, opts ...CaptureOption) *CaptureHandler {
	h := &CaptureHandler{
		service:      service,
		logger:       logger,
		jwtValidator: jwtValidator,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the capture routes. Everything here requires an
// authenticated user.
func (h *CaptureHandler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.jwtValidator, h.logger))

		r.Post("/capture/{stage}/session", h.handleStartSession)
		r.Post("/capture/{stage}/session/retry", h.handleRetrySession)
		r.Delete("/capture/session", h.handleStopSession)

		r.Get("/capture/{stage}", h.handleStatus)
		r.Get("/capture/{stage}/overlay", h.handleOverlay)
		r.Post("/capture/{stage}/frame", h.handleCapture)
		r.Post("/capture/{stage}/file", h.handleImportFile)
		r.Post("/capture/{stage}/submit", h.handleSubmit)
		r.Post("/capture/{stage}/retake", h.handleRetake)

		r.Get("/verification/progress", h.handleProgress)
		r.Get("/verification/resume", h.handleResume)
		if h.trail != nil {
			r.Get("/verification/activity", h.handleActivity)
		}
	})
}

func (h *CaptureHandler) identity(w http.ResponseWriter, r *http.Request) (id.UserID, bool) {
	userID := requestcontext.UserID(r.Context())
	if userID.IsNil() {
		h.logger.ErrorContext(r.Context(), "user missing from context despite auth middleware")
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "authentication context error"))
		return id.UserID{}, false
	}
	return userID, true
}

func stageParam(w http.ResponseWriter, r *http.Request) (id.Stage, bool) {
	stage, err := id.ParseStage(chi.URLParam(r, "stage"))
	if err != nil {
		httputil.WriteError(w, err)
		return "", false
	}
	return stage, true
}

func (h *CaptureHandler) handleStartSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.identity(w, r)
	if !ok {
		return
	}
	stage, ok := stageParam(w, r)
	if !ok {
		return
	}
	status, err := h.service.StartStage(r.Context(), userID, stage)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, status)
}

func (h *CaptureHandler) handleRetrySession(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.identity(w, r)
	if !ok {
		return
	}
	stage, ok := stageParam(w, r)
	if !ok {
		return
	}
	status, err := h.service.RetryStart(r.Context(), userID, stage)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, status)
}

func (h *CaptureHandler) handleStopSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.identity(w, r)
	if !ok {
		return
	}
	h.service.StopStage(r.Context(), userID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *CaptureHandler) handleStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.identity(w, r)
	if !ok {
		return
	}
	stage, ok := stageParam(w, r)
	if !ok {
		return
	}
	status, err := h.service.Status(r.Context(), userID, stage)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, status)
}

func (h *CaptureHandler) handleOverlay(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.identity(w, r)
	if !ok {
		return
	}
	stage, ok := stageParam(w, r)
	if !ok {
		return
	}
	overlay, err := h.service.Overlay(r.Context(), userID, stage)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, overlay)
}

func (h *CaptureHandler) handleCapture(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.identity(w, r)
	if !ok {
		return
	}
	stage, ok := stageParam(w, r)
	if !ok {
		return
	}
	art, err := h.service.Capture(r.Context(), userID, stage)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, art)
}

// handleImportFile accepts a multipart form with a single "file" part, the
// manual path for clients without a usable camera.
func (h *CaptureHandler) handleImportFile(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.identity(w, r)
	if !ok {
		return
	}
	stage, ok := stageParam(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxFileBytes); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid multipart payload"))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "missing file part"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxFileBytes))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "unreadable file part"))
		return
	}

	art, err := h.service.ImportFile(r.Context(), userID, stage, header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, art)
}

func (h *CaptureHandler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.identity(w, r)
	if !ok {
		return
	}
	stage, ok := stageParam(w, r)
	if !ok {
		return
	}
	status, err := h.service.Submit(r.Context(), userID, stage)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, status)
}

func (h *CaptureHandler) handleRetake(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.identity(w, r)
	if !ok {
		return
	}
	stage, ok := stageParam(w, r)
	if !ok {
		return
	}
	status, err := h.service.Retake(r.Context(), userID, stage)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, status)
}

func (h *CaptureHandler) handleProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.identity(w, r)
	if !ok {
		return
	}
	cursor, err := h.service.Progress(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, cursor)
}

// ResumeResponse tells the client where to land when re-entering the flow.
type ResumeResponse struct {
	Stage string `json:"stage,omitempty"`
	Done  bool   `json:"done"`
}

func (h *CaptureHandler) handleResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.identity(w, r)
	if !ok {
		return
	}
	stage, done, err := h.service.Resume(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ResumeResponse{Stage: stage.String(), Done: done})
}

// ActivityResponse wraps the user's audit trail.
type ActivityResponse struct {
	Events []audit.Event `json:"events"`
}

func (h *CaptureHandler) handleActivity(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.identity(w, r)
	if !ok {
		return
	}
	events, err := h.trail.List(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(dErrors.CodeInternal, "list audit trail", err))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ActivityResponse{Events: events})
}
