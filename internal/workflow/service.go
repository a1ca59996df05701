package workflow

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"verifid/internal/artifact"
	"verifid/internal/detection"
	"verifid/internal/device"
	"verifid/internal/progress"
	"verifid/internal/surface"
	"verifid/internal/upload"
	id "verifid/pkg/domain"
	dErrors "verifid/pkg/domain-errors"
	"verifid/pkg/platform/audit"
	"verifid/pkg/requestcontext"
)

// Uploader is the slice of the intake client the workflow depends on.
type Uploader interface {
	UploadDocument(ctx context.Context, doc upload.DocumentUpload) (*upload.Receipt, error)
	RecordMetadata(ctx context.Context, record upload.MetadataRecord) error
	SelfieCheck(ctx context.Context, data []byte) error
}

// AuditQueue accepts audit events without blocking the capture path.
type AuditQueue interface {
	Enqueue(event audit.Event)
}

// Service owns the per-user stage machines. All operations are keyed by
// the authenticated user and the stage being worked; a user has at most
// one live camera session regardless of how many tabs they open.
type Service struct {
	camera       device.Camera
	artifacts    artifact.Store
	sequencer    *progress.Sequencer
	uploader     Uploader
	connectivity upload.Connectivity
	audit        AuditQueue
	logger       *slog.Logger

	permissions *device.PermissionObserver
	watchCancel context.CancelFunc

	detectionInterval time.Duration
	setupTimeout      time.Duration
	retryPolicy       device.RetryPolicy

	mu      sync.Mutex
	runners map[id.UserID]*runner
}

// Option configures the Service.
type Option func(*Service)

// WithDetectionInterval overrides the simulated detection cadence.
func WithDetectionInterval(d time.Duration) Option {
	return func(s *Service) { s.detectionInterval = d }
}

// WithSetupTimeout overrides the camera stream setup bound.
func WithSetupTimeout(d time.Duration) Option {
	return func(s *Service) { s.setupTimeout = d }
}

// WithRetryPolicy overrides the session retry policy.
func WithRetryPolicy(p device.RetryPolicy) Option {
	return func(s *Service) { s.retryPolicy = p }
}

// NewService wires the capture workflow over its collaborators.
func NewService(
	camera device.Camera,
	artifacts artifact.Store,
	sequencer *progress.Sequencer,
	uploader Uploader,
	connectivity upload.Connectivity,
	auditQueue AuditQueue,
	logger *slog.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		camera:            camera,
		artifacts:         artifacts,
		sequencer:         sequencer,
		uploader:          uploader,
		connectivity:      connectivity,
		audit:             auditQueue,
		logger:            logger,
		detectionInterval: 1500 * time.Millisecond,
		setupTimeout:      15 * time.Second,
		retryPolicy:       device.DefaultRetryPolicy(),
		runners:           make(map[id.UserID]*runner),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	// Watch provider permission changes for the life of the service. A
	// revocation releases every live camera immediately; status reads
	// surface the observed state.
	watchCtx, cancel := context.WithCancel(context.Background())
	s.watchCancel = cancel
	s.permissions = device.NewPermissionObserver(watchCtx, camera)
	go s.watchPermission(watchCtx)
	return s
}

func (s *Service) watchPermission(ctx context.Context) {
	updates := s.permissions.Subscribe()
	for {
		select {
		case <-ctx.Done():
			return
		case state, ok := <-updates:
			if !ok {
				return
			}
			if state != device.PermissionDenied {
				continue
			}
			s.logger.Warn("camera permission revoked, releasing sessions")
			s.releaseSessions()
		}
	}
}

// runner holds one user's camera plumbing and stage machine. The surface,
// session and detector live as long as the user does; acquisitions come
// and go underneath them.
type runner struct {
	surface  *surface.Surface
	session  *device.Session
	detector *detection.Simulated

	mu         sync.Mutex
	stage      id.Stage
	state      State
	submitting bool
	acquiredAt time.Time
}

func (s *Service) runnerFor(userID id.UserID) *runner {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.runners[userID]; ok {
		return r
	}
	surf := surface.New()
	sess := device.NewSession(s.camera, surf,
		device.WithRetryPolicy(s.retryPolicy),
		device.WithSetupTimeout(s.setupTimeout),
		device.WithLogger(s.logger),
	)
	r := &runner{
		surface:  surf,
		session:  sess,
		detector: detection.NewSimulated(sess, s.detectionInterval),
		state:    StateCameraInactive,
	}
	s.runners[userID] = r
	return r
}

func (s *Service) peekRunner(userID id.UserID) *runner {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runners[userID]
}

// StartStage acquires the camera for a stage and begins detection.
// Switching stages tears down the previous acquisition first. Acquisition
// failures leave the stage camera-inactive with the classified code on
// the session snapshot.
func (s *Service) StartStage(ctx context.Context, userID id.UserID, stage id.Stage) (*StageStatus, error) {
	if !stage.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "unknown capture stage")
	}
	r := s.runnerFor(userID)

	r.mu.Lock()
	if r.submitting {
		r.mu.Unlock()
		return nil, dErrors.New(dErrors.CodeConflict, "submission in flight; camera cannot restart")
	}
	switching := r.stage != "" && r.stage != stage
	r.stage = stage
	r.state = StateAcquiring
	r.mu.Unlock()

	if switching {
		r.detector.Stop()
		r.session.Stop()
	}

	if err := r.session.StartWithRetry(ctx, stage.PreferredFacing()); err != nil {
		r.setState(StateCameraInactive)
		sessionStarts.WithLabelValues(stage.String(), "failure").Inc()
		s.emit(ctx, userID, audit.ActionSessionFailed, stage, string(dErrors.CodeOf(err)))
		return nil, err
	}

	// The detector outlives the request; the session's Active flag
	// freezes it whenever the stream is down.
	r.detector.Start(context.Background())

	r.mu.Lock()
	r.state = StateLive
	r.acquiredAt = time.Now()
	r.mu.Unlock()

	sessionStarts.WithLabelValues(stage.String(), "success").Inc()
	s.emit(ctx, userID, audit.ActionSessionStarted, stage, "")
	return s.status(ctx, r, userID, stage)
}

// StopStage releases the camera without touching the stored artifact.
// Navigation away and tab close both land here. Idempotent.
func (s *Service) StopStage(ctx context.Context, userID id.UserID) {
	r := s.peekRunner(userID)
	if r == nil {
		return
	}
	r.detector.Stop()
	r.session.Stop()

	r.mu.Lock()
	if !r.state.Terminal() {
		r.state = StateCameraInactive
	}
	r.mu.Unlock()
}

// RetryStart re-enables automatic acquisition after the retry budget was
// spent and tries again. This is the explicit user action; exhaustion is
// never cleared implicitly.
func (s *Service) RetryStart(ctx context.Context, userID id.UserID, stage id.Stage) (*StageStatus, error) {
	r := s.runnerFor(userID)
	r.session.ResetRetries()
	return s.StartStage(ctx, userID, stage)
}

// Capture freezes the current frame into a stored artifact and releases
// the camera. Refused unless the stream is live and detection reports
// ready; refused outright while a submission is in flight.
func (s *Service) Capture(ctx context.Context, userID id.UserID, stage id.Stage) (*artifact.CapturedArtifact, error) {
	r := s.peekRunner(userID)
	if r == nil {
		return nil, dErrors.New(dErrors.CodeNotReady, "no capture session for this stage")
	}

	r.mu.Lock()
	if r.submitting {
		r.mu.Unlock()
		return nil, dErrors.New(dErrors.CodeConflict, "submission in flight")
	}
	if r.stage != stage {
		r.mu.Unlock()
		return nil, dErrors.New(dErrors.CodeNotReady, "camera is acquired for a different stage")
	}
	r.mu.Unlock()

	if !r.session.Active() {
		return nil, dErrors.New(dErrors.CodeNotReady, "camera is not active").
			WithHint("Start the camera before capturing")
	}
	if r.detector.State() != detection.StateReady {
		return nil, dErrors.New(dErrors.CodeNotReady, "subject is not aligned yet").
			WithHint("Hold steady inside the guide until it turns green")
	}

	grab, err := r.surface.GrabFrame()
	if err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	art := &artifact.CapturedArtifact{
		ID:        id.NewArtifactID(),
		UserID:    userID,
		Stage:     stage,
		ImageData: base64.StdEncoding.EncodeToString(grab.JPEG),
		Metadata: artifact.FileMetadata{
			Name:      fmt.Sprintf("%s_%d.jpg", stage.DocumentType(), now.UnixMilli()),
			Size:      int64(len(grab.JPEG)),
			MimeType:  "image/jpeg",
			Timestamp: now,
		},
		Upload:    artifact.UploadResult{Status: artifact.UploadPending},
		CreatedAt: now,
	}
	if err := s.artifacts.Save(ctx, art); err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "persist captured artifact", err)
	}

	// Review happens on the still; the camera is released immediately.
	r.detector.Stop()
	r.session.Stop()
	r.setState(StateCaptured)

	capturesTotal.WithLabelValues(stage.String()).Inc()
	s.emit(ctx, userID, audit.ActionFrameCaptured, stage, "")
	s.logger.InfoContext(ctx, "frame captured",
		"user_id", userID.String(),
		"stage", stage.String(),
		"artifact_id", art.ID.String(),
		"size_bytes", art.Metadata.Size,
	)
	return art, nil
}

// ImportFile stores a user-provided file as the stage artifact, the
// fallback path for clients without a usable camera. The camera, if
// acquired, is released.
func (s *Service) ImportFile(ctx context.Context, userID id.UserID, stage id.Stage, name, mimeType string, data []byte) (*artifact.CapturedArtifact, error) {
	if !stage.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "unknown capture stage")
	}
	if len(data) == 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "file payload is empty")
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "only image files are accepted")
	}

	now := requestcontext.Now(ctx)
	if name == "" {
		name = fmt.Sprintf("%s_%d", stage.DocumentType(), now.UnixMilli())
	}
	art := &artifact.CapturedArtifact{
		ID:        id.NewArtifactID(),
		UserID:    userID,
		Stage:     stage,
		ImageData: base64.StdEncoding.EncodeToString(data),
		Metadata: artifact.FileMetadata{
			Name:      name,
			Size:      int64(len(data)),
			MimeType:  mimeType,
			Timestamp: now,
		},
		Upload:    artifact.UploadResult{Status: artifact.UploadPending},
		CreatedAt: now,
	}
	if err := s.artifacts.Save(ctx, art); err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "persist imported artifact", err)
	}

	if r := s.peekRunner(userID); r != nil {
		r.detector.Stop()
		r.session.Stop()
		r.mu.Lock()
		r.stage = stage
		r.state = StateCaptured
		r.mu.Unlock()
	}

	capturesTotal.WithLabelValues(stage.String()).Inc()
	s.emit(ctx, userID, audit.ActionFrameCaptured, stage, "file-import")
	return art, nil
}

// Retake discards the stage artifact and reacquires the camera. The
// discarded still is gone; there is no undo.
func (s *Service) Retake(ctx context.Context, userID id.UserID, stage id.Stage) (*StageStatus, error) {
	if err := s.artifacts.Delete(ctx, userID, stage); err != nil && !errors.Is(err, artifact.ErrNotFound) {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "discard artifact", err)
	}
	s.emit(ctx, userID, audit.ActionArtifactDiscarded, stage, "retake")

	if r := s.peekRunner(userID); r != nil {
		r.mu.Lock()
		if r.submitting {
			r.mu.Unlock()
			return nil, dErrors.New(dErrors.CodeConflict, "submission in flight")
		}
		r.state = StateCameraInactive
		r.mu.Unlock()
	}
	return s.StartStage(ctx, userID, stage)
}

// Submit sends the stored artifact to the intake service. Offline
// submissions degrade to saved-locally and do not advance registration
// progress; rejected or failed uploads keep the artifact for retry. Only
// a confirmed submission advances the sequencer.
func (s *Service) Submit(ctx context.Context, userID id.UserID, stage id.Stage) (*StageStatus, error) {
	art, err := s.artifacts.Find(ctx, userID, stage)
	if errors.Is(err, artifact.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "nothing captured for this stage")
	}
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "load artifact", err)
	}

	r := s.runnerFor(userID)
	r.mu.Lock()
	if r.submitting {
		r.mu.Unlock()
		return nil, dErrors.New(dErrors.CodeConflict, "submission already in flight")
	}
	if r.stage != "" && r.stage != stage && r.session.Active() {
		// The camera is live on another stage; adopting this one would
		// skew that stage's status mid-acquisition.
		r.mu.Unlock()
		return nil, dErrors.New(dErrors.CodeConflict, "camera is live for a different stage").
			WithHint("Stop the camera before submitting another stage")
	}
	r.submitting = true
	r.stage = stage
	r.state = StateSubmitting
	r.mu.Unlock()

	outcome, err := s.submit(ctx, userID, stage, art)

	r.mu.Lock()
	r.submitting = false
	r.state = outcome
	r.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return s.status(ctx, r, userID, stage)
}

func (s *Service) submit(ctx context.Context, userID id.UserID, stage id.Stage, art *artifact.CapturedArtifact) (State, error) {
	if !s.connectivity.Online(ctx) {
		art.Upload = artifact.UploadResult{Status: artifact.UploadFailedLocalOnly}
		if err := s.artifacts.Save(ctx, art); err != nil {
			return StateSubmissionFailed, dErrors.Wrap(dErrors.CodeInternal, "record local save", err)
		}
		submissionsTotal.WithLabelValues(stage.String(), "saved-locally").Inc()
		s.emit(ctx, userID, audit.ActionDocumentSaved, stage, "offline")
		s.logger.InfoContext(ctx, "offline, document saved locally",
			"user_id", userID.String(),
			"stage", stage.String(),
		)
		return StateSavedLocally, nil
	}

	data, err := base64.StdEncoding.DecodeString(art.ImageData)
	if err != nil {
		return StateSubmissionFailed, dErrors.Wrap(dErrors.CodeInternal, "decode stored artifact", err)
	}

	now := requestcontext.Now(ctx)
	doc := upload.DocumentUpload{
		DocumentName:   art.Metadata.Name,
		Status:         "pending_review",
		UploadedBy:     userID.String(),
		DocumentType:   stage.DocumentType(),
		SubmissionDate: now,
		FileName:       art.Metadata.Name,
		MimeType:       art.Metadata.MimeType,
		Data:           data,
	}

	receipt, err := s.uploader.UploadDocument(ctx, doc)
	if err != nil {
		art.Upload = artifact.UploadResult{Status: artifact.UploadFailedRemote}
		if saveErr := s.artifacts.Save(ctx, art); saveErr != nil {
			s.logger.ErrorContext(ctx, "record failed upload", "error", saveErr)
		}
		submissionsTotal.WithLabelValues(stage.String(), "failure").Inc()
		s.emit(ctx, userID, audit.ActionSubmissionFailed, stage, string(dErrors.CodeOf(err)))
		return StateSubmissionFailed, err
	}

	art.Upload = artifact.UploadResult{Status: artifact.UploadSuccess, ServerID: receipt.ServerID}
	if err := s.artifacts.Save(ctx, art); err != nil {
		return StateSubmissionFailed, dErrors.Wrap(dErrors.CodeInternal, "record upload receipt", err)
	}

	// Metadata and the selfie pre-check ride alongside the accepted
	// upload; neither can fail the stage.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		record := upload.MetadataRecord{
			DocumentName: art.Metadata.Name,
			DocumentType: stage.DocumentType(),
			UploadedBy:   userID.String(),
			SizeBytes:    art.Metadata.Size,
			MimeType:     art.Metadata.MimeType,
			SubmittedAt:  now,
		}
		if err := s.uploader.RecordMetadata(gctx, record); err != nil {
			s.logger.WarnContext(gctx, "metadata record failed", "error", err)
		}
		return nil
	})
	if stage == id.StageSelfie {
		g.Go(func() error {
			if err := s.uploader.SelfieCheck(gctx, data); err != nil {
				s.logger.WarnContext(gctx, "selfie pre-check failed", "error", err)
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := s.sequencer.Advance(ctx, userID, stage); err != nil {
		return StateSubmissionFailed, dErrors.Wrap(dErrors.CodeInternal, "advance registration progress", err)
	}

	submissionsTotal.WithLabelValues(stage.String(), "success").Inc()
	if r := s.peekRunner(userID); r != nil {
		r.mu.Lock()
		acquiredAt := r.acquiredAt
		r.mu.Unlock()
		if !acquiredAt.IsZero() {
			stageDuration.WithLabelValues(stage.String()).Observe(time.Since(acquiredAt).Seconds())
		}
	}
	s.emit(ctx, userID, audit.ActionDocumentSubmitted, stage, "")
	s.emit(ctx, userID, audit.ActionStageConfirmed, stage, "")
	s.logger.InfoContext(ctx, "stage confirmed",
		"user_id", userID.String(),
		"stage", stage.String(),
		"server_id", receipt.ServerID,
	)
	return StateConfirmed, nil
}

// Status reports the stage's machine state, the live session snapshot if
// one exists, and the stored artifact. A fresh process derives captured /
// confirmed / saved-locally purely from the artifact's upload receipt, so
// a reload lands the user where they left off.
func (s *Service) Status(ctx context.Context, userID id.UserID, stage id.Stage) (*StageStatus, error) {
	return s.status(ctx, s.peekRunner(userID), userID, stage)
}

func (s *Service) status(ctx context.Context, r *runner, userID id.UserID, stage id.Stage) (*StageStatus, error) {
	art, err := s.artifacts.Find(ctx, userID, stage)
	if err != nil && !errors.Is(err, artifact.ErrNotFound) {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "load artifact", err)
	}

	status := &StageStatus{
		Stage:      stage,
		State:      StateCameraInactive,
		Detection:  detection.StatePositioning,
		Permission: s.permissionState(ctx),
		Artifact:   art,
	}

	if r != nil {
		snap := r.session.Snapshot()
		status.Session = &snap
		status.Detection = r.detector.State()
		r.mu.Lock()
		if r.stage == stage {
			status.State = r.state
		}
		r.mu.Unlock()
	}

	if status.State == StateCameraInactive && art != nil {
		switch art.Upload.Status {
		case artifact.UploadSuccess:
			status.State = StateConfirmed
		case artifact.UploadFailedLocalOnly:
			status.State = StateSavedLocally
		case artifact.UploadFailedRemote:
			status.State = StateSubmissionFailed
		default:
			status.State = StateCaptured
		}
	}
	return status, nil
}

// Overlay renders the guide geometry for the stage at the live stream's
// dimensions.
func (s *Service) Overlay(ctx context.Context, userID id.UserID, stage id.Stage) (*detection.Overlay, error) {
	r := s.peekRunner(userID)
	if r == nil || !r.session.Active() {
		return nil, dErrors.New(dErrors.CodeNotReady, "camera is not active")
	}
	width, height := r.surface.Dimensions()
	if width == 0 || height == 0 {
		return nil, dErrors.New(dErrors.CodeStreamNotReady, "video stream has no decoded frames yet")
	}
	overlay := detection.BuildOverlay(stage, r.detector.State(), r.detector.PulsePhase(), width, height)
	return &overlay, nil
}

// Resume maps the user's stored registration progress to the stage they
// should land on, restoring mid-flow re-entry.
func (s *Service) Resume(ctx context.Context, userID id.UserID) (id.Stage, bool, error) {
	return s.sequencer.Resume(ctx, userID)
}

// Progress exposes the raw registration cursor.
func (s *Service) Progress(ctx context.Context, userID id.UserID) (*progress.RegistrationProgress, error) {
	return s.sequencer.Current(ctx, userID)
}

// Shutdown stops the permission watch and releases every live camera
// session. Called on server exit.
func (s *Service) Shutdown() {
	s.watchCancel()
	s.releaseSessions()
}

func (s *Service) releaseSessions() {
	s.mu.Lock()
	runners := make([]*runner, 0, len(s.runners))
	for _, r := range s.runners {
		runners = append(runners, r)
	}
	s.mu.Unlock()

	for _, r := range runners {
		r.detector.Stop()
		r.session.Stop()
		r.mu.Lock()
		if !r.state.Terminal() {
			r.state = StateCameraInactive
		}
		r.mu.Unlock()
	}
}

// permissionState prefers the pushed observation; providers without a
// watcher fall back to a poll.
func (s *Service) permissionState(ctx context.Context) device.PermissionState {
	if state := s.permissions.Last(); state != device.PermissionUnknown {
		return state
	}
	return device.CheckPermission(ctx, s.camera)
}

func (r *runner) setState(state State) {
	r.mu.Lock()
	r.state = state
	r.mu.Unlock()
}

func (s *Service) emit(ctx context.Context, userID id.UserID, action audit.Action, stage id.Stage, reason string) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(audit.Event{
		Timestamp: requestcontext.Now(ctx),
		UserID:    userID,
		Action:    action,
		Stage:     stage.String(),
		Device:    device.DisplayName(requestcontext.UserAgent(ctx)),
		Reason:    reason,
		RequestID: requestcontext.RequestID(ctx),
	})
}
