package device

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	id "verifid/pkg/domain"
	dErrors "verifid/pkg/domain-errors"
)

// Status is the lifecycle state of a capture session.
type Status string

const (
	StatusIdle                 Status = "idle"
	StatusRequestingPermission Status = "requesting-permission"
	StatusStarting             Status = "starting"
	StatusActive               Status = "active"
	StatusError                Status = "error"
)

// Snapshot is a point-in-time view of a session for status endpoints.
type Snapshot struct {
	ID                 id.SessionID
	Status             Status
	Facing             id.CameraFacing
	RetryCount         int
	AutoRetryAllowed   bool
	ErrorCode          dErrors.Code
	ErrorHint          string
}

// Session owns one camera stream at a time. Exactly one acquisition may be
// in flight; concurrent Start calls collapse onto the pending one. Stop is
// idempotent and always safe.
type Session struct {
	id           id.SessionID
	camera       Camera
	surface      Surface
	policy       RetryPolicy
	setupTimeout time.Duration
	logger       *slog.Logger

	flight singleflight.Group

	mu          sync.Mutex
	status      Status
	facing      id.CameraFacing
	retryCount  int
	exhausted   bool
	lastErr     *dErrors.DomainError
	stream      Stream
	cancelStart context.CancelFunc
}

// Option configures a Session.
type Option func(*Session)

// WithRetryPolicy overrides the bounded retry policy.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(s *Session) { s.policy = p }
}

// WithSetupTimeout overrides the stream setup bound (default 15s).
func WithSetupTimeout(d time.Duration) Option {
	return func(s *Session) { s.setupTimeout = d }
}

// WithLogger sets a logger for session transitions.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// NewSession creates an idle session bound to a camera provider and a
// capture surface.
func NewSession(camera Camera, surface Surface, opts ...Option) *Session {
	s := &Session{
		id:           id.NewSessionID(),
		camera:       camera,
		surface:      surface,
		policy:       DefaultRetryPolicy(),
		setupTimeout: 15 * time.Second,
		status:       StatusIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// ID returns the session identifier.
func (s *Session) ID() id.SessionID { return s.id }

// Snapshot returns the current session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		ID:               s.id,
		Status:           s.status,
		Facing:           s.facing,
		RetryCount:       s.retryCount,
		AutoRetryAllowed: !s.exhausted,
	}
	if s.lastErr != nil {
		snap.ErrorCode = s.lastErr.Code
		snap.ErrorHint = s.lastErr.Hint
	}
	return snap
}

// Active reports whether a live stream is bound.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status == StatusActive
}

// Start acquires a camera stream for the given facing mode. Idempotent
// while active; concurrent calls share the in-flight acquisition. On
// failure the session transitions to error carrying the classified code.
func (s *Session) Start(ctx context.Context, facing id.CameraFacing) error {
	_, err, _ := s.flight.Do("start", func() (any, error) {
		return nil, s.start(ctx, facing)
	})
	return err
}

func (s *Session) start(ctx context.Context, facing id.CameraFacing) error {
	s.mu.Lock()
	if s.status == StatusActive {
		s.mu.Unlock()
		return nil
	}
	// Stop any stale stream before reacquiring.
	stale := s.stream
	s.stream = nil
	s.status = StatusRequestingPermission
	s.facing = facing
	s.lastErr = nil
	ctx, cancel := context.WithCancel(ctx)
	s.cancelStart = cancel
	s.mu.Unlock()
	defer cancel()

	if stale != nil {
		_ = stale.Stop()
	}

	if err := CheckEnvironment(ctx); err != nil {
		return s.fail(err)
	}

	switch CheckPermission(ctx, s.camera) {
	case PermissionDenied:
		return s.fail(dErrors.New(dErrors.CodePermissionDenied, "camera permission denied").
			WithHint("Allow camera access in your browser settings and try again"))
	case PermissionGranted:
		// Proceed straight to acquisition.
	default:
		granted, err := RequestPermission(ctx, s.camera)
		if err != nil {
			return s.fail(err)
		}
		if !granted {
			return s.fail(dErrors.New(dErrors.CodePermissionDenied, "camera permission denied"))
		}
	}

	s.setStatus(StatusStarting)

	setupCtx, cancelSetup := context.WithTimeout(ctx, s.setupTimeout)
	defer cancelSetup()

	stream, err := s.camera.Open(setupCtx, Constraints{Facing: facing})
	if err != nil {
		// Secondary constraint: any camera.
		stream, err = s.camera.Open(setupCtx, Constraints{AnyCamera: true})
		if err != nil {
			return s.fail(Classify(err))
		}
	}

	s.surface.Attach(stream)

	select {
	case <-s.surface.Ready():
	case <-setupCtx.Done():
		s.surface.Detach()
		_ = stream.Stop()
		return s.fail(dErrors.New(dErrors.CodeStreamSetupTimeout, "camera stream setup timed out").
			WithHint("Check your camera connection and retry"))
	}

	s.mu.Lock()
	s.stream = stream
	s.status = StatusActive
	s.mu.Unlock()

	s.logger.Info("capture session active",
		"session_id", s.id.String(),
		"facing", string(stream.Facing()),
	)
	return nil
}

// StartWithRetry runs Start under the session's retry policy: recoverable
// failures are retried with backoff up to the attempt cap, permission and
// environment failures never are. After the cap, automatic retry is
// disabled until ResetRetries.
func (s *Session) StartWithRetry(ctx context.Context, facing id.CameraFacing) error {
	s.mu.Lock()
	if s.exhausted {
		s.mu.Unlock()
		return dErrors.New(dErrors.CodeNotReady, "automatic retry disabled; manual retry required")
	}
	s.mu.Unlock()

	var lastErr error
	for attempt := 1; attempt <= s.policy.MaxAttempts; attempt++ {
		s.mu.Lock()
		s.retryCount = attempt
		s.mu.Unlock()

		lastErr = s.Start(ctx, facing)
		if lastErr == nil {
			return nil
		}
		if !dErrors.Recoverable(dErrors.CodeOf(lastErr)) {
			return lastErr
		}
		if attempt == s.policy.MaxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return lastErr
		case <-time.After(s.policy.delay(attempt)):
		}
	}

	s.mu.Lock()
	s.exhausted = true
	s.mu.Unlock()
	s.logger.Warn("automatic retry exhausted",
		"session_id", s.id.String(),
		"attempts", s.policy.MaxAttempts,
	)
	return lastErr
}

// ResetRetries re-enables automatic retry after an explicit user action.
func (s *Session) ResetRetries() {
	s.mu.Lock()
	s.retryCount = 0
	s.exhausted = false
	s.mu.Unlock()
}

// Stop releases the stream and detaches the surface. Idempotent; also
// cancels an in-flight Start so navigation away never leaves a pending
// acquisition.
func (s *Session) Stop() {
	s.mu.Lock()
	if s.cancelStart != nil {
		s.cancelStart()
	}
	stream := s.stream
	s.stream = nil
	if s.status != StatusError {
		s.status = StatusIdle
	}
	s.mu.Unlock()

	// Detach first so the detector loop never observes a stopped stream.
	s.surface.Detach()
	if stream != nil {
		_ = stream.Stop()
	}
}

// Acquire starts the session and returns a release function guaranteed to
// stop it; callers defer the release so teardown runs on every exit path.
func (s *Session) Acquire(ctx context.Context, facing id.CameraFacing) (func(), error) {
	if err := s.StartWithRetry(ctx, facing); err != nil {
		s.Stop()
		return func() {}, err
	}
	var once sync.Once
	return func() { once.Do(s.Stop) }, nil
}

func (s *Session) setStatus(status Status) {
	s.mu.Lock()
	s.status = status
	s.mu.Unlock()
}

func (s *Session) fail(err error) error {
	de, ok := err.(*dErrors.DomainError)
	if !ok {
		de = dErrors.Wrap(dErrors.CodeUnknown, "session start failed", err)
	}
	s.mu.Lock()
	s.status = StatusError
	s.lastErr = de
	s.mu.Unlock()
	s.logger.Warn("capture session failed",
		"session_id", s.id.String(),
		"code", string(de.Code),
	)
	return de
}
