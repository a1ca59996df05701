// Package sim provides a synthetic camera provider. It generates gradient
// frames at a fixed rate and stands in wherever a real platform camera
// binding is unavailable: local development, tests, and the default server
// wiring.
package sim

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"verifid/internal/device"
	id "verifid/pkg/domain"
)

// Camera is a simulated camera provider with configurable permission
// behavior and frame geometry.
type Camera struct {
	Width  int
	Height int
	FPS    int

	// PermissionState is what Permission reports. Defaults to granted.
	PermissionState device.PermissionState

	// OpenErr, when set, is returned by every Open call. Used to exercise
	// the failure taxonomy.
	OpenErr error

	// StartupDelay delays frame delivery after Open, to exercise the
	// stream setup timeout.
	StartupDelay time.Duration

	mu       sync.Mutex
	watchers []chan device.PermissionState
}

// New returns a simulated camera producing 640x480 frames at 15 fps.
func New() *Camera {
	return &Camera{Width: 640, Height: 480, FPS: 15, PermissionState: device.PermissionGranted}
}

func (c *Camera) Permission(_ context.Context) (device.PermissionState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.PermissionState == "" {
		return device.PermissionGranted, nil
	}
	return c.PermissionState, nil
}

// WatchPermission implements device.PermissionWatcher. Changes are pushed
// via SetPermission.
func (c *Camera) WatchPermission(_ context.Context) (<-chan device.PermissionState, error) {
	ch := make(chan device.PermissionState, 1)
	c.mu.Lock()
	c.watchers = append(c.watchers, ch)
	c.mu.Unlock()
	return ch, nil
}

// SetPermission flips the permission state and notifies watchers, modeling
// the user changing the browser setting mid-flow.
func (c *Camera) SetPermission(state device.PermissionState) {
	c.mu.Lock()
	c.PermissionState = state
	watchers := c.watchers
	c.mu.Unlock()
	for _, ch := range watchers {
		select {
		case ch <- state:
		default:
		}
	}
}

func (c *Camera) Open(ctx context.Context, constraints device.Constraints) (device.Stream, error) {
	c.mu.Lock()
	openErr, permission := c.OpenErr, c.PermissionState
	c.mu.Unlock()
	if openErr != nil {
		return nil, openErr
	}
	if permission == device.PermissionDenied {
		return nil, device.ErrNotAllowed
	}
	facing := constraints.Facing
	if constraints.AnyCamera && facing == "" {
		facing = id.FacingUser
	}
	s := &stream{
		facing:  facing,
		frames:  make(chan device.Frame, 8),
		stopped: make(chan struct{}),
	}
	go s.run(ctx, c)
	return s, nil
}

type stream struct {
	facing  id.CameraFacing
	frames  chan device.Frame
	stopped chan struct{}
	once    sync.Once
	seq     atomic.Uint64
}

func (s *stream) Frames() <-chan device.Frame { return s.frames }
func (s *stream) Facing() id.CameraFacing     { return s.facing }

func (s *stream) Stop() error {
	s.once.Do(func() { close(s.stopped) })
	return nil
}

func (s *stream) run(ctx context.Context, c *Camera) {
	if c.StartupDelay > 0 {
		select {
		case <-time.After(c.StartupDelay):
		case <-s.stopped:
			return
		case <-ctx.Done():
			return
		}
	}
	fps := c.FPS
	if fps <= 0 {
		fps = 15
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	// A real camera signals readiness with its first frame as soon as the
	// pipeline is up, not a full frame period later.
	s.emit(c, time.Now())

	// ctx only bounds startup; once frames flow, the stream lives until
	// Stop so it survives the caller's acquisition context.
	for {
		select {
		case <-s.stopped:
			return
		case now := <-ticker.C:
			s.emit(c, now)
		}
	}
}

func (s *stream) emit(c *Camera, now time.Time) {
	frame := device.Frame{
		Seq:       s.seq.Add(1),
		Timestamp: now,
		Width:     c.Width,
		Height:    c.Height,
		Data:      gradient(c.Width, c.Height, s.seq.Load()),
	}
	select {
	case s.frames <- frame:
	default:
		// Drop when the consumer lags; stills only need the latest.
	}
}

// gradient renders a moving RGBA gradient so consecutive frames differ.
func gradient(w, h int, seq uint64) []byte {
	data := make([]byte, w*h*4)
	shift := byte(seq)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 4
			data[i] = byte(x) + shift
			data[i+1] = byte(y)
			data[i+2] = byte(x+y) - shift
			data[i+3] = 0xff
		}
	}
	return data
}
