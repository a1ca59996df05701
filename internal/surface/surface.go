// Package surface owns the sink side of a live camera stream: it keeps the
// most recent decoded frame and snapshots a still image from it on demand.
// The raster buffer is sized from the live frame at grab time, never from a
// cached geometry, so captures are not distorted by mid-stream resizes.
package surface

import (
	"bytes"
	"image"
	"image/jpeg"
	"sync"

	"verifid/internal/device"
	dErrors "verifid/pkg/domain-errors"
)

// Grab is the result of a successful frame grab.
type Grab struct {
	// JPEG holds the encoded still.
	JPEG []byte
	// Width and Height are the stream dimensions at the moment of the grab.
	Width  int
	Height int
}

// Surface implements device.Surface. Attach starts consuming the stream's
// frames; Detach synchronously stops consumption before returning, so no
// frame callback ever runs against a released stream.
type Surface struct {
	mu      sync.Mutex
	latest  *device.Frame
	ready   chan struct{}
	quit    chan struct{}
	done    chan struct{}
	quality int
}

// New returns an empty, detached surface.
func New() *Surface {
	return &Surface{quality: 85}
}

// Attach binds a stream and begins buffering its frames. An already
// attached surface is detached first.
func (s *Surface) Attach(stream device.Stream) {
	s.Detach()

	s.mu.Lock()
	s.latest = nil
	s.ready = make(chan struct{})
	s.quit = make(chan struct{})
	s.done = make(chan struct{})
	quit, done, ready := s.quit, s.done, s.ready
	s.mu.Unlock()

	go func() {
		defer close(done)
		var readyOnce sync.Once
		for {
			select {
			case <-quit:
				return
			case frame, ok := <-stream.Frames():
				if !ok {
					return
				}
				if frame.Width == 0 || frame.Height == 0 {
					continue
				}
				s.mu.Lock()
				s.latest = &frame
				s.mu.Unlock()
				readyOnce.Do(func() { close(ready) })
			}
		}
	}()
}

// Detach stops frame consumption and clears the buffered frame. It blocks
// until the consumer goroutine has exited. Safe to call repeatedly.
func (s *Surface) Detach() {
	s.mu.Lock()
	quit, done := s.quit, s.done
	s.quit, s.done = nil, nil
	s.latest = nil
	s.ready = nil
	s.mu.Unlock()

	if quit != nil {
		close(quit)
		<-done
	}
}

// Ready returns a channel closed once the first frame with non-zero
// dimensions has been buffered. Nil-safe default for a detached surface.
func (s *Surface) Ready() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready == nil {
		// Never ready while detached.
		return make(chan struct{})
	}
	return s.ready
}

// Dimensions reports the current live frame geometry, or zeros when the
// stream is not decoding yet. The detector overlay reads this.
func (s *Surface) Dimensions() (width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.latest == nil {
		return 0, 0
	}
	return s.latest.Width, s.latest.Height
}

// GrabFrame encodes the current frame as a JPEG still. Fails with
// StreamNotReady when no frame with non-zero dimensions has arrived.
func (s *Surface) GrabFrame() (Grab, error) {
	s.mu.Lock()
	frame := s.latest
	s.mu.Unlock()

	if frame == nil || frame.Width == 0 || frame.Height == 0 {
		return Grab{}, dErrors.New(dErrors.CodeStreamNotReady, "video stream has no decoded frames yet")
	}

	img := &image.NRGBA{
		Pix:    frame.Data,
		Stride: frame.Width * 4,
		Rect:   image.Rect(0, 0, frame.Width, frame.Height),
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: s.quality}); err != nil {
		return Grab{}, dErrors.Wrap(dErrors.CodeInternal, "encode still frame", err)
	}

	return Grab{JPEG: buf.Bytes(), Width: frame.Width, Height: frame.Height}, nil
}
