package surface

import (
	"bytes"
	"image/jpeg"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"verifid/internal/device"
	id "verifid/pkg/domain"
	dErrors "verifid/pkg/domain-errors"
)

// scriptedStream feeds pre-built frames to the surface under test.
type scriptedStream struct {
	frames chan device.Frame
}

func newScriptedStream() *scriptedStream {
	return &scriptedStream{frames: make(chan device.Frame, 8)}
}

func (s *scriptedStream) Frames() <-chan device.Frame { return s.frames }
func (s *scriptedStream) Facing() id.CameraFacing     { return id.FacingEnvironment }
func (s *scriptedStream) Stop() error                 { return nil }

func (s *scriptedStream) push(seq uint64, w, h int) {
	data := make([]byte, w*h*4)
	for i := range data {
		data[i] = byte(seq)
	}
	s.frames <- device.Frame{Seq: seq, Timestamp: time.Now(), Width: w, Height: h, Data: data}
}

func waitReady(t *testing.T, s *Surface) {
	t.Helper()
	select {
	case <-s.Ready():
	case <-time.After(time.Second):
		t.Fatal("surface never became ready")
	}
}

func TestGrabFrameBeforeFirstFrame(t *testing.T) {
	s := New()
	stream := newScriptedStream()
	s.Attach(stream)
	defer s.Detach()

	_, err := s.GrabFrame()
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeStreamNotReady))
}

func TestGrabFrameEncodesLatest(t *testing.T) {
	s := New()
	stream := newScriptedStream()
	s.Attach(stream)
	defer s.Detach()

	stream.push(1, 320, 240)
	waitReady(t, s)

	grab, err := s.GrabFrame()
	require.NoError(t, err)
	assert.Equal(t, 320, grab.Width)
	assert.Equal(t, 240, grab.Height)

	img, err := jpeg.Decode(bytes.NewReader(grab.JPEG))
	require.NoError(t, err)
	assert.Equal(t, 320, img.Bounds().Dx())
	assert.Equal(t, 240, img.Bounds().Dy())
}

func TestZeroDimensionFramesAreSkipped(t *testing.T) {
	s := New()
	stream := newScriptedStream()
	s.Attach(stream)
	defer s.Detach()

	// A zero-sized frame must not satisfy readiness.
	stream.frames <- device.Frame{Seq: 1}
	select {
	case <-s.Ready():
		t.Fatal("surface became ready on a zero-dimension frame")
	case <-time.After(50 * time.Millisecond):
	}

	stream.push(2, 64, 48)
	waitReady(t, s)
}

func TestGrabTracksMidStreamResize(t *testing.T) {
	s := New()
	stream := newScriptedStream()
	s.Attach(stream)
	defer s.Detach()

	stream.push(1, 320, 240)
	waitReady(t, s)

	stream.push(2, 640, 480)
	require.Eventually(t, func() bool {
		w, _ := s.Dimensions()
		return w == 640
	}, time.Second, 5*time.Millisecond)

	grab, err := s.GrabFrame()
	require.NoError(t, err)
	assert.Equal(t, 640, grab.Width)
	assert.Equal(t, 480, grab.Height)
}

func TestDetachClearsState(t *testing.T) {
	s := New()
	stream := newScriptedStream()
	s.Attach(stream)
	stream.push(1, 320, 240)
	waitReady(t, s)

	s.Detach()
	s.Detach() // repeat-safe

	w, h := s.Dimensions()
	assert.Zero(t, w)
	assert.Zero(t, h)

	_, err := s.GrabFrame()
	assert.True(t, dErrors.HasCode(err, dErrors.CodeStreamNotReady))

	// A detached surface is never ready.
	select {
	case <-s.Ready():
		t.Fatal("detached surface reported ready")
	case <-time.After(20 * time.Millisecond):
	}
}

func TestReattachResetsReadiness(t *testing.T) {
	s := New()
	first := newScriptedStream()
	s.Attach(first)
	first.push(1, 320, 240)
	waitReady(t, s)

	second := newScriptedStream()
	s.Attach(second)

	select {
	case <-s.Ready():
		t.Fatal("surface carried readiness across streams")
	case <-time.After(20 * time.Millisecond):
	}

	second.push(1, 640, 480)
	waitReady(t, s)
}
