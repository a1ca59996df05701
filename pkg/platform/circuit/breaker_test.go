package circuit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBreakerStartsClosed(t *testing.T) {
	b := New("document-intake")
	assert.Equal(t, "document-intake", b.Name())
	assert.Equal(t, StateClosed, b.State())
	assert.False(t, b.IsOpen())
}

func TestOpensOnConsecutiveFailures(t *testing.T) {
	b := New("document-intake", WithFailureThreshold(3))

	for i := 0; i < 2; i++ {
		useFallback, change := b.RecordFailure()
		require.False(t, useFallback, "failure %d must not trip the breaker", i+1)
		require.False(t, change.Opened)
	}

	useFallback, change := b.RecordFailure()
	assert.True(t, useFallback)
	assert.True(t, change.Opened)
	assert.True(t, b.IsOpen())

	// Further failures while open report no transition.
	_, change = b.RecordFailure()
	assert.False(t, change.Opened)
}

func TestSuccessBeforeThresholdResetsStreak(t *testing.T) {
	b := New("document-intake", WithFailureThreshold(2))

	b.RecordFailure()
	b.RecordSuccess()
	b.RecordFailure()
	assert.False(t, b.IsOpen(), "a success in between breaks the failure streak")

	b.RecordFailure()
	assert.True(t, b.IsOpen())
}

func TestClosesAfterSuccessStreak(t *testing.T) {
	b := New("document-intake", WithFailureThreshold(1), WithSuccessThreshold(2))

	b.RecordFailure()
	require.True(t, b.IsOpen())

	usePrimary, change := b.RecordSuccess()
	assert.False(t, usePrimary)
	assert.False(t, change.Closed)

	usePrimary, change = b.RecordSuccess()
	assert.True(t, usePrimary)
	assert.True(t, change.Closed)
	assert.False(t, b.IsOpen())
}

func TestFailureWhileRecoveringResetsSuccessStreak(t *testing.T) {
	b := New("document-intake", WithFailureThreshold(1), WithSuccessThreshold(2))

	b.RecordFailure()
	b.RecordSuccess()
	b.RecordFailure() // recovery interrupted
	b.RecordSuccess()
	assert.True(t, b.IsOpen(), "the success streak must restart after an interruption")

	b.RecordSuccess()
	assert.False(t, b.IsOpen())
}

func TestAllowAdmitsProbeAfterCooldown(t *testing.T) {
	b := New("document-intake", WithFailureThreshold(1), WithCooldown(20*time.Millisecond))

	assert.True(t, b.Allow(), "closed breaker always allows")

	b.RecordFailure()
	require.True(t, b.IsOpen())
	assert.False(t, b.Allow(), "open breaker blocks inside the cooldown")

	time.Sleep(25 * time.Millisecond)
	assert.True(t, b.Allow(), "cooldown elapsed, one probe may pass")
	assert.False(t, b.Allow(), "only one probe per cooldown window")

	b.RecordSuccess()
	assert.False(t, b.IsOpen())
	assert.True(t, b.Allow())
}

func TestFailedProbeKeepsBreakerOpen(t *testing.T) {
	b := New("document-intake", WithFailureThreshold(1), WithCooldown(20*time.Millisecond))

	b.RecordFailure()
	time.Sleep(25 * time.Millisecond)
	require.True(t, b.Allow())

	b.RecordFailure()
	assert.True(t, b.IsOpen())
	assert.False(t, b.Allow(), "the next probe waits out another cooldown")
}

func TestResetForcesClosed(t *testing.T) {
	b := New("document-intake", WithFailureThreshold(1))

	b.RecordFailure()
	require.True(t, b.IsOpen())

	b.Reset()
	assert.Equal(t, StateClosed, b.State())
	assert.False(t, b.IsOpen())
}

func TestDefaultThresholds(t *testing.T) {
	b := New("document-intake")

	for i := 0; i < 4; i++ {
		b.RecordFailure()
	}
	assert.False(t, b.IsOpen())
	b.RecordFailure()
	assert.True(t, b.IsOpen(), "default failure threshold is five")

	b.RecordSuccess()
	assert.False(t, b.IsOpen(), "default success threshold is one")
}
