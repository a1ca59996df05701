package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "verifid/pkg/domain-errors"
)

func TestParseStage(t *testing.T) {
	t.Run("accepts supported stages", func(t *testing.T) {
		for _, s := range []string{"front", "back", "selfie"} {
			stage, err := ParseStage(s)
			require.NoError(t, err)
			assert.True(t, stage.IsValid())
		}
	})

	t.Run("rejects empty and unknown values", func(t *testing.T) {
		for _, s := range []string{"", "passport", "FRONT"} {
			_, err := ParseStage(s)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		}
	})
}

func TestStageNavigation(t *testing.T) {
	next, ok := StageFront.Next()
	require.True(t, ok)
	assert.Equal(t, StageBack, next)

	next, ok = StageBack.Next()
	require.True(t, ok)
	assert.Equal(t, StageSelfie, next)

	// Selfie is terminal: the flow hands off to verification-complete.
	_, ok = StageSelfie.Next()
	assert.False(t, ok)
}

func TestStageOrdinalIsMonotonic(t *testing.T) {
	assert.Equal(t, 1, StageFront.Ordinal())
	assert.Equal(t, 2, StageBack.Ordinal())
	assert.Equal(t, 3, StageSelfie.Ordinal())
}

func TestPreferredFacing(t *testing.T) {
	assert.Equal(t, FacingEnvironment, StageFront.PreferredFacing())
	assert.Equal(t, FacingEnvironment, StageBack.PreferredFacing())
	assert.Equal(t, FacingUser, StageSelfie.PreferredFacing())
}

// FuzzParseStage verifies parsing never panics on arbitrary input and a
// parsed stage always round-trips.
func FuzzParseStage(f *testing.F) {
	f.Add("")
	f.Add("front")
	f.Add("selfie")
	f.Add("'; DROP TABLE documents;--")
	f.Add(string([]byte{0x00, 0x01}))

	f.Fuzz(func(t *testing.T, input string) {
		stage, err := ParseStage(input)
		if err == nil {
			roundTrip, err2 := ParseStage(stage.String())
			if err2 != nil {
				t.Errorf("valid stage failed round-trip: %v", err2)
			}
			if roundTrip != stage {
				t.Error("round-trip changed stage value")
			}
		}
	})
}
