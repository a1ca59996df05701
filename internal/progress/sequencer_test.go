package progress

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	id "verifid/pkg/domain"
	"verifid/pkg/requestcontext"
)

type SequencerSuite struct {
	suite.Suite
	ctx       context.Context
	now       time.Time
	store     *MemoryStore
	sequencer *Sequencer
	userID    id.UserID
}

func TestSequencerSuite(t *testing.T) {
	suite.Run(t, new(SequencerSuite))
}

func (s *SequencerSuite) SetupTest() {
	s.now = time.Date(2025, 6, 12, 10, 30, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
	s.store = NewMemoryStore()
	s.sequencer = NewSequencer(s.store, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.userID = id.UserID(uuid.New())
}

func (s *SequencerSuite) TestCurrentDefaultsToFlowEntry() {
	p, err := s.sequencer.Current(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Equal(0, p.Step)
	s.Equal(PhaseIdentity, p.Phase)
	s.Equal(SubPhaseSelect, p.SubPhase)
}

func (s *SequencerSuite) TestAdvanceFront() {
	s.Require().NoError(s.sequencer.Advance(s.ctx, s.userID, id.StageFront))

	p, err := s.sequencer.Current(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Equal(1, p.Step)
	s.Equal(SubPhaseBack, p.SubPhase)
	s.Equal(s.now, p.UpdatedAt)
}

func (s *SequencerSuite) TestAdvanceFinalStageCompletes() {
	s.Require().NoError(s.sequencer.Advance(s.ctx, s.userID, id.StageSelfie))

	p, err := s.sequencer.Current(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Equal(3, p.Step)
	s.Equal(SubPhaseComplete, p.SubPhase)
}

func (s *SequencerSuite) TestAdvanceIsIdempotent() {
	s.Require().NoError(s.sequencer.Advance(s.ctx, s.userID, id.StageBack))
	s.Require().NoError(s.sequencer.Advance(s.ctx, s.userID, id.StageBack))

	p, err := s.sequencer.Current(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Equal(2, p.Step)
	s.Equal(SubPhaseSelfie, p.SubPhase)
}

func (s *SequencerSuite) TestResumeFreshUserLandsOnFront() {
	stage, done, err := s.sequencer.Resume(s.ctx, s.userID)
	s.Require().NoError(err)
	s.False(done)
	s.Equal(id.StageFront, stage)
}

func (s *SequencerSuite) TestResumeMidFlow() {
	s.Require().NoError(s.sequencer.Advance(s.ctx, s.userID, id.StageFront))

	stage, done, err := s.sequencer.Resume(s.ctx, s.userID)
	s.Require().NoError(err)
	s.False(done)
	s.Equal(id.StageBack, stage)
}

func (s *SequencerSuite) TestResumeAfterCompletion() {
	s.Require().NoError(s.sequencer.Advance(s.ctx, s.userID, id.StageSelfie))

	_, done, err := s.sequencer.Resume(s.ctx, s.userID)
	s.Require().NoError(err)
	s.True(done)
}

func (s *SequencerSuite) TestResumeUnknownSubPhaseFallsBack() {
	s.Require().NoError(s.store.Save(s.ctx, &RegistrationProgress{
		UserID:   s.userID,
		Step:     1,
		Phase:    PhaseIdentity,
		SubPhase: "legacy_value",
	}))

	stage, done, err := s.sequencer.Resume(s.ctx, s.userID)
	s.Require().NoError(err)
	s.False(done)
	s.Equal(id.StageFront, stage)
}
