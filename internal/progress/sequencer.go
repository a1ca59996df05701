package progress

import (
	"context"
	"errors"
	"log/slog"

	id "verifid/pkg/domain"
	"verifid/pkg/requestcontext"
)

// Sequencer is the sole mutator of RegistrationProgress. It is constructed
// at flow entry and injected into the capture screens; nothing else writes
// progress.
type Sequencer struct {
	store  Store
	logger *slog.Logger
}

// NewSequencer builds a sequencer over the given store.
func NewSequencer(store Store, logger *slog.Logger) *Sequencer {
	return &Sequencer{store: store, logger: logger}
}

// Current returns the user's progress, or the flow entry cursor when none
// is recorded yet.
func (s *Sequencer) Current(ctx context.Context, userID id.UserID) (*RegistrationProgress, error) {
	p, err := s.store.Find(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return &RegistrationProgress{
			UserID:   userID,
			Step:     0,
			Phase:    PhaseIdentity,
			SubPhase: SubPhaseSelect,
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Advance records the completion of a capture stage. It overwrites rather
// than accumulates, so advancing the same stage twice is idempotent.
func (s *Sequencer) Advance(ctx context.Context, userID id.UserID, stage id.Stage) error {
	subPhase := SubPhaseComplete
	if next, ok := stage.Next(); ok {
		subPhase = next.String()
	}
	record := &RegistrationProgress{
		UserID:    userID,
		Step:      stage.Ordinal(),
		SubStep:   0,
		Phase:     PhaseIdentity,
		SubPhase:  subPhase,
		UpdatedAt: requestcontext.Now(ctx),
	}
	if err := s.store.Save(ctx, record); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "registration progress advanced",
		"user_id", userID.String(),
		"stage", stage.String(),
		"step", record.Step,
	)
	return nil
}

// Resume returns the stage the user should land on when re-entering the
// flow mid-way.
func (s *Sequencer) Resume(ctx context.Context, userID id.UserID) (id.Stage, bool, error) {
	p, err := s.Current(ctx, userID)
	if err != nil {
		return "", false, err
	}
	switch p.SubPhase {
	case SubPhaseSelect, SubPhaseFront, "":
		return id.StageFront, false, nil
	case SubPhaseBack:
		return id.StageBack, false, nil
	case SubPhaseSelfie:
		return id.StageSelfie, false, nil
	case SubPhaseComplete:
		return "", true, nil
	default:
		return id.StageFront, false, nil
	}
}
