//go:build integration

package progress_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"verifid/internal/progress"
	id "verifid/pkg/domain"
	"verifid/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *progress.RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.redis = mgr.GetRedis(s.T())
	s.store = progress.NewRedis(s.redis.Client)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisStoreSuite) TestSaveAndFind() {
	ctx := context.Background()
	userID := id.UserID(uuid.New())
	want := &progress.RegistrationProgress{
		UserID:    userID,
		Step:      2,
		Phase:     progress.PhaseIdentity,
		SubPhase:  progress.SubPhaseSelfie,
		UpdatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}

	s.Require().NoError(s.store.Save(ctx, want))

	got, err := s.store.Find(ctx, userID)
	s.Require().NoError(err)
	s.Equal(want, got)
}

func (s *RedisStoreSuite) TestSaveOverwrites() {
	ctx := context.Background()
	userID := id.UserID(uuid.New())

	s.Require().NoError(s.store.Save(ctx, &progress.RegistrationProgress{
		UserID: userID, Step: 1, Phase: progress.PhaseIdentity, SubPhase: progress.SubPhaseBack,
	}))
	s.Require().NoError(s.store.Save(ctx, &progress.RegistrationProgress{
		UserID: userID, Step: 2, Phase: progress.PhaseIdentity, SubPhase: progress.SubPhaseSelfie,
	}))

	got, err := s.store.Find(ctx, userID)
	s.Require().NoError(err)
	s.Equal(2, got.Step)
	s.Equal(progress.SubPhaseSelfie, got.SubPhase)
}

func (s *RedisStoreSuite) TestFindMissing() {
	_, err := s.store.Find(context.Background(), id.UserID(uuid.New()))
	s.ErrorIs(err, progress.ErrNotFound)
}

func (s *RedisStoreSuite) TestRecordsDoNotExpire() {
	ctx := context.Background()
	userID := id.UserID(uuid.New())
	s.Require().NoError(s.store.Save(ctx, &progress.RegistrationProgress{
		UserID: userID, Phase: progress.PhaseIdentity, SubPhase: progress.SubPhaseSelect,
	}))

	keys, err := s.redis.Client.Keys(ctx, "registration:progress:*").Result()
	s.Require().NoError(err)
	s.Require().Len(keys, 1)

	ttl, err := s.redis.Client.TTL(ctx, keys[0]).Result()
	s.Require().NoError(err)
	s.Equal(time.Duration(-1), ttl, "the registration cursor must survive long pauses")
}
