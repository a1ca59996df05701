//go:build integration

package artifact_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"verifid/internal/artifact"
	id "verifid/pkg/domain"
	"verifid/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *artifact.RedisStore
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
	s.store = artifact.NewRedis(s.redis.Client)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func testArtifact(userID id.UserID, stage id.Stage) *artifact.CapturedArtifact {
	return &artifact.CapturedArtifact{
		ID:        id.NewArtifactID(),
		UserID:    userID,
		Stage:     stage,
		ImageData: "aGVsbG8=",
		Metadata: artifact.FileMetadata{
			Name:      "id_front_1700000000000.jpg",
			Size:      5,
			MimeType:  "image/jpeg",
			Timestamp: time.Now().UTC().Truncate(time.Millisecond),
		},
		Upload:    artifact.UploadResult{Status: artifact.UploadPending},
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
}

func (s *RedisStoreSuite) TestSaveAndFind() {
	ctx := context.Background()
	userID := id.UserID(uuid.New())
	want := testArtifact(userID, id.StageFront)

	s.Require().NoError(s.store.Save(ctx, want))

	got, err := s.store.Find(ctx, userID, id.StageFront)
	s.Require().NoError(err)
	s.Equal(want.ID, got.ID)
	s.Equal(want.ImageData, got.ImageData)
	s.Equal(want.Metadata, got.Metadata)
	s.Equal(want.Upload, got.Upload)
}

func (s *RedisStoreSuite) TestSaveSupersedes() {
	ctx := context.Background()
	userID := id.UserID(uuid.New())

	s.Require().NoError(s.store.Save(ctx, testArtifact(userID, id.StageFront)))

	retake := testArtifact(userID, id.StageFront)
	retake.Upload = artifact.UploadResult{Status: artifact.UploadSuccess, ServerID: "doc-7"}
	s.Require().NoError(s.store.Save(ctx, retake))

	got, err := s.store.Find(ctx, userID, id.StageFront)
	s.Require().NoError(err)
	s.Equal(retake.ID, got.ID)
	s.Equal(artifact.UploadSuccess, got.Upload.Status)
	s.Equal("doc-7", got.Upload.ServerID)
}

func (s *RedisStoreSuite) TestFindMissing() {
	_, err := s.store.Find(context.Background(), id.UserID(uuid.New()), id.StageBack)
	s.ErrorIs(err, artifact.ErrNotFound)
}

func (s *RedisStoreSuite) TestDelete() {
	ctx := context.Background()
	userID := id.UserID(uuid.New())
	s.Require().NoError(s.store.Save(ctx, testArtifact(userID, id.StageSelfie)))

	s.Require().NoError(s.store.Delete(ctx, userID, id.StageSelfie))

	_, err := s.store.Find(ctx, userID, id.StageSelfie)
	s.ErrorIs(err, artifact.ErrNotFound)
	s.NoError(s.store.Delete(ctx, userID, id.StageSelfie), "deleting a missing key is a no-op")
}

func (s *RedisStoreSuite) TestEntriesCarryTTL() {
	ctx := context.Background()
	userID := id.UserID(uuid.New())
	s.Require().NoError(s.store.Save(ctx, testArtifact(userID, id.StageFront)))

	keys, err := s.redis.Client.Keys(ctx, "capture:artifact:*").Result()
	s.Require().NoError(err)
	s.Require().Len(keys, 1)

	ttl, err := s.redis.Client.TTL(ctx, keys[0]).Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0), "artifacts must not live forever")
	s.LessOrEqual(ttl, 24*time.Hour)
}
