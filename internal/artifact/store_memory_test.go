package artifact

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	id "verifid/pkg/domain"
	"verifid/pkg/platform/sentinel"
)

type MemoryStoreSuite struct {
	suite.Suite
	ctx    context.Context
	store  *MemoryStore
	userID id.UserID
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = NewMemoryStore()
	s.userID = id.UserID(uuid.New())
}

func (s *MemoryStoreSuite) artifact(stage id.Stage) *CapturedArtifact {
	return &CapturedArtifact{
		ID:        id.NewArtifactID(),
		UserID:    s.userID,
		Stage:     stage,
		ImageData: "aGVsbG8=",
		Metadata: FileMetadata{
			Name:      "id_front_1700000000000.jpg",
			Size:      5,
			MimeType:  "image/jpeg",
			Timestamp: time.Now().UTC().Truncate(time.Millisecond),
		},
		Upload:    UploadResult{Status: UploadPending},
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
}

func (s *MemoryStoreSuite) TestSaveAndFind() {
	want := s.artifact(id.StageFront)
	s.Require().NoError(s.store.Save(s.ctx, want))

	got, err := s.store.Find(s.ctx, s.userID, id.StageFront)
	s.Require().NoError(err)
	s.Equal(want, got)
}

func (s *MemoryStoreSuite) TestFindReturnsCopy() {
	saved := s.artifact(id.StageFront)
	s.Require().NoError(s.store.Save(s.ctx, saved))

	first, err := s.store.Find(s.ctx, s.userID, id.StageFront)
	s.Require().NoError(err)
	first.Upload.Status = UploadSuccess

	second, err := s.store.Find(s.ctx, s.userID, id.StageFront)
	s.Require().NoError(err)
	s.Equal(UploadPending, second.Upload.Status, "mutating a result must not leak into the store")
}

func (s *MemoryStoreSuite) TestSaveSupersedes() {
	s.Require().NoError(s.store.Save(s.ctx, s.artifact(id.StageFront)))

	retake := s.artifact(id.StageFront)
	retake.ImageData = "cmV0YWtl"
	s.Require().NoError(s.store.Save(s.ctx, retake))

	got, err := s.store.Find(s.ctx, s.userID, id.StageFront)
	s.Require().NoError(err)
	s.Equal(retake.ID, got.ID)
	s.Equal("cmV0YWtl", got.ImageData)
}

func (s *MemoryStoreSuite) TestStagesAreIndependent() {
	front := s.artifact(id.StageFront)
	back := s.artifact(id.StageBack)
	s.Require().NoError(s.store.Save(s.ctx, front))
	s.Require().NoError(s.store.Save(s.ctx, back))

	got, err := s.store.Find(s.ctx, s.userID, id.StageBack)
	s.Require().NoError(err)
	s.Equal(back.ID, got.ID)
}

func (s *MemoryStoreSuite) TestUsersAreIsolated() {
	s.Require().NoError(s.store.Save(s.ctx, s.artifact(id.StageFront)))

	_, err := s.store.Find(s.ctx, id.UserID(uuid.New()), id.StageFront)
	s.ErrorIs(err, ErrNotFound)
}

func (s *MemoryStoreSuite) TestFindMissing() {
	_, err := s.store.Find(s.ctx, s.userID, id.StageSelfie)
	s.ErrorIs(err, ErrNotFound)
	s.True(errors.Is(err, sentinel.ErrNotFound), "store errors wrap the shared sentinel")
}

func (s *MemoryStoreSuite) TestDelete() {
	s.Require().NoError(s.store.Save(s.ctx, s.artifact(id.StageFront)))
	s.Require().NoError(s.store.Delete(s.ctx, s.userID, id.StageFront))

	_, err := s.store.Find(s.ctx, s.userID, id.StageFront)
	s.ErrorIs(err, ErrNotFound)
}

func (s *MemoryStoreSuite) TestDeleteMissingIsNoop() {
	s.NoError(s.store.Delete(s.ctx, s.userID, id.StageBack))
}
