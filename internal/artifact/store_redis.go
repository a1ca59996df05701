package artifact

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	id "verifid/pkg/domain"
)

const (
	// Redis key prefix for per-stage artifacts.
	artifactKeyPrefix = "capture:artifact:"

	// Artifacts expire after a day; the onboarding flow is expected to be
	// completed well within that window.
	artifactTTL = 24 * time.Hour
)

// RedisStore is the Redis-backed artifact store used in distributed
// deployments so a reload on any instance restores the captured state.
type RedisStore struct {
	client *redis.Client
}

// NewRedis constructs a Redis-backed artifact store.
func NewRedis(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func artifactKey(userID id.UserID, stage id.Stage) string {
	return artifactKeyPrefix + userID.String() + ":" + stage.String()
}

func (s *RedisStore) Save(ctx context.Context, a *CapturedArtifact) error {
	if a == nil {
		return nil
	}
	payload, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal artifact: %w", err)
	}
	return s.client.Set(ctx, artifactKey(a.UserID, a.Stage), payload, artifactTTL).Err()
}

func (s *RedisStore) Find(ctx context.Context, userID id.UserID, stage id.Stage) (*CapturedArtifact, error) {
	payload, err := s.client.Get(ctx, artifactKey(userID, stage)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get artifact: %w", err)
	}
	var a CapturedArtifact
	if err := json.Unmarshal(payload, &a); err != nil {
		return nil, fmt.Errorf("unmarshal artifact: %w", err)
	}
	return &a, nil
}

func (s *RedisStore) Delete(ctx context.Context, userID id.UserID, stage id.Stage) error {
	return s.client.Del(ctx, artifactKey(userID, stage)).Err()
}
