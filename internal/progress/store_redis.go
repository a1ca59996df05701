package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	id "verifid/pkg/domain"
)

// Redis key prefix for registration progress records.
const progressKeyPrefix = "registration:progress:"

// RedisStore is the Redis-backed progress store. Records do not expire;
// the registration cursor must survive long pauses in onboarding.
type RedisStore struct {
	client *redis.Client
}

// NewRedis constructs a Redis-backed progress store.
func NewRedis(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func progressKey(userID id.UserID) string {
	return progressKeyPrefix + userID.String()
}

func (s *RedisStore) Save(ctx context.Context, p *RegistrationProgress) error {
	if p == nil {
		return nil
	}
	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}
	return s.client.Set(ctx, progressKey(p.UserID), payload, 0).Err()
}

func (s *RedisStore) Find(ctx context.Context, userID id.UserID) (*RegistrationProgress, error) {
	payload, err := s.client.Get(ctx, progressKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get progress: %w", err)
	}
	var p RegistrationProgress
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf("unmarshal progress: %w", err)
	}
	return &p, nil
}
