package credit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"loans/internal/loans/models"
	"loans/pkg/platform/sentinel"
)

const defaultKeyPrefix = "loans:score:"

// RedisStore keeps results in Redis so a score computed by one worker can be
// read by another. Entries expire after ttl.
type RedisStore struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

type RedisStoreOption func(*RedisStore)

func WithKeyPrefix(prefix string) RedisStoreOption {
	return func(s *RedisStore) {
		s.prefix = prefix
	}
}

func NewRedisStore(client redis.Cmdable, ttl time.Duration, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{
		client: client,
		prefix: defaultKeyPrefix,
		ttl:    ttl,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) Save(ctx context.Context, key string, result models.CreditScoreResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal score result: %w", err)
	}
	if err := s.client.Set(ctx, s.prefix+key, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set score: %w", err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, key string) (models.CreditScoreResult, error) {
	payload, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.CreditScoreResult{}, sentinel.ErrNotFound
	}
	if err != nil {
		return models.CreditScoreResult{}, fmt.Errorf("redis get score: %w", err)
	}

	var result models.CreditScoreResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return models.CreditScoreResult{}, fmt.Errorf("unmarshal score result: %w", err)
	}
	return result, nil
}
