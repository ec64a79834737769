package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/wizard"
)

const keyPrefix = "booking:session:"

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &RedisStore{client: client, ttl: ttl}
}

func sessionKey(id string) string {
	return keyPrefix + id
}

func submitKey(id string) string {
	return keyPrefix + id + ":submit"
}

func (s *RedisStore) Get(ctx context.Context, id string) (*wizard.Session, error) {
	raw, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, wizard.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("session: get %s: %w", id, err)
	}

	var sess wizard.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("session: decode %s: %w", id, err)
	}
	return &sess, nil
}

// Save writes the session and refreshes its expiry.
func (s *RedisStore) Save(ctx context.Context, sess *wizard.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("session: encode %s: %w", sess.ID, err)
	}
	if err := s.client.Set(ctx, sessionKey(sess.ID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("session: save %s: %w", sess.ID, err)
	}
	return nil
}

func (s *RedisStore) AcquireSubmit(ctx context.Context, id string) (bool, error) {
	ok, err := s.client.SetNX(ctx, submitKey(id), "1", wizard.SubmitLockTTL).Result()
	if err != nil {
		return false, fmt.Errorf("session: lock %s: %w", id, err)
	}
	return ok, nil
}

func (s *RedisStore) ReleaseSubmit(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, submitKey(id)).Err(); err != nil {
		return fmt.Errorf("session: unlock %s: %w", id, err)
	}
	return nil
}

var _ wizard.Store = (*RedisStore)(nil)
