package user

import (
	"context"
	"time"

	"sevahub/utils"

	"github.com/go-redis/redis/v8"
)

// RedisAuthSessionStore stores auth sessions in the auth Redis database.
type RedisAuthSessionStore struct {
	client *redis.Client
}

func NewRedisAuthSessionStore(client *redis.Client) *RedisAuthSessionStore {
	return &RedisAuthSessionStore{client: client}
}

func (r *RedisAuthSessionStore) Save(ctx context.Context, sessionID string, session utils.AuthSession, ttl time.Duration) error {
	return utils.SaveAuthSession(ctx, r.client, sessionID, session, ttl)
}

func (r *RedisAuthSessionStore) Get(ctx context.Context, sessionID string) (*utils.AuthSession, error) {
	return utils.GetAuthSession(ctx, r.client, sessionID)
}

func (r *RedisAuthSessionStore) IncrAttempts(ctx context.Context, sessionID string, ttl time.Duration) (int64, error) {
	return utils.IncrAuthAttempts(ctx, r.client, sessionID, ttl)
}

func (r *RedisAuthSessionStore) Delete(ctx context.Context, sessionID string) error {
	return utils.DeleteAuthSession(ctx, r.client, sessionID)
}
