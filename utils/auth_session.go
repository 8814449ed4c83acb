package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	AuthSessionPrefix = "authSession:"
	attemptsSuffix    = ":attempts"
)

// AuthSession represents the progress of a phone login.
type AuthSession struct {
	Phone         string    `json:"phone"`
	OTPHash       string    `json:"otpHash"`
	Status        string    `json:"status"` // "pending", "verified"
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ErrAuthSessionNotFound is returned when the session expired or never existed.
var ErrAuthSessionNotFound = fmt.Errorf("auth session not found or expired")

// SaveAuthSession saves the authentication session in Redis with a TTL.
func SaveAuthSession(ctx context.Context, client *redis.Client, sessionID string, session AuthSession, ttl time.Duration) error {
	session.LastUpdatedAt = time.Now()
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal auth session: %w", err)
	}
	if err := client.Set(ctx, AuthSessionPrefix+sessionID, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save auth session: %w", err)
	}
	return nil
}

// GetAuthSession retrieves the authentication session from Redis.
func GetAuthSession(ctx context.Context, client *redis.Client, sessionID string) (*AuthSession, error) {
	data, err := client.Get(ctx, AuthSessionPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, ErrAuthSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load auth session: %w", err)
	}
	var session AuthSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal auth session: %w", err)
	}
	return &session, nil
}

// IncrAuthAttempts atomically counts one verification attempt against the session
// and returns the running total. The counter expires with ttl.
func IncrAuthAttempts(ctx context.Context, client *redis.Client, sessionID string, ttl time.Duration) (int64, error) {
	key := AuthSessionPrefix + sessionID + attemptsSuffix
	var incr *redis.IntCmd
	_, err := client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count auth attempt: %w", err)
	}
	return incr.Val(), nil
}

// DeleteAuthSession removes an authentication session from Redis. The attempt
// counter is left to expire so a guess already in flight cannot restart it.
func DeleteAuthSession(ctx context.Context, client *redis.Client, sessionID string) error {
	return client.Del(ctx, AuthSessionPrefix+sessionID).Err()
}
