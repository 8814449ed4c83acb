package utils

import (
	"context"
	"log"
	"time"

	"sevahub/config"

	"github.com/go-redis/redis/v8"
)

var (
	// AuthCacheClient holds OTP auth sessions.
	AuthCacheClient *redis.Client
	// SessionCacheClient holds in-progress booking sessions.
	SessionCacheClient *redis.Client
)

func newRedisClient(db int, name string) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (%s): %v", name, err)
	}
	return client
}

// InitAuthCache initializes the Redis client used for OTP auth sessions.
func InitAuthCache() {
	AuthCacheClient = newRedisClient(config.AppConfig.RedisAuthDB, "Auth Cache")
}

// GetAuthCacheClient returns the Redis client for auth sessions.
func GetAuthCacheClient() *redis.Client {
	if AuthCacheClient == nil {
		InitAuthCache()
	}
	return AuthCacheClient
}

// InitSessionCache initializes the Redis client used for booking sessions.
func InitSessionCache() {
	SessionCacheClient = newRedisClient(config.AppConfig.RedisSessionDB, "Session Cache")
}

// GetSessionCacheClient returns the Redis client for booking sessions.
func GetSessionCacheClient() *redis.Client {
	if SessionCacheClient == nil {
		InitSessionCache()
	}
	return SessionCacheClient
}
