package utils

import (
	"context"
	"log"
	"time"

	"clinicbook/config"

	"github.com/go-redis/redis/v8"
)

// CacheClient is the generic cache client. Nil when Redis is not configured.
var CacheClient *redis.Client

// InitCache initializes the Redis cache client. The cache is optional: with no
// REDIS_ADDR configured the server runs without it.
func InitCache() {
	if config.AppConfig.RedisAddr == "" {
		log.Println("Redis not configured, availability cache disabled")
		return
	}
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := CacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Cache): %v", err)
	}
}

// GetCacheClient returns the generic cache client, which may be nil.
func GetCacheClient() *redis.Client {
	return CacheClient
}
