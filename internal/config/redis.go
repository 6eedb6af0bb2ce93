package config

import (
	"os"
	"sync"
	"time"
)

type RedisConfig struct {
	URL string
	TTL time.Duration
}

var (
	redisConfig *RedisConfig
	redisOnce   sync.Once
)

// LoadRedisConfig returns an empty URL when caching is not configured.
func LoadRedisConfig() *RedisConfig {
	redisOnce.Do(func() {
		redisConfig = &RedisConfig{
			URL: os.Getenv("REDIS_URL"),
			TTL: getEnvDuration("REDIS_TTL", 24*time.Hour),
		}
	})
	return redisConfig
}
