package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync/atomic"
	"time"

	"github.com/fadilmartias/cold-mailer/internal/config"
	"github.com/redis/go-redis/v9"
)

// Redis is a JSON cache that degrades to a no-op when Redis is not configured
// or not reachable.
type Redis struct {
	client *redis.Client
	ttl    time.Duration

	warnedUnavailable atomic.Bool
}

func NewRedis(redisConfig *config.RedisConfig) *Redis {
	if redisConfig.URL == "" {
		log.Println("[Cache] REDIS_URL not set, caching disabled")
		return &Redis{ttl: redisConfig.TTL}
	}

	opts, err := redis.ParseURL(redisConfig.URL)
	if err != nil {
		log.Printf("[Cache] Invalid REDIS_URL, caching disabled: %v", err)
		return &Redis{ttl: redisConfig.TTL}
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("[Cache] Redis unavailable, bypassing cache: %v", err)
		_ = client.Close()
		return &Redis{ttl: redisConfig.TTL}
	}

	return &Redis{client: client, ttl: redisConfig.TTL}
}

func (r *Redis) isUnavailable() bool {
	return r == nil || r.client == nil
}

func (r *Redis) warnUnavailableOnce(err error) {
	if r.warnedUnavailable.CompareAndSwap(false, true) {
		log.Printf("[Cache] Redis unavailable, bypassing cache: %v", err)
	}
}

func (r *Redis) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	if r.isUnavailable() {
		return false, nil
	}
	b, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		r.warnUnavailableOnce(err)
		return false, err
	}
	if len(b) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON stores value under key; a non-positive ttl uses the configured default.
func (r *Redis) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if r.isUnavailable() {
		return nil
	}
	if ttl <= 0 {
		ttl = r.ttl
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, key, b, ttl).Err(); err != nil {
		r.warnUnavailableOnce(err)
		return err
	}
	return nil
}

func (r *Redis) Close() error {
	if r.isUnavailable() {
		return nil
	}
	return r.client.Close()
}
