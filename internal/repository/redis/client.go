package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Connect dials Redis and pings it. It returns nil when Redis is unreachable;
// the server then runs without it.
func Connect(ctx context.Context, addr, password string, log *zap.SugaredLogger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warnw("could not connect to redis, rate limiting disabled", "addr", addr, "error", err)
		client.Close()
		return nil
	}

	log.Infow("connected to redis", "addr", addr)
	return client
}

// RateLimiter is a fixed-window counter keyed per client.
type RateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	prefix string
}

func NewRateLimiter(client *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		client: client,
		limit:  limit,
		window: window,
		prefix: "c4:ratelimit:",
	}
}

// Allow counts one request for key and reports whether it is within the limit.
func (rl *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	windowStart := time.Now().Truncate(rl.window).Unix()
	redisKey := fmt.Sprintf("%s%s:%d", rl.prefix, key, windowStart)

	pipe := rl.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, rl.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	return incr.Val() <= int64(rl.limit), nil
}
