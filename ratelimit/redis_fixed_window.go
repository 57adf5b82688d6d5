package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "library:ratelimit"

var fixedWindowScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// RedisFixedWindow is a Limiter shared by all instances that use the same Redis.
// Redis failures reject the request.
type RedisFixedWindow struct {
	client   redis.Scripter
	prefix   string
	requests int
	window   time.Duration
	now      func() time.Time
}

// RedisOption configures a RedisFixedWindow.
type RedisOption func(*RedisFixedWindow)

// WithPrefix sets the key prefix, defaults to "library:ratelimit".
func WithPrefix(prefix string) RedisOption {
	return func(l *RedisFixedWindow) {
		if prefix = strings.TrimSpace(prefix); prefix != "" {
			l.prefix = prefix
		}
	}
}

// WithRedisNow sets the time source used to pick the window slot.
func WithRedisNow(now func() time.Time) RedisOption {
	return func(l *RedisFixedWindow) {
		l.now = now
	}
}

// NewRedisFixedWindow creates a RedisFixedWindow admitting requests per window for each key.
func NewRedisFixedWindow(client redis.Scripter, requests int, window time.Duration, opts ...RedisOption) (*RedisFixedWindow, error) {
	if requests <= 0 || window.Milliseconds() <= 0 {
		return nil, ErrInvalidQuota
	}

	l := &RedisFixedWindow{
		client:   client,
		prefix:   defaultRedisPrefix,
		requests: requests,
		window:   window,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l, nil
}

// Allow counts the request in the current window slot of key.
func (l *RedisFixedWindow) Allow(ctx context.Context, key string) error {
	key = normalizeKey(key)
	windowMs := l.window.Milliseconds()
	slot := l.now().UTC().UnixMilli() / windowMs
	redisKey := fmt.Sprintf("%s:%s:%d", l.prefix, key, slot)

	count, err := fixedWindowScript.Run(ctx, l.client, []string{redisKey}, windowMs).Int64()
	if err != nil {
		rejected := throttled(key, l.requests, l.window)
		rejected.Message = "rate limiter unavailable: " + err.Error()
		rejected.Err = err

		return rejected
	}

	if count > int64(l.requests) {
		return throttled(key, l.requests, l.window)
	}

	return nil
}
