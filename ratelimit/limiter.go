package ratelimit

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/AntonStoeckl/library-rentals-go/core"
)

// DefaultWindow and DefaultRequests allow one request per client every ten seconds.
const (
	DefaultWindow   = 10 * time.Second
	DefaultRequests = 1

	unknownKey = "unknown"
)

// ErrInvalidQuota is returned by constructors for a non-positive window or request count.
var ErrInvalidQuota = errors.New("rate limiter requires a positive window and request count")

// Limiter decides whether the client identified by key may proceed.
// A nil error admits the request, a rejection is a core.KindThrottled error.
type Limiter interface {
	Allow(ctx context.Context, key string) error
}

var (
	_ Limiter = (*TokenBucket)(nil)
	_ Limiter = (*RedisFixedWindow)(nil)
	_ Limiter = Unlimited{}
)

// Unlimited admits every request.
type Unlimited struct{}

// Allow always returns nil.
func (Unlimited) Allow(context.Context, string) error { return nil }

func normalizeKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return unknownKey
	}

	return key
}

func throttled(key string, requests int, window time.Duration) *core.Error {
	return core.NewError(core.KindThrottled, "client %s exceeded %d request(s) per %s", key, requests, window)
}
