package ratelimit_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-rentals-go/core"
	"github.com/AntonStoeckl/library-rentals-go/ratelimit"
)

type manualClock struct {
	now time.Time
}

func (c *manualClock) Now() time.Time { return c.now }

func (c *manualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func Test_TokenBucket_RejectsSecondRequestWithinWindow(t *testing.T) {
	// arrange
	ctx := context.Background()
	clock := &manualClock{now: time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)}
	limiter, err := ratelimit.NewTokenBucket(ratelimit.DefaultRequests, ratelimit.DefaultWindow, ratelimit.WithNow(clock.Now))
	require.NoError(t, err)

	// act
	first := limiter.Allow(ctx, "10.0.0.1")
	second := limiter.Allow(ctx, "10.0.0.1")
	clock.Advance(ratelimit.DefaultWindow)
	afterWindow := limiter.Allow(ctx, "10.0.0.1")

	// assert
	assert.NoError(t, first)
	assert.ErrorIs(t, second, core.ErrThrottled)
	assert.Contains(t, second.Error(), "10.0.0.1")
	assert.NoError(t, afterWindow)
}

func Test_TokenBucket_KeysAreIndependent(t *testing.T) {
	// arrange
	ctx := context.Background()
	limiter, err := ratelimit.NewTokenBucket(1, time.Minute)
	require.NoError(t, err)

	// act + assert
	assert.NoError(t, limiter.Allow(ctx, "a"))
	assert.NoError(t, limiter.Allow(ctx, "b"))
	assert.ErrorIs(t, limiter.Allow(ctx, "a"), core.ErrThrottled)
}

func Test_TokenBucket_BlankKeysShareOneBucket(t *testing.T) {
	// arrange
	ctx := context.Background()
	limiter, err := ratelimit.NewTokenBucket(1, time.Minute)
	require.NoError(t, err)

	// act + assert
	assert.NoError(t, limiter.Allow(ctx, ""))
	assert.ErrorIs(t, limiter.Allow(ctx, "   "), core.ErrThrottled)
}

func Test_NewTokenBucket_RejectsInvalidQuota(t *testing.T) {
	_, err := ratelimit.NewTokenBucket(0, time.Second)
	assert.ErrorIs(t, err, ratelimit.ErrInvalidQuota)

	_, err = ratelimit.NewTokenBucket(1, 0)
	assert.ErrorIs(t, err, ratelimit.ErrInvalidQuota)
}

func Test_Unlimited_AdmitsEverything(t *testing.T) {
	for range 5 {
		assert.NoError(t, ratelimit.Unlimited{}.Allow(context.Background(), "x"))
	}
}

func Test_TokenBucket_DropsBucketsIdleForAWindow(t *testing.T) {
	// arrange
	ctx := context.Background()
	clock := &manualClock{now: time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)}
	limiter, err := ratelimit.NewTokenBucket(1, time.Minute, ratelimit.WithNow(clock.Now))
	require.NoError(t, err)

	require.NoError(t, limiter.Allow(ctx, "idle"))
	require.NoError(t, limiter.Allow(ctx, "busy"))
	clock.Advance(30 * time.Second)
	require.ErrorIs(t, limiter.Allow(ctx, "busy"), core.ErrThrottled)
	require.Equal(t, 2, limiter.Tracked())

	// act
	clock.Advance(30 * time.Second)
	err = limiter.Allow(ctx, "fresh")

	// assert
	assert.NoError(t, err)
	assert.Equal(t, 2, limiter.Tracked(), "only the idle bucket is dropped")
	assert.ErrorIs(t, limiter.Allow(ctx, "busy"), core.ErrThrottled, "the busy bucket keeps its state")
}
