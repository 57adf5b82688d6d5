// Package ratelimit throttles repeated requests of the same client at the REST boundary.
//
// TokenBucket keeps one golang.org/x/time/rate bucket per key in process memory.
// RedisFixedWindow counts requests per key and window slot in Redis, so several
// instances share one quota. A rejected request is a core.KindThrottled error.
package ratelimit
