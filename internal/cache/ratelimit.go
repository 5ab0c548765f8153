package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const rateLimitPrefix = "ratelimit:ip:"

// fixedWindowScript counts requests in a fixed window. The expiry is set
// only when the counter is created so the window does not slide.
var fixedWindowScript = redis.NewScript(`
	local count = redis.call('INCR', KEYS[1])
	if count == 1 then
		redis.call('PEXPIRE', KEYS[1], ARGV[1])
	end
	local ttl = redis.call('PTTL', KEYS[1])
	return {count, ttl}
`)

// RateLimitResult reports the outcome of a rate limit check.
type RateLimitResult struct {
	Allowed    bool
	Remaining  int64
	RetryAfter time.Duration
}

// CheckIPRateLimit counts a request against the caller's fixed window and
// reports whether it is allowed. The IP is hashed before use as a key.
func (c *Cache) CheckIPRateLimit(ctx context.Context, ip string, limit int, window time.Duration) (*RateLimitResult, error) {
	if limit <= 0 {
		return &RateLimitResult{Allowed: true}, nil
	}

	key := rateLimitPrefix + hashIP(ip)

	res, err := fixedWindowScript.Run(ctx, c.client, []string{key}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("rate limit script: %w", err)
	}
	if len(res) != 2 {
		return nil, fmt.Errorf("rate limit script: unexpected reply length %d", len(res))
	}

	count, ttl := res[0], res[1]
	result := &RateLimitResult{
		Allowed:   count <= int64(limit),
		Remaining: max(int64(limit)-count, 0),
	}
	if !result.Allowed && ttl > 0 {
		result.RetryAfter = time.Duration(ttl) * time.Millisecond
	}
	return result, nil
}

func hashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(sum[:8])
}
