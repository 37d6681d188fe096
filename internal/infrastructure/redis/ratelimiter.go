package redis

import (
	"context"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/baechuer/real-time-ressys/services/user-service/internal/domain"
)

// fixedWindowScript counts hits per key and stamps the window TTL on the
// first hit. Runs as a script so count and expiry stay atomic.
var fixedWindowScript = goredis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
return {count, ttl}
`)

// FixedWindowLimiter is a per-key fixed window counter backed by Redis.
// All callers sharing the key share the budget.
type FixedWindowLimiter struct {
	client *Client
	limit  int
	window time.Duration
}

func NewFixedWindowLimiter(client *Client, limit int, window time.Duration) *FixedWindowLimiter {
	if limit <= 0 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &FixedWindowLimiter{client: client, limit: limit, window: window}
}

// Allow records one hit against key. A nil error with allowed=false means
// the budget is spent; retryAfter tells the caller when the window resets.
// Redis being down degrades open so an outage never locks everyone out.
func (l *FixedWindowLimiter) Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return false, 0, domain.ErrMissingField("key")
	}

	res, err := fixedWindowScript.Run(ctx, l.client.rdb, []string{"rl:" + key}, l.window.Milliseconds()).Slice()
	if err != nil || len(res) != 2 {
		return true, 0, nil
	}

	count, _ := res[0].(int64)
	ttlMs, _ := res[1].(int64)
	if count > int64(l.limit) {
		if ttlMs <= 0 {
			ttlMs = l.window.Milliseconds()
		}
		return false, time.Duration(ttlMs) * time.Millisecond, nil
	}
	return true, 0, nil
}
