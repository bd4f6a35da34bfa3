// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package ratelimit

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
)

// fixedWindowScript increments the counter of KEYS[1] and starts its window
// on the first hit. It returns the count and the window's remaining
// milliseconds.
var fixedWindowScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
local ttl = redis.call("PTTL", KEYS[1])
if count == 1 or ttl < 0 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
  ttl = tonumber(ARGV[1])
end
return {count, ttl}
`)

// RedisLimiter is a fixed-window limiter whose counters live in Redis. The
// increment and the window start run in one Lua script, so concurrent
// requests never lose an increment.
type RedisLimiter struct {
	client redis.UniversalClient
	policy Policy
	prefix string
}

// NewRedisLimiter returns a RedisLimiter enforcing policy. Keys are stored
// as "<prefix>:<key>"; an empty prefix defaults to "rl".
func NewRedisLimiter(client redis.UniversalClient, policy Policy, prefix string) (*RedisLimiter, error) {
	if err := policy.validate(); err != nil {
		return nil, err
	}
	if prefix == "" {
		prefix = "rl"
	}
	return &RedisLimiter{
		client: client,
		policy: policy,
		prefix: prefix,
	}, nil
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	if l.client == nil {
		return Decision{}, fmt.Errorf("redis client is nil")
	}

	raw, err := fixedWindowScript.Run(
		ctx,
		l.client,
		[]string{l.prefix + ":" + key},
		l.policy.Window.Milliseconds(),
	).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("running rate limit script: %w", err)
	}

	values, ok := raw.([]interface{})
	if !ok || len(values) != 2 {
		return Decision{}, fmt.Errorf("unexpected redis script response %T", raw)
	}

	count, err := parseRedisInt64(values[0])
	if err != nil {
		return Decision{}, err
	}
	ttlMS, err := parseRedisInt64(values[1])
	if err != nil {
		return Decision{}, err
	}

	return decide(l.policy, int(count), time.Duration(ttlMS)*time.Millisecond), nil
}

func parseRedisInt64(v interface{}) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, fmt.Errorf("redis response overflows int64")
		}
		return int64(n), nil
	case int:
		return int64(n), nil
	default:
		return 0, fmt.Errorf("unexpected redis response type %T", v)
	}
}
