// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package ratelimit

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisLimiterForTest(t *testing.T, policy Policy) (*miniredis.Miniredis, *RedisLimiter) {
	t.Helper()
	m := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	l, err := NewRedisLimiter(client, policy, "rl_test")
	require.NoError(t, err)
	return m, l
}

func TestRedisLimiter_AllowDenyAndReset(t *testing.T) {
	m, l := newRedisLimiterForTest(t, Policy{Limit: 2, Window: time.Minute})
	ctx := context.Background()

	d, err := l.Allow(ctx, "k")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, 1, d.Remaining)

	d, err = l.Allow(ctx, "k")
	require.NoError(t, err)
	assert.True(t, d.Allowed)

	d, err = l.Allow(ctx, "k")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Greater(t, d.RetryAfter, time.Duration(0))
	assert.LessOrEqual(t, d.RetryAfter, time.Minute)

	assert.True(t, m.Exists("rl_test:k"))

	m.FastForward(time.Minute)

	d, err = l.Allow(ctx, "k")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestRedisLimiter_ConcurrentRequestsNeverLoseIncrements(t *testing.T) {
	m, l := newRedisLimiterForTest(t, Policy{Limit: 1000, Window: time.Minute})

	var wg sync.WaitGroup
	for range 40 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := l.Allow(context.Background(), "shared")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	v, err := m.Get("rl_test:shared")
	require.NoError(t, err)
	assert.Equal(t, "40", v)
}

func TestRedisLimiter_Errors(t *testing.T) {
	_, err := NewRedisLimiter(nil, Policy{}, "")
	assert.ErrorIs(t, err, ErrInvalidPolicy)

	l, err := NewRedisLimiter(nil, Policy{Limit: 1, Window: time.Second}, "")
	require.NoError(t, err)
	_, err = l.Allow(context.Background(), "k")
	assert.Error(t, err)

	m, l := newRedisLimiterForTest(t, Policy{Limit: 1, Window: time.Second})
	m.Close()
	_, err = l.Allow(context.Background(), "k")
	assert.Error(t, err)
}

func TestParseRedisInt64(t *testing.T) {
	v, err := parseRedisInt64(int64(4))
	require.NoError(t, err)
	assert.Equal(t, int64(4), v)

	v, err = parseRedisInt64(3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), v)

	_, err = parseRedisInt64(uint64(math.MaxUint64))
	assert.Error(t, err)

	_, err = parseRedisInt64("1")
	assert.Error(t, err)
}
