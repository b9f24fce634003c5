package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRedis implements the two commands the denylist issues.
type fakeRedis struct {
	redis.Cmdable
	ttl map[string]time.Duration
	err error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{ttl: make(map[string]time.Duration)}
}

func (f *fakeRedis) Set(_ context.Context, key string, _ interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	f.ttl[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Exists(_ context.Context, keys ...string) *redis.IntCmd {
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.ttl[k]; ok {
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func fixedNow() time.Time { return time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC) }

func TestTokenDenylist_RevokeUntilExpiry(t *testing.T) {
	rdb := newFakeRedis()
	d := NewTokenDenylist(rdb)
	d.now = fixedNow
	ctx := context.Background()

	require.NoError(t, d.Revoke(ctx, "jti-1", fixedNow().Add(90*time.Minute)))
	assert.Equal(t, 90*time.Minute, rdb.ttl["revoked:jti-1"])

	revoked, err := d.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = d.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestTokenDenylist_ExpiredTokenNeedsNoEntry(t *testing.T) {
	rdb := newFakeRedis()
	d := NewTokenDenylist(rdb)
	d.now = fixedNow

	require.NoError(t, d.Revoke(context.Background(), "old", fixedNow().Add(-time.Minute)))
	assert.Empty(t, rdb.ttl)
}

func TestTokenDenylist_ShortTTLIsRaised(t *testing.T) {
	rdb := newFakeRedis()
	d := NewTokenDenylist(rdb)
	d.now = fixedNow

	require.NoError(t, d.Revoke(context.Background(), "soon", fixedNow().Add(time.Millisecond)))
	assert.Equal(t, minRevocationTTL, rdb.ttl["revoked:soon"])
}

func TestTokenDenylist_Errors(t *testing.T) {
	boom := errors.New("connection refused")
	rdb := newFakeRedis()
	rdb.err = boom
	d := NewTokenDenylist(rdb)
	d.now = fixedNow

	assert.ErrorIs(t, d.Revoke(context.Background(), "x", fixedNow().Add(time.Hour)), boom)
	_, err := d.IsRevoked(context.Background(), "x")
	assert.ErrorIs(t, err, boom)
}
