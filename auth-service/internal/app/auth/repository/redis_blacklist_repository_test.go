package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupBlacklist(t *testing.T) (*miniredis.Miniredis, TokenBlacklist) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewRedisBlacklistRepository(client)
}

func TestRedisBlacklist_AddAndCheck(t *testing.T) {
	ctx := context.Background()
	mr, blacklist := setupBlacklist(t)

	err := blacklist.AddToBlacklist(ctx, "token-a", time.Now().Add(10*time.Minute))
	require.NoError(t, err)

	revoked, err := blacklist.IsBlacklisted(ctx, "token-a")
	require.NoError(t, err)
	assert.True(t, revoked)

	other, err := blacklist.IsBlacklisted(ctx, "token-b")
	require.NoError(t, err)
	assert.False(t, other)

	assert.True(t, mr.Exists("blacklist:token-a"))
	ttl := mr.TTL("blacklist:token-a")
	assert.Greater(t, ttl, 9*time.Minute)
	assert.LessOrEqual(t, ttl, 10*time.Minute)
}

func TestRedisBlacklist_ExpiresWithToken(t *testing.T) {
	ctx := context.Background()
	mr, blacklist := setupBlacklist(t)
	require.NoError(t, blacklist.AddToBlacklist(ctx, "token-a", time.Now().Add(time.Minute)))

	mr.FastForward(2 * time.Minute)

	revoked, err := blacklist.IsBlacklisted(ctx, "token-a")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRedisBlacklist_AlreadyExpiredTokenIsNotStored(t *testing.T) {
	ctx := context.Background()
	mr, blacklist := setupBlacklist(t)

	err := blacklist.AddToBlacklist(ctx, "token-a", time.Now().Add(-time.Second))

	require.NoError(t, err)
	assert.False(t, mr.Exists("blacklist:token-a"))
}

func TestRedisBlacklist_RedisUnavailable(t *testing.T) {
	ctx := context.Background()
	mr, blacklist := setupBlacklist(t)
	mr.Close()

	_, err := blacklist.IsBlacklisted(ctx, "token-a")

	assert.Error(t, err)
}
