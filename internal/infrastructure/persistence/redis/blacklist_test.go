package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/bookmarket/pkg/errors"
)

// 需要真实Redis：BOOKMARKET_TEST_REDIS_ADDR=localhost:6379
func newTestClient(t *testing.T) *redis.Client {
	addr := os.Getenv("BOOKMARKET_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("未设置BOOKMARKET_TEST_REDIS_ADDR，跳过Redis测试")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(context.Background()).Err())
	return client
}

func TestTokenBlacklist_RevokeAndCheck(t *testing.T) {
	client := newTestClient(t)
	bl := NewTokenBlacklist(client)
	ctx := context.Background()
	jti := uuid.NewString()

	revoked, err := bl.IsRevoked(ctx, jti)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, bl.Revoke(ctx, jti, time.Minute))

	revoked, err = bl.IsRevoked(ctx, jti)
	require.NoError(t, err)
	assert.True(t, revoked)

	ttl, err := client.TTL(ctx, blacklistPrefix+jti).Result()
	require.NoError(t, err)
	assert.LessOrEqual(t, ttl, time.Minute)
}

func TestTokenBlacklist_ExpiredTokenSkipped(t *testing.T) {
	// ttl<=0时不访问Redis
	bl := &TokenBlacklist{client: redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})}
	assert.NoError(t, bl.Revoke(context.Background(), "jti", 0))
}

func TestTokenBlacklist_ConnectionError(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	defer client.Close()
	bl := NewTokenBlacklist(client)

	_, err := bl.IsRevoked(context.Background(), "jti")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeRedisError))
}
