package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/bookmarket/internal/domain/user"
	apperrors "github.com/xiebiao/bookmarket/pkg/errors"
)

const blacklistPrefix = "bookmarket:blacklist:"

// TokenBlacklist 基于Redis的Token黑名单
// Key设计：bookmarket:blacklist:{jti}，TTL等于Token剩余有效期
type TokenBlacklist struct {
	client redis.Cmdable
}

// NewTokenBlacklist 创建Token黑名单
func NewTokenBlacklist(client *redis.Client) *TokenBlacklist {
	return &TokenBlacklist{client: client}
}

var _ user.TokenBlacklist = (*TokenBlacklist)(nil)

// Revoke 将Token加入黑名单
// ttl<=0说明Token已过期，无需记录
func (b *TokenBlacklist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := b.client.Set(ctx, blacklistPrefix+tokenID, "revoked", ttl).Err(); err != nil {
		return apperrors.WithCode(err, apperrors.ErrCodeRedisError, "Cache service error.")
	}
	return nil
}

// IsRevoked 检查Token是否已撤销
func (b *TokenBlacklist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	exists, err := b.client.Exists(ctx, blacklistPrefix+tokenID).Result()
	if err != nil {
		return false, apperrors.WithCode(err, apperrors.ErrCodeRedisError, "Cache service error.")
	}
	return exists > 0, nil
}
