package user

import (
	"context"
	"time"
)

// TokenBlacklist 已撤销Token(按jti记录)
// 记录在Token自然过期后自动失效
type TokenBlacklist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
