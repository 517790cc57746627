package author

import (
	"context"
)

// Repository 作者资料仓储接口
type Repository interface {
	// Create 创建作者资料（与用户在同一事务中）
	Create(ctx context.Context, author *Author) error

	// FindByUserID 不存在时返回ErrAuthorNotFound
	FindByUserID(ctx context.Context, userID uint) (*Author, error)

	// UpdatePseudonym 修改笔名，nil写入NULL
	UpdatePseudonym(ctx context.Context, userID uint, pseudonym *string) error

	// Delete 删除作者资料
	// 仍有图书时由外键RESTRICT拒绝，返回ErrAuthorHasBooks
	Delete(ctx context.Context, userID uint) error
}
