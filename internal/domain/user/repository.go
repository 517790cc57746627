package user

import (
	"context"
)

// Repository 用户仓储接口
// 接口定义在domain层，实现在infrastructure/persistence/database
type Repository interface {
	// Create 创建用户
	// 用户名或邮箱已存在时返回ErrUsernameDuplicate/ErrEmailDuplicate
	Create(ctx context.Context, user *User) error

	// FindByID 不存在时返回ErrUserNotFound
	FindByID(ctx context.Context, id uint) (*User, error)

	// FindByUsername 不存在时返回ErrUserNotFound
	FindByUsername(ctx context.Context, username string) (*User, error)

	// Delete 物理删除
	Delete(ctx context.Context, id uint) error
}
