package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
//
// 带Owned后缀的方法都以(id, authorID)同时作为条件,
// 不存在与不属于该作者无法区分,统一返回ErrBookNotFound。
type Repository interface {
	// Create 创建图书
	// 作者不存在(外键失败)时返回ErrMissingAuthor
	Create(ctx context.Context, book *Book) error

	// FindOwned 查询作者自己的图书(任意发布状态)
	FindOwned(ctx context.Context, authorID, id uint) (*Book, error)

	// ListByAuthor 作者的全部图书
	ListByAuthor(ctx context.Context, authorID uint) ([]*Book, error)

	// ListPublished 公开目录:已发布图书按Filter筛选
	ListPublished(ctx context.Context, filter Filter) ([]*Book, error)

	// UpdateOwned 单条条件UPDATE,未命中返回ErrBookNotFound
	UpdateOwned(ctx context.Context, authorID, id uint, changes Changes) error

	// UnpublishOwned 单条条件UPDATE published=false(幂等)
	UnpublishOwned(ctx context.Context, authorID, id uint) error

	// DeleteOwned 单条条件DELETE(物理删除)
	DeleteOwned(ctx context.Context, authorID, id uint) error

	// CountByAuthor 作者的图书数量(删除账号前检查)
	CountByAuthor(ctx context.Context, authorID uint) (int64, error)
}
