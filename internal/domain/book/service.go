package book

import (
	"context"
)

// Service 图书领域服务接口
// 设计说明:
// 1. 所有针对单本图书的操作都限定在作者本人范围内
// 2. 非本人的图书与不存在的图书返回同一个ErrBookNotFound,不暴露图书是否存在
// 3. 事务、封面存储与事件发布由应用层编排
type Service interface {
	// Create 创建图书,AuthorID必须有效
	Create(ctx context.Context, book *Book) error

	// GetOwned 作者查看自己的图书
	GetOwned(ctx context.Context, authorID, id uint) (*Book, error)

	// ListByAuthor 作者的全部图书
	ListByAuthor(ctx context.Context, authorID uint) ([]*Book, error)

	// ListPublished 公开目录,与调用者身份无关
	ListPublished(ctx context.Context, filter Filter) ([]*Book, error)

	// Update 整体更新
	Update(ctx context.Context, authorID, id uint, changes Changes) error

	// Unpublish 下架(幂等)
	Unpublish(ctx context.Context, authorID, id uint) error

	// Delete 删除并返回被删除的图书(用于清理封面)
	// 需要在事务中调用,保证读取与删除针对同一行
	Delete(ctx context.Context, authorID, id uint) (*Book, error)

	// CountByAuthor 作者的图书数量
	CountByAuthor(ctx context.Context, authorID uint) (int64, error)
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, book *Book) error {
	if book.AuthorID == 0 {
		return ErrMissingAuthor
	}
	return s.repo.Create(ctx, book)
}

func (s *service) GetOwned(ctx context.Context, authorID, id uint) (*Book, error) {
	return s.repo.FindOwned(ctx, authorID, id)
}

func (s *service) ListByAuthor(ctx context.Context, authorID uint) ([]*Book, error) {
	return s.repo.ListByAuthor(ctx, authorID)
}

// ListPublished 价格区间为空时不查询数据库
func (s *service) ListPublished(ctx context.Context, filter Filter) ([]*Book, error) {
	if filter.EmptyRange() {
		return []*Book{}, nil
	}
	return s.repo.ListPublished(ctx, filter)
}

func (s *service) Update(ctx context.Context, authorID, id uint, changes Changes) error {
	return s.repo.UpdateOwned(ctx, authorID, id, changes)
}

func (s *service) Unpublish(ctx context.Context, authorID, id uint) error {
	return s.repo.UnpublishOwned(ctx, authorID, id)
}

func (s *service) Delete(ctx context.Context, authorID, id uint) (*Book, error) {
	book, err := s.repo.FindOwned(ctx, authorID, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.DeleteOwned(ctx, authorID, id); err != nil {
		return nil, err
	}
	return book, nil
}

func (s *service) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	return s.repo.CountByAuthor(ctx, authorID)
}
