package author

import (
	"context"
)

// Service 作者资料领域服务
type Service interface {
	// Create 为新注册的用户创建资料
	Create(ctx context.Context, userID uint, pseudonym *string) (*Author, error)

	// Get 获取资料
	Get(ctx context.Context, userID uint) (*Author, error)

	// SetPseudonym 设置或清空笔名
	SetPseudonym(ctx context.Context, userID uint, pseudonym *string) (*Author, error)

	// Delete 删除资料
	Delete(ctx context.Context, userID uint) error
}

type service struct {
	repo Repository
}

// NewService 创建作者资料服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, userID uint, pseudonym *string) (*Author, error) {
	a := NewAuthor(userID, pseudonym)
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) Get(ctx context.Context, userID uint) (*Author, error) {
	return s.repo.FindByUserID(ctx, userID)
}

func (s *service) SetPseudonym(ctx context.Context, userID uint, pseudonym *string) (*Author, error) {
	a, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	a.SetPseudonym(pseudonym)
	if err := s.repo.UpdatePseudonym(ctx, userID, a.Pseudonym); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) Delete(ctx context.Context, userID uint) error {
	return s.repo.Delete(ctx, userID)
}
