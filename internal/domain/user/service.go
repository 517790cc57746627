package user

import (
	"context"
	"errors"
	"unicode"

	apperrors "github.com/xiebiao/bookmarket/pkg/errors"
	"github.com/xiebiao/bookmarket/pkg/password"
)

// Service 用户领域服务
// 设计说明：
// 1. 密码哈希通过password.Hasher完成，算法由配置决定
// 2. 用户名/邮箱唯一性由数据库UNIQUE索引保证，Repository转换为业务错误
type Service interface {
	// Register 创建账号（不含作者资料，由应用层在同一事务中创建）
	Register(ctx context.Context, username, email, plainPassword string) (*User, error)

	// Authenticate 校验用户名密码
	// 用户不存在与密码错误返回同一个错误
	Authenticate(ctx context.Context, username, plainPassword string) (*User, error)

	// Get 根据ID获取用户
	Get(ctx context.Context, id uint) (*User, error)

	// Delete 删除账号
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo   Repository
	hasher password.Hasher
}

// NewService 创建用户服务
func NewService(repo Repository, hasher password.Hasher) Service {
	return &service{repo: repo, hasher: hasher}
}

// Register 用户注册
// 业务规则：密码8-64位，同时包含字母和数字
func (s *service) Register(ctx context.Context, username, email, plainPassword string) (*User, error) {
	if err := ValidatePasswordStrength(plainPassword); err != nil {
		return nil, err
	}

	hashed, err := s.hasher.Hash(plainPassword)
	if err != nil {
		return nil, apperrors.Wrap(err, "Internal server error.")
	}

	u := NewUser(username, email, hashed)
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

// Authenticate 用户登录
func (s *service) Authenticate(ctx context.Context, username, plainPassword string) (*User, error) {
	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if apperrors.HasCode(err, apperrors.ErrCodeUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.hasher.Verify(plainPassword, u.Password); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.Wrap(err, "Internal server error.")
	}

	return u, nil
}

func (s *service) Get(ctx context.Context, id uint) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// ValidatePasswordStrength 密码强度校验
// 规则：8-64位，必须包含字母和数字
func ValidatePasswordStrength(plain string) error {
	n := len([]rune(plain))
	if n < 8 || n > 64 {
		return apperrors.ErrWeakPassword
	}

	var hasLetter, hasDigit bool
	for _, r := range plain {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return apperrors.ErrWeakPassword
	}

	return nil
}
