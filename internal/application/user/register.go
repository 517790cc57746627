package user

import (
	"context"

	"github.com/xiebiao/bookmarket/internal/domain/author"
	"github.com/xiebiao/bookmarket/internal/domain/user"
	"github.com/xiebiao/bookmarket/internal/infrastructure/persistence/database"
)

// RegisterUseCase 作者注册用例
// 设计说明：
// 1. 账号（users）与作者资料（authors）在同一事务中创建
// 2. 任一步失败整体回滚，不会出现没有资料的账号
type RegisterUseCase struct {
	userService   user.Service
	authorService author.Service
	txManager     *database.TxManager
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(userService user.Service, authorService author.Service, txManager *database.TxManager) *RegisterUseCase {
	return &RegisterUseCase{
		userService:   userService,
		authorService: authorService,
		txManager:     txManager,
	}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username  string
	Email     string
	Password  string
	Pseudonym *string
}

// Execute 执行注册
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*ProfileResponse, error) {
	var resp *ProfileResponse

	err := uc.txManager.Transaction(ctx, func(ctx context.Context) error {
		u, err := uc.userService.Register(ctx, req.Username, req.Email, req.Password)
		if err != nil {
			return err
		}

		a, err := uc.authorService.Create(ctx, u.ID, req.Pseudonym)
		if err != nil {
			return err
		}

		resp = newProfileResponse(u, a)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// =========================================
// 应用层DTO
// =========================================

// ProfileResponse 账号与作者资料
// 说明：不返回密码字段
type ProfileResponse struct {
	ID        uint    `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Pseudonym *string `json:"pseudonym"`
}

func newProfileResponse(u *user.User, a *author.Author) *ProfileResponse {
	return &ProfileResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Pseudonym: a.Pseudonym,
	}
}
