package user

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/xiebiao/bookmarket/internal/domain/author"
	"github.com/xiebiao/bookmarket/internal/domain/book"
	"github.com/xiebiao/bookmarket/internal/domain/user"
	"github.com/xiebiao/bookmarket/internal/infrastructure/persistence/database"
	"github.com/xiebiao/bookmarket/pkg/jwt"
)

// ProfileUseCase 当前作者的资料：查看、修改笔名、删除账号
type ProfileUseCase struct {
	userService   user.Service
	authorService author.Service
	bookService   book.Service
	blacklist     user.TokenBlacklist
	txManager     *database.TxManager
}

// NewProfileUseCase 创建用例
func NewProfileUseCase(
	userService user.Service,
	authorService author.Service,
	bookService book.Service,
	blacklist user.TokenBlacklist,
	txManager *database.TxManager,
) *ProfileUseCase {
	return &ProfileUseCase{
		userService:   userService,
		authorService: authorService,
		bookService:   bookService,
		blacklist:     blacklist,
		txManager:     txManager,
	}
}

// Get 查看资料
func (uc *ProfileUseCase) Get(ctx context.Context, userID uint) (*ProfileResponse, error) {
	u, err := uc.userService.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	a, err := uc.authorService.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return newProfileResponse(u, a), nil
}

// SetPseudonym 设置笔名，nil或空字符串清空
func (uc *ProfileUseCase) SetPseudonym(ctx context.Context, userID uint, pseudonym *string) (*ProfileResponse, error) {
	u, err := uc.userService.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	a, err := uc.authorService.SetPseudonym(ctx, userID, pseudonym)
	if err != nil {
		return nil, err
	}
	return newProfileResponse(u, a), nil
}

// Delete 删除账号
// 仍有图书时拒绝（RESTRICT），数据库外键作为最后一道保证
// 删除成功后撤销本次请求的Access Token
func (uc *ProfileUseCase) Delete(ctx context.Context, access *jwt.Claims) error {
	userID := access.UserID
	err := uc.txManager.Transaction(ctx, func(ctx context.Context) error {
		count, err := uc.bookService.CountByAuthor(ctx, userID)
		if err != nil {
			return err
		}
		if count > 0 {
			return author.ErrAuthorHasBooks
		}

		if err := uc.authorService.Delete(ctx, userID); err != nil {
			return err
		}
		return uc.userService.Delete(ctx, userID)
	})
	if err != nil {
		return err
	}

	// 账号已删除，撤销失败只记录日志
	if err := uc.blacklist.Revoke(ctx, access.ID, access.RemainingTTL(time.Now())); err != nil {
		log.Ctx(ctx).Error().Err(err).Uint("user_id", userID).Msg("撤销已删除账号的Token失败")
	}
	return nil
}
