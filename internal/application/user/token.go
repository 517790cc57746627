package user

import (
	"context"
	"time"

	"github.com/xiebiao/bookmarket/internal/domain/user"
	apperrors "github.com/xiebiao/bookmarket/pkg/errors"
	"github.com/xiebiao/bookmarket/pkg/jwt"
)

// ObtainTokenUseCase 用户名密码换取Token对
type ObtainTokenUseCase struct {
	userService user.Service
	jwtManager  *jwt.Manager
}

// NewObtainTokenUseCase 创建用例
func NewObtainTokenUseCase(userService user.Service, jwtManager *jwt.Manager) *ObtainTokenUseCase {
	return &ObtainTokenUseCase{userService: userService, jwtManager: jwtManager}
}

// TokenResponse Token对
type TokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Execute 用户不存在与密码错误返回同一个错误
func (uc *ObtainTokenUseCase) Execute(ctx context.Context, username, password string) (*TokenResponse, error) {
	u, err := uc.userService.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}

	pair, err := uc.jwtManager.GenerateToken(u.ID, u.Username)
	if err != nil {
		return nil, err
	}

	return &TokenResponse{Access: pair.AccessToken, Refresh: pair.RefreshToken}, nil
}

// RefreshTokenUseCase Refresh Token换取新的Access Token
type RefreshTokenUseCase struct {
	userService user.Service
	jwtManager  *jwt.Manager
	blacklist   user.TokenBlacklist
}

// NewRefreshTokenUseCase 创建用例
func NewRefreshTokenUseCase(userService user.Service, jwtManager *jwt.Manager, blacklist user.TokenBlacklist) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{userService: userService, jwtManager: jwtManager, blacklist: blacklist}
}

// AccessResponse 新的Access Token
type AccessResponse struct {
	Access string `json:"access"`
}

// Execute 已撤销的Refresh Token与已删除账号的Token不能再使用
func (uc *RefreshTokenUseCase) Execute(ctx context.Context, refreshToken string) (*AccessResponse, error) {
	claims, err := uc.jwtManager.ParseToken(refreshToken, jwt.TokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	revoked, err := uc.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, apperrors.ErrInvalidToken
	}

	if _, err := uc.userService.Get(ctx, claims.UserID); err != nil {
		if apperrors.HasCode(err, apperrors.ErrCodeUserNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, err
	}

	access, err := uc.jwtManager.RefreshAccessToken(refreshToken)
	if err != nil {
		return nil, err
	}
	return &AccessResponse{Access: access}, nil
}

// RevokeTokenUseCase 撤销当前Access Token（可同时撤销Refresh Token）
type RevokeTokenUseCase struct {
	jwtManager *jwt.Manager
	blacklist  user.TokenBlacklist
}

// NewRevokeTokenUseCase 创建用例
func NewRevokeTokenUseCase(jwtManager *jwt.Manager, blacklist user.TokenBlacklist) *RevokeTokenUseCase {
	return &RevokeTokenUseCase{jwtManager: jwtManager, blacklist: blacklist}
}

// RevokeRequest 撤销请求
type RevokeRequest struct {
	Access       *jwt.Claims // 认证中间件解析出的Access Token
	RefreshToken string      // 可选
}

// Execute 黑名单记录的有效期等于Token剩余有效期
func (uc *RevokeTokenUseCase) Execute(ctx context.Context, req RevokeRequest) error {
	now := time.Now()

	if req.RefreshToken != "" {
		refresh, err := uc.jwtManager.ParseToken(req.RefreshToken, jwt.TokenTypeRefresh)
		if err != nil {
			return apperrors.FieldError("refresh", "Token is invalid or expired")
		}
		// 只能撤销自己的Refresh Token
		if refresh.UserID != req.Access.UserID {
			return apperrors.FieldError("refresh", "Token is invalid or expired")
		}
		if err := uc.blacklist.Revoke(ctx, refresh.ID, refresh.RemainingTTL(now)); err != nil {
			return err
		}
	}

	return uc.blacklist.Revoke(ctx, req.Access.ID, req.Access.RemainingTTL(now))
}
