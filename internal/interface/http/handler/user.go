package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	appuser "github.com/xiebiao/bookmarket/internal/application/user"
	"github.com/xiebiao/bookmarket/internal/interface/http/dto"
	"github.com/xiebiao/bookmarket/internal/interface/http/middleware"
	"github.com/xiebiao/bookmarket/pkg/response"
)

// UserHandler 作者账号与Token处理器
type UserHandler struct {
	registerUseCase *appuser.RegisterUseCase
	tokenUseCase    *appuser.ObtainTokenUseCase
	refreshUseCase  *appuser.RefreshTokenUseCase
	revokeUseCase   *appuser.RevokeTokenUseCase
	profileUseCase  *appuser.ProfileUseCase
}

// NewUserHandler 创建处理器
func NewUserHandler(
	registerUseCase *appuser.RegisterUseCase,
	tokenUseCase *appuser.ObtainTokenUseCase,
	refreshUseCase *appuser.RefreshTokenUseCase,
	revokeUseCase *appuser.RevokeTokenUseCase,
	profileUseCase *appuser.ProfileUseCase,
) *UserHandler {
	return &UserHandler{
		registerUseCase: registerUseCase,
		tokenUseCase:    tokenUseCase,
		refreshUseCase:  refreshUseCase,
		revokeUseCase:   revokeUseCase,
		profileUseCase:  profileUseCase,
	}
}

// Register 作者注册
// @Summary      作者注册
// @Description  同时创建账号与作者资料；密码8-64位，需同时包含字母和数字
// @Tags         作者
// @Accept       json
// @Produce      json,xml
// @Param        request body dto.RegisterRequest true "注册信息"
// @Success      201 {object} appuser.ProfileResponse
// @Failure      400 {object} apperrors.AppError "参数错误"
// @Failure      409 {object} apperrors.AppError "用户名或邮箱已存在"
// @Router       /api/v1/authors/register/ [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, dto.BindError(err))
		return
	}

	resp, err := h.registerUseCase.Execute(c.Request.Context(), appuser.RegisterRequest{
		Username:  req.Username,
		Email:     strings.TrimSpace(req.Email),
		Password:  req.Password,
		Pseudonym: req.Pseudonym,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, resp)
}

// ObtainToken 用户名密码换取Token对
// @Summary      获取Token
// @Tags         Token
// @Accept       json
// @Produce      json,xml
// @Param        request body dto.TokenRequest true "登录信息"
// @Success      200 {object} appuser.TokenResponse
// @Failure      400 {object} apperrors.AppError "参数错误"
// @Failure      401 {object} apperrors.AppError "No active account found with the given credentials"
// @Router       /api/v1/token/ [post]
func (h *UserHandler) ObtainToken(c *gin.Context) {
	var req dto.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, dto.BindError(err))
		return
	}

	resp, err := h.tokenUseCase.Execute(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, resp)
}

// RefreshToken Refresh Token换取新的Access Token
// @Summary      刷新Token
// @Tags         Token
// @Accept       json
// @Produce      json,xml
// @Param        request body dto.RefreshRequest true "Refresh Token"
// @Success      200 {object} appuser.AccessResponse
// @Failure      400 {object} apperrors.AppError "参数错误"
// @Failure      401 {object} apperrors.AppError "Token无效或已撤销"
// @Router       /api/v1/token/refresh/ [post]
func (h *UserHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, dto.BindError(err))
		return
	}

	resp, err := h.refreshUseCase.Execute(c.Request.Context(), req.Refresh)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, resp)
}

// RevokeToken 撤销当前Access Token
// @Summary      撤销Token
// @Description  当前Access Token加入黑名单直到过期；可同时提交自己的Refresh Token一并撤销
// @Tags         Token
// @Accept       json
// @Produce      json,xml
// @Security     BearerAuth
// @Param        request body dto.RevokeRequest false "可选的Refresh Token"
// @Success      200 {string} string "Token Revoked"
// @Failure      400 {object} apperrors.AppError "Refresh Token无效"
// @Failure      401 {object} apperrors.AppError "未登录"
// @Router       /api/v1/token/revoke/ [post]
func (h *UserHandler) RevokeToken(c *gin.Context) {
	var req dto.RevokeRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, dto.BindError(err))
			return
		}
	}

	err := h.revokeUseCase.Execute(c.Request.Context(), appuser.RevokeRequest{
		Access:       middleware.GetClaims(c),
		RefreshToken: req.Refresh,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Token Revoked")
}

// Profile 当前作者资料
// @Summary      我的资料
// @Tags         作者
// @Produce      json,xml
// @Security     BearerAuth
// @Success      200 {object} appuser.ProfileResponse
// @Failure      401 {object} apperrors.AppError "未登录"
// @Router       /api/v1/authors/me/ [get]
func (h *UserHandler) Profile(c *gin.Context) {
	resp, err := h.profileUseCase.Get(c.Request.Context(), middleware.MustGetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, resp)
}

// UpdateProfile 修改笔名
// @Summary      修改笔名
// @Description  pseudonym为null或空字符串时清空；不传则不修改
// @Tags         作者
// @Accept       json
// @Produce      json,xml
// @Security     BearerAuth
// @Param        request body dto.ProfilePatchRequest true "笔名"
// @Success      200 {object} appuser.ProfileResponse
// @Failure      400 {object} apperrors.AppError "参数错误"
// @Failure      401 {object} apperrors.AppError "未登录"
// @Router       /api/v1/authors/me/ [patch]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req dto.ProfilePatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, dto.BindError(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	userID := middleware.MustGetUserID(c)
	if !req.Pseudonym.Set {
		h.Profile(c)
		return
	}

	resp, err := h.profileUseCase.SetPseudonym(c.Request.Context(), userID, req.Pseudonym.Value)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, resp)
}

// DeleteAccount 注销账号
// @Summary      注销账号
// @Description  仍有图书时拒绝，需要先删除全部图书；成功后当前Access Token失效
// @Tags         作者
// @Produce      json,xml
// @Security     BearerAuth
// @Success      200 {string} string "Account Deleted"
// @Failure      401 {object} apperrors.AppError "未登录"
// @Failure      409 {object} apperrors.AppError "作者仍有图书"
// @Router       /api/v1/authors/me/ [delete]
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	if err := h.profileUseCase.Delete(c.Request.Context(), middleware.GetClaims(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Account Deleted")
}
