package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "github.com/xiebiao/bookmarket/pkg/errors"
)

// Token类型，写入claims防止refresh token被当作access token使用
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

const issuer = "bookmarket"

// Manager JWT管理器
// 双Token机制：Access Token（短期）用于API鉴权，Refresh Token（长期）用于换取新的Access Token
type Manager struct {
	secret             string
	accessTokenExpire  time.Duration
	refreshTokenExpire time.Duration
}

// NewManager 创建JWT管理器
func NewManager(secret string, accessTokenExpire, refreshTokenExpire time.Duration) *Manager {
	return &Manager{
		secret:             secret,
		accessTokenExpire:  accessTokenExpire,
		refreshTokenExpire: refreshTokenExpire,
	}
}

// Claims 自定义JWT Claims
type Claims struct {
	UserID    uint   `json:"user_id"`
	Username  string `json:"username,omitempty"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenPair Token对
type TokenPair struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh"`
	ExpiresIn    int64  `json:"expires_in"` // Access Token过期时间（秒）
}

// GenerateToken 生成Token对
func (m *Manager) GenerateToken(userID uint, username string) (*TokenPair, error) {
	now := time.Now()

	access, err := m.sign(userID, username, TokenTypeAccess, now, m.accessTokenExpire)
	if err != nil {
		return nil, apperrors.Wrap(err, "生成Access Token失败")
	}

	// Refresh Token只包含UserID
	refresh, err := m.sign(userID, "", TokenTypeRefresh, now, m.refreshTokenExpire)
	if err != nil {
		return nil, apperrors.Wrap(err, "生成Refresh Token失败")
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(m.accessTokenExpire.Seconds()),
	}, nil
}

func (m *Manager) sign(userID uint, username, tokenType string, now time.Time, ttl time.Duration) (string, error) {
	claims := Claims{
		UserID:    userID,
		Username:  username,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   fmt.Sprintf("%d", userID),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(m.secret))
}

// ParseToken 解析并验证Token
// expectedType为空时不校验Token类型
func (m *Manager) ParseToken(tokenString, expectedType string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("非法的签名算法: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	}, jwt.WithIssuer(issuer))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}
	if expectedType != "" && claims.TokenType != expectedType {
		return nil, apperrors.ErrInvalidToken
	}

	return claims, nil
}

// RefreshAccessToken 使用Refresh Token换取新的Access Token
func (m *Manager) RefreshAccessToken(refreshToken string) (string, error) {
	claims, err := m.ParseToken(refreshToken, TokenTypeRefresh)
	if err != nil {
		return "", err
	}

	token, err := m.sign(claims.UserID, claims.Username, TokenTypeAccess, time.Now(), m.accessTokenExpire)
	if err != nil {
		return "", apperrors.Wrap(err, "刷新Token失败")
	}
	return token, nil
}

// RemainingTTL Token剩余有效期（用于黑名单过期时间）
func (c *Claims) RemainingTTL(now time.Time) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	ttl := c.ExpiresAt.Time.Sub(now)
	if ttl < 0 {
		return 0
	}
	return ttl
}
