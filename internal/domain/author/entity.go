package author

import (
	"strings"
	"time"
)

// Author 作者资料
// UserID即主键，与user.User.ID相同
// Pseudonym为nil表示没有笔名，展示时不回退到用户名
type Author struct {
	UserID    uint
	Pseudonym *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAuthor 创建作者资料
func NewAuthor(userID uint, pseudonym *string) *Author {
	now := time.Now()
	return &Author{
		UserID:    userID,
		Pseudonym: NormalizePseudonym(pseudonym),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SetPseudonym 修改笔名，空字符串清空为nil
func (a *Author) SetPseudonym(pseudonym *string) {
	a.Pseudonym = NormalizePseudonym(pseudonym)
	a.UpdatedAt = time.Now()
}

// NormalizePseudonym 空白笔名视为没有笔名
func NormalizePseudonym(pseudonym *string) *string {
	if pseudonym == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*pseudonym)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
