package user

import (
	"time"
)

// User 认证主体（账号）
// DDD设计说明：
// 1. 只保存登录凭据，公开展示信息（笔名）在author.Author中
// 2. 两者通过相同的ID关联，User.ID == Author.UserID
// 3. Password为哈希值（bcrypt或argon2id），注册后用户名与邮箱不可修改
type User struct {
	ID        uint
	Username  string
	Email     string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser 创建新用户（工厂方法）
// hashedPassword必须是哈希后的密码
func NewUser(username, email, hashedPassword string) *User {
	now := time.Now()
	return &User{
		Username:  username,
		Email:     email,
		Password:  hashedPassword,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
