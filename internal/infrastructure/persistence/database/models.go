package database

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserModel GORM用户模型（认证主体）
// 设计说明：
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/user/entity.go是领域实体，不依赖GORM
// 3. 账号删除为物理删除，用户名/邮箱的唯一索引不受软删除干扰
type UserModel struct {
	ID        uint         `gorm:"primaryKey"`
	Username  string       `gorm:"uniqueIndex;size:150;not null;comment:用户名"`
	Email     string       `gorm:"uniqueIndex;size:254;not null;comment:邮箱"`
	Password  string       `gorm:"size:255;not null;comment:密码哈希（bcrypt/argon2id）"`
	Author    *AuthorModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time    `gorm:"comment:创建时间"`
	UpdatedAt time.Time    `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// AuthorModel GORM作者资料模型
// 主键即users.id；仍有图书时外键RESTRICT阻止删除
type AuthorModel struct {
	UserID    uint        `gorm:"primaryKey;autoIncrement:false;comment:用户ID"`
	Pseudonym *string     `gorm:"size:255;comment:笔名（NULL表示没有）"`
	Books     []BookModel `gorm:"foreignKey:AuthorID;references:UserID;constraint:OnDelete:RESTRICT"`
	CreatedAt time.Time   `gorm:"comment:创建时间"`
	UpdatedAt time.Time   `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (AuthorModel) TableName() string {
	return "authors"
}

// BookModel GORM图书模型
// 设计说明:
// 1. 价格为decimal(10,2),Go侧使用decimal.Decimal
// 2. Author只用于查询时读取笔名,写入时忽略关联
// 3. 复合索引idx_catalog对应目录的默认排序(published DESC, id ASC)
// 4. Published不设数据库默认值,否则GORM插入false时会被默认值覆盖
type BookModel struct {
	ID          uint            `gorm:"primaryKey;index:idx_catalog,priority:2"`
	AuthorID    uint            `gorm:"index;not null;comment:作者ID"`
	Author      *AuthorModel    `gorm:"foreignKey:AuthorID;references:UserID"`
	Title       string          `gorm:"index;size:255;not null;comment:书名"`
	Description string          `gorm:"type:text;not null;comment:图书描述"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null;comment:价格"`
	CoverImage  string          `gorm:"size:500;not null;default:'';comment:封面存储键"`
	Published   bool            `gorm:"not null;index:idx_catalog,priority:1;comment:是否发布"`
	CreatedAt   time.Time       `gorm:"comment:创建时间"`
	UpdatedAt   time.Time       `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}
