package book

import (
	"time"

	"github.com/shopspring/decimal"
)

// Book 图书实体(聚合根)
// DDD设计说明:
// 1. 每本图书属于且只属于一个作者(AuthorID == author.Author.UserID)
// 2. 价格使用decimal.Decimal,对应数据库decimal(10,2),不经过浮点数
// 3. CoverImage为存储键(images/book-covers/...),空字符串表示没有封面
// 4. AuthorPseudonym只读,查询时从作者资料读取,不存储在图书表
type Book struct {
	ID              uint
	AuthorID        uint
	AuthorPseudonym *string
	Title           string
	Description     string
	Price           decimal.Decimal
	CoverImage      string
	Published       bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewBook 创建新图书(工厂方法)
func NewBook(authorID uint, title, description string, price decimal.Decimal, coverImage string, published bool) *Book {
	now := time.Now()
	return &Book{
		AuthorID:    authorID,
		Title:       title,
		Description: description,
		Price:       price,
		CoverImage:  coverImage,
		Published:   published,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// HasCover 是否有封面
func (b *Book) HasCover() bool {
	return b.CoverImage != ""
}

// IsOwnedBy 检查图书是否属于指定作者
func (b *Book) IsOwnedBy(authorID uint) bool {
	return b.AuthorID == authorID
}

// Changes 整体更新的字段
// Published与CoverImage为nil时保持原值
type Changes struct {
	Title       string
	Description string
	Price       decimal.Decimal
	Published   *bool
	CoverImage  *string
}

// Apply 将变更应用到实体(用于返回更新后的结果)
func (b *Book) Apply(ch Changes) {
	b.Title = ch.Title
	b.Description = ch.Description
	b.Price = ch.Price
	if ch.Published != nil {
		b.Published = *ch.Published
	}
	if ch.CoverImage != nil {
		b.CoverImage = *ch.CoverImage
	}
	b.UpdatedAt = time.Now()
}
