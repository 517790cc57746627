package database

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookmarket/internal/domain/book"
	apperrors "github.com/xiebiao/bookmarket/pkg/errors"
)

// bookRepository 图书仓储实现
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 作者范围内的写操作统一走guardedMutation
// 3. 公开目录的筛选条件来自catalogPredicates
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// 默认排序:published DESC, id ASC
var bookOrder = clause.OrderBy{Columns: []clause.OrderByColumn{
	{Column: clause.Column{Table: "books", Name: "published"}, Desc: true},
	{Column: clause.Column{Table: "books", Name: "id"}},
}}

// Create 创建图书,作者不存在时外键失败
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := &BookModel{
		AuthorID:    b.AuthorID,
		Title:       b.Title,
		Description: b.Description,
		Price:       b.Price,
		CoverImage:  b.CoverImage,
		Published:   b.Published,
	}

	if err := getDB(ctx, r.db).Omit(clause.Associations).Create(model).Error; err != nil {
		if isForeignKeyError(err) {
			return apperrors.WithCode(err, book.ErrMissingAuthor.Code, book.ErrMissingAuthor.Message)
		}
		return apperrors.WithCode(err, apperrors.ErrCodeDatabaseError, "Database error.")
	}

	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt

	return nil
}

// FindOwned 按(id, author_id)查询,同时读取作者笔名
func (r *bookRepository) FindOwned(ctx context.Context, authorID, id uint) (*book.Book, error) {
	var model BookModel
	err := getDB(ctx, r.db).
		Preload("Author").
		Where("id = ? AND author_id = ?", id, authorID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.WithCode(err, apperrors.ErrCodeDatabaseError, "Database error.")
	}

	return toBookEntity(&model), nil
}

// ListByAuthor 作者的全部图书(任意发布状态)
func (r *bookRepository) ListByAuthor(ctx context.Context, authorID uint) ([]*book.Book, error) {
	var models []BookModel
	err := getDB(ctx, r.db).
		Preload("Author").
		Where("author_id = ?", authorID).
		Clauses(bookOrder).
		Find(&models).Error
	if err != nil {
		return nil, apperrors.WithCode(err, apperrors.ErrCodeDatabaseError, "Database error.")
	}

	return toBookEntities(models), nil
}

// ListPublished 公开目录
// Joins("Author")为LEFT JOIN,既用于笔名条件也填充笔名
func (r *bookRepository) ListPublished(ctx context.Context, filter book.Filter) ([]*book.Book, error) {
	query := getDB(ctx, r.db).
		Joins("Author").
		Where(clause.Eq{Column: clause.Column{Table: "books", Name: "published"}, Value: true})

	for _, p := range catalogPredicates {
		if expr, ok := p.build(filter); ok {
			query = query.Where(expr)
		}
	}

	var models []BookModel
	if err := query.Clauses(bookOrder).Find(&models).Error; err != nil {
		return nil, apperrors.WithCode(err, apperrors.ErrCodeDatabaseError, "Database error.")
	}

	return toBookEntities(models), nil
}

// UpdateOwned 整体更新;Published与CoverImage为nil时不修改
func (r *bookRepository) UpdateOwned(ctx context.Context, authorID, id uint, ch book.Changes) error {
	values := map[string]interface{}{
		"title":       ch.Title,
		"description": ch.Description,
		"price":       ch.Price,
	}
	if ch.Published != nil {
		values["published"] = *ch.Published
	}
	if ch.CoverImage != nil {
		values["cover_image"] = *ch.CoverImage
	}

	return r.guardedMutation(ctx, authorID, id, func(tx *gorm.DB) *gorm.DB {
		return tx.Updates(values)
	})
}

// UnpublishOwned 下架,重复调用同样成功
func (r *bookRepository) UnpublishOwned(ctx context.Context, authorID, id uint) error {
	return r.guardedMutation(ctx, authorID, id, func(tx *gorm.DB) *gorm.DB {
		return tx.Update("published", false)
	})
}

// DeleteOwned 物理删除
func (r *bookRepository) DeleteOwned(ctx context.Context, authorID, id uint) error {
	return r.guardedMutation(ctx, authorID, id, func(tx *gorm.DB) *gorm.DB {
		return tx.Delete(&BookModel{})
	})
}

// guardedMutation 在"id = ? AND author_id = ?"范围内执行一条语句
//
// 条件与修改在同一条SQL中,没有先查后改的竞争窗口。
// RowsAffected为0即视为不存在:不存在、不属于该作者、已删除三者不可区分。
// MySQL需要DSN中的clientFoundRows=true,值未变化的UPDATE也计入匹配行。
func (r *bookRepository) guardedMutation(ctx context.Context, authorID, id uint, mutate func(tx *gorm.DB) *gorm.DB) error {
	scoped := getDB(ctx, r.db).Model(&BookModel{}).Where("id = ? AND author_id = ?", id, authorID)

	result := mutate(scoped)
	if result.Error != nil {
		return apperrors.WithCode(result.Error, apperrors.ErrCodeDatabaseError, "Database error.")
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

// CountByAuthor 作者的图书数量
func (r *bookRepository) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	if err := getDB(ctx, r.db).Model(&BookModel{}).Where("author_id = ?", authorID).Count(&count).Error; err != nil {
		return 0, apperrors.WithCode(err, apperrors.ErrCodeDatabaseError, "Database error.")
	}
	return count, nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

func toBookEntity(model *BookModel) *book.Book {
	b := &book.Book{
		ID:          model.ID,
		AuthorID:    model.AuthorID,
		Title:       model.Title,
		Description: model.Description,
		Price:       model.Price,
		CoverImage:  model.CoverImage,
		Published:   model.Published,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
	if model.Author != nil {
		b.AuthorPseudonym = model.Author.Pseudonym
	}
	return b
}

func toBookEntities(models []BookModel) []*book.Book {
	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books
}
