package database

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookmarket/internal/domain/author"
	apperrors "github.com/xiebiao/bookmarket/pkg/errors"
)

// authorRepository 作者资料仓储实现
type authorRepository struct {
	db *gorm.DB
}

// NewAuthorRepository 创建作者资料仓储
func NewAuthorRepository(db *gorm.DB) author.Repository {
	return &authorRepository{db: db}
}

func (r *authorRepository) Create(ctx context.Context, a *author.Author) error {
	model := &AuthorModel{
		UserID:    a.UserID,
		Pseudonym: a.Pseudonym,
	}

	if err := getDB(ctx, r.db).Omit("Books").Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return apperrors.New(apperrors.ErrCodeDuplicateEntry, "Author profile already exists.")
		}
		return apperrors.WithCode(err, apperrors.ErrCodeDatabaseError, "Database error.")
	}

	a.CreatedAt = model.CreatedAt
	a.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *authorRepository) FindByUserID(ctx context.Context, userID uint) (*author.Author, error) {
	var model AuthorModel
	if err := getDB(ctx, r.db).Where("user_id = ?", userID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, apperrors.WithCode(err, apperrors.ErrCodeDatabaseError, "Database error.")
	}
	return toAuthorEntity(&model), nil
}

// UpdatePseudonym 使用map更新，nil写入NULL
func (r *authorRepository) UpdatePseudonym(ctx context.Context, userID uint, pseudonym *string) error {
	result := getDB(ctx, r.db).Model(&AuthorModel{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{"pseudonym": pseudonym})
	if result.Error != nil {
		return apperrors.WithCode(result.Error, apperrors.ErrCodeDatabaseError, "Database error.")
	}
	if result.RowsAffected == 0 {
		return author.ErrAuthorNotFound
	}
	return nil
}

// Delete 删除作者资料，外键RESTRICT失败时返回ErrAuthorHasBooks
func (r *authorRepository) Delete(ctx context.Context, userID uint) error {
	result := getDB(ctx, r.db).Where("user_id = ?", userID).Delete(&AuthorModel{})
	if result.Error != nil {
		if isForeignKeyError(result.Error) {
			return author.ErrAuthorHasBooks
		}
		return apperrors.WithCode(result.Error, apperrors.ErrCodeDatabaseError, "Database error.")
	}
	if result.RowsAffected == 0 {
		return author.ErrAuthorNotFound
	}
	return nil
}

func toAuthorEntity(model *AuthorModel) *author.Author {
	return &author.Author{
		UserID:    model.UserID,
		Pseudonym: model.Pseudonym,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
