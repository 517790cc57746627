package database

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookmarket/internal/domain/user"
	apperrors "github.com/xiebiao/bookmarket/pkg/errors"
)

// userRepository 用户仓储实现
// 1. 实现domain/user/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 唯一索引冲突转换为业务错误
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储
func NewUserRepository(db *gorm.DB) user.Repository {
	return &userRepository{db: db}
}

// Create 创建用户
// 用户名与邮箱唯一性由UNIQUE索引保证（而非应用层SELECT再INSERT）
func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	model := &UserModel{
		Username: u.Username,
		Email:    u.Email,
		Password: u.Password,
	}

	if err := getDB(ctx, r.db).Omit("Author").Create(model).Error; err != nil {
		if isDuplicateError(err) {
			if duplicateColumn(err, "email") != "" {
				return apperrors.ErrEmailDuplicate
			}
			return apperrors.ErrUsernameDuplicate
		}
		return apperrors.WithCode(err, apperrors.ErrCodeDatabaseError, "Database error.")
	}

	u.ID = model.ID
	u.CreatedAt = model.CreatedAt
	u.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找用户
func (r *userRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	var model UserModel
	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		return nil, translateUserError(err)
	}
	return toUserEntity(&model), nil
}

// FindByUsername 根据用户名查找用户
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	var model UserModel
	if err := getDB(ctx, r.db).Where("username = ?", username).First(&model).Error; err != nil {
		return nil, translateUserError(err)
	}
	return toUserEntity(&model), nil
}

// Delete 物理删除用户
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&UserModel{}, id)
	if result.Error != nil {
		// 级联删除作者资料时被图书外键拒绝
		if isForeignKeyError(result.Error) {
			return apperrors.WithCode(result.Error, apperrors.ErrCodeAuthorHasBooks, "Cannot delete an author who still owns books. Delete the books first.")
		}
		return apperrors.WithCode(result.Error, apperrors.ErrCodeDatabaseError, "Database error.")
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

func translateUserError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrUserNotFound
	}
	return apperrors.WithCode(err, apperrors.ErrCodeDatabaseError, "Database error.")
}

// toUserEntity GORM模型 → 领域实体
func toUserEntity(model *UserModel) *user.User {
	return &user.User{
		ID:        model.ID,
		Username:  model.Username,
		Email:     model.Email,
		Password:  model.Password,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
