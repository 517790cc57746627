package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/xiebiao/bookmarket/internal/domain/book"
	apperrors "github.com/xiebiao/bookmarket/pkg/errors"
)

// LocalStorage 本地磁盘存储
type LocalStorage struct {
	root    string
	baseURL string
}

// NewLocalStorage 创建本地存储，root不存在时自动创建
func NewLocalStorage(root, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("创建存储目录失败: %w", err)
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &LocalStorage{root: root, baseURL: baseURL}, nil
}

var _ book.CoverStorage = (*LocalStorage)(nil)

// Root 存储根目录（用于/media/静态路由）
func (s *LocalStorage) Root() string {
	return s.root
}

// Save 先写临时文件再重命名，读取方不会看到写了一半的文件
func (s *LocalStorage) Save(ctx context.Context, upload *book.CoverUpload) (err error) {
	defer func() { recordUpload("local", len(upload.Data), err) }()

	path, err := s.path(upload.Key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return apperrors.WithCode(err, apperrors.ErrCodeStorageError, "File storage error.")
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, upload.Data, 0o644); err != nil {
		return apperrors.WithCode(err, apperrors.ErrCodeStorageError, "File storage error.")
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return apperrors.WithCode(err, apperrors.ErrCodeStorageError, "File storage error.")
	}
	return nil
}

// Delete 删除文件
func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return apperrors.WithCode(err, apperrors.ErrCodeStorageError, "File storage error.")
	}
	return nil
}

// URL 相对地址，如/media/images/book-covers/x.png
func (s *LocalStorage) URL(ctx context.Context, key string) (string, error) {
	return s.baseURL + key, nil
}

// path key必须位于root之内
func (s *LocalStorage) path(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", apperrors.New(apperrors.ErrCodeStorageError, "File storage error.")
	}
	return filepath.Join(s.root, clean), nil
}
