// Package storage 封面文件存储
//
// 后端由storage.backend选择：
//   - local：写入本地目录，由/media/路由对外提供
//   - s3：AWS S3或兼容服务（R2、MinIO），经过熔断器调用
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/xiebiao/bookmarket/internal/domain/book"
	"github.com/xiebiao/bookmarket/internal/infrastructure/config"
	"github.com/xiebiao/bookmarket/pkg/metrics"
)

// NewCoverStorage 按配置创建封面存储
func NewCoverStorage(ctx context.Context, cfg *config.Config) (book.CoverStorage, error) {
	switch cfg.Storage.Backend {
	case "", "local":
		return NewLocalStorage(cfg.Storage.Local.Root, cfg.Storage.Local.BaseURL)
	case "s3":
		return NewS3Storage(ctx, cfg.Storage.S3)
	}
	return nil, fmt.Errorf("不支持的存储后端: %s", cfg.Storage.Backend)
}

func recordUpload(backend string, size int, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	metrics.IncCounterVec(metrics.CoverUploadsTotal, map[string]string{"backend": backend, "result": result})
	if err == nil {
		metrics.ObserveHistogram(metrics.CoverUploadBytes, float64(size))
	}
}

// deleteTimeout 清理旧封面时使用独立的超时，不受请求取消影响
const deleteTimeout = 10 * time.Second

// DeleteQuietly 尽力删除文件，用于提交后的清理，失败只返回error供调用方记录
func DeleteQuietly(store book.CoverStorage, key string) error {
	if key == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), deleteTimeout)
	defer cancel()
	return store.Delete(ctx, key)
}
