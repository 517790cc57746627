package book

import (
	"context"
)

// CoverDir 封面存储键的前缀
const CoverDir = "images/book-covers/"

// CoverUpload 已通过校验的封面文件
type CoverUpload struct {
	Key         string // images/book-covers/<uuid>.<ext>
	ContentType string
	Data        []byte
}

// CoverStorage 封面文件存储接口
// 实现：本地磁盘、S3兼容对象存储
type CoverStorage interface {
	// Save 写入文件,相同key覆盖
	Save(ctx context.Context, upload *CoverUpload) error

	// Delete 删除文件,文件不存在时不报错
	Delete(ctx context.Context, key string) error

	// URL 返回可访问的地址,本地存储为相对路径(/media/...)
	URL(ctx context.Context, key string) (string, error)
}
