package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/xiebiao/bookmarket/internal/domain/book"
	apperrors "github.com/xiebiao/bookmarket/pkg/errors"
)

const coverField = "cover_image"

// AllowedExtensions 封面允许的扩展名
var AllowedExtensions = []string{"bmp", "gif", "jpeg", "jpg", "png", "tiff", "tif", "webp", "ico"}

var (
	errNotImage = apperrors.FieldError(coverField,
		"Upload a valid image. The file you uploaded was either not an image or a corrupted image.")
	errEmptyFile = apperrors.FieldError(coverField, "The submitted file is empty.")
)

// ReadCover 读取并校验multipart中的封面文件
// 校验顺序：扩展名 → 大小 → 内容类型
func ReadCover(header *multipart.FileHeader, maxBytes int64) (*book.CoverUpload, error) {
	ext, err := checkExtension(header.Filename)
	if err != nil {
		return nil, err
	}

	if maxBytes > 0 && header.Size > maxBytes {
		return nil, FileTooLarge(maxBytes)
	}

	f, err := header.Open()
	if err != nil {
		return nil, apperrors.WithCode(err, apperrors.ErrCodeBindError, "Malformed request body.")
	}
	defer f.Close()

	limit := maxBytes
	if limit <= 0 {
		limit = header.Size
	}
	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, apperrors.WithCode(err, apperrors.ErrCodeBindError, "Malformed request body.")
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, FileTooLarge(maxBytes)
	}

	return InspectCover(ext, data)
}

// InspectCover 按内容识别类型，只接受image/*
func InspectCover(ext string, data []byte) (*book.CoverUpload, error) {
	if len(data) == 0 {
		return nil, errEmptyFile
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return nil, errNotImage
	}

	return &book.CoverUpload{
		Key:         NewCoverKey(ext),
		ContentType: mtype.String(),
		Data:        data,
	}, nil
}

// NewCoverKey images/book-covers/<uuid>.<ext>
func NewCoverKey(ext string) string {
	return book.CoverDir + uuid.NewString() + "." + ext
}

func checkExtension(filename string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return ext, nil
		}
	}
	return "", apperrors.FieldError(coverField, fmt.Sprintf(
		"File extension %q is not allowed. Allowed extensions are: %s.",
		ext, strings.Join(AllowedExtensions, ", ")))
}

// FileTooLarge 封面超过大小限制
func FileTooLarge(maxBytes int64) error {
	return apperrors.FieldError(coverField,
		fmt.Sprintf("Ensure this file size is not greater than %d bytes.", maxBytes))
}
