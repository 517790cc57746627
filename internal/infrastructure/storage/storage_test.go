package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookmarket/internal/domain/book"
	"github.com/xiebiao/bookmarket/internal/infrastructure/config"
	apperrors "github.com/xiebiao/bookmarket/pkg/errors"
)

// 1x1透明GIF
var gifPixel, _ = base64.StdEncoding.DecodeString("R0lGODlhAQABAIAAAAAAAP///yH5BAEAAAAALAAAAAABAAEAAAIBRAA7")

// fileHeader 构造multipart文件头
func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("cover_image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["cover_image"][0]
}

func fieldMessage(t *testing.T, err error) string {
	t.Helper()
	appErr := apperrors.GetAppError(err)
	require.Contains(t, appErr.Fields, "cover_image")
	return appErr.Fields["cover_image"][0]
}

func TestReadCover(t *testing.T) {
	t.Run("GIF", func(t *testing.T) {
		upload, err := ReadCover(fileHeader(t, "cover.GIF", gifPixel), 1<<20)
		require.NoError(t, err)
		assert.Equal(t, "image/gif", upload.ContentType)
		assert.True(t, strings.HasPrefix(upload.Key, "images/book-covers/"))
		assert.True(t, strings.HasSuffix(upload.Key, ".gif"))
	})

	t.Run("扩展名不允许", func(t *testing.T) {
		_, err := ReadCover(fileHeader(t, "cover.txt", gifPixel), 1<<20)
		assert.Equal(t,
			`File extension "txt" is not allowed. Allowed extensions are: bmp, gif, jpeg, jpg, png, tiff, tif, webp, ico.`,
			fieldMessage(t, err))
	})

	t.Run("内容不是图片", func(t *testing.T) {
		_, err := ReadCover(fileHeader(t, "cover.png", []byte("plain text pretending to be png")), 1<<20)
		assert.Contains(t, fieldMessage(t, err), "Upload a valid image.")
	})

	t.Run("超出大小", func(t *testing.T) {
		_, err := ReadCover(fileHeader(t, "cover.gif", gifPixel), 10)
		assert.Contains(t, fieldMessage(t, err), "not greater than 10 bytes")
	})

	t.Run("空文件", func(t *testing.T) {
		_, err := ReadCover(fileHeader(t, "cover.gif", nil), 1<<20)
		assert.Equal(t, "The submitted file is empty.", fieldMessage(t, err))
	})
}

func TestLocalStorage(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalStorage(root, "/media")
	require.NoError(t, err)
	ctx := context.Background()

	upload := &book.CoverUpload{Key: "images/book-covers/a.gif", ContentType: "image/gif", Data: gifPixel}
	require.NoError(t, store.Save(ctx, upload))

	data, err := os.ReadFile(filepath.Join(root, "images", "book-covers", "a.gif"))
	require.NoError(t, err)
	assert.Equal(t, gifPixel, data)

	url, err := store.URL(ctx, upload.Key)
	require.NoError(t, err)
	assert.Equal(t, "/media/images/book-covers/a.gif", url)

	require.NoError(t, store.Delete(ctx, upload.Key))
	require.NoError(t, store.Delete(ctx, upload.Key))

	err = store.Save(ctx, &book.CoverUpload{Key: "../escape.gif", Data: gifPixel})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeStorageError))
}

type fakeS3 struct {
	puts    []string
	deletes []string
	err     error
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.puts = append(f.puts, *in.Key)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.deletes = append(f.deletes, *in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Storage_SaveAndURL(t *testing.T) {
	client := &fakeS3{}
	store := newS3Storage(client, nil, config.S3StorageConfig{
		Bucket:        "covers",
		PublicBaseURL: "https://cdn.example.com/",
	})
	ctx := context.Background()

	upload := &book.CoverUpload{Key: "images/book-covers/a.gif", ContentType: "image/gif", Data: gifPixel}
	require.NoError(t, store.Save(ctx, upload))
	require.NoError(t, store.Delete(ctx, upload.Key))

	assert.Equal(t, []string{upload.Key}, client.puts)
	assert.Equal(t, []string{upload.Key}, client.deletes)

	url, err := store.URL(ctx, upload.Key)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/images/book-covers/a.gif", url)
}

func TestS3Storage_BreakerOpens(t *testing.T) {
	client := &fakeS3{err: errors.New("connection reset")}
	store := newS3Storage(client, nil, config.S3StorageConfig{
		Bucket:          "covers",
		BreakerFailures: 2,
		BreakerTimeout:  time.Minute,
	})
	upload := &book.CoverUpload{Key: "images/book-covers/a.gif", Data: gifPixel}

	for i := 0; i < 2; i++ {
		err := store.Save(context.Background(), upload)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeStorageError))
	}

	err := store.Save(context.Background(), upload)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeStorageUnavail))
}

type fakePresigner struct {
	bucket  string
	key     string
	expires time.Duration
	err     error
}

func (f *fakePresigner) PresignGetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	if f.err != nil {
		return nil, f.err
	}
	opts := s3.PresignOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	f.bucket, f.key, f.expires = *in.Bucket, *in.Key, opts.Expires
	return &v4.PresignedHTTPRequest{
		URL:    "https://covers.s3.amazonaws.com/" + *in.Key + "?X-Amz-Signature=abc",
		Method: "GET",
	}, nil
}

func TestS3Storage_PresignedURL(t *testing.T) {
	presigner := &fakePresigner{}
	store := newS3Storage(&fakeS3{}, presigner, config.S3StorageConfig{
		Bucket:        "covers",
		PresignExpire: 15 * time.Minute,
	})

	url, err := store.URL(context.Background(), "images/book-covers/a.gif")
	require.NoError(t, err)
	assert.Equal(t, "https://covers.s3.amazonaws.com/images/book-covers/a.gif?X-Amz-Signature=abc", url)
	assert.Equal(t, "covers", presigner.bucket)
	assert.Equal(t, "images/book-covers/a.gif", presigner.key)
	assert.Equal(t, 15*time.Minute, presigner.expires)

	t.Run("默认有效期", func(t *testing.T) {
		presigner := &fakePresigner{}
		store := newS3Storage(&fakeS3{}, presigner, config.S3StorageConfig{Bucket: "covers"})
		_, err := store.URL(context.Background(), "k.gif")
		require.NoError(t, err)
		assert.Equal(t, time.Hour, presigner.expires)
	})

	t.Run("签名失败", func(t *testing.T) {
		store := newS3Storage(&fakeS3{}, &fakePresigner{err: errors.New("no credentials")}, config.S3StorageConfig{Bucket: "covers"})
		_, err := store.URL(context.Background(), "k.gif")
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeStorageError))
	})
}
