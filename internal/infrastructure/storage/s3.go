package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/xiebiao/bookmarket/internal/domain/book"
	"github.com/xiebiao/bookmarket/internal/infrastructure/config"
	"github.com/xiebiao/bookmarket/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/bookmarket/pkg/errors"
)

// s3API S3Storage用到的客户端方法
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type presignAPI interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3Storage S3兼容对象存储
// 设计说明：
// 1. 写入与删除经过熔断器，对象存储不可用时快速失败（503）
// 2. 配置public_base_url时直接拼接公开地址，否则生成预签名GET地址
type S3Storage struct {
	client        s3API
	presigner     presignAPI
	bucket        string
	publicBaseURL string
	presignExpire time.Duration
	breaker       *circuitbreaker.CircuitBreaker
}

// NewS3Storage 创建S3存储
// endpoint为空时使用AWS默认地址；访问密钥为空时使用默认凭据链
func NewS3Storage(ctx context.Context, cfg config.S3StorageConfig) (*S3Storage, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("加载AWS配置失败: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return newS3Storage(client, s3.NewPresignClient(client), cfg), nil
}

func newS3Storage(client s3API, presigner presignAPI, cfg config.S3StorageConfig) *S3Storage {
	failures := cfg.BreakerFailures
	if failures == 0 {
		failures = 5
	}

	breaker := circuitbreaker.NewCircuitBreaker("cover-s3", circuitbreaker.Config{
		Timeout: cfg.BreakerTimeout,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
	})

	expire := cfg.PresignExpire
	if expire <= 0 {
		expire = time.Hour
	}

	return &S3Storage{
		client:        client,
		presigner:     presigner,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
		presignExpire: expire,
		breaker:       breaker,
	}
}

var _ book.CoverStorage = (*S3Storage)(nil)

// Save PutObject
func (s *S3Storage) Save(ctx context.Context, upload *book.CoverUpload) (err error) {
	defer func() { recordUpload("s3", len(upload.Data), err) }()

	return s.call(func() error {
		_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:        aws.String(s.bucket),
			Key:           aws.String(upload.Key),
			Body:          bytes.NewReader(upload.Data),
			ContentLength: aws.Int64(int64(len(upload.Data))),
			ContentType:   aws.String(upload.ContentType),
		})
		return err
	})
}

// Delete DeleteObject，对象不存在时S3同样返回成功
func (s *S3Storage) Delete(ctx context.Context, key string) error {
	return s.call(func() error {
		_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		})
		return err
	})
}

// URL 公开地址或预签名地址
func (s *S3Storage) URL(ctx context.Context, key string) (string, error) {
	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + key, nil
	}

	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = s.presignExpire
	})
	if err != nil {
		return "", apperrors.WithCode(err, apperrors.ErrCodeStorageError, "File storage error.")
	}
	return req.URL, nil
}

func (s *S3Storage) call(fn func() error) error {
	err := s.breaker.Execute(fn)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, circuitbreaker.ErrOpenState):
		return apperrors.WithCode(err, apperrors.ErrCodeStorageUnavail, "File storage is temporarily unavailable.")
	default:
		return apperrors.WithCode(err, apperrors.ErrCodeStorageError, "File storage error.")
	}
}
