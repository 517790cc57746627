package main

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	appbook "github.com/xiebiao/bookmarket/internal/application/book"
	"github.com/xiebiao/bookmarket/internal/domain/book"
	"github.com/xiebiao/bookmarket/internal/domain/user"
	"github.com/xiebiao/bookmarket/internal/infrastructure/config"
	"github.com/xiebiao/bookmarket/internal/infrastructure/persistence/database"
	"github.com/xiebiao/bookmarket/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookmarket/internal/infrastructure/storage"
	"github.com/xiebiao/bookmarket/internal/interface/http/handler"
	"github.com/xiebiao/bookmarket/pkg/jwt"
	"github.com/xiebiao/bookmarket/pkg/password"
)

// 有些依赖需要从Config中提取参数或返回cleanup，Wire无法直接使用原始构造函数

func provideDB(cfg *config.Config) (*gorm.DB, func(), error) {
	db, err := database.NewDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		sqlDB, err := db.DB()
		if err != nil {
			return
		}
		if err := sqlDB.Close(); err != nil {
			log.Error().Err(err).Msg("关闭数据库连接失败")
		}
	}
	return db, cleanup, nil
}

func provideRedisClient(cfg *config.Config) (*goredis.Client, func(), error) {
	client, err := redis.NewClient(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := client.Close(); err != nil {
			log.Error().Err(err).Msg("关闭Redis连接失败")
		}
	}
	return client, cleanup, nil
}

func provideTokenBlacklist(client *goredis.Client) user.TokenBlacklist {
	return redis.NewTokenBlacklist(client)
}

func provideCoverStorage(cfg *config.Config) (book.CoverStorage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return storage.NewCoverStorage(ctx, cfg)
}

func providePasswordHasher(cfg *config.Config) (password.Hasher, error) {
	p := cfg.Auth.Password
	return password.NewHasher(password.Options{
		Algorithm:         p.Algorithm,
		BcryptCost:        p.BcryptCost,
		Argon2Memory:      p.Argon2Memory,
		Argon2Iterations:  p.Argon2Iterations,
		Argon2Parallelism: p.Argon2Parallelism,
	})
}

func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

func provideBookHandler(
	cfg *config.Config,
	catalog *appbook.ListCatalogUseCase,
	myList *appbook.ListMyBooksUseCase,
	detail *appbook.GetBookUseCase,
	create *appbook.CreateBookUseCase,
	update *appbook.UpdateBookUseCase,
	unpublish *appbook.UnpublishBookUseCase,
	remove *appbook.DeleteBookUseCase,
) *handler.BookHandler {
	return handler.NewBookHandler(catalog, myList, detail, create, update, unpublish, remove, cfg.Storage.MaxUploadBytes)
}
