//go:build wireinject
// +build wireinject

// Wire依赖注入配置，修改后运行 `wire gen ./cmd/api` 重新生成wire_gen.go

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"

	appbook "github.com/xiebiao/bookmarket/internal/application/book"
	appuser "github.com/xiebiao/bookmarket/internal/application/user"
	"github.com/xiebiao/bookmarket/internal/domain/author"
	"github.com/xiebiao/bookmarket/internal/domain/book"
	"github.com/xiebiao/bookmarket/internal/domain/user"
	"github.com/xiebiao/bookmarket/internal/infrastructure/config"
	"github.com/xiebiao/bookmarket/internal/infrastructure/messaging"
	"github.com/xiebiao/bookmarket/internal/infrastructure/persistence/database"
	"github.com/xiebiao/bookmarket/internal/interface/http/handler"
	"github.com/xiebiao/bookmarket/internal/interface/http/middleware"
	"github.com/xiebiao/bookmarket/internal/interface/http/router"
)

// infrastructureSet 数据库、Redis、封面存储、消息发布
var infrastructureSet = wire.NewSet(
	provideDB,
	provideRedisClient,
	provideTokenBlacklist,
	provideCoverStorage,
	providePasswordHasher,
	messaging.NewEventPublisher,
)

// repositorySet 仓储与事务管理器
var repositorySet = wire.NewSet(
	database.NewUserRepository,
	database.NewAuthorRepository,
	database.NewBookRepository,
	database.NewTxManager,
)

// domainSet 领域服务
var domainSet = wire.NewSet(
	user.NewService,
	author.NewService,
	book.NewService,
)

// applicationSet 用例
var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	appuser.NewObtainTokenUseCase,
	appuser.NewRefreshTokenUseCase,
	appuser.NewRevokeTokenUseCase,
	appuser.NewProfileUseCase,
	appbook.NewListCatalogUseCase,
	appbook.NewListMyBooksUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewCreateBookUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewUnpublishBookUseCase,
	appbook.NewDeleteBookUseCase,
)

// interfaceSet 中间件、处理器与路由
var interfaceSet = wire.NewSet(
	provideJWTManager,
	middleware.NewAuthMiddleware,
	handler.NewUserHandler,
	provideBookHandler,
	router.NewOptions,
	router.New,
)

// InitializeApp 组装整个应用
// cleanup按创建的逆序关闭消息连接、Redis与数据库
func InitializeApp(cfg *config.Config) (*gin.Engine, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		interfaceSet,
	)
	return nil, nil, nil
}
