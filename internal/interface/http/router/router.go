// Package router 组装gin引擎：全局中间件、基础设施路由与API路由
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/xiebiao/bookmarket/internal/infrastructure/config"
	"github.com/xiebiao/bookmarket/internal/interface/http/handler"
	"github.com/xiebiao/bookmarket/internal/interface/http/middleware"
	"github.com/xiebiao/bookmarket/pkg/response"
)

// Options 路由依赖
type Options struct {
	Mode           string // debug | release | test
	MetricsEnabled bool
	MetricsPath    string
	MediaRoot      string // 本地封面目录，为空时不挂载/media
	MediaURL       string
}

// NewOptions 从配置提取路由选项
func NewOptions(cfg *config.Config) Options {
	opts := Options{
		Mode:           cfg.Server.Mode,
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsPath:    cfg.Metrics.Path,
	}
	if cfg.Storage.Backend == "local" {
		opts.MediaRoot = cfg.Storage.Local.Root
		opts.MediaURL = cfg.Storage.Local.BaseURL
	}
	return opts
}

// New 创建并注册所有路由
//
// 中间件顺序：Recovery → Tracing → RequestLogger → Metrics
// Tracing在前，日志才能带上trace_id
func New(
	opts Options,
	userHandler *handler.UserHandler,
	bookHandler *handler.BookHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	switch opts.Mode {
	case gin.ReleaseMode:
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	}

	r := gin.New()
	r.RedirectTrailingSlash = true
	r.Use(
		middleware.Recovery(),
		middleware.Tracing(),
		middleware.RequestLogger(),
		middleware.Metrics(),
	)

	r.GET("/ping", func(c *gin.Context) {
		response.OK(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	if opts.MetricsEnabled {
		path := opts.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(promhttp.Handler()))
	}

	// 生产环境不暴露文档
	if opts.Mode != gin.ReleaseMode {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	if opts.MediaRoot != "" && opts.MediaURL != "" {
		r.Static(opts.MediaURL, opts.MediaRoot)
	}

	requireAuth := authMiddleware.RequireAuth()

	v1 := r.Group("/api/v1")
	{
		v1.GET("/render/", handler.Render)
		v1.POST("/render/", handler.Render)

		// 作者账号
		authors := v1.Group("/authors")
		{
			authors.POST("/register/", userHandler.Register)

			me := authors.Group("/me", requireAuth)
			me.GET("/", userHandler.Profile)
			me.PATCH("/", userHandler.UpdateProfile)
			me.DELETE("/", userHandler.DeleteAccount)
		}

		// Token
		token := v1.Group("/token")
		{
			token.POST("/", userHandler.ObtainToken)
			token.POST("/refresh/", userHandler.RefreshToken)
			token.POST("/revoke/", requireAuth, userHandler.RevokeToken)
		}

		// 图书
		books := v1.Group("/books")
		{
			// 公开目录，不需要登录
			books.GET("/", bookHandler.Catalog)

			owned := books.Group("", requireAuth)
			owned.GET("/mylist/", bookHandler.MyList)
			owned.GET("/detail/:id/", bookHandler.Detail)
			owned.POST("/create/", bookHandler.Create)
			owned.PUT("/update/:id/", bookHandler.Update)
			owned.PATCH("/unpublish/:id/", bookHandler.Unpublish)
			owned.DELETE("/delete/:id/", bookHandler.Delete)
		}
	}

	return r
}
