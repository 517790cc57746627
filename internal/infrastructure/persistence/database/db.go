package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookmarket/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 按database.driver选择驱动：mysql | postgres | sqlite
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. GORM日志输出到zerolog，debug模式打印全部SQL，其余只打印慢查询与错误
// 4. auto_migrate开启时自动迁移表结构
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg.Database)
	if err != nil {
		return nil, err
	}

	logLevel := logger.Warn
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: NewGormLogger(log.Logger, logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Info().Str("driver", cfg.Database.Driver).Msg("数据库连接成功")

	if cfg.Database.AutoMigrate {
		if err := AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("数据库迁移失败: %w", err)
		}
	}

	return db, nil
}

func dialectorFor(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "mysql":
		return mysql.Open(cfg.DSN()), nil
	case "postgres":
		return postgres.Open(cfg.DSN()), nil
	case "sqlite":
		return sqlite.Open(cfg.DSN()), nil
	}
	return nil, fmt.Errorf("不支持的数据库驱动: %s", cfg.Driver)
}

// AutoMigrate 自动迁移表结构
// 顺序：users → authors → books，外键约束随表一起创建
// 生产环境应使用版本化的迁移脚本
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&AuthorModel{},
		&BookModel{},
	)
}

// slowQueryThreshold 超过该耗时的SQL按慢查询记录
const slowQueryThreshold = 200 * time.Millisecond

// gormLogger 将GORM日志写入zerolog，按消息类型选择级别
//   - SQL执行出错 → error（记录不存在除外）
//   - 慢查询 → warn
//   - 其余SQL → debug，仅在LogLevel为Info时输出
//
// 请求context中带有logger时沿用它，日志可以关联request_id
type gormLogger struct {
	logger zerolog.Logger
	level  logger.LogLevel
	slow   time.Duration
}

// NewGormLogger 基于zerolog的GORM日志
func NewGormLogger(zl zerolog.Logger, level logger.LogLevel) logger.Interface {
	return &gormLogger{
		logger: zl.With().Str("component", "gorm").Logger(),
		level:  level,
		slow:   slowQueryThreshold,
	}
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *gormLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Info {
		l.from(ctx).Info().Msgf(msg, args...)
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Warn {
		l.from(ctx).Warn().Msgf(msg, args...)
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Error {
		l.from(ctx).Error().Msgf(msg, args...)
	}
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	var event *zerolog.Event
	switch {
	case err != nil && l.level >= logger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		event = l.from(ctx).Error().Err(err)
	case l.slow > 0 && elapsed > l.slow && l.level >= logger.Warn:
		event = l.from(ctx).Warn().Bool("slow", true)
	case l.level >= logger.Info:
		event = l.from(ctx).Debug()
	default:
		return
	}

	sql, rows := fc()
	event.Str("sql", sql).Int64("rows", rows).Dur("elapsed", elapsed).Msg("sql")
}

func (l *gormLogger) from(ctx context.Context) *zerolog.Logger {
	if ctxLogger := zerolog.Ctx(ctx); ctxLogger != zerolog.DefaultContextLogger && ctxLogger.GetLevel() != zerolog.Disabled {
		lg := ctxLogger.With().Str("component", "gorm").Logger()
		return &lg
	}
	return &l.logger
}
