// Package logger 基于zerolog的全局日志初始化
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options 日志配置
type Options struct {
	Level        string // debug | info | warn | error
	Format       string // console | json
	Output       string // stdout | stderr | /path/to/file
	EnableCaller bool
}

// Init 初始化全局Logger
// 返回的closer用于关闭日志文件（输出到stdout/stderr时为空操作）
func Init(opts Options) (func() error, error) {
	zerolog.TimeFieldFormat = time.RFC3339

	level, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
	if err != nil || opts.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	out, closer, err := openOutput(opts.Output)
	if err != nil {
		return nil, err
	}

	if opts.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "2006-01-02 15:04:05"}
	}

	ctx := zerolog.New(out).With().Timestamp()
	if opts.EnableCaller {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()
	// context中没有请求级Logger时（如后台清理）使用全局Logger
	zerolog.DefaultContextLogger = &log.Logger

	return closer, nil
}

func openOutput(output string) (io.Writer, func() error, error) {
	noop := func() error { return nil }
	switch output {
	case "", "stdout":
		return os.Stdout, noop, nil
	case "stderr":
		return os.Stderr, noop, nil
	}

	f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("打开日志文件失败: %w", err)
	}
	return f, f.Close, nil
}
