package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	apperrors "github.com/xiebiao/bookmarket/pkg/errors"
	"github.com/xiebiao/bookmarket/pkg/response"
	"github.com/xiebiao/bookmarket/pkg/tracing"
)

const (
	HeaderRequestID = "X-Request-ID"
	slowRequest     = 3 * time.Second
)

// RequestLogger 请求日志中间件
// - 沿用上游传入的X-Request-ID，否则生成新的
// - 请求级logger(request_id、trace_id)放入request context，应用层通过log.Ctx(ctx)取用
// - 不记录请求体、Authorization等敏感信息
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header(HeaderRequestID, requestID)

		logCtx := log.Logger.With().Str("request_id", requestID)
		if traceID := tracing.ExtractTraceID(c.Request.Context()); traceID != "" {
			logCtx = logCtx.Str("trace_id", traceID)
		}
		logger := logCtx.Logger()
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context()))

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		status := c.Writer.Status()
		var event *zerolog.Event
		switch {
		case status >= http.StatusInternalServerError:
			event = logger.Error()
		case latency > slowRequest:
			event = logger.Warn().Bool("slow", true)
		default:
			event = logger.Info()
		}
		if len(c.Errors) > 0 {
			event = event.Str("errors", c.Errors.String())
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", latency).
			Str("client_ip", c.ClientIP()).
			Int("size", c.Writer.Size()).
			Msg("request")
	}
}

// Recovery panic转为500，响应体与其他错误一致
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Ctx(c.Request.Context()).Error().
					Interface("panic", r).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")
				if !c.Writer.Written() {
					response.Error(c, apperrors.ErrInternal)
				}
				c.Abort()
			}
		}()
		c.Next()
	}
}
