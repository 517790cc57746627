package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	apperrors "github.com/xiebiao/bookmarket/pkg/errors"
	"github.com/xiebiao/bookmarket/pkg/negotiation"
)

// 所有响应都经过negotiation按请求Content-Type渲染为JSON或XML
//
// 成功响应直接返回数据（对象、数组或一条消息字符串），不再包一层code/data。
// 错误响应为AppError本身：{"code": 40402, "detail": "Book Not Found"}，
// 参数错误额外带上"errors": {"字段": ["原因"]}。

// OK 200响应
func OK(c *gin.Context, data interface{}) {
	negotiation.Render(c, http.StatusOK, data)
}

// Created 201响应
func Created(c *gin.Context, data interface{}) {
	negotiation.Render(c, http.StatusCreated, data)
}

// Message 200纯文本消息，如"Book Unpublished"
func Message(c *gin.Context, message string) {
	negotiation.Render(c, http.StatusOK, message)
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	book, err := uc.Execute(ctx, req)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	status := apperrors.HTTPStatus(appErr.Code)

	// 内部原因只写日志，不返回给客户端
	if appErr.Err != nil {
		event := log.Warn()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		}
		event.Err(appErr.Err).
			Int("code", appErr.Code).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("request_id", c.GetString("request_id")).
			Msg(appErr.Message)
	}

	negotiation.Abort(c, status, appErr)
}

// ErrorWithCode 自定义错误码和消息
func ErrorWithCode(c *gin.Context, code int, message string) {
	Error(c, apperrors.New(code, message))
}
