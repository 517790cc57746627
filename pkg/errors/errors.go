package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code用于客户端判断错误类型，HTTP状态码由HTTPStatus从Code推导
// 2. Message是返回给客户端的提示信息
// 3. Err是内部错误，仅记录到日志，不返回给客户端
// 4. Fields是字段级校验错误（仅参数错误时存在）
type AppError struct {
	Code    int                 `json:"code"`
	Message string              `json:"detail"`
	Fields  map[string][]string `json:"errors,omitempty"`
	Err     error               `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	if len(e.Fields) > 0 {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Fields)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装系统错误（如数据库错误、网络错误）
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// WithCode 包装错误并指定错误码
func WithCode(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：
// - 4xxxx: 客户端错误（参数错误、业务规则校验失败）
// - 5xxxx: 服务端错误（数据库异常、外部服务调用失败）

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal       = 50000 // 内部错误
	ErrCodeDatabaseError  = 50001 // 数据库错误
	ErrCodeRedisError     = 50002 // Redis错误
	ErrCodeIntegrity      = 50003 // 数据完整性错误（外键、缺少作者）
	ErrCodeStorageError   = 50004 // 文件存储错误
	ErrCodeStorageUnavail = 50005 // 文件存储不可用（熔断）

	// 认证授权错误（40100-40199）
	ErrCodeUnauthorized    = 40100 // 未登录
	ErrCodeInvalidToken    = 40101 // Token无效
	ErrCodeTokenExpired    = 40102 // Token过期
	ErrCodeInvalidPassword = 40103 // 用户名或密码错误
	ErrCodeForbidden       = 40104 // 无权限

	// 资源错误（40400-40499）
	ErrCodeNotFound       = 40400 // 资源不存在(通用)
	ErrCodeUserNotFound   = 40401 // 用户不存在
	ErrCodeBookNotFound   = 40402 // 图书不存在
	ErrCodeAuthorNotFound = 40403 // 作者资料不存在

	// 业务规则错误（40000-40099）
	ErrCodeBusinessError     = 40000 // 业务错误(通用)
	ErrCodeEmailDuplicate    = 40003 // 邮箱已存在
	ErrCodeWeakPassword      = 40005 // 密码强度不足
	ErrCodeUsernameDuplicate = 40006 // 用户名已存在
	ErrCodeDuplicateEntry    = 40009 // 重复记录(通用)
	ErrCodeAuthorHasBooks    = 40010 // 作者仍有图书，不能删除账号

	// 参数错误（40900-40999）
	ErrCodeInvalidParams = 40900 // 参数错误
	ErrCodeBindError     = 40901 // 参数绑定失败
)

// =========================================
// 预定义错误
// =========================================

var (
	// 系统错误
	ErrInternal      = New(ErrCodeInternal, "Internal server error.")
	ErrDatabaseError = New(ErrCodeDatabaseError, "Database error.")
	ErrRedisError    = New(ErrCodeRedisError, "Cache service error.")

	// 认证授权
	// 认证失败统一使用同一条提示，不区分原因
	ErrUnauthorized       = New(ErrCodeUnauthorized, "Authentication credentials were not provided.")
	ErrInvalidToken       = New(ErrCodeInvalidToken, "Authentication credentials were not provided.")
	ErrTokenExpired       = New(ErrCodeTokenExpired, "Authentication credentials were not provided.")
	ErrInvalidCredentials = New(ErrCodeInvalidPassword, "No active account found with the given credentials")
	ErrForbidden          = New(ErrCodeForbidden, "You do not have permission to perform this action.")

	// 资源不存在
	ErrUserNotFound = New(ErrCodeUserNotFound, "User Not Found")

	// 业务规则
	ErrEmailDuplicate    = New(ErrCodeEmailDuplicate, "A user with that email already exists.")
	ErrUsernameDuplicate = New(ErrCodeUsernameDuplicate, "A user with that username already exists.")
	ErrWeakPassword      = New(ErrCodeWeakPassword, "Password must be 8-64 characters and contain both letters and digits.")

	// 参数错误
	ErrInvalidParams = New(ErrCodeInvalidParams, "Invalid parameters.")
	ErrBindError     = New(ErrCodeBindError, "Malformed request body.")
)

// =========================================
// 参数校验错误
// =========================================

// NewValidation 创建字段级校验错误
// fields: 字段名 → 错误提示列表
func NewValidation(fields map[string][]string) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidParams,
		Message: "Invalid parameters.",
		Fields:  fields,
	}
}

// FieldError 单字段校验错误
func FieldError(field, reason string) *AppError {
	return NewValidation(map[string][]string{field: {reason}})
}

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "Internal server error.")
}

// HasCode 判断错误链中是否有指定错误码的AppError
func HasCode(err error, code int) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// HTTPStatus 错误码 → HTTP状态码
// 规则：
// - 409xx 参数错误 → 400
// - 重复记录、作者仍有图书 → 409
// - 400xx 其余业务错误 → 400
// - 401xx → 401（无权限40104 → 403）
// - 404xx → 404
// - 5xxxx → 500（存储熔断 → 503）
func HTTPStatus(code int) int {
	switch code {
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeEmailDuplicate, ErrCodeUsernameDuplicate, ErrCodeDuplicateEntry, ErrCodeAuthorHasBooks:
		return http.StatusConflict
	case ErrCodeStorageUnavail:
		return http.StatusServiceUnavailable
	}

	switch {
	case code >= 40900 && code < 41000:
		return http.StatusBadRequest
	case code >= 40400 && code < 40500:
		return http.StatusNotFound
	case code >= 40100 && code < 40200:
		return http.StatusUnauthorized
	case code >= 40000 && code < 40100:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
