package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-playground/validator/v10"

	apperrors "github.com/xiebiao/bookmarket/pkg/errors"
)

// 校验提示，与字段一起返回给客户端
const (
	MsgRequired = "This field is required."
	MsgBlank    = "This field may not be blank."
	MsgEmail    = "Enter a valid email address."
	MsgUsername = "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	MsgBoolean  = "Must be a valid boolean."
	MsgNumber   = "Enter a number."
	MsgString   = "Not a valid string."
)

func msgMaxLength(n int) string {
	return fmt.Sprintf("Ensure this field has no more than %d characters.", n)
}

func msgMinLength(n int) string {
	return fmt.Sprintf("Ensure this field has at least %d characters.", n)
}

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

// init 错误中的字段名使用json tag，并注册username规则
func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
}

// BindError 将gin绑定错误转换为AppError
// - validator错误 → 字段级错误
// - JSON类型不匹配 → 字段级错误
// - 其他（JSON格式错误、空请求体）→ ErrBindError
func BindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string][]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = append(fields[fe.Field()], tagMessage(fe))
		}
		return apperrors.NewValidation(fields)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return apperrors.FieldError(typeErr.Field, MsgString)
	}

	return apperrors.WithCode(err, apperrors.ErrCodeBindError, apperrors.ErrBindError.Message)
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return MsgRequired
	case "email":
		return MsgEmail
	case "username":
		return MsgUsername
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "min":
		return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
	}
	return "Invalid value."
}

// ValidationError 将ozzo-validation的校验结果转换为AppError
func ValidationError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return apperrors.Wrap(err, "Internal server error.")
	}
	return apperrors.NewValidation(fieldsOf(verrs))
}

func fieldsOf(verrs validation.Errors) map[string][]string {
	fields := make(map[string][]string, len(verrs))
	for name, ferr := range verrs {
		if ferr != nil {
			fields[name] = []string{ferr.Error()}
		}
	}
	return fields
}

// MergeFields 合并多个校验错误的字段，全部为nil时返回nil
// 非校验类错误直接返回
func MergeFields(errs ...error) error {
	fields := map[string][]string{}
	for _, err := range errs {
		if err == nil {
			continue
		}
		appErr := apperrors.GetAppError(err)
		if appErr.Code != apperrors.ErrCodeInvalidParams {
			return err
		}
		for name, msgs := range appErr.Fields {
			fields[name] = append(fields[name], msgs...)
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return apperrors.NewValidation(fields)
}
