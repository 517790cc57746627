package dto

import (
	"bytes"
	"encoding/json"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// RegisterRequest 作者注册
// binding tag做基础校验，密码强度由领域服务校验
type RegisterRequest struct {
	Username  string  `json:"username" binding:"required,max=150,username" example:"ali"`
	Email     string  `json:"email" binding:"required,email,max=254" example:"ali@example.com"`
	Password  string  `json:"password" binding:"required" example:"s3cretpass"`
	Pseudonym *string `json:"pseudonym" binding:"omitempty,max=255" example:"Ali Writer"`
}

// TokenRequest 用户名密码换取Token
type TokenRequest struct {
	Username string `json:"username" binding:"required" example:"ali"`
	Password string `json:"password" binding:"required" example:"s3cretpass"`
}

// RefreshRequest Refresh Token换取Access Token
type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// RevokeRequest 撤销当前Access Token，可同时撤销Refresh Token
type RevokeRequest struct {
	Refresh string `json:"refresh"`
}

// OptionalString 区分"未提供"、null与字符串
type OptionalString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON 只有字段出现在JSON中时才会被调用
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, []byte("null")) {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// ProfilePatchRequest 修改作者资料
// pseudonym为null或空字符串时清空
type ProfilePatchRequest struct {
	Pseudonym OptionalString `json:"pseudonym" swaggertype:"string"`
}

// Validate 笔名最长255字符
func (r ProfilePatchRequest) Validate() error {
	return ValidationError(validation.ValidateStruct(&r,
		validation.Field(&r.Pseudonym, validation.By(func(interface{}) error {
			if r.Pseudonym.Value == nil {
				return nil
			}
			return validation.Validate(*r.Pseudonym.Value,
				validation.RuneLength(0, 255).Error(msgMaxLength(255)))
		})),
	))
}
