package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := map[int]int{
		ErrCodeInvalidParams:     http.StatusBadRequest,
		ErrCodeBindError:         http.StatusBadRequest,
		ErrCodeUnauthorized:      http.StatusUnauthorized,
		ErrCodeInvalidToken:      http.StatusUnauthorized,
		ErrCodeForbidden:         http.StatusForbidden,
		ErrCodeBookNotFound:      http.StatusNotFound,
		ErrCodeUsernameDuplicate: http.StatusConflict,
		ErrCodeAuthorHasBooks:    http.StatusConflict,
		ErrCodeWeakPassword:      http.StatusBadRequest,
		ErrCodeIntegrity:         http.StatusInternalServerError,
		ErrCodeStorageUnavail:    http.StatusServiceUnavailable,
	}
	for code, want := range cases {
		assert.Equal(t, want, HTTPStatus(code), "错误码%d", code)
	}
}

func TestGetAppError(t *testing.T) {
	t.Run("错误链中的AppError", func(t *testing.T) {
		wrapped := fmt.Errorf("步骤失败: %w", ErrUserNotFound)
		assert.Same(t, ErrUserNotFound, GetAppError(wrapped))
		assert.True(t, HasCode(wrapped, ErrCodeUserNotFound))
	})

	t.Run("普通错误包装为Internal", func(t *testing.T) {
		appErr := GetAppError(errors.New("boom"))
		assert.Equal(t, ErrCodeInternal, appErr.Code)
		assert.EqualError(t, appErr.Err, "boom")
	})
}

func TestFieldError(t *testing.T) {
	err := FieldError("title", "This field is required.")
	assert.Equal(t, ErrCodeInvalidParams, err.Code)
	assert.Equal(t, []string{"This field is required."}, err.Fields["title"])
	assert.Contains(t, err.Error(), "title")
}
