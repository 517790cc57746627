package book

import (
	apperrors "github.com/xiebiao/bookmarket/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	// 不存在、不属于当前作者、已删除都返回这一个错误
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "Book Not Found")

	// ErrMissingAuthor 图书没有所属作者,或作者记录不存在(外键失败)
	ErrMissingAuthor = apperrors.New(apperrors.ErrCodeIntegrity, "Book must belong to an existing author.")
)
