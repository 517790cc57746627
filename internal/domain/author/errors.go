package author

import (
	apperrors "github.com/xiebiao/bookmarket/pkg/errors"
)

var (
	// ErrAuthorNotFound 作者资料不存在
	ErrAuthorNotFound = apperrors.New(apperrors.ErrCodeAuthorNotFound, "Author Not Found")

	// ErrAuthorHasBooks 作者仍拥有图书时不能删除账号
	ErrAuthorHasBooks = apperrors.New(apperrors.ErrCodeAuthorHasBooks,
		"Cannot delete an author who still owns books. Delete the books first.")
)
