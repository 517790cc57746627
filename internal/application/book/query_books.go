package book

import (
	"context"
	"time"

	"github.com/xiebiao/bookmarket/internal/domain/book"
	"github.com/xiebiao/bookmarket/pkg/metrics"
	"github.com/xiebiao/bookmarket/pkg/tracing"
)

// GetBookUseCase 作者查看自己的图书
type GetBookUseCase struct {
	bookService book.Service
	presenter
}

// NewGetBookUseCase 创建用例
func NewGetBookUseCase(bookService book.Service, covers book.CoverStorage) *GetBookUseCase {
	return &GetBookUseCase{bookService: bookService, presenter: presenter{covers: covers}}
}

// Execute 非本人图书与不存在的图书同样返回ErrBookNotFound
func (uc *GetBookUseCase) Execute(ctx context.Context, authorID, bookID uint) (resp *BookResponse, err error) {
	ctx, finish := startOperation(ctx, "detail")
	defer func() { finish(err) }()

	b, err := uc.bookService.GetOwned(ctx, authorID, bookID)
	if err != nil {
		return nil, err
	}
	return uc.present(ctx, b), nil
}

// ListMyBooksUseCase 作者自己的全部图书(含未发布)
type ListMyBooksUseCase struct {
	bookService book.Service
	presenter
}

// NewListMyBooksUseCase 创建用例
func NewListMyBooksUseCase(bookService book.Service, covers book.CoverStorage) *ListMyBooksUseCase {
	return &ListMyBooksUseCase{bookService: bookService, presenter: presenter{covers: covers}}
}

// Execute 没有图书时返回空数组
func (uc *ListMyBooksUseCase) Execute(ctx context.Context, authorID uint) (list []*BookResponse, err error) {
	ctx, finish := startOperation(ctx, "mylist")
	defer func() { finish(err) }()

	books, err := uc.bookService.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}
	return uc.presentAll(ctx, books), nil
}

// ListCatalogUseCase 公开目录查询
// 与调用者身份无关,只返回已发布图书
type ListCatalogUseCase struct {
	bookService book.Service
	presenter
}

// NewListCatalogUseCase 创建用例
func NewListCatalogUseCase(bookService book.Service, covers book.CoverStorage) *ListCatalogUseCase {
	return &ListCatalogUseCase{bookService: bookService, presenter: presenter{covers: covers}}
}

// Execute 按Filter查询
func (uc *ListCatalogUseCase) Execute(ctx context.Context, filter book.Filter) (list []*BookResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "book.catalog")
	defer func() { endSpan(span, err) }()

	start := time.Now()
	books, err := uc.bookService.ListPublished(ctx, filter)
	metrics.ObserveHistogram(metrics.CatalogQueryDuration, time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}
	return uc.presentAll(ctx, books), nil
}
