package book

import (
	"context"

	"github.com/xiebiao/bookmarket/internal/domain/book"
)

// UnpublishBookUseCase 下架用例
// 单条条件UPDATE,重复下架同样成功
type UnpublishBookUseCase struct {
	bookService book.Service
	events      book.EventPublisher
}

// NewUnpublishBookUseCase 创建用例
func NewUnpublishBookUseCase(bookService book.Service, events book.EventPublisher) *UnpublishBookUseCase {
	return &UnpublishBookUseCase{bookService: bookService, events: events}
}

// Execute 执行下架
func (uc *UnpublishBookUseCase) Execute(ctx context.Context, authorID, bookID uint) (err error) {
	ctx, finish := startOperation(ctx, "unpublish")
	defer func() { finish(err) }()

	if err := uc.bookService.Unpublish(ctx, authorID, bookID); err != nil {
		return err
	}

	publishEvent(ctx, uc.events, book.NewEvent(book.EventUnpublished, &book.Book{ID: bookID, AuthorID: authorID}))
	return nil
}
