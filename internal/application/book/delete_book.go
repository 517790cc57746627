package book

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/xiebiao/bookmarket/internal/domain/book"
	"github.com/xiebiao/bookmarket/internal/infrastructure/persistence/database"
	"github.com/xiebiao/bookmarket/internal/infrastructure/storage"
)

// DeleteBookUseCase 删除图书用例
// 物理删除;封面在提交后尽力删除,删除失败只记录日志
type DeleteBookUseCase struct {
	bookService book.Service
	covers      book.CoverStorage
	events      book.EventPublisher
	txManager   *database.TxManager
}

// NewDeleteBookUseCase 创建用例
func NewDeleteBookUseCase(
	bookService book.Service,
	covers book.CoverStorage,
	events book.EventPublisher,
	txManager *database.TxManager,
) *DeleteBookUseCase {
	return &DeleteBookUseCase{
		bookService: bookService,
		covers:      covers,
		events:      events,
		txManager:   txManager,
	}
}

// Execute 执行删除
func (uc *DeleteBookUseCase) Execute(ctx context.Context, authorID, bookID uint) (err error) {
	ctx, finish := startOperation(ctx, "delete")
	defer func() { finish(err) }()

	var deleted *book.Book
	err = uc.txManager.Transaction(ctx, func(ctx context.Context) error {
		var err error
		deleted, err = uc.bookService.Delete(ctx, authorID, bookID)
		return err
	})
	if err != nil {
		return err
	}

	if deleted.HasCover() {
		if err := storage.DeleteQuietly(uc.covers, deleted.CoverImage); err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("key", deleted.CoverImage).Msg("删除封面失败")
		}
	}

	publishEvent(ctx, uc.events, book.NewEvent(book.EventDeleted, deleted))
	return nil
}
