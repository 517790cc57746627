package book

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/xiebiao/bookmarket/internal/domain/book"
	"github.com/xiebiao/bookmarket/internal/infrastructure/persistence/database"
	"github.com/xiebiao/bookmarket/internal/infrastructure/storage"
	"github.com/xiebiao/bookmarket/pkg/saga"
)

// UpdateBookUseCase 整体更新图书用例
// 流程:
// 1. 上传新封面(如有),失败即结束
// 2. 事务内:读取旧封面键 → 条件UPDATE → 读取更新后的图书
// 3. 第2步失败(包括非本人图书)时补偿删除新封面
// 4. 成功后删除旧封面(尽力而为),发布book.updated事件
type UpdateBookUseCase struct {
	bookService book.Service
	covers      book.CoverStorage
	events      book.EventPublisher
	txManager   *database.TxManager
	presenter
}

// NewUpdateBookUseCase 创建用例
func NewUpdateBookUseCase(
	bookService book.Service,
	covers book.CoverStorage,
	events book.EventPublisher,
	txManager *database.TxManager,
) *UpdateBookUseCase {
	return &UpdateBookUseCase{
		bookService: bookService,
		covers:      covers,
		events:      events,
		txManager:   txManager,
		presenter:   presenter{covers: covers},
	}
}

// UpdateBookRequest 更新请求DTO
type UpdateBookRequest struct {
	AuthorID    uint
	BookID      uint
	Title       string
	Description string
	Price       decimal.Decimal
	Published   *bool // nil保持原值
	Cover       *book.CoverUpload
}

// Execute 执行更新
func (uc *UpdateBookUseCase) Execute(ctx context.Context, req UpdateBookRequest) (resp *BookResponse, err error) {
	ctx, finish := startOperation(ctx, "update")
	defer func() { finish(err) }()

	changes := book.Changes{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Published:   req.Published,
	}
	if req.Cover != nil {
		changes.CoverImage = &req.Cover.Key
	}

	var oldCover string
	var updated *book.Book

	s := saga.NewSaga("update-book", sagaTimeout)
	if req.Cover != nil {
		s.AddStep("store-cover",
			func(ctx context.Context) error { return uc.covers.Save(ctx, req.Cover) },
			func(ctx context.Context) error { return uc.covers.Delete(ctx, req.Cover.Key) },
		)
	}
	s.AddStep("update-book", func(ctx context.Context) error {
		return uc.txManager.Transaction(ctx, func(ctx context.Context) error {
			current, err := uc.bookService.GetOwned(ctx, req.AuthorID, req.BookID)
			if err != nil {
				return err
			}
			oldCover = current.CoverImage

			if err := uc.bookService.Update(ctx, req.AuthorID, req.BookID, changes); err != nil {
				return err
			}

			updated, err = uc.bookService.GetOwned(ctx, req.AuthorID, req.BookID)
			return err
		})
	}, nil)

	if err := s.Execute(ctx); err != nil {
		return nil, err
	}

	if req.Cover != nil && oldCover != "" && oldCover != req.Cover.Key {
		if err := storage.DeleteQuietly(uc.covers, oldCover); err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("key", oldCover).Msg("删除旧封面失败")
		}
	}

	publishEvent(ctx, uc.events, book.NewEvent(book.EventUpdated, updated))

	return uc.present(ctx, updated), nil
}
