package book

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/bookmarket/internal/domain/book"
	"github.com/xiebiao/bookmarket/pkg/saga"
)

// CreateBookUseCase 创建图书用例
// 设计说明:
// 1. 封面写入存储与图书写入数据库跨越两个资源,用Saga编排
// 2. 数据库写入失败时补偿删除已上传的封面,不留孤儿文件
// 3. 提交成功后发布book.created事件
type CreateBookUseCase struct {
	bookService book.Service
	covers      book.CoverStorage
	events      book.EventPublisher
	presenter
}

// NewCreateBookUseCase 创建用例
func NewCreateBookUseCase(bookService book.Service, covers book.CoverStorage, events book.EventPublisher) *CreateBookUseCase {
	return &CreateBookUseCase{
		bookService: bookService,
		covers:      covers,
		events:      events,
		presenter:   presenter{covers: covers},
	}
}

// CreateBookRequest 创建请求DTO(已通过边界校验)
type CreateBookRequest struct {
	AuthorID    uint // 当前登录用户,从不接受客户端传入
	Title       string
	Description string
	Price       decimal.Decimal
	Published   *bool // nil表示未提供,默认发布
	Cover       *book.CoverUpload
}

// sagaTimeout 上传与写库的总时限
const sagaTimeout = 30 * time.Second

// Execute 执行创建
func (uc *CreateBookUseCase) Execute(ctx context.Context, req CreateBookRequest) (resp *BookResponse, err error) {
	ctx, finish := startOperation(ctx, "create")
	defer func() { finish(err) }()

	published := true
	if req.Published != nil {
		published = *req.Published
	}

	coverKey := ""
	if req.Cover != nil {
		coverKey = req.Cover.Key
	}
	b := book.NewBook(req.AuthorID, req.Title, req.Description, req.Price, coverKey, published)

	s := saga.NewSaga("create-book", sagaTimeout)
	if req.Cover != nil {
		s.AddStep("store-cover",
			func(ctx context.Context) error { return uc.covers.Save(ctx, req.Cover) },
			func(ctx context.Context) error { return uc.covers.Delete(ctx, req.Cover.Key) },
		)
	}
	s.AddStep("insert-book",
		func(ctx context.Context) error { return uc.bookService.Create(ctx, b) },
		nil,
	)

	if err := s.Execute(ctx); err != nil {
		return nil, err
	}

	publishEvent(ctx, uc.events, book.NewEvent(book.EventCreated, b))

	// 重新读取以带上作者笔名
	created, err := uc.bookService.GetOwned(ctx, req.AuthorID, b.ID)
	if err != nil {
		return nil, err
	}
	return uc.present(ctx, created), nil
}
