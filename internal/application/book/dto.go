package book

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/xiebiao/bookmarket/internal/domain/book"
)

// BookResponse 图书响应DTO
// 字段顺序即JSON/XML输出顺序；author只写不读，不出现在响应中
type BookResponse struct {
	ID              uint      `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	AuthorPseudonym *string   `json:"author_pseudonym"`
	CoverImage      *string   `json:"cover_image"`
	Price           string    `json:"price"` // 固定2位小数，如"1200.21"
	Published       bool      `json:"published"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// presenter 领域实体 → 响应DTO，负责把封面存储键转换为URL
type presenter struct {
	covers book.CoverStorage
}

func (p presenter) present(ctx context.Context, b *book.Book) *BookResponse {
	resp := &BookResponse{
		ID:              b.ID,
		Title:           b.Title,
		Description:     b.Description,
		AuthorPseudonym: b.AuthorPseudonym,
		Price:           b.Price.StringFixed(book.PriceDecimalPlaces),
		Published:       b.Published,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}

	if b.HasCover() {
		url, err := p.covers.URL(ctx, b.CoverImage)
		if err != nil {
			// 地址生成失败时按无封面返回，不影响主体数据
			log.Ctx(ctx).Warn().Err(err).Str("key", b.CoverImage).Msg("生成封面地址失败")
		} else {
			resp.CoverImage = &url
		}
	}

	return resp
}

func (p presenter) presentAll(ctx context.Context, books []*book.Book) []*BookResponse {
	list := make([]*BookResponse, len(books))
	for i, b := range books {
		list[i] = p.present(ctx, b)
	}
	return list
}
