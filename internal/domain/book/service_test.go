package book

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRepo 只记录调用,返回预置结果
type stubRepo struct {
	Repository
	owned         *Book
	deleted       bool
	listPublished int
}

func (r *stubRepo) FindOwned(ctx context.Context, authorID, id uint) (*Book, error) {
	if r.owned == nil || r.owned.ID != id || r.owned.AuthorID != authorID {
		return nil, ErrBookNotFound
	}
	return r.owned, nil
}

func (r *stubRepo) DeleteOwned(ctx context.Context, authorID, id uint) error {
	r.deleted = true
	return nil
}

func (r *stubRepo) ListPublished(ctx context.Context, filter Filter) ([]*Book, error) {
	r.listPublished++
	return []*Book{}, nil
}

func TestService_CreateRequiresAuthor(t *testing.T) {
	svc := NewService(&stubRepo{})

	err := svc.Create(context.Background(), NewBook(0, "Title", "Description", decimal.NewFromInt(1), "", true))
	assert.Equal(t, ErrMissingAuthor, err)
}

func TestService_DeleteReturnsBook(t *testing.T) {
	repo := &stubRepo{owned: &Book{ID: 7, AuthorID: 1, CoverImage: "images/book-covers/a.png"}}
	svc := NewService(repo)

	deleted, err := svc.Delete(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.Equal(t, "images/book-covers/a.png", deleted.CoverImage)
	assert.True(t, repo.deleted)
}

func TestService_DeleteNotOwned(t *testing.T) {
	repo := &stubRepo{owned: &Book{ID: 7, AuthorID: 1}}
	svc := NewService(repo)

	_, err := svc.Delete(context.Background(), 2, 7)
	assert.Equal(t, ErrBookNotFound, err)
	assert.False(t, repo.deleted)
}

func TestService_ListPublishedEmptyRange(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo)

	min, max := decimal.NewFromInt(2000), decimal.NewFromInt(1000)
	books, err := svc.ListPublished(context.Background(), Filter{MinPrice: &min, MaxPrice: &max})
	require.NoError(t, err)
	assert.Empty(t, books)
	assert.Zero(t, repo.listPublished)
}

func TestBook_Apply(t *testing.T) {
	b := NewBook(1, "Old", "Old description", decimal.NewFromInt(1), "old.png", true)

	unpublished := false
	b.Apply(Changes{Title: "New", Description: "New description", Price: decimal.NewFromInt(2), Published: &unpublished})

	assert.Equal(t, "New", b.Title)
	assert.False(t, b.Published)
	assert.Equal(t, "old.png", b.CoverImage)
}
