package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"

	"github.com/xiebiao/bookmarket/internal/domain/author"
	"github.com/xiebiao/bookmarket/internal/domain/book"
	"github.com/xiebiao/bookmarket/internal/domain/user"
	"github.com/xiebiao/bookmarket/internal/infrastructure/config"
	apperrors "github.com/xiebiao/bookmarket/pkg/errors"
)

type fixture struct {
	db      *gorm.DB
	users   user.Repository
	authors author.Repository
	books   book.Repository
	tx      *TxManager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg := config.DatabaseConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "test.db")}
	db, err := gorm.Open(sqlite.Open(cfg.DSN()), &gorm.Config{
		Logger: NewGormLogger(zerolog.Nop(), logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	return &fixture{
		db:      db,
		users:   NewUserRepository(db),
		authors: NewAuthorRepository(db),
		books:   NewBookRepository(db),
		tx:      NewTxManager(db),
	}
}

func strPtr(s string) *string { return &s }

func (f *fixture) author(t *testing.T, username string, pseudonym *string) uint {
	t.Helper()
	ctx := context.Background()

	u := user.NewUser(username, username+"@example.com", "hash")
	require.NoError(t, f.users.Create(ctx, u))
	require.NoError(t, f.authors.Create(ctx, author.NewAuthor(u.ID, pseudonym)))
	return u.ID
}

func (f *fixture) book(t *testing.T, authorID uint, title, price string, published bool) *book.Book {
	t.Helper()
	b := book.NewBook(authorID, title, "Description of "+title, decimal.RequireFromString(price), "", published)
	require.NoError(t, f.books.Create(context.Background(), b))
	return b
}

func TestUserRepository_Duplicates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.users.Create(ctx, user.NewUser("alice", "alice@example.com", "hash")))

	err := f.users.Create(ctx, user.NewUser("alice", "other@example.com", "hash"))
	assert.Equal(t, apperrors.ErrUsernameDuplicate, err)

	err = f.users.Create(ctx, user.NewUser("bob", "alice@example.com", "hash"))
	assert.Equal(t, apperrors.ErrEmailDuplicate, err)

	_, err = f.users.FindByUsername(ctx, "nobody")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeUserNotFound))
}

func TestAuthorRepository_Pseudonym(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.author(t, "alice", strPtr("Ali"))

	require.NoError(t, f.authors.UpdatePseudonym(ctx, id, nil))
	a, err := f.authors.FindByUserID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, a.Pseudonym)

	assert.Equal(t, author.ErrAuthorNotFound, f.authors.UpdatePseudonym(ctx, 999, nil))
}

func TestAuthorRepository_DeleteRestrictedByBooks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.author(t, "alice", nil)
	f.book(t, id, "Python Distilled", "1000", true)

	assert.Equal(t, author.ErrAuthorHasBooks, f.authors.Delete(ctx, id))

	err := f.users.Delete(ctx, id)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeAuthorHasBooks))

	count, err := f.books.CountByAuthor(ctx, id)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestUserRepository_DeleteCascadesProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.author(t, "alice", nil)

	require.NoError(t, f.users.Delete(ctx, id))

	_, err := f.authors.FindByUserID(ctx, id)
	assert.Equal(t, author.ErrAuthorNotFound, err)
}

func TestBookRepository_CreateWithoutAuthor(t *testing.T) {
	f := newFixture(t)

	b := book.NewBook(42, "Orphan", "No author", decimal.NewFromInt(1), "", true)
	err := f.books.Create(context.Background(), b)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeIntegrity))
}

func TestBookRepository_CreateKeepsUnpublished(t *testing.T) {
	f := newFixture(t)
	id := f.author(t, "alice", nil)
	b := f.book(t, id, "Draft", "10", false)

	got, err := f.books.FindOwned(context.Background(), id, b.ID)
	require.NoError(t, err)
	assert.False(t, got.Published)
}

func TestBookRepository_OwnershipGuard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.author(t, "alice", strPtr("Ali"))
	other := f.author(t, "bob", nil)
	b := f.book(t, owner, "Python Distilled", "1000", true)

	got, err := f.books.FindOwned(ctx, owner, b.ID)
	require.NoError(t, err)
	require.NotNil(t, got.AuthorPseudonym)
	assert.Equal(t, "Ali", *got.AuthorPseudonym)

	_, err = f.books.FindOwned(ctx, other, b.ID)
	assert.Equal(t, book.ErrBookNotFound, err)

	changes := book.Changes{Title: "Hacked", Description: "Hacked", Price: decimal.NewFromInt(1)}
	assert.Equal(t, book.ErrBookNotFound, f.books.UpdateOwned(ctx, other, b.ID, changes))
	assert.Equal(t, book.ErrBookNotFound, f.books.UnpublishOwned(ctx, other, b.ID))
	assert.Equal(t, book.ErrBookNotFound, f.books.DeleteOwned(ctx, other, b.ID))

	got, err = f.books.FindOwned(ctx, owner, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Python Distilled", got.Title)
	assert.True(t, got.Published)
}

func TestBookRepository_UnpublishIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.author(t, "alice", nil)
	b := f.book(t, owner, "Python Distilled", "1000", true)

	require.NoError(t, f.books.UnpublishOwned(ctx, owner, b.ID))
	require.NoError(t, f.books.UnpublishOwned(ctx, owner, b.ID))

	got, err := f.books.FindOwned(ctx, owner, b.ID)
	require.NoError(t, err)
	assert.False(t, got.Published)
}

func TestBookRepository_UpdateKeepsOptionalFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.author(t, "alice", nil)
	b := book.NewBook(owner, "Old", "Old description", decimal.NewFromInt(5), "images/book-covers/a.png", false)
	require.NoError(t, f.books.Create(ctx, b))

	err := f.books.UpdateOwned(ctx, owner, b.ID, book.Changes{
		Title:       "New",
		Description: "New description",
		Price:       decimal.RequireFromString("12.50"),
	})
	require.NoError(t, err)

	got, err := f.books.FindOwned(ctx, owner, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Title)
	assert.Equal(t, "12.50", got.Price.StringFixed(2))
	assert.False(t, got.Published)
	assert.Equal(t, "images/book-covers/a.png", got.CoverImage)
}

func TestBookRepository_DeleteTwice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.author(t, "alice", nil)
	b := f.book(t, owner, "Python Distilled", "1000", true)

	require.NoError(t, f.books.DeleteOwned(ctx, owner, b.ID))
	assert.Equal(t, book.ErrBookNotFound, f.books.DeleteOwned(ctx, owner, b.ID))
}

func TestBookRepository_ListByAuthor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.author(t, "alice", nil)
	other := f.author(t, "bob", nil)
	draft := f.book(t, owner, "Draft", "1", false)
	live := f.book(t, owner, "Live", "1", true)
	f.book(t, other, "Foreign", "1", true)

	books, err := f.books.ListByAuthor(ctx, owner)
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, live.ID, books[0].ID)
	assert.Equal(t, draft.ID, books[1].ID)

	none, err := f.books.ListByAuthor(ctx, f.author(t, "carol", nil))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func titles(books []*book.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.Title
	}
	return out
}

func TestBookRepository_ListPublished(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ali := f.author(t, "alice", strPtr("Ali Writer"))
	anon := f.author(t, "bob", nil)
	f.book(t, ali, "Python Distilled", "1000", true)
	f.book(t, anon, "Go in Action", "1200.21", true)
	f.book(t, ali, "Secret Draft", "5", false)
	f.book(t, anon, "100% Coverage", "50", true)

	price := func(s string) *decimal.Decimal {
		d := decimal.RequireFromString(s)
		return &d
	}

	tests := []struct {
		name   string
		filter book.Filter
		want   []string
	}{
		{"无条件只返回已发布", book.Filter{}, []string{"Python Distilled", "Go in Action", "100% Coverage"}},
		{"标题不区分大小写", book.Filter{Title: strPtr("PYTHON")}, []string{"Python Distilled"}},
		{"空标题匹配全部", book.Filter{Title: strPtr("")}, []string{"Python Distilled", "Go in Action", "100% Coverage"}},
		{"百分号按字面匹配", book.Filter{Title: strPtr("100%")}, []string{"100% Coverage"}},
		{"下划线按字面匹配", book.Filter{Title: strPtr("_")}, []string{}},
		{"描述", book.Filter{Description: strPtr("of go")}, []string{"Go in Action"}},
		{"笔名", book.Filter{AuthorPseudonym: strPtr("ali")}, []string{"Python Distilled"}},
		{"空笔名匹配无笔名作者", book.Filter{AuthorPseudonym: strPtr("")}, []string{"Python Distilled", "Go in Action", "100% Coverage"}},
		{"最低价", book.Filter{MinPrice: price("1200")}, []string{"Go in Action"}},
		{"最高价", book.Filter{MaxPrice: price("1200")}, []string{"Python Distilled", "100% Coverage"}},
		{"区间", book.Filter{MinPrice: price("500"), MaxPrice: price("1300")}, []string{"Python Distilled", "Go in Action"}},
		{"区间外", book.Filter{MinPrice: price("2000")}, []string{}},
		{"组合条件", book.Filter{Title: strPtr("o"), MaxPrice: price("1000")}, []string{"Python Distilled", "100% Coverage"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			books, err := f.books.ListPublished(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(books))
		})
	}
}

func TestBookRepository_ListPublishedPriceBounds(t *testing.T) {
	f := newFixture(t)
	ali := f.author(t, "alice", nil)
	f.book(t, ali, "Ten", "10.00", true)

	price := func(s string) *decimal.Decimal {
		d := decimal.RequireFromString(s)
		return &d
	}

	tests := []struct {
		name   string
		filter book.Filter
		want   []string
	}{
		{"下限略高于价格", book.Filter{MinPrice: price("10.001")}, []string{}},
		{"下限略低于价格", book.Filter{MinPrice: price("9.999")}, []string{"Ten"}},
		{"上限略低于价格", book.Filter{MaxPrice: price("9.999")}, []string{}},
		{"上限略低于价格(四舍五入会进位)", book.Filter{MaxPrice: price("9.995")}, []string{}},
		{"上限略高于价格", book.Filter{MaxPrice: price("10.001")}, []string{"Ten"}},
		{"上下限相等", book.Filter{MinPrice: price("10"), MaxPrice: price("10")}, []string{"Ten"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			books, err := f.books.ListPublished(context.Background(), tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(books))
		})
	}
}

// SQLite的LOWER只转换ASCII，非ASCII字母需要大小写一致
func TestBookRepository_ListPublishedNonASCIITitle(t *testing.T) {
	f := newFixture(t)
	ali := f.author(t, "alice", nil)
	f.book(t, ali, "Über Straße", "10", true)

	books, err := f.books.ListPublished(context.Background(), book.Filter{Title: strPtr("Über")})
	require.NoError(t, err)
	assert.Equal(t, []string{"Über Straße"}, titles(books))

	books, err = f.books.ListPublished(context.Background(), book.Filter{Title: strPtr("STRA")})
	require.NoError(t, err)
	assert.Equal(t, []string{"Über Straße"}, titles(books))
}

func TestComparePrice_RoundsBoundsOutward(t *testing.T) {
	bound := func(param string, filter book.Filter) interface{} {
		for _, p := range catalogPredicates {
			if p.param != param {
				continue
			}
			expr, ok := p.build(filter)
			require.True(t, ok)
			return expr.(clause.Expr).Vars[1]
		}
		t.Fatalf("未找到条件 %s", param)
		return nil
	}
	d := func(s string) *decimal.Decimal {
		v := decimal.RequireFromString(s)
		return &v
	}

	assert.Equal(t, "10.01", bound("min_price", book.Filter{MinPrice: d("10.001")}))
	assert.Equal(t, "10.00", bound("min_price", book.Filter{MinPrice: d("10")}))
	assert.Equal(t, "9.99", bound("max_price", book.Filter{MaxPrice: d("9.995")}))
	assert.Equal(t, "1200.21", bound("max_price", book.Filter{MaxPrice: d("1200.21")}))
}

func TestBookRepository_ListPublishedPseudonym(t *testing.T) {
	f := newFixture(t)
	ali := f.author(t, "alice", strPtr("Ali"))
	f.book(t, ali, "Python Distilled", "1000", true)

	books, err := f.books.ListPublished(context.Background(), book.Filter{})
	require.NoError(t, err)
	require.Len(t, books, 1)
	require.NotNil(t, books[0].AuthorPseudonym)
	assert.Equal(t, "Ali", *books[0].AuthorPseudonym)
}

func TestTxManager_Rollback(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.tx.Transaction(ctx, func(ctx context.Context) error {
		require.NoError(t, f.users.Create(ctx, user.NewUser("alice", "alice@example.com", "hash")))
		return apperrors.ErrInternal
	})
	assert.Equal(t, apperrors.ErrInternal, err)

	_, err = f.users.FindByUsername(ctx, "alice")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeUserNotFound))
}
