package database

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookmarket/internal/domain/book"
)

// catalogPredicate 一个筛选参数到SQL条件的映射
type catalogPredicate struct {
	param string
	build func(f book.Filter) (clause.Expression, bool)
}

// catalogPredicates 公开目录的筛选条件,按顺序以AND组合
//
//	1 title            books.title            不区分大小写的子串
//	2 description      books.description      不区分大小写的子串
//	3 author_pseudonym authors.pseudonym      不区分大小写的子串(NULL按空字符串)
//	4 min_price        books.price            >=
//	5 max_price        books.price            <=
var catalogPredicates = []catalogPredicate{
	{"title", func(f book.Filter) (clause.Expression, bool) {
		return containsFold(clause.Column{Table: "books", Name: "title"}, f.Title)
	}},
	{"description", func(f book.Filter) (clause.Expression, bool) {
		return containsFold(clause.Column{Table: "books", Name: "description"}, f.Description)
	}},
	{"author_pseudonym", func(f book.Filter) (clause.Expression, bool) {
		// Joins("Author")的表别名为Author
		return containsFold(clause.Expr{
			SQL:  "COALESCE(?, '')",
			Vars: []interface{}{clause.Column{Table: "Author", Name: "pseudonym"}},
		}, f.AuthorPseudonym)
	}},
	{"min_price", func(f book.Filter) (clause.Expression, bool) {
		return comparePrice(">=", f.MinPrice, decimal.Decimal.RoundCeil)
	}},
	{"max_price", func(f book.Filter) (clause.Expression, bool) {
		return comparePrice("<=", f.MaxPrice, decimal.Decimal.RoundFloor)
	}},
}

// containsFold LOWER(col) LIKE LOWER('%value%') ESCAPE '!'
// 空字符串得到'%%',匹配所有行
func containsFold(column interface{}, value *string) (clause.Expression, bool) {
	if value == nil {
		return nil, false
	}
	return clause.Expr{
		SQL:  "LOWER(?) LIKE LOWER(?) ESCAPE '!'",
		Vars: []interface{}{column, "%" + escapeLike(*value) + "%"},
	}, true
}

// comparePrice 价格比较
// 库中价格固定2位小数，下限向上、上限向下取整到2位后比较结果不变，
// 且各数据库不会再对参数做舍入(MySQL/PostgreSQL按DECIMAL(x,2)转换时四舍五入)
func comparePrice(op string, value *decimal.Decimal, round func(decimal.Decimal, int32) decimal.Decimal) (clause.Expression, bool) {
	if value == nil {
		return nil, false
	}
	return clause.Expr{
		SQL:  "? " + op + " ?",
		Vars: []interface{}{clause.Column{Table: "books", Name: "price"}, round(*value, book.PriceDecimalPlaces).StringFixed(book.PriceDecimalPlaces)},
	}, true
}
