package book

import (
	"github.com/shopspring/decimal"
)

// Filter 公开目录的筛选条件
// 字段为nil表示未提供该参数;空字符串不是"未提供",它匹配所有值
type Filter struct {
	Title           *string
	Description     *string
	AuthorPseudonym *string
	MinPrice        *decimal.Decimal
	MaxPrice        *decimal.Decimal
}

// Empty 是否没有任何条件
func (f Filter) Empty() bool {
	return f.Title == nil && f.Description == nil && f.AuthorPseudonym == nil &&
		f.MinPrice == nil && f.MaxPrice == nil
}

// EmptyRange 价格区间为空(min > max),无需查询即可返回空结果
func (f Filter) EmptyRange() bool {
	return f.MinPrice != nil && f.MaxPrice != nil && f.MinPrice.GreaterThan(*f.MaxPrice)
}
