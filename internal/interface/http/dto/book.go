package dto

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"

	"github.com/xiebiao/bookmarket/internal/domain/book"
	apperrors "github.com/xiebiao/bookmarket/pkg/errors"
)

// BookForm 创建/更新图书的表单字段(multipart/form-data或x-www-form-urlencoded)
// nil表示请求中没有该字段;文本字段已去除首尾空白
// 封面文件(cover_image)由handler单独读取
type BookForm struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Price       *string `json:"price"`
	Published   *string `json:"published"`
}

// BookInput 通过校验的图书字段
type BookInput struct {
	Title       string
	Description string
	Price       decimal.Decimal
	Published   *bool
}

// BindBookForm 读取表单字段
// 请求中的author等其他字段一律忽略,作者始终是当前登录用户
func BindBookForm(c *gin.Context) BookForm {
	field := func(name string) *string {
		v, ok := c.GetPostForm(name)
		if !ok {
			return nil
		}
		v = strings.TrimSpace(v)
		return &v
	}
	return BookForm{
		Title:       field("title"),
		Description: field("description"),
		Price:       field("price"),
		Published:   field("published"),
	}
}

// Validate 校验并转换
// 字段规则:
//   - title:       必填,3-255字符
//   - description: 必填,至少3字符
//   - price:       必填,decimal(10,2),非负
//   - published:   可选布尔值
func (f BookForm) Validate() (*BookInput, error) {
	in := &BookInput{}

	err := validation.ValidateStruct(&f,
		validation.Field(&f.Title,
			validation.NotNil.Error(MsgRequired),
			validation.Required.Error(MsgBlank),
			validation.RuneLength(0, 255).Error(msgMaxLength(255)),
			validation.RuneLength(3, 0).Error(msgMinLength(3)),
		),
		validation.Field(&f.Description,
			validation.NotNil.Error(MsgRequired),
			validation.Required.Error(MsgBlank),
			validation.RuneLength(3, 0).Error(msgMinLength(3)),
		),
		validation.Field(&f.Price,
			validation.NotNil.Error(MsgRequired),
			validation.By(func(interface{}) error {
				price, err := book.ParsePrice(*f.Price)
				if err != nil {
					return err
				}
				in.Price = price
				return nil
			}),
		),
		validation.Field(&f.Published,
			validation.By(func(interface{}) error {
				if f.Published == nil {
					return nil
				}
				v, ok := parseBool(*f.Published)
				if !ok {
					return errors.New(MsgBoolean)
				}
				in.Published = &v
				return nil
			}),
		),
	)
	if err != nil {
		return nil, ValidationError(err)
	}

	in.Title = *f.Title
	in.Description = *f.Description
	return in, nil
}

var (
	trueValues  = map[string]bool{"t": true, "y": true, "yes": true, "true": true, "on": true, "1": true}
	falseValues = map[string]bool{"f": true, "n": true, "no": true, "false": true, "off": true, "0": true}
)

// parseBool 表单布尔值:true/false、1/0、yes/no、on/off(不区分大小写)
func parseBool(s string) (bool, bool) {
	s = strings.ToLower(s)
	switch {
	case trueValues[s]:
		return true, true
	case falseValues[s]:
		return false, true
	}
	return false, false
}

// CatalogQuery 公开目录的查询参数
// 未知参数忽略;文本参数出现即生效(空字符串匹配全部)
type CatalogQuery struct {
	Title           *string `form:"title"`
	Description     *string `form:"description"`
	AuthorPseudonym *string `form:"author_pseudonym"`
	MinPrice        string  `form:"min_price"`
	MaxPrice        string  `form:"max_price"`
}

// BindCatalogQuery 读取查询参数并转换为book.Filter
func BindCatalogQuery(c *gin.Context) (book.Filter, error) {
	text := func(name string) *string {
		if v, ok := c.GetQuery(name); ok {
			return &v
		}
		return nil
	}

	filter := book.Filter{
		Title:           text("title"),
		Description:     text("description"),
		AuthorPseudonym: text("author_pseudonym"),
	}

	fields := map[string][]string{}
	for name, target := range map[string]**decimal.Decimal{
		"min_price": &filter.MinPrice,
		"max_price": &filter.MaxPrice,
	} {
		raw := strings.TrimSpace(c.Query(name))
		if raw == "" {
			continue
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			fields[name] = []string{MsgNumber}
			continue
		}
		*target = &d
	}
	if len(fields) > 0 {
		return book.Filter{}, apperrors.NewValidation(fields)
	}

	return filter, nil
}
