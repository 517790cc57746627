package book

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// 价格精度:decimal(10,2)
const (
	PriceMaxDigits       = 10
	PriceDecimalPlaces   = 2
	PriceMaxWholeDigits  = PriceMaxDigits - PriceDecimalPlaces
	priceMaxStringLength = 1000
)

// 价格校验错误,消息直接返回给客户端
var (
	ErrPriceInvalid        = errors.New("A valid number is required.")
	ErrPriceTooLong        = errors.New("String value too large.")
	ErrPriceMaxDigits      = errors.New("Ensure that there are no more than 10 digits in total.")
	ErrPriceDecimalPlaces  = errors.New("Ensure that there are no more than 2 decimal places.")
	ErrPriceMaxWholeDigits = errors.New("Ensure that there are no more than 8 digits before the decimal point.")
	ErrPriceNegative       = errors.New("Ensure this value is greater than or equal to 0.")
)

// ParsePrice 解析并校验价格
//
// 顺序:能否解析 → 总位数 → 小数位数 → 整数位数 → 非负。
// 超出精度直接拒绝,不做截断或四舍五入;通过后统一为2位小数。
func ParsePrice(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if len(raw) > priceMaxStringLength {
		return decimal.Zero, ErrPriceTooLong
	}

	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, ErrPriceInvalid
	}

	if err := checkPrecision(value); err != nil {
		return decimal.Zero, err
	}

	if value.IsNegative() {
		return decimal.Zero, ErrPriceNegative
	}

	return value.Round(PriceDecimalPlaces), nil
}

// checkPrecision 按字面值统计位数(保留输入中的末尾0,1.500算3位小数)
func checkPrecision(value decimal.Decimal) error {
	digits := len(value.Coefficient().Text(10))
	if value.Coefficient().Sign() < 0 {
		digits-- // 负号
	}
	exponent := int(value.Exponent())

	var total, whole, places int
	switch {
	case exponent >= 0:
		total = digits + exponent
		whole = total
	case digits > -exponent:
		total = digits
		places = -exponent
		whole = total - places
	default:
		total = -exponent
		places = total
	}

	if total > PriceMaxDigits {
		return ErrPriceMaxDigits
	}
	if places > PriceDecimalPlaces {
		return ErrPriceDecimalPlaces
	}
	if whole > PriceMaxWholeDigits {
		return ErrPriceMaxWholeDigits
	}
	return nil
}
