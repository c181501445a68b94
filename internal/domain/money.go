package domain

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a decimal amount kept as a string to avoid floating-point drift
type Money struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

// Decimal parses the amount; an unparsable amount is treated as zero
func (m Money) Decimal() decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(m.Amount))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// GreaterThan compares the amounts of two money values, ignoring currency
func (m Money) GreaterThan(other Money) bool {
	return m.Decimal().GreaterThan(other.Decimal())
}

// Times multiplies the amount by an integer factor such as a line quantity
func (m Money) Times(factor int) Money {
	return Money{
		Amount:       m.Decimal().Mul(decimal.NewFromInt(int64(factor))).StringFixed(2),
		CurrencyCode: m.CurrencyCode,
	}
}

var moneyPlaceholder = regexp.MustCompile(`\{\{\s*(\w+)\s*\}\}`)

// FormatMoney renders m multiplied by factor. When template is non-empty its
// amount placeholders are substituted, otherwise "<amount> <currency>" is
// returned.
func FormatMoney(m Money, factor int, template string) string {
	value := m.Decimal().Mul(decimal.NewFromInt(int64(factor)))
	if template == "" {
		return groupDigits(value, 2, ",", ".") + " " + m.CurrencyCode
	}

	return moneyPlaceholder.ReplaceAllStringFunc(template, func(match string) string {
		name := moneyPlaceholder.FindStringSubmatch(match)[1]
		switch name {
		case "amount":
			return groupDigits(value, 2, ",", ".")
		case "amount_no_decimals":
			return groupDigits(value, 0, ",", ".")
		case "amount_with_comma_separator":
			return groupDigits(value, 2, ".", ",")
		case "amount_no_decimals_with_comma_separator":
			return groupDigits(value, 0, ".", ",")
		case "amount_with_apostrophe_separator":
			return groupDigits(value, 2, "'", ".")
		default:
			return match
		}
	})
}

// groupDigits formats value with the given number of decimals, inserting
// thousands between every third integer digit.
func groupDigits(value decimal.Decimal, decimals int32, thousands, point string) string {
	fixed := value.Round(decimals).StringFixed(decimals)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}

	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(thousands)
		}
		b.WriteRune(r)
	}

	out := sign + b.String()
	if fracPart != "" {
		out += point + fracPart
	}
	return out
}
