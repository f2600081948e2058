package format

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxFractionDigits caps FormatCurrency output.
const MaxFractionDigits = 20

const (
	decimalSep   = ","
	thousandsSep = " "
)

var leadingFloat = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// NormalizeDecimal swaps the first comma for a period, the way amount inputs are
// cleaned before parsing.
func NormalizeDecimal(s string) string {
	return strings.Replace(s, ",", ".", 1)
}

// ParseDecimal reads the leading number in s after normalization. "12abc" is 12,
// "abc" and "" are not numbers.
func ParseDecimal(s string) (float64, bool) {
	s = NormalizeDecimal(strings.TrimSpace(s))
	m := leadingFloat.FindString(s)
	if m == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// FormatCurrency renders v with a comma decimal separator, space-grouped
// thousands and at most 20 fraction digits, without padding zeros.
// Nil and non-numeric values render as "".
func FormatCurrency(v any) string {
	d, ok := toDecimal(v)
	if !ok {
		return ""
	}
	return localize(d.Round(MaxFractionDigits).String())
}

// FormatTotal renders aggregates with exactly two fraction digits.
func FormatTotal(v any) string {
	d, ok := toDecimal(v)
	if !ok {
		return ""
	}
	return localize(d.StringFixed(2))
}

// FormatWhole rounds to an integer, used by the transaction history tables.
func FormatWhole(v any) string {
	d, ok := toDecimal(v)
	if !ok {
		return ""
	}
	return localize(d.StringFixed(0))
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case nil:
		return decimal.Zero, false
	case decimal.Decimal:
		return x, true
	case *decimal.Decimal:
		if x == nil {
			return decimal.Zero, false
		}
		return *x, true
	case float64:
		return fromFloat(x)
	case *float64:
		if x == nil {
			return decimal.Zero, false
		}
		return fromFloat(*x)
	case float32:
		return fromFloat(float64(x))
	case int:
		return decimal.NewFromInt(int64(x)), true
	case int32:
		return decimal.NewFromInt(int64(x)), true
	case int64:
		return decimal.NewFromInt(x), true
	case string:
		// Whole-string numeric text only, with a comma accepted as the decimal
		// separator. A trailing unit makes it non-numeric.
		s := NormalizeDecimal(strings.TrimSpace(x))
		if s == "" {
			return decimal.Zero, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return decimal.Zero, false
		}
		return fromFloat(f)
	default:
		return decimal.Zero, false
	}
}

func fromFloat(f float64) (decimal.Decimal, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(f), true
}

// localize rewrites a plain "-1234.5" into "-1 234,5".
func localize(plain string) string {
	neg := strings.HasPrefix(plain, "-")
	plain = strings.TrimPrefix(plain, "-")

	intPart, frac, hasFrac := strings.Cut(plain, ".")

	var b strings.Builder
	if neg && strings.Trim(plain, "0.") != "" {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(thousandsSep)
		}
		b.WriteRune(r)
	}
	if hasFrac && frac != "" {
		b.WriteString(decimalSep)
		b.WriteString(frac)
	}
	return b.String()
}
