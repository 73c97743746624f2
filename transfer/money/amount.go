package money

import (
	"math/big"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

var canonicalMajor = regexp.MustCompile(`^-?(\d+\.?\d*|\.\d+)$`)

// Amount is a signed minor-unit integer owned by a currency.
// The wrapped big.Int is never mutated after construction.
type Amount struct {
	minor    *big.Int
	currency CurrencyType
}

// NewAmountFromMinor wraps a minor-unit integer. The argument is copied.
func NewAmountFromMinor(minor *big.Int, c CurrencyType) Amount {
	if minor == nil {
		return Amount{minor: new(big.Int), currency: c}
	}
	return Amount{minor: new(big.Int).Set(minor), currency: c}
}

// NewAmountFromMinorInt64 wraps a minor-unit int64.
func NewAmountFromMinorInt64(minor int64, c CurrencyType) Amount {
	return Amount{minor: big.NewInt(minor), currency: c}
}

// NewAmountFromMinorString parses a base-10 minor-unit integer.
func NewAmountFromMinorString(minor string, c CurrencyType) (Amount, error) {
	v, ok := new(big.Int).SetString(strings.TrimSpace(minor), 10)
	if !ok {
		return Amount{}, invalidAmount(minor, c)
	}
	return Amount{minor: v, currency: c}, nil
}

// NewAmountFromMajor parses a locale-formatted major-unit decimal such as
// "1,234.56" (en) or "1.234,56" (de). Digits beyond the currency precision are
// rounded half away from zero.
func NewAmountFromMajor(major string, c CurrencyType, locale language.Tag) (Amount, error) {
	normalized, ok := separatorsFor(locale).normalize(major)
	if !ok {
		return Amount{}, invalidAmount(major, c)
	}
	return parseCanonicalMajor(normalized, major, c)
}

func parseCanonicalMajor(normalized, original string, c CurrencyType) (Amount, error) {
	if !canonicalMajor.MatchString(normalized) {
		return Amount{}, invalidAmount(original, c)
	}
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return Amount{}, invalidAmount(original, c)
	}
	return amountFromDecimal(d, c), nil
}

func amountFromDecimal(d decimal.Decimal, c CurrencyType) Amount {
	return Amount{
		minor:    d.Shift(int32(c.precision)).Round(0).BigInt(),
		currency: c,
	}
}

// ZeroAmount is the additive identity for c.
func ZeroAmount(c CurrencyType) Amount {
	return Amount{minor: new(big.Int), currency: c}
}

// OneAmount is one major unit of c.
func OneAmount(c CurrencyType) Amount {
	return Amount{minor: pow10(c.precision), currency: c}
}

func pow10(n uint) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}

func (a Amount) value() *big.Int {
	if a.minor == nil {
		return new(big.Int)
	}
	return a.minor
}

func (a Amount) Currency() CurrencyType { return a.currency }

// Minor returns a copy of the minor-unit integer.
func (a Amount) Minor() *big.Int { return new(big.Int).Set(a.value()) }

func (a Amount) MinorString() string { return a.value().String() }

// Major returns the exact major-unit value.
func (a Amount) Major() decimal.Decimal {
	return decimal.NewFromBigInt(a.value(), -int32(a.currency.precision))
}

func (a Amount) Sign() int { return a.value().Sign() }
func (a Amount) IsZero() bool { return a.Sign() == 0 }
func (a Amount) IsPositive() bool { return a.Sign() > 0 }
func (a Amount) IsNegative() bool { return a.Sign() < 0 }

func (a Amount) compatible(b Amount) error {
	if !a.currency.Equal(b.currency) {
		return mismatch(a.currency, b.currency)
	}
	return nil
}

func (a Amount) Add(b Amount) (Amount, error) {
	if err := a.compatible(b); err != nil {
		return Amount{}, err
	}
	return Amount{minor: new(big.Int).Add(a.value(), b.value()), currency: a.currency}, nil
}

func (a Amount) Sub(b Amount) (Amount, error) {
	if err := a.compatible(b); err != nil {
		return Amount{}, err
	}
	return Amount{minor: new(big.Int).Sub(a.value(), b.value()), currency: a.currency}, nil
}

// MulInt multiplies by an integer scalar.
func (a Amount) MulInt(n int64) Amount {
	return Amount{minor: new(big.Int).Mul(a.value(), big.NewInt(n)), currency: a.currency}
}

func (a Amount) Negate() Amount {
	return Amount{minor: new(big.Int).Neg(a.value()), currency: a.currency}
}

func (a Amount) Abs() Amount {
	return Amount{minor: new(big.Int).Abs(a.value()), currency: a.currency}
}

// Cmp orders two amounts of the same currency.
func (a Amount) Cmp(b Amount) (int, error) {
	if err := a.compatible(b); err != nil {
		return 0, err
	}
	return a.value().Cmp(b.value()), nil
}

func (a Amount) LessThan(b Amount) (bool, error) {
	c, err := a.Cmp(b)
	return c < 0, err
}

func (a Amount) GreaterThan(b Amount) (bool, error) {
	c, err := a.Cmp(b)
	return c > 0, err
}

// EqualTo compares values of the same currency and fails across currencies.
func (a Amount) EqualTo(b Amount) (bool, error) {
	c, err := a.Cmp(b)
	return c == 0, err
}

// Equal is structural equality: same currency and same minor value.
func (a Amount) Equal(b Amount) bool {
	return a.currency.Equal(b.currency) && a.value().Cmp(b.value()) == 0
}

// DisplayString renders the major value with locale separators. Fiat values
// always show every decimal place; crypto values drop trailing zeros but keep one.
func (a Amount) DisplayString(includeSymbol bool, locale language.Tag) string {
	return a.display(a.currency.precision, includeSymbol, locale)
}

// ShortDisplayString is DisplayString rounded to the currency's display precision.
func (a Amount) ShortDisplayString(includeSymbol bool, locale language.Tag) string {
	return a.display(a.currency.displayPrecision, includeSymbol, locale)
}

func (a Amount) display(places uint, includeSymbol bool, locale language.Tag) string {
	fixed := a.Major().StringFixed(int32(places))
	negative := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart, fracPart, _ := strings.Cut(fixed, ".")
	if a.currency.kind == KindCrypto && fracPart != "" {
		fracPart = strings.TrimRight(fracPart, "0")
		if fracPart == "" {
			fracPart = "0"
		}
	}

	body := separatorsFor(locale).format(intPart, fracPart)
	if negative && strings.Trim(intPart+fracPart, "0") == "" {
		negative = false
	}

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	switch a.currency.kind {
	case KindFiat:
		if includeSymbol {
			b.WriteString(a.currency.symbol)
		}
		b.WriteString(body)
	case KindCrypto:
		b.WriteString(body)
		if includeSymbol {
			b.WriteByte(' ')
			b.WriteString(a.currency.code)
		}
	default:
		b.WriteString(body)
	}
	return b.String()
}

func (a Amount) String() string {
	return a.DisplayString(true, DefaultLocale)
}
