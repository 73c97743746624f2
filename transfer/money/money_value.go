package money

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

// MoneyValue is either a fiat or a crypto amount. The variant is the variant
// of the wrapped amount's currency, so the tag can never disagree with it.
type MoneyValue struct {
	amount Amount
}

// FromAmount wraps an Amount.
func FromAmount(a Amount) MoneyValue {
	return MoneyValue{amount: a}
}

func Zero(c CurrencyType) MoneyValue { return MoneyValue{amount: ZeroAmount(c)} }

func One(c CurrencyType) MoneyValue { return MoneyValue{amount: OneAmount(c)} }

// NewFromMajor parses a locale-formatted major-unit string.
func NewFromMajor(major string, c CurrencyType, locale language.Tag) (MoneyValue, error) {
	a, err := NewAmountFromMajor(major, c, locale)
	if err != nil {
		return MoneyValue{}, err
	}
	return MoneyValue{amount: a}, nil
}

// NewFromMinor parses a base-10 minor-unit string.
func NewFromMinor(minor string, c CurrencyType) (MoneyValue, error) {
	a, err := NewAmountFromMinorString(minor, c)
	if err != nil {
		return MoneyValue{}, err
	}
	return MoneyValue{amount: a}, nil
}

func NewFromMinorInt64(minor int64, c CurrencyType) MoneyValue {
	return MoneyValue{amount: NewAmountFromMinorInt64(minor, c)}
}

// MustMajor is NewFromMajor for literals in the default locale.
func MustMajor(major string, c CurrencyType) MoneyValue {
	v, err := NewFromMajor(major, c, DefaultLocale)
	if err != nil {
		panic(err)
	}
	return v
}

func (m MoneyValue) Kind() Kind { return m.amount.currency.kind }
func (m MoneyValue) IsFiat() bool { return m.Kind() == KindFiat }
func (m MoneyValue) IsCrypto() bool { return m.Kind() == KindCrypto }
func (m MoneyValue) Currency() CurrencyType { return m.amount.currency }
func (m MoneyValue) Amount() Amount { return m.amount }
func (m MoneyValue) Minor() *big.Int { return m.amount.Minor() }
func (m MoneyValue) MinorString() string { return m.amount.MinorString() }
func (m MoneyValue) Major() decimal.Decimal { return m.amount.Major() }
func (m MoneyValue) IsZero() bool { return m.amount.IsZero() }
func (m MoneyValue) IsPositive() bool { return m.amount.IsPositive() }
func (m MoneyValue) IsNegative() bool { return m.amount.IsNegative() }

// Fiat unwraps the fiat variant.
func (m MoneyValue) Fiat() (Amount, bool) {
	return m.amount, m.IsFiat()
}

// Crypto unwraps the crypto variant.
func (m MoneyValue) Crypto() (Amount, bool) {
	return m.amount, m.IsCrypto()
}

func (m MoneyValue) Add(o MoneyValue) (MoneyValue, error) {
	a, err := m.amount.Add(o.amount)
	return MoneyValue{amount: a}, err
}

func (m MoneyValue) Sub(o MoneyValue) (MoneyValue, error) {
	a, err := m.amount.Sub(o.amount)
	return MoneyValue{amount: a}, err
}

func (m MoneyValue) MulInt(n int64) MoneyValue {
	return MoneyValue{amount: m.amount.MulInt(n)}
}

func (m MoneyValue) Negate() MoneyValue {
	return MoneyValue{amount: m.amount.Negate()}
}

func (m MoneyValue) Cmp(o MoneyValue) (int, error) { return m.amount.Cmp(o.amount) }

func (m MoneyValue) LessThan(o MoneyValue) (bool, error) { return m.amount.LessThan(o.amount) }

func (m MoneyValue) GreaterThan(o MoneyValue) (bool, error) { return m.amount.GreaterThan(o.amount) }

func (m MoneyValue) EqualTo(o MoneyValue) (bool, error) { return m.amount.EqualTo(o.amount) }

// Equal is structural equality; values of different currencies are unequal.
func (m MoneyValue) Equal(o MoneyValue) bool { return m.amount.Equal(o.amount) }

// Convert treats rate as the price of one major unit of m's currency in the
// rate's currency. The product is computed exactly, printed, and re-parsed in
// the rate's currency, which rounds it half away from zero to that precision.
func (m MoneyValue) Convert(rate MoneyValue) (MoneyValue, error) {
	product := m.Major().Mul(rate.Major())
	return reparse(product, rate.Currency())
}

// ConvertInverse divides m, expressed in the rate's currency, by rate and
// yields a value in c. A zero m or zero rate returns Zero(c) without dividing.
func (m MoneyValue) ConvertInverse(rate MoneyValue, c CurrencyType) (MoneyValue, error) {
	if m.IsZero() || rate.IsZero() {
		return Zero(c), nil
	}
	if !m.Currency().Equal(rate.Currency()) {
		return MoneyValue{}, mismatch(m.Currency(), rate.Currency())
	}
	quotient := m.Major().DivRound(rate.Major(), int32(c.precision))
	return reparse(quotient, c)
}

func reparse(d decimal.Decimal, c CurrencyType) (MoneyValue, error) {
	printed := d.String()
	a, err := parseCanonicalMajor(printed, printed, c)
	if err != nil {
		return MoneyValue{}, invalidInput(fmt.Sprintf("converted value %q is not representable in %s", printed, c.code))
	}
	return MoneyValue{amount: a}, nil
}

// ValueBefore returns V such that V*(1+percentageChange) equals m, computed at
// the currency's display precision. A change of -100% yields zero.
func (m MoneyValue) ValueBefore(percentageChange decimal.Decimal) MoneyValue {
	factor := decimal.NewFromInt(1).Add(percentageChange)
	if factor.IsZero() {
		return Zero(m.Currency())
	}
	prior := m.Major().DivRound(factor, int32(m.Currency().displayPrecision))
	return MoneyValue{amount: amountFromDecimal(prior, m.Currency())}
}

func (m MoneyValue) DisplayString(includeSymbol bool, locale language.Tag) string {
	return m.amount.DisplayString(includeSymbol, locale)
}

func (m MoneyValue) ShortDisplayString(includeSymbol bool, locale language.Tag) string {
	return m.amount.ShortDisplayString(includeSymbol, locale)
}

func (m MoneyValue) String() string { return m.amount.String() }

// Min returns the smaller of two values of the same currency.
func Min(a, b MoneyValue) (MoneyValue, error) {
	c, err := a.Cmp(b)
	if err != nil {
		return MoneyValue{}, err
	}
	if c <= 0 {
		return a, nil
	}
	return b, nil
}

// Max returns the larger of two values of the same currency.
func Max(a, b MoneyValue) (MoneyValue, error) {
	c, err := a.Cmp(b)
	if err != nil {
		return MoneyValue{}, err
	}
	if c >= 0 {
		return a, nil
	}
	return b, nil
}

type wireValue struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// MarshalJSON encodes the minor-unit integer as a string next to the currency code.
func (m MoneyValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireValue{Amount: m.MinorString(), Currency: m.Currency().Code()})
}

func (m *MoneyValue) UnmarshalJSON(data []byte) error {
	var w wireValue
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Currency == "" {
		*m = MoneyValue{}
		return nil
	}
	c, err := Lookup(w.Currency)
	if err != nil {
		return err
	}
	v, err := NewFromMinor(w.Amount, c)
	if err != nil {
		return err
	}
	*m = v
	return nil
}
