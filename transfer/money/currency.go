package money

import (
	"encoding/json"
	"strings"

	"golang.org/x/text/currency"
)

// Kind is the variant of a CurrencyType.
type Kind int

const (
	KindFiat Kind = iota + 1
	KindCrypto
)

func (k Kind) String() string {
	switch k {
	case KindFiat:
		return "fiat"
	case KindCrypto:
		return "crypto"
	default:
		return "unknown"
	}
}

// CurrencyType identifies a fiat or crypto currency together with its precision.
// Values are immutable and comparable; two CurrencyTypes are compatible only
// when they share both the variant and the code.
type CurrencyType struct {
	kind             Kind
	code             string
	name             string
	symbol           string
	precision        uint
	displayPrecision uint
}

// Fiat builds a fiat currency definition.
func Fiat(code, name, symbol string, precision uint) CurrencyType {
	return CurrencyType{
		kind:             KindFiat,
		code:             strings.ToUpper(code),
		name:             name,
		symbol:           symbol,
		precision:        precision,
		displayPrecision: precision,
	}
}

// Crypto builds a crypto currency definition. displayPrecision is capped at precision.
func Crypto(code, name string, precision, displayPrecision uint) CurrencyType {
	if displayPrecision > precision {
		displayPrecision = precision
	}
	return CurrencyType{
		kind:             KindCrypto,
		code:             strings.ToUpper(code),
		name:             name,
		symbol:           strings.ToUpper(code),
		precision:        precision,
		displayPrecision: displayPrecision,
	}
}

func (c CurrencyType) Kind() Kind { return c.kind }
func (c CurrencyType) Code() string { return c.code }
func (c CurrencyType) Name() string { return c.name }
func (c CurrencyType) Symbol() string { return c.symbol }
func (c CurrencyType) Precision() uint { return c.precision }
func (c CurrencyType) DisplayPrecision() uint { return c.displayPrecision }
func (c CurrencyType) IsFiat() bool { return c.kind == KindFiat }
func (c CurrencyType) IsCrypto() bool { return c.kind == KindCrypto }
func (c CurrencyType) IsZero() bool { return c.kind == 0 && c.code == "" }
func (c CurrencyType) String() string { return c.code }

// Equal reports whether both currencies are the same variant with the same code.
func (c CurrencyType) Equal(other CurrencyType) bool {
	return c.kind == other.kind && c.code == other.code
}

var (
	USD = Fiat("USD", "US Dollar", "$", 2)
	EUR = Fiat("EUR", "Euro", "€", 2)
	GBP = Fiat("GBP", "British Pound", "£", 2)
	JPY = Fiat("JPY", "Japanese Yen", "¥", 0)
	GEL = Fiat("GEL", "Georgian Lari", "₾", 2)

	BTC  = Crypto("BTC", "Bitcoin", 8, 8)
	BCH  = Crypto("BCH", "Bitcoin Cash", 8, 8)
	ETH  = Crypto("ETH", "Ethereum", 18, 8)
	XLM  = Crypto("XLM", "Stellar", 7, 7)
	TRX  = Crypto("TRX", "Tron", 6, 6)
	USDT = Crypto("USDT", "Tether", 6, 2)
	USDC = Crypto("USDC", "USD Coin", 6, 2)
)

var registry = map[string]CurrencyType{}

func init() {
	for _, c := range []CurrencyType{USD, EUR, GBP, JPY, GEL, BTC, BCH, ETH, XLM, TRX, USDT, USDC} {
		registry[c.code] = c
	}
}

// Lookup resolves a currency code against the built-in definitions. Unknown
// ISO 4217 codes resolve to a fiat currency using the standard ISO rounding.
func Lookup(code string) (CurrencyType, error) {
	upper := strings.ToUpper(strings.TrimSpace(code))
	if c, ok := registry[upper]; ok {
		return c, nil
	}

	unit, err := currency.ParseISO(upper)
	if err != nil {
		return CurrencyType{}, unsupportedCurrency(code)
	}
	scale, _ := currency.Standard.Rounding(unit)
	return Fiat(unit.String(), unit.String(), unit.String(), uint(scale)), nil
}

// MustLookup is Lookup for static codes known to be valid.
func MustLookup(code string) CurrencyType {
	c, err := Lookup(code)
	if err != nil {
		panic(err)
	}
	return c
}

// MarshalJSON encodes the currency as its code.
func (c CurrencyType) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.code)
}

func (c *CurrencyType) UnmarshalJSON(data []byte) error {
	var code string
	if err := json.Unmarshal(data, &code); err != nil {
		return err
	}
	if code == "" {
		*c = CurrencyType{}
		return nil
	}
	resolved, err := Lookup(code)
	if err != nil {
		return err
	}
	*c = resolved
	return nil
}
