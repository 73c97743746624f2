package money

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidFiatAmount   = fmt.Errorf("%w: fiat", ErrInvalidAmount)
	ErrInvalidCryptoAmount = fmt.Errorf("%w: crypto", ErrInvalidAmount)
	ErrCurrencyMismatch    = errors.New("currency mismatch")
	ErrUnsupportedCurrency = errors.New("currency not supported")
)

// Errors from this package are plain wrapped sentinels so they can be
// matched with errors.Is. Callers serving an API attach their own codes.

func mismatch(a, b CurrencyType) error {
	return fmt.Errorf("%w: %s (%s) vs %s (%s)", ErrCurrencyMismatch, a.code, a.kind, b.code, b.kind)
}

func invalidAmount(input string, c CurrencyType) error {
	sentinel := ErrInvalidAmount
	switch c.kind {
	case KindFiat:
		sentinel = ErrInvalidFiatAmount
	case KindCrypto:
		sentinel = ErrInvalidCryptoAmount
	}
	return fmt.Errorf("%w: cannot parse %q as %s", sentinel, input, c.code)
}

func invalidInput(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}

func unsupportedCurrency(code string) error {
	return fmt.Errorf("%w: %q", ErrUnsupportedCurrency, code)
}
