package domain

import (
	"fmt"

	"encore.app/transfer/money"
)

func inconsistentCurrencies(want, got money.CurrencyType) error {
	return fmt.Errorf("%w: pending transaction mixes %s and %s", money.ErrCurrencyMismatch, want.Code(), got.Code())
}
