package transaction

import (
	"time"

	"encore.app/transfer/domain"
	"encore.app/transfer/money"
)

type validationInput struct {
	tx             domain.PendingTransaction
	initialized    bool
	inFlight       bool
	now            time.Time
	balance        money.MoneyValue
	networkFee     money.MoneyValue
	feeBalance     *money.MoneyValue
	hasDestination bool
	destinationErr error
	rules          Rules
}

// evaluate decides the validation state of a snapshot. The first failing
// rule wins.
func evaluate(in validationInput) domain.ValidationState {
	tx := in.tx
	if !in.initialized {
		return domain.ValidationUninitialized
	}
	if in.inFlight {
		return domain.ValidationTransactionInFlight
	}
	if invoiceExpired(tx.EngineState(), in.now) {
		return domain.ValidationInvoiceExpired
	}
	if tx.CheckCurrencies() != nil {
		return domain.ValidationUnknownError
	}

	amount := tx.Amount()
	if !amount.IsPositive() {
		return domain.ValidationInvalidAmount
	}
	if state, ok := checkLimits(tx, amount); !ok {
		return state
	}

	over, err := amount.GreaterThan(in.balance)
	if err != nil {
		return domain.ValidationUnknownError
	}
	if over {
		return domain.ValidationInsufficientFunds
	}
	if tx.FeeAmount().IsPositive() {
		short, err := amount.GreaterThan(tx.Available())
		if err != nil {
			return domain.ValidationUnknownError
		}
		if short {
			return domain.ValidationInsufficientFundsForFees
		}
	}
	if in.feeBalance != nil {
		short, err := in.feeBalance.LessThan(in.networkFee)
		if err != nil {
			return domain.ValidationUnknownError
		}
		if short {
			return domain.ValidationInsufficientGas
		}
	}

	if !in.hasDestination || in.destinationErr != nil {
		return domain.ValidationInvalidAddress
	}
	if !tx.FeeSelection().IsValid() {
		return domain.ValidationOptionInvalid
	}
	if in.rules.MemoRequired {
		if memo, ok := tx.EngineState().Memo(); !ok || memo == "" {
			return domain.ValidationOptionInvalid
		}
	}
	if in.rules.TermsRequired && !tx.TermsOptionValue() {
		return domain.ValidationOptionInvalid
	}
	return domain.ValidationCanExecute
}

func invoiceExpired(e domain.EngineState, now time.Time) bool {
	if c, ok := e.Countdown(); ok && c.Expired() {
		return true
	}
	at, ok := e.InvoiceExpiresAt()
	return ok && !now.Before(at)
}

func checkLimits(tx domain.PendingTransaction, amount money.MoneyValue) (domain.ValidationState, bool) {
	limits := tx.Limits()
	for _, minimum := range []*money.MoneyValue{limits.Minimum, limits.MinimumAPI} {
		if minimum == nil {
			continue
		}
		below, err := amount.LessThan(*minimum)
		if err != nil {
			return domain.ValidationUnknownError, false
		}
		if below {
			return domain.ValidationBelowMinimumLimit, false
		}
	}

	if limits.Maximum != nil {
		over, err := amount.GreaterThan(*limits.Maximum)
		if err != nil {
			return domain.ValidationUnknownError, false
		}
		if over {
			return overLimitState(tx.EngineState()), false
		}
	}
	for _, maximum := range []*money.MoneyValue{limits.MaximumDaily, limits.MaximumAnnual} {
		if maximum == nil {
			continue
		}
		over, err := amount.GreaterThan(*maximum)
		if err != nil {
			return domain.ValidationUnknownError, false
		}
		if over {
			return domain.ValidationOverMaximumLimit, false
		}
	}
	return "", true
}

func overLimitState(e domain.EngineState) domain.ValidationState {
	tiers, ok := e.UserTiers()
	if !ok {
		return domain.ValidationOverMaximumLimit
	}
	switch tiers.Current {
	case domain.TierSilver:
		return domain.ValidationOverSilverTierLimit
	case domain.TierGold:
		return domain.ValidationOverGoldTierLimit
	default:
		return domain.ValidationOverMaximumLimit
	}
}
