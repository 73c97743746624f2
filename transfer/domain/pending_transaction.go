package domain

import (
	"slices"

	"encore.app/transfer/money"
)

// Limits are the optional bounds applied to one transaction.
type Limits struct {
	Minimum       *money.MoneyValue `json:"minimum,omitempty"`
	Maximum       *money.MoneyValue `json:"maximum,omitempty"`
	MaximumDaily  *money.MoneyValue `json:"maximum_daily,omitempty"`
	MaximumAnnual *money.MoneyValue `json:"maximum_annual,omitempty"`
	MinimumAPI    *money.MoneyValue `json:"minimum_api,omitempty"`
}

func (l Limits) Equal(o Limits) bool {
	return optionalEqual(l.Minimum, o.Minimum) &&
		optionalEqual(l.Maximum, o.Maximum) &&
		optionalEqual(l.MaximumDaily, o.MaximumDaily) &&
		optionalEqual(l.MaximumAnnual, o.MaximumAnnual) &&
		optionalEqual(l.MinimumAPI, o.MinimumAPI)
}

// PendingTransaction is the working state of a transfer being built. Every
// update returns a new snapshot and leaves the receiver untouched.
type PendingTransaction struct {
	amount               money.MoneyValue
	available            money.MoneyValue
	feeAmount            money.MoneyValue
	feeForFullAvailable  money.MoneyValue
	selectedFiatCurrency money.CurrencyType
	feeSelection         FeeSelection
	confirmations        []Confirmation
	limits               Limits
	validationState      ValidationState
	engineState          EngineState
}

// ZeroTransaction is the uninitialized transaction for asset c, priced in USD.
func ZeroTransaction(c money.CurrencyType) PendingTransaction {
	return PendingTransaction{
		amount:               money.Zero(c),
		available:            money.Zero(c),
		feeAmount:            money.Zero(c),
		feeForFullAvailable:  money.Zero(c),
		selectedFiatCurrency: money.USD,
		feeSelection:         EmptyFeeSelection(c),
		validationState:      ValidationUninitialized,
	}
}

func (p PendingTransaction) Amount() money.MoneyValue { return p.amount }
func (p PendingTransaction) Available() money.MoneyValue { return p.available }
func (p PendingTransaction) FeeAmount() money.MoneyValue { return p.feeAmount }
func (p PendingTransaction) FeeForFullAvailable() money.MoneyValue { return p.feeForFullAvailable }
func (p PendingTransaction) SelectedFiatCurrency() money.CurrencyType {
	return p.selectedFiatCurrency
}
func (p PendingTransaction) FeeSelection() FeeSelection { return p.feeSelection }
func (p PendingTransaction) FeeLevel() FeeLevel { return p.feeSelection.SelectedLevel() }
func (p PendingTransaction) Limits() Limits { return p.limits }
func (p PendingTransaction) ValidationState() ValidationState { return p.validationState }
func (p PendingTransaction) EngineState() EngineState { return p.engineState }
func (p PendingTransaction) Confirmations() []Confirmation { return slices.Clone(p.confirmations) }

// Confirmation returns the first confirmation of kind.
func (p PendingTransaction) Confirmation(kind ConfirmationKind) (Confirmation, bool) {
	if i := p.indexOf(kind); i >= 0 {
		return p.confirmations[i], true
	}
	return nil, false
}

// UpdateAmount replaces the amount only. No other field is recomputed.
func (p PendingTransaction) UpdateAmount(amount money.MoneyValue) PendingTransaction {
	p.amount = amount
	return p
}

func (p PendingTransaction) UpdateAmountAvailable(amount, available money.MoneyValue) PendingTransaction {
	p.amount = amount
	p.available = available
	return p
}

func (p PendingTransaction) UpdateAmountAvailableFee(amount, available, fee, feeForFullAvailable money.MoneyValue) PendingTransaction {
	p.amount = amount
	p.available = available
	p.feeAmount = fee
	p.feeForFullAvailable = feeForFullAvailable
	return p
}

func (p PendingTransaction) UpdateValidationState(state ValidationState) PendingTransaction {
	p.validationState = state
	return p
}

func (p PendingTransaction) UpdateSelectedFeeLevel(level FeeLevel) PendingTransaction {
	p.feeSelection = p.feeSelection.WithSelectedLevel(level)
	return p
}

func (p PendingTransaction) UpdateAvailableFeeLevels(levels []FeeLevel) PendingTransaction {
	p.feeSelection = p.feeSelection.WithAvailableLevels(levels)
	return p
}

func (p PendingTransaction) UpdateCustomFee(level FeeLevel, amount money.MoneyValue) PendingTransaction {
	p.feeSelection = p.feeSelection.WithCustomAmount(amount, level)
	return p
}

func (p PendingTransaction) UpdateSelectedFiatCurrency(c money.CurrencyType) PendingTransaction {
	p.selectedFiatCurrency = c
	return p
}

func (p PendingTransaction) UpdateLimits(l Limits) PendingTransaction {
	p.limits = l
	return p
}

func (p PendingTransaction) UpdateEngineState(e EngineState) PendingTransaction {
	p.engineState = e
	return p
}

// Insert replaces the first confirmation of the same kind in place, or adds c
// at the end (or the front when prepend is set).
func (p PendingTransaction) Insert(c Confirmation, prepend bool) PendingTransaction {
	next := slices.Clone(p.confirmations)
	switch i := p.indexOf(c.Kind()); {
	case i >= 0:
		next[i] = c
	case prepend:
		next = slices.Insert(next, 0, c)
	default:
		next = append(next, c)
	}
	p.confirmations = next
	return p
}

// InsertAll appends cs without deduplication.
func (p PendingTransaction) InsertAll(cs []Confirmation) PendingTransaction {
	p.confirmations = append(slices.Clone(p.confirmations), cs...)
	return p
}

// UpdateConfirmations replaces the whole list.
func (p PendingTransaction) UpdateConfirmations(cs []Confirmation) PendingTransaction {
	p.confirmations = slices.Clone(cs)
	return p
}

// Remove drops every confirmation of kind.
func (p PendingTransaction) Remove(kind ConfirmationKind) PendingTransaction {
	p.confirmations = slices.DeleteFunc(slices.Clone(p.confirmations), func(c Confirmation) bool {
		return c.Kind() == kind
	})
	return p
}

func (p PendingTransaction) indexOf(kind ConfirmationKind) int {
	return slices.IndexFunc(p.confirmations, func(c Confirmation) bool { return c.Kind() == kind })
}

// MaxSpendable is min(available, maximum - fee) clamped at zero, or available
// when no maximum limit is set.
func (p PendingTransaction) MaxSpendable() money.MoneyValue {
	if p.limits.Maximum == nil {
		return p.available
	}
	zero := money.Zero(p.available.Currency())
	headroom, err := p.limits.Maximum.Sub(p.feeAmount)
	if err != nil {
		return zero
	}
	spendable, err := money.Min(p.available, headroom)
	if err != nil || spendable.IsNegative() {
		return zero
	}
	return spendable
}

func (p PendingTransaction) TermsOptionValue() bool { return p.optionValue(KindTermsOption) }

func (p PendingTransaction) AgreementOptionValue() bool { return p.optionValue(KindAgreementOption) }

func (p PendingTransaction) optionValue(kind ConfirmationKind) bool {
	c, ok := p.Confirmation(kind)
	if !ok {
		return false
	}
	option, ok := c.(BooleanOption)
	return ok && option.Value
}

// HasFeeLevelChanged reports whether selecting level with amount differs from
// the current selection. The amount only matters for the custom level.
func (p PendingTransaction) HasFeeLevelChanged(level FeeLevel, amount money.MoneyValue) bool {
	if level != p.FeeLevel() {
		return true
	}
	if level != FeeLevelCustom {
		return false
	}
	current, ok := p.feeSelection.CustomAmount()
	return !ok || !current.Equal(amount)
}

// CheckCurrencies verifies that amount, available and fee share a currency.
func (p PendingTransaction) CheckCurrencies() error {
	c := p.amount.Currency()
	for _, v := range []money.MoneyValue{p.available, p.feeAmount} {
		if !v.Currency().Equal(c) {
			return inconsistentCurrencies(c, v.Currency())
		}
	}
	return nil
}

// Equal compares every field except the engine-state side channel.
func (p PendingTransaction) Equal(o PendingTransaction) bool {
	return p.amount.Equal(o.amount) &&
		p.feeAmount.Equal(o.feeAmount) &&
		p.available.Equal(o.available) &&
		p.feeSelection.Equal(o.feeSelection) &&
		p.feeForFullAvailable.Equal(o.feeForFullAvailable) &&
		p.selectedFiatCurrency.Equal(o.selectedFiatCurrency) &&
		p.FeeLevel() == o.FeeLevel() &&
		ConfirmationsEqual(p.confirmations, o.confirmations) &&
		p.limits.Equal(o.limits) &&
		p.validationState == o.validationState
}
