package domain

import (
	"fmt"
	"time"

	"encore.app/transfer/money"
)

// ConfirmationKind identifies a confirmation line independent of its payload.
// A pending transaction built through Insert holds at most one line per kind.
type ConfirmationKind string

const (
	KindExchangePriceOption  ConfirmationKind = "exchange_price_option"
	KindFeedTotal            ConfirmationKind = "feed_total"
	KindTotal                ConfirmationKind = "total"
	KindDestination          ConfirmationKind = "destination"
	KindSource               ConfirmationKind = "source"
	KindFeeSelection         ConfirmationKind = "fee_selection"
	KindBitPayCountdown      ConfirmationKind = "bitpay_countdown"
	KindErrorNotice          ConfirmationKind = "error_notice"
	KindDescription          ConfirmationKind = "description"
	KindMemo                 ConfirmationKind = "memo"
	KindSwapSourceValue      ConfirmationKind = "swap_source_value"
	KindSwapDestinationValue ConfirmationKind = "swap_destination_value"
	KindSwapExchangeRate     ConfirmationKind = "swap_exchange_rate"
	KindNetworkFee           ConfirmationKind = "network_fee"
	KindTermsOption          ConfirmationKind = "terms_option"
	KindAgreementOption      ConfirmationKind = "agreement_option"
	KindGenericOption        ConfirmationKind = "generic_option"
)

// Formatted is the label/value pair shown for a confirmation.
type Formatted struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Confirmation is a single labeled fact shown before execution. The set of
// implementations is closed to this package.
type Confirmation interface {
	Kind() ConfirmationKind
	// Formatted returns false when the line is not user visible.
	Formatted() (Formatted, bool)
	equal(Confirmation) bool
}

var (
	_ Confirmation = ExchangePriceOption{}
	_ Confirmation = FeedTotal{}
	_ Confirmation = Total{}
	_ Confirmation = Destination{}
	_ Confirmation = Source{}
	_ Confirmation = FeeSelectionConfirmation{}
	_ Confirmation = BitPayCountdown{}
	_ Confirmation = ErrorNotice{}
	_ Confirmation = Description{}
	_ Confirmation = Memo{}
	_ Confirmation = SwapSourceValue{}
	_ Confirmation = SwapDestinationValue{}
	_ Confirmation = SwapExchangeRate{}
	_ Confirmation = NetworkFee{}
	_ Confirmation = BooleanOption{}
)

// ConfirmationsEqual compares two lists element by element, payload included.
func ConfirmationsEqual(a, b []Confirmation) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Kind() != b[i].Kind() || !a[i].equal(b[i]) {
			return false
		}
	}
	return true
}

func rateLine(base money.CurrencyType, rate money.MoneyValue) string {
	return fmt.Sprintf("1 %s = %s", base.Code(), rate.DisplayString(true, money.DefaultLocale))
}

// ExchangePriceOption is the quoted price of one unit of Base.
type ExchangePriceOption struct {
	Base money.CurrencyType
	Rate money.MoneyValue
}

func (ExchangePriceOption) Kind() ConfirmationKind { return KindExchangePriceOption }

func (c ExchangePriceOption) Formatted() (Formatted, bool) {
	return Formatted{Label: "Exchange Price", Value: rateLine(c.Base, c.Rate)}, true
}

func (c ExchangePriceOption) equal(o Confirmation) bool {
	other, ok := o.(ExchangePriceOption)
	return ok && c.Base.Equal(other.Base) && c.Rate.Equal(other.Rate)
}

// FeedTotal is the amount plus fee in the asset, with optional fiat equivalents.
type FeedTotal struct {
	Amount     money.MoneyValue
	Fee        money.MoneyValue
	FiatAmount *money.MoneyValue
	FiatFee    *money.MoneyValue
}

func (FeedTotal) Kind() ConfirmationKind { return KindFeedTotal }

func (c FeedTotal) Formatted() (Formatted, bool) {
	value := c.Amount.DisplayString(true, money.DefaultLocale) + " + " + c.Fee.DisplayString(true, money.DefaultLocale)
	if sum, err := c.Amount.Add(c.Fee); err == nil {
		value = sum.DisplayString(true, money.DefaultLocale)
	}
	if c.FiatAmount != nil && c.FiatFee != nil {
		if fiat, err := c.FiatAmount.Add(*c.FiatFee); err == nil {
			value += " (" + fiat.DisplayString(true, money.DefaultLocale) + ")"
		}
	}
	return Formatted{Label: "Total", Value: value}, true
}

func (c FeedTotal) equal(o Confirmation) bool {
	other, ok := o.(FeedTotal)
	return ok && c.Amount.Equal(other.Amount) && c.Fee.Equal(other.Fee) &&
		optionalEqual(c.FiatAmount, other.FiatAmount) && optionalEqual(c.FiatFee, other.FiatFee)
}

type Total struct {
	Total money.MoneyValue
	Fiat  *money.MoneyValue
}

func (Total) Kind() ConfirmationKind { return KindTotal }

func (c Total) Formatted() (Formatted, bool) {
	value := c.Total.DisplayString(true, money.DefaultLocale)
	if c.Fiat != nil {
		value += " (" + c.Fiat.DisplayString(true, money.DefaultLocale) + ")"
	}
	return Formatted{Label: "Total", Value: value}, true
}

func (c Total) equal(o Confirmation) bool {
	other, ok := o.(Total)
	return ok && c.Total.Equal(other.Total) && optionalEqual(c.Fiat, other.Fiat)
}

type Destination struct {
	Value string
}

func (Destination) Kind() ConfirmationKind { return KindDestination }

func (c Destination) Formatted() (Formatted, bool) {
	return Formatted{Label: "To", Value: c.Value}, true
}

func (c Destination) equal(o Confirmation) bool {
	other, ok := o.(Destination)
	return ok && c == other
}

type Source struct {
	Value string
}

func (Source) Kind() ConfirmationKind { return KindSource }

func (c Source) Formatted() (Formatted, bool) {
	return Formatted{Label: "From", Value: c.Value}, true
}

func (c Source) equal(o Confirmation) bool {
	other, ok := o.(Source)
	return ok && c == other
}

// FeeSelectionConfirmation shows the chosen fee tier and its estimate.
type FeeSelectionConfirmation struct {
	Selection FeeSelection
	Fee       money.MoneyValue
}

func (FeeSelectionConfirmation) Kind() ConfirmationKind { return KindFeeSelection }

func (c FeeSelectionConfirmation) Formatted() (Formatted, bool) {
	if c.Selection.SelectedLevel() == FeeLevelNone {
		return Formatted{}, false
	}
	value := fmt.Sprintf("%s (%s)", c.Fee.DisplayString(true, money.DefaultLocale), c.Selection.SelectedLevel())
	return Formatted{Label: "Network Fee", Value: value}, true
}

func (c FeeSelectionConfirmation) equal(o Confirmation) bool {
	other, ok := o.(FeeSelectionConfirmation)
	return ok && c.Selection.Equal(other.Selection) && c.Fee.Equal(other.Fee)
}

// BitPayCountdown shows the time left on an invoice.
type BitPayCountdown struct {
	Remaining time.Duration
}

func (BitPayCountdown) Kind() ConfirmationKind { return KindBitPayCountdown }

func (c BitPayCountdown) Formatted() (Formatted, bool) {
	remaining := c.Remaining.Round(time.Second)
	if remaining < 0 {
		remaining = 0
	}
	minutes := int(remaining / time.Minute)
	seconds := int((remaining % time.Minute) / time.Second)
	return Formatted{Label: "Invoice expires in", Value: fmt.Sprintf("%d:%02d", minutes, seconds)}, true
}

func (c BitPayCountdown) equal(o Confirmation) bool {
	other, ok := o.(BitPayCountdown)
	return ok && c == other
}

// ErrorNotice projects a blocking validation state to user-facing text.
type ErrorNotice struct {
	State ValidationState
}

func (ErrorNotice) Kind() ConfirmationKind { return KindErrorNotice }

func (c ErrorNotice) Formatted() (Formatted, bool) {
	title, message, ok := c.State.Notice()
	if !ok {
		return Formatted{}, false
	}
	return Formatted{Label: title, Value: message}, true
}

func (c ErrorNotice) equal(o Confirmation) bool {
	other, ok := o.(ErrorNotice)
	return ok && c == other
}

type Description struct {
	Value string
}

func (Description) Kind() ConfirmationKind { return KindDescription }

func (c Description) Formatted() (Formatted, bool) {
	if c.Value == "" {
		return Formatted{}, false
	}
	return Formatted{Label: "Description", Value: c.Value}, true
}

func (c Description) equal(o Confirmation) bool {
	other, ok := o.(Description)
	return ok && c == other
}

type Memo struct {
	Value    string
	Required bool
}

func (Memo) Kind() ConfirmationKind { return KindMemo }

func (c Memo) Formatted() (Formatted, bool) {
	if c.Value == "" {
		return Formatted{}, false
	}
	return Formatted{Label: "Memo", Value: c.Value}, true
}

func (c Memo) equal(o Confirmation) bool {
	other, ok := o.(Memo)
	return ok && c == other
}

type SwapSourceValue struct {
	Value money.MoneyValue
}

func (SwapSourceValue) Kind() ConfirmationKind { return KindSwapSourceValue }

func (c SwapSourceValue) Formatted() (Formatted, bool) {
	return Formatted{Label: "Swap", Value: c.Value.DisplayString(true, money.DefaultLocale)}, true
}

func (c SwapSourceValue) equal(o Confirmation) bool {
	other, ok := o.(SwapSourceValue)
	return ok && c.Value.Equal(other.Value)
}

type SwapDestinationValue struct {
	Value money.MoneyValue
}

func (SwapDestinationValue) Kind() ConfirmationKind { return KindSwapDestinationValue }

func (c SwapDestinationValue) Formatted() (Formatted, bool) {
	return Formatted{Label: "Receive", Value: c.Value.DisplayString(true, money.DefaultLocale)}, true
}

func (c SwapDestinationValue) equal(o Confirmation) bool {
	other, ok := o.(SwapDestinationValue)
	return ok && c.Value.Equal(other.Value)
}

type SwapExchangeRate struct {
	Base money.CurrencyType
	Rate money.MoneyValue
}

func (SwapExchangeRate) Kind() ConfirmationKind { return KindSwapExchangeRate }

func (c SwapExchangeRate) Formatted() (Formatted, bool) {
	return Formatted{Label: "Exchange Rate", Value: rateLine(c.Base, c.Rate)}, true
}

func (c SwapExchangeRate) equal(o Confirmation) bool {
	other, ok := o.(SwapExchangeRate)
	return ok && c.Base.Equal(other.Base) && c.Rate.Equal(other.Rate)
}

type NetworkFee struct {
	Fee     money.MoneyValue
	FiatFee *money.MoneyValue
}

func (NetworkFee) Kind() ConfirmationKind { return KindNetworkFee }

func (c NetworkFee) Formatted() (Formatted, bool) {
	value := c.Fee.DisplayString(true, money.DefaultLocale)
	if c.FiatFee != nil {
		value += " (" + c.FiatFee.DisplayString(true, money.DefaultLocale) + ")"
	}
	return Formatted{Label: "Network Fee", Value: value}, true
}

func (c NetworkFee) equal(o Confirmation) bool {
	other, ok := o.(NetworkFee)
	return ok && c.Fee.Equal(other.Fee) && optionalEqual(c.FiatFee, other.FiatFee)
}

// BooleanOptionType selects which kind a BooleanOption occupies.
type BooleanOptionType string

const (
	OptionTerms     BooleanOptionType = "terms"
	OptionAgreement BooleanOptionType = "agreement"
	OptionGeneric   BooleanOptionType = "generic"
)

// BooleanOption is a user toggle such as accepting terms.
type BooleanOption struct {
	Type  BooleanOptionType
	Label string
	Value bool
}

func (c BooleanOption) Kind() ConfirmationKind {
	switch c.Type {
	case OptionTerms:
		return KindTermsOption
	case OptionAgreement:
		return KindAgreementOption
	default:
		return KindGenericOption
	}
}

// Formatted is always false: options are rendered as toggles, not lines.
func (c BooleanOption) Formatted() (Formatted, bool) { return Formatted{}, false }

func (c BooleanOption) equal(o Confirmation) bool {
	other, ok := o.(BooleanOption)
	return ok && c == other
}

func optionalEqual(a, b *money.MoneyValue) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
