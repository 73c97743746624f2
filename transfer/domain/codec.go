package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"encore.app/transfer/money"
)

type feeSelectionJSON struct {
	Selected     FeeLevel           `json:"selected"`
	Available    []FeeLevel         `json:"available"`
	CustomAmount *money.MoneyValue  `json:"custom_amount,omitempty"`
	Asset        money.CurrencyType `json:"asset"`
}

func (f FeeSelection) MarshalJSON() ([]byte, error) {
	out := feeSelectionJSON{
		Selected:  f.selectedLevel,
		Available: f.availableLevels,
		Asset:     f.asset,
	}
	if out.Available == nil {
		out.Available = []FeeLevel{}
	}
	if f.hasCustom {
		custom := f.customAmount
		out.CustomAmount = &custom
	}
	return json.Marshal(out)
}

func (f *FeeSelection) UnmarshalJSON(data []byte) error {
	var in feeSelectionJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	next := EmptyFeeSelection(in.Asset).WithAvailableLevels(in.Available)
	if in.CustomAmount != nil {
		next = next.WithCustomAmount(*in.CustomAmount, in.Selected)
	} else {
		next = next.WithSelectedLevel(in.Selected)
	}
	*f = next
	return nil
}

type confirmationJSON struct {
	Kind    ConfirmationKind `json:"kind"`
	Payload json.RawMessage  `json:"payload"`
}

func decodeAs[T Confirmation](raw json.RawMessage) (Confirmation, error) {
	var c T
	err := json.Unmarshal(raw, &c)
	return c, err
}

var confirmationDecoders = map[ConfirmationKind]func(json.RawMessage) (Confirmation, error){
	KindExchangePriceOption:  decodeAs[ExchangePriceOption],
	KindFeedTotal:            decodeAs[FeedTotal],
	KindTotal:                decodeAs[Total],
	KindDestination:          decodeAs[Destination],
	KindSource:               decodeAs[Source],
	KindFeeSelection:         decodeAs[FeeSelectionConfirmation],
	KindBitPayCountdown:      decodeAs[BitPayCountdown],
	KindErrorNotice:          decodeAs[ErrorNotice],
	KindDescription:          decodeAs[Description],
	KindMemo:                 decodeAs[Memo],
	KindSwapSourceValue:      decodeAs[SwapSourceValue],
	KindSwapDestinationValue: decodeAs[SwapDestinationValue],
	KindSwapExchangeRate:     decodeAs[SwapExchangeRate],
	KindNetworkFee:           decodeAs[NetworkFee],
	KindTermsOption:          decodeAs[BooleanOption],
	KindAgreementOption:      decodeAs[BooleanOption],
	KindGenericOption:        decodeAs[BooleanOption],
}

// EncodeConfirmations writes each confirmation as a kind-tagged payload.
func EncodeConfirmations(cs []Confirmation) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, 0, len(cs))
	for _, c := range cs {
		payload, err := json.Marshal(c)
		if err != nil {
			return nil, err
		}
		entry, err := json.Marshal(confirmationJSON{Kind: c.Kind(), Payload: payload})
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, nil
}

// DecodeConfirmations reverses EncodeConfirmations.
func DecodeConfirmations(entries []json.RawMessage) ([]Confirmation, error) {
	out := make([]Confirmation, 0, len(entries))
	for _, entry := range entries {
		var in confirmationJSON
		if err := json.Unmarshal(entry, &in); err != nil {
			return nil, err
		}
		decode, ok := confirmationDecoders[in.Kind]
		if !ok {
			return nil, fmt.Errorf("unknown confirmation kind %q", in.Kind)
		}
		c, err := decode(in.Payload)
		if err != nil {
			return nil, fmt.Errorf("decode %s confirmation: %w", in.Kind, err)
		}
		out = append(out, c)
	}
	return out, nil
}

type engineStateJSON struct {
	InvoiceExpiresAt *time.Time         `json:"invoice_expires_at,omitempty"`
	Memo             *string            `json:"memo,omitempty"`
	SessionToken     string             `json:"session_token,omitempty"`
	UserTiers        *UserTiersSnapshot `json:"user_tiers,omitempty"`
}

type pendingTransactionJSON struct {
	Amount               money.MoneyValue   `json:"amount"`
	Available            money.MoneyValue   `json:"available"`
	FeeAmount            money.MoneyValue   `json:"fee_amount"`
	FeeForFullAvailable  money.MoneyValue   `json:"fee_for_full_available"`
	SelectedFiatCurrency money.CurrencyType `json:"selected_fiat_currency"`
	FeeSelection         FeeSelection       `json:"fee_selection"`
	Confirmations        []json.RawMessage  `json:"confirmations"`
	Limits               Limits             `json:"limits"`
	ValidationState      ValidationState    `json:"validation_state"`
	Engine               engineStateJSON    `json:"engine"`
}

// MarshalJSON persists everything except live engine handles. A running
// countdown is reduced to its deadline.
func (p PendingTransaction) MarshalJSON() ([]byte, error) {
	confirmations, err := EncodeConfirmations(p.confirmations)
	if err != nil {
		return nil, err
	}
	out := pendingTransactionJSON{
		Amount:               p.amount,
		Available:            p.available,
		FeeAmount:            p.feeAmount,
		FeeForFullAvailable:  p.feeForFullAvailable,
		SelectedFiatCurrency: p.selectedFiatCurrency,
		FeeSelection:         p.feeSelection,
		Confirmations:        confirmations,
		Limits:               p.limits,
		ValidationState:      p.validationState,
		Engine: engineStateJSON{
			SessionToken: p.engineState.sessionToken,
			UserTiers:    p.engineState.userTiers,
		},
	}
	if at, ok := p.engineState.InvoiceExpiresAt(); ok {
		out.Engine.InvoiceExpiresAt = &at
	}
	if memo, ok := p.engineState.Memo(); ok {
		out.Engine.Memo = &memo
	}
	return json.Marshal(out)
}

func (p *PendingTransaction) UnmarshalJSON(data []byte) error {
	var in pendingTransactionJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	confirmations, err := DecodeConfirmations(in.Confirmations)
	if err != nil {
		return err
	}
	state := in.ValidationState
	if !state.IsKnown() {
		state = ValidationUnknownError
	}

	engine := EngineState{sessionToken: in.Engine.SessionToken, userTiers: in.Engine.UserTiers}
	if in.Engine.InvoiceExpiresAt != nil {
		engine = engine.WithInvoiceDeadline(*in.Engine.InvoiceExpiresAt)
	}
	if in.Engine.Memo != nil {
		engine = engine.WithMemo(*in.Engine.Memo)
	}

	*p = PendingTransaction{
		amount:               in.Amount,
		available:            in.Available,
		feeAmount:            in.FeeAmount,
		feeForFullAvailable:  in.FeeForFullAvailable,
		selectedFiatCurrency: in.SelectedFiatCurrency,
		feeSelection:         in.FeeSelection,
		confirmations:        confirmations,
		limits:               in.Limits,
		validationState:      state,
		engineState:          engine,
	}
	return nil
}
