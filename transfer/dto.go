package transfer

import (
	"strings"
	"time"

	"encore.dev/beta/errs"
	"golang.org/x/text/language"

	"encore.app/transfer/model"
	"encore.app/transfer/money"
)

// Money is an amount in minor units together with its display form.
type Money struct {
	Minor    string `json:"minor"`
	Currency string `json:"currency"`
	Display  string `json:"display"`
}

type Notice struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

type Line struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Execution struct {
	ID          string    `json:"id"`
	Hash        string    `json:"hash,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
	Status      string    `json:"status"`
}

type Transfer struct {
	ID               string     `json:"id"`
	AccountID        string     `json:"account_id"`
	Asset            string     `json:"asset"`
	Action           string     `json:"action"`
	Tier             string     `json:"tier,omitempty"`
	FiatCurrency     string     `json:"fiat_currency"`
	Amount           Money      `json:"amount"`
	Available        Money      `json:"available"`
	Fee              Money      `json:"fee"`
	MaxSpendable     Money      `json:"max_spendable"`
	FeeLevel         string     `json:"fee_level"`
	FeeLevels        []string   `json:"fee_levels"`
	ValidationState  string     `json:"validation_state"`
	Notice           *Notice    `json:"notice,omitempty"`
	Lines            []Line     `json:"lines"`
	InvoiceExpiresAt *time.Time `json:"invoice_expires_at,omitempty"`
	Execution        *Execution `json:"execution,omitempty"`
	Version          int64      `json:"version"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type TransferResponse struct {
	Transfer Transfer `json:"transfer"`
}

func toMoney(v money.MoneyValue, locale language.Tag) Money {
	return Money{
		Minor:    v.MinorString(),
		Currency: v.Currency().Code(),
		Display:  v.DisplayString(true, locale),
	}
}

func toResponse(t *model.Transfer, locale language.Tag) *TransferResponse {
	tx := t.Transaction
	out := Transfer{
		ID:              t.ID,
		AccountID:       t.Account.ID,
		Asset:           t.Account.Asset.Code(),
		Action:          string(t.Account.Action),
		Tier:            string(t.Account.Tier),
		FiatCurrency:    tx.SelectedFiatCurrency().Code(),
		Amount:          toMoney(tx.Amount(), locale),
		Available:       toMoney(tx.Available(), locale),
		Fee:             toMoney(tx.FeeAmount(), locale),
		MaxSpendable:    toMoney(t.MaxSpendable, locale),
		FeeLevel:        string(tx.FeeLevel()),
		ValidationState: string(tx.ValidationState()),
		Lines:           make([]Line, 0, len(t.Lines)),
		Version:         t.Version,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
	for _, level := range tx.FeeSelection().AvailableLevels() {
		out.FeeLevels = append(out.FeeLevels, string(level))
	}
	if title, message, ok := tx.ValidationState().Notice(); ok {
		out.Notice = &Notice{Title: title, Message: message}
	}
	for _, l := range t.Lines {
		out.Lines = append(out.Lines, Line{Label: l.Label, Value: l.Value})
	}
	if at, ok := tx.EngineState().InvoiceExpiresAt(); ok {
		out.InvoiceExpiresAt = &at
	}
	if t.Execution != nil {
		out.Execution = &Execution{
			ID:          t.Execution.ID,
			Hash:        t.Execution.Hash,
			SubmittedAt: t.Execution.SubmittedAt,
			Status:      string(t.Status),
		}
	}
	return &TransferResponse{Transfer: out}
}

// localeOf picks the preferred tag of an Accept-Language header. An empty or
// malformed header falls back to en-US.
func localeOf(header string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return money.DefaultLocale
	}
	return tags[0]
}

// parseMoney reads a major-unit amount written in locale.
func parseMoney(amount, currency string, locale language.Tag) (money.MoneyValue, error) {
	c, err := money.Lookup(strings.ToUpper(currency))
	if err != nil {
		return money.MoneyValue{}, errs.WrapCode(err, errs.InvalidArgument, err.Error())
	}
	v, err := money.NewFromMajor(amount, c, locale)
	if err != nil {
		return money.MoneyValue{}, errs.WrapCode(err, errs.InvalidArgument, err.Error())
	}
	return v, nil
}
