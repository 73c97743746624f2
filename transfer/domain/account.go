package domain

import "encore.app/transfer/money"

type Action string

const (
	ActionSend Action = "send"
	ActionSwap Action = "swap"
	ActionSell Action = "sell"
)

// Account is the source of funds for one transaction attempt.
type Account struct {
	ID     string             `json:"id"`
	Asset  money.CurrencyType `json:"asset"`
	Action Action             `json:"action"`
	Tier   UserTier           `json:"tier"`
}

// WithAsset is the same account viewed in another asset, used to read the
// balance that pays network fees.
func (a Account) WithAsset(c money.CurrencyType) Account {
	a.Asset = c
	return a
}
