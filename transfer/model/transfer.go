package model

import (
	"time"

	"encore.app/transfer/domain"
	"encore.app/transfer/money"
)

// Transfer is a persisted transaction attempt as returned by the API.
type Transfer struct {
	ID           string                    `json:"id"`
	Account      domain.Account            `json:"account"`
	Transaction  domain.PendingTransaction `json:"transaction"`
	MaxSpendable money.MoneyValue          `json:"max_spendable"`
	Lines        []domain.Formatted        `json:"lines"`
	Execution    *domain.ExecutionResult   `json:"execution,omitempty"`
	Status       domain.ExecutionStatus    `json:"status,omitempty"`
	Version      int64                     `json:"version"`
	CreatedAt    time.Time                 `json:"created_at"`
	UpdatedAt    time.Time                 `json:"updated_at"`
}
