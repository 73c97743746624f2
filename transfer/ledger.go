package transfer

import (
	"context"

	"encore.app/transfer/domain"
	"encore.app/transfer/money"
)

//go:generate mockgen -source=ledger.go -destination=mocks/ledger/ledger.go -package=ledger

// Ledger is the write side of the balance ledger used by the private
// endpoints.
type Ledger interface {
	SetBalance(ctx context.Context, accountID string, v money.MoneyValue) (money.MoneyValue, error)
	SetStatus(ctx context.Context, executionID string, status domain.ExecutionStatus) error
}
