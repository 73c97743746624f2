package transaction

import (
	"context"

	"encore.app/transfer/domain"
	"encore.app/transfer/money"
)

//go:generate mockgen -source=collaborators.go -destination=../../mocks/business/collaborators/collaborators.go -package=collaborators

// BalanceSource returns the spendable balance of an account in its asset.
type BalanceSource interface {
	Balance(ctx context.Context, account domain.Account) (money.MoneyValue, error)
}

// QuoteSource prices one major unit of base in quote.
type QuoteSource interface {
	Quote(ctx context.Context, base, quote money.CurrencyType) (money.MoneyValue, error)
}

// FeeEstimator lists the fee levels offered for an asset and prices them.
// The estimate may be denominated in a different asset than the transfer.
type FeeEstimator interface {
	Levels(ctx context.Context, asset money.CurrencyType) ([]domain.FeeLevel, error)
	Estimate(ctx context.Context, level domain.FeeLevel, asset money.CurrencyType) (money.MoneyValue, error)
}

// ExecutionSink accepts a finalized transaction for broadcast.
type ExecutionSink interface {
	Execute(ctx context.Context, account domain.Account, tx domain.PendingTransaction, secret string) (domain.ExecutionResult, error)
}

// LimitsProvider returns the limits that apply to an account's action and tier.
type LimitsProvider interface {
	Limits(ctx context.Context, account domain.Account) (domain.Limits, error)
}

// StatusSource reports the current status of an executed transaction.
type StatusSource interface {
	Status(ctx context.Context, executionID string) (domain.ExecutionStatus, error)
}

// AddressValidator checks a destination for an asset.
type AddressValidator interface {
	Validate(c money.CurrencyType, addr string) error
}
