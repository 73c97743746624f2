package ledger

import (
	"context"
)

//go:generate mockgen -source=querier.go -destination=../../mocks/repository/ledger_repo/querier.go -package=ledger_repo

type Querier interface {
	CreateExecution(ctx context.Context, arg CreateExecutionParams) (Execution, error)
	DebitBalance(ctx context.Context, arg DebitBalanceParams) (int64, error)
	GetBalance(ctx context.Context, arg GetBalanceParams) (Balance, error)
	GetExecution(ctx context.Context, id string) (Execution, error)
	UpdateExecutionStatus(ctx context.Context, arg UpdateExecutionStatusParams) (int64, error)
	UpsertBalance(ctx context.Context, arg UpsertBalanceParams) (Balance, error)
}

var _ Querier = (*Queries)(nil)
