package sessions

import (
	"context"
)

//go:generate mockgen -source=querier.go -destination=../../mocks/repository/sessions_repo/querier.go -package=sessions_repo

type Querier interface {
	CreateSession(ctx context.Context, arg CreateSessionParams) (Session, error)
	DeleteSession(ctx context.Context, id string) (int64, error)
	GetSession(ctx context.Context, id string) (Session, error)
	SwapSession(ctx context.Context, arg SwapSessionParams) (Session, error)
}

var _ Querier = (*Queries)(nil)
