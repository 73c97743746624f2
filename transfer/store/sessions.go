package store

import (
	"context"
	"errors"
	"time"

	"encore.app/transfer/domain"
)

//go:generate mockgen -source=sessions.go -destination=../mocks/store/sessions/sessions.go -package=sessions

var (
	ErrNotFound      = errors.New("session not found")
	ErrStaleSnapshot = errors.New("session snapshot is stale")
)

// Record is a stored transaction attempt. Version starts at 1 and grows by
// one with every successful Swap.
type Record struct {
	ID          string
	Account     domain.Account
	Transaction domain.PendingTransaction
	Execution   *domain.ExecutionResult
	Status      domain.ExecutionStatus
	Version     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Sessions persists records. Swap is a compare-and-swap on Version: it fails
// with ErrStaleSnapshot unless rec.Version is the stored version.
type Sessions interface {
	Create(ctx context.Context, rec Record) (Record, error)
	Get(ctx context.Context, id string) (Record, error)
	Swap(ctx context.Context, rec Record) (Record, error)
	Delete(ctx context.Context, id string) error
}
