package domain

import "time"

type ExecutionStatus string

const (
	ExecutionPending   ExecutionStatus = "pending"
	ExecutionSubmitted ExecutionStatus = "submitted"
	ExecutionConfirmed ExecutionStatus = "confirmed"
	ExecutionFailed    ExecutionStatus = "failed"
	ExecutionExpired   ExecutionStatus = "expired"
)

// IsTerminal reports whether no further status change is expected.
func (s ExecutionStatus) IsTerminal() bool {
	switch s {
	case ExecutionConfirmed, ExecutionFailed, ExecutionExpired:
		return true
	default:
		return false
	}
}

// ExecutionResult identifies an executed transaction.
type ExecutionResult struct {
	ID          string    `json:"id"`
	Hash        string    `json:"hash,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// IsKnown reports whether s is one of the defined statuses.
func (s ExecutionStatus) IsKnown() bool {
	switch s {
	case ExecutionPending, ExecutionSubmitted, ExecutionConfirmed, ExecutionFailed, ExecutionExpired:
		return true
	default:
		return false
	}
}
