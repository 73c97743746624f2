package sessions

import (
	"context"
)

const sessionColumns = `id, account_id, asset, action, tier, snapshot, version, execution, status, created_at, updated_at`

func scanSession(row interface{ Scan(...any) error }) (Session, error) {
	var i Session
	err := row.Scan(
		&i.ID,
		&i.AccountID,
		&i.Asset,
		&i.Action,
		&i.Tier,
		&i.Snapshot,
		&i.Version,
		&i.Execution,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createSession = `-- name: CreateSession :one
INSERT INTO sessions (id, account_id, asset, action, tier, snapshot)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + sessionColumns

type CreateSessionParams struct {
	ID        string `json:"id"`
	AccountID string `json:"account_id"`
	Asset     string `json:"asset"`
	Action    string `json:"action"`
	Tier      string `json:"tier"`
	Snapshot  []byte `json:"snapshot"`
}

func (q *Queries) CreateSession(ctx context.Context, arg CreateSessionParams) (Session, error) {
	row := q.db.QueryRow(ctx, createSession,
		arg.ID,
		arg.AccountID,
		arg.Asset,
		arg.Action,
		arg.Tier,
		arg.Snapshot,
	)
	return scanSession(row)
}

const getSession = `-- name: GetSession :one
SELECT ` + sessionColumns + ` FROM sessions WHERE id = $1`

func (q *Queries) GetSession(ctx context.Context, id string) (Session, error) {
	return scanSession(q.db.QueryRow(ctx, getSession, id))
}

const swapSession = `-- name: SwapSession :one
UPDATE sessions
SET snapshot = $3, execution = $4, status = $5, version = version + 1, updated_at = NOW()
WHERE id = $1 AND version = $2
RETURNING ` + sessionColumns

type SwapSessionParams struct {
	ID        string `json:"id"`
	Version   int64  `json:"version"`
	Snapshot  []byte `json:"snapshot"`
	Execution []byte `json:"execution"`
	Status    string `json:"status"`
}

// SwapSession only matches when the stored version equals arg.Version.
func (q *Queries) SwapSession(ctx context.Context, arg SwapSessionParams) (Session, error) {
	row := q.db.QueryRow(ctx, swapSession,
		arg.ID,
		arg.Version,
		arg.Snapshot,
		arg.Execution,
		arg.Status,
	)
	return scanSession(row)
}

const deleteSession = `-- name: DeleteSession :execrows
DELETE FROM sessions WHERE id = $1`

func (q *Queries) DeleteSession(ctx context.Context, id string) (int64, error) {
	result, err := q.db.Exec(ctx, deleteSession, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
