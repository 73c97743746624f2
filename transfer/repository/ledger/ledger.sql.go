package ledger

import (
	"context"
)

const getBalance = `-- name: GetBalance :one
SELECT account_id, asset, minor::text, updated_at FROM balances
WHERE account_id = $1 AND asset = $2`

type GetBalanceParams struct {
	AccountID string `json:"account_id"`
	Asset     string `json:"asset"`
}

func (q *Queries) GetBalance(ctx context.Context, arg GetBalanceParams) (Balance, error) {
	row := q.db.QueryRow(ctx, getBalance, arg.AccountID, arg.Asset)
	var i Balance
	err := row.Scan(&i.AccountID, &i.Asset, &i.Minor, &i.UpdatedAt)
	return i, err
}

const upsertBalance = `-- name: UpsertBalance :one
INSERT INTO balances (account_id, asset, minor)
VALUES ($1, $2, $3::text::numeric)
ON CONFLICT (account_id, asset) DO UPDATE SET minor = EXCLUDED.minor, updated_at = NOW()
RETURNING account_id, asset, minor::text, updated_at`

type UpsertBalanceParams struct {
	AccountID string `json:"account_id"`
	Asset     string `json:"asset"`
	Minor     string `json:"minor"`
}

func (q *Queries) UpsertBalance(ctx context.Context, arg UpsertBalanceParams) (Balance, error) {
	row := q.db.QueryRow(ctx, upsertBalance, arg.AccountID, arg.Asset, arg.Minor)
	var i Balance
	err := row.Scan(&i.AccountID, &i.Asset, &i.Minor, &i.UpdatedAt)
	return i, err
}

const debitBalance = `-- name: DebitBalance :execrows
UPDATE balances SET minor = minor - $3::text::numeric, updated_at = NOW()
WHERE account_id = $1 AND asset = $2 AND minor >= $3::text::numeric`

type DebitBalanceParams struct {
	AccountID string `json:"account_id"`
	Asset     string `json:"asset"`
	Minor     string `json:"minor"`
}

// DebitBalance affects no row when the balance is missing or too small.
func (q *Queries) DebitBalance(ctx context.Context, arg DebitBalanceParams) (int64, error) {
	result, err := q.db.Exec(ctx, debitBalance, arg.AccountID, arg.Asset, arg.Minor)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const executionColumns = `id, fingerprint, account_id, asset, amount_minor::text, fee_asset, fee_minor::text, destination, memo, status, submitted_at, updated_at`

func scanExecution(row interface{ Scan(...any) error }) (Execution, error) {
	var i Execution
	err := row.Scan(
		&i.ID,
		&i.Fingerprint,
		&i.AccountID,
		&i.Asset,
		&i.AmountMinor,
		&i.FeeAsset,
		&i.FeeMinor,
		&i.Destination,
		&i.Memo,
		&i.Status,
		&i.SubmittedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createExecution = `-- name: CreateExecution :one
INSERT INTO executions (id, fingerprint, account_id, asset, amount_minor, fee_asset, fee_minor, destination, memo, status)
VALUES ($1, $2, $3, $4, $5::text::numeric, $6, $7::text::numeric, $8, $9, $10)
RETURNING ` + executionColumns

type CreateExecutionParams struct {
	ID          string `json:"id"`
	Fingerprint string `json:"fingerprint"`
	AccountID   string `json:"account_id"`
	Asset       string `json:"asset"`
	AmountMinor string `json:"amount_minor"`
	FeeAsset    string `json:"fee_asset"`
	FeeMinor    string `json:"fee_minor"`
	Destination string `json:"destination"`
	Memo        string `json:"memo"`
	Status      string `json:"status"`
}

func (q *Queries) CreateExecution(ctx context.Context, arg CreateExecutionParams) (Execution, error) {
	row := q.db.QueryRow(ctx, createExecution,
		arg.ID,
		arg.Fingerprint,
		arg.AccountID,
		arg.Asset,
		arg.AmountMinor,
		arg.FeeAsset,
		arg.FeeMinor,
		arg.Destination,
		arg.Memo,
		arg.Status,
	)
	return scanExecution(row)
}

const getExecution = `-- name: GetExecution :one
SELECT ` + executionColumns + ` FROM executions WHERE id = $1`

func (q *Queries) GetExecution(ctx context.Context, id string) (Execution, error) {
	return scanExecution(q.db.QueryRow(ctx, getExecution, id))
}

const updateExecutionStatus = `-- name: UpdateExecutionStatus :execrows
UPDATE executions SET status = $2, updated_at = NOW() WHERE id = $1`

type UpdateExecutionStatusParams struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func (q *Queries) UpdateExecutionStatus(ctx context.Context, arg UpdateExecutionStatusParams) (int64, error) {
	result, err := q.db.Exec(ctx, updateExecutionStatus, arg.ID, arg.Status)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
