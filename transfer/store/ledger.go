package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"encore.dev/beta/errs"
	"encore.dev/rlog"

	"encore.app/transfer/domain"
	"encore.app/transfer/money"
	"encore.app/transfer/repository/ledger"
)

// Ledger keeps account balances and the outbox of executed transfers. It
// serves balances, accepts executions and reports their status.
type Ledger struct {
	q    ledger.Querier
	inTx func(ctx context.Context, fn func(q ledger.Querier) error) error
	now  func() time.Time
}

// NewLedger reads through q and runs executions in transactions on db.
func NewLedger(q ledger.Querier, db *pgxpool.Pool) *Ledger {
	return &Ledger{
		q: q,
		inTx: func(ctx context.Context, fn func(q ledger.Querier) error) error {
			return pgx.BeginFunc(ctx, db, func(tx pgx.Tx) error {
				return fn(ledger.New(tx))
			})
		},
		now: time.Now,
	}
}

// Balance returns the stored balance, or zero when the account holds none of
// the asset.
func (l *Ledger) Balance(ctx context.Context, account domain.Account) (money.MoneyValue, error) {
	row, err := l.q.GetBalance(ctx, ledger.GetBalanceParams{AccountID: account.ID, Asset: account.Asset.Code()})
	if err != nil {
		if isNoRows(err) {
			return money.Zero(account.Asset), nil
		}
		rlog.Error("failed to get balance", "account", account.ID, "asset", account.Asset.Code(), "error", err)
		return money.MoneyValue{}, &errs.Error{Code: errs.Internal, Message: "failed to get balance"}
	}
	v, err := money.NewFromMinor(row.Minor, account.Asset)
	if err != nil {
		return money.MoneyValue{}, errs.WrapCode(err, errs.DataLoss, "stored balance is unreadable")
	}
	return v, nil
}

// SetBalance overwrites the balance of accountID in v's currency.
func (l *Ledger) SetBalance(ctx context.Context, accountID string, v money.MoneyValue) (money.MoneyValue, error) {
	if v.IsNegative() {
		return money.MoneyValue{}, errs.WrapCode(money.ErrInvalidAmount, errs.InvalidArgument, "balance must not be negative")
	}
	row, err := l.q.UpsertBalance(ctx, ledger.UpsertBalanceParams{
		AccountID: accountID,
		Asset:     v.Currency().Code(),
		Minor:     v.MinorString(),
	})
	if err != nil {
		rlog.Error("failed to set balance", "account", accountID, "asset", v.Currency().Code(), "error", err)
		return money.MoneyValue{}, &errs.Error{Code: errs.Internal, Message: "failed to set balance"}
	}
	stored, err := money.NewFromMinor(row.Minor, v.Currency())
	if err != nil {
		return money.MoneyValue{}, errs.WrapCode(err, errs.DataLoss, "stored balance is unreadable")
	}
	return stored, nil
}

// Execute debits the amount and network fee and records the execution in
// one database transaction.
func (l *Ledger) Execute(ctx context.Context, account domain.Account, tx domain.PendingTransaction, secret string) (domain.ExecutionResult, error) {
	if secret == "" {
		return domain.ExecutionResult{}, &errs.Error{Code: errs.InvalidArgument, Message: "signing secret is required"}
	}
	destination, ok := destinationOf(tx)
	if !ok {
		return domain.ExecutionResult{}, &errs.Error{Code: errs.FailedPrecondition, Message: "transaction has no destination"}
	}
	fee := money.Zero(account.Asset)
	if c, ok := tx.Confirmation(domain.KindNetworkFee); ok {
		if nf, ok := c.(domain.NetworkFee); ok && !nf.Fee.Currency().IsZero() {
			fee = nf.Fee
		}
	}
	fingerprint, err := fingerprintOf(account, tx)
	if err != nil {
		return domain.ExecutionResult{}, errs.WrapCode(err, errs.FailedPrecondition, "transaction is not bound to a session")
	}
	memo, _ := tx.EngineState().Memo()

	debits := []money.MoneyValue{tx.Amount()}
	if fee.Currency().Equal(account.Asset) {
		total, err := tx.Amount().Add(fee)
		if err != nil {
			return domain.ExecutionResult{}, errs.WrapCode(err, errs.InvalidArgument, "fee does not match the amount currency")
		}
		debits[0] = total
	} else if fee.IsPositive() {
		debits = append(debits, fee)
	}

	id := uuid.NewString()
	var created ledger.Execution
	err = l.inTx(ctx, func(q ledger.Querier) error {
		for _, d := range debits {
			n, err := q.DebitBalance(ctx, ledger.DebitBalanceParams{
				AccountID: account.ID,
				Asset:     d.Currency().Code(),
				Minor:     d.MinorString(),
			})
			if err != nil {
				return err
			}
			if n == 0 {
				return &errs.Error{Code: errs.FailedPrecondition, Message: "insufficient " + d.Currency().Code() + " balance"}
			}
		}
		var err error
		created, err = q.CreateExecution(ctx, ledger.CreateExecutionParams{
			ID:          id,
			Fingerprint: fingerprint,
			AccountID:   account.ID,
			Asset:       account.Asset.Code(),
			AmountMinor: tx.Amount().MinorString(),
			FeeAsset:    fee.Currency().Code(),
			FeeMinor:    fee.MinorString(),
			Destination: destination,
			Memo:        memo,
			Status:      string(domain.ExecutionSubmitted),
		})
		return err
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ExecutionResult{}, &errs.Error{Code: errs.AlreadyExists, Message: "transaction was already executed"}
		}
		if errs.Code(err) != errs.Unknown {
			return domain.ExecutionResult{}, err
		}
		rlog.Error("failed to record execution", "account", account.ID, "error", err)
		return domain.ExecutionResult{}, &errs.Error{Code: errs.Internal, Message: "failed to record execution"}
	}

	rlog.Info("execution recorded", "id", created.ID, "account", account.ID, "asset", account.Asset.Code())
	submitted := created.SubmittedAt.Time
	if !created.SubmittedAt.Valid {
		submitted = l.now()
	}
	return domain.ExecutionResult{ID: created.ID, Hash: fingerprint, SubmittedAt: submitted}, nil
}

func (l *Ledger) Status(ctx context.Context, executionID string) (domain.ExecutionStatus, error) {
	row, err := l.q.GetExecution(ctx, executionID)
	if err != nil {
		if isNoRows(err) {
			return "", &errs.Error{Code: errs.NotFound, Message: "execution " + executionID + " not found"}
		}
		rlog.Error("failed to get execution", "id", executionID, "error", err)
		return "", &errs.Error{Code: errs.Internal, Message: "failed to get execution"}
	}
	return domain.ExecutionStatus(row.Status), nil
}

// SetStatus records a status reported by the network for an execution.
func (l *Ledger) SetStatus(ctx context.Context, executionID string, status domain.ExecutionStatus) error {
	if !status.IsKnown() {
		return &errs.Error{Code: errs.InvalidArgument, Message: "unknown execution status " + string(status)}
	}
	n, err := l.q.UpdateExecutionStatus(ctx, ledger.UpdateExecutionStatusParams{ID: executionID, Status: string(status)})
	if err != nil {
		rlog.Error("failed to update execution status", "id", executionID, "error", err)
		return &errs.Error{Code: errs.Internal, Message: "failed to update execution status"}
	}
	if n == 0 {
		return &errs.Error{Code: errs.NotFound, Message: "execution " + executionID + " not found"}
	}
	return nil
}

func destinationOf(tx domain.PendingTransaction) (string, bool) {
	c, ok := tx.Confirmation(domain.KindDestination)
	if !ok {
		return "", false
	}
	d, ok := c.(domain.Destination)
	return d.Value, ok && d.Value != ""
}

// fingerprintOf identifies one execution attempt: the session token bound at
// start, the account and what is being sent where. A snapshot resubmitted
// after a lost write keeps the same fingerprint even though its countdown
// and quotes moved on.
func fingerprintOf(account domain.Account, tx domain.PendingTransaction) (string, error) {
	token, ok := tx.EngineState().SessionToken()
	if !ok {
		return "", errors.New("transaction has no session token")
	}
	destination, _ := destinationOf(tx)
	h := sha256.New()
	for _, part := range []string{token, account.ID, tx.Amount().Currency().Code(), tx.Amount().MinorString(), destination} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
