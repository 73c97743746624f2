package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"encore.dev/beta/errs"

	"encore.app/transfer/domain"
	"encore.app/transfer/mocks/repository/ledger_repo"
	"encore.app/transfer/money"
	"encore.app/transfer/repository/ledger"
)

var ledgerNow = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

func testLedger(q ledger.Querier) *Ledger {
	return &Ledger{
		q:    q,
		inTx: func(_ context.Context, fn func(q ledger.Querier) error) error { return fn(q) },
		now:  func() time.Time { return ledgerNow },
	}
}

func submittedTx(asset money.CurrencyType, amount, fee money.MoneyValue) domain.PendingTransaction {
	tx := domain.ZeroTransaction(asset)
	return tx.UpdateEngineState(tx.EngineState().WithSessionToken("tr-1")).
		UpdateAmount(amount).
		Insert(domain.Destination{Value: "dest-1"}, false).
		Insert(domain.NetworkFee{Fee: fee}, false)
}

func TestLedgerBalance(t *testing.T) {
	ctrl := gomock.NewController(t)
	q := ledger_repo.NewMockQuerier(ctrl)
	account := domain.Account{ID: "acct-1", Asset: money.BTC}
	q.EXPECT().GetBalance(gomock.Any(), ledger.GetBalanceParams{AccountID: "acct-1", Asset: "BTC"}).
		Return(ledger.Balance{Minor: "150000000"}, nil)
	q.EXPECT().GetBalance(gomock.Any(), ledger.GetBalanceParams{AccountID: "acct-1", Asset: "ETH"}).
		Return(ledger.Balance{}, pgx.ErrNoRows)
	l := testLedger(q)

	got, err := l.Balance(context.Background(), account)
	require.NoError(t, err)
	assert.True(t, money.MustMajor("1.5", money.BTC).Equal(got))

	got, err = l.Balance(context.Background(), account.WithAsset(money.ETH))
	require.NoError(t, err)
	assert.True(t, money.Zero(money.ETH).Equal(got))
}

func TestLedgerSetBalance(t *testing.T) {
	ctrl := gomock.NewController(t)
	q := ledger_repo.NewMockQuerier(ctrl)
	q.EXPECT().UpsertBalance(gomock.Any(), ledger.UpsertBalanceParams{AccountID: "acct-1", Asset: "BTC", Minor: "25000000"}).
		Return(ledger.Balance{AccountID: "acct-1", Asset: "BTC", Minor: "25000000"}, nil)
	l := testLedger(q)

	got, err := l.SetBalance(context.Background(), "acct-1", money.MustMajor("0.25", money.BTC))
	require.NoError(t, err)
	assert.True(t, money.MustMajor("0.25", money.BTC).Equal(got))

	_, err = l.SetBalance(context.Background(), "acct-1", money.MustMajor("-1", money.BTC))
	assert.Equal(t, errs.InvalidArgument, errs.Code(err))
}

func TestLedgerExecute(t *testing.T) {
	btc := func(major string) money.MoneyValue { return money.MustMajor(major, money.BTC) }
	btcAccount := domain.Account{ID: "acct-1", Asset: money.BTC}
	usdtAccount := domain.Account{ID: "acct-1", Asset: money.USDT}

	testCases := []struct {
		name         string
		account      domain.Account
		tx           domain.PendingTransaction
		secret       string
		expect       func(q *ledger_repo.MockQuerier)
		expectedCode errs.ErrCode
	}{
		{
			name:    "fee_in_same_asset_debited_once",
			account: btcAccount,
			tx:      submittedTx(money.BTC, btc("0.1"), btc("0.0001")),
			secret:  "secret",
			expect: func(q *ledger_repo.MockQuerier) {
				q.EXPECT().DebitBalance(gomock.Any(), ledger.DebitBalanceParams{AccountID: "acct-1", Asset: "BTC", Minor: "10010000"}).
					Return(int64(1), nil)
				q.EXPECT().CreateExecution(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, arg ledger.CreateExecutionParams) (ledger.Execution, error) {
						assert.Equal(t, "10000000", arg.AmountMinor)
						assert.Equal(t, "BTC", arg.FeeAsset)
						assert.Equal(t, "10000", arg.FeeMinor)
						assert.Equal(t, "dest-1", arg.Destination)
						assert.Equal(t, string(domain.ExecutionSubmitted), arg.Status)
						assert.Len(t, arg.Fingerprint, 64)
						return ledger.Execution{ID: arg.ID, SubmittedAt: pgtype.Timestamptz{Time: ledgerNow, Valid: true}}, nil
					})
			},
		},
		{
			name:    "fee_in_other_asset_debited_separately",
			account: usdtAccount,
			tx:      submittedTx(money.USDT, money.MustMajor("10", money.USDT), money.MustMajor("0.001", money.ETH)),
			secret:  "secret",
			expect: func(q *ledger_repo.MockQuerier) {
				gomock.InOrder(
					q.EXPECT().DebitBalance(gomock.Any(), ledger.DebitBalanceParams{AccountID: "acct-1", Asset: "USDT", Minor: "10000000"}).
						Return(int64(1), nil),
					q.EXPECT().DebitBalance(gomock.Any(), ledger.DebitBalanceParams{AccountID: "acct-1", Asset: "ETH", Minor: "1000000000000000"}).
						Return(int64(1), nil),
				)
				q.EXPECT().CreateExecution(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, arg ledger.CreateExecutionParams) (ledger.Execution, error) {
						return ledger.Execution{ID: arg.ID}, nil
					})
			},
		},
		{
			name:    "insufficient_balance",
			account: btcAccount,
			tx:      submittedTx(money.BTC, btc("0.1"), btc("0.0001")),
			secret:  "secret",
			expect: func(q *ledger_repo.MockQuerier) {
				q.EXPECT().DebitBalance(gomock.Any(), gomock.Any()).Return(int64(0), nil)
			},
			expectedCode: errs.FailedPrecondition,
		},
		{
			name:    "already_recorded",
			account: btcAccount,
			tx:      submittedTx(money.BTC, btc("0.1"), btc("0.0001")),
			secret:  "secret",
			expect: func(q *ledger_repo.MockQuerier) {
				q.EXPECT().DebitBalance(gomock.Any(), gomock.Any()).Return(int64(1), nil)
				q.EXPECT().CreateExecution(gomock.Any(), gomock.Any()).
					Return(ledger.Execution{}, &pgconn.PgError{Code: pgerrcode.UniqueViolation})
			},
			expectedCode: errs.AlreadyExists,
		},
		{
			name:    "database_error",
			account: btcAccount,
			tx:      submittedTx(money.BTC, btc("0.1"), btc("0.0001")),
			secret:  "secret",
			expect: func(q *ledger_repo.MockQuerier) {
				q.EXPECT().DebitBalance(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("connection reset"))
			},
			expectedCode: errs.Internal,
		},
		{
			name:         "missing_secret",
			account:      btcAccount,
			tx:           submittedTx(money.BTC, btc("0.1"), btc("0.0001")),
			expect:       func(q *ledger_repo.MockQuerier) {},
			expectedCode: errs.InvalidArgument,
		},
		{
			name:         "missing_session_token",
			account:      btcAccount,
			tx:           domain.ZeroTransaction(money.BTC).UpdateAmount(btc("0.1")).Insert(domain.Destination{Value: "dest-1"}, false),
			secret:       "secret",
			expect:       func(q *ledger_repo.MockQuerier) {},
			expectedCode: errs.FailedPrecondition,
		},
		{
			name:         "missing_destination",
			account:      btcAccount,
			tx:           domain.ZeroTransaction(money.BTC).UpdateAmount(btc("0.1")),
			secret:       "secret",
			expect:       func(q *ledger_repo.MockQuerier) {},
			expectedCode: errs.FailedPrecondition,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			q := ledger_repo.NewMockQuerier(ctrl)
			tc.expect(q)

			result, err := testLedger(q).Execute(context.Background(), tc.account, tc.tx, tc.secret)

			if tc.expectedCode != errs.OK {
				require.Error(t, err)
				assert.Equal(t, tc.expectedCode, errs.Code(err))
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, result.ID)
			assert.Len(t, result.Hash, 64)
			assert.Equal(t, ledgerNow, result.SubmittedAt)
		})
	}
}

func TestLedgerFingerprint(t *testing.T) {
	account := domain.Account{ID: "acct-1", Asset: money.BTC}
	base := submittedTx(money.BTC, money.MustMajor("0.1", money.BTC), money.MustMajor("0.0001", money.BTC)).
		Insert(domain.BitPayCountdown{Remaining: 15*time.Minute - time.Millisecond}, false)
	expected, err := fingerprintOf(account, base)
	require.NoError(t, err)

	withToken := func(tx domain.PendingTransaction, token string) domain.PendingTransaction {
		return tx.UpdateEngineState(tx.EngineState().WithSessionToken(token))
	}

	testCases := []struct {
		name        string
		account     domain.Account
		tx          domain.PendingTransaction
		expectEqual bool
	}{
		{
			name:        "same_snapshot",
			account:     account,
			tx:          base,
			expectEqual: true,
		},
		{
			name:        "countdown_moved_on",
			account:     account,
			tx:          base.Insert(domain.BitPayCountdown{Remaining: 15*time.Minute - 2*time.Millisecond}, false),
			expectEqual: true,
		},
		{
			name:        "fee_reestimated",
			account:     account,
			tx:          base.Insert(domain.NetworkFee{Fee: money.MustMajor("0.0002", money.BTC)}, false),
			expectEqual: true,
		},
		{
			name:    "other_transfer_with_same_content",
			account: account,
			tx:      withToken(base, "tr-2"),
		},
		{
			name:    "other_amount",
			account: account,
			tx:      base.UpdateAmount(money.MustMajor("0.2", money.BTC)),
		},
		{
			name:    "other_destination",
			account: account,
			tx:      base.Insert(domain.Destination{Value: "dest-2"}, false),
		},
		{
			name:    "other_account",
			account: domain.Account{ID: "acct-2", Asset: money.BTC},
			tx:      base,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := fingerprintOf(tc.account, tc.tx)
			require.NoError(t, err)
			if tc.expectEqual {
				assert.Equal(t, expected, got)
			} else {
				assert.NotEqual(t, expected, got)
			}
		})
	}
}

func TestLedgerStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	q := ledger_repo.NewMockQuerier(ctrl)
	q.EXPECT().GetExecution(gomock.Any(), "exec-1").Return(ledger.Execution{ID: "exec-1", Status: "confirmed"}, nil)
	q.EXPECT().GetExecution(gomock.Any(), "exec-2").Return(ledger.Execution{}, pgx.ErrNoRows)
	q.EXPECT().UpdateExecutionStatus(gomock.Any(), ledger.UpdateExecutionStatusParams{ID: "exec-1", Status: "failed"}).Return(int64(1), nil)
	q.EXPECT().UpdateExecutionStatus(gomock.Any(), ledger.UpdateExecutionStatusParams{ID: "exec-2", Status: "failed"}).Return(int64(0), nil)
	l := testLedger(q)
	ctx := context.Background()

	status, err := l.Status(ctx, "exec-1")
	require.NoError(t, err)
	assert.Equal(t, domain.ExecutionConfirmed, status)

	_, err = l.Status(ctx, "exec-2")
	assert.Equal(t, errs.NotFound, errs.Code(err))

	require.NoError(t, l.SetStatus(ctx, "exec-1", domain.ExecutionFailed))
	assert.Equal(t, errs.NotFound, errs.Code(l.SetStatus(ctx, "exec-2", domain.ExecutionFailed)))
	assert.Equal(t, errs.InvalidArgument, errs.Code(l.SetStatus(ctx, "exec-1", "lost")))
}
