package transaction

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"encore.app/transfer/domain"
	"encore.app/transfer/money"
)

func btc(major string) money.MoneyValue { return money.MustMajor(major, money.BTC) }

func eth(major string) money.MoneyValue { return money.MustMajor(major, money.ETH) }

func ptr(v money.MoneyValue) *money.MoneyValue { return &v }

func executableInput(now time.Time) validationInput {
	tx := domain.ZeroTransaction(money.BTC).
		UpdateLimits(domain.Limits{
			Minimum:      ptr(btc("0.001")),
			Maximum:      ptr(btc("0.5")),
			MaximumDaily: ptr(btc("1")),
		}).
		UpdateAvailableFeeLevels([]domain.FeeLevel{domain.FeeLevelRegular, domain.FeeLevelPriority}).
		UpdateSelectedFeeLevel(domain.FeeLevelRegular).
		UpdateAmountAvailableFee(btc("0.1"), btc("0.9999"), btc("0.0001"), btc("0.0001"))
	return validationInput{
		tx:             tx,
		initialized:    true,
		now:            now,
		balance:        btc("1"),
		networkFee:     btc("0.0001"),
		hasDestination: true,
	}
}

func TestEvaluate(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		modify   func(in *validationInput)
		expected domain.ValidationState
	}{
		{
			name:     "executable",
			modify:   func(in *validationInput) {},
			expected: domain.ValidationCanExecute,
		},
		{
			name:     "not_initialized",
			modify:   func(in *validationInput) { in.initialized = false },
			expected: domain.ValidationUninitialized,
		},
		{
			name:     "execution_in_flight",
			modify:   func(in *validationInput) { in.inFlight = true },
			expected: domain.ValidationTransactionInFlight,
		},
		{
			name: "invoice_deadline_passed",
			modify: func(in *validationInput) {
				in.tx = in.tx.UpdateEngineState(in.tx.EngineState().WithInvoiceDeadline(now.Add(-time.Second)))
			},
			expected: domain.ValidationInvoiceExpired,
		},
		{
			name: "invoice_deadline_ahead",
			modify: func(in *validationInput) {
				in.tx = in.tx.UpdateEngineState(in.tx.EngineState().WithInvoiceDeadline(now.Add(time.Minute)))
			},
			expected: domain.ValidationCanExecute,
		},
		{
			name: "inconsistent_currencies",
			modify: func(in *validationInput) {
				in.tx = in.tx.UpdateAmountAvailableFee(btc("0.1"), eth("1"), btc("0.0001"), btc("0.0001"))
			},
			expected: domain.ValidationUnknownError,
		},
		{
			name:     "zero_amount",
			modify:   func(in *validationInput) { in.tx = in.tx.UpdateAmount(btc("0")) },
			expected: domain.ValidationInvalidAmount,
		},
		{
			name:     "negative_amount",
			modify:   func(in *validationInput) { in.tx = in.tx.UpdateAmount(btc("-0.1")) },
			expected: domain.ValidationInvalidAmount,
		},
		{
			name:     "below_minimum",
			modify:   func(in *validationInput) { in.tx = in.tx.UpdateAmount(btc("0.0005")) },
			expected: domain.ValidationBelowMinimumLimit,
		},
		{
			name: "below_api_minimum",
			modify: func(in *validationInput) {
				limits := in.tx.Limits()
				limits.MinimumAPI = ptr(btc("0.2"))
				in.tx = in.tx.UpdateLimits(limits)
			},
			expected: domain.ValidationBelowMinimumLimit,
		},
		{
			name: "over_silver_tier",
			modify: func(in *validationInput) {
				in.tx = in.tx.UpdateAmount(btc("0.6")).
					UpdateEngineState(in.tx.EngineState().WithUserTiers(domain.UserTiersSnapshot{Current: domain.TierSilver}))
			},
			expected: domain.ValidationOverSilverTierLimit,
		},
		{
			name: "over_gold_tier",
			modify: func(in *validationInput) {
				in.tx = in.tx.UpdateAmount(btc("0.6")).
					UpdateEngineState(in.tx.EngineState().WithUserTiers(domain.UserTiersSnapshot{Current: domain.TierGold}))
			},
			expected: domain.ValidationOverGoldTierLimit,
		},
		{
			name:     "over_maximum_without_tier",
			modify:   func(in *validationInput) { in.tx = in.tx.UpdateAmount(btc("0.6")) },
			expected: domain.ValidationOverMaximumLimit,
		},
		{
			name: "over_daily_maximum",
			modify: func(in *validationInput) {
				limits := in.tx.Limits()
				limits.Maximum = nil
				in.tx = in.tx.UpdateLimits(limits).UpdateAmount(btc("1.5"))
			},
			expected: domain.ValidationOverMaximumLimit,
		},
		{
			name: "limit_in_other_currency",
			modify: func(in *validationInput) {
				in.tx = in.tx.UpdateLimits(domain.Limits{Minimum: ptr(eth("1"))})
			},
			expected: domain.ValidationUnknownError,
		},
		{
			name: "amount_over_balance",
			modify: func(in *validationInput) {
				in.balance = btc("0.3")
				in.tx = in.tx.UpdateAmountAvailableFee(btc("0.4"), btc("0.2999"), btc("0.0001"), btc("0.0001"))
			},
			expected: domain.ValidationInsufficientFunds,
		},
		{
			name: "amount_over_balance_after_fee",
			modify: func(in *validationInput) {
				in.balance = btc("0.4")
				in.tx = in.tx.UpdateAmountAvailableFee(btc("0.4"), btc("0.3999"), btc("0.0001"), btc("0.0001"))
			},
			expected: domain.ValidationInsufficientFundsForFees,
		},
		{
			name: "fee_wallet_short",
			modify: func(in *validationInput) {
				in.networkFee = eth("0.001")
				in.feeBalance = ptr(eth("0.0001"))
				in.tx = in.tx.UpdateAmountAvailableFee(btc("0.1"), btc("1"), btc("0"), btc("0"))
			},
			expected: domain.ValidationInsufficientGas,
		},
		{
			name: "fee_wallet_covers_fee",
			modify: func(in *validationInput) {
				in.networkFee = eth("0.001")
				in.feeBalance = ptr(eth("0.001"))
				in.tx = in.tx.UpdateAmountAvailableFee(btc("0.1"), btc("1"), btc("0"), btc("0"))
			},
			expected: domain.ValidationCanExecute,
		},
		{
			name:     "no_destination",
			modify:   func(in *validationInput) { in.hasDestination = false },
			expected: domain.ValidationInvalidAddress,
		},
		{
			name:     "rejected_destination",
			modify:   func(in *validationInput) { in.destinationErr = errors.New("bad checksum") },
			expected: domain.ValidationInvalidAddress,
		},
		{
			name: "fee_level_not_offered",
			modify: func(in *validationInput) {
				in.tx = in.tx.UpdateAvailableFeeLevels([]domain.FeeLevel{domain.FeeLevelPriority})
			},
			expected: domain.ValidationOptionInvalid,
		},
		{
			name: "custom_level_without_amount",
			modify: func(in *validationInput) {
				in.tx = in.tx.UpdateAvailableFeeLevels([]domain.FeeLevel{domain.FeeLevelRegular, domain.FeeLevelCustom}).
					UpdateSelectedFeeLevel(domain.FeeLevelCustom)
			},
			expected: domain.ValidationOptionInvalid,
		},
		{
			name:     "required_memo_missing",
			modify:   func(in *validationInput) { in.rules.MemoRequired = true },
			expected: domain.ValidationOptionInvalid,
		},
		{
			name: "required_memo_present",
			modify: func(in *validationInput) {
				in.rules.MemoRequired = true
				in.tx = in.tx.UpdateEngineState(in.tx.EngineState().WithMemo("1234"))
			},
			expected: domain.ValidationCanExecute,
		},
		{
			name:     "terms_not_accepted",
			modify:   func(in *validationInput) { in.rules.TermsRequired = true },
			expected: domain.ValidationOptionInvalid,
		},
		{
			name: "terms_accepted",
			modify: func(in *validationInput) {
				in.rules.TermsRequired = true
				in.tx = in.tx.Insert(domain.BooleanOption{Type: domain.OptionTerms, Value: true}, false)
			},
			expected: domain.ValidationCanExecute,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			in := executableInput(now)
			tc.modify(&in)
			assert.Equal(t, tc.expected, evaluate(in))
		})
	}
}

func TestEvaluateRuleOrder(t *testing.T) {
	now := time.Now()
	in := executableInput(now)
	in.inFlight = true
	in.hasDestination = false
	in.tx = in.tx.UpdateAmount(btc("0"))

	assert.Equal(t, domain.ValidationTransactionInFlight, evaluate(in))

	in.inFlight = false
	assert.Equal(t, domain.ValidationInvalidAmount, evaluate(in))

	in.tx = in.tx.UpdateAmount(btc("0.1"))
	assert.Equal(t, domain.ValidationInvalidAddress, evaluate(in))
}
