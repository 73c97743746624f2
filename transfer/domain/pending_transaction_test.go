package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"encore.app/transfer/money"
)

func usd(major string) money.MoneyValue { return money.MustMajor(major, money.USD) }

func ptr(v money.MoneyValue) *money.MoneyValue { return &v }

func TestInsertReplacesSameKindInPlace(t *testing.T) {
	tx := ZeroTransaction(money.BTC).
		Insert(Source{Value: "wallet-1"}, false).
		Insert(Destination{Value: "bc1qfirst"}, false).
		Insert(Memo{Value: "rent"}, false).
		Insert(Destination{Value: "bc1psecond"}, false)

	confirmations := tx.Confirmations()
	require.Len(t, confirmations, 3)
	assert.Equal(t, KindSource, confirmations[0].Kind())
	assert.Equal(t, Destination{Value: "bc1psecond"}, confirmations[1])
	assert.Equal(t, KindMemo, confirmations[2].Kind())
}

func TestDestinationScenario(t *testing.T) {
	tx := ZeroTransaction(money.BTC).
		Insert(Destination{Value: "bc1q..."}, false).
		Insert(Destination{Value: "bc1p..."}, false)

	confirmations := tx.Confirmations()
	require.Len(t, confirmations, 1)
	formatted, ok := confirmations[0].Formatted()
	require.True(t, ok)
	assert.Equal(t, "bc1p...", formatted.Value)
}

func TestInsertPrependAndBulk(t *testing.T) {
	tx := ZeroTransaction(money.BTC).
		Insert(Destination{Value: "a"}, false).
		Insert(ErrorNotice{State: ValidationInsufficientFunds}, true)

	confirmations := tx.Confirmations()
	require.Len(t, confirmations, 2)
	assert.Equal(t, KindErrorNotice, confirmations[0].Kind())

	tx = tx.InsertAll([]Confirmation{Destination{Value: "b"}, Destination{Value: "c"}})
	assert.Len(t, tx.Confirmations(), 4)

	tx = tx.Remove(KindDestination)
	require.Len(t, tx.Confirmations(), 1)
	assert.Equal(t, KindErrorNotice, tx.Confirmations()[0].Kind())

	tx = tx.UpdateConfirmations([]Confirmation{Memo{Value: "x"}})
	assert.Equal(t, []Confirmation{Memo{Value: "x"}}, tx.Confirmations())
}

func TestUpdatesDoNotTouchReceiver(t *testing.T) {
	base := ZeroTransaction(money.USD).Insert(Destination{Value: "a"}, false)

	_ = base.Insert(Destination{Value: "b"}, false)
	_ = base.Insert(Memo{Value: "m"}, true)
	_ = base.Remove(KindDestination)
	_ = base.UpdateAmount(usd("5.00"))
	_ = base.UpdateAvailableFeeLevels([]FeeLevel{FeeLevelRegular})

	assert.Equal(t, []Confirmation{Destination{Value: "a"}}, base.Confirmations())
	assert.True(t, base.Amount().IsZero())
	assert.Empty(t, base.FeeSelection().AvailableLevels())

	exposed := base.Confirmations()
	exposed[0] = Memo{Value: "mutated"}
	assert.Equal(t, Destination{Value: "a"}, base.Confirmations()[0])
}

func TestMaxSpendable(t *testing.T) {
	testCases := []struct {
		name      string
		available money.MoneyValue
		fee       money.MoneyValue
		maximum   *money.MoneyValue
		expected  money.MoneyValue
	}{
		{
			name:      "maximum_minus_fee_below_available",
			available: usd("10.00"),
			fee:       usd("1.00"),
			maximum:   ptr(usd("5.00")),
			expected:  usd("4.00"),
		},
		{
			name:      "no_maximum_returns_available",
			available: usd("10.00"),
			fee:       usd("1.00"),
			expected:  usd("10.00"),
		},
		{
			name:      "available_below_headroom",
			available: usd("3.00"),
			fee:       usd("1.00"),
			maximum:   ptr(usd("50.00")),
			expected:  usd("3.00"),
		},
		{
			name:      "fee_above_maximum_clamps_to_zero",
			available: usd("10.00"),
			fee:       usd("6.00"),
			maximum:   ptr(usd("5.00")),
			expected:  usd("0"),
		},
		{
			name:      "currency_mismatch_clamps_to_zero",
			available: usd("10.00"),
			fee:       usd("1.00"),
			maximum:   ptr(money.MustMajor("5.00", money.EUR)),
			expected:  usd("0"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tx := ZeroTransaction(money.USD).
				UpdateAmountAvailableFee(usd("0"), tc.available, tc.fee, tc.fee).
				UpdateLimits(Limits{Maximum: tc.maximum})

			assert.True(t, tc.expected.Equal(tx.MaxSpendable()), "got %s", tx.MaxSpendable())
		})
	}
}

func TestHasFeeLevelChanged(t *testing.T) {
	regular := ZeroTransaction(money.BTC).UpdateSelectedFeeLevel(FeeLevelRegular)
	custom := ZeroTransaction(money.BTC).UpdateCustomFee(FeeLevelCustom, money.MustMajor("0.0001", money.BTC))

	testCases := []struct {
		name     string
		tx       PendingTransaction
		level    FeeLevel
		amount   money.MoneyValue
		expected bool
	}{
		{name: "same_level_same_amount", tx: custom, level: FeeLevelCustom, amount: money.MustMajor("0.0001", money.BTC), expected: false},
		{name: "level_changes", tx: regular, level: FeeLevelPriority, amount: money.Zero(money.BTC), expected: true},
		{name: "custom_amount_changes", tx: custom, level: FeeLevelCustom, amount: money.MustMajor("0.0002", money.BTC), expected: true},
		{name: "non_custom_amount_ignored", tx: regular, level: FeeLevelRegular, amount: money.MustMajor("5", money.BTC), expected: false},
		{name: "custom_to_regular", tx: custom, level: FeeLevelRegular, amount: money.MustMajor("0.0001", money.BTC), expected: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.tx.HasFeeLevelChanged(tc.level, tc.amount))
		})
	}
}

func TestBooleanOptions(t *testing.T) {
	tx := ZeroTransaction(money.BTC)
	assert.False(t, tx.TermsOptionValue())
	assert.False(t, tx.AgreementOptionValue())

	tx = tx.Insert(BooleanOption{Type: OptionTerms, Label: "I accept the terms", Value: true}, false)
	assert.True(t, tx.TermsOptionValue())
	assert.False(t, tx.AgreementOptionValue())

	tx = tx.Insert(BooleanOption{Type: OptionAgreement, Value: false}, false)
	assert.False(t, tx.AgreementOptionValue())

	tx = tx.Insert(BooleanOption{Type: OptionTerms, Value: false}, false)
	assert.False(t, tx.TermsOptionValue())
	assert.Len(t, tx.Confirmations(), 2)
}

func TestEqualIgnoresEngineState(t *testing.T) {
	a := ZeroTransaction(money.ETH).
		UpdateAmount(money.MustMajor("1.5", money.ETH)).
		Insert(Destination{Value: "0xabc"}, false).
		UpdateLimits(Limits{Maximum: ptr(money.MustMajor("10", money.ETH))})

	b := a.UpdateEngineState(a.EngineState().WithMemo("memo").WithSessionToken("token"))
	assert.True(t, a.Equal(b))

	countdown := StartCountdown(minute, nil)
	defer countdown.Stop()
	c := a.UpdateEngineState(a.EngineState().WithCountdown(countdown))
	assert.True(t, a.Equal(c))

	assert.False(t, a.Equal(a.UpdateValidationState(ValidationCanExecute)))
	assert.False(t, a.Equal(a.Insert(Destination{Value: "0xdef"}, false)))
	assert.False(t, a.Equal(a.UpdateLimits(Limits{})))
	assert.False(t, a.Equal(a.UpdateSelectedFeeLevel(FeeLevelPriority)))
	assert.False(t, a.Equal(a.UpdateSelectedFiatCurrency(money.EUR)))
	assert.True(t, a.Equal(a.UpdateAmount(money.MustMajor("1.50", money.ETH))))
}

func TestCheckCurrencies(t *testing.T) {
	tx := ZeroTransaction(money.BTC)
	assert.NoError(t, tx.CheckCurrencies())

	mixed := tx.UpdateAmountAvailableFee(money.Zero(money.BTC), money.Zero(money.BTC), money.Zero(money.ETH), money.Zero(money.BTC))
	assert.ErrorIs(t, mixed.CheckCurrencies(), money.ErrCurrencyMismatch)
}
