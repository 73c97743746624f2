package money

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestCurrencySafety(t *testing.T) {
	testCases := []struct {
		name          string
		a             MoneyValue
		b             MoneyValue
		expectedSum   string
		expectedCmp   int
		expectedError bool
	}{
		{
			name:        "same_fiat_currency_adds_exactly",
			a:           NewFromMinorInt64(1005, USD),
			b:           NewFromMinorInt64(995, USD),
			expectedSum: "2000",
			expectedCmp: 1,
		},
		{
			name:        "same_crypto_currency_beyond_int64",
			a:           MustMajor("123456789.123456789012345678", ETH),
			b:           MustMajor("0.000000000000000001", ETH),
			expectedSum: "123456789123456789012345679",
			expectedCmp: 1,
		},
		{
			name:          "fiat_vs_fiat_mismatch",
			a:             NewFromMinorInt64(100, USD),
			b:             NewFromMinorInt64(100, EUR),
			expectedError: true,
		},
		{
			name:          "fiat_vs_crypto_mismatch",
			a:             NewFromMinorInt64(100, USD),
			b:             NewFromMinorInt64(100, BTC),
			expectedError: true,
		},
		{
			name:          "crypto_vs_crypto_mismatch",
			a:             NewFromMinorInt64(100, BTC),
			b:             NewFromMinorInt64(100, BCH),
			expectedError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sum, err := tc.a.Add(tc.b)
			_, subErr := tc.a.Sub(tc.b)
			cmp, cmpErr := tc.a.Cmp(tc.b)
			_, ltErr := tc.a.LessThan(tc.b)

			if tc.expectedError {
				assert.ErrorIs(t, err, ErrCurrencyMismatch)
				assert.ErrorIs(t, subErr, ErrCurrencyMismatch)
				assert.ErrorIs(t, cmpErr, ErrCurrencyMismatch)
				assert.ErrorIs(t, ltErr, ErrCurrencyMismatch)
				assert.False(t, tc.a.Equal(tc.b))
				return
			}

			require.NoError(t, err)
			assert.NoError(t, subErr)
			assert.NoError(t, cmpErr)
			assert.NoError(t, ltErr)
			assert.Equal(t, tc.expectedSum, sum.MinorString())
			assert.Equal(t, tc.expectedCmp, cmp)
		})
	}
}

func TestMinorArithmeticIsExact(t *testing.T) {
	a := MustMajor("0.1", USD)
	b := MustMajor("0.2", USD)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Equal(MustMajor("0.3", USD)))

	diff, err := sum.Sub(MustMajor("0.3", USD))
	require.NoError(t, err)
	assert.True(t, diff.IsZero())

	assert.Equal(t, "-30", MustMajor("0.1", USD).MulInt(-3).MinorString())
}

func TestZeroAndOne(t *testing.T) {
	assert.True(t, Zero(BTC).IsZero())
	assert.Equal(t, "100000000", One(BTC).MinorString())
	assert.Equal(t, "1000000000000000000", One(ETH).MinorString())
	assert.Equal(t, "1", One(JPY).MinorString())
	assert.True(t, One(USD).IsFiat())
	assert.True(t, One(ETH).IsCrypto())

	_, isFiat := One(ETH).Fiat()
	assert.False(t, isFiat)
	amount, isCrypto := One(ETH).Crypto()
	assert.True(t, isCrypto)
	assert.Equal(t, ETH, amount.Currency())
}

func TestConvert(t *testing.T) {
	testCases := []struct {
		name             string
		value            MoneyValue
		rate             MoneyValue
		expectedMinor    string
		expectedCurrency CurrencyType
	}{
		{
			name:             "eth_to_usd_rounds_half_away_from_zero",
			value:            MustMajor("1.23456789", ETH),
			rate:             MustMajor("2000.00", USD),
			expectedMinor:    "246914",
			expectedCurrency: USD,
		},
		{
			name:             "btc_to_usd_exact",
			value:            MustMajor("0.5", BTC),
			rate:             MustMajor("30000", USD),
			expectedMinor:    "1500000",
			expectedCurrency: USD,
		},
		{
			name:             "rounds_down_below_half",
			value:            MustMajor("0.00000001", BTC),
			rate:             MustMajor("30000", USD),
			expectedMinor:    "0",
			expectedCurrency: USD,
		},
		{
			name:             "exact_half_rounds_up",
			value:            MustMajor("0.005", ETH),
			rate:             MustMajor("1.00", USD),
			expectedMinor:    "1",
			expectedCurrency: USD,
		},
		{
			name:             "usd_to_jpy_zero_decimals",
			value:            MustMajor("10.25", USD),
			rate:             MustMajor("150", JPY),
			expectedMinor:    "1538",
			expectedCurrency: JPY,
		},
		{
			name:             "negative_value_rounds_away_from_zero",
			value:            MustMajor("-0.005", ETH),
			rate:             MustMajor("1.00", USD),
			expectedMinor:    "-1",
			expectedCurrency: USD,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := tc.value.Convert(tc.rate)
			require.NoError(t, err)
			assert.Equal(t, tc.expectedMinor, result.MinorString())
			assert.True(t, tc.expectedCurrency.Equal(result.Currency()))
		})
	}
}

func TestConvertInverse(t *testing.T) {
	testCases := []struct {
		name          string
		value         MoneyValue
		rate          MoneyValue
		target        CurrencyType
		expectedMinor string
		expectedError error
	}{
		{
			name:          "usd_to_eth",
			value:         MustMajor("100.00", USD),
			rate:          MustMajor("2000.00", USD),
			target:        ETH,
			expectedMinor: "50000000000000000",
		},
		{
			name:          "repeating_fraction_rounds_at_target_precision",
			value:         MustMajor("2.00", USD),
			rate:          MustMajor("3.00", USD),
			target:        BTC,
			expectedMinor: "66666667",
		},
		{
			name:          "zero_value_short_circuits",
			value:         Zero(EUR),
			rate:          MustMajor("2000.00", USD),
			target:        BTC,
			expectedMinor: "0",
		},
		{
			name:          "zero_rate_short_circuits",
			value:         MustMajor("100.00", USD),
			rate:          Zero(USD),
			target:        BTC,
			expectedMinor: "0",
		},
		{
			name:          "value_not_in_rate_currency",
			value:         MustMajor("100.00", EUR),
			rate:          MustMajor("2000.00", USD),
			target:        ETH,
			expectedError: ErrCurrencyMismatch,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := tc.value.ConvertInverse(tc.rate, tc.target)
			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedMinor, result.MinorString())
			assert.True(t, tc.target.Equal(result.Currency()))
		})
	}
}

func TestConvertInverseZeroIsIdempotent(t *testing.T) {
	rates := []MoneyValue{MustMajor("2000.00", USD), MustMajor("0.00000001", BTC), Zero(GBP)}
	for _, rate := range rates {
		for _, source := range []CurrencyType{USD, BTC, ETH, JPY} {
			result, err := Zero(source).ConvertInverse(rate, XLM)
			require.NoError(t, err)
			assert.True(t, result.Equal(Zero(XLM)))
		}
		result, err := MustMajor("12.34", USD).ConvertInverse(Zero(rate.Currency()), ETH)
		require.NoError(t, err)
		assert.True(t, result.Equal(Zero(ETH)))
	}
}

func TestValueBefore(t *testing.T) {
	testCases := []struct {
		name          string
		value         MoneyValue
		change        string
		expectedMinor string
	}{
		{
			name:          "five_percent_gain",
			value:         MustMajor("105.00", USD),
			change:        "0.05",
			expectedMinor: "10000",
		},
		{
			name:          "fifty_percent_gain_rounds_at_display_precision",
			value:         MustMajor("100.00", USD),
			change:        "0.5",
			expectedMinor: "6667",
		},
		{
			name:          "loss",
			value:         MustMajor("90.00", USD),
			change:        "-0.1",
			expectedMinor: "10000",
		},
		{
			name:          "eth_uses_display_precision",
			value:         MustMajor("1", ETH),
			change:        "2",
			expectedMinor: "333333330000000000",
		},
		{
			name:          "total_loss_returns_zero",
			value:         MustMajor("90.00", USD),
			change:        "-1",
			expectedMinor: "0",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := tc.value.ValueBefore(decimal.RequireFromString(tc.change))
			assert.Equal(t, tc.expectedMinor, result.MinorString())
			assert.True(t, tc.value.Currency().Equal(result.Currency()))
		})
	}
}

func TestMinMax(t *testing.T) {
	a := MustMajor("1.00", USD)
	b := MustMajor("2.00", USD)

	low, err := Min(a, b)
	require.NoError(t, err)
	assert.True(t, low.Equal(a))

	high, err := Max(a, b)
	require.NoError(t, err)
	assert.True(t, high.Equal(b))

	_, err = Min(a, MustMajor("1.00", EUR))
	assert.ErrorIs(t, err, ErrCurrencyMismatch)
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		name          string
		input         string
		currency      CurrencyType
		expectedError error
	}{
		{name: "letters_fiat", input: "abc", currency: USD, expectedError: ErrInvalidFiatAmount},
		{name: "letters_crypto", input: "1.2.3", currency: BTC, expectedError: ErrInvalidCryptoAmount},
		{name: "scientific_notation_rejected", input: "1e5", currency: USD, expectedError: ErrInvalidAmount},
		{name: "empty", input: "", currency: ETH, expectedError: ErrInvalidAmount},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewFromMajor(tc.input, tc.currency, language.English)
			assert.ErrorIs(t, err, tc.expectedError)
		})
	}

	_, err := NewFromMinor("12.5", USD)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestJSONPreservesMinorUnits(t *testing.T) {
	value := MustMajor("123456789.123456789012345678", ETH)

	data, err := json.Marshal(value)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"123456789123456789012345678","currency":"ETH"}`, string(data))

	var decoded MoneyValue
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.Equal(value))

	err = json.Unmarshal([]byte(`{"amount":"12","currency":"NOPE"}`), &decoded)
	assert.ErrorIs(t, err, ErrUnsupportedCurrency)
}
