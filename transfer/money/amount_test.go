package money

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestNewAmountFromMajor(t *testing.T) {
	testCases := []struct {
		name          string
		input         string
		currency      CurrencyType
		locale        language.Tag
		expectedMinor string
	}{
		{name: "plain_usd", input: "12.34", currency: USD, locale: language.English, expectedMinor: "1234"},
		{name: "grouped_usd", input: "1,234,567.89", currency: USD, locale: language.English, expectedMinor: "123456789"},
		{name: "german_grouping", input: "1.234,56", currency: EUR, locale: language.German, expectedMinor: "123456"},
		{name: "leading_dot", input: ".5", currency: USD, locale: language.English, expectedMinor: "50"},
		{name: "trailing_dot", input: "7.", currency: USD, locale: language.English, expectedMinor: "700"},
		{name: "negative", input: "-0.01", currency: USD, locale: language.English, expectedMinor: "-1"},
		{name: "surrounding_space", input: "  3.5 ", currency: BTC, locale: language.English, expectedMinor: "350000000"},
		{name: "excess_precision_rounds_half_up", input: "0.125", currency: USD, locale: language.English, expectedMinor: "13"},
		{name: "excess_precision_rounds_down", input: "0.1249", currency: USD, locale: language.English, expectedMinor: "12"},
		{name: "eighteen_decimals", input: "0.000000000000000001", currency: ETH, locale: language.English, expectedMinor: "1"},
		{name: "zero_decimal_currency", input: "1,500", currency: JPY, locale: language.English, expectedMinor: "1500"},
		{name: "grouped_negative", input: "-12,345.6", currency: USD, locale: language.English, expectedMinor: "-1234560"},
		{name: "german_decimal_comma", input: "1,5", currency: EUR, locale: language.German, expectedMinor: "150"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a, err := NewAmountFromMajor(tc.input, tc.currency, tc.locale)
			require.NoError(t, err)
			assert.Equal(t, tc.expectedMinor, a.MinorString())
		})
	}
}

func TestNewAmountFromMajorRejectsMalformedInput(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		currency CurrencyType
		locale   language.Tag
		sentinel error
	}{
		{name: "group_mark_inside_last_group", input: "1,5", currency: USD, locale: language.English, sentinel: ErrInvalidFiatAmount},
		{name: "doubled_group_mark", input: "1,,5", currency: USD, locale: language.English, sentinel: ErrInvalidFiatAmount},
		{name: "repeated_group_marks", input: "1,,,,5", currency: USD, locale: language.English, sentinel: ErrInvalidFiatAmount},
		{name: "leading_group_mark", input: ",1", currency: USD, locale: language.English, sentinel: ErrInvalidFiatAmount},
		{name: "trailing_group_mark", input: "1,", currency: USD, locale: language.English, sentinel: ErrInvalidFiatAmount},
		{name: "oversized_first_group", input: "1234,567", currency: USD, locale: language.English, sentinel: ErrInvalidFiatAmount},
		{name: "group_mark_in_fraction", input: "1.234,5", currency: USD, locale: language.English, sentinel: ErrInvalidFiatAmount},
		{name: "german_dot_as_decimal", input: "1.5", currency: EUR, locale: language.German, sentinel: ErrInvalidFiatAmount},
		{name: "two_decimal_marks", input: "1.2.3", currency: BTC, locale: language.English, sentinel: ErrInvalidCryptoAmount},
		{name: "letters", input: "abc", currency: BTC, locale: language.English, sentinel: ErrInvalidCryptoAmount},
		{name: "empty", input: "", currency: BTC, locale: language.English, sentinel: ErrInvalidCryptoAmount},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewAmountFromMajor(tc.input, tc.currency, tc.locale)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.sentinel)
			assert.ErrorIs(t, err, ErrInvalidAmount)
		})
	}
}

func TestAmountIsNotAliased(t *testing.T) {
	source := big.NewInt(500)
	a := NewAmountFromMinor(source, USD)
	source.SetInt64(1)
	assert.Equal(t, "500", a.MinorString())

	out := a.Minor()
	out.SetInt64(9)
	assert.Equal(t, "500", a.MinorString())

	var empty Amount
	assert.True(t, empty.IsZero())
	assert.Equal(t, "0", empty.MinorString())
}

func TestDisplayString(t *testing.T) {
	testCases := []struct {
		name          string
		amount        Amount
		includeSymbol bool
		locale        language.Tag
		expected      string
	}{
		{name: "usd_with_symbol", amount: NewAmountFromMinorInt64(123456, USD), includeSymbol: true, locale: language.English, expected: "$1,234.56"},
		{name: "usd_without_symbol", amount: NewAmountFromMinorInt64(123456, USD), locale: language.English, expected: "1,234.56"},
		{name: "usd_negative", amount: NewAmountFromMinorInt64(-100, USD), includeSymbol: true, locale: language.English, expected: "-$1.00"},
		{name: "usd_small", amount: NewAmountFromMinorInt64(5, USD), includeSymbol: true, locale: language.English, expected: "$0.05"},
		{name: "eur_german", amount: NewAmountFromMinorInt64(123456789, EUR), includeSymbol: true, locale: language.German, expected: "€1.234.567,89"},
		{name: "jpy_no_decimals", amount: NewAmountFromMinorInt64(1234, JPY), includeSymbol: true, locale: language.English, expected: "¥1,234"},
		{name: "btc_trims_zeros", amount: NewAmountFromMinorInt64(150000000, BTC), includeSymbol: true, locale: language.English, expected: "1.5 BTC"},
		{name: "btc_whole_keeps_one_digit", amount: NewAmountFromMinorInt64(100000000, BTC), includeSymbol: true, locale: language.English, expected: "1.0 BTC"},
		{name: "btc_one_satoshi", amount: NewAmountFromMinorInt64(1, BTC), locale: language.English, expected: "0.00000001"},
		{name: "btc_grouped", amount: NewAmountFromMinorInt64(123456700000000, BTC), includeSymbol: true, locale: language.English, expected: "1,234,567.0 BTC"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.amount.DisplayString(tc.includeSymbol, tc.locale))
		})
	}
}

func TestShortDisplayString(t *testing.T) {
	eth, err := NewAmountFromMajor("1.123456789123456789", ETH, language.English)
	require.NoError(t, err)
	assert.Equal(t, "1.12345679 ETH", eth.ShortDisplayString(true, language.English))
	assert.Equal(t, "1.123456789123456789 ETH", eth.DisplayString(true, language.English))
}

func TestDisplayRoundTrip(t *testing.T) {
	inputs := map[CurrencyType][]string{
		USD: {"0", "0.01", "12.30", "999999999.99", "-42.42"},
		JPY: {"0", "7", "1234567"},
		BTC: {"0.00000001", "21000000", "1.5", "-0.1"},
		ETH: {"0.000000000000000001", "123456789.123456789012345678"},
	}

	for _, locale := range []language.Tag{language.English, language.German} {
		for c, values := range inputs {
			for _, input := range values {
				original, err := NewAmountFromMajor(input, c, language.English)
				require.NoError(t, err)

				printed := original.DisplayString(false, locale)
				parsed, err := NewAmountFromMajor(printed, c, locale)
				require.NoError(t, err, "printed %q", printed)
				assert.True(t, parsed.Equal(original), "%s %s via %q", c, input, printed)
			}
		}
	}
}

func TestLookup(t *testing.T) {
	btc, err := Lookup("btc")
	require.NoError(t, err)
	assert.Equal(t, BTC, btc)

	chf, err := Lookup("CHF")
	require.NoError(t, err)
	assert.True(t, chf.IsFiat())
	assert.Equal(t, uint(2), chf.Precision())

	_, err = Lookup("???")
	assert.ErrorIs(t, err, ErrUnsupportedCurrency)

	assert.True(t, Crypto("USDT", "Tether", 6, 2).Equal(USDT))
	assert.False(t, Crypto("USD", "fake", 2, 2).Equal(USD))
	assert.Equal(t, uint(6), Crypto("X", "x", 6, 9).DisplayPrecision())
}
