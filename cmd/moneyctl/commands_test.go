package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"encore.app/transfer/money"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(zap.NewNop())
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	testCases := []struct {
		name     string
		args     []string
		expected string
	}{
		{name: "convert_btc_to_usd", args: []string{"convert", "0.5", "BTC", "--rate", "30000"}, expected: "$15,000.00\n"},
		{name: "convert_rounds_to_quote_precision", args: []string{"convert", "0.00000001", "BTC", "--rate", "30000"}, expected: "$0.00\n"},
		{name: "inverse_usd_to_btc", args: []string{"inverse", "15000", "USD", "--rate", "30000", "--to", "btc"}, expected: "0.5 BTC\n"},
		{name: "inverse_zero_amount", args: []string{"inverse", "0", "USD", "--rate", "30000", "--to", "BTC"}, expected: "0.0 BTC\n"},
		{name: "display_minor_units", args: []string{"display", "123456", "USD"}, expected: "$1,234.56\n"},
		{name: "display_without_symbol", args: []string{"display", "150000000", "BTC", "--symbol=false"}, expected: "1.5\n"},
		{name: "display_short_eth", args: []string{"display", "1123456789123456789", "ETH", "--short"}, expected: "1.12345679 ETH\n"},
		{name: "display_german_locale", args: []string{"--locale", "de", "display", "123456789", "EUR"}, expected: "€1.234.567,89\n"},
		{name: "value_before_change", args: []string{"before", "105", "USD", "--change", "0.05"}, expected: "$100.00\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := run(t, tc.args...)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, out)
		})
	}
}

func TestCommandErrors(t *testing.T) {
	testCases := []struct {
		name     string
		args     []string
		sentinel error
	}{
		{name: "unknown_currency", args: []string{"display", "1", "XYZ"}, sentinel: money.ErrUnsupportedCurrency},
		{name: "missing_rate", args: []string{"convert", "1", "BTC"}},
		{name: "bad_amount", args: []string{"convert", "abc", "BTC", "--rate", "1"}, sentinel: money.ErrInvalidCryptoAmount},
		{name: "bad_rate", args: []string{"convert", "1", "BTC", "--rate", "1,,5"}, sentinel: money.ErrInvalidFiatAmount},
		{name: "misplaced_group_mark", args: []string{"convert", "1,5", "BTC", "--rate", "30000"}, sentinel: money.ErrInvalidCryptoAmount},
		{name: "bad_locale", args: []string{"--locale", "not a locale", "display", "1", "USD"}},
		{name: "bad_change", args: []string{"before", "1", "USD", "--change", "five"}},
		{name: "wrong_arg_count", args: []string{"display", "1"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := run(t, tc.args...)
			require.Error(t, err)
			if tc.sentinel != nil {
				assert.True(t, errors.Is(err, tc.sentinel), "got %v", err)
			}
		})
	}
}

func TestLocaleFromEnvironment(t *testing.T) {
	t.Setenv(localeEnv, "de-DE")

	out, err := run(t, "convert", "1,5", "BTC", "--rate", "20000", "--rate-currency", "EUR")

	require.NoError(t, err)
	assert.Equal(t, "€30.000,00\n", out)
}
