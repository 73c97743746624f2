package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"encore.app/transfer/money"
)

const localeEnv = "MONEYCTL_LOCALE"

type options struct {
	locale string
	logger *zap.Logger
}

func newRootCmd(logger *zap.Logger) *cobra.Command {
	opts := &options{logger: logger}

	root := &cobra.Command{
		Use:           "moneyctl",
		Short:         "Convert and format money amounts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.locale, "locale", os.Getenv(localeEnv),
		"BCP 47 locale for parsing and display (default en-US, or "+localeEnv+")")

	root.AddCommand(
		newConvertCmd(opts),
		newInverseCmd(opts),
		newDisplayCmd(opts),
		newBeforeCmd(opts),
	)
	return root
}

func (o *options) tag() (language.Tag, error) {
	if o.locale == "" {
		return money.DefaultLocale, nil
	}
	tag, err := language.Parse(o.locale)
	if err != nil {
		return language.Und, fmt.Errorf("invalid locale %q: %w", o.locale, err)
	}
	return tag, nil
}

func lookup(code string) (money.CurrencyType, error) {
	return money.Lookup(strings.ToUpper(code))
}

func newConvertCmd(opts *options) *cobra.Command {
	var rate, rateCurrency string
	cmd := &cobra.Command{
		Use:   "convert AMOUNT CURRENCY",
		Short: "Convert an amount using the price of one unit in another currency",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, err := opts.tag()
			if err != nil {
				return err
			}
			v, err := parse(args[0], args[1], tag)
			if err != nil {
				return err
			}
			r, err := parse(rate, rateCurrency, tag)
			if err != nil {
				return fmt.Errorf("rate: %w", err)
			}
			out, err := v.Convert(r)
			if err != nil {
				return err
			}
			opts.logger.Debug("converted", zap.String("from", v.String()), zap.String("to", out.String()))
			fmt.Fprintln(cmd.OutOrStdout(), out.DisplayString(true, tag))
			return nil
		},
	}
	cmd.Flags().StringVar(&rate, "rate", "", "price of one unit of CURRENCY")
	cmd.Flags().StringVar(&rateCurrency, "rate-currency", "USD", "currency the rate is quoted in")
	_ = cmd.MarkFlagRequired("rate")
	return cmd
}

func newInverseCmd(opts *options) *cobra.Command {
	var rate, to string
	cmd := &cobra.Command{
		Use:   "inverse AMOUNT CURRENCY",
		Short: "Convert a quoted amount back into the priced currency",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, err := opts.tag()
			if err != nil {
				return err
			}
			v, err := parse(args[0], args[1], tag)
			if err != nil {
				return err
			}
			r, err := parse(rate, args[1], tag)
			if err != nil {
				return fmt.Errorf("rate: %w", err)
			}
			target, err := lookup(to)
			if err != nil {
				return err
			}
			out, err := v.ConvertInverse(r, target)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.DisplayString(true, tag))
			return nil
		},
	}
	cmd.Flags().StringVar(&rate, "rate", "", "price of one unit of the target currency, in CURRENCY")
	cmd.Flags().StringVar(&to, "to", "", "target currency")
	_ = cmd.MarkFlagRequired("rate")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newDisplayCmd(opts *options) *cobra.Command {
	var short, symbol bool
	cmd := &cobra.Command{
		Use:   "display MINOR CURRENCY",
		Short: "Format an amount given in minor units",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, err := opts.tag()
			if err != nil {
				return err
			}
			c, err := lookup(args[1])
			if err != nil {
				return err
			}
			v, err := money.NewFromMinor(args[0], c)
			if err != nil {
				return err
			}
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), v.ShortDisplayString(symbol, tag))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), v.DisplayString(symbol, tag))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "round to the display precision")
	cmd.Flags().BoolVar(&symbol, "symbol", true, "include the currency symbol")
	return cmd
}

func newBeforeCmd(opts *options) *cobra.Command {
	var change string
	cmd := &cobra.Command{
		Use:   "before AMOUNT CURRENCY",
		Short: "Show the value before a percentage change, e.g. --change 0.05 for +5%",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, err := opts.tag()
			if err != nil {
				return err
			}
			v, err := parse(args[0], args[1], tag)
			if err != nil {
				return err
			}
			pct, err := decimal.NewFromString(change)
			if err != nil {
				return fmt.Errorf("invalid change %q: %w", change, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), v.ValueBefore(pct).DisplayString(true, tag))
			return nil
		},
	}
	cmd.Flags().StringVar(&change, "change", "0", "fractional change applied to the earlier value")
	return cmd
}

func parse(amount, code string, tag language.Tag) (money.MoneyValue, error) {
	c, err := lookup(code)
	if err != nil {
		return money.MoneyValue{}, err
	}
	return money.NewFromMajor(amount, c, tag)
}
