// Package provider serves fee levels, quotes and limits from the transfer
// configuration.
package provider

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"encore.dev/beta/errs"

	"encore.app/transfer/business/transaction"
	"encore.app/transfer/config"
	"encore.app/transfer/domain"
	"encore.app/transfer/money"
)

type assetEntry struct {
	asset  money.CurrencyType
	fees   map[domain.FeeLevel]money.MoneyValue
	quotes map[string]money.MoneyValue
	limits map[domain.UserTier]domain.Limits
	rules  transaction.Rules
}

// Catalog holds the parsed per-asset configuration. It is read-only after
// NewCatalog and safe for concurrent use.
type Catalog struct {
	assets map[string]assetEntry
}

func NewCatalog(cfg *config.Config) (*Catalog, error) {
	c := &Catalog{assets: make(map[string]assetEntry, len(cfg.Assets))}
	for _, a := range cfg.Assets {
		entry, err := parseAsset(a)
		if err != nil {
			return nil, err
		}
		c.assets[entry.asset.Code()] = entry
	}
	return c, nil
}

func parseAsset(a config.Asset) (assetEntry, error) {
	asset, err := money.Lookup(a.Code)
	if err != nil {
		return assetEntry{}, err
	}
	feeAsset, err := a.FeeAsset()
	if err != nil {
		return assetEntry{}, err
	}
	entry := assetEntry{
		asset:  asset,
		fees:   map[domain.FeeLevel]money.MoneyValue{},
		quotes: map[string]money.MoneyValue{},
		limits: map[domain.UserTier]domain.Limits{},
		rules: transaction.Rules{
			MemoRequired:  a.MemoRequired,
			TermsRequired: a.TermsRequired,
			CustomFee:     a.CustomFee,
		},
	}
	for name, amount := range a.Fees {
		level, err := domain.ParseFeeLevel(name)
		if err != nil {
			return assetEntry{}, fmt.Errorf("asset %s: %w", asset.Code(), err)
		}
		if entry.fees[level], err = money.NewFromMajor(amount, feeAsset, money.DefaultLocale); err != nil {
			return assetEntry{}, fmt.Errorf("asset %s fee %s: %w", asset.Code(), name, err)
		}
	}
	for code, price := range a.Quotes {
		fiat, err := money.Lookup(code)
		if err != nil {
			return assetEntry{}, err
		}
		if entry.quotes[fiat.Code()], err = money.NewFromMajor(price, fiat, money.DefaultLocale); err != nil {
			return assetEntry{}, fmt.Errorf("asset %s quote %s: %w", asset.Code(), code, err)
		}
	}
	for tier, l := range a.Limits {
		limits, err := parseLimits(l, asset)
		if err != nil {
			return assetEntry{}, fmt.Errorf("asset %s limits %s: %w", asset.Code(), tier, err)
		}
		entry.limits[domain.UserTier(strings.ToLower(tier))] = limits
	}
	return entry, nil
}

func parseLimits(l config.TierLimits, asset money.CurrencyType) (domain.Limits, error) {
	var out domain.Limits
	for _, f := range []struct {
		raw string
		dst **money.MoneyValue
	}{
		{l.Minimum, &out.Minimum},
		{l.Maximum, &out.Maximum},
		{l.Daily, &out.MaximumDaily},
		{l.Annual, &out.MaximumAnnual},
		{l.MinimumAPI, &out.MinimumAPI},
	} {
		if f.raw == "" {
			continue
		}
		v, err := money.NewFromMajor(f.raw, asset, money.DefaultLocale)
		if err != nil {
			return domain.Limits{}, err
		}
		*f.dst = &v
	}
	return out, nil
}

func (c *Catalog) entry(asset money.CurrencyType) (assetEntry, error) {
	e, ok := c.assets[asset.Code()]
	if !ok {
		return assetEntry{}, errs.WrapCode(money.ErrUnsupportedCurrency, errs.InvalidArgument, "asset "+asset.Code()+" is not transferable")
	}
	return e, nil
}

// Supports reports whether asset is configured.
func (c *Catalog) Supports(asset money.CurrencyType) bool {
	_, ok := c.assets[asset.Code()]
	return ok
}

// Levels returns the configured levels in canonical order. The custom level
// is added by the session when the asset allows it.
func (c *Catalog) Levels(_ context.Context, asset money.CurrencyType) ([]domain.FeeLevel, error) {
	e, err := c.entry(asset)
	if err != nil {
		return nil, err
	}
	levels := make([]domain.FeeLevel, 0, len(e.fees))
	for level := range e.fees {
		levels = append(levels, level)
	}
	slices.SortFunc(levels, func(a, b domain.FeeLevel) int {
		return feeRank(a) - feeRank(b)
	})
	return levels, nil
}

func feeRank(l domain.FeeLevel) int {
	switch l {
	case domain.FeeLevelNone:
		return 0
	case domain.FeeLevelRegular:
		return 1
	case domain.FeeLevelPriority:
		return 2
	default:
		return 3
	}
}

func (c *Catalog) Estimate(_ context.Context, level domain.FeeLevel, asset money.CurrencyType) (money.MoneyValue, error) {
	e, err := c.entry(asset)
	if err != nil {
		return money.MoneyValue{}, err
	}
	fee, ok := e.fees[level]
	if !ok {
		return money.MoneyValue{}, &errs.Error{Code: errs.NotFound, Message: fmt.Sprintf("no %s fee configured for %s", level, asset.Code())}
	}
	return fee, nil
}

// Quote prices one unit of base in quote. A currency quoted in itself is one.
func (c *Catalog) Quote(_ context.Context, base, quote money.CurrencyType) (money.MoneyValue, error) {
	if base.Equal(quote) {
		return money.One(quote), nil
	}
	e, err := c.entry(base)
	if err != nil {
		return money.MoneyValue{}, err
	}
	price, ok := e.quotes[quote.Code()]
	if !ok {
		return money.MoneyValue{}, &errs.Error{Code: errs.NotFound, Message: "no " + base.Code() + "/" + quote.Code() + " quote configured"}
	}
	return price, nil
}

// Limits returns the limits for the account's tier. An unknown tier gets no
// limits.
func (c *Catalog) Limits(_ context.Context, account domain.Account) (domain.Limits, error) {
	e, err := c.entry(account.Asset)
	if err != nil {
		return domain.Limits{}, err
	}
	return e.limits[account.Tier], nil
}

func (c *Catalog) Rules(asset money.CurrencyType) (transaction.Rules, error) {
	e, err := c.entry(asset)
	if err != nil {
		return transaction.Rules{}, err
	}
	return e.rules, nil
}
