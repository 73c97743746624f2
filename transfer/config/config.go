// Package config loads fee tiers, quotes, limits and runtime settings for the
// transfer service from TOML.
package config

import (
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"encore.app/transfer/money"
)

//go:embed transfer.toml
var defaultConfig []byte

var validate = validator.New()

type Config struct {
	Network     string        `toml:"network" validate:"required,oneof=mainnet testnet regtest"`
	TaskQueue   string        `toml:"task_queue" validate:"required"`
	DefaultFiat string        `toml:"default_fiat" validate:"required,len=3,alpha"`
	Countdown   time.Duration `toml:"countdown" validate:"gt=0"`
	Polling     Polling       `toml:"polling"`
	Assets      []Asset       `toml:"assets" validate:"required,dive"`
}

type Polling struct {
	Interval time.Duration `toml:"interval" validate:"gt=0"`
	Timeout  time.Duration `toml:"timeout" validate:"gtfield=Interval"`
}

// Asset holds everything configured for one transferable currency. Amounts
// are canonical major-unit decimal strings in the asset (or fiat) currency.
type Asset struct {
	Code          string                `toml:"code" validate:"required"`
	FeeCurrency   string                `toml:"fee_currency"`
	CustomFee     bool                  `toml:"custom_fee"`
	MemoRequired  bool                  `toml:"memo_required"`
	TermsRequired bool                  `toml:"terms_required"`
	Fees          map[string]string     `toml:"fees" validate:"required,min=1"`
	Quotes        map[string]string     `toml:"quotes"`
	Limits        map[string]TierLimits `toml:"limits"`
}

type TierLimits struct {
	Minimum    string `toml:"minimum"`
	Maximum    string `toml:"maximum"`
	Daily      string `toml:"daily"`
	Annual     string `toml:"annual"`
	MinimumAPI string `toml:"minimum_api"`
}

// Load decodes the embedded default configuration.
func Load() (*Config, error) {
	return Parse(defaultConfig)
}

// Parse decodes and validates a TOML document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("decode transfer config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid transfer config: %w", err)
	}
	if err := cfg.check(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// check resolves every currency code and amount so providers can rely on them.
func (c *Config) check() error {
	if _, err := money.Lookup(c.DefaultFiat); err != nil {
		return fmt.Errorf("default_fiat: %w", err)
	}
	seen := map[string]bool{}
	for _, a := range c.Assets {
		code := strings.ToUpper(a.Code)
		if seen[code] {
			return fmt.Errorf("asset %s configured twice", code)
		}
		seen[code] = true

		asset, err := money.Lookup(code)
		if err != nil {
			return fmt.Errorf("asset %s: %w", code, err)
		}
		feeAsset, err := a.FeeAsset()
		if err != nil {
			return fmt.Errorf("asset %s fee_currency: %w", code, err)
		}
		for level, amount := range a.Fees {
			if _, err := money.NewFromMajor(amount, feeAsset, money.DefaultLocale); err != nil {
				return fmt.Errorf("asset %s fee %s: %w", code, level, err)
			}
		}
		for fiat, price := range a.Quotes {
			fiatType, err := money.Lookup(fiat)
			if err != nil {
				return fmt.Errorf("asset %s quote: %w", code, err)
			}
			if _, err := money.NewFromMajor(price, fiatType, money.DefaultLocale); err != nil {
				return fmt.Errorf("asset %s quote %s: %w", code, fiat, err)
			}
		}
		for tier, limits := range a.Limits {
			for _, v := range []string{limits.Minimum, limits.Maximum, limits.Daily, limits.Annual, limits.MinimumAPI} {
				if v == "" {
					continue
				}
				if _, err := money.NewFromMajor(v, asset, money.DefaultLocale); err != nil {
					return fmt.Errorf("asset %s limits %s: %w", code, tier, err)
				}
			}
		}
	}
	return nil
}

// Asset returns the configuration for code.
func (c *Config) Asset(code string) (Asset, bool) {
	for _, a := range c.Assets {
		if strings.EqualFold(a.Code, code) {
			return a, true
		}
	}
	return Asset{}, false
}

// FeeAsset is the currency fees are paid in: the asset itself unless
// fee_currency names another one.
func (a Asset) FeeAsset() (money.CurrencyType, error) {
	if a.FeeCurrency == "" {
		return money.Lookup(a.Code)
	}
	return money.Lookup(a.FeeCurrency)
}
