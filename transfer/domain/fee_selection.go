package domain

import (
	"slices"

	"encore.dev/beta/errs"

	"encore.app/transfer/money"
)

type FeeLevel string

const (
	FeeLevelNone     FeeLevel = "none"
	FeeLevelRegular  FeeLevel = "regular"
	FeeLevelPriority FeeLevel = "priority"
	FeeLevelCustom   FeeLevel = "custom"
)

var feeLevelOrder = []FeeLevel{FeeLevelNone, FeeLevelRegular, FeeLevelPriority, FeeLevelCustom}

// ParseFeeLevel accepts the wire names of the fee levels.
func ParseFeeLevel(s string) (FeeLevel, error) {
	for _, l := range feeLevelOrder {
		if string(l) == s {
			return l, nil
		}
	}
	return "", &errs.Error{Code: errs.InvalidArgument, Message: "unknown fee level: " + s}
}

// FeeSelection tracks the fee tiers offered for an asset and the one picked.
// Updates return a new value; membership of the selected level is only
// checked by IsValid so negotiation may pass through transient states.
type FeeSelection struct {
	selectedLevel   FeeLevel
	availableLevels []FeeLevel
	customAmount    money.MoneyValue
	hasCustom       bool
	asset           money.CurrencyType
}

// EmptyFeeSelection is the initial selection for asset: nothing offered, nothing picked.
func EmptyFeeSelection(asset money.CurrencyType) FeeSelection {
	return FeeSelection{selectedLevel: FeeLevelNone, asset: asset}
}

func (f FeeSelection) SelectedLevel() FeeLevel { return f.selectedLevel }

func (f FeeSelection) Asset() money.CurrencyType { return f.asset }

// AvailableLevels returns the offered levels in canonical order.
func (f FeeSelection) AvailableLevels() []FeeLevel { return slices.Clone(f.availableLevels) }

// CustomAmount is present only while the custom level is selected.
func (f FeeSelection) CustomAmount() (money.MoneyValue, bool) {
	return f.customAmount, f.hasCustom
}

func (f FeeSelection) IsAvailable(level FeeLevel) bool {
	return slices.Contains(f.availableLevels, level)
}

func (f FeeSelection) WithSelectedLevel(level FeeLevel) FeeSelection {
	next := f.clone()
	next.selectedLevel = level
	if level != FeeLevelCustom {
		next.customAmount, next.hasCustom = money.MoneyValue{}, false
	}
	return next
}

// WithAvailableLevels replaces the offered set. Duplicates collapse.
func (f FeeSelection) WithAvailableLevels(levels []FeeLevel) FeeSelection {
	next := f.clone()
	next.availableLevels = next.availableLevels[:0]
	for _, l := range feeLevelOrder {
		if slices.Contains(levels, l) {
			next.availableLevels = append(next.availableLevels, l)
		}
	}
	return next
}

// WithCustomAmount selects level and records amount when level is custom.
func (f FeeSelection) WithCustomAmount(amount money.MoneyValue, level FeeLevel) FeeSelection {
	next := f.WithSelectedLevel(level)
	if level == FeeLevelCustom {
		next.customAmount, next.hasCustom = amount, true
	}
	return next
}

// IsValid reports whether the selection may be executed: the empty initial
// selection, or a selected level that is offered (with an amount when custom).
func (f FeeSelection) IsValid() bool {
	if f.selectedLevel == FeeLevelNone && len(f.availableLevels) == 0 {
		return true
	}
	if !f.IsAvailable(f.selectedLevel) {
		return false
	}
	return f.selectedLevel != FeeLevelCustom || f.hasCustom
}

func (f FeeSelection) Equal(o FeeSelection) bool {
	if f.selectedLevel != o.selectedLevel || f.hasCustom != o.hasCustom || !f.asset.Equal(o.asset) {
		return false
	}
	if !slices.Equal(f.availableLevels, o.availableLevels) {
		return false
	}
	return !f.hasCustom || f.customAmount.Equal(o.customAmount)
}

func (f FeeSelection) clone() FeeSelection {
	f.availableLevels = slices.Clone(f.availableLevels)
	return f
}
