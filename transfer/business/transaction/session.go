package transaction

import (
	"context"
	"slices"
	"sync"
	"time"

	"encore.dev/beta/errs"
	"encore.dev/rlog"

	"encore.app/transfer/domain"
	"encore.app/transfer/money"
)

type phase int

const (
	phaseBuilding phase = iota
	phaseExecuting
	phaseCompleted
)

// Session drives one attempt. All reads and writes of the snapshot are
// serialized by mu; the sink call in Execute runs without it.
type Session struct {
	mu      sync.Mutex
	account domain.Account
	proc    Processor
	tx      domain.PendingTransaction
	now     func() time.Time

	initialized bool
	balance     money.MoneyValue
	networkFee  money.MoneyValue
	feeBalance  *money.MoneyValue
	quote       money.MoneyValue
	hasQuote    bool

	destination    string
	destinationErr error
	hasDestination bool

	phase  phase
	result domain.ExecutionResult
}

func (s *Session) Account() domain.Account { return s.account }

// Snapshot returns the current transaction.
func (s *Session) Snapshot() domain.PendingTransaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tx
}

// Result returns the execution result once the attempt completed.
func (s *Session) Result() (domain.ExecutionResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result, s.phase == phaseCompleted
}

// markCompleted restores a session whose attempt was already executed.
func (s *Session) markCompleted(result domain.ExecutionResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = phaseCompleted
	s.result = result
}

// Update applies fn to the current snapshot as one read-modify-write. The
// result is stored as returned; derived fields are not recomputed.
func (s *Session) Update(fn func(domain.PendingTransaction) (domain.PendingTransaction, error)) (domain.PendingTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writable(); err != nil {
		return s.tx, err
	}
	next, err := fn(s.tx)
	if err != nil {
		return s.tx, coded(err)
	}
	s.tx = next
	return s.tx, nil
}

// mutate is Update followed by a refresh of totals, confirmations and the
// validation state.
func (s *Session) mutate(fn func(domain.PendingTransaction) (domain.PendingTransaction, error)) (domain.PendingTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writable(); err != nil {
		return s.tx, err
	}
	next, err := fn(s.tx)
	if err != nil {
		return s.tx, coded(err)
	}
	s.tx = s.refresh(next)
	return s.tx, nil
}

func (s *Session) writable() error {
	switch s.phase {
	case phaseExecuting:
		return inFlight()
	case phaseCompleted:
		return alreadyExecuted()
	}
	return nil
}

// Initialize loads limits, balance, fee levels, the fee estimate and the
// fiat quote. It can be called again to refresh them; the amount,
// destination and options are kept.
func (s *Session) Initialize(ctx context.Context) (domain.PendingTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writable(); err != nil {
		return s.tx, err
	}

	asset := s.account.Asset
	limits, err := s.proc.Limits.Limits(ctx, s.account)
	if err != nil {
		return s.tx, errs.WrapCode(err, errs.Unavailable, "failed to load limits")
	}
	balance, err := s.proc.Balances.Balance(ctx, s.account)
	if err != nil {
		return s.tx, errs.WrapCode(err, errs.Unavailable, "failed to load balance")
	}
	if !balance.Currency().Equal(asset) {
		return s.tx, errs.WrapCode(money.ErrCurrencyMismatch, errs.Internal, "balance is not denominated in "+asset.Code())
	}
	levels, err := s.proc.Fees.Levels(ctx, asset)
	if err != nil {
		return s.tx, errs.WrapCode(err, errs.Unavailable, "failed to load fee levels")
	}
	if s.proc.Rules.CustomFee && !slices.Contains(levels, domain.FeeLevelCustom) {
		levels = append(levels, domain.FeeLevelCustom)
	}

	level := s.tx.FeeLevel()
	custom, hasCustom := s.tx.FeeSelection().CustomAmount()
	if !slices.Contains(levels, level) || (level == domain.FeeLevelCustom && !hasCustom) {
		level = defaultLevel(levels)
	}
	fee := money.Zero(asset)
	switch {
	case level == domain.FeeLevelCustom:
		fee = custom
	case level != domain.FeeLevelNone:
		if fee, err = s.proc.Fees.Estimate(ctx, level, asset); err != nil {
			return s.tx, errs.WrapCode(err, errs.Unavailable, "failed to estimate network fee")
		}
	}
	feeBalance, err := s.loadFeeBalance(ctx, fee, nil)
	if err != nil {
		return s.tx, err
	}

	fiat := s.tx.SelectedFiatCurrency()
	quote, qerr := s.proc.Quotes.Quote(ctx, asset, fiat)
	if qerr != nil {
		rlog.Warn("quote unavailable, fiat values omitted", "asset", asset.Code(), "fiat", fiat.Code(), "error", qerr)
	}

	s.initialized = true
	s.balance = balance
	s.networkFee = fee
	s.feeBalance = feeBalance
	s.quote, s.hasQuote = quote, qerr == nil

	tx := s.tx.UpdateLimits(limits).UpdateAvailableFeeLevels(levels)
	if level == domain.FeeLevelCustom {
		tx = tx.UpdateCustomFee(level, custom)
	} else {
		tx = tx.UpdateSelectedFeeLevel(level)
	}
	tx = tx.UpdateEngineState(tx.EngineState().WithUserTiers(domain.UserTiersSnapshot{
		Current: s.account.Tier,
		Limit:   limits.Maximum,
	}))
	if !tx.Amount().Currency().Equal(asset) {
		tx = tx.UpdateAmount(money.Zero(asset))
	}
	s.tx = s.refresh(tx)
	return s.tx, nil
}

// loadFeeBalance reads the balance that pays fee when fee is denominated in
// another asset than the transfer. It returns nil otherwise. A cached
// balance in the right asset is reused.
func (s *Session) loadFeeBalance(ctx context.Context, fee money.MoneyValue, cached *money.MoneyValue) (*money.MoneyValue, error) {
	if fee.Currency().Equal(s.account.Asset) {
		return nil, nil
	}
	if cached != nil && cached.Currency().Equal(fee.Currency()) {
		return cached, nil
	}
	b, err := s.proc.Balances.Balance(ctx, s.account.WithAsset(fee.Currency()))
	if err != nil {
		return nil, errs.WrapCode(err, errs.Unavailable, "failed to load "+fee.Currency().Code()+" balance")
	}
	return &b, nil
}

func defaultLevel(levels []domain.FeeLevel) domain.FeeLevel {
	if slices.Contains(levels, domain.FeeLevelRegular) {
		return domain.FeeLevelRegular
	}
	for _, l := range levels {
		if l != domain.FeeLevelCustom {
			return l
		}
	}
	return domain.FeeLevelNone
}

// UpdateAmount sets the amount. A value in the selected fiat currency is
// converted to the asset through the current quote.
func (s *Session) UpdateAmount(amount money.MoneyValue) (domain.PendingTransaction, error) {
	return s.mutate(func(tx domain.PendingTransaction) (domain.PendingTransaction, error) {
		value, err := s.toAsset(tx, amount)
		if err != nil {
			return tx, err
		}
		return tx.UpdateAmount(value), nil
	})
}

// UseMaxSpendable sets the amount to the largest value limits and fees allow.
func (s *Session) UseMaxSpendable() (domain.PendingTransaction, error) {
	return s.mutate(func(tx domain.PendingTransaction) (domain.PendingTransaction, error) {
		return tx.UpdateAmount(tx.MaxSpendable()), nil
	})
}

func (s *Session) toAsset(tx domain.PendingTransaction, amount money.MoneyValue) (money.MoneyValue, error) {
	asset := s.account.Asset
	switch c := amount.Currency(); {
	case c.Equal(asset):
		return amount, nil
	case c.Equal(tx.SelectedFiatCurrency()) && s.hasQuote:
		v, err := amount.ConvertInverse(s.quote, asset)
		return v, coded(err)
	case c.Equal(tx.SelectedFiatCurrency()):
		return money.MoneyValue{}, &errs.Error{Code: errs.Unavailable, Message: "no " + asset.Code() + " quote to convert " + c.Code()}
	default:
		return money.MoneyValue{}, errs.WrapCode(money.ErrCurrencyMismatch, errs.InvalidArgument, "amount must be in "+asset.Code()+" or "+tx.SelectedFiatCurrency().Code())
	}
}

// UpdateFeeLevel selects a fee level. custom is required for the custom level
// and ignored otherwise. Selecting the current level is a no-op.
func (s *Session) UpdateFeeLevel(ctx context.Context, level domain.FeeLevel, custom *money.MoneyValue) (domain.PendingTransaction, error) {
	return s.mutate(func(tx domain.PendingTransaction) (domain.PendingTransaction, error) {
		var amount money.MoneyValue
		if custom != nil {
			amount = *custom
		}
		if !tx.HasFeeLevelChanged(level, amount) {
			return tx, nil
		}
		if !tx.FeeSelection().IsAvailable(level) {
			return tx, &errs.Error{Code: errs.InvalidArgument, Message: "fee level " + string(level) + " is not offered"}
		}

		var fee money.MoneyValue
		if level == domain.FeeLevelCustom {
			if custom == nil {
				return tx, errs.WrapCode(ErrCustomFeeRequired, errs.InvalidArgument, "custom fee level requires an amount")
			}
			if custom.IsNegative() {
				return tx, errs.WrapCode(money.ErrInvalidAmount, errs.InvalidArgument, "custom fee must not be negative")
			}
			if s.initialized && !custom.Currency().Equal(s.networkFee.Currency()) {
				return tx, errs.WrapCode(money.ErrCurrencyMismatch, errs.InvalidArgument, "custom fee must be in "+s.networkFee.Currency().Code())
			}
			fee = *custom
			tx = tx.UpdateCustomFee(level, fee)
		} else {
			var err error
			if fee, err = s.proc.Fees.Estimate(ctx, level, s.account.Asset); err != nil {
				return tx, errs.WrapCode(err, errs.Unavailable, "failed to estimate network fee")
			}
			tx = tx.UpdateSelectedFeeLevel(level)
		}

		feeBalance, err := s.loadFeeBalance(ctx, fee, s.feeBalance)
		if err != nil {
			return tx, err
		}
		s.networkFee = fee
		s.feeBalance = feeBalance
		return tx, nil
	})
}

// SetDestination records the destination address. An invalid address is not
// an error; it surfaces as the invalidAddress validation state.
func (s *Session) SetDestination(addr string) (domain.PendingTransaction, error) {
	return s.mutate(func(tx domain.PendingTransaction) (domain.PendingTransaction, error) {
		s.destination = addr
		s.destinationErr = s.proc.Addresses.Validate(s.account.Asset, addr)
		s.hasDestination = true
		if s.destinationErr != nil {
			rlog.Debug("destination rejected", "asset", s.account.Asset.Code(), "error", s.destinationErr)
		}
		return tx.Insert(domain.Destination{Value: addr}, false), nil
	})
}

func (s *Session) SetMemo(memo string) (domain.PendingTransaction, error) {
	return s.mutate(func(tx domain.PendingTransaction) (domain.PendingTransaction, error) {
		if memo == "" {
			return tx.UpdateEngineState(tx.EngineState().WithoutMemo()).Remove(domain.KindMemo), nil
		}
		tx = tx.UpdateEngineState(tx.EngineState().WithMemo(memo))
		return tx.Insert(domain.Memo{Value: memo, Required: s.proc.Rules.MemoRequired}, false), nil
	})
}

func (s *Session) SetDescription(text string) (domain.PendingTransaction, error) {
	return s.mutate(func(tx domain.PendingTransaction) (domain.PendingTransaction, error) {
		if text == "" {
			return tx.Remove(domain.KindDescription), nil
		}
		return tx.Insert(domain.Description{Value: text}, false), nil
	})
}

// SetOption records a user toggle such as accepting terms.
func (s *Session) SetOption(opt domain.BooleanOption) (domain.PendingTransaction, error) {
	return s.mutate(func(tx domain.PendingTransaction) (domain.PendingTransaction, error) {
		return tx.Insert(opt, false), nil
	})
}

// StartCountdown attaches the invoice timer. When it fires the snapshot is
// revalidated and becomes invoiceExpired. Starting twice keeps the running
// timer, and a restored deadline is re-armed for the time that remains.
func (s *Session) StartCountdown() (domain.PendingTransaction, error) {
	return s.mutate(func(tx domain.PendingTransaction) (domain.PendingTransaction, error) {
		e := tx.EngineState()
		if c, ok := e.Countdown(); ok && c.Active() {
			return tx, nil
		}
		d := s.proc.Countdown
		if at, ok := e.InvoiceExpiresAt(); ok {
			if d = at.Sub(s.now()); d <= 0 {
				return tx, nil
			}
		}
		if d <= 0 {
			return tx, &errs.Error{Code: errs.FailedPrecondition, Message: "no invoice countdown configured"}
		}
		c := domain.StartCountdown(d, s.countdownExpired)
		return tx.UpdateEngineState(tx.EngineState().WithCountdown(c)), nil
	})
}

func (s *Session) countdownExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != phaseBuilding {
		return
	}
	s.tx = s.refresh(s.tx)
	rlog.Info("invoice countdown expired", "account", s.account.ID, "asset", s.account.Asset.Code())
}

// Validate recomputes derived values and the validation state.
func (s *Session) Validate() (domain.PendingTransaction, error) {
	return s.mutate(func(tx domain.PendingTransaction) (domain.PendingTransaction, error) {
		return tx, nil
	})
}

// Execute hands the snapshot to the sink when it validates as executable.
// The invoice countdown is released whatever the outcome.
func (s *Session) Execute(ctx context.Context, secret string) (domain.ExecutionResult, error) {
	s.mu.Lock()
	if err := s.writable(); err != nil {
		s.mu.Unlock()
		return domain.ExecutionResult{}, err
	}
	s.tx = s.refresh(s.tx)
	if state := s.tx.ValidationState(); state != domain.ValidationCanExecute {
		s.mu.Unlock()
		return domain.ExecutionResult{}, notExecutable(state)
	}
	submitted := s.tx
	s.phase = phaseExecuting
	s.tx = s.refresh(s.tx)
	s.mu.Unlock()

	result, err := s.proc.Sink.Execute(ctx, s.account, submitted, secret)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tx = s.tx.UpdateEngineState(s.tx.EngineState().Release())
	if err != nil {
		s.phase = phaseBuilding
		s.tx = s.refresh(s.tx)
		rlog.Error("execution failed", "account", s.account.ID, "asset", s.account.Asset.Code(), "error", err)
		return domain.ExecutionResult{}, errs.WrapCode(err, errs.Unavailable, "failed to execute transaction")
	}
	s.phase = phaseCompleted
	s.result = result
	s.tx = s.tx.Remove(domain.KindErrorNotice).Remove(domain.KindBitPayCountdown).
		UpdateValidationState(domain.ValidationCanExecute)
	rlog.Info("transaction executed", "account", s.account.ID, "asset", s.account.Asset.Code(), "execution_id", result.ID)
	return result, nil
}

// Reset abandons the attempt and returns to an uninitialized transaction in
// the same fiat currency. It is refused while execution is in flight.
func (s *Session) Reset() (domain.PendingTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == phaseExecuting {
		return s.tx, inFlight()
	}
	s.tx.EngineState().Release()
	fiat := s.tx.SelectedFiatCurrency()
	s.initialized = false
	s.balance, s.networkFee, s.feeBalance = money.MoneyValue{}, money.MoneyValue{}, nil
	s.quote, s.hasQuote = money.MoneyValue{}, false
	s.destination, s.destinationErr, s.hasDestination = "", nil, false
	s.phase = phaseBuilding
	s.result = domain.ExecutionResult{}
	s.tx = domain.ZeroTransaction(s.account.Asset).UpdateSelectedFiatCurrency(fiat)
	return s.tx, nil
}

// Release stops live resources held by the snapshot without changing it.
func (s *Session) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tx.EngineState().Release()
}

func (s *Session) refresh(tx domain.PendingTransaction) domain.PendingTransaction {
	if s.initialized {
		tx = s.withFees(tx)
		tx = s.withConfirmations(tx)
	}
	state := evaluate(validationInput{
		tx:             tx,
		initialized:    s.initialized,
		inFlight:       s.phase == phaseExecuting,
		now:            s.now(),
		balance:        s.balance,
		networkFee:     s.networkFee,
		feeBalance:     s.feeBalance,
		hasDestination: s.hasDestination,
		destinationErr: s.destinationErr,
		rules:          s.proc.Rules,
	})
	tx = tx.UpdateValidationState(state)
	if _, _, ok := state.Notice(); ok {
		return tx.Insert(domain.ErrorNotice{State: state}, true)
	}
	return tx.Remove(domain.KindErrorNotice)
}

// withFees keeps available and fee in the asset. A fee paid in another asset
// does not reduce available.
func (s *Session) withFees(tx domain.PendingTransaction) domain.PendingTransaction {
	asset := s.account.Asset
	fee := money.Zero(asset)
	if s.networkFee.Currency().Equal(asset) {
		fee = s.networkFee
	}
	available := s.balance
	if a, err := s.balance.Sub(fee); err == nil {
		available = a
	}
	if available.IsNegative() {
		available = money.Zero(asset)
	}
	return tx.UpdateAmountAvailableFee(tx.Amount(), available, fee, fee)
}

func (s *Session) withConfirmations(tx domain.PendingTransaction) domain.PendingTransaction {
	tx = tx.Insert(domain.Source{Value: s.account.ID}, false)
	if s.hasQuote {
		tx = tx.Insert(domain.ExchangePriceOption{Base: s.account.Asset, Rate: s.quote}, false)
	}
	tx = tx.Insert(domain.FeeSelectionConfirmation{Selection: tx.FeeSelection(), Fee: s.networkFee}, false)
	tx = tx.Insert(domain.NetworkFee{Fee: s.networkFee, FiatFee: s.fiatValue(s.networkFee)}, false)
	tx = tx.Insert(domain.FeedTotal{
		Amount:     tx.Amount(),
		Fee:        s.networkFee,
		FiatAmount: s.fiatValue(tx.Amount()),
		FiatFee:    s.fiatValue(s.networkFee),
	}, false)
	if c, ok := tx.EngineState().Countdown(); ok {
		tx = tx.Insert(domain.BitPayCountdown{Remaining: c.Remaining(s.now())}, false)
	} else {
		tx = tx.Remove(domain.KindBitPayCountdown)
	}
	return tx
}

func (s *Session) fiatValue(v money.MoneyValue) *money.MoneyValue {
	if !s.hasQuote || !v.Currency().Equal(s.account.Asset) {
		return nil
	}
	f, err := v.Convert(s.quote)
	if err != nil {
		return nil
	}
	return &f
}
