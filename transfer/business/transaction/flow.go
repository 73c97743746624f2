package transaction

import (
	"time"

	"encore.dev/beta/errs"

	"encore.app/transfer/domain"
	"encore.app/transfer/money"
)

// Rules are per-asset requirements checked by validation.
type Rules struct {
	MemoRequired  bool
	TermsRequired bool
	CustomFee     bool
}

// Processor bundles the collaborators a session needs. Every field except
// Countdown and Rules is required.
type Processor struct {
	Balances  BalanceSource
	Quotes    QuoteSource
	Fees      FeeEstimator
	Sink      ExecutionSink
	Limits    LimitsProvider
	Addresses AddressValidator
	Countdown time.Duration
	Rules     Rules
}

// ProcessorSource builds the processor for an account's asset.
type ProcessorSource interface {
	Processor(account domain.Account) (Processor, error)
}

type ProcessorFunc func(account domain.Account) (Processor, error)

func (f ProcessorFunc) Processor(account domain.Account) (Processor, error) { return f(account) }

func (p Processor) complete() bool {
	return p.Balances != nil && p.Quotes != nil && p.Fees != nil &&
		p.Sink != nil && p.Limits != nil && p.Addresses != nil
}

// Flow is a transaction attempt with no processor attached. It only exposes
// its snapshot; amounts, fees and execution live on Session.
type Flow struct {
	account domain.Account
	tx      domain.PendingTransaction
}

// NewFlow starts an attempt for account priced in fiat.
func NewFlow(account domain.Account, fiat money.CurrencyType) *Flow {
	return &Flow{
		account: account,
		tx:      domain.ZeroTransaction(account.Asset).UpdateSelectedFiatCurrency(fiat),
	}
}

// ResumeFlow continues an attempt from a stored snapshot.
func ResumeFlow(account domain.Account, tx domain.PendingTransaction) *Flow {
	return &Flow{account: account, tx: tx}
}

func (f *Flow) Account() domain.Account { return f.account }

func (f *Flow) Snapshot() domain.PendingTransaction { return f.tx }

// Attach binds a processor and returns the session that drives the attempt.
func (f *Flow) Attach(p Processor) (*Session, error) {
	if !p.complete() {
		return nil, errs.WrapCode(ErrIncompleteProcessor, errs.FailedPrecondition, "processor is not fully configured")
	}
	s := &Session{
		account: f.account,
		proc:    p,
		tx:      f.tx,
		now:     time.Now,
	}
	if d, ok := f.tx.Confirmation(domain.KindDestination); ok {
		if dest, ok := d.(domain.Destination); ok {
			s.destination = dest.Value
			s.destinationErr = p.Addresses.Validate(f.account.Asset, dest.Value)
			s.hasDestination = true
		}
	}
	return s, nil
}
