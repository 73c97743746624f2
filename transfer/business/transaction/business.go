package transaction

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"encore.dev/beta/errs"
	"encore.dev/rlog"

	"encore.app/transfer/domain"
	"encore.app/transfer/model"
	"encore.app/transfer/money"
	"encore.app/transfer/store"
)

//go:generate mockgen -source=business.go -destination=../../mocks/business/transaction_business/business.go -package=transaction_business

type StartParams struct {
	AccountID string
	Asset     money.CurrencyType
	Action    domain.Action
	Tier      domain.UserTier
	Fiat      money.CurrencyType
}

type Business interface {
	Start(ctx context.Context, params StartParams) (*model.Transfer, error)
	Get(ctx context.Context, id string) (*model.Transfer, error)
	UpdateAmount(ctx context.Context, id string, amount money.MoneyValue) (*model.Transfer, error)
	UseMaxSpendable(ctx context.Context, id string) (*model.Transfer, error)
	UpdateFee(ctx context.Context, id string, level domain.FeeLevel, custom *money.MoneyValue) (*model.Transfer, error)
	SetDestination(ctx context.Context, id string, address string) (*model.Transfer, error)
	SetMemo(ctx context.Context, id string, memo string) (*model.Transfer, error)
	SetDescription(ctx context.Context, id string, text string) (*model.Transfer, error)
	SetOption(ctx context.Context, id string, option domain.BooleanOption) (*model.Transfer, error)
	Execute(ctx context.Context, id string, secret string) (*model.Transfer, error)
	Cancel(ctx context.Context, id string) error
	RecordOutcome(ctx context.Context, id string, status domain.ExecutionStatus) error
}

// live is a session held in memory together with the record it was last
// persisted as. mu serializes operations on one id.
type live struct {
	mu      sync.Mutex
	session *Session
	record  store.Record
}

type business struct {
	sessions   store.Sessions
	processors ProcessorSource
	newID      func() string

	mu   sync.Mutex
	live map[string]*live
}

// NewTransactionBusiness keeps sessions live in memory and persists every
// change through a version compare-and-swap on sessions.
func NewTransactionBusiness(sessions store.Sessions, processors ProcessorSource) Business {
	return &business{
		sessions:   sessions,
		processors: processors,
		newID:      uuid.NewString,
		live:       map[string]*live{},
	}
}

func (b *business) Start(ctx context.Context, params StartParams) (*model.Transfer, error) {
	if params.AccountID == "" {
		return nil, &errs.Error{Code: errs.InvalidArgument, Message: "account id is required"}
	}
	if params.Action == "" {
		params.Action = domain.ActionSend
	}
	if params.Fiat.IsZero() {
		params.Fiat = money.USD
	}
	account := domain.Account{
		ID:     params.AccountID,
		Asset:  params.Asset,
		Action: params.Action,
		Tier:   params.Tier,
	}

	proc, err := b.processors.Processor(account)
	if err != nil {
		return nil, err
	}
	s, err := NewFlow(account, params.Fiat).Attach(proc)
	if err != nil {
		return nil, err
	}
	// The id doubles as the session token that keys execution dedup.
	id := b.newID()
	if _, err := s.Update(func(tx domain.PendingTransaction) (domain.PendingTransaction, error) {
		return tx.UpdateEngineState(tx.EngineState().WithSessionToken(id)), nil
	}); err != nil {
		return nil, err
	}
	if _, err := s.Initialize(ctx); err != nil {
		return nil, err
	}
	if proc.Countdown > 0 {
		if _, err := s.StartCountdown(); err != nil {
			s.Release()
			return nil, err
		}
	}

	rec, err := b.sessions.Create(ctx, store.Record{
		ID:          id,
		Account:     account,
		Transaction: s.Snapshot(),
	})
	if err != nil {
		s.Release()
		rlog.Error("failed to store new session", "account", account.ID, "error", err)
		return nil, err
	}

	b.mu.Lock()
	b.live[rec.ID] = &live{session: s, record: rec}
	b.mu.Unlock()

	rlog.Info("transfer started", "id", rec.ID, "account", account.ID, "asset", account.Asset.Code())
	return view(rec, s.Snapshot()), nil
}

func (b *business) Get(ctx context.Context, id string) (*model.Transfer, error) {
	l, err := b.acquire(ctx, id)
	if err != nil {
		return nil, err
	}
	defer l.mu.Unlock()
	tx, err := l.session.Validate()
	if errors.Is(err, ErrAlreadyExecuted) {
		tx, err = l.session.Snapshot(), nil
	}
	if err != nil {
		return nil, err
	}
	return view(l.record, tx), nil
}

func (b *business) UpdateAmount(ctx context.Context, id string, amount money.MoneyValue) (*model.Transfer, error) {
	return b.apply(ctx, id, func(s *Session) error {
		_, err := s.UpdateAmount(amount)
		return err
	})
}

func (b *business) UseMaxSpendable(ctx context.Context, id string) (*model.Transfer, error) {
	return b.apply(ctx, id, func(s *Session) error {
		_, err := s.UseMaxSpendable()
		return err
	})
}

func (b *business) UpdateFee(ctx context.Context, id string, level domain.FeeLevel, custom *money.MoneyValue) (*model.Transfer, error) {
	return b.apply(ctx, id, func(s *Session) error {
		_, err := s.UpdateFeeLevel(ctx, level, custom)
		return err
	})
}

func (b *business) SetDestination(ctx context.Context, id string, address string) (*model.Transfer, error) {
	return b.apply(ctx, id, func(s *Session) error {
		_, err := s.SetDestination(address)
		return err
	})
}

func (b *business) SetMemo(ctx context.Context, id string, memo string) (*model.Transfer, error) {
	return b.apply(ctx, id, func(s *Session) error {
		_, err := s.SetMemo(memo)
		return err
	})
}

func (b *business) SetDescription(ctx context.Context, id string, text string) (*model.Transfer, error) {
	return b.apply(ctx, id, func(s *Session) error {
		_, err := s.SetDescription(text)
		return err
	})
}

func (b *business) SetOption(ctx context.Context, id string, option domain.BooleanOption) (*model.Transfer, error) {
	return b.apply(ctx, id, func(s *Session) error {
		_, err := s.SetOption(option)
		return err
	})
}

func (b *business) Execute(ctx context.Context, id string, secret string) (*model.Transfer, error) {
	return b.apply(ctx, id, func(s *Session) error {
		_, err := s.Execute(ctx, secret)
		return err
	})
}

// Cancel abandons an attempt that has not been executed and deletes it.
func (b *business) Cancel(ctx context.Context, id string) error {
	l, err := b.acquire(ctx, id)
	if err != nil {
		return err
	}
	defer l.mu.Unlock()
	if _, done := l.session.Result(); done {
		return alreadyExecuted()
	}
	if _, err := l.session.Reset(); err != nil {
		return err
	}
	b.forget(id, l)
	if err := b.sessions.Delete(ctx, id); err != nil {
		return err
	}
	rlog.Info("transfer cancelled", "id", id)
	return nil
}

// RecordOutcome stores the network status of an executed attempt.
func (b *business) RecordOutcome(ctx context.Context, id string, status domain.ExecutionStatus) error {
	if !status.IsKnown() {
		return &errs.Error{Code: errs.InvalidArgument, Message: "unknown execution status " + string(status)}
	}
	l, err := b.acquire(ctx, id)
	if err != nil {
		return err
	}
	defer l.mu.Unlock()
	if l.record.Execution == nil {
		return &errs.Error{Code: errs.FailedPrecondition, Message: "transfer " + id + " has not been executed"}
	}
	if l.record.Status != status {
		if _, err := b.persist(ctx, id, l, func(rec *store.Record) { rec.Status = status }); err != nil {
			return err
		}
	}
	if status.IsTerminal() {
		// Settled transfers are served from the store from now on.
		b.forget(id, l)
	}
	return nil
}

func (b *business) apply(ctx context.Context, id string, op func(s *Session) error) (*model.Transfer, error) {
	l, err := b.acquire(ctx, id)
	if err != nil {
		return nil, err
	}
	defer l.mu.Unlock()
	if err := op(l.session); err != nil {
		return nil, err
	}
	return b.persist(ctx, id, l, nil)
}

// acquire returns the live session for id with its lock held, loading it
// from the store when this process does not hold it yet.
func (b *business) acquire(ctx context.Context, id string) (*live, error) {
	b.mu.Lock()
	l, ok := b.live[id]
	if !ok {
		l = &live{}
		b.live[id] = l
	}
	b.mu.Unlock()

	l.mu.Lock()
	if l.session != nil {
		return l, nil
	}
	if err := b.rehydrate(ctx, id, l); err != nil {
		l.mu.Unlock()
		b.drop(id, l)
		return nil, err
	}
	return l, nil
}

func (b *business) rehydrate(ctx context.Context, id string, l *live) error {
	rec, err := b.sessions.Get(ctx, id)
	if err != nil {
		return err
	}
	proc, err := b.processors.Processor(rec.Account)
	if err != nil {
		return err
	}
	s, err := ResumeFlow(rec.Account, rec.Transaction).Attach(proc)
	if err != nil {
		return err
	}
	if rec.Execution != nil {
		s.markCompleted(*rec.Execution)
	} else {
		if _, err := s.Initialize(ctx); err != nil {
			return err
		}
		if _, ok := rec.Transaction.EngineState().InvoiceExpiresAt(); ok {
			if _, err := s.StartCountdown(); err != nil {
				s.Release()
				return err
			}
		}
	}
	l.session, l.record = s, rec
	rlog.Debug("session rehydrated", "id", id, "version", rec.Version)
	return nil
}

// persist swaps the session snapshot into the store. Any failed swap drops
// the live session so the next call reloads the stored record.
func (b *business) persist(ctx context.Context, id string, l *live, edit func(rec *store.Record)) (*model.Transfer, error) {
	rec := l.record
	rec.Transaction = l.session.Snapshot()
	if result, done := l.session.Result(); done && rec.Execution == nil {
		rec.Execution = &result
		rec.Status = domain.ExecutionSubmitted
	}
	if edit != nil {
		edit(&rec)
	}

	saved, err := b.sessions.Swap(ctx, rec)
	if err != nil {
		if errors.Is(err, store.ErrStaleSnapshot) {
			rlog.Warn("stale session snapshot, reloading on next call", "id", id, "version", rec.Version)
		} else {
			rlog.Error("failed to store session", "id", id, "version", rec.Version, "error", err)
		}
		// The live session holds the unsaved change; the store is authoritative.
		b.forget(id, l)
		return nil, err
	}
	l.record = saved
	return view(saved, rec.Transaction), nil
}

// forget releases the live session and removes it. The caller holds l.mu.
func (b *business) forget(id string, l *live) {
	if l.session != nil {
		l.session.Release()
		l.session = nil
	}
	b.drop(id, l)
}

func (b *business) drop(id string, l *live) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.live[id] == l {
		delete(b.live, id)
	}
}

func view(rec store.Record, tx domain.PendingTransaction) *model.Transfer {
	lines := []domain.Formatted{}
	for _, c := range tx.Confirmations() {
		if f, ok := c.Formatted(); ok {
			lines = append(lines, f)
		}
	}
	return &model.Transfer{
		ID:           rec.ID,
		Account:      rec.Account,
		Transaction:  tx,
		MaxSpendable: tx.MaxSpendable(),
		Lines:        lines,
		Execution:    rec.Execution,
		Status:       rec.Status,
		Version:      rec.Version,
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
	}
}
