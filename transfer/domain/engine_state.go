package domain

import (
	"time"

	"encore.app/transfer/money"
)

// UserTier is the verification tier of the account owner.
type UserTier string

const (
	TierSilver UserTier = "silver"
	TierGold   UserTier = "gold"
)

// UserTiersSnapshot is the tier information captured when limits were loaded.
type UserTiersSnapshot struct {
	Current UserTier `json:"current"`
	// Limit is the per-transaction ceiling of the current tier, when known.
	Limit *money.MoneyValue `json:"limit,omitempty"`
}

// EngineState carries engine-specific transient values next to a pending
// transaction. Each slot is a typed optional; the side channel takes no part
// in PendingTransaction equality.
type EngineState struct {
	countdown    *Countdown
	invoiceEnd   time.Time
	memo         string
	hasMemo      bool
	sessionToken string
	userTiers    *UserTiersSnapshot
}

// Countdown returns the live invoice timer, if one is attached.
func (e EngineState) Countdown() (*Countdown, bool) { return e.countdown, e.countdown != nil }

// InvoiceExpiresAt is the deadline of the invoice countdown. It survives
// persistence even though the live timer does not.
func (e EngineState) InvoiceExpiresAt() (time.Time, bool) {
	return e.invoiceEnd, !e.invoiceEnd.IsZero()
}

func (e EngineState) Memo() (string, bool) { return e.memo, e.hasMemo }

func (e EngineState) SessionToken() (string, bool) { return e.sessionToken, e.sessionToken != "" }

func (e EngineState) UserTiers() (UserTiersSnapshot, bool) {
	if e.userTiers == nil {
		return UserTiersSnapshot{}, false
	}
	return *e.userTiers, true
}

// WithCountdown attaches c. The previous countdown, if different, is stopped.
func (e EngineState) WithCountdown(c *Countdown) EngineState {
	if e.countdown != nil && e.countdown != c {
		e.countdown.Stop()
	}
	e.countdown = c
	if c != nil {
		e.invoiceEnd = c.ExpiresAt()
	}
	return e
}

// WithInvoiceDeadline restores a persisted deadline without a live timer.
func (e EngineState) WithInvoiceDeadline(at time.Time) EngineState {
	e.invoiceEnd = at
	return e
}

// WithoutCountdown stops and detaches the countdown and clears the deadline.
func (e EngineState) WithoutCountdown() EngineState {
	e.countdown.Stop()
	e.countdown = nil
	e.invoiceEnd = time.Time{}
	return e
}

func (e EngineState) WithMemo(memo string) EngineState {
	e.memo, e.hasMemo = memo, true
	return e
}

func (e EngineState) WithoutMemo() EngineState {
	e.memo, e.hasMemo = "", false
	return e
}

func (e EngineState) WithSessionToken(token string) EngineState {
	e.sessionToken = token
	return e
}

func (e EngineState) WithUserTiers(t UserTiersSnapshot) EngineState {
	e.userTiers = &t
	return e
}

// Release stops every live resource held by the side channel.
func (e EngineState) Release() EngineState {
	return e.WithoutCountdown()
}
