package domain

import (
	"sync"
	"sync/atomic"
	"time"
)

// Countdown is a live invoice timer held in the engine-state side channel.
// It is released exactly once, either by Stop or by expiring.
type Countdown struct {
	expiresAt time.Time
	timer     *time.Timer
	done      chan struct{}
	once      sync.Once
	expired   atomic.Bool
}

// StartCountdown arms a timer that fires onExpire after d unless stopped first.
// onExpire may be nil.
func StartCountdown(d time.Duration, onExpire func()) *Countdown {
	c := &Countdown{
		expiresAt: time.Now().Add(d),
		done:      make(chan struct{}),
	}
	c.timer = time.AfterFunc(d, func() {
		released := false
		c.once.Do(func() {
			c.expired.Store(true)
			close(c.done)
			released = true
		})
		if released && onExpire != nil {
			onExpire()
		}
	})
	return c
}

// Stop cancels the timer. It reports whether this call released it; stopping
// an already stopped or expired countdown is a no-op.
func (c *Countdown) Stop() bool {
	if c == nil {
		return false
	}
	released := false
	c.once.Do(func() {
		c.timer.Stop()
		close(c.done)
		released = true
	})
	return released
}

func (c *Countdown) ExpiresAt() time.Time { return c.expiresAt }

// Done is closed once the countdown is stopped or has expired.
func (c *Countdown) Done() <-chan struct{} { return c.done }

func (c *Countdown) Expired() bool { return c != nil && c.expired.Load() }

// Active is true until the countdown is stopped or expires.
func (c *Countdown) Active() bool {
	if c == nil {
		return false
	}
	select {
	case <-c.done:
		return false
	default:
		return true
	}
}

// Remaining is the time left relative to now, never negative.
func (c *Countdown) Remaining(now time.Time) time.Duration {
	if c == nil || c.expired.Load() {
		return 0
	}
	if left := c.expiresAt.Sub(now); left > 0 {
		return left
	}
	return 0
}
