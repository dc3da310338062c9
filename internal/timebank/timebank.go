// Package timebank tracks the game clock a bot spends across its decisions.
package timebank

import (
	"sync"
	"time"

	"github.com/coder/quartz"
)

// Bank is the time left for the rest of a match. It is safe for concurrent use.
type Bank struct {
	mu        sync.Mutex
	clock     quartz.Clock
	remaining time.Duration
}

// New returns a bank holding total time.
func New(clock quartz.Clock, total time.Duration) *Bank {
	return &Bank{clock: clock, remaining: total}
}

// Remaining returns the unspent time, never negative.
func (b *Bank) Remaining() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	return max(b.remaining, 0)
}

// Set replaces the remaining time, e.g. from the clock the game engine reports.
func (b *Bank) Set(remaining time.Duration) {
	b.mu.Lock()
	b.remaining = remaining
	b.mu.Unlock()
}

// Decision is one timed decision drawn against a bank.
type Decision struct {
	bank    *Bank
	started time.Time
	once    sync.Once
	spent   time.Duration
}

// Begin starts timing a decision.
func (b *Bank) Begin() *Decision {
	return &Decision{bank: b, started: b.clock.Now()}
}

// Budget is the time the bank held when the decision began, less what the
// decision has used so far.
func (d *Decision) Budget() time.Duration {
	return max(d.bank.Remaining()-d.bank.clock.Since(d.started), 0)
}

// End charges the elapsed time to the bank and returns it. Only the first
// call charges.
func (d *Decision) End() time.Duration {
	d.once.Do(func() {
		d.spent = d.bank.clock.Since(d.started)
		d.bank.mu.Lock()
		d.bank.remaining -= d.spent
		d.bank.mu.Unlock()
	})
	return d.spent
}
