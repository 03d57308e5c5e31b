// Package usage tracks the monthly free-tier request quota. The counter
// is client-local and trivially resettable by clearing the store; it is a
// courtesy limit, not a security boundary.
package usage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/critiq-cli/critiq/internal/model"
	"github.com/critiq-cli/critiq/internal/storage"
)

// DefaultMonthlyLimit is the free-tier cap on analysis batches per month.
const DefaultMonthlyLimit = 10

// Clock abstracts time for deterministic tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Tracker maintains the monthly-rolling request counter.
type Tracker struct {
	store *storage.Store
	clock Clock
	limit int
	mu    sync.Mutex
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock replaces the system clock, used by tests to simulate
// month rollover without real delay.
func WithClock(c Clock) Option {
	return func(t *Tracker) { t.clock = c }
}

// WithLimit overrides the monthly limit.
func WithLimit(limit int) Option {
	return func(t *Tracker) { t.limit = limit }
}

// NewTracker creates a tracker persisting through the given store.
func NewTracker(store *storage.Store, opts ...Option) *Tracker {
	t := &Tracker{
		store: store,
		clock: systemClock{},
		limit: DefaultMonthlyLimit,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Status returns the current usage record. A stored record from a
// different (month, year) is stale: it is reset to zero for the current
// period and the reset is persisted before returning.
func (t *Tracker) Status() model.UsageData {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.currentLocked()
}

func (t *Tracker) currentLocked() model.UsageData {
	now := t.clock.Now()
	fresh := model.UsageData{Count: 0, Month: now.Month(), Year: now.Year()}

	data := storage.Load(t.store, storage.KeyUsage, fresh)
	if data.Month != now.Month() || data.Year != now.Year() {
		data = fresh
		// Persist the rollover so a subsequent load in the same period
		// sees a zeroed counter. Storage failures degrade to defaults.
		_ = t.store.Set(storage.KeyUsage, data)
	}
	return data
}

// Increment records one completed analysis batch and persists the new
// count. Called exactly once per batch, never rolled back.
func (t *Tracker) Increment() (model.UsageData, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	data := t.currentLocked()
	data.Count++
	if err := t.store.Set(storage.KeyUsage, data); err != nil {
		return data, fmt.Errorf("failed to persist usage count: %w", err)
	}
	return data, nil
}

// Limit returns the monthly cap.
func (t *Tracker) Limit() int {
	return t.limit
}

// Remaining returns how many batches are left this month, clamped at 0.
func (t *Tracker) Remaining() int {
	remaining := t.limit - t.Status().Count
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsLimitReached reports whether the quota is exhausted.
func (t *Tracker) IsLimitReached() bool {
	return t.Status().Count >= t.limit
}

// Watch re-checks month rollover on every tick until the context is
// canceled. The tick channel is caller-owned so tests can advance time
// by sending on it.
func (t *Tracker) Watch(ctx context.Context, ticks <-chan time.Time) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-ticks:
			if !ok {
				return
			}
			t.Status()
		}
	}
}
