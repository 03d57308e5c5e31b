package usage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/critiq-cli/critiq/internal/model"
	"github.com/critiq-cli/critiq/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newTestTracker(t *testing.T, clock Clock) (*Tracker, *storage.Store) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "critiq.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return NewTracker(store, WithClock(clock)), store
}

func TestTrackerStartsAtZero(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)}
	tracker, _ := newTestTracker(t, clock)

	status := tracker.Status()
	assert.Equal(t, 0, status.Count)
	assert.Equal(t, time.March, status.Month)
	assert.Equal(t, 2026, status.Year)
	assert.Equal(t, DefaultMonthlyLimit, tracker.Remaining())
	assert.False(t, tracker.IsLimitReached())
}

func TestTrackerLimitReached(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)}
	tracker, _ := newTestTracker(t, clock)

	for i := 0; i < DefaultMonthlyLimit; i++ {
		_, err := tracker.Increment()
		require.NoError(t, err)
	}

	assert.True(t, tracker.IsLimitReached())
	assert.Equal(t, 0, tracker.Remaining())

	// An 11th increment still counts but remaining stays clamped at 0.
	data, err := tracker.Increment()
	require.NoError(t, err)
	assert.Equal(t, DefaultMonthlyLimit+1, data.Count)
	assert.Equal(t, 0, tracker.Remaining())
}

func TestTrackerMonthRolloverResets(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, time.February, 27, 10, 0, 0, 0, time.UTC)}
	tracker, store := newTestTracker(t, clock)

	for i := 0; i < 4; i++ {
		_, err := tracker.Increment()
		require.NoError(t, err)
	}
	assert.Equal(t, 4, tracker.Status().Count)

	clock.now = time.Date(2026, time.March, 1, 0, 1, 0, 0, time.UTC)

	status := tracker.Status()
	assert.Equal(t, 0, status.Count)
	assert.Equal(t, time.March, status.Month)

	// The reset is persisted before any increment.
	var stored model.UsageData
	require.NoError(t, store.Get(storage.KeyUsage, &stored))
	assert.Equal(t, 0, stored.Count)
	assert.Equal(t, time.March, stored.Month)
}

func TestTrackerYearRolloverResets(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, time.December, 31, 23, 0, 0, 0, time.UTC)}
	tracker, _ := newTestTracker(t, clock)

	_, err := tracker.Increment()
	require.NoError(t, err)

	// Same month index, different year.
	clock.now = time.Date(2026, time.December, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, tracker.Status().Count)
}

func TestTrackerWatchChecksOnTick(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, time.February, 27, 10, 0, 0, 0, time.UTC)}
	tracker, store := newTestTracker(t, clock)

	_, err := tracker.Increment()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	ticks := make(chan time.Time)
	done := make(chan struct{})
	go func() {
		tracker.Watch(ctx, ticks)
		close(done)
	}()

	clock.now = time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	ticks <- clock.now

	// The tick triggered a rollover check; the stored record is reset.
	assert.Eventually(t, func() bool {
		var stored model.UsageData
		if err := store.Get(storage.KeyUsage, &stored); err != nil {
			return false
		}
		return stored.Count == 0 && stored.Month == time.March
	}, time.Second, 10*time.Millisecond)

	cancel()
	<-done
}

func TestTrackerCustomLimit(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)}
	store, err := storage.Open(filepath.Join(t.TempDir(), "critiq.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	tracker := NewTracker(store, WithClock(clock), WithLimit(2))
	_, err = tracker.Increment()
	require.NoError(t, err)
	assert.False(t, tracker.IsLimitReached())
	_, err = tracker.Increment()
	require.NoError(t, err)
	assert.True(t, tracker.IsLimitReached())
}
