package quota

import (
	"context"
	"errors"
	"testing"
	"time"

	"phonechecker/platform/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct{}

func (failingStore) IncrBy(context.Context, string, int64, time.Time) (int64, error) {
	return 0, errors.New("connection refused")
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestGuard_AllowsUpToLimit(t *testing.T) {
	ctx := context.Background()
	g := NewGuard(NewMemoryStore(), 3, nil)

	require.NoError(t, g.Consume(ctx, "10.0.0.1", 2))
	require.NoError(t, g.Consume(ctx, "10.0.0.1", 1))

	err := g.Consume(ctx, "10.0.0.1", 1)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindTooManyRequests))

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, Usage{Used: 3, Limit: 3}, appErr.Details)
}

func TestGuard_RejectedReservationIsRolledBack(t *testing.T) {
	ctx := context.Background()
	g := NewGuard(NewMemoryStore(), 5, nil)

	require.NoError(t, g.Consume(ctx, "client", 4))
	require.Error(t, g.Consume(ctx, "client", 3))
	// The failed bulk reservation must not eat into the remaining check.
	assert.NoError(t, g.Consume(ctx, "client", 1))
}

func TestGuard_ClientsAreIndependent(t *testing.T) {
	ctx := context.Background()
	g := NewGuard(NewMemoryStore(), 1, nil)

	require.NoError(t, g.Consume(ctx, "a", 1))
	assert.NoError(t, g.Consume(ctx, "b", 1))
	assert.Error(t, g.Consume(ctx, "a", 1))
}

func TestGuard_ResetsAtUTCMidnight(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	g := NewGuard(store, 1, nil)

	day := time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC)
	g.now = fixedClock(day)
	store.now = fixedClock(day)
	require.NoError(t, g.Consume(ctx, "client", 1))
	require.Error(t, g.Consume(ctx, "client", 1))

	next := day.Add(2 * time.Minute)
	g.now = fixedClock(next)
	store.now = fixedClock(next)
	assert.NoError(t, g.Consume(ctx, "client", 1))
}

func TestGuard_NonPositiveIsFree(t *testing.T) {
	g := NewGuard(failingStore{}, 1, nil)
	assert.NoError(t, g.Consume(context.Background(), "client", 0))
}

func TestGuard_StoreFailure(t *testing.T) {
	g := NewGuard(failingStore{}, 10, nil)

	err := g.Consume(context.Background(), "client", 1)
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnavailable, apperr.GetKind(err))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestDailyKey(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	key, expires := dailyKey("1.2.3.4", time.Date(2026, 5, 10, 1, 30, 0, 0, loc))

	assert.Equal(t, "quota:guest:1.2.3.4:2026-05-09", key)
	assert.Equal(t, time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC), expires)
}

func TestMemoryStore_SweepsExpiredCounters(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = fixedClock(start)

	v, err := m.IncrBy(ctx, "old", 5, start.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(5), v)

	m.now = fixedClock(start.Add(2 * time.Hour))
	_, err = m.IncrBy(ctx, "new", 1, start.Add(3*time.Hour))
	require.NoError(t, err)
	assert.NotContains(t, m.counters, "old")

	v, err = m.IncrBy(ctx, "old", 1, start.Add(3*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
}
