// Package quota meters guest phone checks per client per UTC day.
package quota

import (
	"context"
	"fmt"
	"time"

	"phonechecker/platform/apperr"
	"phonechecker/platform/logger"
)

const (
	opConsume = "quota.guard.consume"

	keyPrefix = "quota:guest"
)

// Store keeps expiring counters. IncrBy returns the counter value after the
// increment and makes sure the key expires no earlier than expiresAt.
type Store interface {
	IncrBy(ctx context.Context, key string, n int64, expiresAt time.Time) (int64, error)
}

// Usage is reported to clients that ran out of checks.
type Usage struct {
	Used  int `json:"used"`
	Limit int `json:"limit"`
}

// Guard enforces a daily check limit per client.
type Guard struct {
	store Store
	limit int
	now   func() time.Time
	log   *logger.Logger
}

func NewGuard(store Store, limit int, log *logger.Logger) *Guard {
	if log == nil {
		log = logger.Discard()
	}
	return &Guard{
		store: store,
		limit: limit,
		now:   time.Now,
		log:   log,
	}
}

// Consume reserves n checks for clientID. When the reservation would exceed
// the daily limit nothing is reserved and a TooManyRequests error is returned.
func (g *Guard) Consume(ctx context.Context, clientID string, n int) error {
	if n <= 0 {
		return nil
	}

	key, expiresAt := dailyKey(clientID, g.now())
	used, err := g.store.IncrBy(ctx, key, int64(n), expiresAt)
	if err != nil {
		return apperr.Unavailable("quota store unavailable", err).WithOp(opConsume)
	}

	if used <= int64(g.limit) {
		return nil
	}

	if _, err := g.store.IncrBy(ctx, key, -int64(n), expiresAt); err != nil {
		g.log.Error("failed to roll back quota reservation", "error", err, "key", key)
	}

	before := int(used) - n
	g.log.QuotaExceeded(clientID, before, g.limit)
	return apperr.TooManyRequests("Rate limit exceeded").
		WithOp(opConsume).
		WithDetails(Usage{Used: before, Limit: g.limit})
}

// dailyKey returns the counter key for the client's current UTC day and the
// instant that day ends.
func dailyKey(clientID string, now time.Time) (string, time.Time) {
	day := now.UTC()
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return fmt.Sprintf("%s:%s:%s", keyPrefix, clientID, start.Format("2006-01-02")), start.AddDate(0, 0, 1)
}
