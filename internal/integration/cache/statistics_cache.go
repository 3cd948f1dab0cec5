// Package cache implements Redis-backed caches for application data.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

const keyPrefix = "expense-tracker:stats"

// statisticsCache implements the adapter.StatisticsCache interface.
type statisticsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStatisticsCache creates a Redis statistics cache whose entries live for ttl.
func NewStatisticsCache(client *redis.Client, ttl time.Duration) adapter.StatisticsCache {
	return &statisticsCache{
		client: client,
		ttl:    ttl,
	}
}

type cachedTotal struct {
	Label string          `json:"label"`
	Total decimal.Decimal `json:"total"`
}

type cachedSnapshot struct {
	Total      decimal.Decimal `json:"total"`
	ByCategory []cachedTotal   `json:"by_category"`
	Monthly    []cachedTotal   `json:"monthly"`
}

// Key resolves the cache key for the user's current generation and the filter.
func (c *statisticsCache) Key(ctx context.Context, userID uuid.UUID, filter entity.StatisticsFilter) (string, error) {
	generation, err := c.client.Get(ctx, generationKey(userID)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("failed to read cache generation: %w", err)
	}

	return fmt.Sprintf("%s:%s:%d:%s:%s", keyPrefix, userID, generation,
		formatBound(filter.StartDate), formatBound(filter.EndDate)), nil
}

// Get returns a cached snapshot, or nil on a miss.
func (c *statisticsCache) Get(ctx context.Context, key string) (*entity.StatisticsSnapshot, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cached statistics: %w", err)
	}

	var cached cachedSnapshot
	if err := json.Unmarshal(payload, &cached); err != nil {
		return nil, fmt.Errorf("failed to decode cached statistics: %w", err)
	}

	snapshot := &entity.StatisticsSnapshot{
		Total:      cached.Total,
		ByCategory: make([]entity.CategoryTotal, len(cached.ByCategory)),
		Monthly:    make([]entity.MonthlyTotal, len(cached.Monthly)),
	}
	for i, ct := range cached.ByCategory {
		snapshot.ByCategory[i] = entity.CategoryTotal{Category: ct.Label, Total: ct.Total}
	}
	for i, mt := range cached.Monthly {
		snapshot.Monthly[i] = entity.MonthlyTotal{Month: mt.Label, Total: mt.Total}
	}
	return snapshot, nil
}

// Set stores a snapshot under key.
func (c *statisticsCache) Set(ctx context.Context, key string, snapshot *entity.StatisticsSnapshot) error {
	cached := cachedSnapshot{
		Total:      snapshot.Total,
		ByCategory: make([]cachedTotal, len(snapshot.ByCategory)),
		Monthly:    make([]cachedTotal, len(snapshot.Monthly)),
	}
	for i, ct := range snapshot.ByCategory {
		cached.ByCategory[i] = cachedTotal{Label: ct.Category, Total: ct.Total}
	}
	for i, mt := range snapshot.Monthly {
		cached.Monthly[i] = cachedTotal{Label: mt.Month, Total: mt.Total}
	}

	payload, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("failed to encode statistics: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache statistics: %w", err)
	}
	return nil
}

// Invalidate retires the user's current generation. Entries of older
// generations are never read again and expire on their own.
func (c *statisticsCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	if err := c.client.Incr(ctx, generationKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate statistics cache: %w", err)
	}
	return nil
}

func generationKey(userID uuid.UUID) string {
	return fmt.Sprintf("%s:%s:generation", keyPrefix, userID)
}

func formatBound(date *time.Time) string {
	if date == nil {
		return "-"
	}
	return date.Format(entity.DateLayout)
}
