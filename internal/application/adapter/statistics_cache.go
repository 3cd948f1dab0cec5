// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// StatisticsCache stores computed statistics snapshots per user and filter.
//
// Keys embed a per-user generation. Resolve the key before reading the store so a
// snapshot computed concurrently with a write lands under a generation that the
// write has already retired.
type StatisticsCache interface {
	// Key resolves the cache key for the user's current generation and the filter.
	Key(ctx context.Context, userID uuid.UUID, filter entity.StatisticsFilter) (string, error)

	// Get returns a cached snapshot, or nil on a miss.
	Get(ctx context.Context, key string) (*entity.StatisticsSnapshot, error)

	// Set stores a snapshot under key.
	Set(ctx context.Context, key string, snapshot *entity.StatisticsSnapshot) error

	// Invalidate retires the user's current generation.
	Invalidate(ctx context.Context, userID uuid.UUID) error
}
