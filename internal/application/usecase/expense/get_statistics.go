// Package expense contains expense-related use cases.
package expense

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// GetStatisticsInput represents the query for a statistics snapshot.
type GetStatisticsInput struct {
	UserID    uuid.UUID
	StartDate string
	EndDate   string
}

// GetStatisticsUseCase computes aggregate statistics over a user's expenses.
type GetStatisticsUseCase struct {
	expenseRepo adapter.ExpenseRepository
	statsCache  adapter.StatisticsCache
}

// NewGetStatisticsUseCase creates a new GetStatisticsUseCase instance.
// statsCache may be nil when caching is disabled.
func NewGetStatisticsUseCase(expenseRepo adapter.ExpenseRepository, statsCache adapter.StatisticsCache) *GetStatisticsUseCase {
	return &GetStatisticsUseCase{
		expenseRepo: expenseRepo,
		statsCache:  statsCache,
	}
}

// Execute returns the snapshot, served from the cache when possible.
func (uc *GetStatisticsUseCase) Execute(ctx context.Context, input GetStatisticsInput) (*entity.StatisticsSnapshot, error) {
	start, end, err := dateRange(input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}
	filter := entity.StatisticsFilter{StartDate: start, EndDate: end}

	key := uc.cacheKey(ctx, input.UserID, filter)
	if key != "" {
		cached, err := uc.statsCache.Get(ctx, key)
		if err != nil {
			slog.WarnContext(ctx, "Failed to read statistics cache", "userID", input.UserID, "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	snapshot, err := uc.expenseRepo.GetStatistics(ctx, input.UserID, filter)
	if err != nil {
		return nil, internalError(ctx, "Failed to get statistics", err, "userID", input.UserID)
	}

	if key != "" {
		if err := uc.statsCache.Set(ctx, key, snapshot); err != nil {
			slog.WarnContext(ctx, "Failed to store statistics cache", "userID", input.UserID, "error", err)
		}
	}

	return snapshot, nil
}

// cacheKey resolves the key before the store is read, so a snapshot that races
// a write is filed under the generation the write retires.
func (uc *GetStatisticsUseCase) cacheKey(ctx context.Context, userID uuid.UUID, filter entity.StatisticsFilter) string {
	if uc.statsCache == nil {
		return ""
	}
	key, err := uc.statsCache.Key(ctx, userID, filter)
	if err != nil {
		slog.WarnContext(ctx, "Failed to resolve statistics cache key", "userID", userID, "error", err)
		return ""
	}
	return key
}
