package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/infra/db"
	"github.com/expense-tracker/backend/internal/integration/persistence"
)

// newTestDB opens a private in-memory SQLite database with the schema applied.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(sqlDB, gdb.Dialector.Name()))
	return gdb
}

func createUser(t *testing.T, gdb *gorm.DB, username string) *entity.User {
	t.Helper()

	user := entity.NewUser(username, username+"@example.com", "hash")
	require.NoError(t, persistence.NewUserRepository(gdb).Create(context.Background(), user))
	return user
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()

	d, err := time.Parse(entity.DateLayout, value)
	require.NoError(t, err)
	return d
}

func createExpense(t *testing.T, gdb *gorm.DB, userID uuid.UUID, amount, category, date string) *entity.Expense {
	t.Helper()

	expense := entity.NewExpense(userID, decimal.RequireFromString(amount), category+" purchase", category, mustDate(t, date))
	require.NoError(t, persistence.NewExpenseRepository(gdb).Create(context.Background(), expense))
	return expense
}
