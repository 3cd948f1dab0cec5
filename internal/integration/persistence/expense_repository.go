// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

// expenseRepository implements the adapter.ExpenseRepository interface.
type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository instance.
func NewExpenseRepository(db *gorm.DB) adapter.ExpenseRepository {
	return &expenseRepository{
		db: db,
	}
}

// FindAll retrieves the user's expenses matching every provided filter.
func (r *expenseRepository) FindAll(ctx context.Context, userID uuid.UUID, filter entity.ExpenseFilter) ([]*entity.Expense, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)

	if filter.StartDate != nil {
		query = query.Where("date >= ?", model.NewDate(*filter.StartDate))
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", model.NewDate(*filter.EndDate))
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}

	var expenseModels []model.ExpenseModel
	result := query.
		Order("date DESC, created_at DESC").
		Find(&expenseModels)
	if result.Error != nil {
		return nil, result.Error
	}

	expenses := make([]*entity.Expense, len(expenseModels))
	for i := range expenseModels {
		expenses[i] = expenseModels[i].ToEntity()
	}
	return expenses, nil
}

// FindByID retrieves an expense by ID scoped to its owner.
func (r *expenseRepository) FindByID(ctx context.Context, id, userID uuid.UUID) (*entity.Expense, error) {
	var expenseModel model.ExpenseModel
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&expenseModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrExpenseNotFound
		}
		return nil, result.Error
	}
	return expenseModel.ToEntity(), nil
}

// Exists checks if the expense exists and belongs to the user.
func (r *expenseRepository) Exists(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.ExpenseModel{}).
		Where("id = ? AND user_id = ?", id, userID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// Create creates a new expense in the database.
func (r *expenseRepository) Create(ctx context.Context, expense *entity.Expense) error {
	expenseModel := model.ExpenseFromEntity(expense)
	result := r.db.WithContext(ctx).Create(expenseModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Update applies the provided changes with a single conditional UPDATE and
// re-reads the row in the same transaction.
func (r *expenseRepository) Update(ctx context.Context, id, userID uuid.UUID, changes entity.ExpenseChanges) (*entity.Expense, error) {
	columns := changedColumns(changes)
	if len(columns) == 0 {
		return nil, domainerror.ErrNoFieldsToUpdate
	}

	var updated model.ExpenseModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.ExpenseModel{}).
			Where("id = ? AND user_id = ?", id, userID).
			Updates(columns)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrExpenseNotFound
		}

		return tx.Where("id = ? AND user_id = ?", id, userID).First(&updated).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrExpenseNotFound
		}
		return nil, err
	}

	return updated.ToEntity(), nil
}

// changedColumns maps the non-nil changes to column values.
func changedColumns(changes entity.ExpenseChanges) map[string]interface{} {
	columns := make(map[string]interface{}, 4)
	if changes.Amount != nil {
		columns["amount"] = changes.Amount.Round(2)
	}
	if changes.Description != nil {
		columns["description"] = *changes.Description
	}
	if changes.Category != nil {
		columns["category"] = *changes.Category
	}
	if changes.Date != nil {
		columns["date"] = model.NewDate(*changes.Date)
	}
	return columns
}

// Delete removes an expense and reports whether a row was removed.
func (r *expenseRepository) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.ExpenseModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// GetStatistics computes the total, per-category and monthly sums sharing one
// date predicate.
func (r *expenseRepository) GetStatistics(ctx context.Context, userID uuid.UUID, filter entity.StatisticsFilter) (*entity.StatisticsSnapshot, error) {
	scoped := func() *gorm.DB {
		query := r.db.WithContext(ctx).
			Model(&model.ExpenseModel{}).
			Where("user_id = ?", userID)
		if filter.StartDate != nil {
			query = query.Where("date >= ?", model.NewDate(*filter.StartDate))
		}
		if filter.EndDate != nil {
			query = query.Where("date <= ?", model.NewDate(*filter.EndDate))
		}
		return query
	}

	var totalResult struct {
		Total decimal.Decimal
	}
	if err := scoped().Select("COALESCE(SUM(amount), 0) AS total").Scan(&totalResult).Error; err != nil {
		return nil, fmt.Errorf("failed to get total: %w", err)
	}

	var categoryResults []struct {
		Category string          `gorm:"column:category"`
		Total    decimal.Decimal `gorm:"column:total"`
	}
	err := scoped().
		Select("category, SUM(amount) AS total").
		Group("category").
		Order("total DESC, category ASC").
		Scan(&categoryResults).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get category totals: %w", err)
	}

	month := r.monthExpression()
	var monthlyResults []struct {
		Month string          `gorm:"column:month"`
		Total decimal.Decimal `gorm:"column:total"`
	}
	err = scoped().
		Select(month + " AS month, SUM(amount) AS total").
		Group(month).
		Order("month DESC").
		Limit(entity.MaxStatisticsMonths).
		Scan(&monthlyResults).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get monthly totals: %w", err)
	}

	snapshot := &entity.StatisticsSnapshot{
		Total:      totalResult.Total.Round(2),
		ByCategory: make([]entity.CategoryTotal, len(categoryResults)),
		Monthly:    make([]entity.MonthlyTotal, len(monthlyResults)),
	}
	for i, res := range categoryResults {
		snapshot.ByCategory[i] = entity.CategoryTotal{Category: res.Category, Total: res.Total.Round(2)}
	}
	for i, res := range monthlyResults {
		snapshot.Monthly[i] = entity.MonthlyTotal{Month: res.Month, Total: res.Total.Round(2)}
	}

	// SQLite sums in floating point; re-apply the tie-break on rounded totals.
	sort.SliceStable(snapshot.ByCategory, func(i, j int) bool {
		a, b := snapshot.ByCategory[i], snapshot.ByCategory[j]
		if cmp := a.Total.Cmp(b.Total); cmp != 0 {
			return cmp > 0
		}
		return a.Category < b.Category
	})

	return snapshot, nil
}

// monthExpression returns the dialect's SQL for formatting date as YYYY-MM.
func (r *expenseRepository) monthExpression() string {
	if r.db.Dialector.Name() == "postgres" {
		return "TO_CHAR(date, 'YYYY-MM')"
	}
	return "strftime('%Y-%m', date)"
}

// ListCategories returns the distinct category labels of the user, sorted.
func (r *expenseRepository) ListCategories(ctx context.Context, userID uuid.UUID) ([]string, error) {
	categories := []string{}
	result := r.db.WithContext(ctx).
		Model(&model.ExpenseModel{}).
		Distinct().
		Where("user_id = ?", userID).
		Order("category ASC").
		Pluck("category", &categories)
	if result.Error != nil {
		return nil, result.Error
	}
	return categories, nil
}
