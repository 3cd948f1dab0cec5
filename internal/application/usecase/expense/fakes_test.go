package expense

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// fakeExpenseRepository keeps expenses in memory and records the last calls.
type fakeExpenseRepository struct {
	mu          sync.Mutex
	expenses    map[uuid.UUID]*entity.Expense
	err         error
	lastFilter  entity.ExpenseFilter
	lastChanges entity.ExpenseChanges
	statsCalls  int
	updateCalls int
}

func newFakeExpenseRepository(expenses ...*entity.Expense) *fakeExpenseRepository {
	repo := &fakeExpenseRepository{expenses: make(map[uuid.UUID]*entity.Expense)}
	for _, e := range expenses {
		repo.expenses[e.ID] = e
	}
	return repo
}

func (r *fakeExpenseRepository) owned(id, userID uuid.UUID) (*entity.Expense, bool) {
	e, ok := r.expenses[id]
	if !ok || e.UserID != userID {
		return nil, false
	}
	return e, true
}

func (r *fakeExpenseRepository) FindAll(_ context.Context, userID uuid.UUID, filter entity.ExpenseFilter) ([]*entity.Expense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastFilter = filter
	if r.err != nil {
		return nil, r.err
	}
	var out []*entity.Expense
	for _, e := range r.expenses {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *fakeExpenseRepository) FindByID(_ context.Context, id, userID uuid.UUID) (*entity.Expense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	if e, ok := r.owned(id, userID); ok {
		return e, nil
	}
	return nil, domainerror.ErrExpenseNotFound
}

func (r *fakeExpenseRepository) Exists(_ context.Context, id, userID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return false, r.err
	}
	_, ok := r.owned(id, userID)
	return ok, nil
}

func (r *fakeExpenseRepository) Create(_ context.Context, expense *entity.Expense) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.expenses[expense.ID] = expense
	return nil
}

func (r *fakeExpenseRepository) Update(_ context.Context, id, userID uuid.UUID, changes entity.ExpenseChanges) (*entity.Expense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updateCalls++
	r.lastChanges = changes
	if r.err != nil {
		return nil, r.err
	}
	if changes.IsEmpty() {
		return nil, domainerror.ErrNoFieldsToUpdate
	}
	e, ok := r.owned(id, userID)
	if !ok {
		return nil, domainerror.ErrExpenseNotFound
	}
	updated := *e
	if changes.Amount != nil {
		updated.Amount = *changes.Amount
	}
	if changes.Description != nil {
		updated.Description = *changes.Description
	}
	if changes.Category != nil {
		updated.Category = *changes.Category
	}
	if changes.Date != nil {
		updated.Date = *changes.Date
	}
	r.expenses[id] = &updated
	return &updated, nil
}

func (r *fakeExpenseRepository) Delete(_ context.Context, id, userID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return false, r.err
	}
	if _, ok := r.owned(id, userID); !ok {
		return false, nil
	}
	delete(r.expenses, id)
	return true, nil
}

func (r *fakeExpenseRepository) GetStatistics(_ context.Context, userID uuid.UUID, _ entity.StatisticsFilter) (*entity.StatisticsSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statsCalls++
	if r.err != nil {
		return nil, r.err
	}
	total := decimal.Zero
	for _, e := range r.expenses {
		if e.UserID == userID {
			total = total.Add(e.Amount)
		}
	}
	return &entity.StatisticsSnapshot{Total: total}, nil
}

func (r *fakeExpenseRepository) ListCategories(_ context.Context, userID uuid.UUID) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	seen := map[string]bool{}
	categories := []string{}
	for _, e := range r.expenses {
		if e.UserID == userID && !seen[e.Category] {
			seen[e.Category] = true
			categories = append(categories, e.Category)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

// fakeStatisticsCache is an in-memory generation cache.
type fakeStatisticsCache struct {
	mu          sync.Mutex
	generations map[uuid.UUID]int
	entries     map[string]*entity.StatisticsSnapshot
	err         error
}

func newFakeStatisticsCache() *fakeStatisticsCache {
	return &fakeStatisticsCache{
		generations: make(map[uuid.UUID]int),
		entries:     make(map[string]*entity.StatisticsSnapshot),
	}
}

func (c *fakeStatisticsCache) Key(_ context.Context, userID uuid.UUID, filter entity.StatisticsFilter) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return "", c.err
	}
	key := userID.String() + ":" + strconv.Itoa(c.generations[userID])
	if filter.StartDate != nil {
		key += ":" + filter.StartDate.Format(entity.DateLayout)
	}
	if filter.EndDate != nil {
		key += ":" + filter.EndDate.Format(entity.DateLayout)
	}
	return key, nil
}

func (c *fakeStatisticsCache) Get(_ context.Context, key string) (*entity.StatisticsSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[key], nil
}

func (c *fakeStatisticsCache) Set(_ context.Context, key string, snapshot *entity.StatisticsSnapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = snapshot
	return nil
}

func (c *fakeStatisticsCache) Invalidate(_ context.Context, userID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.generations[userID]++
	return nil
}

func ptr[T any](v T) *T {
	return &v
}
