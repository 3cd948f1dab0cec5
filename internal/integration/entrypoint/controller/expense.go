// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/usecase/expense"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
)

// ExpenseController handles expense endpoints.
type ExpenseController struct {
	listUseCase       *expense.ListExpensesUseCase
	getUseCase        *expense.GetExpenseUseCase
	createUseCase     *expense.CreateExpenseUseCase
	updateUseCase     *expense.UpdateExpenseUseCase
	deleteUseCase     *expense.DeleteExpenseUseCase
	statsUseCase      *expense.GetStatisticsUseCase
	categoriesUseCase *expense.ListCategoriesUseCase
}

// NewExpenseController creates a new expense controller instance.
func NewExpenseController(
	listUseCase *expense.ListExpensesUseCase,
	getUseCase *expense.GetExpenseUseCase,
	createUseCase *expense.CreateExpenseUseCase,
	updateUseCase *expense.UpdateExpenseUseCase,
	deleteUseCase *expense.DeleteExpenseUseCase,
	statsUseCase *expense.GetStatisticsUseCase,
	categoriesUseCase *expense.ListCategoriesUseCase,
) *ExpenseController {
	return &ExpenseController{
		listUseCase:       listUseCase,
		getUseCase:        getUseCase,
		createUseCase:     createUseCase,
		updateUseCase:     updateUseCase,
		deleteUseCase:     deleteUseCase,
		statsUseCase:      statsUseCase,
		categoriesUseCase: categoriesUseCase,
	}
}

// List handles GET /expenses requests.
func (c *ExpenseController) List(ctx *gin.Context) {
	userID, ok := c.requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), expense.ListExpensesInput{
		UserID:    userID,
		StartDate: ctx.Query("startDate"),
		EndDate:   ctx.Query("endDate"),
		Category:  ctx.Query("category"),
	})
	if err != nil {
		c.handleExpenseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseListResponse(output.Expenses))
}

// Stats handles GET /expenses/stats requests.
func (c *ExpenseController) Stats(ctx *gin.Context) {
	userID, ok := c.requireUser(ctx)
	if !ok {
		return
	}

	snapshot, err := c.statsUseCase.Execute(ctx.Request.Context(), expense.GetStatisticsInput{
		UserID:    userID,
		StartDate: ctx.Query("startDate"),
		EndDate:   ctx.Query("endDate"),
	})
	if err != nil {
		c.handleExpenseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToStatisticsResponse(snapshot))
}

// Categories handles GET /expenses/categories requests.
func (c *ExpenseController) Categories(ctx *gin.Context) {
	userID, ok := c.requireUser(ctx)
	if !ok {
		return
	}

	categories, err := c.categoriesUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		c.handleExpenseError(ctx, err)
		return
	}
	if categories == nil {
		categories = []string{}
	}

	ctx.JSON(http.StatusOK, dto.CategoriesResponse{Categories: categories})
}

// Get handles GET /expenses/:id requests.
func (c *ExpenseController) Get(ctx *gin.Context) {
	userID, ok := c.requireUser(ctx)
	if !ok {
		return
	}
	expenseID, ok := c.expenseID(ctx)
	if !ok {
		return
	}

	result, err := c.getUseCase.Execute(ctx.Request.Context(), expense.GetExpenseInput{
		ExpenseID: expenseID,
		UserID:    userID,
	})
	if err != nil {
		c.handleExpenseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseResponse(result))
}

// Create handles POST /expenses requests.
func (c *ExpenseController) Create(ctx *gin.Context) {
	userID, ok := c.requireUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.invalidBody(ctx)
		return
	}

	result, err := c.createUseCase.Execute(ctx.Request.Context(), expense.CreateExpenseInput{
		UserID:      userID,
		Amount:      dto.ScalarText(req.Amount),
		Description: dto.StringValue(req.Description),
		Category:    dto.StringValue(req.Category),
		Date:        dto.ScalarText(req.Date),
	})
	if err != nil {
		c.handleExpenseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToExpenseResponse(result))
}

// Update handles PUT /expenses/:id requests.
func (c *ExpenseController) Update(ctx *gin.Context) {
	userID, ok := c.requireUser(ctx)
	if !ok {
		return
	}
	expenseID, ok := c.expenseID(ctx)
	if !ok {
		return
	}

	// An empty body is an update without fields, reported after the ownership check.
	var req dto.UpdateExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.invalidBody(ctx)
		return
	}

	input := expense.UpdateExpenseInput{
		ExpenseID:   expenseID,
		UserID:      userID,
		Amount:      optional(req.Amount, dto.ScalarText),
		Description: optional(req.Description, dto.StringValue),
		Category:    optional(req.Category, dto.StringValue),
		Date:        optional(req.Date, dto.ScalarText),
	}

	result, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleExpenseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseResponse(result))
}

// Delete handles DELETE /expenses/:id requests.
func (c *ExpenseController) Delete(ctx *gin.Context) {
	userID, ok := c.requireUser(ctx)
	if !ok {
		return
	}
	expenseID, ok := c.expenseID(ctx)
	if !ok {
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), expense.DeleteExpenseInput{
		ExpenseID: expenseID,
		UserID:    userID,
	})
	if err != nil {
		c.handleExpenseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{
		Message: "Expense deleted successfully",
	})
}

func (c *ExpenseController) requireUser(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "Access token required",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return uuid.Nil, false
	}
	return userID, true
}

// expenseID parses the :id path parameter. An id that is not a UUID cannot
// name any expense, so it is reported as not found.
func (c *ExpenseController) expenseID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "Expense not found",
			Code:  string(domainerror.ErrCodeExpenseNotFound),
		})
		return uuid.Nil, false
	}
	return id, true
}

// optional converts a field that appeared in the body; absent fields stay nil.
func optional(raw json.RawMessage, convert func(json.RawMessage) string) *string {
	if !dto.Present(raw) {
		return nil
	}
	value := convert(raw)
	return &value
}

func (c *ExpenseController) invalidBody(ctx *gin.Context) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: "Invalid request body",
		Code:  string(domainerror.ErrCodeInvalidExpense),
	})
}

// handleExpenseError handles expense errors and returns appropriate HTTP responses.
func (c *ExpenseController) handleExpenseError(ctx *gin.Context, err error) {
	var expErr *domainerror.ExpenseError
	if errors.As(err, &expErr) {
		ctx.JSON(c.getStatusCodeForExpenseError(expErr.Code), dto.ErrorResponse{
			Error:  expErr.Message,
			Code:   string(expErr.Code),
			Errors: dto.ToFieldErrorResponses(expErr.Fields),
		})
		return
	}

	slog.ErrorContext(ctx.Request.Context(), "Unhandled expense error", "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "Internal server error",
		Code:  string(domainerror.ErrCodeExpenseInternal),
	})
}

// getStatusCodeForExpenseError maps expense error codes to HTTP status codes.
func (c *ExpenseController) getStatusCodeForExpenseError(code domainerror.ExpenseErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidExpense,
		domainerror.ErrCodeNoFieldsToUpdate,
		domainerror.ErrCodeInvalidDateFilter:
		return http.StatusBadRequest
	case domainerror.ErrCodeExpenseNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
