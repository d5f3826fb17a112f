package handler

import (
	"errors"
	"net/http"

	"github.com/arjunms/homeledger/homeledger-backend/internal/domain"
	"github.com/arjunms/homeledger/homeledger-backend/internal/middleware"
	"github.com/arjunms/homeledger/homeledger-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ExpenseHandler handles home and fuel expense HTTP requests
type ExpenseHandler struct {
	expenseService *service.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// CreateHomeExpenseRequest represents the create home expense request body
type CreateHomeExpenseRequest struct {
	Amount      string  `json:"amount"`
	Date        string  `json:"date"` // YYYY-MM-DD
	Category    string  `json:"category"`
	Notes       *string `json:"notes,omitempty"`
	LinkedEmiID *int32  `json:"linkedEmiId,omitempty"`
}

// CreateFuelExpenseRequest represents the create fuel expense request body
type CreateFuelExpenseRequest struct {
	Amount string  `json:"amount"`
	Date   string  `json:"date"` // YYYY-MM-DD
	Notes  *string `json:"notes,omitempty"`
}

// HomeExpenseResponse represents a home expense in API responses
type HomeExpenseResponse struct {
	ID          int32   `json:"id"`
	Amount      string  `json:"amount"`
	Date        string  `json:"date"`
	Category    string  `json:"category"`
	Notes       *string `json:"notes,omitempty"`
	LinkedEmiID *int32  `json:"linkedEmiId,omitempty"`
	HasReceipt  bool    `json:"hasReceipt"`
	CreatedAt   string  `json:"createdAt"`
}

// FuelExpenseResponse represents a fuel expense in API responses
type FuelExpenseResponse struct {
	ID         int32   `json:"id"`
	Amount     string  `json:"amount"`
	Date       string  `json:"date"`
	Notes      *string `json:"notes,omitempty"`
	HasReceipt bool    `json:"hasReceipt"`
	CreatedAt  string  `json:"createdAt"`
}

func toHomeExpenseResponse(expense *domain.HomeExpense) HomeExpenseResponse {
	return HomeExpenseResponse{
		ID:          expense.ID,
		Amount:      expense.Amount.StringFixed(2),
		Date:        expense.Date.Format("2006-01-02"),
		Category:    expense.Category,
		Notes:       expense.Notes,
		LinkedEmiID: expense.LinkedEmiID,
		HasReceipt:  expense.ReceiptPath != nil,
		CreatedAt:   expense.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func toFuelExpenseResponse(expense *domain.FuelExpense) FuelExpenseResponse {
	return FuelExpenseResponse{
		ID:         expense.ID,
		Amount:     expense.Amount.StringFixed(2),
		Date:       expense.Date.Format("2006-01-02"),
		Notes:      expense.Notes,
		HasReceipt: expense.ReceiptPath != nil,
		CreatedAt:  expense.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// expenseValidationResponse maps shared expense validation errors, or
// returns false when the error is not a validation failure
func expenseValidationResponse(c echo.Context, err error) (error, bool) {
	switch {
	case errors.Is(err, domain.ErrAmountInvalid):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "amount", Message: "Amount must be positive"},
		}), true
	case errors.Is(err, domain.ErrDateRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "date", Message: "Must be in YYYY-MM-DD format"},
		}), true
	case errors.Is(err, domain.ErrExpenseCategoryInvalid):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "category", Message: "Unknown home expense category"},
		}), true
	case errors.Is(err, domain.ErrNotesTooLong):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "notes", Message: "Notes must be 500 characters or less"},
		}), true
	}
	return nil, false
}

// CreateHomeExpense handles POST /api/v1/expenses/home
func (h *ExpenseHandler) CreateHomeExpense(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CreateHomeExpenseRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	expense, err := h.expenseService.CreateHomeExpense(userID, service.CreateHomeExpenseInput{
		Amount:      amount,
		Date:        req.Date,
		Category:    req.Category,
		Notes:       req.Notes,
		LinkedEmiID: req.LinkedEmiID,
	})
	if err != nil {
		if resp, ok := expenseValidationResponse(c, err); ok {
			return resp
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to create home expense")
		return NewInternalError(c, "Failed to create home expense")
	}

	return c.JSON(http.StatusCreated, toHomeExpenseResponse(expense))
}

// GetHomeExpenses handles GET /api/v1/expenses/home
func (h *ExpenseHandler) GetHomeExpenses(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	expenses, err := h.expenseService.GetHomeExpenses(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get home expenses")
		return NewInternalError(c, "Failed to get home expenses")
	}

	response := make([]HomeExpenseResponse, len(expenses))
	for i, expense := range expenses {
		response[i] = toHomeExpenseResponse(expense)
	}
	return c.JSON(http.StatusOK, response)
}

// DeleteHomeExpense handles DELETE /api/v1/expenses/home/:id
func (h *ExpenseHandler) DeleteHomeExpense(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid ID", []ValidationError{
			{Field: "id", Message: "Must be a valid integer"},
		})
	}

	if err := h.expenseService.DeleteHomeExpense(userID, id); err != nil {
		if errors.Is(err, domain.ErrExpenseNotFound) {
			return NewNotFoundError(c, "Expense not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int32("expense_id", id).Msg("Failed to delete home expense")
		return NewInternalError(c, "Failed to delete home expense")
	}

	return c.NoContent(http.StatusNoContent)
}

// CreateFuelExpense handles POST /api/v1/expenses/fuel
func (h *ExpenseHandler) CreateFuelExpense(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CreateFuelExpenseRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	expense, err := h.expenseService.CreateFuelExpense(userID, service.CreateFuelExpenseInput{
		Amount: amount,
		Date:   req.Date,
		Notes:  req.Notes,
	})
	if err != nil {
		if resp, ok := expenseValidationResponse(c, err); ok {
			return resp
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to create fuel expense")
		return NewInternalError(c, "Failed to create fuel expense")
	}

	return c.JSON(http.StatusCreated, toFuelExpenseResponse(expense))
}

// GetFuelExpenses handles GET /api/v1/expenses/fuel
func (h *ExpenseHandler) GetFuelExpenses(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	expenses, err := h.expenseService.GetFuelExpenses(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get fuel expenses")
		return NewInternalError(c, "Failed to get fuel expenses")
	}

	response := make([]FuelExpenseResponse, len(expenses))
	for i, expense := range expenses {
		response[i] = toFuelExpenseResponse(expense)
	}
	return c.JSON(http.StatusOK, response)
}

// DeleteFuelExpense handles DELETE /api/v1/expenses/fuel/:id
func (h *ExpenseHandler) DeleteFuelExpense(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid ID", []ValidationError{
			{Field: "id", Message: "Must be a valid integer"},
		})
	}

	if err := h.expenseService.DeleteFuelExpense(userID, id); err != nil {
		if errors.Is(err, domain.ErrExpenseNotFound) {
			return NewNotFoundError(c, "Expense not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int32("expense_id", id).Msg("Failed to delete fuel expense")
		return NewInternalError(c, "Failed to delete fuel expense")
	}

	return c.NoContent(http.StatusNoContent)
}
