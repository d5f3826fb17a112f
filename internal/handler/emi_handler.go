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

// EmiHandler handles EMI loan HTTP requests
type EmiHandler struct {
	emiService *service.EmiService
}

// NewEmiHandler creates a new EmiHandler
func NewEmiHandler(emiService *service.EmiService) *EmiHandler {
	return &EmiHandler{emiService: emiService}
}

// CreateEmiRequest represents the create EMI request body
type CreateEmiRequest struct {
	Name          string `json:"name"`
	VehicleType   string `json:"vehicleType"`
	MonthlyAmount string `json:"monthlyAmount"`
	TotalMonths   int32  `json:"totalMonths"`
	StartDate     string `json:"startDate"` // YYYY-MM-DD
}

// ToggleMonthRequest represents the toggle-month request body
type ToggleMonthRequest struct {
	Month string `json:"month"` // YYYY-MM
	Paid  bool   `json:"paid"`
}

// EmiResponse represents an EMI in API responses
type EmiResponse struct {
	ID            int32    `json:"id"`
	Name          string   `json:"name"`
	VehicleType   string   `json:"vehicleType"`
	MonthlyAmount string   `json:"monthlyAmount"`
	TotalMonths   int32    `json:"totalMonths"`
	StartDate     string   `json:"startDate"`
	PaidMonths    []string `json:"paidMonths"`
	CreatedAt     string   `json:"createdAt"`
	UpdatedAt     string   `json:"updatedAt"`
}

// EmiProgressResponse represents EMI progress in API responses
type EmiProgressResponse struct {
	PaidMonthsCount    int32   `json:"paidMonthsCount"`
	RemainingMonths    int32   `json:"remainingMonths"`
	TotalPaid          string  `json:"totalPaid"`
	RemainingAmount    string  `json:"remainingAmount"`
	TotalAmount        string  `json:"totalAmount"`
	ProgressPercentage float64 `json:"progressPercentage"`
}

func toEmiResponse(emi *domain.Emi) EmiResponse {
	return EmiResponse{
		ID:            emi.ID,
		Name:          emi.Name,
		VehicleType:   emi.VehicleType,
		MonthlyAmount: emi.MonthlyAmount.StringFixed(2),
		TotalMonths:   emi.TotalMonths,
		StartDate:     emi.StartDate.Format("2006-01-02"),
		PaidMonths:    emi.PaidMonths,
		CreatedAt:     emi.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:     emi.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func toEmiProgressResponse(progress *domain.EmiProgress) EmiProgressResponse {
	return EmiProgressResponse{
		PaidMonthsCount:    progress.PaidMonthsCount,
		RemainingMonths:    progress.RemainingMonths,
		TotalPaid:          progress.TotalPaid.StringFixed(2),
		RemainingAmount:    progress.RemainingAmount.StringFixed(2),
		TotalAmount:        progress.TotalAmount.StringFixed(2),
		ProgressPercentage: progress.ProgressPercentage,
	}
}

// CreateEmi handles POST /api/v1/emis
func (h *EmiHandler) CreateEmi(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CreateEmiRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.MonthlyAmount)
	if err != nil {
		return NewValidationError(c, "Invalid monthly amount", []ValidationError{
			{Field: "monthlyAmount", Message: "Must be a valid decimal number"},
		})
	}

	emi, err := h.emiService.CreateEmi(userID, service.CreateEmiInput{
		Name:          req.Name,
		VehicleType:   req.VehicleType,
		MonthlyAmount: amount,
		TotalMonths:   req.TotalMonths,
		StartDate:     req.StartDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmiNameEmpty):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name is required"},
			})
		case errors.Is(err, domain.ErrEmiNameTooLong):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name must be 200 characters or less"},
			})
		case errors.Is(err, domain.ErrEmiVehicleTypeEmpty):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "vehicleType", Message: "Vehicle type is required"},
			})
		case errors.Is(err, domain.ErrEmiAmountInvalid):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "monthlyAmount", Message: "Amount must be positive"},
			})
		case errors.Is(err, domain.ErrEmiTotalMonthsInvalid):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "totalMonths", Message: "Total months must be at least 1"},
			})
		case errors.Is(err, domain.ErrDateRequired):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "startDate", Message: "Must be in YYYY-MM-DD format"},
			})
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to create EMI")
		return NewInternalError(c, "Failed to create EMI")
	}

	log.Info().Str("user_id", userID.String()).Int32("emi_id", emi.ID).Str("name", emi.Name).Msg("EMI created")

	return c.JSON(http.StatusCreated, toEmiResponse(emi))
}

// GetEmis handles GET /api/v1/emis
func (h *EmiHandler) GetEmis(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	emis, err := h.emiService.GetEmis(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get EMIs")
		return NewInternalError(c, "Failed to get EMIs")
	}

	response := make([]EmiResponse, len(emis))
	for i, emi := range emis {
		response[i] = toEmiResponse(emi)
	}
	return c.JSON(http.StatusOK, response)
}

// GetEmi handles GET /api/v1/emis/:id
func (h *EmiHandler) GetEmi(c echo.Context) error {
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

	emi, err := h.emiService.GetEmiByID(userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrEmiNotFound) {
			return NewNotFoundError(c, "EMI not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int32("emi_id", id).Msg("Failed to get EMI")
		return NewInternalError(c, "Failed to get EMI")
	}

	return c.JSON(http.StatusOK, toEmiResponse(emi))
}

// GetProgress handles GET /api/v1/emis/:id/progress
func (h *EmiHandler) GetProgress(c echo.Context) error {
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

	progress, err := h.emiService.GetProgress(userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrEmiNotFound) {
			return NewNotFoundError(c, "EMI not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int32("emi_id", id).Msg("Failed to get EMI progress")
		return NewInternalError(c, "Failed to get EMI progress")
	}

	return c.JSON(http.StatusOK, toEmiProgressResponse(progress))
}

// ToggleMonth handles PATCH /api/v1/emis/:id/toggle-month
func (h *EmiHandler) ToggleMonth(c echo.Context) error {
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

	var req ToggleMonthRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	emi, err := h.emiService.TogglePaidMonth(userID, id, req.Month, req.Paid)
	if err != nil {
		if errors.Is(err, domain.ErrMonthTokenFormat) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "month", Message: "Must be in YYYY-MM format"},
			})
		}
		if errors.Is(err, domain.ErrEmiNotFound) {
			return NewNotFoundError(c, "EMI not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int32("emi_id", id).Msg("Failed to toggle paid month")
		return NewInternalError(c, "Failed to toggle paid month")
	}

	return c.JSON(http.StatusOK, toEmiResponse(emi))
}

// DeleteEmi handles DELETE /api/v1/emis/:id
func (h *EmiHandler) DeleteEmi(c echo.Context) error {
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

	if err := h.emiService.DeleteEmi(userID, id); err != nil {
		if errors.Is(err, domain.ErrEmiNotFound) {
			return NewNotFoundError(c, "EMI not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int32("emi_id", id).Msg("Failed to delete EMI")
		return NewInternalError(c, "Failed to delete EMI")
	}

	return c.NoContent(http.StatusNoContent)
}
