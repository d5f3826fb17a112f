package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/arjunms/homeledger/homeledger-backend/internal/domain"
	"github.com/arjunms/homeledger/homeledger-backend/internal/middleware"
	"github.com/arjunms/homeledger/homeledger-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// DefaultLedgerLimit is the number of entries returned when no limit is given
const DefaultLedgerLimit = 10

// LedgerHandler handles ledger HTTP requests
type LedgerHandler struct {
	ledgerService *service.LedgerService
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(ledgerService *service.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// LedgerEntryResponse represents one ledger entry in API responses
type LedgerEntryResponse struct {
	ID       int32   `json:"id"`
	Type     string  `json:"type"`
	Amount   string  `json:"amount"`
	Date     string  `json:"date"`
	Category string  `json:"category,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

// GetLedger handles GET /api/v1/ledger?type=&from=&to=&limit=
func (h *LedgerHandler) GetLedger(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	filter := domain.FilterAll
	if t := c.QueryParam("type"); t != "" {
		filter = domain.LedgerFilter(t)
	}

	var dateRange domain.DateRange
	if from := c.QueryParam("from"); from != "" {
		d, err := time.Parse("2006-01-02", from)
		if err != nil {
			return NewValidationError(c, "Invalid date range", []ValidationError{
				{Field: "from", Message: "Must be in YYYY-MM-DD format"},
			})
		}
		dateRange.From = &d
	}
	if to := c.QueryParam("to"); to != "" {
		d, err := time.Parse("2006-01-02", to)
		if err != nil {
			return NewValidationError(c, "Invalid date range", []ValidationError{
				{Field: "to", Message: "Must be in YYYY-MM-DD format"},
			})
		}
		dateRange.To = &d
	}

	// Default mirrors the recent-transactions view; limit=0 asks for everything
	limit := DefaultLedgerLimit
	if l := c.QueryParam("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 0 {
			return NewValidationError(c, "Invalid limit", []ValidationError{
				{Field: "limit", Message: "Must be a non-negative integer"},
			})
		}
		limit = n
	}

	entries, err := h.ledgerService.GetLedger(userID, filter, dateRange, limit)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return NewValidationError(c, "Invalid filter", []ValidationError{
				{Field: "type", Message: "Must be one of: all, income, home, fuel, emi"},
			})
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get ledger")
		return NewInternalError(c, "Failed to get ledger")
	}

	response := make([]LedgerEntryResponse, len(entries))
	for i, entry := range entries {
		response[i] = LedgerEntryResponse{
			ID:       entry.ID,
			Type:     string(entry.Type),
			Amount:   entry.Amount.StringFixed(2),
			Date:     entry.Date.Format("2006-01-02"),
			Category: entry.Category,
			Notes:    entry.Notes,
		}
	}
	return c.JSON(http.StatusOK, response)
}
