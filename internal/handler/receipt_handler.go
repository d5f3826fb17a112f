package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/arjunms/homeledger/homeledger-backend/internal/domain"
	"github.com/arjunms/homeledger/homeledger-backend/internal/middleware"
	"github.com/arjunms/homeledger/homeledger-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ReceiptHandler handles expense receipt HTTP requests
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

// NewReceiptHandler creates a new ReceiptHandler
func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// ReceiptResponse represents presigned receipt URLs
type ReceiptResponse struct {
	ThumbnailURL string `json:"thumbnailUrl"`
	DisplayURL   string `json:"displayUrl"`
	OriginalURL  string `json:"originalUrl"`
}

func toReceiptResponse(metadata *service.ReceiptMetadata) ReceiptResponse {
	return ReceiptResponse{
		ThumbnailURL: metadata.ThumbnailURL,
		DisplayURL:   metadata.DisplayURL,
		OriginalURL:  metadata.OriginalURL,
	}
}

// parseReceiptTarget validates the :kind and :id params. The bool reports
// success; on failure the validation response has already been written and
// the returned error is its write result.
func parseReceiptTarget(c echo.Context) (service.ExpenseKind, int32, error, bool) {
	kind := service.ExpenseKind(c.Param("kind"))
	if !kind.IsValid() {
		return "", 0, NewValidationError(c, "Invalid expense kind", []ValidationError{
			{Field: "kind", Message: "Must be one of: home, fuel"},
		}), false
	}
	id, err := parseIDParam(c)
	if err != nil {
		return "", 0, NewValidationError(c, "Invalid ID", []ValidationError{
			{Field: "id", Message: "Must be a valid integer"},
		}), false
	}
	return kind, id, nil, true
}

// UploadReceipt handles POST /api/v1/expenses/:kind/:id/receipt
func (h *ReceiptHandler) UploadReceipt(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	// If storage isn't configured, don't attempt to process/upload (would panic on nil storage).
	if h.receiptService == nil || !h.receiptService.IsEnabled() {
		return NewServiceUnavailableError(c, "Receipt uploads are disabled (storage not configured)")
	}

	kind, id, resp, ok := parseReceiptTarget(c)
	if !ok {
		return resp
	}

	file, err := c.FormFile("file")
	if err != nil {
		return NewValidationError(c, "No file provided", []ValidationError{
			{Field: "file", Message: "File is required"},
		})
	}

	src, err := file.Open()
	if err != nil {
		log.Error().Err(err).Msg("Failed to open uploaded receipt")
		return NewInternalError(c, "Failed to process file")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read uploaded receipt")
		return NewInternalError(c, "Failed to read file")
	}

	metadata, err := h.receiptService.UploadReceipt(c.Request().Context(), userID, kind, id, data, file.Filename)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReceiptTooLarge):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "file", Message: "File too large. Maximum size is 5MB"},
			})
		case errors.Is(err, service.ErrInvalidReceiptFormat):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "file", Message: "Invalid format. Supported: JPEG, PNG"},
			})
		case errors.Is(err, service.ErrReceiptTooSmall):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "file", Message: "Image too small. Minimum 50x50 pixels"},
			})
		case errors.Is(err, service.ErrInvalidReceiptData):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "file", Message: "Invalid image data"},
			})
		case errors.Is(err, domain.ErrExpenseNotFound):
			return NewNotFoundError(c, "Expense not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int32("expense_id", id).Msg("Failed to upload receipt")
		return NewInternalError(c, "Failed to upload receipt")
	}

	log.Info().Str("user_id", userID.String()).Str("kind", string(kind)).Int32("expense_id", id).Msg("Receipt uploaded")

	return c.JSON(http.StatusCreated, toReceiptResponse(metadata))
}

// GetReceipt handles GET /api/v1/expenses/:kind/:id/receipt
func (h *ReceiptHandler) GetReceipt(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	if h.receiptService == nil || !h.receiptService.IsEnabled() {
		return NewServiceUnavailableError(c, "Receipt access is disabled (storage not configured)")
	}

	kind, id, resp, ok := parseReceiptTarget(c)
	if !ok {
		return resp
	}

	metadata, err := h.receiptService.GetReceiptURLs(c.Request().Context(), userID, kind, id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoReceipt):
			return NewNotFoundError(c, "No receipt attached")
		case errors.Is(err, domain.ErrExpenseNotFound):
			return NewNotFoundError(c, "Expense not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int32("expense_id", id).Msg("Failed to get receipt URLs")
		return NewInternalError(c, "Failed to get receipt")
	}

	return c.JSON(http.StatusOK, toReceiptResponse(metadata))
}

// DeleteReceipt handles DELETE /api/v1/expenses/:kind/:id/receipt
func (h *ReceiptHandler) DeleteReceipt(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	if h.receiptService == nil || !h.receiptService.IsEnabled() {
		return NewServiceUnavailableError(c, "Receipt deletion is disabled (storage not configured)")
	}

	kind, id, resp, ok := parseReceiptTarget(c)
	if !ok {
		return resp
	}

	if err := h.receiptService.DeleteReceipt(c.Request().Context(), userID, kind, id); err != nil {
		if errors.Is(err, domain.ErrExpenseNotFound) {
			return NewNotFoundError(c, "Expense not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int32("expense_id", id).Msg("Failed to delete receipt")
		return NewInternalError(c, "Failed to delete receipt")
	}

	return c.NoContent(http.StatusNoContent)
}
