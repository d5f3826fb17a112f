package handler

import (
	"net/http"

	"github.com/arjunms/homeledger/homeledger-backend/internal/middleware"
	"github.com/arjunms/homeledger/homeledger-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ChartHandler serves the rendered monthly trend chart
type ChartHandler struct {
	chartService *service.ChartService
}

// NewChartHandler creates a new ChartHandler
func NewChartHandler(chartService *service.ChartService) *ChartHandler {
	return &ChartHandler{chartService: chartService}
}

// GetTrendChart handles GET /api/v1/dashboard/chart
func (h *ChartHandler) GetTrendChart(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	data, err := h.chartService.RenderTrend(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to render trend chart")
		return NewInternalError(c, "Failed to render chart")
	}
	if data == nil {
		return c.NoContent(http.StatusNoContent)
	}

	return c.Blob(http.StatusOK, "image/png", data)
}
