package handler

import (
	"net/http"

	"github.com/arjunms/homeledger/homeledger-backend/internal/domain"
	"github.com/arjunms/homeledger/homeledger-backend/internal/middleware"
	"github.com/arjunms/homeledger/homeledger-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// DashboardHandler handles dashboard HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// MonthlyPointResponse represents one month of the trend series
type MonthlyPointResponse struct {
	Month   string `json:"month"`
	Label   string `json:"label"`
	Income  string `json:"income"`
	Expense string `json:"expense"`
}

// CategorySliceResponse represents one slice of the expense breakdown
type CategorySliceResponse struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// DashboardSummaryResponse represents the dashboard summary
type DashboardSummaryResponse struct {
	TotalIncome       string                  `json:"totalIncome"`
	TotalHomeExpenses string                  `json:"totalHomeExpenses"`
	TotalFuelExpenses string                  `json:"totalFuelExpenses"`
	TotalEmiPaid      string                  `json:"totalEmiPaid"`
	TotalExpenses     string                  `json:"totalExpenses"`
	NetBalance        string                  `json:"netBalance"`
	MonthlySeries     []MonthlyPointResponse  `json:"monthlySeries"`
	Breakdown         []CategorySliceResponse `json:"breakdown"`
}

func toDashboardSummaryResponse(summary *domain.DashboardSummary) DashboardSummaryResponse {
	series := make([]MonthlyPointResponse, len(summary.MonthlySeries))
	for i, point := range summary.MonthlySeries {
		series[i] = MonthlyPointResponse{
			Month:   point.Month,
			Label:   point.Label,
			Income:  point.Income.StringFixed(2),
			Expense: point.Expense.StringFixed(2),
		}
	}

	breakdown := make([]CategorySliceResponse, len(summary.Breakdown))
	for i, slice := range summary.Breakdown {
		breakdown[i] = CategorySliceResponse{
			Name:  slice.Name,
			Value: slice.Value.StringFixed(2),
		}
	}

	return DashboardSummaryResponse{
		TotalIncome:       summary.TotalIncome.StringFixed(2),
		TotalHomeExpenses: summary.TotalHomeExpenses.StringFixed(2),
		TotalFuelExpenses: summary.TotalFuelExpenses.StringFixed(2),
		TotalEmiPaid:      summary.TotalEmiPaid.StringFixed(2),
		TotalExpenses:     summary.TotalExpenses.StringFixed(2),
		NetBalance:        summary.NetBalance.StringFixed(2),
		MonthlySeries:     series,
		Breakdown:         breakdown,
	}
}

// GetSummary handles GET /api/v1/dashboard/summary
func (h *DashboardHandler) GetSummary(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	summary, err := h.dashboardService.GetSummary(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get dashboard summary")
		return NewInternalError(c, "Failed to get dashboard summary")
	}

	return c.JSON(http.StatusOK, toDashboardSummaryResponse(summary))
}
