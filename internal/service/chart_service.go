package service

import (
	"bytes"

	"github.com/arjunms/homeledger/homeledger-backend/internal/domain"
	"github.com/arjunms/homeledger/homeledger-backend/internal/util"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wcharczuk/go-chart/v2"
)

// ChartService renders the monthly income/expense trend as a PNG image
type ChartService struct {
	dashboardService *DashboardService
}

// NewChartService creates a new ChartService
func NewChartService(dashboardService *DashboardService) *ChartService {
	return &ChartService{dashboardService: dashboardService}
}

// RenderTrend renders the user's monthly trend chart. Returns nil bytes
// when there is no data to plot.
func (s *ChartService) RenderTrend(userID uuid.UUID) ([]byte, error) {
	summary, err := s.dashboardService.GetSummary(userID)
	if err != nil {
		return nil, err
	}
	return RenderTrendChart(summary.MonthlySeries)
}

// RenderTrendChart renders a monthly series as a PNG. Pure over its input;
// returns nil when there are fewer than two buckets, since a line needs
// two points.
func RenderTrendChart(series []domain.MonthlyPoint) ([]byte, error) {
	if len(series) < 2 {
		return nil, nil
	}

	xValues := make([]float64, len(series))
	incomeValues := make([]float64, len(series))
	expenseValues := make([]float64, len(series))
	ticks := make([]chart.Tick, len(series))

	for i, point := range series {
		xValues[i] = float64(i)
		incomeValues[i], _ = point.Income.Float64()
		expenseValues[i], _ = point.Expense.Float64()
		ticks[i] = chart.Tick{Value: float64(i), Label: point.Label}
	}

	graph := chart.Chart{
		Width:  800,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    30,
				Left:   30,
				Right:  30,
				Bottom: 30,
			},
			FillColor: chart.ColorWhite,
		},
		XAxis: chart.XAxis{
			Ticks: ticks,
			Style: chart.Style{
				FontSize:  11,
				FontColor: chart.ColorBlack,
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				f, ok := v.(float64)
				if !ok {
					return ""
				}
				return util.FormatINR(decimal.NewFromFloat(f))
			},
			Style: chart.Style{
				FontSize:  11,
				FontColor: chart.ColorBlack,
			},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Income",
				XValues: xValues,
				YValues: incomeValues,
				Style: chart.Style{
					StrokeColor: chart.ColorGreen,
					StrokeWidth: 2,
				},
			},
			chart.ContinuousSeries{
				Name:    "Expense",
				XValues: xValues,
				YValues: expenseValues,
				Style: chart.Style{
					StrokeColor: chart.ColorRed,
					StrokeWidth: 2,
				},
			},
		},
	}

	graph.Elements = []chart.Renderable{
		chart.Legend(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
