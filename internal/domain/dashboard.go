package domain

import "github.com/shopspring/decimal"

// DashboardSummary contains the aggregated totals shown on the dashboard.
// TotalEmiPaid is the sum of EMI-categorized home expense amounts; it is an
// independent figure from any loan's own paid total and the two are not
// reconciled.
type DashboardSummary struct {
	TotalIncome       decimal.Decimal `json:"totalIncome"`
	TotalHomeExpenses decimal.Decimal `json:"totalHomeExpenses"`
	TotalFuelExpenses decimal.Decimal `json:"totalFuelExpenses"`
	TotalEmiPaid      decimal.Decimal `json:"totalEmiPaid"`
	TotalExpenses     decimal.Decimal `json:"totalExpenses"`
	NetBalance        decimal.Decimal `json:"netBalance"`

	MonthlySeries []MonthlyPoint  `json:"monthlySeries"`
	Breakdown     []CategorySlice `json:"breakdown"`
}

// MonthlyPoint is one time bucket of the income/expense trend
type MonthlyPoint struct {
	Month   string          `json:"month"` // YYYY-MM token
	Label   string          `json:"label"` // short month name for display
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// CategorySlice is one bucket of the expense breakdown
type CategorySlice struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// MaxTrendMonths is the number of buckets kept in the monthly series
const MaxTrendMonths = 6

// ZeroSummary returns the documented default aggregate for partial input
func ZeroSummary() DashboardSummary {
	return DashboardSummary{
		TotalIncome:       decimal.Zero,
		TotalHomeExpenses: decimal.Zero,
		TotalFuelExpenses: decimal.Zero,
		TotalEmiPaid:      decimal.Zero,
		TotalExpenses:     decimal.Zero,
		NetBalance:        decimal.Zero,
		MonthlySeries:     []MonthlyPoint{},
		Breakdown:         []CategorySlice{},
	}
}
