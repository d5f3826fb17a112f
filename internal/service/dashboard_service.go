package service

import (
	"sort"

	"github.com/arjunms/homeledger/homeledger-backend/internal/domain"
	"github.com/arjunms/homeledger/homeledger-backend/internal/util"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DashboardService produces the aggregated dashboard view over the four
// record collections
type DashboardService struct {
	incomeRepo      domain.IncomeRepository
	homeExpenseRepo domain.HomeExpenseRepository
	fuelExpenseRepo domain.FuelExpenseRepository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	incomeRepo domain.IncomeRepository,
	homeExpenseRepo domain.HomeExpenseRepository,
	fuelExpenseRepo domain.FuelExpenseRepository,
) *DashboardService {
	return &DashboardService{
		incomeRepo:      incomeRepo,
		homeExpenseRepo: homeExpenseRepo,
		fuelExpenseRepo: fuelExpenseRepo,
	}
}

// GetSummary fetches fresh snapshots of each collection and aggregates them
func (s *DashboardService) GetSummary(userID uuid.UUID) (*domain.DashboardSummary, error) {
	incomes, err := s.incomeRepo.GetAllByUser(userID)
	if err != nil {
		return nil, err
	}
	homeExpenses, err := s.homeExpenseRepo.GetAllByUser(userID)
	if err != nil {
		return nil, err
	}
	fuelExpenses, err := s.fuelExpenseRepo.GetAllByUser(userID)
	if err != nil {
		return nil, err
	}

	// A fetched snapshot is resolved even when the collection is empty;
	// only a snapshot that was never fetched counts as unavailable.
	if incomes == nil {
		incomes = []*domain.Income{}
	}
	if homeExpenses == nil {
		homeExpenses = []*domain.HomeExpense{}
	}
	if fuelExpenses == nil {
		fuelExpenses = []*domain.FuelExpense{}
	}

	summary := Aggregate(incomes, homeExpenses, fuelExpenses)
	return &summary, nil
}

// Aggregate merges the record snapshots into dashboard totals, the monthly
// trend series and the category breakdown. It is a pure transform: no store
// access, no clock access. Nil input slices yield the zero summary.
//
// Home expenses with the EMI category are counted as EMI paid, not as home
// expenses, so installment payments are never double counted. The EMI-paid
// figure here is independent of any loan's own paid-month total; the two
// are not reconciled.
func Aggregate(incomes []*domain.Income, homeExpenses []*domain.HomeExpense, fuelExpenses []*domain.FuelExpense) domain.DashboardSummary {
	if incomes == nil || homeExpenses == nil || fuelExpenses == nil {
		return domain.ZeroSummary()
	}

	totalIncome := decimal.Zero
	for _, in := range incomes {
		totalIncome = totalIncome.Add(in.Amount)
	}

	totalHome := decimal.Zero
	totalEmiPaid := decimal.Zero
	for _, exp := range homeExpenses {
		if exp.IsEmiPayment() {
			totalEmiPaid = totalEmiPaid.Add(exp.Amount)
		} else {
			totalHome = totalHome.Add(exp.Amount)
		}
	}

	totalFuel := decimal.Zero
	for _, exp := range fuelExpenses {
		totalFuel = totalFuel.Add(exp.Amount)
	}

	totalExpenses := totalHome.Add(totalFuel).Add(totalEmiPaid)

	return domain.DashboardSummary{
		TotalIncome:       totalIncome,
		TotalHomeExpenses: totalHome,
		TotalFuelExpenses: totalFuel,
		TotalEmiPaid:      totalEmiPaid,
		TotalExpenses:     totalExpenses,
		NetBalance:        totalIncome.Sub(totalExpenses),
		MonthlySeries:     monthlySeries(incomes, homeExpenses, fuelExpenses),
		Breakdown:         categoryBreakdown(homeExpenses, fuelExpenses),
	}
}

// monthlySeries buckets all records by calendar month and keeps the most
// recent MaxTrendMonths buckets in chronological order
func monthlySeries(incomes []*domain.Income, homeExpenses []*domain.HomeExpense, fuelExpenses []*domain.FuelExpense) []domain.MonthlyPoint {
	buckets := make(map[string]*domain.MonthlyPoint)

	get := func(token string) *domain.MonthlyPoint {
		if p, ok := buckets[token]; ok {
			return p
		}
		p := &domain.MonthlyPoint{
			Month:   token,
			Label:   util.ShortMonthName(token),
			Income:  decimal.Zero,
			Expense: decimal.Zero,
		}
		buckets[token] = p
		return p
	}

	for _, in := range incomes {
		p := get(util.MonthToken(in.Date))
		p.Income = p.Income.Add(in.Amount)
	}
	for _, exp := range homeExpenses {
		p := get(util.MonthToken(exp.Date))
		p.Expense = p.Expense.Add(exp.Amount)
	}
	for _, exp := range fuelExpenses {
		p := get(util.MonthToken(exp.Date))
		p.Expense = p.Expense.Add(exp.Amount)
	}

	tokens := make([]string, 0, len(buckets))
	for token := range buckets {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)

	if len(tokens) > domain.MaxTrendMonths {
		tokens = tokens[len(tokens)-domain.MaxTrendMonths:]
	}

	series := make([]domain.MonthlyPoint, 0, len(tokens))
	for _, token := range tokens {
		series = append(series, *buckets[token])
	}
	return series
}

// categoryBreakdown builds the expense breakdown: one slice per non-EMI home
// category, one for fuel and one for EMI payments (the latter two only when
// nonzero), sorted by value descending
func categoryBreakdown(homeExpenses []*domain.HomeExpense, fuelExpenses []*domain.FuelExpense) []domain.CategorySlice {
	byCategory := make(map[string]decimal.Decimal)
	totalEmi := decimal.Zero
	for _, exp := range homeExpenses {
		if exp.IsEmiPayment() {
			totalEmi = totalEmi.Add(exp.Amount)
			continue
		}
		sum, ok := byCategory[exp.Category]
		if !ok {
			sum = decimal.Zero
		}
		byCategory[exp.Category] = sum.Add(exp.Amount)
	}

	slices := make([]domain.CategorySlice, 0, len(byCategory)+2)
	for name, value := range byCategory {
		slices = append(slices, domain.CategorySlice{Name: name, Value: value})
	}

	totalFuel := decimal.Zero
	for _, exp := range fuelExpenses {
		totalFuel = totalFuel.Add(exp.Amount)
	}
	if totalFuel.IsPositive() {
		slices = append(slices, domain.CategorySlice{Name: "Fuel", Value: totalFuel})
	}
	if totalEmi.IsPositive() {
		slices = append(slices, domain.CategorySlice{Name: domain.CategoryEMI, Value: totalEmi})
	}

	sort.SliceStable(slices, func(i, j int) bool {
		return slices[i].Value.GreaterThan(slices[j].Value)
	})
	return slices
}
