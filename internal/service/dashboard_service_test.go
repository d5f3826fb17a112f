package service

import (
	"testing"
	"time"

	"github.com/arjunms/homeledger/homeledger-backend/internal/domain"
	"github.com/arjunms/homeledger/homeledger-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Test data builders

func testIncome(amount float64, date string) *domain.Income {
	return &domain.Income{
		Amount: decimal.NewFromFloat(amount),
		Date:   mustDate(date),
	}
}

func testHomeExpense(amount float64, date, category string) *domain.HomeExpense {
	return &domain.HomeExpense{
		Amount:   decimal.NewFromFloat(amount),
		Date:     mustDate(date),
		Category: category,
	}
}

func testFuelExpense(amount float64, date string) *domain.FuelExpense {
	return &domain.FuelExpense{
		Amount: decimal.NewFromFloat(amount),
		Date:   mustDate(date),
	}
}

func mustDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func assertDecimal(t *testing.T, name string, got decimal.Decimal, want float64) {
	t.Helper()
	if !got.Equal(decimal.NewFromFloat(want)) {
		t.Errorf("%s: expected %v, got %s", name, want, got.String())
	}
}

func TestAggregate_SummaryTotals(t *testing.T) {
	// 5000 income, 1000 groceries, 2000 EMI payment, 500 fuel
	incomes := []*domain.Income{testIncome(5000, "2025-06-01")}
	homeExpenses := []*domain.HomeExpense{
		testHomeExpense(1000, "2025-06-05", "Groceries"),
		testHomeExpense(2000, "2025-06-10", domain.CategoryEMI),
	}
	fuelExpenses := []*domain.FuelExpense{testFuelExpense(500, "2025-06-12")}

	summary := Aggregate(incomes, homeExpenses, fuelExpenses)

	assertDecimal(t, "TotalIncome", summary.TotalIncome, 5000)
	assertDecimal(t, "TotalHomeExpenses", summary.TotalHomeExpenses, 1000)
	assertDecimal(t, "TotalEmiPaid", summary.TotalEmiPaid, 2000)
	assertDecimal(t, "TotalFuelExpenses", summary.TotalFuelExpenses, 500)
	assertDecimal(t, "TotalExpenses", summary.TotalExpenses, 3500)
	assertDecimal(t, "NetBalance", summary.NetBalance, 1500)
}

func TestAggregate_NilSnapshotYieldsZeroSummary(t *testing.T) {
	summary := Aggregate(nil, []*domain.HomeExpense{}, []*domain.FuelExpense{})

	assertDecimal(t, "TotalIncome", summary.TotalIncome, 0)
	assertDecimal(t, "TotalExpenses", summary.TotalExpenses, 0)
	assertDecimal(t, "NetBalance", summary.NetBalance, 0)
	if summary.MonthlySeries == nil || len(summary.MonthlySeries) != 0 {
		t.Errorf("Expected empty monthly series, got %v", summary.MonthlySeries)
	}
	if summary.Breakdown == nil || len(summary.Breakdown) != 0 {
		t.Errorf("Expected empty breakdown, got %v", summary.Breakdown)
	}
}

func TestAggregate_EmiNeverDoubleCounted(t *testing.T) {
	homeExpenses := []*domain.HomeExpense{
		testHomeExpense(3000, "2025-06-01", domain.CategoryEMI),
	}

	summary := Aggregate([]*domain.Income{}, homeExpenses, []*domain.FuelExpense{})

	assertDecimal(t, "TotalHomeExpenses", summary.TotalHomeExpenses, 0)
	assertDecimal(t, "TotalEmiPaid", summary.TotalEmiPaid, 3000)
	assertDecimal(t, "TotalExpenses", summary.TotalExpenses, 3000)
}

func TestAggregate_ExpenseIdentity(t *testing.T) {
	// totalExpenses must equal home + fuel + emi for any mix
	incomes := []*domain.Income{testIncome(9999.99, "2025-05-01")}
	homeExpenses := []*domain.HomeExpense{
		testHomeExpense(123.45, "2025-05-02", "Utilities"),
		testHomeExpense(678.90, "2025-05-03", domain.CategoryEMI),
		testHomeExpense(11.10, "2025-05-04", "Other"),
	}
	fuelExpenses := []*domain.FuelExpense{testFuelExpense(55.55, "2025-05-05")}

	summary := Aggregate(incomes, homeExpenses, fuelExpenses)

	sum := summary.TotalHomeExpenses.Add(summary.TotalFuelExpenses).Add(summary.TotalEmiPaid)
	if !summary.TotalExpenses.Equal(sum) {
		t.Errorf("TotalExpenses %s != home+fuel+emi %s", summary.TotalExpenses, sum)
	}
	if !summary.NetBalance.Equal(summary.TotalIncome.Sub(summary.TotalExpenses)) {
		t.Error("NetBalance should equal income minus expenses")
	}
}

func TestAggregate_MonthlySeriesChronological(t *testing.T) {
	incomes := []*domain.Income{
		testIncome(100, "2025-03-15"),
		testIncome(200, "2025-01-15"),
		testIncome(300, "2025-02-15"),
	}
	homeExpenses := []*domain.HomeExpense{
		testHomeExpense(50, "2025-02-20", "Groceries"),
	}

	summary := Aggregate(incomes, homeExpenses, []*domain.FuelExpense{})

	if len(summary.MonthlySeries) != 3 {
		t.Fatalf("Expected 3 buckets, got %d", len(summary.MonthlySeries))
	}
	expected := []string{"2025-01", "2025-02", "2025-03"}
	for i, token := range expected {
		if summary.MonthlySeries[i].Month != token {
			t.Errorf("Bucket %d: expected %s, got %s", i, token, summary.MonthlySeries[i].Month)
		}
	}
	assertDecimal(t, "Feb income", summary.MonthlySeries[1].Income, 300)
	assertDecimal(t, "Feb expense", summary.MonthlySeries[1].Expense, 50)
}

func TestAggregate_MonthlySeriesKeepsLastSixMonths(t *testing.T) {
	var incomes []*domain.Income
	months := []string{"2024-09", "2024-10", "2024-11", "2024-12", "2025-01", "2025-02", "2025-03", "2025-04"}
	for _, m := range months {
		incomes = append(incomes, testIncome(100, m+"-01"))
	}

	summary := Aggregate(incomes, []*domain.HomeExpense{}, []*domain.FuelExpense{})

	if len(summary.MonthlySeries) != domain.MaxTrendMonths {
		t.Fatalf("Expected %d buckets, got %d", domain.MaxTrendMonths, len(summary.MonthlySeries))
	}
	if summary.MonthlySeries[0].Month != "2024-11" {
		t.Errorf("Expected oldest kept bucket 2024-11, got %s", summary.MonthlySeries[0].Month)
	}
	if summary.MonthlySeries[5].Month != "2025-04" {
		t.Errorf("Expected newest bucket 2025-04, got %s", summary.MonthlySeries[5].Month)
	}
}

func TestAggregate_BreakdownSortedDescending(t *testing.T) {
	homeExpenses := []*domain.HomeExpense{
		testHomeExpense(100, "2025-06-01", "Groceries"),
		testHomeExpense(400, "2025-06-02", "Rent"),
		testHomeExpense(250, "2025-06-03", domain.CategoryEMI),
	}
	fuelExpenses := []*domain.FuelExpense{testFuelExpense(300, "2025-06-04")}

	summary := Aggregate([]*domain.Income{}, homeExpenses, fuelExpenses)

	expected := []struct {
		name  string
		value float64
	}{
		{"Rent", 400},
		{"Fuel", 300},
		{domain.CategoryEMI, 250},
		{"Groceries", 100},
	}
	if len(summary.Breakdown) != len(expected) {
		t.Fatalf("Expected %d slices, got %d", len(expected), len(summary.Breakdown))
	}
	for i, exp := range expected {
		if summary.Breakdown[i].Name != exp.name {
			t.Errorf("Slice %d: expected %s, got %s", i, exp.name, summary.Breakdown[i].Name)
		}
		assertDecimal(t, "slice "+exp.name, summary.Breakdown[i].Value, exp.value)
	}
}

func TestAggregate_BreakdownOmitsZeroFuelAndEmi(t *testing.T) {
	homeExpenses := []*domain.HomeExpense{
		testHomeExpense(100, "2025-06-01", "Groceries"),
	}

	summary := Aggregate([]*domain.Income{}, homeExpenses, []*domain.FuelExpense{})

	for _, slice := range summary.Breakdown {
		if slice.Name == "Fuel" || slice.Name == domain.CategoryEMI {
			t.Errorf("Slice %s should be omitted when zero", slice.Name)
		}
	}
}

func TestDashboardService_GetSummary(t *testing.T) {
	userID := uuid.New()
	otherUser := uuid.New()

	incomeRepo := testutil.NewMockIncomeRepository()
	homeRepo := testutil.NewMockHomeExpenseRepository()
	fuelRepo := testutil.NewMockFuelExpenseRepository()

	income := testIncome(5000, "2025-06-01")
	income.UserID = userID
	incomeRepo.Create(income)

	foreign := testIncome(7777, "2025-06-01")
	foreign.UserID = otherUser
	incomeRepo.Create(foreign)

	home := testHomeExpense(1200, "2025-06-03", "Rent")
	home.UserID = userID
	homeRepo.Create(home)

	fuel := testFuelExpense(300, "2025-06-04")
	fuel.UserID = userID
	fuelRepo.Create(fuel)

	svc := NewDashboardService(incomeRepo, homeRepo, fuelRepo)

	summary, err := svc.GetSummary(userID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	assertDecimal(t, "TotalIncome", summary.TotalIncome, 5000)
	assertDecimal(t, "TotalHomeExpenses", summary.TotalHomeExpenses, 1200)
	assertDecimal(t, "TotalFuelExpenses", summary.TotalFuelExpenses, 300)
	assertDecimal(t, "NetBalance", summary.NetBalance, 3500)
}

func TestDashboardService_GetSummary_ExpensesWithoutIncome(t *testing.T) {
	userID := uuid.New()

	incomeRepo := testutil.NewMockIncomeRepository()
	homeRepo := testutil.NewMockHomeExpenseRepository()
	fuelRepo := testutil.NewMockFuelExpenseRepository()

	home := testHomeExpense(1200, "2025-06-03", "Rent")
	home.UserID = userID
	homeRepo.Create(home)

	svc := NewDashboardService(incomeRepo, homeRepo, fuelRepo)

	// Empty collections are resolved snapshots; the expense must aggregate
	// instead of falling back to the zero summary
	summary, err := svc.GetSummary(userID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	assertDecimal(t, "TotalIncome", summary.TotalIncome, 0)
	assertDecimal(t, "TotalHomeExpenses", summary.TotalHomeExpenses, 1200)
	assertDecimal(t, "TotalExpenses", summary.TotalExpenses, 1200)
	assertDecimal(t, "NetBalance", summary.NetBalance, -1200)
}

// nilIncomeRepo reports zero rows as a nil slice, as a store driver may
type nilIncomeRepo struct{}

func (nilIncomeRepo) Create(income *domain.Income) (*domain.Income, error) { return income, nil }
func (nilIncomeRepo) GetAllByUser(userID uuid.UUID) ([]*domain.Income, error) {
	return nil, nil
}
func (nilIncomeRepo) Delete(userID uuid.UUID, id int32) error { return nil }

func TestDashboardService_GetSummary_NilSnapshotFromStore(t *testing.T) {
	userID := uuid.New()

	homeRepo := testutil.NewMockHomeExpenseRepository()
	fuelRepo := testutil.NewMockFuelExpenseRepository()

	home := testHomeExpense(1200, "2025-06-03", "Rent")
	home.UserID = userID
	homeRepo.Create(home)

	svc := NewDashboardService(nilIncomeRepo{}, homeRepo, fuelRepo)

	summary, err := svc.GetSummary(userID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	assertDecimal(t, "TotalExpenses", summary.TotalExpenses, 1200)
	assertDecimal(t, "NetBalance", summary.NetBalance, -1200)
}

func TestDashboardService_GetSummary_IncomeWithoutExpenses(t *testing.T) {
	userID := uuid.New()

	incomeRepo := testutil.NewMockIncomeRepository()
	homeRepo := testutil.NewMockHomeExpenseRepository()
	fuelRepo := testutil.NewMockFuelExpenseRepository()

	income := testIncome(5000, "2025-06-01")
	income.UserID = userID
	incomeRepo.Create(income)

	svc := NewDashboardService(incomeRepo, homeRepo, fuelRepo)

	summary, err := svc.GetSummary(userID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	assertDecimal(t, "TotalIncome", summary.TotalIncome, 5000)
	assertDecimal(t, "TotalExpenses", summary.TotalExpenses, 0)
	assertDecimal(t, "NetBalance", summary.NetBalance, 5000)
}
