package service

import (
	"errors"
	"testing"

	"github.com/arjunms/homeledger/homeledger-backend/internal/domain"
	"github.com/arjunms/homeledger/homeledger-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func newTestExpenseService() (*ExpenseService, *EmiService, *testutil.MockHomeExpenseRepository, *testutil.MockFuelExpenseRepository) {
	homeRepo := testutil.NewMockHomeExpenseRepository()
	fuelRepo := testutil.NewMockFuelExpenseRepository()
	emiService := NewEmiService(testutil.NewMockEmiRepository())
	return NewExpenseService(homeRepo, fuelRepo, emiService), emiService, homeRepo, fuelRepo
}

func TestExpenseService_CreateHomeExpense(t *testing.T) {
	svc, _, _, _ := newTestExpenseService()
	userID := uuid.New()

	notes := "  weekly shop  "
	expense, err := svc.CreateHomeExpense(userID, CreateHomeExpenseInput{
		Amount:   decimal.NewFromInt(1500),
		Date:     "2025-06-10",
		Category: "Groceries",
		Notes:    &notes,
	})
	if err != nil {
		t.Fatalf("CreateHomeExpense failed: %v", err)
	}

	if expense.ID == 0 {
		t.Error("Expected assigned ID")
	}
	if expense.Notes == nil || *expense.Notes != "weekly shop" {
		t.Errorf("Expected trimmed notes, got %v", expense.Notes)
	}
}

func TestExpenseService_CreateHomeExpense_InvalidCategory(t *testing.T) {
	svc, _, _, _ := newTestExpenseService()

	_, err := svc.CreateHomeExpense(uuid.New(), CreateHomeExpenseInput{
		Amount:   decimal.NewFromInt(100),
		Date:     "2025-06-10",
		Category: "Entertainment",
	})
	if !errors.Is(err, domain.ErrExpenseCategoryInvalid) {
		t.Errorf("Expected ErrExpenseCategoryInvalid, got %v", err)
	}
}

func TestExpenseService_CreateHomeExpense_NonPositiveAmount(t *testing.T) {
	svc, _, _, _ := newTestExpenseService()

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-50)} {
		_, err := svc.CreateHomeExpense(uuid.New(), CreateHomeExpenseInput{
			Amount:   amount,
			Date:     "2025-06-10",
			Category: "Groceries",
		})
		if !errors.Is(err, domain.ErrAmountInvalid) {
			t.Errorf("Amount %s: expected ErrAmountInvalid, got %v", amount, err)
		}
	}
}

func TestExpenseService_LinkedEmiPaymentTicksLoan(t *testing.T) {
	svc, emiService, _, _ := newTestExpenseService()
	userID := uuid.New()

	emi, err := emiService.CreateEmi(userID, CreateEmiInput{
		Name:          "Car Loan",
		VehicleType:   "car",
		MonthlyAmount: decimal.NewFromInt(5000),
		TotalMonths:   36,
		StartDate:     "2025-01-01",
	})
	if err != nil {
		t.Fatalf("CreateEmi failed: %v", err)
	}

	_, err = svc.CreateHomeExpense(userID, CreateHomeExpenseInput{
		Amount:      decimal.NewFromInt(5000),
		Date:        "2025-03-14",
		Category:    domain.CategoryEMI,
		LinkedEmiID: &emi.ID,
	})
	if err != nil {
		t.Fatalf("CreateHomeExpense failed: %v", err)
	}

	updated, _ := emiService.GetEmiByID(userID, emi.ID)
	if len(updated.PaidMonths) != 1 || updated.PaidMonths[0] != "2025-03" {
		t.Errorf("Expected expense month ticked on the loan, got %v", updated.PaidMonths)
	}
}

func TestExpenseService_DanglingEmiLinkStillRecordsExpense(t *testing.T) {
	svc, _, homeRepo, _ := newTestExpenseService()
	userID := uuid.New()

	missing := int32(999)
	expense, err := svc.CreateHomeExpense(userID, CreateHomeExpenseInput{
		Amount:      decimal.NewFromInt(5000),
		Date:        "2025-03-14",
		Category:    domain.CategoryEMI,
		LinkedEmiID: &missing,
	})
	if err != nil {
		t.Fatalf("A broken EMI link should not fail the expense, got %v", err)
	}
	if _, ok := homeRepo.Expenses[expense.ID]; !ok {
		t.Error("Expense should be persisted despite the broken link")
	}
}

func TestExpenseService_NonEmiCategoryIgnoresLink(t *testing.T) {
	svc, emiService, _, _ := newTestExpenseService()
	userID := uuid.New()

	emi, _ := emiService.CreateEmi(userID, CreateEmiInput{
		Name:          "Car Loan",
		VehicleType:   "car",
		MonthlyAmount: decimal.NewFromInt(5000),
		TotalMonths:   36,
		StartDate:     "2025-01-01",
	})

	// Linked loan on a non-EMI category: nothing gets ticked
	_, err := svc.CreateHomeExpense(userID, CreateHomeExpenseInput{
		Amount:      decimal.NewFromInt(800),
		Date:        "2025-03-14",
		Category:    "Groceries",
		LinkedEmiID: &emi.ID,
	})
	if err != nil {
		t.Fatalf("CreateHomeExpense failed: %v", err)
	}

	updated, _ := emiService.GetEmiByID(userID, emi.ID)
	if len(updated.PaidMonths) != 0 {
		t.Errorf("Non-EMI expense should not tick the loan, got %v", updated.PaidMonths)
	}
}

func TestExpenseService_CreateFuelExpense(t *testing.T) {
	svc, _, _, _ := newTestExpenseService()
	userID := uuid.New()

	expense, err := svc.CreateFuelExpense(userID, CreateFuelExpenseInput{
		Amount: decimal.NewFromInt(600),
		Date:   "2025-06-11",
	})
	if err != nil {
		t.Fatalf("CreateFuelExpense failed: %v", err)
	}
	if expense.ID == 0 {
		t.Error("Expected assigned ID")
	}
}

func TestExpenseService_DeleteExpenses(t *testing.T) {
	svc, _, homeRepo, fuelRepo := newTestExpenseService()
	userID := uuid.New()

	home, _ := svc.CreateHomeExpense(userID, CreateHomeExpenseInput{
		Amount:   decimal.NewFromInt(100),
		Date:     "2025-06-01",
		Category: "Groceries",
	})
	fuel, _ := svc.CreateFuelExpense(userID, CreateFuelExpenseInput{
		Amount: decimal.NewFromInt(200),
		Date:   "2025-06-02",
	})

	if err := svc.DeleteHomeExpense(userID, home.ID); err != nil {
		t.Fatalf("DeleteHomeExpense failed: %v", err)
	}
	if err := svc.DeleteFuelExpense(userID, fuel.ID); err != nil {
		t.Fatalf("DeleteFuelExpense failed: %v", err)
	}
	if len(homeRepo.Expenses) != 0 || len(fuelRepo.Expenses) != 0 {
		t.Error("Expenses should be removed from the repositories")
	}

	if err := svc.DeleteHomeExpense(userID, home.ID); !errors.Is(err, domain.ErrExpenseNotFound) {
		t.Errorf("Second delete should report not found, got %v", err)
	}
}
