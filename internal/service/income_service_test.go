package service

import (
	"errors"
	"testing"

	"github.com/arjunms/homeledger/homeledger-backend/internal/domain"
	"github.com/arjunms/homeledger/homeledger-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestIncomeService_CreateIncome(t *testing.T) {
	svc := NewIncomeService(testutil.NewMockIncomeRepository())
	userID := uuid.New()

	income, err := svc.CreateIncome(userID, CreateIncomeInput{
		Amount: decimal.NewFromInt(50000),
		Date:   "2025-06-01",
	})
	if err != nil {
		t.Fatalf("CreateIncome failed: %v", err)
	}
	if income.ID == 0 {
		t.Error("Expected assigned ID")
	}
	if income.UserID != userID {
		t.Errorf("Expected owner %s, got %s", userID, income.UserID)
	}
}

func TestIncomeService_CreateIncome_Invalid(t *testing.T) {
	svc := NewIncomeService(testutil.NewMockIncomeRepository())

	_, err := svc.CreateIncome(uuid.New(), CreateIncomeInput{
		Amount: decimal.NewFromInt(-100),
		Date:   "2025-06-01",
	})
	if !errors.Is(err, domain.ErrAmountInvalid) {
		t.Errorf("Expected ErrAmountInvalid, got %v", err)
	}

	_, err = svc.CreateIncome(uuid.New(), CreateIncomeInput{
		Amount: decimal.NewFromInt(100),
		Date:   "not-a-date",
	})
	if !errors.Is(err, domain.ErrDateRequired) {
		t.Errorf("Expected ErrDateRequired, got %v", err)
	}
}

func TestIncomeService_DeleteIncome(t *testing.T) {
	repo := testutil.NewMockIncomeRepository()
	svc := NewIncomeService(repo)
	userID := uuid.New()

	income, _ := svc.CreateIncome(userID, CreateIncomeInput{
		Amount: decimal.NewFromInt(1000),
		Date:   "2025-06-01",
	})

	if err := svc.DeleteIncome(userID, income.ID); err != nil {
		t.Fatalf("DeleteIncome failed: %v", err)
	}
	if len(repo.Incomes) != 0 {
		t.Error("Income should be removed from the repository")
	}

	if err := svc.DeleteIncome(userID, income.ID); !errors.Is(err, domain.ErrIncomeNotFound) {
		t.Errorf("Second delete should report not found, got %v", err)
	}
}

func TestIncomeService_DeleteIncome_UserIsolation(t *testing.T) {
	svc := NewIncomeService(testutil.NewMockIncomeRepository())
	owner := uuid.New()

	income, _ := svc.CreateIncome(owner, CreateIncomeInput{
		Amount: decimal.NewFromInt(1000),
		Date:   "2025-06-01",
	})

	if err := svc.DeleteIncome(uuid.New(), income.ID); !errors.Is(err, domain.ErrIncomeNotFound) {
		t.Errorf("Foreign user delete should report not found, got %v", err)
	}
}
