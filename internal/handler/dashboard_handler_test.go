package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/arjunms/homeledger/homeledger-backend/internal/domain"
	"github.com/arjunms/homeledger/homeledger-backend/internal/service"
	"github.com/arjunms/homeledger/homeledger-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func TestDashboardGetSummary_Success(t *testing.T) {
	e := echo.New()
	incomeRepo := testutil.NewMockIncomeRepository()
	homeRepo := testutil.NewMockHomeExpenseRepository()
	fuelRepo := testutil.NewMockFuelExpenseRepository()
	dashboardService := service.NewDashboardService(incomeRepo, homeRepo, fuelRepo)
	handler := NewDashboardHandler(dashboardService)

	userID := uuid.New()
	date := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	incomeRepo.Create(&domain.Income{
		UserID: userID,
		Amount: mustDecimal(t, "50000"),
		Date:   date,
	})
	homeRepo.Create(&domain.HomeExpense{
		UserID:   userID,
		Amount:   mustDecimal(t, "12000"),
		Date:     date,
		Category: "Rent",
	})
	homeRepo.Create(&domain.HomeExpense{
		UserID:   userID,
		Amount:   mustDecimal(t, "3000"),
		Date:     date,
		Category: domain.CategoryEMI,
	})
	fuelRepo.Create(&domain.FuelExpense{
		UserID: userID,
		Amount: mustDecimal(t, "2500"),
		Date:   date,
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/summary", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContextWithUser(c, "auth0|dash", "dash@example.com", "", "", userID)

	if err := handler.GetSummary(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response DashboardSummaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.TotalIncome != "50000.00" {
		t.Errorf("Expected total income '50000.00', got %s", response.TotalIncome)
	}
	// EMI-tagged expense moves out of home totals
	if response.TotalHomeExpenses != "12000.00" {
		t.Errorf("Expected home expenses '12000.00', got %s", response.TotalHomeExpenses)
	}
	if response.TotalEmiPaid != "3000.00" {
		t.Errorf("Expected EMI paid '3000.00', got %s", response.TotalEmiPaid)
	}
	if response.TotalExpenses != "17500.00" {
		t.Errorf("Expected total expenses '17500.00', got %s", response.TotalExpenses)
	}
	if response.NetBalance != "32500.00" {
		t.Errorf("Expected net balance '32500.00', got %s", response.NetBalance)
	}

	if len(response.MonthlySeries) == 0 {
		t.Error("Expected monthly series to be populated")
	}
	if len(response.Breakdown) == 0 {
		t.Error("Expected breakdown to be populated")
	}
}

func TestDashboardGetSummary_EmptyData(t *testing.T) {
	e := echo.New()
	dashboardService := service.NewDashboardService(
		testutil.NewMockIncomeRepository(),
		testutil.NewMockHomeExpenseRepository(),
		testutil.NewMockFuelExpenseRepository(),
	)
	handler := NewDashboardHandler(dashboardService)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/summary", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContextWithUser(c, "auth0|empty", "empty@example.com", "", "", uuid.New())

	if err := handler.GetSummary(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response DashboardSummaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.NetBalance != "0.00" {
		t.Errorf("Expected net balance '0.00', got %s", response.NetBalance)
	}
}

func TestDashboardGetSummary_Unauthenticated(t *testing.T) {
	e := echo.New()
	dashboardService := service.NewDashboardService(
		testutil.NewMockIncomeRepository(),
		testutil.NewMockHomeExpenseRepository(),
		testutil.NewMockFuelExpenseRepository(),
	)
	handler := NewDashboardHandler(dashboardService)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/summary", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.GetSummary(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}
