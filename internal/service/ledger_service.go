package service

import (
	"sort"

	"github.com/arjunms/homeledger/homeledger-backend/internal/domain"
	"github.com/google/uuid"
)

// LedgerService builds the unified, filterable transaction ledger
type LedgerService struct {
	incomeRepo      domain.IncomeRepository
	homeExpenseRepo domain.HomeExpenseRepository
	fuelExpenseRepo domain.FuelExpenseRepository
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(
	incomeRepo domain.IncomeRepository,
	homeExpenseRepo domain.HomeExpenseRepository,
	fuelExpenseRepo domain.FuelExpenseRepository,
) *LedgerService {
	return &LedgerService{
		incomeRepo:      incomeRepo,
		homeExpenseRepo: homeExpenseRepo,
		fuelExpenseRepo: fuelExpenseRepo,
	}
}

// GetLedger fetches fresh snapshots and builds the ledger. A limit of 0
// means no limit.
func (s *LedgerService) GetLedger(userID uuid.UUID, filter domain.LedgerFilter, dateRange domain.DateRange, limit int) ([]domain.LedgerEntry, error) {
	if !filter.IsValid() {
		return nil, domain.ErrInvalidInput
	}

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

	entries := BuildLedger(incomes, homeExpenses, fuelExpenses, filter, dateRange)
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// BuildLedger materializes the tagged-union view over the three record
// kinds, applies the type filter and inclusive date range, and sorts by
// date descending. Entries with equal dates keep their input order.
//
// A home expense with the EMI category is typed emi, never home: the home
// and emi filters are mutually exclusive. The tag comes from the category
// alone; no loan lookup is performed, so a dangling LinkedEmiID cannot
// fail the build.
func BuildLedger(incomes []*domain.Income, homeExpenses []*domain.HomeExpense, fuelExpenses []*domain.FuelExpense, filter domain.LedgerFilter, dateRange domain.DateRange) []domain.LedgerEntry {
	entries := make([]domain.LedgerEntry, 0, len(incomes)+len(homeExpenses)+len(fuelExpenses))

	include := func(t domain.LedgerEntryType) bool {
		return filter == domain.FilterAll || domain.LedgerFilter(t) == domain.LedgerFilter(filter)
	}

	for _, in := range incomes {
		if !include(domain.LedgerTypeIncome) || !dateRange.Contains(in.Date) {
			continue
		}
		entries = append(entries, domain.LedgerEntry{
			ID:     in.ID,
			Type:   domain.LedgerTypeIncome,
			Amount: in.Amount,
			Date:   in.Date,
		})
	}

	for _, exp := range homeExpenses {
		entryType := domain.LedgerTypeHome
		if exp.IsEmiPayment() {
			entryType = domain.LedgerTypeEmi
		}
		if !include(entryType) || !dateRange.Contains(exp.Date) {
			continue
		}
		entries = append(entries, domain.LedgerEntry{
			ID:       exp.ID,
			Type:     entryType,
			Amount:   exp.Amount,
			Date:     exp.Date,
			Category: exp.Category,
			Notes:    exp.Notes,
		})
	}

	for _, exp := range fuelExpenses {
		if !include(domain.LedgerTypeFuel) || !dateRange.Contains(exp.Date) {
			continue
		}
		entries = append(entries, domain.LedgerEntry{
			ID:     exp.ID,
			Type:   domain.LedgerTypeFuel,
			Amount: exp.Amount,
			Date:   exp.Date,
			Notes:  exp.Notes,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
	return entries
}
