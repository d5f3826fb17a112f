package service

import (
	"strings"

	"github.com/arjunms/homeledger/homeledger-backend/internal/domain"
	"github.com/arjunms/homeledger/homeledger-backend/internal/util"
	"github.com/arjunms/homeledger/homeledger-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ExpenseService handles home and fuel expense business logic
type ExpenseService struct {
	homeExpenseRepo domain.HomeExpenseRepository
	fuelExpenseRepo domain.FuelExpenseRepository
	emiService      *EmiService
	eventPublisher  websocket.EventPublisher
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(
	homeExpenseRepo domain.HomeExpenseRepository,
	fuelExpenseRepo domain.FuelExpenseRepository,
	emiService *EmiService,
) *ExpenseService {
	return &ExpenseService{
		homeExpenseRepo: homeExpenseRepo,
		fuelExpenseRepo: fuelExpenseRepo,
		emiService:      emiService,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *ExpenseService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *ExpenseService) publishEvent(userID uuid.UUID, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(userID, event)
	}
}

// CreateHomeExpenseInput holds the input for creating a home expense
type CreateHomeExpenseInput struct {
	Amount      decimal.Decimal
	Date        string // YYYY-MM-DD
	Category    string
	Notes       *string
	LinkedEmiID *int32
}

// CreateHomeExpense creates a home expense with validation. An expense in
// the EMI category with a linked loan also ticks off the expense month on
// that loan's paid set; a broken link is logged and the expense still lands.
func (s *ExpenseService) CreateHomeExpense(userID uuid.UUID, input CreateHomeExpenseInput) (*domain.HomeExpense, error) {
	date, err := util.ParseDate(input.Date)
	if err != nil {
		return nil, domain.ErrDateRequired
	}

	var notes *string
	if input.Notes != nil {
		trimmed := strings.TrimSpace(*input.Notes)
		if trimmed != "" {
			notes = &trimmed
		}
	}

	expense := &domain.HomeExpense{
		UserID:      userID,
		Amount:      input.Amount,
		Date:        date,
		Category:    input.Category,
		Notes:       notes,
		LinkedEmiID: input.LinkedEmiID,
	}
	if err := expense.Validate(); err != nil {
		return nil, err
	}

	created, err := s.homeExpenseRepo.Create(expense)
	if err != nil {
		return nil, err
	}

	if created.IsEmiPayment() && created.LinkedEmiID != nil {
		token := util.MonthToken(created.Date)
		if err := s.emiService.RecordPayment(userID, *created.LinkedEmiID, token); err != nil {
			log.Warn().
				Err(err).
				Int32("expense_id", created.ID).
				Int32("emi_id", *created.LinkedEmiID).
				Str("month", token).
				Msg("EMI expense recorded but linked loan could not be updated")
		}
	}

	s.publishEvent(userID, websocket.HomeExpenseCreated(created))
	return created, nil
}

// CreateFuelExpenseInput holds the input for creating a fuel expense
type CreateFuelExpenseInput struct {
	Amount decimal.Decimal
	Date   string // YYYY-MM-DD
	Notes  *string
}

// CreateFuelExpense creates a fuel expense with validation
func (s *ExpenseService) CreateFuelExpense(userID uuid.UUID, input CreateFuelExpenseInput) (*domain.FuelExpense, error) {
	date, err := util.ParseDate(input.Date)
	if err != nil {
		return nil, domain.ErrDateRequired
	}

	var notes *string
	if input.Notes != nil {
		trimmed := strings.TrimSpace(*input.Notes)
		if trimmed != "" {
			notes = &trimmed
		}
	}

	expense := &domain.FuelExpense{
		UserID: userID,
		Amount: input.Amount,
		Date:   date,
		Notes:  notes,
	}
	if err := expense.Validate(); err != nil {
		return nil, err
	}

	created, err := s.fuelExpenseRepo.Create(expense)
	if err != nil {
		return nil, err
	}

	s.publishEvent(userID, websocket.FuelExpenseCreated(created))
	return created, nil
}

// GetHomeExpenses retrieves all home expenses for a user
func (s *ExpenseService) GetHomeExpenses(userID uuid.UUID) ([]*domain.HomeExpense, error) {
	return s.homeExpenseRepo.GetAllByUser(userID)
}

// GetFuelExpenses retrieves all fuel expenses for a user
func (s *ExpenseService) GetFuelExpenses(userID uuid.UUID) ([]*domain.FuelExpense, error) {
	return s.fuelExpenseRepo.GetAllByUser(userID)
}

// DeleteHomeExpense deletes a home expense
func (s *ExpenseService) DeleteHomeExpense(userID uuid.UUID, id int32) error {
	if err := s.homeExpenseRepo.Delete(userID, id); err != nil {
		return err
	}
	s.publishEvent(userID, websocket.HomeExpenseDeleted(id))
	return nil
}

// DeleteFuelExpense deletes a fuel expense
func (s *ExpenseService) DeleteFuelExpense(userID uuid.UUID, id int32) error {
	if err := s.fuelExpenseRepo.Delete(userID, id); err != nil {
		return err
	}
	s.publishEvent(userID, websocket.FuelExpenseDeleted(id))
	return nil
}
