package service

import (
	"github.com/arjunms/homeledger/homeledger-backend/internal/domain"
	"github.com/arjunms/homeledger/homeledger-backend/internal/util"
	"github.com/arjunms/homeledger/homeledger-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IncomeService handles income record business logic
type IncomeService struct {
	incomeRepo     domain.IncomeRepository
	eventPublisher websocket.EventPublisher
}

// NewIncomeService creates a new IncomeService
func NewIncomeService(incomeRepo domain.IncomeRepository) *IncomeService {
	return &IncomeService{incomeRepo: incomeRepo}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *IncomeService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *IncomeService) publishEvent(userID uuid.UUID, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(userID, event)
	}
}

// CreateIncomeInput holds the input for creating an income record
type CreateIncomeInput struct {
	Amount decimal.Decimal
	Date   string // YYYY-MM-DD
}

// CreateIncome creates a new income record with validation
func (s *IncomeService) CreateIncome(userID uuid.UUID, input CreateIncomeInput) (*domain.Income, error) {
	date, err := util.ParseDate(input.Date)
	if err != nil {
		return nil, domain.ErrDateRequired
	}

	income := &domain.Income{
		UserID: userID,
		Amount: input.Amount,
		Date:   date,
	}
	if err := income.Validate(); err != nil {
		return nil, err
	}

	created, err := s.incomeRepo.Create(income)
	if err != nil {
		return nil, err
	}

	s.publishEvent(userID, websocket.IncomeCreated(created))
	return created, nil
}

// GetIncomes retrieves all income records for a user
func (s *IncomeService) GetIncomes(userID uuid.UUID) ([]*domain.Income, error) {
	return s.incomeRepo.GetAllByUser(userID)
}

// DeleteIncome deletes an income record
func (s *IncomeService) DeleteIncome(userID uuid.UUID, id int32) error {
	if err := s.incomeRepo.Delete(userID, id); err != nil {
		return err
	}
	s.publishEvent(userID, websocket.IncomeDeleted(id))
	return nil
}
