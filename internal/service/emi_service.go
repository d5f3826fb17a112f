package service

import (
	"github.com/arjunms/homeledger/homeledger-backend/internal/domain"
	"github.com/arjunms/homeledger/homeledger-backend/internal/util"
	"github.com/arjunms/homeledger/homeledger-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// EmiService handles installment loan business logic
type EmiService struct {
	emiRepo        domain.EmiRepository
	eventPublisher websocket.EventPublisher
}

// NewEmiService creates a new EmiService
func NewEmiService(emiRepo domain.EmiRepository) *EmiService {
	return &EmiService{emiRepo: emiRepo}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *EmiService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// publishEvent publishes a WebSocket event if a publisher is configured
func (s *EmiService) publishEvent(userID uuid.UUID, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(userID, event)
	}
}

// CreateEmiInput holds the input for creating an EMI
type CreateEmiInput struct {
	Name          string
	VehicleType   string
	MonthlyAmount decimal.Decimal
	TotalMonths   int32
	StartDate     string // YYYY-MM-DD
}

// CreateEmi creates a new EMI with validation
func (s *EmiService) CreateEmi(userID uuid.UUID, input CreateEmiInput) (*domain.Emi, error) {
	startDate, err := util.ParseDate(input.StartDate)
	if err != nil {
		return nil, domain.ErrDateRequired
	}

	emi := &domain.Emi{
		UserID:        userID,
		Name:          input.Name,
		VehicleType:   input.VehicleType,
		MonthlyAmount: input.MonthlyAmount,
		TotalMonths:   input.TotalMonths,
		StartDate:     startDate,
		PaidMonths:    []string{},
	}
	if err := emi.Validate(); err != nil {
		return nil, err
	}

	created, err := s.emiRepo.Create(emi)
	if err != nil {
		return nil, err
	}

	s.publishEvent(userID, websocket.EmiCreated(created))
	return created, nil
}

// GetEmis retrieves all EMIs for a user
func (s *EmiService) GetEmis(userID uuid.UUID) ([]*domain.Emi, error) {
	return s.emiRepo.GetAllByUser(userID)
}

// GetEmiByID retrieves a single EMI
func (s *EmiService) GetEmiByID(userID uuid.UUID, id int32) (*domain.Emi, error) {
	return s.emiRepo.GetByID(userID, id)
}

// GetProgress computes the repayment progress for one EMI
func (s *EmiService) GetProgress(userID uuid.UUID, id int32) (*domain.EmiProgress, error) {
	emi, err := s.emiRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	progress := emi.Progress()
	return &progress, nil
}

// TogglePaidMonth marks a month as paid or unpaid. Both directions are
// idempotent: adding a present token or removing an absent one is a no-op.
func (s *EmiService) TogglePaidMonth(userID uuid.UUID, id int32, monthToken string, paid bool) (*domain.Emi, error) {
	if !util.IsMonthToken(monthToken) {
		return nil, domain.ErrMonthTokenFormat
	}

	var (
		updated *domain.Emi
		err     error
	)
	if paid {
		updated, err = s.emiRepo.AddPaidMonth(userID, id, monthToken)
	} else {
		updated, err = s.emiRepo.RemovePaidMonth(userID, id, monthToken)
	}
	if err != nil {
		return nil, err
	}

	s.publishEvent(userID, websocket.EmiUpdated(updated))
	return updated, nil
}

// RecordPayment appends the month token for the given date to an EMI's paid
// set. Used when an EMI-category expense is linked to a loan; best effort by
// design, callers treat failure as a broken link, not a fatal error.
func (s *EmiService) RecordPayment(userID uuid.UUID, id int32, monthToken string) error {
	updated, err := s.emiRepo.AddPaidMonth(userID, id, monthToken)
	if err != nil {
		return err
	}
	s.publishEvent(userID, websocket.EmiUpdated(updated))
	return nil
}

// DeleteEmi deletes an EMI
func (s *EmiService) DeleteEmi(userID uuid.UUID, id int32) error {
	emi, err := s.emiRepo.GetByID(userID, id)
	if err != nil {
		return err
	}
	if err := s.emiRepo.Delete(userID, id); err != nil {
		return err
	}

	log.Info().Int32("emi_id", id).Str("name", emi.Name).Msg("EMI deleted")
	s.publishEvent(userID, websocket.EmiDeleted(emi))
	return nil
}
