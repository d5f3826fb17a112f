package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmiNotFound           = errors.New("emi not found")
	ErrEmiNameEmpty          = errors.New("emi name is required")
	ErrEmiNameTooLong        = errors.New("emi name must be 200 characters or less")
	ErrEmiVehicleTypeEmpty   = errors.New("vehicle type is required")
	ErrEmiAmountInvalid      = errors.New("monthly amount must be positive")
	ErrEmiTotalMonthsInvalid = errors.New("total months must be at least 1")
)

// Emi represents an installment loan. Progress is driven entirely by the
// PaidMonths set; elapsed calendar time since StartDate is never consulted.
type Emi struct {
	ID            int32           `json:"id"`
	UserID        uuid.UUID       `json:"userId"`
	Name          string          `json:"name"`
	VehicleType   string          `json:"vehicleType"`
	MonthlyAmount decimal.Decimal `json:"monthlyAmount"`
	TotalMonths   int32           `json:"totalMonths"`
	StartDate     time.Time       `json:"startDate"`
	PaidMonths    []string        `json:"paidMonths"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

func (e *Emi) Validate() error {
	if e.Name == "" {
		return ErrEmiNameEmpty
	}
	if len(e.Name) > 200 {
		return ErrEmiNameTooLong
	}
	if e.VehicleType == "" {
		return ErrEmiVehicleTypeEmpty
	}
	if e.MonthlyAmount.LessThanOrEqual(decimal.Zero) {
		return ErrEmiAmountInvalid
	}
	if e.TotalMonths < 1 {
		return ErrEmiTotalMonthsInvalid
	}
	return nil
}

// EmiProgress holds the derived repayment state of an Emi
type EmiProgress struct {
	PaidMonthsCount    int32           `json:"paidMonthsCount"`
	RemainingMonths    int32           `json:"remainingMonths"`
	TotalPaid          decimal.Decimal `json:"totalPaid"`
	RemainingAmount    decimal.Decimal `json:"remainingAmount"`
	ProgressPercentage float64         `json:"progressPercentage"`
	TotalAmount        decimal.Decimal `json:"totalAmount"`
}

// Progress computes the repayment state from the paid-month set.
// Duplicate tokens are counted once and the count is capped at TotalMonths,
// so malformed data can never inflate the figures. Pure: no clock access.
func (e *Emi) Progress() EmiProgress {
	seen := make(map[string]struct{}, len(e.PaidMonths))
	for _, m := range e.PaidMonths {
		seen[m] = struct{}{}
	}

	paidCount := int32(len(seen))
	if paidCount > e.TotalMonths {
		paidCount = e.TotalMonths
	}

	totalAmount := e.MonthlyAmount.Mul(decimal.NewFromInt32(e.TotalMonths))
	totalPaid := e.MonthlyAmount.Mul(decimal.NewFromInt32(paidCount))

	percentage := 0.0
	if e.TotalMonths > 0 {
		percentage = float64(paidCount) / float64(e.TotalMonths) * 100
	}

	return EmiProgress{
		PaidMonthsCount:    paidCount,
		RemainingMonths:    e.TotalMonths - paidCount,
		TotalPaid:          totalPaid,
		RemainingAmount:    totalAmount.Sub(totalPaid),
		ProgressPercentage: percentage,
		TotalAmount:        totalAmount,
	}
}

// HasPaidMonth reports whether the given month token is in the paid set
func (e *Emi) HasPaidMonth(token string) bool {
	for _, m := range e.PaidMonths {
		if m == token {
			return true
		}
	}
	return false
}

// EmiRepository defines the interface for emi persistence operations.
// AddPaidMonth and RemovePaidMonth are idempotent set operations.
type EmiRepository interface {
	Create(emi *Emi) (*Emi, error)
	GetByID(userID uuid.UUID, id int32) (*Emi, error)
	GetAllByUser(userID uuid.UUID) ([]*Emi, error)
	AddPaidMonth(userID uuid.UUID, id int32, token string) (*Emi, error)
	RemovePaidMonth(userID uuid.UUID, id int32, token string) (*Emi, error)
	Delete(userID uuid.UUID, id int32) error
}
