package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrIncomeNotFound = errors.New("income not found")

// Income represents a single income record
type Income struct {
	ID        int32           `json:"id"`
	UserID    uuid.UUID       `json:"userId"`
	Amount    decimal.Decimal `json:"amount"`
	Date      time.Time       `json:"date"`
	CreatedAt time.Time       `json:"createdAt"`
}

func (i *Income) Validate() error {
	if i.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrAmountInvalid
	}
	if i.Date.IsZero() {
		return ErrDateRequired
	}
	return nil
}

// IncomeRepository defines the interface for income persistence operations
type IncomeRepository interface {
	Create(income *Income) (*Income, error)
	GetAllByUser(userID uuid.UUID) ([]*Income, error)
	Delete(userID uuid.UUID, id int32) error
}
