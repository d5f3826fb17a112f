package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrExpenseNotFound        = errors.New("expense not found")
	ErrExpenseCategoryInvalid = errors.New("invalid home expense category")
)

// CategoryEMI is the reserved home expense category for installment payments.
// Expenses tagged with it are excluded from home totals and counted as EMI paid.
const CategoryEMI = "EMI"

// HomeExpenseCategories is the fixed set of home expense categories
var HomeExpenseCategories = []string{
	"Groceries",
	"Utilities",
	"Rent",
	"Maintenance",
	"Education",
	"Medical",
	CategoryEMI,
	"Other",
}

// IsValidHomeCategory reports whether c is a known home expense category
func IsValidHomeCategory(c string) bool {
	for _, v := range HomeExpenseCategories {
		if v == c {
			return true
		}
	}
	return false
}

// HomeExpense represents a household expense record
type HomeExpense struct {
	ID          int32           `json:"id"`
	UserID      uuid.UUID       `json:"userId"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Category    string          `json:"category"`
	Notes       *string         `json:"notes,omitempty"`
	LinkedEmiID *int32          `json:"linkedEmiId,omitempty"`
	ReceiptPath *string         `json:"receiptPath,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func (h *HomeExpense) Validate() error {
	if h.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrAmountInvalid
	}
	if h.Date.IsZero() {
		return ErrDateRequired
	}
	if !IsValidHomeCategory(h.Category) {
		return ErrExpenseCategoryInvalid
	}
	if h.Notes != nil && len(*h.Notes) > MaxNotesLength {
		return ErrNotesTooLong
	}
	return nil
}

// IsEmiPayment reports whether this expense records an installment payment
func (h *HomeExpense) IsEmiPayment() bool {
	return h.Category == CategoryEMI
}

// FuelExpense represents a fuel purchase record
type FuelExpense struct {
	ID          int32           `json:"id"`
	UserID      uuid.UUID       `json:"userId"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Notes       *string         `json:"notes,omitempty"`
	ReceiptPath *string         `json:"receiptPath,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func (f *FuelExpense) Validate() error {
	if f.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrAmountInvalid
	}
	if f.Date.IsZero() {
		return ErrDateRequired
	}
	if f.Notes != nil && len(*f.Notes) > MaxNotesLength {
		return ErrNotesTooLong
	}
	return nil
}

// HomeExpenseRepository defines the interface for home expense persistence
type HomeExpenseRepository interface {
	Create(expense *HomeExpense) (*HomeExpense, error)
	GetByID(userID uuid.UUID, id int32) (*HomeExpense, error)
	GetAllByUser(userID uuid.UUID) ([]*HomeExpense, error)
	UpdateReceiptPath(userID uuid.UUID, id int32, path *string) error
	Delete(userID uuid.UUID, id int32) error
}

// FuelExpenseRepository defines the interface for fuel expense persistence
type FuelExpenseRepository interface {
	Create(expense *FuelExpense) (*FuelExpense, error)
	GetByID(userID uuid.UUID, id int32) (*FuelExpense, error)
	GetAllByUser(userID uuid.UUID) ([]*FuelExpense, error)
	UpdateReceiptPath(userID uuid.UUID, id int32, path *string) error
	Delete(userID uuid.UUID, id int32) error
}
