package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntryType discriminates the record kind behind a ledger entry
type LedgerEntryType string

const (
	LedgerTypeIncome LedgerEntryType = "income"
	LedgerTypeHome   LedgerEntryType = "home"
	LedgerTypeFuel   LedgerEntryType = "fuel"
	LedgerTypeEmi    LedgerEntryType = "emi"
)

// LedgerFilter selects which record kinds appear in the ledger
type LedgerFilter string

const (
	FilterAll    LedgerFilter = "all"
	FilterIncome LedgerFilter = "income"
	FilterHome   LedgerFilter = "home"
	FilterFuel   LedgerFilter = "fuel"
	FilterEmi    LedgerFilter = "emi"
)

// IsValid reports whether f is a known ledger filter
func (f LedgerFilter) IsValid() bool {
	switch f {
	case FilterAll, FilterIncome, FilterHome, FilterFuel, FilterEmi:
		return true
	}
	return false
}

// LedgerEntry is the unified read-only view over income, home expense and
// fuel expense records. It is materialized fresh on every read and never
// persisted. A home expense with the EMI category surfaces as LedgerTypeEmi.
type LedgerEntry struct {
	ID       int32           `json:"id"`
	Type     LedgerEntryType `json:"type"`
	Amount   decimal.Decimal `json:"amount"`
	Date     time.Time       `json:"date"`
	Category string          `json:"category,omitempty"`
	Notes    *string         `json:"notes,omitempty"`
}

// DateRange is an inclusive [From, To] window; either bound may be nil
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// Contains reports whether d falls within the range. A nil bound leaves
// that side unconstrained; boundary dates are included.
func (r DateRange) Contains(d time.Time) bool {
	if r.From != nil && d.Before(*r.From) {
		return false
	}
	if r.To != nil && d.After(*r.To) {
		return false
	}
	return true
}
