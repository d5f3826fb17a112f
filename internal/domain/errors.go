package domain

import "errors"

// Domain errors
var (
	ErrNotFound      = errors.New("resource not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrInternalError = errors.New("internal error")
	ErrUserNotFound  = errors.New("user not found")

	ErrAmountInvalid    = errors.New("amount must be positive")
	ErrDateRequired     = errors.New("date is required")
	ErrNotesTooLong     = errors.New("notes exceed maximum length")
	ErrMonthTokenFormat = errors.New("month must be in YYYY-MM format")
)

// Validation constants
const (
	MaxNotesLength = 500
)
