package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents the type of event (created, updated, deleted)
type EventType string

const (
	EventTypeCreated EventType = "created"
	EventTypeUpdated EventType = "updated"
	EventTypeDeleted EventType = "deleted"
)

// EntityType represents the record collection the event is about
type EntityType string

const (
	EntityTypeIncome      EntityType = "income"
	EntityTypeHomeExpense EntityType = "home_expense"
	EntityTypeFuelExpense EntityType = "fuel_expense"
	EntityTypeEmi         EntityType = "emi"
)

// Event represents a WebSocket event message sent to clients.
// Clients treat any event as an invalidation signal and re-fetch the
// affected collection; the server never pushes recomputed aggregates.
type Event struct {
	Type      string      `json:"type"`      // Combined type e.g. "income.created"
	Entity    EntityType  `json:"entity"`    // Entity type e.g. "income"
	Payload   interface{} `json:"payload"`   // Full record data (or the deleted record's id)
	Timestamp time.Time   `json:"timestamp"` // Event timestamp
}

// NewEvent creates a new event with the given type, entity, and payload
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// IncomeCreated creates an income.created event
func IncomeCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeIncome, payload)
}

// IncomeDeleted creates an income.deleted event
func IncomeDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeIncome, payload)
}

// HomeExpenseCreated creates a home_expense.created event
func HomeExpenseCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeHomeExpense, payload)
}

// HomeExpenseUpdated creates a home_expense.updated event
func HomeExpenseUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeHomeExpense, payload)
}

// HomeExpenseDeleted creates a home_expense.deleted event
func HomeExpenseDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeHomeExpense, payload)
}

// FuelExpenseCreated creates a fuel_expense.created event
func FuelExpenseCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeFuelExpense, payload)
}

// FuelExpenseUpdated creates a fuel_expense.updated event
func FuelExpenseUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeFuelExpense, payload)
}

// FuelExpenseDeleted creates a fuel_expense.deleted event
func FuelExpenseDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeFuelExpense, payload)
}

// EmiCreated creates an emi.created event
func EmiCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeEmi, payload)
}

// EmiUpdated creates an emi.updated event (paid-month toggles included)
func EmiUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeEmi, payload)
}

// EmiDeleted creates an emi.deleted event
func EmiDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeEmi, payload)
}
