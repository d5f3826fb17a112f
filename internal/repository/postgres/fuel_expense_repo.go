package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/arjunms/homeledger/homeledger-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FuelExpenseRepository implements domain.FuelExpenseRepository using PostgreSQL
type FuelExpenseRepository struct {
	pool *pgxpool.Pool
}

// NewFuelExpenseRepository creates a new FuelExpenseRepository
func NewFuelExpenseRepository(pool *pgxpool.Pool) *FuelExpenseRepository {
	return &FuelExpenseRepository{pool: pool}
}

const fuelExpenseColumns = "id, user_id, amount, date, notes, receipt_path, created_at"

// Create creates a new fuel expense record
func (r *FuelExpenseRepository) Create(expense *domain.FuelExpense) (*domain.FuelExpense, error) {
	amount, err := decimalToPgNumeric(expense.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO fuel_expenses (user_id, amount, date, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING `+fuelExpenseColumns,
		uuidToPg(expense.UserID), amount, timeToPgDate(expense.Date), stringPtrToPgText(expense.Notes),
	)
	return scanFuelExpense(row)
}

// GetByID retrieves a fuel expense owned by the user
func (r *FuelExpenseRepository) GetByID(userID uuid.UUID, id int32) (*domain.FuelExpense, error) {
	row := r.pool.QueryRow(context.Background(),
		"SELECT "+fuelExpenseColumns+" FROM fuel_expenses WHERE user_id = $1 AND id = $2",
		uuidToPg(userID), id,
	)
	return scanFuelExpense(row)
}

// GetAllByUser retrieves all fuel expenses for a user, newest first
func (r *FuelExpenseRepository) GetAllByUser(userID uuid.UUID) ([]*domain.FuelExpense, error) {
	rows, err := r.pool.Query(context.Background(),
		"SELECT "+fuelExpenseColumns+" FROM fuel_expenses WHERE user_id = $1 ORDER BY date DESC, id DESC",
		uuidToPg(userID),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := []*domain.FuelExpense{}
	for rows.Next() {
		expense, err := scanFuelExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	return expenses, rows.Err()
}

// UpdateReceiptPath sets or clears the stored receipt object path
func (r *FuelExpenseRepository) UpdateReceiptPath(userID uuid.UUID, id int32, path *string) error {
	tag, err := r.pool.Exec(context.Background(),
		"UPDATE fuel_expenses SET receipt_path = $3 WHERE user_id = $1 AND id = $2",
		uuidToPg(userID), id, stringPtrToPgText(path),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

// Delete removes a fuel expense owned by the user
func (r *FuelExpenseRepository) Delete(userID uuid.UUID, id int32) error {
	tag, err := r.pool.Exec(context.Background(),
		"DELETE FROM fuel_expenses WHERE user_id = $1 AND id = $2",
		uuidToPg(userID), id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

func scanFuelExpense(row pgx.Row) (*domain.FuelExpense, error) {
	expense := &domain.FuelExpense{}
	var (
		userID             pgtype.UUID
		amount             pgtype.Numeric
		date               pgtype.Date
		notes, receiptPath pgtype.Text
	)
	err := row.Scan(&expense.ID, &userID, &amount, &date, &notes, &receiptPath, &expense.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrExpenseNotFound
		}
		return nil, err
	}
	expense.UserID = uuid.UUID(userID.Bytes)
	expense.Amount = pgNumericToDecimal(amount)
	expense.Date = pgDateToTime(date)
	expense.Notes = pgTextToStringPtr(notes)
	expense.ReceiptPath = pgTextToStringPtr(receiptPath)
	return expense, nil
}
