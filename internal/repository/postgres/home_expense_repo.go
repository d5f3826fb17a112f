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

// HomeExpenseRepository implements domain.HomeExpenseRepository using PostgreSQL
type HomeExpenseRepository struct {
	pool *pgxpool.Pool
}

// NewHomeExpenseRepository creates a new HomeExpenseRepository
func NewHomeExpenseRepository(pool *pgxpool.Pool) *HomeExpenseRepository {
	return &HomeExpenseRepository{pool: pool}
}

const homeExpenseColumns = "id, user_id, amount, date, category, notes, linked_emi_id, receipt_path, created_at"

// Create creates a new home expense record
func (r *HomeExpenseRepository) Create(expense *domain.HomeExpense) (*domain.HomeExpense, error) {
	amount, err := decimalToPgNumeric(expense.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO home_expenses (user_id, amount, date, category, notes, linked_emi_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+homeExpenseColumns,
		uuidToPg(expense.UserID), amount, timeToPgDate(expense.Date),
		expense.Category, stringPtrToPgText(expense.Notes), int32PtrToPgInt4(expense.LinkedEmiID),
	)
	return scanHomeExpense(row)
}

// GetByID retrieves a home expense owned by the user
func (r *HomeExpenseRepository) GetByID(userID uuid.UUID, id int32) (*domain.HomeExpense, error) {
	row := r.pool.QueryRow(context.Background(),
		"SELECT "+homeExpenseColumns+" FROM home_expenses WHERE user_id = $1 AND id = $2",
		uuidToPg(userID), id,
	)
	return scanHomeExpense(row)
}

// GetAllByUser retrieves all home expenses for a user, newest first
func (r *HomeExpenseRepository) GetAllByUser(userID uuid.UUID) ([]*domain.HomeExpense, error) {
	rows, err := r.pool.Query(context.Background(),
		"SELECT "+homeExpenseColumns+" FROM home_expenses WHERE user_id = $1 ORDER BY date DESC, id DESC",
		uuidToPg(userID),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := []*domain.HomeExpense{}
	for rows.Next() {
		expense, err := scanHomeExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	return expenses, rows.Err()
}

// UpdateReceiptPath sets or clears the stored receipt object path
func (r *HomeExpenseRepository) UpdateReceiptPath(userID uuid.UUID, id int32, path *string) error {
	tag, err := r.pool.Exec(context.Background(),
		"UPDATE home_expenses SET receipt_path = $3 WHERE user_id = $1 AND id = $2",
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

// Delete removes a home expense owned by the user
func (r *HomeExpenseRepository) Delete(userID uuid.UUID, id int32) error {
	tag, err := r.pool.Exec(context.Background(),
		"DELETE FROM home_expenses WHERE user_id = $1 AND id = $2",
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

// Helper functions

func scanHomeExpense(row pgx.Row) (*domain.HomeExpense, error) {
	expense := &domain.HomeExpense{}
	var (
		userID             pgtype.UUID
		amount             pgtype.Numeric
		date               pgtype.Date
		notes, receiptPath pgtype.Text
		linkedEmiID        pgtype.Int4
	)
	err := row.Scan(&expense.ID, &userID, &amount, &date, &expense.Category,
		&notes, &linkedEmiID, &receiptPath, &expense.CreatedAt)
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
	expense.LinkedEmiID = pgInt4ToInt32Ptr(linkedEmiID)
	expense.ReceiptPath = pgTextToStringPtr(receiptPath)
	return expense, nil
}

func int32PtrToPgInt4(v *int32) pgtype.Int4 {
	if v == nil {
		return pgtype.Int4{Valid: false}
	}
	return pgtype.Int4{Int32: *v, Valid: true}
}

func pgInt4ToInt32Ptr(v pgtype.Int4) *int32 {
	if !v.Valid {
		return nil
	}
	return &v.Int32
}
