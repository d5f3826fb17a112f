package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arjunms/homeledger/homeledger-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// IncomeRepository implements domain.IncomeRepository using PostgreSQL
type IncomeRepository struct {
	pool *pgxpool.Pool
}

// NewIncomeRepository creates a new IncomeRepository
func NewIncomeRepository(pool *pgxpool.Pool) *IncomeRepository {
	return &IncomeRepository{pool: pool}
}

// Create creates a new income record
func (r *IncomeRepository) Create(income *domain.Income) (*domain.Income, error) {
	amount, err := decimalToPgNumeric(income.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO incomes (user_id, amount, date)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, amount, date, created_at`,
		uuidToPg(income.UserID), amount, timeToPgDate(income.Date),
	)

	return scanIncome(row)
}

// GetAllByUser retrieves all income records for a user, newest first
func (r *IncomeRepository) GetAllByUser(userID uuid.UUID) ([]*domain.Income, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT id, user_id, amount, date, created_at
		FROM incomes
		WHERE user_id = $1
		ORDER BY date DESC, id DESC`,
		uuidToPg(userID),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	incomes := []*domain.Income{}
	for rows.Next() {
		income, err := scanIncome(rows)
		if err != nil {
			return nil, err
		}
		incomes = append(incomes, income)
	}
	return incomes, rows.Err()
}

func scanIncome(row pgx.Row) (*domain.Income, error) {
	income := &domain.Income{}
	var (
		userID pgtype.UUID
		amount pgtype.Numeric
		date   pgtype.Date
	)
	err := row.Scan(&income.ID, &userID, &amount, &date, &income.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrIncomeNotFound
		}
		return nil, err
	}
	income.UserID = uuid.UUID(userID.Bytes)
	income.Amount = pgNumericToDecimal(amount)
	income.Date = pgDateToTime(date)
	return income, nil
}

// Delete removes an income record owned by the user
func (r *IncomeRepository) Delete(userID uuid.UUID, id int32) error {
	tag, err := r.pool.Exec(context.Background(),
		"DELETE FROM incomes WHERE user_id = $1 AND id = $2",
		uuidToPg(userID), id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrIncomeNotFound
	}
	return nil
}

// Helper functions

func uuidToPg(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

func decimalToPgNumeric(d decimal.Decimal) (pgtype.Numeric, error) {
	var num pgtype.Numeric
	if err := num.Scan(d.String()); err != nil {
		return pgtype.Numeric{}, err
	}
	return num, nil
}

func pgNumericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}

func timeToPgDate(t time.Time) pgtype.Date {
	return pgtype.Date{Time: t, Valid: true}
}

func pgDateToTime(d pgtype.Date) time.Time {
	if !d.Valid {
		return time.Time{}
	}
	return d.Time
}
