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

// EmiRepository implements domain.EmiRepository using PostgreSQL
type EmiRepository struct {
	pool *pgxpool.Pool
}

// NewEmiRepository creates a new EmiRepository
func NewEmiRepository(pool *pgxpool.Pool) *EmiRepository {
	return &EmiRepository{pool: pool}
}

const emiColumns = "id, user_id, name, vehicle_type, monthly_amount, total_months, start_date, paid_months, created_at, updated_at"

// Create creates a new EMI loan record
func (r *EmiRepository) Create(emi *domain.Emi) (*domain.Emi, error) {
	amount, err := decimalToPgNumeric(emi.MonthlyAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid monthly amount: %w", err)
	}

	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO emis (user_id, name, vehicle_type, monthly_amount, total_months, start_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+emiColumns,
		uuidToPg(emi.UserID), emi.Name, emi.VehicleType, amount, emi.TotalMonths, timeToPgDate(emi.StartDate),
	)
	return scanEmi(row)
}

// GetByID retrieves an EMI owned by the user
func (r *EmiRepository) GetByID(userID uuid.UUID, id int32) (*domain.Emi, error) {
	row := r.pool.QueryRow(context.Background(),
		"SELECT "+emiColumns+" FROM emis WHERE user_id = $1 AND id = $2",
		uuidToPg(userID), id,
	)
	return scanEmi(row)
}

// GetAllByUser retrieves all EMIs for a user, oldest loan first
func (r *EmiRepository) GetAllByUser(userID uuid.UUID) ([]*domain.Emi, error) {
	rows, err := r.pool.Query(context.Background(),
		"SELECT "+emiColumns+" FROM emis WHERE user_id = $1 ORDER BY start_date ASC, id ASC",
		uuidToPg(userID),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	emis := []*domain.Emi{}
	for rows.Next() {
		emi, err := scanEmi(rows)
		if err != nil {
			return nil, err
		}
		emis = append(emis, emi)
	}
	return emis, rows.Err()
}

// AddPaidMonth marks a month token as paid. Adding a token that is
// already present leaves the set unchanged.
func (r *EmiRepository) AddPaidMonth(userID uuid.UUID, id int32, token string) (*domain.Emi, error) {
	row := r.pool.QueryRow(context.Background(), `
		UPDATE emis
		SET paid_months = CASE
				WHEN $3 = ANY(paid_months) THEN paid_months
				ELSE array_append(paid_months, $3)
			END,
			updated_at = now()
		WHERE user_id = $1 AND id = $2
		RETURNING `+emiColumns,
		uuidToPg(userID), id, token,
	)
	return scanEmi(row)
}

// RemovePaidMonth unmarks a month token. Removing an absent token
// leaves the set unchanged.
func (r *EmiRepository) RemovePaidMonth(userID uuid.UUID, id int32, token string) (*domain.Emi, error) {
	row := r.pool.QueryRow(context.Background(), `
		UPDATE emis
		SET paid_months = array_remove(paid_months, $3),
			updated_at = now()
		WHERE user_id = $1 AND id = $2
		RETURNING `+emiColumns,
		uuidToPg(userID), id, token,
	)
	return scanEmi(row)
}

// Delete removes an EMI owned by the user
func (r *EmiRepository) Delete(userID uuid.UUID, id int32) error {
	tag, err := r.pool.Exec(context.Background(),
		"DELETE FROM emis WHERE user_id = $1 AND id = $2",
		uuidToPg(userID), id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEmiNotFound
	}
	return nil
}

func scanEmi(row pgx.Row) (*domain.Emi, error) {
	emi := &domain.Emi{}
	var (
		userID    pgtype.UUID
		amount    pgtype.Numeric
		startDate pgtype.Date
	)
	err := row.Scan(&emi.ID, &userID, &emi.Name, &emi.VehicleType, &amount,
		&emi.TotalMonths, &startDate, &emi.PaidMonths, &emi.CreatedAt, &emi.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEmiNotFound
		}
		return nil, err
	}
	emi.UserID = uuid.UUID(userID.Bytes)
	emi.MonthlyAmount = pgNumericToDecimal(amount)
	emi.StartDate = pgDateToTime(startDate)
	if emi.PaidMonths == nil {
		emi.PaidMonths = []string{}
	}
	return emi, nil
}
