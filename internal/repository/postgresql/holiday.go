package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hris-authority/attendance-payroll/internal/domain/holiday"
	"github.com/hris-authority/attendance-payroll/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type holidayRepository struct {
	db *database.DB
}

// NewHolidayRepository returns a Postgres-backed holiday.Repository.
func NewHolidayRepository(db *database.DB) holiday.Repository {
	return &holidayRepository{db: db}
}

func (r *holidayRepository) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	_, err := q.Exec(ctx, `
		INSERT INTO holidays (id, date, name, description) VALUES ($1, $2, $3, $4)
	`, h.ID, h.Date, h.Name, h.Description)
	if err != nil {
		if uniqueViolation(err) {
			return holiday.Holiday{}, holiday.ErrDuplicate
		}
		return holiday.Holiday{}, fmt.Errorf("create holiday: %w", err)
	}
	return h, nil
}

func (r *holidayRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `DELETE FROM holidays WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete holiday: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return holiday.ErrNotFound
	}
	return nil
}

func (r *holidayRepository) ListInMonth(ctx context.Context, month string) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, `
		SELECT id, date, name, description FROM holidays WHERE to_char(date, 'YYYY-MM') = $1
	`, month)
	if err != nil {
		return nil, fmt.Errorf("list holidays in month: %w", err)
	}
	defer rows.Close()

	var out []holiday.Holiday
	for rows.Next() {
		var h holiday.Holiday
		if err := rows.Scan(&h.ID, &h.Date, &h.Name, &h.Description); err != nil {
			return nil, fmt.Errorf("scan holiday: %w", err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *holidayRepository) GetByDate(ctx context.Context, date time.Time) (*holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)
	var h holiday.Holiday
	err := q.QueryRow(ctx, `SELECT id, date, name, description FROM holidays WHERE date = $1`, date).
		Scan(&h.ID, &h.Date, &h.Name, &h.Description)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get holiday by date: %w", err)
	}
	return &h, nil
}
