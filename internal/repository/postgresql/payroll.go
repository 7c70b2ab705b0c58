package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hris-authority/attendance-payroll/internal/domain/payroll"
	"github.com/hris-authority/attendance-payroll/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollRepository struct {
	db *database.DB
}

// NewPayrollRepository returns a Postgres-backed payroll.Repository.
func NewPayrollRepository(db *database.DB) payroll.Repository {
	return &payrollRepository{db: db}
}

const payrollColumns = `
	id, employee_id, month, base_salary, daily_rate, total_working_days,
	present_days, half_days, absent_days, sunday_days, holiday_days, leave_days,
	net_salary, is_locked, generated_by, generated_at,
	unlocked_by, unlocked_at, unlock_reason, created_at, updated_at`

func scanPayroll(row pgx.Row) (payroll.Payroll, error) {
	var p payroll.Payroll
	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.Month, &p.BaseSalary, &p.DailyRate, &p.TotalWorkingDays,
		&p.PresentDays, &p.HalfDays, &p.AbsentDays, &p.SundayDays, &p.HolidayDays, &p.LeaveDays,
		&p.NetSalary, &p.IsLocked, &p.GeneratedBy, &p.GeneratedAt,
		&p.UnlockedBy, &p.UnlockedAt, &p.UnlockReason, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *payrollRepository) Create(ctx context.Context, p payroll.Payroll) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	query := `
		INSERT INTO payroll (
			id, employee_id, month, base_salary, daily_rate, total_working_days,
			present_days, half_days, absent_days, sunday_days, holiday_days, leave_days,
			net_salary, is_locked, generated_by, generated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
		RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		p.ID, p.EmployeeID, p.Month, p.BaseSalary, p.DailyRate, p.TotalWorkingDays,
		p.PresentDays, p.HalfDays, p.AbsentDays, p.SundayDays, p.HolidayDays, p.LeaveDays,
		p.NetSalary, p.IsLocked, p.GeneratedBy, p.GeneratedAt,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if uniqueViolation(err) {
			return payroll.Payroll{}, payroll.ErrAlreadyExists
		}
		return payroll.Payroll{}, fmt.Errorf("create payroll: %w", err)
	}
	return p, nil
}

func (r *payrollRepository) Update(ctx context.Context, p payroll.Payroll) error {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `
		UPDATE payroll SET
			present_days = $1, half_days = $2, absent_days = $3, sunday_days = $4,
			holiday_days = $5, leave_days = $6, net_salary = $7,
			is_locked = $8, unlocked_by = $9, unlocked_at = $10, unlock_reason = $11,
			updated_at = now()
		WHERE id = $12
	`, p.PresentDays, p.HalfDays, p.AbsentDays, p.SundayDays,
		p.HolidayDays, p.LeaveDays, p.NetSalary,
		p.IsLocked, p.UnlockedBy, p.UnlockedAt, p.UnlockReason, p.ID)
	if err != nil {
		return fmt.Errorf("update payroll: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrNotFound
	}
	return nil
}

func (r *payrollRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)
	_, err := q.Exec(ctx, `DELETE FROM payroll WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete payroll: %w", err)
	}
	return nil
}

func (r *payrollRepository) GetByEmployeeAndMonth(ctx context.Context, employeeID, month string) (*payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)
	row := q.QueryRow(ctx, `SELECT `+payrollColumns+` FROM payroll WHERE employee_id = $1 AND month = $2`, employeeID, month)
	p, err := scanPayroll(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get payroll by employee and month: %w", err)
	}
	return &p, nil
}

func (r *payrollRepository) ListByMonth(ctx context.Context, month string) ([]payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, `SELECT `+payrollColumns+` FROM payroll WHERE month = $1 ORDER BY employee_id`, month)
	if err != nil {
		return nil, fmt.Errorf("list payroll by month: %w", err)
	}
	defer rows.Close()

	var out []payroll.Payroll
	for rows.Next() {
		p, err := scanPayroll(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payroll: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *payrollRepository) ExistsForMonth(ctx context.Context, month string) (bool, error) {
	q := GetQuerier(ctx, r.db)
	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM payroll WHERE month = $1)`, month).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check payroll exists for month: %w", err)
	}
	return exists, nil
}
