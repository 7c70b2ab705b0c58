package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hris-authority/attendance-payroll/internal/domain/employee"
	"github.com/hris-authority/attendance-payroll/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepository struct {
	db *database.DB
}

// NewEmployeeRepository returns a Postgres-backed employee.Repository.
func NewEmployeeRepository(db *database.DB) employee.Repository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	id, name, email, role, is_active, salary_monthly, join_date,
	device_public_key, device_fingerprint, device_registered_at,
	created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.Name, &e.Email, &e.Role, &e.IsActive, &e.SalaryMonthly, &e.JoinDate,
		&e.DevicePublicKey, &e.DeviceFingerprint, &e.DeviceRegisteredAt,
		&e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

func (r *employeeRepository) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	query := `
		INSERT INTO employees (id, name, email, role, is_active, salary_monthly, join_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query, e.ID, e.Name, e.Email, e.Role, e.IsActive, e.SalaryMonthly, e.JoinDate).
		Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if uniqueViolation(err) {
			return employee.Employee{}, employee.ErrEmailExists
		}
		return employee.Employee{}, fmt.Errorf("create employee: %w", err)
	}
	return e, nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)
	row := q.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id)
	e, err := scanEmployee(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("get employee by id: %w", err)
	}
	return e, nil
}

func (r *employeeRepository) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)
	row := q.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE email = $1`, email)
	e, err := scanEmployee(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("get employee by email: %w", err)
	}
	return e, nil
}

func (r *employeeRepository) ListActive(ctx context.Context, limit int) ([]employee.Employee, error) {
	return r.list(ctx, "WHERE is_active = true", limit)
}

func (r *employeeRepository) List(ctx context.Context, limit int) ([]employee.Employee, error) {
	return r.list(ctx, "", limit)
}

func (r *employeeRepository) list(ctx context.Context, where string, limit int) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + employeeColumns + ` FROM employees ` + where + ` ORDER BY id LIMIT $1`
	rows, err := q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var out []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *employeeRepository) SetDeviceBinding(ctx context.Context, employeeID, publicKeyPEM string, fingerprint *string, registeredAt time.Time) error {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `
		UPDATE employees
		SET device_public_key = $1, device_fingerprint = $2, device_registered_at = $3, updated_at = now()
		WHERE id = $4 AND device_public_key IS NULL
	`, publicKeyPEM, fingerprint, registeredAt, employeeID)
	if err != nil {
		return fmt.Errorf("set device binding: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrDeviceAlreadyRegistered
	}
	return nil
}

func (r *employeeRepository) ClearDeviceBinding(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `
		UPDATE employees
		SET device_public_key = NULL, device_fingerprint = NULL, device_registered_at = NULL, updated_at = now()
		WHERE id = $1
	`, employeeID)
	if err != nil {
		return fmt.Errorf("clear device binding: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}
