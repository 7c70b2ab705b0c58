package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hris-authority/attendance-payroll/internal/domain/attendance"
	"github.com/hris-authority/attendance-payroll/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation reports whether err is a Postgres unique_violation
// (SQLSTATE 23505), the signal the store uses to enforce the
// (employeeId, date) attendance index.
func uniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type attendanceRepository struct {
	db *database.DB
}

// NewAttendanceRepository returns a Postgres-backed attendance.Repository.
func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	id, employee_id, date, status,
	check_in_time, check_out_time,
	check_in_lat, check_in_lng, check_in_accuracy,
	check_out_lat, check_out_lng, check_out_accuracy,
	work_hours, is_location_flagged, is_auto_calculated, is_locked, notes,
	created_at, updated_at`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var a attendance.Attendance
	err := row.Scan(
		&a.ID, &a.EmployeeID, &a.Date, &a.Status,
		&a.CheckInTime, &a.CheckOutTime,
		&a.CheckInLat, &a.CheckInLng, &a.CheckInAccuracy,
		&a.CheckOutLat, &a.CheckOutLng, &a.CheckOutAccuracy,
		&a.WorkHours, &a.IsLocationFlagged, &a.IsAutoCalculated, &a.IsLocked, &a.Notes,
		&a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

func (r *attendanceRepository) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	if a.ID == "" {
		a.ID = uuid.New().String()
	}

	query := `
		INSERT INTO attendance (
			id, employee_id, date, status,
			check_in_time, check_out_time,
			check_in_lat, check_in_lng, check_in_accuracy,
			check_out_lat, check_out_lng, check_out_accuracy,
			work_hours, is_location_flagged, is_auto_calculated, is_locked, notes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17
		)
		RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		a.ID, a.EmployeeID, a.Date, a.Status,
		a.CheckInTime, a.CheckOutTime,
		a.CheckInLat, a.CheckInLng, a.CheckInAccuracy,
		a.CheckOutLat, a.CheckOutLng, a.CheckOutAccuracy,
		a.WorkHours, a.IsLocationFlagged, a.IsAutoCalculated, a.IsLocked, a.Notes,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if uniqueViolation(err) {
			return attendance.Attendance{}, attendance.ErrDuplicateCheckIn
		}
		return attendance.Attendance{}, fmt.Errorf("create attendance: %w", err)
	}
	return a, nil
}

func (r *attendanceRepository) Update(ctx context.Context, a attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance SET
			status = $1,
			check_in_time = $2, check_out_time = $3,
			check_in_lat = $4, check_in_lng = $5, check_in_accuracy = $6,
			check_out_lat = $7, check_out_lng = $8, check_out_accuracy = $9,
			work_hours = $10, is_location_flagged = $11, is_auto_calculated = $12,
			is_locked = $13, notes = $14, updated_at = now()
		WHERE id = $15
	`
	tag, err := q.Exec(ctx, query,
		a.Status,
		a.CheckInTime, a.CheckOutTime,
		a.CheckInLat, a.CheckInLng, a.CheckInAccuracy,
		a.CheckOutLat, a.CheckOutLng, a.CheckOutAccuracy,
		a.WorkHours, a.IsLocationFlagged, a.IsAutoCalculated,
		a.IsLocked, a.Notes, a.ID,
	)
	if err != nil {
		return fmt.Errorf("update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

func (r *attendanceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)
	_, err := q.Exec(ctx, `DELETE FROM attendance WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete attendance: %w", err)
	}
	return nil
}

func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)
	row := q.QueryRow(ctx, `SELECT `+attendanceColumns+` FROM attendance WHERE id = $1`, id)
	a, err := scanAttendance(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("get attendance by id: %w", err)
	}
	return a, nil
}

func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)
	row := q.QueryRow(ctx, `SELECT `+attendanceColumns+` FROM attendance WHERE employee_id = $1 AND date = $2`, employeeID, date)
	a, err := scanAttendance(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get attendance by employee and date: %w", err)
	}
	return &a, nil
}

func (r *attendanceRepository) ListByEmployeeAndMonth(ctx context.Context, employeeID string, month string) (map[int]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, `
		SELECT `+attendanceColumns+`
		FROM attendance
		WHERE employee_id = $1 AND to_char(date, 'YYYY-MM') = $2
	`, employeeID, month)
	if err != nil {
		return nil, fmt.Errorf("list attendance by employee and month: %w", err)
	}
	defer rows.Close()

	result := make(map[int]attendance.Attendance)
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		result[a.Date.Day()] = a
	}
	return result, rows.Err()
}

func (r *attendanceRepository) ListByMonth(ctx context.Context, month string) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, `
		SELECT `+attendanceColumns+`
		FROM attendance
		WHERE to_char(date, 'YYYY-MM') = $1
		ORDER BY employee_id, date
	`, month)
	if err != nil {
		return nil, fmt.Errorf("list attendance by month: %w", err)
	}
	defer rows.Close()

	var out []attendance.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *attendanceRepository) SetLockForEmployeeMonth(ctx context.Context, employeeID, month string, locked bool) error {
	q := GetQuerier(ctx, r.db)
	_, err := q.Exec(ctx, `
		UPDATE attendance SET is_locked = $1, updated_at = now()
		WHERE employee_id = $2 AND to_char(date, 'YYYY-MM') = $3
	`, locked, employeeID, month)
	if err != nil {
		return fmt.Errorf("set attendance lock: %w", err)
	}
	return nil
}

func (r *attendanceRepository) DeleteAutoCalculatedForEmployeeMonth(ctx context.Context, employeeID, month string) (int, error) {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `
		DELETE FROM attendance
		WHERE employee_id = $1 AND to_char(date, 'YYYY-MM') = $2 AND is_auto_calculated = true
	`, employeeID, month)
	if err != nil {
		return 0, fmt.Errorf("delete auto-calculated attendance: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func (r *attendanceRepository) CreateModification(ctx context.Context, m attendance.Modification) error {
	q := GetQuerier(ctx, r.db)
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	_, err := q.Exec(ctx, `
		INSERT INTO attendance_modifications (
			id, attendance_id, employee_id, modified_by, modified_at,
			reason, field_changed, original_value, new_value
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, m.ID, m.AttendanceID, m.EmployeeID, m.ModifiedBy, m.ModifiedAt,
		m.Reason, m.FieldChanged, m.OriginalValue, m.NewValue)
	if err != nil {
		return fmt.Errorf("create attendance modification: %w", err)
	}
	return nil
}
