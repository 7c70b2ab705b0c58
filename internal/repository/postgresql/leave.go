package postgresql

import (
	"context"
	"fmt"

	"github.com/hris-authority/attendance-payroll/internal/domain/leave"
	"github.com/hris-authority/attendance-payroll/internal/pkg/database"
)

type leaveRepository struct {
	db *database.DB
}

// NewLeaveRepository returns a Postgres-backed leave.Repository.
func NewLeaveRepository(db *database.DB) leave.Repository {
	return &leaveRepository{db: db}
}

func (r *leaveRepository) ListApprovedInMonth(ctx context.Context, month string) (map[string]map[int]leave.Leave, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, `
		SELECT id, employee_id, date, status
		FROM leaves
		WHERE status = $1 AND to_char(date, 'YYYY-MM') = $2
	`, leave.StatusApproved, month)
	if err != nil {
		return nil, fmt.Errorf("list approved leaves in month: %w", err)
	}
	defer rows.Close()

	out := make(map[string]map[int]leave.Leave)
	for rows.Next() {
		var l leave.Leave
		if err := rows.Scan(&l.ID, &l.EmployeeID, &l.Date, &l.Status); err != nil {
			return nil, fmt.Errorf("scan leave: %w", err)
		}
		if out[l.EmployeeID] == nil {
			out[l.EmployeeID] = make(map[int]leave.Leave)
		}
		out[l.EmployeeID][l.Date.Day()] = l
	}
	return out, rows.Err()
}
