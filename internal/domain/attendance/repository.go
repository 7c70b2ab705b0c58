package attendance

import (
	"context"
	"time"
)

// Repository is the persistence seam for the Attendance aggregate. The
// (employeeID, date) pair is enforced unique by the store's index; Create
// must surface a conflict as ErrDuplicateCheckIn rather than silently
// overwriting.
type Repository interface {
	Create(ctx context.Context, a Attendance) (Attendance, error)
	Update(ctx context.Context, a Attendance) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Attendance, error)
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)
	// ListByEmployeeAndMonth returns every attendance row for the employee
	// whose date falls in the given month (YYYY-MM), keyed by day-of-month.
	ListByEmployeeAndMonth(ctx context.Context, employeeID string, month string) (map[int]Attendance, error)
	// ListByMonth returns every attendance row in a month across all
	// employees, for get-payroll-report hydration.
	ListByMonth(ctx context.Context, month string) ([]Attendance, error)
	// SetLockForEmployeeMonth flips IsLocked for every attendance row of
	// employeeID whose date falls in month.
	SetLockForEmployeeMonth(ctx context.Context, employeeID, month string, locked bool) error
	// DeleteAutoCalculatedForEmployeeMonth deletes every attendance row of
	// employeeID in month where IsAutoCalculated is true, returning the
	// count removed.
	DeleteAutoCalculatedForEmployeeMonth(ctx context.Context, employeeID, month string) (int, error)

	CreateModification(ctx context.Context, m Modification) error
}
