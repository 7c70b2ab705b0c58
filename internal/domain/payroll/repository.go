package payroll

import "context"

// Repository is the persistence seam for the Payroll aggregate. The
// (EmployeeID, Month) pair is enforced unique by the store's index.
type Repository interface {
	Create(ctx context.Context, p Payroll) (Payroll, error)
	Update(ctx context.Context, p Payroll) error
	Delete(ctx context.Context, id string) error
	GetByEmployeeAndMonth(ctx context.Context, employeeID, month string) (*Payroll, error)
	ListByMonth(ctx context.Context, month string) ([]Payroll, error)
	ExistsForMonth(ctx context.Context, month string) (bool, error)
}
