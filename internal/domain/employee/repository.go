package employee

import (
	"context"
	"time"
)

// Repository is the persistence seam for the Employee aggregate.
type Repository interface {
	Create(ctx context.Context, e Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByEmail(ctx context.Context, email string) (Employee, error)
	// ListActive returns up to limit active employees, ordered by ID so
	// repeated reconciliation runs see the same set.
	ListActive(ctx context.Context, limit int) ([]Employee, error)
	// List returns every employee up to limit, active or not — used by
	// generate-payroll, which must still backfill inactive employees that
	// have attendance in the target month.
	List(ctx context.Context, limit int) ([]Employee, error)

	// SetDeviceBinding atomically sets all three device-binding fields.
	// It fails with ErrDeviceAlreadyRegistered if a device is already
	// bound.
	SetDeviceBinding(ctx context.Context, employeeID, publicKeyPEM string, fingerprint *string, registeredAt time.Time) error
	// ClearDeviceBinding atomically clears all three device-binding
	// fields.
	ClearDeviceBinding(ctx context.Context, employeeID string) error
}
