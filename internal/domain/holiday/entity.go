// Package holiday models company-wide holidays, unique per calendar date.
package holiday

import (
	"context"
	"time"

	"github.com/hris-authority/attendance-payroll/internal/apperr"
)

type Holiday struct {
	ID          string
	Date        time.Time
	Name        string
	Description string
}

var (
	ErrDuplicate = apperr.New(apperr.DuplicateHoliday, "a holiday already exists on this date")
	ErrNotFound  = apperr.New(apperr.NotFound, "holiday not found")
)

// Repository is the persistence seam for Holiday.
type Repository interface {
	Create(ctx context.Context, h Holiday) (Holiday, error)
	Delete(ctx context.Context, id string) error
	ListInMonth(ctx context.Context, month string) ([]Holiday, error)
	GetByDate(ctx context.Context, date time.Time) (*Holiday, error)
}
