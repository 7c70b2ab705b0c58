package payroll

import "github.com/hris-authority/attendance-payroll/internal/apperr"

var (
	ErrAlreadyExists  = apperr.New(apperr.AlreadyExists, "payroll already generated for this month")
	ErrNotFound       = apperr.New(apperr.NotFound, "no payroll found for this month")
	ErrMissingReason  = apperr.New(apperr.MissingReason, "reason must be at least 10 characters")
	ErrInvalidPeriod  = apperr.New(apperr.ValidationError, "month must be in YYYY-MM format")
)
