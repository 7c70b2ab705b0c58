package attendance

import "github.com/hris-authority/attendance-payroll/internal/apperr"

var (
	ErrLateCheckIn           = apperr.New(apperr.LateCheckIn, "check-in window has closed for today")
	ErrCheckoutWindowBlocked = apperr.New(apperr.CheckoutWindowBlocked, "check-out is blocked during the 4:00-5:25 PM window")
	ErrInvalidSignature      = apperr.New(apperr.InvalidSignature, "signature does not match the registered device key")
	ErrDuplicateCheckIn      = apperr.New(apperr.DuplicateCheckIn, "already checked in today")
	ErrDuplicateCheckOut     = apperr.New(apperr.DuplicateCheckOut, "already checked out today")
	ErrMissingCheckIn        = apperr.New(apperr.MissingCheckIn, "no check-in recorded for today")
	ErrAttendanceNotFound    = apperr.New(apperr.NotFound, "attendance record not found")
	ErrAttendanceLocked      = apperr.New(apperr.AttendanceLocked, "attendance is locked by a generated payroll")
	ErrMissingReason         = apperr.New(apperr.MissingReason, "reason must be at least 10 characters")
	ErrNoModifications       = apperr.New(apperr.ValidationError, "no modification fields supplied")
)
