// Package apperr defines the authority's closed taxonomy of business
// failure codes. Handlers never return a bare string as a failure
// reason; every business error carries one of these codes so the
// response envelope's `code` field is always one of a known set.
package apperr

import "errors"

// Code is a closed enumeration of business failure kinds.
type Code string

const (
	AuthRequired          Code = "AUTH_REQUIRED"
	AdminRequired         Code = "ADMIN_REQUIRED"
	DeviceNotRegistered   Code = "DEVICE_NOT_REGISTERED"
	InvalidSignature      Code = "INVALID_SIGNATURE"
	DuplicateCheckIn      Code = "DUPLICATE_CHECK_IN"
	DuplicateCheckOut     Code = "DUPLICATE_CHECK_OUT"
	LateCheckIn           Code = "LATE_CHECK_IN"
	CheckoutWindowBlocked Code = "CHECKOUT_WINDOW_BLOCKED"
	AttendanceLocked      Code = "ATTENDANCE_LOCKED"
	MissingReason         Code = "MISSING_REASON"
	DuplicateHoliday      Code = "DUPLICATE_HOLIDAY"
	LocationInvalid       Code = "LOCATION_INVALID"
	ValidationError       Code = "VALIDATION_ERROR"
	NotFound              Code = "NOT_FOUND"
	AlreadyExists         Code = "ALREADY_EXISTS"
	InvalidAction         Code = "INVALID_ACTION"
	MissingCheckIn        Code = "MISSING_CHECK_IN"
)

// Error is a business failure: expected, user-facing, never a bug report.
// It is the only error type the action router treats as "safe to show".
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string { return e.Message }

// New builds a business error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// CodeOf extracts the Code carried by err, if any.
func CodeOf(err error) (Code, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return "", false
}
