package employee

import "github.com/hris-authority/attendance-payroll/internal/apperr"

var (
	ErrEmployeeNotFound          = apperr.New(apperr.NotFound, "employee not found")
	ErrEmailExists               = apperr.New(apperr.AlreadyExists, "email already registered")
	ErrDeviceAlreadyRegistered   = apperr.New(apperr.AlreadyExists, "device already registered for this employee")
	ErrDeviceNotRegistered       = apperr.New(apperr.DeviceNotRegistered, "no device registered for this employee")
	ErrInvalidPublicKey          = apperr.New(apperr.ValidationError, "public key does not parse as an RSA key")
)
