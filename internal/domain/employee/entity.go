package employee

import "time"

// Role is a closed enumeration; never represent it as a free string.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

// Employee is identified by an opaque user id issued by the external
// identity directory (see internal/identity).
type Employee struct {
	ID            string
	Name          string
	Email         string
	Role          Role
	IsActive      bool
	SalaryMonthly int64
	JoinDate      time.Time

	// Device binding. All three are nil iff no device is bound; they are
	// set together and cleared together (see attendance.RegisterDevice
	// and attendance.ResetDevice).
	DevicePublicKey    *string
	DeviceFingerprint  *string
	DeviceRegisteredAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasBoundDevice reports whether the employee has a registered device.
func (e *Employee) HasBoundDevice() bool {
	return e.DevicePublicKey != nil
}
