package attendance

import "time"

// Status is a closed enumeration of six variants. Both the attendance
// engine and the payroll engine branch exhaustively on it; never treat
// it as a free string.
type Status string

const (
	StatusPresent Status = "present"
	StatusHalfDay Status = "half_day"
	StatusAbsent  Status = "absent"
	StatusSunday  Status = "sunday"
	StatusHoliday Status = "holiday"
	StatusLeave   Status = "leave"
)

// Attendance is unique per (EmployeeID, Date).
type Attendance struct {
	ID         string
	EmployeeID string
	Date       time.Time // calendar date, office timezone, truncated to midnight
	Status     Status

	CheckInTime  *time.Time
	CheckOutTime *time.Time

	CheckInLat      *float64
	CheckInLng      *float64
	CheckInAccuracy *float64

	CheckOutLat      *float64
	CheckOutLng      *float64
	CheckOutAccuracy *float64

	WorkHours float64

	// IsLocationFlagged is set by the geofence evaluator; it never blocks
	// the action, only records the warning.
	IsLocationFlagged bool

	// IsAutoCalculated is true iff no employee/admin edit has touched this
	// row yet. It flips to false on any admin modification; rows created
	// by the payroll backfill start with it true (see payroll
	// generate-payroll). Existing rows are not reset by the backfill.
	IsAutoCalculated bool

	// IsLocked mirrors the covering payroll's lock state; the payroll
	// service (service/payroll GeneratePayroll and UnlockPayroll) sets and
	// clears it across the employee's month.
	IsLocked bool

	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Modification is an audit record of an admin edit to an Attendance row.
type Modification struct {
	ID            string
	AttendanceID  string
	EmployeeID    string
	ModifiedBy    string
	ModifiedAt    time.Time
	Reason        string
	FieldChanged  string // comma-separated field names
	OriginalValue string // serialized snapshot
	NewValue      string // serialized snapshot
}

// DeriveStatus applies the work-hour band rule (invariant 5 of the
// attendance data model): under 4 hours is absent, 4 up to 6 is a half
// day, 6 or more is present.
func DeriveStatus(workHours float64) Status {
	switch {
	case workHours < 4:
		return StatusAbsent
	case workHours < 6:
		return StatusHalfDay
	default:
		return StatusPresent
	}
}
