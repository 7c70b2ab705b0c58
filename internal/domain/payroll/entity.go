package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payroll is unique per (EmployeeID, Month), where Month is "YYYY-MM".
type Payroll struct {
	ID         string
	EmployeeID string
	Month      string // YYYY-MM

	BaseSalary       decimal.Decimal
	DailyRate        decimal.Decimal // BaseSalary / days-in-calendar-month
	TotalWorkingDays int             // billable days for this employee this month

	PresentDays int
	HalfDays    int
	AbsentDays  int
	SundayDays  int
	HolidayDays int
	LeaveDays   int

	NetSalary decimal.Decimal

	IsLocked     bool
	GeneratedBy  string
	GeneratedAt  time.Time
	UnlockedBy   *string
	UnlockedAt   *time.Time
	UnlockReason *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PaidDays applies the rule in the glossary: present/Sunday/holiday/leave
// each count 1, half-day counts 0.5, absent counts 0.
func (p Payroll) PaidDays() decimal.Decimal {
	whole := p.PresentDays + p.SundayDays + p.HolidayDays + p.LeaveDays
	return decimal.NewFromInt(int64(whole)).Add(
		decimal.NewFromFloat(0.5).Mul(decimal.NewFromInt(int64(p.HalfDays))),
	)
}

// DayCounterField names the six day-type counters by the Status value
// they accumulate. The counter adjustment on an admin modification
// switches on the attendance Status directly and does not use this type.
type DayCounterField string

const (
	CounterPresent DayCounterField = "present"
	CounterHalfDay DayCounterField = "half_day"
	CounterAbsent  DayCounterField = "absent"
	CounterSunday  DayCounterField = "sunday"
	CounterHoliday DayCounterField = "holiday"
	CounterLeave   DayCounterField = "leave"
)
