// Package payroll implements the monthly payroll run: backfilling missing
// attendance, computing pay, and propagating the lock to attendance.
package payroll

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	attendancedomain "github.com/hris-authority/attendance-payroll/internal/domain/attendance"
	"github.com/hris-authority/attendance-payroll/internal/domain/audit"
	"github.com/hris-authority/attendance-payroll/internal/domain/employee"
	"github.com/hris-authority/attendance-payroll/internal/domain/holiday"
	"github.com/hris-authority/attendance-payroll/internal/domain/leave"
	payrolldomain "github.com/hris-authority/attendance-payroll/internal/domain/payroll"
	"github.com/hris-authority/attendance-payroll/internal/clock"
	"github.com/hris-authority/attendance-payroll/internal/signature"
)

// maxEmployeesPerRun bounds the single-office workforce this run walks,
// matching the "up to 100" load-in-parallel ceiling.
const maxEmployeesPerRun = 100

// Service is the Payroll Engine (C6).
type Service struct {
	clock       clock.Clock
	employees   employee.Repository
	attendances attendancedomain.Repository
	payrolls    payrolldomain.Repository
	holidays    holiday.Repository
	leaves      leave.Repository
	auditLog    audit.Writer
}

// NewService builds the Payroll Engine from its collaborators.
func NewService(
	c clock.Clock,
	employees employee.Repository,
	attendances attendancedomain.Repository,
	payrolls payrolldomain.Repository,
	holidays holiday.Repository,
	leaves leave.Repository,
	auditLog audit.Writer,
) *Service {
	return &Service{
		clock:       c,
		employees:   employees,
		attendances: attendances,
		payrolls:    payrolls,
		holidays:    holidays,
		leaves:      leaves,
		auditLog:    auditLog,
	}
}

// GenerateSummary is the aggregate audit payload returned by GeneratePayroll.
type GenerateSummary struct {
	Month          string
	EmployeesPaid  int
	DaysBackfilled int
	TotalNetSalary decimal.Decimal
}

// GeneratePayroll implements §4.6 generate-payroll.
func (s *Service) GeneratePayroll(ctx context.Context, callerID, month string) (GenerateSummary, error) {
	if !validMonth(month) {
		return GenerateSummary{}, payrolldomain.ErrInvalidPeriod
	}

	exists, err := s.payrolls.ExistsForMonth(ctx, month)
	if err != nil {
		return GenerateSummary{}, err
	}
	if exists {
		return GenerateSummary{}, payrolldomain.ErrAlreadyExists
	}

	employees, err := s.employees.List(ctx, maxEmployeesPerRun)
	if err != nil {
		return GenerateSummary{}, err
	}
	holidaysInMonth, err := s.holidays.ListInMonth(ctx, month)
	if err != nil {
		return GenerateSummary{}, err
	}
	approvedLeaves, err := s.leaves.ListApprovedInMonth(ctx, month)
	if err != nil {
		return GenerateSummary{}, err
	}
	holidayDays := make(map[int]bool, len(holidaysInMonth))
	for _, h := range holidaysInMonth {
		holidayDays[h.Date.Day()] = true
	}

	year, monthNum := splitMonth(month)
	days := daysInMonth(year, monthNum)
	lastBillable := lastBillableDay(s.clock, month, days)

	summary := GenerateSummary{Month: month, TotalNetSalary: decimal.Zero}

	for _, emp := range employees {
		existingAttendance, err := s.attendances.ListByEmployeeAndMonth(ctx, emp.ID, month)
		if err != nil {
			return GenerateSummary{}, err
		}

		if !emp.IsActive && len(existingAttendance) == 0 {
			continue
		}

		firstDay, skip := firstWorkingDay(emp.JoinDate, year, monthNum, days)
		if skip {
			continue
		}

		p := payrolldomain.Payroll{
			EmployeeID: emp.ID,
			Month:      month,
			BaseSalary: decimal.NewFromInt(emp.SalaryMonthly),
		}

		for d := firstDay; d <= lastBillable; d++ {
			p.TotalWorkingDays++

			if existing, ok := existingAttendance[d]; ok {
				incrementPayrollCounter(&p, existing.Status)
				continue
			}

			date := time.Date(year, time.Month(monthNum), d, 0, 0, 0, 0, s.clock.Location())
			status := backfillStatus(date, holidayDays, approvedLeaves[emp.ID])
			incrementPayrollCounter(&p, status)

			backfilled := attendancedomain.Attendance{
				EmployeeID:       emp.ID,
				Date:             date,
				Status:           status,
				IsAutoCalculated: true,
				IsLocked:         true,
			}
			if _, err := s.attendances.Create(ctx, backfilled); err != nil {
				return GenerateSummary{}, err
			}
			summary.DaysBackfilled++
		}

		p.DailyRate = p.BaseSalary.Div(decimal.NewFromInt(int64(days)))
		p.NetSalary = p.DailyRate.Mul(p.PaidDays())
		p.IsLocked = true
		p.GeneratedBy = callerID
		p.GeneratedAt = s.clock.Now()

		if _, err := s.payrolls.Create(ctx, p); err != nil {
			return GenerateSummary{}, err
		}
		if err := s.attendances.SetLockForEmployeeMonth(ctx, emp.ID, month, true); err != nil {
			return GenerateSummary{}, err
		}

		summary.EmployeesPaid++
		summary.TotalNetSalary = summary.TotalNetSalary.Add(p.NetSalary)
	}

	s.emitAudit(ctx, callerID, "payroll-generated", month, map[string]any{
		"employeesPaid":  summary.EmployeesPaid,
		"daysBackfilled": summary.DaysBackfilled,
		"totalNetSalary": summary.TotalNetSalary.String(),
	})

	return summary, nil
}

// UnlockPayroll implements §4.6 unlock-payroll.
func (s *Service) UnlockPayroll(ctx context.Context, callerID, month, reason string) error {
	if len(strings.TrimSpace(reason)) < 10 {
		return payrolldomain.ErrMissingReason
	}
	rows, err := s.payrolls.ListByMonth(ctx, month)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return payrolldomain.ErrNotFound
	}

	now := s.clock.Now()
	for _, p := range rows {
		p.IsLocked = false
		p.UnlockedBy = &callerID
		p.UnlockedAt = &now
		p.UnlockReason = &reason
		if err := s.payrolls.Update(ctx, p); err != nil {
			return err
		}
		if err := s.attendances.SetLockForEmployeeMonth(ctx, p.EmployeeID, month, false); err != nil {
			return err
		}
	}

	s.emitAudit(ctx, callerID, "payroll-unlocked", month, map[string]any{
		"reason":          reason,
		"payrollsTouched": len(rows),
	})
	return nil
}

// DeletePayroll implements §4.6 delete-payroll.
func (s *Service) DeletePayroll(ctx context.Context, callerID, month, reason string) error {
	if len(strings.TrimSpace(reason)) < 10 {
		return payrolldomain.ErrMissingReason
	}
	rows, err := s.payrolls.ListByMonth(ctx, month)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return payrolldomain.ErrNotFound
	}

	totalAttendanceDeleted := 0
	for _, p := range rows {
		if err := s.payrolls.Delete(ctx, p.ID); err != nil {
			return err
		}
		n, err := s.attendances.DeleteAutoCalculatedForEmployeeMonth(ctx, p.EmployeeID, month)
		if err != nil {
			return err
		}
		totalAttendanceDeleted += n
	}

	s.emitAudit(ctx, callerID, "payroll-deleted", month, map[string]any{
		"reason":            reason,
		"payrollsDeleted":   len(rows),
		"attendanceDeleted": totalAttendanceDeleted,
	})
	return nil
}

// Report is the per-employee payroll summary returned by GetPayrollReport.
type Report struct {
	Month   string
	Entries []ReportEntry
}

// ReportEntry pairs a Payroll with its day-by-day attendance breakdown.
type ReportEntry struct {
	Payroll payrolldomain.Payroll
	Days    map[int]attendancedomain.Attendance
}

// GetPayrollReport implements §4.6 get-payroll-report.
func (s *Service) GetPayrollReport(ctx context.Context, month string) (Report, error) {
	if month == "" {
		month = s.clock.Today().Format("2006-01")
	}
	if !validMonth(month) {
		return Report{}, payrolldomain.ErrInvalidPeriod
	}

	rows, err := s.payrolls.ListByMonth(ctx, month)
	if err != nil {
		return Report{}, err
	}

	entries := make([]ReportEntry, 0, len(rows))
	for _, p := range rows {
		days, err := s.attendances.ListByEmployeeAndMonth(ctx, p.EmployeeID, month)
		if err != nil {
			return Report{}, err
		}
		entries = append(entries, ReportEntry{Payroll: p, Days: days})
	}

	return Report{Month: month, Entries: entries}, nil
}

func (s *Service) emitAudit(ctx context.Context, actorID, action, targetID string, payload map[string]any) {
	if s.auditLog == nil {
		return
	}
	e := audit.Event{
		ActorID:    actorID,
		Action:     action,
		TargetID:   targetID,
		TargetType: "payroll",
		Payload:    payload,
		Timestamp:  s.clock.Now(),
	}
	e.Hash = signature.ContentHash(map[string]any{
		"actorId":   e.ActorID,
		"action":    e.Action,
		"targetId":  e.TargetID,
		"payload":   e.Payload,
		"timestamp": e.Timestamp,
	})
	_ = s.auditLog.Append(ctx, e)
}

func incrementPayrollCounter(p *payrolldomain.Payroll, status attendancedomain.Status) {
	switch status {
	case attendancedomain.StatusPresent:
		p.PresentDays++
	case attendancedomain.StatusHalfDay:
		p.HalfDays++
	case attendancedomain.StatusAbsent:
		p.AbsentDays++
	case attendancedomain.StatusSunday:
		p.SundayDays++
	case attendancedomain.StatusHoliday:
		p.HolidayDays++
	case attendancedomain.StatusLeave:
		p.LeaveDays++
	}
}

// backfillStatus applies the generate-payroll fallback order: Sunday,
// then holiday, then approved leave, else absent.
func backfillStatus(date time.Time, holidayDays map[int]bool, employeeLeaves map[int]leave.Leave) attendancedomain.Status {
	day := date.Day()
	switch {
	case date.Weekday() == time.Sunday:
		return attendancedomain.StatusSunday
	case holidayDays[day]:
		return attendancedomain.StatusHoliday
	default:
		if employeeLeaves != nil {
			if _, onLeave := employeeLeaves[day]; onLeave {
				return attendancedomain.StatusLeave
			}
		}
		return attendancedomain.StatusAbsent
	}
}

// firstWorkingDay returns the greater of 1 and the join date's
// day-of-month when the join date falls inside the month; if the join
// date is after the month's last day, skip is true.
func firstWorkingDay(joinDate time.Time, year, month, days int) (day int, skip bool) {
	if joinDate.IsZero() {
		return 1, false
	}
	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := time.Date(year, time.Month(month), days, 0, 0, 0, 0, time.UTC)
	if joinDate.After(monthEnd) {
		return 0, true
	}
	if joinDate.Before(monthStart) {
		return 1, false
	}
	if joinDate.Day() > 1 {
		return joinDate.Day(), false
	}
	return 1, false
}

// lastBillableDay is today's day-of-month (office timezone) when month is
// the current month, otherwise the calendar's last day.
func lastBillableDay(c clock.Clock, month string, days int) int {
	today := c.Today()
	if today.Format("2006-01") == month {
		return today.Day()
	}
	return days
}

func daysInMonth(year, month int) int {
	return time.Date(year, time.Month(month+1), 0, 0, 0, 0, 0, time.UTC).Day()
}

func splitMonth(month string) (year, monthNum int) {
	parts := strings.Split(month, "-")
	y, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	return y, m
}

func validMonth(month string) bool {
	parts := strings.Split(month, "-")
	if len(parts) != 2 {
		return false
	}
	if _, err := strconv.Atoi(parts[0]); err != nil {
		return false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 1 || m > 12 {
		return false
	}
	return true
}
