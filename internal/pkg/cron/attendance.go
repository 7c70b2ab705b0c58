package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/hris-authority/attendance-payroll/internal/domain/attendance"
	"github.com/hris-authority/attendance-payroll/internal/domain/employee"
	"github.com/hris-authority/attendance-payroll/internal/clock"
)

// AttendanceJobs registers the authority's background reconciliation
// job. Unlike the generate-payroll backfill, this job never writes: it
// only logs employees missing a check-in for the prior day, so an
// operator can decide whether a manual modify-attendance is warranted.
// Writing the actual absence record is generate-payroll's job, not a
// cron's — doing it here would race the payroll engine's own backfill.
type AttendanceJobs struct {
	clock       clock.Clock
	attendances attendance.Repository
	employees   employee.Repository
}

// NewAttendanceJobs builds the reconciliation job.
func NewAttendanceJobs(c clock.Clock, attendances attendance.Repository, employees employee.Repository) *AttendanceJobs {
	return &AttendanceJobs{clock: c, attendances: attendances, employees: employees}
}

// RegisterJobs schedules ReconcileYesterday to run hourly; the body
// itself only acts once per day (see the hour guard).
func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("reconcile_yesterday_attendance", 1*time.Hour, j.ReconcileYesterday)
}

// ReconcileYesterday logs every active employee who has no attendance
// row for the previous calendar day. It runs once a day, gated to the
// first hour after midnight in the office timezone.
func (j *AttendanceJobs) ReconcileYesterday(ctx context.Context) error {
	now := j.clock.Now()
	if now.Hour() != 0 {
		return nil
	}

	yesterday := j.clock.Today().AddDate(0, 0, -1)
	month := yesterday.Format("2006-01")

	employees, err := j.employees.ListActive(ctx, 100)
	if err != nil {
		return err
	}

	missing := 0
	for _, emp := range employees {
		rows, err := j.attendances.ListByEmployeeAndMonth(ctx, emp.ID, month)
		if err != nil {
			slog.Error("reconcile: failed to load attendance", "employee_id", emp.ID, "error", err)
			continue
		}
		if _, ok := rows[yesterday.Day()]; !ok {
			missing++
			slog.Warn("reconcile: missing attendance for prior day",
				"employee_id", emp.ID, "date", yesterday.Format("2006-01-02"))
		}
	}

	slog.Info("reconcile: completed", "date", yesterday.Format("2006-01-02"), "missing", missing)
	return nil
}
