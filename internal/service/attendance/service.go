// Package attendance implements the idempotent per-day attendance state
// machine: check-in, check-out, device binding, and admin modification.
package attendance

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	attendancedomain "github.com/hris-authority/attendance-payroll/internal/domain/attendance"
	"github.com/hris-authority/attendance-payroll/internal/domain/audit"
	"github.com/hris-authority/attendance-payroll/internal/domain/employee"
	"github.com/hris-authority/attendance-payroll/internal/domain/officelocation"
	"github.com/hris-authority/attendance-payroll/internal/domain/payroll"
	"github.com/hris-authority/attendance-payroll/internal/clock"
	"github.com/hris-authority/attendance-payroll/internal/geofence"
	"github.com/hris-authority/attendance-payroll/internal/signature"
)

// Location is the optional GPS fix a client may report alongside a
// check-in or check-out.
type Location struct {
	Latitude  float64
	Longitude float64
	Accuracy  *float64
}

// ModificationInput captures the optional subset of fields an admin may
// rewrite on an attendance row.
type ModificationInput struct {
	CheckInTime  *time.Time
	CheckOutTime *time.Time
	Status       *attendancedomain.Status
}

// Service is the Attendance Engine (C5).
type Service struct {
	clock       clock.Clock
	verifier    signature.Verifier
	attendances attendancedomain.Repository
	employees   employee.Repository
	offices     officelocation.Repository
	payrolls    payroll.Repository
	auditLog    audit.Writer
}

// NewService builds the Attendance Engine from its collaborators.
func NewService(
	c clock.Clock,
	verifier signature.Verifier,
	attendances attendancedomain.Repository,
	employees employee.Repository,
	offices officelocation.Repository,
	payrolls payroll.Repository,
	auditLog audit.Writer,
) *Service {
	return &Service{
		clock:       c,
		verifier:    verifier,
		attendances: attendances,
		employees:   employees,
		offices:     offices,
		payrolls:    payrolls,
		auditLog:    auditLog,
	}
}

// CheckIn implements §4.5 check-in.
func (s *Service) CheckIn(ctx context.Context, email, sig, dataToVerify string, loc *Location) (attendancedomain.Attendance, error) {
	if !s.clock.CheckInAllowed() {
		return attendancedomain.Attendance{}, attendancedomain.ErrLateCheckIn
	}

	emp, err := s.employees.GetByEmail(ctx, email)
	if err != nil {
		return attendancedomain.Attendance{}, err
	}
	if !emp.HasBoundDevice() {
		return attendancedomain.Attendance{}, employee.ErrDeviceNotRegistered
	}
	if !s.verifier.Verify(*emp.DevicePublicKey, dataToVerify, sig) {
		return attendancedomain.Attendance{}, attendancedomain.ErrInvalidSignature
	}

	today := s.clock.Today()
	existing, err := s.attendances.GetByEmployeeAndDate(ctx, emp.ID, today)
	if err != nil {
		return attendancedomain.Attendance{}, err
	}
	if existing != nil && existing.CheckInTime != nil {
		return attendancedomain.Attendance{}, attendancedomain.ErrDuplicateCheckIn
	}

	flagged, reason := s.evaluateGeofence(ctx, loc)

	now := s.clock.Now()
	a := attendancedomain.Attendance{
		EmployeeID:         emp.ID,
		Date:               today,
		Status:             attendancedomain.StatusAbsent, // placeholder until checkout
		CheckInTime:        &now,
		IsLocationFlagged:  flagged,
		IsAutoCalculated:   true,
		IsLocked:           false,
		Notes:              reason,
	}
	if loc != nil {
		a.CheckInLat = &loc.Latitude
		a.CheckInLng = &loc.Longitude
		a.CheckInAccuracy = loc.Accuracy
	}

	var created attendancedomain.Attendance
	if existing != nil {
		// A row for today without a check-in (e.g. a payroll backfill) is
		// updated in place rather than inserted a second time.
		a.ID = existing.ID
		a.CreatedAt = existing.CreatedAt
		if err := s.attendances.Update(ctx, a); err != nil {
			return attendancedomain.Attendance{}, err
		}
		created = a
	} else {
		created, err = s.attendances.Create(ctx, a)
		if err != nil {
			return attendancedomain.Attendance{}, err
		}
	}

	s.emitAudit(ctx, emp.ID, "check-in", created.ID, "attendance", map[string]any{
		"date":    today.Format("2006-01-02"),
		"flagged": flagged,
	}, sig)

	return created, nil
}

// CheckOut implements §4.5 check-out.
func (s *Service) CheckOut(ctx context.Context, email, sig, dataToVerify string, loc *Location) (attendancedomain.Attendance, float64, error) {
	if !s.clock.CheckOutAllowed() {
		return attendancedomain.Attendance{}, 0, attendancedomain.ErrCheckoutWindowBlocked
	}

	emp, err := s.employees.GetByEmail(ctx, email)
	if err != nil {
		return attendancedomain.Attendance{}, 0, err
	}
	if !emp.HasBoundDevice() {
		return attendancedomain.Attendance{}, 0, employee.ErrDeviceNotRegistered
	}
	if !s.verifier.Verify(*emp.DevicePublicKey, dataToVerify, sig) {
		return attendancedomain.Attendance{}, 0, attendancedomain.ErrInvalidSignature
	}

	today := s.clock.Today()
	existing, err := s.attendances.GetByEmployeeAndDate(ctx, emp.ID, today)
	if err != nil {
		return attendancedomain.Attendance{}, 0, err
	}
	if existing == nil || existing.CheckInTime == nil {
		return attendancedomain.Attendance{}, 0, attendancedomain.ErrMissingCheckIn
	}
	if existing.CheckOutTime != nil {
		return attendancedomain.Attendance{}, 0, attendancedomain.ErrDuplicateCheckOut
	}

	now := s.clock.Now()
	workHours := roundWorkHours(now.Sub(*existing.CheckInTime).Hours())
	status := attendancedomain.DeriveStatus(workHours)

	a := *existing
	a.CheckOutTime = &now
	a.WorkHours = workHours
	a.Status = status
	if loc != nil {
		a.CheckOutLat = &loc.Latitude
		a.CheckOutLng = &loc.Longitude
		a.CheckOutAccuracy = loc.Accuracy
	}

	if err := s.attendances.Update(ctx, a); err != nil {
		return attendancedomain.Attendance{}, 0, err
	}

	s.emitAudit(ctx, emp.ID, "check-out", a.ID, "attendance", map[string]any{
		"workHours": workHours,
		"status":    status,
	}, sig)

	return a, workHours, nil
}

// RegisterDevice implements §4.5 register-device.
func (s *Service) RegisterDevice(ctx context.Context, emailOrID, publicKeyPEM string, fingerprint *string) error {
	emp, err := s.employees.GetByEmail(ctx, emailOrID)
	if err != nil {
		return err
	}
	if emp.HasBoundDevice() {
		return employee.ErrDeviceAlreadyRegistered
	}
	if !signature.ValidatePublicKeyPEM(publicKeyPEM) {
		return employee.ErrInvalidPublicKey
	}

	now := s.clock.Now()
	if err := s.employees.SetDeviceBinding(ctx, emp.ID, publicKeyPEM, fingerprint, now); err != nil {
		return err
	}

	s.emitAudit(ctx, emp.ID, "device-registered", emp.ID, "employee", map[string]any{
		"hasFingerprint": fingerprint != nil,
	}, "")
	return nil
}

// ResetDevice implements §4.5 reset-device (admin only).
func (s *Service) ResetDevice(ctx context.Context, callerID, employeeID, reason string) error {
	if len(strings.TrimSpace(reason)) < 10 {
		return attendancedomain.ErrMissingReason
	}
	if err := s.employees.ClearDeviceBinding(ctx, employeeID); err != nil {
		return err
	}
	s.emitAudit(ctx, callerID, "device-reset", employeeID, "employee", map[string]any{
		"reason": reason,
	}, "")
	return nil
}

// ModifyAttendance implements §4.5 modify-attendance (admin only).
func (s *Service) ModifyAttendance(ctx context.Context, callerID, attendanceID, reason string, mods ModificationInput) (attendancedomain.Attendance, error) {
	if len(strings.TrimSpace(reason)) < 10 {
		return attendancedomain.Attendance{}, attendancedomain.ErrMissingReason
	}

	a, err := s.attendances.GetByID(ctx, attendanceID)
	if err != nil {
		return attendancedomain.Attendance{}, err
	}
	if a.IsLocked {
		return attendancedomain.Attendance{}, attendancedomain.ErrAttendanceLocked
	}
	if mods.CheckInTime == nil && mods.CheckOutTime == nil && mods.Status == nil {
		return attendancedomain.Attendance{}, attendancedomain.ErrNoModifications
	}

	original := a
	var changedFields []string

	if mods.CheckInTime != nil {
		a.CheckInTime = mods.CheckInTime
		changedFields = append(changedFields, "checkInTime")
	}
	if mods.CheckOutTime != nil {
		a.CheckOutTime = mods.CheckOutTime
		changedFields = append(changedFields, "checkOutTime")
	}

	recomputeWorkHours := mods.CheckInTime != nil || mods.CheckOutTime != nil
	if recomputeWorkHours && a.CheckInTime != nil && a.CheckOutTime != nil {
		a.WorkHours = roundWorkHours(a.CheckOutTime.Sub(*a.CheckInTime).Hours())
	}

	oldStatus := a.Status
	if mods.Status != nil {
		a.Status = *mods.Status
		changedFields = append(changedFields, "status")
	} else if recomputeWorkHours {
		a.Status = attendancedomain.DeriveStatus(a.WorkHours)
	}

	a.IsAutoCalculated = false

	if err := s.attendances.Update(ctx, a); err != nil {
		return attendancedomain.Attendance{}, err
	}

	if err := s.attendances.CreateModification(ctx, attendancedomain.Modification{
		AttendanceID:  a.ID,
		EmployeeID:    a.EmployeeID,
		ModifiedBy:    callerID,
		ModifiedAt:    s.clock.Now(),
		Reason:        reason,
		FieldChanged:  strings.Join(changedFields, ","),
		OriginalValue: snapshot(original),
		NewValue:      snapshot(a),
	}); err != nil {
		return attendancedomain.Attendance{}, err
	}

	if oldStatus != a.Status {
		if err := s.adjustPayrollCounters(ctx, a, oldStatus, a.Status); err != nil {
			return attendancedomain.Attendance{}, err
		}
	}

	s.emitAudit(ctx, callerID, "attendance-modified", a.ID, "attendance", map[string]any{
		"reason":  reason,
		"changed": changedFields,
	}, "")

	return a, nil
}

// adjustPayrollCounters is the only mutation path into a non-locked
// payroll: a modify-attendance that changes status shifts one day from
// its old counter to its new one and recomputes net salary. Locked
// payrolls never reach here because the covering attendance would be
// locked and ModifyAttendance would have already failed.
func (s *Service) adjustPayrollCounters(ctx context.Context, a attendancedomain.Attendance, oldStatus, newStatus attendancedomain.Status) error {
	month := a.Date.Format("2006-01")
	p, err := s.payrolls.GetByEmployeeAndMonth(ctx, a.EmployeeID, month)
	if err != nil {
		return err
	}
	if p == nil {
		return nil
	}

	decrementCounter(p, oldStatus)
	incrementCounter(p, newStatus)
	p.NetSalary = p.DailyRate.Mul(p.PaidDays())

	return s.payrolls.Update(ctx, *p)
}

func decrementCounter(p *payroll.Payroll, status attendancedomain.Status) {
	addToCounter(p, status, -1)
}

func incrementCounter(p *payroll.Payroll, status attendancedomain.Status) {
	addToCounter(p, status, 1)
}

func addToCounter(p *payroll.Payroll, status attendancedomain.Status, delta int) {
	clamp := func(v int) int {
		if v < 0 {
			return 0
		}
		return v
	}
	switch status {
	case attendancedomain.StatusPresent:
		p.PresentDays = clamp(p.PresentDays + delta)
	case attendancedomain.StatusHalfDay:
		p.HalfDays = clamp(p.HalfDays + delta)
	case attendancedomain.StatusAbsent:
		p.AbsentDays = clamp(p.AbsentDays + delta)
	case attendancedomain.StatusSunday:
		p.SundayDays = clamp(p.SundayDays + delta)
	case attendancedomain.StatusHoliday:
		p.HolidayDays = clamp(p.HolidayDays + delta)
	case attendancedomain.StatusLeave:
		p.LeaveDays = clamp(p.LeaveDays + delta)
	}
}

func (s *Service) evaluateGeofence(ctx context.Context, loc *Location) (flagged bool, reason string) {
	offices, err := s.offices.ListActive(ctx)
	if err != nil {
		// Persistence failure evaluating the geofence degrades to a flag,
		// not a hard failure: the evaluator never blocks the action.
		return true, "Unable to evaluate office locations"
	}
	if loc == nil {
		return true, "No location reported"
	}
	geofenceOffices := make([]geofence.Office, len(offices))
	for i, o := range offices {
		geofenceOffices[i] = geofence.Office{
			Latitude:     o.Latitude,
			Longitude:    o.Longitude,
			RadiusMeters: o.RadiusMeters,
		}
	}
	result := geofence.Evaluate(loc.Latitude, loc.Longitude, loc.Accuracy, geofenceOffices)
	return result.Flagged, result.Reason
}

func (s *Service) emitAudit(ctx context.Context, actorID, action, targetID, targetType string, payload map[string]any, sig string) {
	if s.auditLog == nil {
		return
	}
	e := audit.Event{
		ActorID:           actorID,
		Action:            action,
		TargetID:          targetID,
		TargetType:        targetType,
		Payload:           payload,
		Signature:         sig,
		SignatureVerified: sig != "",
		Timestamp:         s.clock.Now(),
	}
	e.Hash = signature.ContentHash(map[string]any{
		"actorId":   e.ActorID,
		"action":    e.Action,
		"targetId":  e.TargetID,
		"payload":   e.Payload,
		"timestamp": e.Timestamp,
	})
	// Best-effort: a failed audit write must never unwind an already
	// committed state mutation.
	_ = s.auditLog.Append(ctx, e)
}

func roundWorkHours(hours float64) float64 {
	if hours < 0 {
		hours = 0
	}
	return math.Round(hours*100) / 100
}

func snapshot(a attendancedomain.Attendance) string {
	return fmt.Sprintf(
		"status=%s checkIn=%s checkOut=%s workHours=%s",
		a.Status, formatTimePtr(a.CheckInTime), formatTimePtr(a.CheckOutTime),
		strconv.FormatFloat(a.WorkHours, 'f', 2, 64),
	)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
