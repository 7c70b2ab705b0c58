package http

import (
	"context"
	"encoding/json"
	"time"

	attendancedomain "github.com/hris-authority/attendance-payroll/internal/domain/attendance"
	"github.com/hris-authority/attendance-payroll/internal/domain/holiday"
	"github.com/hris-authority/attendance-payroll/internal/domain/officelocation"
	attendanceservice "github.com/hris-authority/attendance-payroll/internal/service/attendance"
	employeeservice "github.com/hris-authority/attendance-payroll/internal/service/employee"
)

// locationPayload mirrors the optional GPS fix a client may attach to a
// check-in or check-out.
type locationPayload struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Accuracy  *float64 `json:"accuracy"`
}

func (l *locationPayload) toServiceLocation() *attendanceservice.Location {
	if l == nil {
		return nil
	}
	return &attendanceservice.Location{Latitude: l.Latitude, Longitude: l.Longitude, Accuracy: l.Accuracy}
}

func (h *ActionHandler) buildHandlers() map[string]actionFunc {
	return map[string]actionFunc{
		"check-in": {run: h.checkIn},
		"check-out": {run: h.checkOut},
		"register-device": {run: h.registerDevice},
		"get-my-attendance": {run: h.getMyAttendance},
		"get-system-info": {run: h.getSystemInfo},

		"create-employee": {adminOnly: true, run: h.createEmployee},
		"modify-attendance": {adminOnly: true, run: h.modifyAttendance},
		"reset-device": {adminOnly: true, run: h.resetDevice},
		"create-holiday": {adminOnly: true, run: h.createHoliday},
		"delete-holiday": {adminOnly: true, run: h.deleteHoliday},
		"add-office-location": {adminOnly: true, run: h.addOfficeLocation},
		"generate-payroll": {adminOnly: true, run: h.generatePayroll},
		"unlock-payroll": {adminOnly: true, run: h.unlockPayroll},
		"delete-payroll": {adminOnly: true, run: h.deletePayroll},
		"get-payroll-report": {adminOnly: true, run: h.getPayrollReport},
	}
}

func (h *ActionHandler) checkIn(ctx context.Context, callerID string, body json.RawMessage) (any, error) {
	req, err := parse[struct {
		Email        string           `json:"email"`
		Signature    string           `json:"signature"`
		DataToVerify string           `json:"dataToVerify"`
		Location     *locationPayload `json:"location"`
	}](body)
	if err != nil {
		return nil, err
	}
	return h.attendance.CheckIn(ctx, req.Email, req.Signature, req.DataToVerify, req.Location.toServiceLocation())
}

func (h *ActionHandler) checkOut(ctx context.Context, callerID string, body json.RawMessage) (any, error) {
	req, err := parse[struct {
		Email        string           `json:"email"`
		Signature    string           `json:"signature"`
		DataToVerify string           `json:"dataToVerify"`
		Location     *locationPayload `json:"location"`
	}](body)
	if err != nil {
		return nil, err
	}
	a, workHours, err := h.attendance.CheckOut(ctx, req.Email, req.Signature, req.DataToVerify, req.Location.toServiceLocation())
	if err != nil {
		return nil, err
	}
	return struct {
		Attendance attendancedomain.Attendance `json:"attendance"`
		WorkHours  float64                     `json:"workHours"`
	}{a, workHours}, nil
}

func (h *ActionHandler) registerDevice(ctx context.Context, callerID string, body json.RawMessage) (any, error) {
	req, err := parse[struct {
		Email             string  `json:"email"`
		PublicKey         string  `json:"publicKey"`
		DeviceFingerprint *string `json:"deviceFingerprint"`
	}](body)
	if err != nil {
		return nil, err
	}
	if err := h.attendance.RegisterDevice(ctx, req.Email, req.PublicKey, req.DeviceFingerprint); err != nil {
		return nil, err
	}
	return struct {
		Registered bool `json:"registered"`
	}{true}, nil
}

func (h *ActionHandler) getMyAttendance(ctx context.Context, callerID string, body json.RawMessage) (any, error) {
	req, err := parse[struct {
		Month string `json:"month"`
	}](body)
	if err != nil {
		return nil, err
	}
	month := req.Month
	if month == "" {
		month = h.clock.Today().Format("2006-01")
	}
	return h.attendances.ListByEmployeeAndMonth(ctx, callerID, month)
}

func (h *ActionHandler) getSystemInfo(ctx context.Context, callerID string, body json.RawMessage) (any, error) {
	now := h.clock.Now()
	return struct {
		Now              time.Time `json:"now"`
		Today            time.Time `json:"today"`
		CheckInAllowed   bool      `json:"checkInAllowed"`
		CheckOutAllowed  bool      `json:"checkOutAllowed"`
	}{
		Now:             now,
		Today:           h.clock.Today(),
		CheckInAllowed:  h.clock.CheckInAllowed(),
		CheckOutAllowed: h.clock.CheckOutAllowed(),
	}, nil
}

func (h *ActionHandler) createEmployee(ctx context.Context, callerID string, body json.RawMessage) (any, error) {
	req, err := parse[struct {
		Data struct {
			Email    string     `json:"email"`
			Password string     `json:"password"`
			Name     string     `json:"name"`
			Salary   int64      `json:"salary"`
			JoinDate *time.Time `json:"joinDate"`
		} `json:"data"`
	}](body)
	if err != nil {
		return nil, err
	}
	return h.employee.CreateEmployee(ctx, employeeservice.CreateInput{
		Email:    req.Data.Email,
		Password: req.Data.Password,
		Name:     req.Data.Name,
		Salary:   req.Data.Salary,
		JoinDate: req.Data.JoinDate,
	})
}

func (h *ActionHandler) modifyAttendance(ctx context.Context, callerID string, body json.RawMessage) (any, error) {
	req, err := parse[struct {
		AttendanceID  string `json:"attendanceId"`
		Reason        string `json:"reason"`
		Modifications struct {
			CheckInTime  *time.Time               `json:"checkInTime"`
			CheckOutTime *time.Time               `json:"checkOutTime"`
			Status       *attendancedomain.Status `json:"status"`
		} `json:"modifications"`
	}](body)
	if err != nil {
		return nil, err
	}
	return h.attendance.ModifyAttendance(ctx, callerID, req.AttendanceID, req.Reason, attendanceservice.ModificationInput{
		CheckInTime:  req.Modifications.CheckInTime,
		CheckOutTime: req.Modifications.CheckOutTime,
		Status:       req.Modifications.Status,
	})
}

func (h *ActionHandler) resetDevice(ctx context.Context, callerID string, body json.RawMessage) (any, error) {
	req, err := parse[struct {
		EmployeeID string `json:"employeeId"`
		Reason     string `json:"reason"`
	}](body)
	if err != nil {
		return nil, err
	}
	if err := h.attendance.ResetDevice(ctx, callerID, req.EmployeeID, req.Reason); err != nil {
		return nil, err
	}
	return struct {
		Reset bool `json:"reset"`
	}{true}, nil
}

func (h *ActionHandler) createHoliday(ctx context.Context, callerID string, body json.RawMessage) (any, error) {
	req, err := parse[struct {
		Date        time.Time `json:"date"`
		Name        string    `json:"name"`
		Description string    `json:"description"`
	}](body)
	if err != nil {
		return nil, err
	}
	return h.holidays.Create(ctx, holiday.Holiday{Date: req.Date, Name: req.Name, Description: req.Description})
}

func (h *ActionHandler) deleteHoliday(ctx context.Context, callerID string, body json.RawMessage) (any, error) {
	req, err := parse[struct {
		HolidayID string `json:"holidayId"`
	}](body)
	if err != nil {
		return nil, err
	}
	if err := h.holidays.Delete(ctx, req.HolidayID); err != nil {
		return nil, err
	}
	return struct {
		Deleted bool `json:"deleted"`
	}{true}, nil
}

func (h *ActionHandler) addOfficeLocation(ctx context.Context, callerID string, body json.RawMessage) (any, error) {
	req, err := parse[struct {
		Name         string   `json:"name"`
		Latitude     float64  `json:"latitude"`
		Longitude    float64  `json:"longitude"`
		RadiusMeters *float64 `json:"radiusMeters"`
	}](body)
	if err != nil {
		return nil, err
	}
	radius := officelocation.DefaultRadiusMeters
	if req.RadiusMeters != nil {
		radius = *req.RadiusMeters
	}
	return h.offices.Create(ctx, officelocation.OfficeLocation{
		Name:         req.Name,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		RadiusMeters: radius,
		IsActive:     true,
	})
}

func (h *ActionHandler) generatePayroll(ctx context.Context, callerID string, body json.RawMessage) (any, error) {
	req, err := parse[struct {
		Month string `json:"month"`
	}](body)
	if err != nil {
		return nil, err
	}
	return h.payroll.GeneratePayroll(ctx, callerID, req.Month)
}

func (h *ActionHandler) unlockPayroll(ctx context.Context, callerID string, body json.RawMessage) (any, error) {
	req, err := parse[struct {
		Month  string `json:"month"`
		Reason string `json:"reason"`
	}](body)
	if err != nil {
		return nil, err
	}
	if err := h.payroll.UnlockPayroll(ctx, callerID, req.Month, req.Reason); err != nil {
		return nil, err
	}
	return struct {
		Unlocked bool `json:"unlocked"`
	}{true}, nil
}

func (h *ActionHandler) deletePayroll(ctx context.Context, callerID string, body json.RawMessage) (any, error) {
	req, err := parse[struct {
		Month  string `json:"month"`
		Reason string `json:"reason"`
	}](body)
	if err != nil {
		return nil, err
	}
	if err := h.payroll.DeletePayroll(ctx, callerID, req.Month, req.Reason); err != nil {
		return nil, err
	}
	return struct {
		Deleted bool `json:"deleted"`
	}{true}, nil
}

func (h *ActionHandler) getPayrollReport(ctx context.Context, callerID string, body json.RawMessage) (any, error) {
	req, err := parse[struct {
		Month string `json:"month"`
	}](body)
	if err != nil {
		return nil, err
	}
	return h.payroll.GetPayrollReport(ctx, req.Month)
}
