// Package http implements the Action Router (C8): a single JSON
// request/response endpoint that dispatches on an `action` field rather
// than exposing one REST route per operation.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/hris-authority/attendance-payroll/internal/apperr"
	attendancedomain "github.com/hris-authority/attendance-payroll/internal/domain/attendance"
	"github.com/hris-authority/attendance-payroll/internal/domain/admin"
	"github.com/hris-authority/attendance-payroll/internal/domain/holiday"
	"github.com/hris-authority/attendance-payroll/internal/domain/officelocation"
	"github.com/hris-authority/attendance-payroll/internal/clock"
	"github.com/hris-authority/attendance-payroll/internal/handler/http/response"
	attendanceservice "github.com/hris-authority/attendance-payroll/internal/service/attendance"
	employeeservice "github.com/hris-authority/attendance-payroll/internal/service/employee"
	payrollservice "github.com/hris-authority/attendance-payroll/internal/service/payroll"
)

// callerIDHeader carries the caller's external identity.
const callerIDHeader = "x-appwrite-user-id"

// ActionHandler dispatches every request this authority serves.
type ActionHandler struct {
	clock       clock.Clock
	gate        *admin.Gate
	attendance  *attendanceservice.Service
	payroll     *payrollservice.Service
	employee    *employeeservice.Service
	holidays    holiday.Repository
	offices     officelocation.Repository
	attendances attendancedomain.Repository

	handlers map[string]actionFunc
}

type actionFunc struct {
	adminOnly bool
	run       func(ctx context.Context, callerID string, body json.RawMessage) (any, error)
}

// NewActionHandler wires every action to its collaborator.
func NewActionHandler(
	c clock.Clock,
	gate *admin.Gate,
	attendance *attendanceservice.Service,
	payroll *payrollservice.Service,
	employee *employeeservice.Service,
	holidays holiday.Repository,
	offices officelocation.Repository,
	attendances attendancedomain.Repository,
) *ActionHandler {
	h := &ActionHandler{
		clock:       c,
		gate:        gate,
		attendance:  attendance,
		payroll:     payroll,
		employee:    employee,
		holidays:    holidays,
		offices:     offices,
		attendances: attendances,
	}
	h.handlers = h.buildHandlers()
	return h
}

// ServeHTTP is the single entry point this authority exposes.
func (h *ActionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		response.InfrastructureFailure(w, http.StatusBadRequest, "malformed request body")
		return
	}

	var envelope struct {
		Action string `json:"action"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		response.InfrastructureFailure(w, http.StatusBadRequest, "malformed request body")
		return
	}

	callerID := r.Header.Get(callerIDHeader)

	action, ok := h.handlers[envelope.Action]
	if !ok {
		response.Fail(w, fmt.Sprintf("Unknown action: %s", envelope.Action), string(apperr.InvalidAction))
		return
	}

	if action.adminOnly {
		if err := h.gate.Authorize(r.Context(), callerID); err != nil {
			response.HandleError(w, err)
			return
		}
	}

	result, err := h.runSafely(r.Context(), action, callerID, body)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// runSafely recovers from a panicking handler and maps it to a generic
// failure envelope per §7 ("any exception escaping a handler").
func (h *ActionHandler) runSafely(ctx context.Context, action actionFunc, callerID string, body json.RawMessage) (result any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("handler panic: %v", rec)
		}
	}()
	return action.run(ctx, callerID, body)
}

func parse[T any](data json.RawMessage) (T, error) {
	var v T
	if len(data) == 0 {
		return v, nil
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, apperr.New(apperr.ValidationError, "malformed action payload")
	}
	return v, nil
}
