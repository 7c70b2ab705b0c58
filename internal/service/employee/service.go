// Package employee implements employee provisioning: the one action that
// spans the external identity directory and the Employee aggregate.
package employee

import (
	"context"
	"strings"
	"time"

	"github.com/hris-authority/attendance-payroll/internal/apperr"
	"github.com/hris-authority/attendance-payroll/internal/clock"
	employeedomain "github.com/hris-authority/attendance-payroll/internal/domain/employee"
	"github.com/hris-authority/attendance-payroll/internal/identity"
	"github.com/hris-authority/attendance-payroll/internal/pkg/validator"
)

// CreateInput is the data:{...} payload of the create-employee action.
type CreateInput struct {
	Email    string
	Password string
	Name     string
	Salary   int64
	JoinDate *time.Time
}

// Service is the employee provisioning collaborator.
type Service struct {
	clock     clock.Clock
	directory identity.Directory
	employees employeedomain.Repository
}

// NewService builds the employee provisioning service.
func NewService(c clock.Clock, directory identity.Directory, employees employeedomain.Repository) *Service {
	return &Service{clock: c, directory: directory, employees: employees}
}

// CreateEmployee implements create-employee's rollback rule: if the user
// record is created but the employee write fails, the user is deleted.
// If that rollback itself fails, the partial state is surfaced in the
// returned error rather than retried — operators reconcile manually.
func (s *Service) CreateEmployee(ctx context.Context, in CreateInput) (employeedomain.Employee, error) {
	if !validator.IsValidEmail(in.Email) {
		return employeedomain.Employee{}, apperr.New(apperr.ValidationError, "email is invalid")
	}
	if validator.IsEmpty(in.Name) {
		return employeedomain.Employee{}, apperr.New(apperr.ValidationError, "name is required")
	}
	if in.Salary <= 0 {
		return employeedomain.Employee{}, apperr.New(apperr.ValidationError, "salary must be positive")
	}

	joinDate := s.clock.Today()
	if in.JoinDate != nil {
		joinDate = *in.JoinDate
	}

	userID, err := s.directory.CreateUser(ctx, strings.ToLower(strings.TrimSpace(in.Email)), in.Password, in.Name)
	if err != nil {
		return employeedomain.Employee{}, err
	}

	emp := employeedomain.Employee{
		ID:            userID,
		Name:          in.Name,
		Email:         strings.ToLower(strings.TrimSpace(in.Email)),
		Role:          employeedomain.RoleEmployee,
		IsActive:      true,
		SalaryMonthly: in.Salary,
		JoinDate:      joinDate,
	}

	created, err := s.employees.Create(ctx, emp)
	if err != nil {
		if rollbackErr := s.directory.DeleteUser(ctx, userID); rollbackErr != nil {
			return employeedomain.Employee{}, errRollbackFailed{original: err, rollback: rollbackErr}
		}
		return employeedomain.Employee{}, err
	}

	return created, nil
}

// errRollbackFailed surfaces both the original failure and the rollback
// failure; operators reconcile the orphaned directory user manually.
type errRollbackFailed struct {
	original error
	rollback error
}

func (e errRollbackFailed) Error() string {
	return "create-employee failed (" + e.original.Error() + ") and rollback also failed (" + e.rollback.Error() + "); manual reconciliation required"
}

func (e errRollbackFailed) Unwrap() error { return e.original }
