// Package identity is the seam onto the external user directory that
// issues opaque user identifiers (out of core scope per the authority's
// purpose statement; this package is the thin collaborator boundary).
// create-employee is the one handler that spans both this directory and
// the employee aggregate, and it must roll back the user record if the
// employee write fails.
package identity

import "context"

// Directory creates and removes the directory-side user record backing
// an Employee.
type Directory interface {
	CreateUser(ctx context.Context, email, password, name string) (userID string, err error)
	DeleteUser(ctx context.Context, userID string) error
}
