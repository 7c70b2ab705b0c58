// Package admin implements the authorization gate that decides whether a
// caller may invoke an admin-only action.
package admin

import (
	"context"

	"github.com/hris-authority/attendance-payroll/internal/apperr"
)

// TeamRepository queries an external admin-team membership store. It is
// the only thing the gate consults; it never reasons about roles itself.
type TeamRepository interface {
	// IsMember reports whether userID belongs to the configured admin
	// team.
	IsMember(ctx context.Context, teamID, userID string) (bool, error)
}

// Gate is the Admin Gate (C7): it runs before every admin-only action's
// handler body.
type Gate struct {
	teams  TeamRepository
	teamID string
}

// NewGate builds a Gate against the configured admin team. teamID is the
// external admin-team identifier; an empty value makes every check fail
// closed.
func NewGate(teams TeamRepository, teamID string) *Gate {
	return &Gate{teams: teams, teamID: teamID}
}

// Authorize fails with ADMIN_REQUIRED if callerID is empty, the admin
// team is not configured, or the membership query reports no match.
func (g *Gate) Authorize(ctx context.Context, callerID string) error {
	if callerID == "" || g.teamID == "" {
		return apperr.New(apperr.AdminRequired, "admin authorization required")
	}
	isMember, err := g.teams.IsMember(ctx, g.teamID, callerID)
	if err != nil {
		return err
	}
	if !isMember {
		return apperr.New(apperr.AdminRequired, "admin authorization required")
	}
	return nil
}
