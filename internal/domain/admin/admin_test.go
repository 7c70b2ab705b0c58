package admin

import (
	"context"
	"errors"
	"testing"

	"github.com/hris-authority/attendance-payroll/internal/apperr"
)

type fakeTeamRepository struct {
	members map[string]bool
	err     error
}

func (f *fakeTeamRepository) IsMember(ctx context.Context, teamID, userID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.members[userID], nil
}

func TestGate_Authorize_EmptyCallerID(t *testing.T) {
	gate := NewGate(&fakeTeamRepository{}, "team-1")
	err := gate.Authorize(context.Background(), "")
	assertAdminRequired(t, err)
}

func TestGate_Authorize_EmptyTeamID(t *testing.T) {
	gate := NewGate(&fakeTeamRepository{members: map[string]bool{"user-1": true}}, "")
	err := gate.Authorize(context.Background(), "user-1")
	assertAdminRequired(t, err)
}

func TestGate_Authorize_Member(t *testing.T) {
	gate := NewGate(&fakeTeamRepository{members: map[string]bool{"user-1": true}}, "team-1")
	if err := gate.Authorize(context.Background(), "user-1"); err != nil {
		t.Errorf("Authorize for a team member should succeed, got %v", err)
	}
}

func TestGate_Authorize_NotMember(t *testing.T) {
	gate := NewGate(&fakeTeamRepository{members: map[string]bool{"user-1": true}}, "team-1")
	err := gate.Authorize(context.Background(), "user-2")
	assertAdminRequired(t, err)
}

func TestGate_Authorize_RepositoryError(t *testing.T) {
	repoErr := errors.New("connection refused")
	gate := NewGate(&fakeTeamRepository{err: repoErr}, "team-1")
	err := gate.Authorize(context.Background(), "user-1")
	if !errors.Is(err, repoErr) {
		t.Errorf("Authorize should surface the repository error, got %v", err)
	}
}

func assertAdminRequired(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected ADMIN_REQUIRED error, got nil")
	}
	code, ok := apperr.CodeOf(err)
	if !ok || code != apperr.AdminRequired {
		t.Errorf("code = %v, want %v", code, apperr.AdminRequired)
	}
}
