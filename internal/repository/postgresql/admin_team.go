package postgresql

import (
	"context"
	"fmt"

	"github.com/hris-authority/attendance-payroll/internal/domain/admin"
	"github.com/hris-authority/attendance-payroll/internal/pkg/database"
)

type adminTeamRepository struct {
	db *database.DB
}

// NewAdminTeamRepository returns a Postgres-backed admin.TeamRepository.
func NewAdminTeamRepository(db *database.DB) admin.TeamRepository {
	return &adminTeamRepository{db: db}
}

func (r *adminTeamRepository) IsMember(ctx context.Context, teamID, userID string) (bool, error) {
	q := GetQuerier(ctx, r.db)
	var count int
	err := q.QueryRow(ctx, `
		SELECT COUNT(*) FROM admin_team_members WHERE team_id = $1 AND user_id = $2
	`, teamID, userID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("query admin team membership: %w", err)
	}
	return count > 0, nil
}
