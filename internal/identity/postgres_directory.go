package identity

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hris-authority/attendance-payroll/internal/pkg/database"
	"github.com/hris-authority/attendance-payroll/internal/repository/postgresql"
	"golang.org/x/crypto/bcrypt"
)

// postgresDirectory is the minimal directory implementation this
// deployment actually owns: it hashes the password with bcrypt and
// stores a row in `users`. A production deployment may instead point
// Directory at an external identity provider; the seam is what matters.
type postgresDirectory struct {
	db *database.DB
}

// NewPostgresDirectory returns a Directory backed by a local users table.
func NewPostgresDirectory(db *database.DB) Directory {
	return &postgresDirectory{db: db}
}

func (d *postgresDirectory) CreateUser(ctx context.Context, email, password, name string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	id := uuid.New().String()
	q := postgresql.GetQuerier(ctx, d.db)
	_, err = q.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, name, created_at)
		VALUES ($1, $2, $3, $4, now())
	`, id, email, string(hash), name)
	if err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}
	return id, nil
}

func (d *postgresDirectory) DeleteUser(ctx context.Context, userID string) error {
	q := postgresql.GetQuerier(ctx, d.db)
	_, err := q.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
