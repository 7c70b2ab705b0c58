package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hris-authority/attendance-payroll/internal/domain/officelocation"
	"github.com/hris-authority/attendance-payroll/internal/pkg/database"
)

type officeLocationRepository struct {
	db *database.DB
}

// NewOfficeLocationRepository returns a Postgres-backed
// officelocation.Repository, adapted from the work-schedule-location
// table in the ancestor schedule domain: same lat/lng/radius shape,
// flattened to a company-wide list with no schedule foreign key.
func NewOfficeLocationRepository(db *database.DB) officelocation.Repository {
	return &officeLocationRepository{db: db}
}

func (r *officeLocationRepository) Create(ctx context.Context, o officelocation.OfficeLocation) (officelocation.OfficeLocation, error) {
	q := GetQuerier(ctx, r.db)
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	_, err := q.Exec(ctx, `
		INSERT INTO office_locations (id, name, latitude, longitude, radius_meters, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, o.ID, o.Name, o.Latitude, o.Longitude, o.RadiusMeters, o.IsActive)
	if err != nil {
		return officelocation.OfficeLocation{}, fmt.Errorf("create office location: %w", err)
	}
	return o, nil
}

func (r *officeLocationRepository) ListActive(ctx context.Context) ([]officelocation.OfficeLocation, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, `
		SELECT id, name, latitude, longitude, radius_meters, is_active
		FROM office_locations WHERE is_active = true
	`)
	if err != nil {
		return nil, fmt.Errorf("list active office locations: %w", err)
	}
	defer rows.Close()

	var out []officelocation.OfficeLocation
	for rows.Next() {
		var o officelocation.OfficeLocation
		if err := rows.Scan(&o.ID, &o.Name, &o.Latitude, &o.Longitude, &o.RadiusMeters, &o.IsActive); err != nil {
			return nil, fmt.Errorf("scan office location: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
