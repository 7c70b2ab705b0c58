// Package officelocation models the geofence centers the attendance
// engine checks location against. Adapted from the work-schedule-location
// concept in the ancestor schedule domain, stripped of its per-shift
// assignment and scoped instead to a flat list of active offices.
package officelocation

import "context"

const DefaultRadiusMeters = 100.0

type OfficeLocation struct {
	ID           string
	Name         string
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
	IsActive     bool
}

// Repository is the persistence seam for OfficeLocation.
type Repository interface {
	Create(ctx context.Context, o OfficeLocation) (OfficeLocation, error)
	ListActive(ctx context.Context) ([]OfficeLocation, error)
}
