// Package audit defines the append-only, content-hashed event ledger the
// attendance and payroll engines write to after each primary mutation
// commits. The create-employee, create-holiday, delete-holiday and
// add-office-location actions write no event.
package audit

import (
	"context"
	"time"
)

// Event is one row of the audit ledger, ordered by Timestamp. Once
// written, an Event is never updated or deleted.
type Event struct {
	ID                string
	ActorID           string
	Action            string
	TargetID          string
	TargetType        string
	Payload           map[string]any
	Signature         string
	SignatureVerified bool
	Hash              string
	DeviceInfo        string
	IPAddress         string
	Timestamp         time.Time
}

// Writer appends Events to the ledger. Implementations must never expose
// an update or delete path.
type Writer interface {
	Append(ctx context.Context, e Event) error
}
