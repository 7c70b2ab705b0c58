package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hris-authority/attendance-payroll/internal/domain/audit"
	"github.com/hris-authority/attendance-payroll/internal/pkg/database"
)

type auditRepository struct {
	db *database.DB
}

// NewAuditRepository returns a Postgres-backed audit.Writer. There is no
// Update or Delete query in this file: the ledger is append-only.
func NewAuditRepository(db *database.DB) audit.Writer {
	return &auditRepository{db: db}
}

func (r *auditRepository) Append(ctx context.Context, e audit.Event) error {
	q := GetQuerier(ctx, r.db)
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	payload, err := json.Marshal(e.Payload)
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}
	_, err = q.Exec(ctx, `
		INSERT INTO audit_events (
			id, actor_id, action, target_id, target_type, payload,
			signature, signature_verified, hash, device_info, ip_address, timestamp
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`, e.ID, e.ActorID, e.Action, e.TargetID, e.TargetType, payload,
		e.Signature, e.SignatureVerified, e.Hash, e.DeviceInfo, e.IPAddress, e.Timestamp)
	if err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}
