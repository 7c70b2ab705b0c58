// Package auditbus fans out audit events to NATS for external consumers.
// Publishing is strictly best-effort: the Postgres audit ledger remains
// the source of truth, and a broker outage never blocks or fails a
// request.
//
// Subject convention: audit.events.<action> (e.g. audit.events.check-in),
// mirroring the versioned-topic style used for payroll events elsewhere
// in this codebase's lineage.
package auditbus

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hris-authority/attendance-payroll/internal/domain/audit"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// Publisher decorates an audit.Writer: it persists first, then publishes
// best-effort. A nil *nats.Conn makes it a pure pass-through, so the bus
// is optional at deploy time.
type Publisher struct {
	next audit.Writer
	conn *nats.Conn
	log  zerolog.Logger
}

// NewPublisher wraps next with NATS fan-out. conn may be nil.
func NewPublisher(next audit.Writer, conn *nats.Conn, log zerolog.Logger) *Publisher {
	return &Publisher{next: next, conn: conn, log: log}
}

func (p *Publisher) Append(ctx context.Context, e audit.Event) error {
	if err := p.next.Append(ctx, e); err != nil {
		return err
	}
	p.publish(e)
	return nil
}

func (p *Publisher) publish(e audit.Event) {
	if p.conn == nil {
		return
	}
	data, err := json.Marshal(e)
	if err != nil {
		p.log.Warn().Err(err).Str("action", e.Action).Msg("auditbus: failed to marshal event")
		return
	}
	subject := fmt.Sprintf("audit.events.%s", e.Action)
	if err := p.conn.Publish(subject, data); err != nil {
		p.log.Warn().Err(err).Str("subject", subject).Msg("auditbus: publish failed (non-fatal)")
	}
}
