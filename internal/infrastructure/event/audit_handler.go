package event

import (
	"context"

	"github.com/hoa/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// AuditLogHandler writes every domain event to the structured log. It is the
// association's audit trail: who registered, what was approved, what was
// billed and settled.
type AuditLogHandler struct {
	logger *zap.Logger
}

// NewAuditLogHandler creates a new audit log handler
func NewAuditLogHandler(logger *zap.Logger) *AuditLogHandler {
	return &AuditLogHandler{
		logger: logger.Named("audit"),
	}
}

// Handle logs the event
func (h *AuditLogHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	h.logger.Info("domain event",
		zap.String("event_type", event.EventType()),
		zap.String("event_id", event.EventID().String()),
		zap.String("aggregate_type", event.AggregateType()),
		zap.String("aggregate_id", event.AggregateID().String()),
		zap.Time("occurred_at", event.OccurredAt()),
	)
	return nil
}

// EventTypes returns nil so the handler receives all events
func (h *AuditLogHandler) EventTypes() []string {
	return nil
}

// Ensure AuditLogHandler implements EventHandler
var _ shared.EventHandler = (*AuditLogHandler)(nil)
