package ports

import (
	"context"

	"github.com/menuhub/restaurant-api/internal/core/domain"
)

// AuditRepository appends authentication events to durable storage.
type AuditRepository interface {
	InsertAuthEvent(ctx context.Context, event *domain.AuthEvent) error
}

// AuditRecorder accepts audit events without blocking the caller.
type AuditRecorder interface {
	Record(event domain.AuthEvent)
}
