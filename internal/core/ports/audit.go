package ports

import (
	"context"

	"github.com/dialkey/identity-service/internal/core/domain"
)

// AuditRepository persists auth events to the audit collection.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event *domain.AuthEvent) error
}

// AuditService processes a single recorded auth event. Called from the
// dispatcher workers, never on the request path.
type AuditService interface {
	Record(ctx context.Context, event domain.AuthEvent) error
}

// AuditRecorder is the enqueue side handed to the auth service. Implementations
// must not block the request path beyond a bounded buffer.
type AuditRecorder interface {
	Enqueue(event domain.AuthEvent)
}
