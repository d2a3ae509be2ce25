package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dialkey/identity-service/internal/core/domain"
	"github.com/dialkey/identity-service/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService that persists events to the audit
// collection. Failures are reported to the caller (the dispatcher worker),
// which logs them; they never reach a client.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

func (s *auditService) Record(ctx context.Context, event domain.AuthEvent) error {
	if err := s.repo.InsertEvent(ctx, &event); err != nil {
		return fmt.Errorf("record auth event: %w", err)
	}
	s.log.Debug().Str("phone", event.Phone).Str("type", string(event.Type)).Msg("auth event recorded")
	return nil
}
