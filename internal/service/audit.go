package service

import (
	"context"
	"log/slog"
	"time"

	"sampletrack/internal/domain"
)

// Audit entry statuses.
const (
	AuditAllowed = "ALLOWED"
	AuditDenied  = "DENIED"
	AuditError   = "ERROR"
)

// AuditService records mutation outcomes and authorization denials. Recording
// is best-effort: a failed insert is logged and never surfaces to the caller.
type AuditService struct {
	repo   domain.AuditRepository
	logger *slog.Logger
}

// NewAuditService creates a new AuditService.
func NewAuditService(repo domain.AuditRepository, logger *slog.Logger) *AuditService {
	return &AuditService{repo: repo, logger: logger}
}

// Record writes one audit entry. Errors are logged, not returned.
func (s *AuditService) Record(ctx context.Context, action string, kind domain.EntityKind, entityID *int64, status, detail string) {
	e := &domain.AuditEntry{
		ID:         domain.NewID(),
		Username:   callerName(ctx),
		Action:     action,
		EntityKind: kind,
		EntityID:   entityID,
		Status:     status,
		CreatedAt:  time.Now().UTC(),
	}
	if detail != "" {
		e.Detail = &detail
	}
	if err := s.repo.Insert(ctx, e); err != nil {
		s.logger.Warn("audit insert failed",
			"action", action,
			"entity_kind", string(kind),
			"error", err)
	}
}

// List returns audit entries matching the filter. Requires admin privileges.
func (s *AuditService) List(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditEntry, int64, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, filter)
}
