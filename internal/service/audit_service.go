package service

import (
	"context"

	"go.uber.org/zap"

	"club-nexus/backend/internal/model"
	"club-nexus/backend/internal/repository"
)

// AuditService is the write-only sink for privileged mutations. Recording
// never fails the calling operation; a lost entry is logged and dropped.
type AuditService interface {
	Record(ctx context.Context, actor *Actor, action, target, detail string)
	List(ctx context.Context, actor *Actor, offset, limit int) ([]model.AuditLog, int64, error)
}

type auditService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAuditService creates an AuditService.
func NewAuditService(repo *repository.Repository, logger *zap.Logger) AuditService {
	return &auditService{repo: repo, logger: logger}
}

func (s *auditService) Record(ctx context.Context, actor *Actor, action, target, detail string) {
	entry := &model.AuditLog{
		Action: action,
		Target: target,
		Detail: detail,
	}
	if actor != nil {
		id := actor.UserID
		entry.ActorID = &id
	}

	if err := s.repo.AuditLog.Create(ctx, entry); err != nil {
		s.logger.Warn("audit entry dropped",
			zap.String("action", action),
			zap.String("target", target),
			zap.Error(err))
	}
}

func (s *auditService) List(ctx context.Context, actor *Actor, offset, limit int) ([]model.AuditLog, int64, error) {
	if actor == nil || !actor.IsSuperuser {
		return nil, 0, ErrPermissionDenied
	}
	return s.repo.AuditLog.List(ctx, offset, limit)
}
