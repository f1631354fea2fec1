package service

import (
	"errors"

	"go.uber.org/zap"

	"club-nexus/backend/internal/repository"
	"club-nexus/backend/pkg/apperrors"
	"club-nexus/backend/pkg/jwt"
	"club-nexus/backend/pkg/storage"
)

// ErrPermissionDenied is returned when the actor lacks the capability an
// operation requires.
var ErrPermissionDenied = apperrors.Permission(errors.New("permission denied"))

// Actor is the authenticated identity behind a request, with its resolved
// capability set. A nil *Actor means anonymous.
type Actor struct {
	UserID      string
	Username    string
	IsSuperuser bool
	Caps        CapabilitySet
}

// Can reports whether the actor holds the capability (or the blanket
// can_manage_everything, or the superuser flag). Nil actors hold nothing.
func (a *Actor) Can(cap string) bool {
	if a == nil {
		return false
	}
	if a.IsSuperuser {
		return true
	}
	return a.Caps.Allows(cap)
}

// Service aggregates every business-logic interface.
type Service struct {
	Auth        AuthService
	Permission  PermissionService
	User        UserService
	Taxonomy    TaxonomyService
	Event       EventService
	Recruitment RecruitmentService
	Interview   InterviewService
	Export      ExportService
	Audit       AuditService
}

// NewService wires the services together.
func NewService(repo *repository.Repository, jwtMgr *jwt.Manager, store storage.Store, logger *zap.Logger) *Service {
	perm := NewPermissionService(repo, logger)
	audit := NewAuditService(repo, logger)
	return &Service{
		Auth:        NewAuthService(repo, jwtMgr, perm, logger),
		Permission:  perm,
		User:        NewUserService(repo, perm, audit, logger),
		Taxonomy:    NewTaxonomyService(repo, audit, logger),
		Event:       NewEventService(repo, store, audit, logger),
		Recruitment: NewRecruitmentService(repo, audit, logger),
		Interview:   NewInterviewService(repo, audit, logger),
		Export:      NewExportService(repo, logger),
		Audit:       audit,
	}
}
