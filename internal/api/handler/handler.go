package handler

import (
	"go.uber.org/zap"

	"club-nexus/backend/internal/service"
	"club-nexus/backend/pkg/jwt"
	"club-nexus/backend/pkg/redis"
	"club-nexus/backend/pkg/storage"
)

// Handler aggregates every HTTP handler.
type Handler struct {
	Auth        *AuthHandler
	User        *UserHandler
	Taxonomy    *TaxonomyHandler
	Event       *EventHandler
	Recruitment *RecruitmentHandler
	Interview   *InterviewHandler
	Export      *ExportHandler
	Audit       *AuditHandler
}

// NewHandler wires the handlers onto the service layer.
func NewHandler(svc *service.Service, jwtMgr *jwt.Manager, rdb *redis.Client, store storage.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(svc.Auth, jwtMgr, rdb),
		User:        NewUserHandler(svc.User),
		Taxonomy:    NewTaxonomyHandler(svc.Taxonomy),
		Event:       NewEventHandler(svc.Event, store, logger),
		Recruitment: NewRecruitmentHandler(svc.Recruitment, store, logger),
		Interview:   NewInterviewHandler(svc.Interview),
		Export:      NewExportHandler(svc.Export),
		Audit:       NewAuditHandler(svc.Audit),
	}
}
