package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"club-nexus/backend/internal/service"
	"club-nexus/backend/pkg/response"
)

// AuditHandler serves the audit trail read endpoint.
type AuditHandler struct {
	auditSvc service.AuditService
}

// NewAuditHandler creates an AuditHandler.
func NewAuditHandler(auditSvc service.AuditService) *AuditHandler {
	return &AuditHandler{auditSvc: auditSvc}
}

// List returns a page of audit entries, newest first.
// GET /api/v1/audit?offset=0&limit=50
func (h *AuditHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	entries, total, err := h.auditSvc.List(c.Request.Context(), actorFrom(c), offset, limit)
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, gin.H{"items": entries, "total": total})
}
