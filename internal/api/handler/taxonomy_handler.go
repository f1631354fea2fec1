package handler

import (
	"github.com/gin-gonic/gin"

	"club-nexus/backend/internal/dto"
	"club-nexus/backend/internal/service"
	"club-nexus/backend/pkg/response"
)

// TaxonomyHandler serves role, sig and team-position administration.
type TaxonomyHandler struct {
	taxSvc service.TaxonomyService
}

// NewTaxonomyHandler creates a TaxonomyHandler.
func NewTaxonomyHandler(taxSvc service.TaxonomyService) *TaxonomyHandler {
	return &TaxonomyHandler{taxSvc: taxSvc}
}

// ── roles ──

// CreateRole creates a role.
// POST /api/v1/roles
func (h *TaxonomyHandler) CreateRole(c *gin.Context) {
	var req dto.CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	role, err := h.taxSvc.CreateRole(c.Request.Context(), actorFrom(c), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Created(c, role)
}

// ListRoles lists all roles.
// GET /api/v1/roles
func (h *TaxonomyHandler) ListRoles(c *gin.Context) {
	roles, err := h.taxSvc.ListRoles(c.Request.Context(), actorFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, roles)
}

// UpdateRole applies a partial role update.
// PATCH /api/v1/roles/:id
func (h *TaxonomyHandler) UpdateRole(c *gin.Context) {
	var req dto.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	role, err := h.taxSvc.UpdateRole(c.Request.Context(), actorFrom(c), c.Param("id"), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, role)
}

// DeleteRole removes a role.
// DELETE /api/v1/roles/:id
func (h *TaxonomyHandler) DeleteRole(c *gin.Context) {
	if err := h.taxSvc.DeleteRole(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, nil)
}

// ── sigs ──

// CreateSig creates a sig.
// POST /api/v1/sigs
func (h *TaxonomyHandler) CreateSig(c *gin.Context) {
	var req dto.CreateSigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	sig, err := h.taxSvc.CreateSig(c.Request.Context(), actorFrom(c), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Created(c, sig)
}

// ListSigs lists all sigs. Public.
// GET /api/v1/sigs
func (h *TaxonomyHandler) ListSigs(c *gin.Context) {
	sigs, err := h.taxSvc.ListSigs(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, sigs)
}

// UpdateSig applies a partial sig update.
// PATCH /api/v1/sigs/:id
func (h *TaxonomyHandler) UpdateSig(c *gin.Context) {
	var req dto.UpdateSigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	sig, err := h.taxSvc.UpdateSig(c.Request.Context(), actorFrom(c), c.Param("id"), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, sig)
}

// DeleteSig removes a sig.
// DELETE /api/v1/sigs/:id
func (h *TaxonomyHandler) DeleteSig(c *gin.Context) {
	if err := h.taxSvc.DeleteSig(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, nil)
}

// ── team positions ──

// CreatePosition creates a team position.
// POST /api/v1/positions
func (h *TaxonomyHandler) CreatePosition(c *gin.Context) {
	var req dto.CreatePositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	pos, err := h.taxSvc.CreatePosition(c.Request.Context(), actorFrom(c), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Created(c, pos)
}

// ListPositions lists all team positions. Public.
// GET /api/v1/positions
func (h *TaxonomyHandler) ListPositions(c *gin.Context) {
	positions, err := h.taxSvc.ListPositions(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, positions)
}

// UpdatePosition applies a partial team-position update.
// PATCH /api/v1/positions/:id
func (h *TaxonomyHandler) UpdatePosition(c *gin.Context) {
	var req dto.UpdatePositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	pos, err := h.taxSvc.UpdatePosition(c.Request.Context(), actorFrom(c), c.Param("id"), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, pos)
}

// DeletePosition removes a team position.
// DELETE /api/v1/positions/:id
func (h *TaxonomyHandler) DeletePosition(c *gin.Context) {
	if err := h.taxSvc.DeletePosition(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, nil)
}
