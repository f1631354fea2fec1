package handler

import (
	"github.com/gin-gonic/gin"

	"club-nexus/backend/internal/dto"
	"club-nexus/backend/internal/service"
	"club-nexus/backend/pkg/response"
)

// InterviewHandler serves panel and slot endpoints.
type InterviewHandler struct {
	intSvc service.InterviewService
}

// NewInterviewHandler creates an InterviewHandler.
func NewInterviewHandler(intSvc service.InterviewService) *InterviewHandler {
	return &InterviewHandler{intSvc: intSvc}
}

// CreatePanel creates a panel.
// POST /api/v1/interviews/panels
func (h *InterviewHandler) CreatePanel(c *gin.Context) {
	var req dto.CreatePanelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	panel, err := h.intSvc.CreatePanel(c.Request.Context(), actorFrom(c), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Created(c, panel)
}

// GetPanel returns one panel with members and slots.
// GET /api/v1/interviews/panels/:id
func (h *InterviewHandler) GetPanel(c *gin.Context) {
	panel, err := h.intSvc.GetPanel(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, panel)
}

// ListPanels lists a drive's panels.
// GET /api/v1/recruitment/drives/:id/panels
func (h *InterviewHandler) ListPanels(c *gin.Context) {
	panels, err := h.intSvc.ListPanels(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, panels)
}

// UpdatePanel applies a partial panel update.
// PATCH /api/v1/interviews/panels/:id
func (h *InterviewHandler) UpdatePanel(c *gin.Context) {
	var req dto.UpdatePanelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	panel, err := h.intSvc.UpdatePanel(c.Request.Context(), actorFrom(c), c.Param("id"), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, panel)
}

// DeletePanel removes a panel.
// DELETE /api/v1/interviews/panels/:id
func (h *InterviewHandler) DeletePanel(c *gin.Context) {
	if err := h.intSvc.DeletePanel(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, nil)
}

// GenerateSlots books back-to-back slots for the listed applications.
// POST /api/v1/interviews/panels/:id/generate_slots
func (h *InterviewHandler) GenerateSlots(c *gin.Context) {
	var req dto.GenerateSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	result, err := h.intSvc.GenerateSlots(c.Request.Context(), actorFrom(c), c.Param("id"), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, result)
}

// ListSlots lists a panel's slots in start order.
// GET /api/v1/interviews/panels/:id/slots
func (h *InterviewHandler) ListSlots(c *gin.Context) {
	slots, err := h.intSvc.ListSlots(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, slots)
}

// UpdateSlotStatus marks a slot scheduled, completed or a no-show.
// PATCH /api/v1/interviews/slots/:id/status
func (h *InterviewHandler) UpdateSlotStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	slot, err := h.intSvc.UpdateSlotStatus(c.Request.Context(), actorFrom(c), c.Param("id"), req.Status)
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, slot)
}

// DeleteSlot removes a slot.
// DELETE /api/v1/interviews/slots/:id
func (h *InterviewHandler) DeleteSlot(c *gin.Context) {
	if err := h.intSvc.DeleteSlot(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, nil)
}
