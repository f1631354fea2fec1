package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"club-nexus/backend/internal/dto"
	"club-nexus/backend/internal/service"
	"club-nexus/backend/pkg/response"
	"club-nexus/backend/pkg/storage"
)

// maxImageBytes caps uploaded event images.
const maxImageBytes = 5 << 20

// EventHandler serves event endpoints. Listing and reads run behind the
// optional auth middleware so anonymous visitors see the published subset.
type EventHandler struct {
	eventSvc service.EventService
	store    storage.Store
	logger   *zap.Logger
}

// NewEventHandler creates an EventHandler.
func NewEventHandler(eventSvc service.EventService, store storage.Store, logger *zap.Logger) *EventHandler {
	return &EventHandler{eventSvc: eventSvc, store: store, logger: logger}
}

// List returns the events visible to the caller.
// GET /api/v1/events
func (h *EventHandler) List(c *gin.Context) {
	events, err := h.eventSvc.List(c.Request.Context(), actorFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, events)
}

// Get returns one event if the caller may see it.
// GET /api/v1/events/:id
func (h *EventHandler) Get(c *gin.Context) {
	event, err := h.eventSvc.GetByID(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, event)
}

// Create creates an event.
// POST /api/v1/events
func (h *EventHandler) Create(c *gin.Context) {
	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	event, err := h.eventSvc.Create(c.Request.Context(), actorFrom(c), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Created(c, event)
}

// Update applies a partial event update.
// PATCH /api/v1/events/:id
func (h *EventHandler) Update(c *gin.Context) {
	var req dto.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	event, err := h.eventSvc.Update(c.Request.Context(), actorFrom(c), c.Param("id"), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, event)
}

// Delete removes an event.
// DELETE /api/v1/events/:id
func (h *EventHandler) Delete(c *gin.Context) {
	if err := h.eventSvc.Delete(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, nil)
}

// UploadImage stores an event image and attaches it to the event.
// POST /api/v1/events/:id/image  (multipart field "image")
func (h *EventHandler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.BadRequest(c, 10001, "image file is required")
		return
	}
	if fileHeader.Size > maxImageBytes {
		response.BadRequest(c, 10001, "image too large")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, 10001, "unreadable image file")
		return
	}
	defer f.Close()

	ref, err := h.store.Save("events", fileHeader.Filename, f)
	if err != nil {
		h.logger.Error("storing event image failed", zap.Error(err))
		response.InternalError(c)
		return
	}

	event, err := h.eventSvc.SetImage(c.Request.Context(), actorFrom(c), c.Param("id"), ref)
	if err != nil {
		// Orphaned blob; the event was missing or the caller lacked access.
		_ = h.store.Remove(ref)
		writeError(c, err)
		return
	}

	response.OK(c, event)
}
