package handler

import (
	"github.com/gin-gonic/gin"

	"club-nexus/backend/internal/api/middleware"
	"club-nexus/backend/internal/service"
	"club-nexus/backend/pkg/apperrors"
	"club-nexus/backend/pkg/response"
)

// actorFrom extracts the actor injected by the auth middleware. Returns nil
// for anonymous requests; services treat a nil actor as holding nothing.
func actorFrom(c *gin.Context) *service.Actor {
	v, exists := c.Get(middleware.ActorKey)
	if !exists {
		return nil
	}
	actor, ok := v.(*service.Actor)
	if !ok {
		return nil
	}
	return actor
}

// mustGetUserID extracts the authenticated user ID, writing a 401 and
// returning false when the auth middleware did not run.
func mustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	return s, true
}

// writeError maps a classified business error onto the HTTP envelope.
// Unclassified errors become an opaque 500.
func writeError(c *gin.Context, err error) {
	switch apperrors.KindOf(err) {
	case apperrors.KindValidation:
		response.BadRequest(c, 10001, err.Error())
	case apperrors.KindPermission:
		response.Forbidden(c, 10003, err.Error())
	case apperrors.KindNotFound:
		response.NotFound(c, 10404, err.Error())
	case apperrors.KindConflict:
		response.Conflict(c, 10409, err.Error())
	default:
		response.InternalError(c)
	}
}
