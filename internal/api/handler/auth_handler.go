package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"club-nexus/backend/internal/dto"
	"club-nexus/backend/internal/service"
	"club-nexus/backend/pkg/jwt"
	"club-nexus/backend/pkg/redis"
	"club-nexus/backend/pkg/response"
)

// AuthHandler serves login, logout, token refresh and self-service account
// endpoints.
type AuthHandler struct {
	authSvc service.AuthService
	jwtMgr  *jwt.Manager
	rdb     *redis.Client
}

// NewAuthHandler creates an AuthHandler. rdb may be nil; logout then
// degrades to a no-op.
func NewAuthHandler(authSvc service.AuthService, jwtMgr *jwt.Manager, rdb *redis.Client) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, jwtMgr: jwtMgr, rdb: rdb}
}

// Login authenticates a user.
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) || errors.Is(err, service.ErrAccountDisabled) {
			response.Error(c, http.StatusUnauthorized, 11001, err.Error())
			return
		}
		writeError(c, err)
		return
	}

	response.OK(c, result)
}

// Logout blacklists the presented access token for its remaining lifetime.
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if h.rdb == nil {
		response.OK(c, nil)
		return
	}

	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		response.OK(c, nil)
		return
	}
	claims, err := h.jwtMgr.ParseToken(parts[1])
	if err != nil {
		response.OK(c, nil)
		return
	}
	if ttl := h.jwtMgr.RemainingTTL(claims); ttl > 0 {
		_ = h.rdb.BlacklistToken(c.Request.Context(), claims.ID, ttl)
	}

	response.OK(c, nil)
}

// RefreshToken exchanges a refresh token for a new pair.
// POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	result, err := h.authSvc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Unauthorized(c, 11002, "refresh token invalid or expired")
		return
	}

	response.OK(c, result)
}

// Me returns the authenticated user with the resolved capability set.
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := mustGetUserID(c)
	if !ok {
		return
	}

	user, err := h.authSvc.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, user)
}

// ChangePassword updates the authenticated user's password.
// POST /api/v1/auth/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := mustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	if err := h.authSvc.ChangePassword(c.Request.Context(), userID, &req); err != nil {
		if errors.Is(err, service.ErrWrongPassword) {
			response.BadRequest(c, 11003, "old password does not match")
			return
		}
		writeError(c, err)
		return
	}

	response.OK(c, nil)
}
