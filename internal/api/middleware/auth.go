package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"club-nexus/backend/internal/service"
	"club-nexus/backend/pkg/jwt"
	"club-nexus/backend/pkg/redis"
	"club-nexus/backend/pkg/response"
)

// ActorKey is the gin context key the resolved actor is stored under.
const ActorKey = "actor"

// JWTAuth extracts and verifies the access token from
// Authorization: Bearer <token>, rejects blacklisted tokens, resolves the
// caller's capability set and injects the actor into the context.
// rdb may be nil; blacklist checks are then skipped.
func JWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client, perm service.PermissionService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := bearerClaims(c, jwtMgr, rdb)
		if !ok {
			c.Abort()
			return
		}

		actor, err := buildActor(c, claims, perm)
		if err != nil {
			logger.Error("resolving actor capabilities failed",
				zap.String("user_id", claims.UserID), zap.Error(err))
			response.InternalError(c)
			c.Abort()
			return
		}

		c.Set(ActorKey, actor)
		c.Set("user_id", claims.UserID)
		c.Next()
	}
}

// OptionalJWTAuth behaves like JWTAuth but lets requests without an
// Authorization header through as anonymous. A header that is present but
// invalid still fails.
func OptionalJWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client, perm service.PermissionService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}

		claims, ok := bearerClaims(c, jwtMgr, rdb)
		if !ok {
			c.Abort()
			return
		}

		actor, err := buildActor(c, claims, perm)
		if err != nil {
			logger.Error("resolving actor capabilities failed",
				zap.String("user_id", claims.UserID), zap.Error(err))
			response.InternalError(c)
			c.Abort()
			return
		}

		c.Set(ActorKey, actor)
		c.Set("user_id", claims.UserID)
		c.Next()
	}
}

func bearerClaims(c *gin.Context, jwtMgr *jwt.Manager, rdb *redis.Client) (*jwt.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		response.Unauthorized(c, 10002, "missing authorization header")
		return nil, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		response.Unauthorized(c, 10002, "invalid authorization header")
		return nil, false
	}

	claims, err := jwtMgr.ParseToken(parts[1])
	if err != nil {
		response.Unauthorized(c, 10002, "token invalid or expired")
		return nil, false
	}
	if claims.TokenType != "access" {
		response.Unauthorized(c, 10002, "invalid token type")
		return nil, false
	}

	if rdb != nil {
		blacklisted, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID)
		// Degrade open on redis failure, same as the rate limiter.
		if err == nil && blacklisted {
			response.Unauthorized(c, 10002, "token revoked")
			return nil, false
		}
	}

	return claims, true
}

func buildActor(c *gin.Context, claims *jwt.Claims, perm service.PermissionService) (*service.Actor, error) {
	actor := &service.Actor{
		UserID:      claims.UserID,
		Username:    claims.Username,
		IsSuperuser: claims.IsSuperuser,
	}
	caps, err := perm.ResolveByID(c.Request.Context(), claims.UserID)
	if err != nil {
		return nil, err
	}
	actor.Caps = caps
	return actor, nil
}
