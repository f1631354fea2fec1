package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"club-nexus/backend/config"
	"club-nexus/backend/internal/api/handler"
	"club-nexus/backend/internal/api/middleware"
	"club-nexus/backend/internal/service"
	"club-nexus/backend/pkg/jwt"
	"club-nexus/backend/pkg/redis"
)

// Setup builds the Gin engine with all routes and middleware attached.
func Setup(cfg *config.Config, h *handler.Handler, svc *service.Service, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(32 << 20))

	authRequired := middleware.JWTAuth(jwtMgr, rdb, svc.Permission, logger)
	authOptional := middleware.OptionalJWTAuth(jwtMgr, rdb, svc.Permission, logger)

	// ── health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// auth (no token required)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// public recruitment surface
		recruitmentPublic := v1.Group("/recruitment")
		{
			recruitmentPublic.GET("/drives/active_public", h.Recruitment.ActivePublicDrive)
			recruitmentPublic.POST("/submit_assessment",
				middleware.RateLimit(rdb, 5, time.Minute),
				h.Recruitment.SubmitAssessment)
		}

		// public taxonomy reads for the site
		v1.GET("/sigs", h.Taxonomy.ListSigs)
		v1.GET("/positions", h.Taxonomy.ListPositions)

		// events: optional auth, service-level visibility filtering
		events := v1.Group("/events")
		events.Use(authOptional)
		{
			events.GET("", h.Event.List)
			events.GET("/:id", h.Event.Get)
		}

		// authenticated routes, capability checks in the service layer
		authorized := v1.Group("")
		authorized.Use(authRequired)
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.POST("/auth/change-password", h.Auth.ChangePassword)

			users := authorized.Group("/users")
			{
				users.GET("", h.User.List)
				users.POST("", h.User.Create)
				users.GET("/:id", h.User.Get)
				users.PATCH("/:id", h.User.Update)
				users.DELETE("/:id", h.User.Delete)
				users.PUT("/:id/roles", h.User.AssignRoles)
				users.PATCH("/:id/profile", h.User.UpdateProfile)
			}

			roles := authorized.Group("/roles")
			{
				roles.GET("", h.Taxonomy.ListRoles)
				roles.POST("", h.Taxonomy.CreateRole)
				roles.PATCH("/:id", h.Taxonomy.UpdateRole)
				roles.DELETE("/:id", h.Taxonomy.DeleteRole)
			}

			sigs := authorized.Group("/sigs")
			{
				sigs.POST("", h.Taxonomy.CreateSig)
				sigs.PATCH("/:id", h.Taxonomy.UpdateSig)
				sigs.DELETE("/:id", h.Taxonomy.DeleteSig)
			}

			positions := authorized.Group("/positions")
			{
				positions.POST("", h.Taxonomy.CreatePosition)
				positions.PATCH("/:id", h.Taxonomy.UpdatePosition)
				positions.DELETE("/:id", h.Taxonomy.DeletePosition)
			}

			eventsAdmin := authorized.Group("/events")
			{
				eventsAdmin.POST("", h.Event.Create)
				eventsAdmin.PATCH("/:id", h.Event.Update)
				eventsAdmin.DELETE("/:id", h.Event.Delete)
				eventsAdmin.POST("/:id/image", h.Event.UploadImage)
			}

			recruitment := authorized.Group("/recruitment")
			{
				recruitment.GET("/drives", h.Recruitment.ListDrives)
				recruitment.POST("/drives", h.Recruitment.CreateDrive)
				recruitment.GET("/drives/:id", h.Recruitment.GetDrive)
				recruitment.PATCH("/drives/:id", h.Recruitment.UpdateDrive)
				recruitment.DELETE("/drives/:id", h.Recruitment.DeleteDrive)
				recruitment.POST("/drives/:id/activate", h.Recruitment.ActivateDrive)
				recruitment.POST("/drives/:id/deactivate", h.Recruitment.DeactivateDrive)
				recruitment.GET("/drives/:id/applications", h.Recruitment.ListApplications)
				recruitment.GET("/drives/:id/panels", h.Interview.ListPanels)
				recruitment.GET("/drives/:id/export", h.Export.ExportApplications)

				recruitment.POST("/timeline", h.Recruitment.CreateTimelineEvent)
				recruitment.PATCH("/timeline/:id", h.Recruitment.UpdateTimelineEvent)
				recruitment.DELETE("/timeline/:id", h.Recruitment.DeleteTimelineEvent)

				recruitment.POST("/assignments", h.Recruitment.CreateAssignment)
				recruitment.DELETE("/assignments/:id", h.Recruitment.DeleteAssignment)

				recruitment.GET("/applications/:id", h.Recruitment.GetApplication)
				recruitment.PATCH("/applications/:id", h.Recruitment.UpdateApplication)
				recruitment.DELETE("/applications/:id", h.Recruitment.DeleteApplication)
			}

			interviews := authorized.Group("/interviews")
			{
				interviews.POST("/panels", h.Interview.CreatePanel)
				interviews.GET("/panels/:id", h.Interview.GetPanel)
				interviews.PATCH("/panels/:id", h.Interview.UpdatePanel)
				interviews.DELETE("/panels/:id", h.Interview.DeletePanel)
				interviews.POST("/panels/:id/generate_slots", h.Interview.GenerateSlots)
				interviews.GET("/panels/:id/slots", h.Interview.ListSlots)
				interviews.PATCH("/slots/:id/status", h.Interview.UpdateSlotStatus)
				interviews.DELETE("/slots/:id", h.Interview.DeleteSlot)
			}

			authorized.GET("/audit", h.Audit.List)
		}
	}

	return r
}
