package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/devfolio/portfolio-api/pkg/apperror"
	"github.com/devfolio/portfolio-api/pkg/auth"
	"github.com/devfolio/portfolio-api/pkg/logger"
)

type RouterConfig struct {
	Env             string
	RateLimitMax    int
	RateLimitWindow time.Duration
}

// NewRouter assembles the full HTTP surface. The redis client may be nil, in
// which case rate limiting is disabled.
func NewRouter(
	cfg RouterConfig,
	log logger.Logger,
	rdb *redis.Client,
	gate auth.Gate,
	profileHandler *ProfileHandler,
	projectHandler *ProjectHandler,
	skillHandler *SkillHandler,
	searchHandler *SearchHandler,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))
	router.Use(ErrorMiddleware(log, cfg.Env))

	basicAuth := BasicAuthMiddleware(gate)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Portfolio API",
			"version": "1.0.0",
			"endpoints": gin.H{
				"health":    "/api/health",
				"profile":   "/api/profile",
				"profiles":  "/api/profiles",
				"projects":  "/api/projects",
				"search":    "/api/search",
				"skills":    "/api/skills",
				"topSkills": "/api/skills/top",
			},
		})
	})

	api := router.Group("/api")
	api.Use(RateLimitMiddleware(rdb, cfg.RateLimitMax, cfg.RateLimitWindow, log))
	{
		api.GET("/health", profileHandler.GetHealth)

		api.GET("/profiles", profileHandler.ListProfiles)
		api.GET("/profiles/:username", profileHandler.GetProfileByUsername)
		api.POST("/profiles", profileHandler.CreateProfile)
		api.PATCH("/profiles/:username", basicAuth, profileHandler.UpdateProfile)

		// Legacy single-profile routes for deployments that predate
		// username addressing.
		api.GET("/profile", profileHandler.GetProfile)
		api.PATCH("/profile", basicAuth, profileHandler.UpdateLegacyProfile)

		api.GET("/search", searchHandler.SearchProfiles)

		projects := api.Group("/projects")
		{
			projects.GET("", projectHandler.ListProjects)
			projects.GET("/:id", projectHandler.GetProjectByID)
			projects.POST("", basicAuth, projectHandler.AddProject)
			projects.PATCH("/:id", basicAuth, projectHandler.UpdateProject)
			projects.DELETE("/:id", basicAuth, projectHandler.DeleteProject)
		}

		skills := api.Group("/skills")
		{
			skills.GET("", skillHandler.ListSkills)
			skills.GET("/top", skillHandler.GetTopSkills)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		appErr := apperror.NewNotFound("Route",
			fmt.Sprintf("Not Found - %s", c.Request.URL.Path))
		c.JSON(http.StatusNotFound, appErr.ToJSON())
	})

	return router
}
