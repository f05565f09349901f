package server

import (
	"time"

	"hireboard/infrastructure/realtime"
	httpHandler "hireboard/interfaces/http"
	"hireboard/interfaces/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func InitiateRouter(
	socialHandler httpHandler.ISocialHandler,
	healthHandler httpHandler.IHealthHandler,
	dispatchHub *realtime.Hub,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://app.hireboard.dev", "https://admin.hireboard.dev", "http://localhost:4200", "https://localhost:4200"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", healthHandler.Healthz)

	api := router.Group("api")
	api.Use(middleware.Auth())

	api.POST("/jobs/:jobId/social", socialHandler.Dispatch)
	api.GET("/jobs/:jobId/social-status", socialHandler.Status)
	api.GET("/social/platforms", socialHandler.Platforms)

	// SSE stream of dispatch outcomes, scoped to the caller's organization
	if dispatchHub != nil {
		api.GET("/social/stream", func(c *gin.Context) { dispatchHub.Serve(c) })
	}

	return router
}
