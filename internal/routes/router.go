package routes

import (
	"net/http"

	"github.com/iamram3sh/2ndshift-sub002/config"
	"github.com/iamram3sh/2ndshift-sub002/internal/handlers"
	"github.com/iamram3sh/2ndshift-sub002/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRouter builds the full HTTP surface: public auth endpoints, the
// health probe, static uploads, and the authenticated API.
func SetupRouter() *gin.Engine {
	router := gin.Default()

	router.Static("/static", "./static")

	router.GET("/healthz", func(c *gin.Context) {
		status := gin.H{"status": "ok"}
		code := http.StatusOK

		if db, err := config.DB.DB(); err != nil || db.Ping() != nil {
			status["status"] = "degraded"
			status["database"] = "unreachable"
			code = http.StatusServiceUnavailable
		}
		if config.RDB != nil {
			if err := config.RDB.Ping(config.Ctx).Err(); err != nil {
				status["redis"] = "unreachable"
			}
		}
		c.JSON(code, status)
	})

	auth := router.Group("/auth")
	{
		auth.POST("/register", handlers.RegisterHandler)
		auth.POST("/login", handlers.LoginHandler)
		auth.POST("/logout", handlers.LogoutHandler)
	}

	authorized := router.Group("/")
	authorized.Use(middleware.AuthMiddleware())
	RegisterAPIRoutes(authorized)

	return router
}
