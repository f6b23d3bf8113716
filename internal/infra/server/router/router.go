// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/caresync/backend/internal/integration/entrypoint/controller"
	"github.com/caresync/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine             *gin.Engine
	healthController   *controller.HealthController
	authController     *controller.AuthController
	userController     *controller.UserController
	settingsController *controller.SettingsController
	logEntryController *controller.LogEntryController
	cycleController    *controller.CycleController
	loginRateLimiter   *middleware.RateLimiter
	authMiddleware     *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	userController *controller.UserController,
	settingsController *controller.SettingsController,
	logEntryController *controller.LogEntryController,
	cycleController *controller.CycleController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:   healthController,
		authController:     authController,
		userController:     userController,
		settingsController: settingsController,
		logEntryController: logEntryController,
		cycleController:    cycleController,
		loginRateLimiter:   loginRateLimiter,
		authMiddleware:     authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.New()
	r.engine.Use(gin.Recovery())
	if environment != "test" {
		r.engine.Use(gin.Logger())
	}

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", r.authController.Register)
		auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
		auth.POST("/refresh", r.authController.RefreshToken)
		auth.POST("/logout", r.authController.Logout)
	}

	protected := v1.Group("")
	protected.Use(r.authMiddleware.Authenticate())
	{
		protected.POST("/onboarding", r.settingsController.CompleteOnboarding)
		protected.GET("/settings", r.settingsController.GetSettings)
		protected.PATCH("/settings", r.settingsController.UpdateSettings)

		protected.DELETE("/users/me", r.userController.DeleteAccount)

		logs := protected.Group("/logs")
		{
			logs.GET("", r.logEntryController.List)
			logs.PUT("/:date", r.logEntryController.Save)
			logs.GET("/:date", r.logEntryController.Get)
			logs.DELETE("/:date", r.logEntryController.Delete)
		}

		protected.GET("/dashboard", r.cycleController.Dashboard)
		protected.GET("/calendar", r.cycleController.Calendar)

		cycle := protected.Group("/cycle")
		{
			cycle.GET("/phase", r.cycleController.Phase)
			cycle.GET("/history", r.cycleController.History)
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
