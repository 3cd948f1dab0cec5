// Package router sets up the HTTP routing for the application.
package router

import (
	"log/slog"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine             *gin.Engine
	healthController   *controller.HealthController
	authController     *controller.AuthController
	expenseController  *controller.ExpenseController
	authMiddleware     *middleware.AuthMiddleware
	corsAllowedOrigins []string
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	expenseController *controller.ExpenseController,
	authMiddleware *middleware.AuthMiddleware,
	corsAllowedOrigins []string,
) *Router {
	return &Router{
		healthController:   healthController,
		authController:     authController,
		expenseController:  expenseController,
		authMiddleware:     authMiddleware,
		corsAllowedOrigins: corsAllowedOrigins,
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
	r.engine.Use(middleware.RequestLogger(slog.Default()))
	r.engine.Use(cors.New(r.corsConfig()))

	r.setupAPIRoutes()

	return r.engine
}

func (r *Router) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(r.corsAllowedOrigins) == 0 || slices.Contains(r.corsAllowedOrigins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = r.corsAllowedOrigins
	}
	return cfg
}

// setupAPIRoutes configures the API routes.
func (r *Router) setupAPIRoutes() {
	api := r.engine.Group("/api")
	{
		api.GET("/health", r.healthController.Check)

		auth := api.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.Me)
		}

		expenses := api.Group("/expenses")
		expenses.Use(r.authMiddleware.Authenticate())
		{
			expenses.GET("", r.expenseController.List)
			expenses.POST("", r.expenseController.Create)
			// Static segments are matched before the :id wildcard.
			expenses.GET("/stats", r.expenseController.Stats)
			expenses.GET("/categories", r.expenseController.Categories)
			expenses.GET("/:id", r.expenseController.Get)
			expenses.PUT("/:id", r.expenseController.Update)
			expenses.DELETE("/:id", r.expenseController.Delete)
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
