// Package router contains routing setup for the HTTP delivery.
package router

import (
	"ridehail/internal/delivery/api/middleware"
	"ridehail/internal/delivery/api/router/handler"
	"ridehail/internal/domain/entity"
	"ridehail/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AccountHandler *handler.AccountHandler
	AuthMiddleware *middleware.AuthMiddleware
	Metrics        *metrics.Registry
}

// router holds all the handlers that need to be registered.
type router struct {
	accountHandler *handler.AccountHandler
	authMiddleware *middleware.AuthMiddleware
	metrics        *metrics.Registry
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler: params.AccountHandler,
		authMiddleware: params.AuthMiddleware,
		metrics:        params.Metrics,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	if r.metrics != nil && r.metrics.Enabled {
		e.GET("/metrics", echo.WrapHandler(r.metrics.Handler()))
	}

	r.registerAccountRoutes(e.Group("/users"), entity.RoleUser, r.accountHandler.RegisterUser)
	r.registerAccountRoutes(e.Group("/captains"), entity.RoleCaptain, r.accountHandler.RegisterCaptain)
}

// registerAccountRoutes mounts the same session routes for each role.
func (r *router) registerAccountRoutes(group *echo.Group, role entity.Role, register echo.HandlerFunc) {
	requireRole := r.authMiddleware.RequireRole(role)

	group.POST("/register", register)
	group.POST("/login", r.accountHandler.Login(role))
	group.GET("/profile", r.accountHandler.GetProfile, r.authMiddleware.Authenticate, requireRole)
	group.POST("/logout", r.accountHandler.Logout, r.authMiddleware.AuthenticateIfPresent, requireRole)
}
