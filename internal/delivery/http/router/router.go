// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"hirepro/internal/delivery/http/middleware"
	"hirepro/internal/delivery/http/router/handler"
)

type RouterParams struct {
	fx.In

	AuthHandler         *handler.AuthHandler
	AuthMiddleware      *middleware.AuthMiddleware
	RateLimitMiddleware *middleware.RateLimitMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler         *handler.AuthHandler
	authMiddleware      *middleware.AuthMiddleware
	rateLimitMiddleware *middleware.RateLimitMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:         params.AuthHandler,
		authMiddleware:      params.AuthMiddleware,
		rateLimitMiddleware: params.RateLimitMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	authGroup := e.Group("/auth")
	{
		// Credential-bearing routes share the login rate limiter.
		authGroup.POST("/candidate/signup", r.authHandler.CandidateSignup, r.rateLimitMiddleware.LimitLogin)
		authGroup.POST("/candidate/login", r.authHandler.CandidateLogin, r.rateLimitMiddleware.LimitLogin)
		authGroup.POST("/hr/signup", r.authHandler.HRSignup, r.rateLimitMiddleware.LimitLogin)
		authGroup.POST("/hr/login", r.authHandler.HRLogin, r.rateLimitMiddleware.LimitLogin)

		authGroup.POST("/refresh", r.authHandler.Refresh)
		authGroup.POST("/logout", r.authHandler.Logout)

		// Routes that require a live access token.
		authGroup.POST("/change-password", r.authHandler.ChangePassword, r.authMiddleware.Authenticate)
		authGroup.GET("/me", r.authHandler.Me, r.authMiddleware.Authenticate)
	}
}
