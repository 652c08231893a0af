// Package api wires the HTTP router, middleware, and handlers.
package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/avdwerf/userbase/internal/api/handlers"
	"github.com/avdwerf/userbase/internal/auth"
	"github.com/avdwerf/userbase/internal/config"
	"github.com/avdwerf/userbase/internal/repository"
	"github.com/avdwerf/userbase/internal/services"
)

// SetupRouter configures and returns the main API router with all routes and middleware.
func SetupRouter(db *sqlx.DB, cfg *config.Config) (*gin.Engine, error) {
	userRepo := repository.NewUserRepository(db)
	userSvc := services.NewUserService(userRepo)
	h := handlers.NewHandlers(userSvc)

	authConfig := &auth.Config{
		Method: auth.Method(cfg.Auth.Method),
		OIDC: auth.OIDCConfig{
			ProviderURL:  cfg.Auth.OIDCProviderURL,
			ClientID:     cfg.Auth.OIDCClientID,
			ClientSecret: cfg.Auth.OIDCClientSecret,
			RedirectURL:  cfg.Auth.OIDCRedirectURL,
		},
		Session: auth.SessionConfig{
			SecretKey:      cfg.Auth.SessionSecret,
			CookieName:     cfg.Auth.CookieName,
			CookiePath:     "/",
			CookieDomain:   cfg.Auth.CookieDomain,
			CookieSecure:   cfg.Environment == "production",
			CookieSameSite: cfg.Auth.CookieSameSite,
			MaxAge:         86400,
		},
	}

	authSvc, err := auth.NewService(authConfig, userSvc)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth service: %w", err)
	}
	authHandlers := NewAuthHandlers(authSvc)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	r := gin.Default()

	// Session middleware - must be first
	r.Use(authSvc.SessionMiddleware())

	r.GET("/", h.Root)
	r.GET("/health", h.Health)

	v1 := r.Group("/api/v1")
	{
		// Authentication configuration (public)
		v1.GET("/auth/config", authHandlers.GetAuthConfig)

		sessionGroup := v1.Group("/session")
		{
			sessionGroup.POST("/login", authHandlers.Login)
			sessionGroup.GET("/oauth/start", authHandlers.StartOAuthFlow)
			sessionGroup.GET("/oauth/callback", authHandlers.HandleOAuthCallback)
		}

		protected := v1.Group("")
		protected.Use(authSvc.Middleware())
		{
			protected.DELETE("/session", authHandlers.Logout)
			protected.GET("/session", authHandlers.GetSession)

			protected.GET("/users", authSvc.RequirePermission(auth.ResourceUsers, auth.ActionRead), h.ListUsers)
			protected.GET("/users/:id", authSvc.RequirePermission(auth.ResourceUsers, auth.ActionRead), h.GetUser)
			protected.POST("/users", authSvc.RequirePermission(auth.ResourceUsers, auth.ActionWrite), h.CreateUser)
			protected.PUT("/users/:id", authSvc.RequirePermission(auth.ResourceUsers, auth.ActionWrite), h.UpdateUser)
			protected.DELETE("/users/:id", authSvc.RequirePermission(auth.ResourceUsers, auth.ActionWrite), h.DeleteUser)
		}
	}

	return r, nil
}
