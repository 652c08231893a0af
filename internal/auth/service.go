package auth

import (
	"fmt"
	"net/http"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/avdwerf/userbase/internal/apperrors"
	"github.com/avdwerf/userbase/internal/services"
	"github.com/avdwerf/userbase/pkg/logger"
)

// Service handles authentication and authorization.
type Service struct {
	config   *Config
	users    *services.UserService
	enforcer *casbin.Enforcer
	store    sessions.Store
	oidc     *oidcClient
}

// NewService creates a new authentication service.
func NewService(cfg *Config, users *services.UserService) (*Service, error) {
	s := &Service{
		config: cfg,
		users:  users,
	}

	if cfg.Session.SecretKey == "" {
		return nil, apperrors.Config("session secret key is required")
	}
	store := cookie.NewStore([]byte(cfg.Session.SecretKey))
	store.Options(sessions.Options{
		Path:     cfg.Session.CookiePath,
		Domain:   cfg.Session.CookieDomain,
		MaxAge:   cfg.Session.MaxAge,
		Secure:   cfg.Session.CookieSecure,
		HttpOnly: true,
		SameSite: sameSiteFromString(cfg.Session.CookieSameSite),
	})
	s.store = store

	if cfg.Method.SupportsOIDC() {
		client, err := newOIDCClient(cfg.OIDC)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize OIDC: %w", err)
		}
		s.oidc = client
	}

	enforcer, err := s.initializeRBAC()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Casbin: %w", err)
	}
	s.enforcer = enforcer

	return s, nil
}

// IsLocalEnabled reports whether password login is enabled.
func (s *Service) IsLocalEnabled() bool {
	return s.config.Method.SupportsLocal()
}

// IsOAuthEnabled reports whether OAuth/OIDC authentication is enabled.
func (s *Service) IsOAuthEnabled() bool {
	return s.config.Method.SupportsOIDC()
}

// initializeRBAC sets up role-based access control using Casbin with
// in-memory policy storage.
func (s *Service) initializeRBAC() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range rbacPolicies {
		if _, err := enforcer.AddPolicy(p); err != nil {
			return nil, fmt.Errorf("failed to add RBAC policy %v: %w", p, err)
		}
	}

	return enforcer, nil
}

// SessionMiddleware returns the Gin middleware for session management.
func (s *Service) SessionMiddleware() gin.HandlerFunc {
	return sessions.Sessions(s.config.Session.CookieName, s.store)
}

// Middleware returns the Gin middleware for authentication enforcement.
// Requests without a valid session are rejected as unauthorized.
func (s *Service) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)

		userID, ok := SessionUserID(session)
		if !ok {
			abortWithError(c, apperrors.Unauthorized("Authentication required"))
			return
		}

		// Revalidate against the store so deactivated or deleted
		// accounts lose access immediately.
		user, err := s.users.Get(c.Request.Context(), userID)
		if err != nil || !user.IsActive {
			ClearSessionAuth(session)
			if saveErr := session.Save(); saveErr != nil {
				logger.Error("Failed to save session during cleanup: %v", saveErr)
			}
			abortWithError(c, apperrors.Unauthorized("Invalid session"))
			return
		}

		method, _ := SessionString(session, SessKeyAuthMethod)
		SetUserContext(c, UserContext{
			UserID:     user.ID,
			Email:      user.Email,
			Role:       user.Role,
			AuthMethod: method,
		})

		c.Next()
	}
}

// RequirePermission returns middleware that enforces role-based access control.
func (s *Service) RequirePermission(obj Resource, act Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := UserRole(c)
		if !ok {
			abortWithError(c, apperrors.Unauthorized("Authentication required"))
			return
		}

		allowed, err := s.enforcer.Enforce(role, string(obj), string(act))
		if err != nil {
			abortWithError(c, apperrors.Internal(fmt.Errorf("permission check failed: %w", err)))
			return
		}

		if !allowed {
			abortWithError(c, apperrors.Forbidden("Insufficient permissions"))
			return
		}

		c.Next()
	}
}

// Login authenticates a user with email and password and creates a session.
func (s *Service) Login(c *gin.Context, email, password string) error {
	if !s.config.Method.SupportsLocal() {
		return apperrors.BadRequest("Local authentication is disabled")
	}

	user, err := s.users.Authenticate(c.Request.Context(), email, password)
	if err != nil {
		return err
	}

	return s.createSession(c, SessionData{
		UserID:     user.ID,
		Email:      user.Email,
		Role:       user.Role,
		AuthMethod: "local",
	})
}

// Logout clears the caller's session.
func (s *Service) Logout(c *gin.Context) error {
	session := sessions.Default(c)
	ClearSessionAuth(session)
	if err := session.Save(); err != nil {
		return apperrors.Internal(fmt.Errorf("failed to clear session: %w", err))
	}
	return nil
}

// createSession stores authentication data in a fresh session.
func (s *Service) createSession(c *gin.Context, data SessionData) error {
	session := sessions.Default(c)
	SetSessionAuth(session, data)
	if err := session.Save(); err != nil {
		return apperrors.Internal(fmt.Errorf("failed to save session: %w", err))
	}
	return nil
}

// abortWithError translates err and aborts the request with its response.
func abortWithError(c *gin.Context, err error) {
	status, body := apperrors.Translate(err)
	c.AbortWithStatusJSON(status, body)
}

func sameSiteFromString(v string) http.SameSite {
	switch v {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
