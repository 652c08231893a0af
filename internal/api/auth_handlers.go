package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avdwerf/userbase/internal/apperrors"
	"github.com/avdwerf/userbase/internal/auth"
	"github.com/avdwerf/userbase/internal/utils"
)

// AuthHandlers provides session management endpoints.
type AuthHandlers struct {
	authSvc *auth.Service
}

// NewAuthHandlers creates a new AuthHandlers instance.
func NewAuthHandlers(authSvc *auth.Service) *AuthHandlers {
	return &AuthHandlers{authSvc: authSvc}
}

// LoginRequest is the payload for password login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func respondError(c *gin.Context, err error) {
	status, body := apperrors.Translate(err)
	c.JSON(status, body)
}

// Login authenticates with email and password and starts a session.
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Serialization("Invalid request body: "+err.Error()).Wrap(err))
		return
	}

	if err := h.authSvc.Login(c, req.Email, req.Password); err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, utils.MessageResponse{Message: "Logged in"})
}

// Logout ends the caller's session.
func (h *AuthHandlers) Logout(c *gin.Context) {
	if err := h.authSvc.Logout(c); err != nil {
		respondError(c, err)
		return
	}

	utils.NoContent(c)
}

// GetSession returns the authenticated caller's identity.
func (h *AuthHandlers) GetSession(c *gin.Context) {
	ctx, ok := auth.GetUserContext(c)
	if !ok {
		respondError(c, apperrors.Unauthorized("Authentication required"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":     ctx.UserID,
		"email":       ctx.Email,
		"role":        ctx.Role,
		"auth_method": ctx.AuthMethod,
	})
}

// StartOAuthFlow redirects the caller to the OIDC provider.
func (h *AuthHandlers) StartOAuthFlow(c *gin.Context) {
	if err := h.authSvc.StartOAuthFlow(c); err != nil {
		respondError(c, err)
	}
}

// HandleOAuthCallback completes the OIDC login flow.
func (h *AuthHandlers) HandleOAuthCallback(c *gin.Context) {
	if err := h.authSvc.FinishOAuthFlow(c); err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, utils.MessageResponse{Message: "Logged in"})
}

// GetAuthConfig reports which authentication methods are enabled.
func (h *AuthHandlers) GetAuthConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"local": h.authSvc.IsLocalEnabled(),
		"oauth": h.authSvc.IsOAuthEnabled(),
	})
}
