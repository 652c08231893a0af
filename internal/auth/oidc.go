package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"

	"github.com/avdwerf/userbase/internal/apperrors"
)

// oidcClient bundles the OIDC provider and its OAuth2 configuration.
type oidcClient struct {
	provider *oidc.Provider
	oauth2   *oauth2.Config
	clientID string
}

// newOIDCClient discovers the OIDC provider and configures OAuth2.
func newOIDCClient(cfg OIDCConfig) (*oidcClient, error) {
	provider, err := oidc.NewProvider(context.Background(), cfg.ProviderURL)
	if err != nil {
		return nil, err
	}

	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = []string{oidc.ScopeOpenID, "profile", "email"}
	}

	return &oidcClient{
		provider: provider,
		clientID: cfg.ClientID,
		oauth2: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       scopes,
		},
	}, nil
}

// StartOAuthFlow initiates the OIDC authentication process by
// redirecting the caller to the provider.
func (s *Service) StartOAuthFlow(c *gin.Context) error {
	if !s.config.Method.SupportsOIDC() {
		return apperrors.BadRequest("OAuth authentication is disabled")
	}

	state, err := generateState()
	if err != nil {
		return apperrors.Internal(fmt.Errorf("failed to generate OAuth state: %w", err))
	}

	session := sessions.Default(c)
	session.Set(string(SessKeyOAuthState), state)
	if err := session.Save(); err != nil {
		return apperrors.Internal(fmt.Errorf("failed to save OAuth session: %w", err))
	}

	c.Redirect(http.StatusTemporaryRedirect, s.oidc.oauth2.AuthCodeURL(state))
	return nil
}

// FinishOAuthFlow completes the OIDC authentication process: verifies
// the CSRF state, exchanges the code, validates the ID token, and
// creates a session for the matching local account.
func (s *Service) FinishOAuthFlow(c *gin.Context) error {
	if !s.config.Method.SupportsOIDC() {
		return apperrors.BadRequest("OAuth authentication is disabled")
	}

	session := sessions.Default(c)
	savedState, ok := SessionString(session, SessKeyOAuthState)
	if !ok || savedState != c.Query("state") {
		return apperrors.Unauthorized("Invalid OAuth state")
	}
	session.Delete(string(SessKeyOAuthState))
	// Persist the consumed state before anything can fail, so a failed
	// callback cannot be replayed with the same state.
	if err := session.Save(); err != nil {
		return apperrors.Internal(fmt.Errorf("failed to save OAuth session: %w", err))
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	token, err := s.oidc.oauth2.Exchange(ctx, c.Query("code"))
	if err != nil {
		return apperrors.Unauthorized("Failed to exchange authorization code").Wrap(err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return apperrors.Unauthorized("No id_token in provider response")
	}

	verifier := s.oidc.provider.Verifier(&oidc.Config{ClientID: s.oidc.clientID})
	idToken, err := verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return apperrors.Unauthorized("Failed to verify ID token").Wrap(err)
	}

	var claims struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return apperrors.Unauthorized("Failed to parse ID token claims").Wrap(err)
	}
	if claims.Email == "" {
		return apperrors.Unauthorized("Provider did not supply an email claim")
	}

	user, err := s.users.FindByEmail(c.Request.Context(), claims.Email)
	if err != nil {
		if errors.Is(err, apperrors.NotFound("")) {
			return apperrors.Unauthorized(fmt.Sprintf("No account for email %s", claims.Email))
		}
		return err
	}
	if !user.IsActive {
		return apperrors.Unauthorized("Account is deactivated")
	}

	return s.createSession(c, SessionData{
		UserID:     user.ID,
		Email:      user.Email,
		Role:       user.Role,
		AuthMethod: "oidc",
	})
}

// generateState returns a random URL-safe token for CSRF protection.
func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
