// Package handlers provides HTTP request handlers for all API endpoints.
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/avdwerf/userbase/internal/apperrors"
	"github.com/avdwerf/userbase/internal/services"
)

// Handlers contains the dependencies needed by the API handlers.
type Handlers struct {
	userSvc *services.UserService
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(userSvc *services.UserService) *Handlers {
	return &Handlers{userSvc: userSvc}
}

// respondError translates err and writes its response. Every handler
// failure path ends here, so each failed request is translated (and
// therefore logged) exactly once.
func respondError(c *gin.Context, err error) {
	status, body := apperrors.Translate(err)
	c.JSON(status, body)
}

// bindJSON decodes the request body into dst. A malformed body is a
// serialization error, not a validation error: it never reached the
// domain checks.
func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return apperrors.Serialization("Invalid request body: " + err.Error()).Wrap(err)
	}
	return nil
}
