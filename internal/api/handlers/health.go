package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avdwerf/userbase/pkg/version"
)

// Root returns the API banner.
func (h *Handlers) Root(c *gin.Context) {
	c.String(http.StatusOK, "Userbase API")
}

// Health reports service liveness and build information.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": version.Version,
	})
}
