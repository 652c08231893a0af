// Package utils provides shared helpers for HTTP handlers.
package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Pagination bounds for list endpoints.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// GetPagination extracts limit and offset from query parameters.
// Values outside the accepted range fall back to the defaults.
func GetPagination(c *gin.Context) (limit, offset int) {
	limit = DefaultLimit
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 && l <= MaxLimit {
		limit = l
	}
	if o, err := strconv.Atoi(c.Query("offset")); err == nil && o >= 0 {
		offset = o
	}
	return
}
