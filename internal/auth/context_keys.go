package auth

import "github.com/gin-gonic/gin"

// ContextKey is a typed key for request context values.
type ContextKey string

// Context keys for storing user information in the request context.
const (
	// CtxKeyUser is the context key for the authenticated user's data.
	CtxKeyUser ContextKey = "auth_user"
)

// UserContext contains the authenticated user's request-scoped data.
type UserContext struct {
	UserID     string
	Email      string
	Role       string
	AuthMethod string
}

// SetUserContext stores user context data on the request.
func SetUserContext(c *gin.Context, ctx UserContext) {
	c.Set(string(CtxKeyUser), ctx)
}

// GetUserContext retrieves the authenticated user's data from the request.
func GetUserContext(c *gin.Context) (UserContext, bool) {
	val, ok := c.Get(string(CtxKeyUser))
	if !ok {
		return UserContext{}, false
	}
	ctx, ok := val.(UserContext)
	return ctx, ok
}

// UserRole retrieves the authenticated user's role from the request.
func UserRole(c *gin.Context) (string, bool) {
	ctx, ok := GetUserContext(c)
	if !ok {
		return "", false
	}
	return ctx.Role, true
}
