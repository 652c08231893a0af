package auth

import "github.com/gin-contrib/sessions"

// SessionKey is a typed key for session values to prevent typos.
type SessionKey string

// Session keys for storing authentication data in sessions.
const (
	// SessKeyUserID stores the authenticated user's id
	SessKeyUserID SessionKey = "user_id"
	// SessKeyEmail stores the authenticated user's email
	SessKeyEmail SessionKey = "email"
	// SessKeyRole stores the authenticated user's role
	SessKeyRole SessionKey = "role"
	// SessKeyAuthMethod stores the authentication method used (local/oidc)
	SessKeyAuthMethod SessionKey = "auth_method"
	// SessKeyOAuthState stores the OAuth CSRF state token
	SessKeyOAuthState SessionKey = "oauth_state"
)

// SessionData contains all authentication-related session data.
type SessionData struct {
	UserID     string
	Email      string
	Role       string
	AuthMethod string
}

// SetSessionAuth stores authentication data in the session.
func SetSessionAuth(session sessions.Session, data SessionData) {
	session.Set(string(SessKeyUserID), data.UserID)
	session.Set(string(SessKeyEmail), data.Email)
	session.Set(string(SessKeyRole), data.Role)
	session.Set(string(SessKeyAuthMethod), data.AuthMethod)
}

// ClearSessionAuth removes all authentication data from the session.
func ClearSessionAuth(session sessions.Session) {
	session.Clear()
}

// SessionString retrieves a string value from the session by key.
func SessionString(session sessions.Session, key SessionKey) (string, bool) {
	val := session.Get(string(key))
	if val == nil {
		return "", false
	}
	if s, ok := val.(string); ok {
		return s, true
	}
	return "", false
}

// SessionUserID retrieves the user id from the session.
func SessionUserID(session sessions.Session) (string, bool) {
	return SessionString(session, SessKeyUserID)
}
