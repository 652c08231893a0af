// Package auth provides authentication and authorization services for the userbase API.
package auth

// Method specifies which authentication mechanisms are enabled.
type Method string

// Supported authentication methods.
const (
	MethodLocal Method = "local"
	MethodOIDC  Method = "oidc"
	MethodBoth  Method = "both"
)

// SupportsLocal reports whether password login is enabled.
func (m Method) SupportsLocal() bool {
	return m == MethodLocal || m == MethodBoth
}

// SupportsOIDC reports whether OIDC login is enabled.
func (m Method) SupportsOIDC() bool {
	return m == MethodOIDC || m == MethodBoth
}

// Config holds authentication service configuration.
type Config struct {
	Method  Method
	OIDC    OIDCConfig
	Session SessionConfig
}

// OIDCConfig holds OIDC provider settings.
type OIDCConfig struct {
	ProviderURL  string
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

// SessionConfig holds cookie session settings.
type SessionConfig struct {
	SecretKey      string
	CookieName     string
	CookiePath     string
	CookieDomain   string
	CookieSecure   bool
	CookieSameSite string
	MaxAge         int
}
