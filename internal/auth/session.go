package auth

import (
	"net/http"
	"strings"
	"time"
)

// SessionConfig holds session cookie configuration
type SessionConfig struct {
	CookieName string
	Secure     bool
	SameSite   http.SameSite
	MaxAge     time.Duration
	Path       string
	Domain     string
}

// DefaultSessionConfig returns default session configuration
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		CookieName: "VELORA_SESSION",
		Secure:     true,
		SameSite:   http.SameSiteLaxMode,
		MaxAge:     8 * time.Hour,
		Path:       "/",
	}
}

// SessionManager handles session cookies
type SessionManager struct {
	config SessionConfig
}

// NewSessionManager creates a new session manager
func NewSessionManager(config SessionConfig) *SessionManager {
	return &SessionManager{config: config}
}

// SetSession sets the session cookie with the given token
func (m *SessionManager) SetSession(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.config.CookieName,
		Value:    token,
		Path:     m.config.Path,
		Domain:   m.config.Domain,
		MaxAge:   int(m.config.MaxAge.Seconds()),
		Secure:   m.config.Secure,
		HttpOnly: true,
		SameSite: m.config.SameSite,
	})
}

// ClearSession clears the session cookie
func (m *SessionManager) ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.config.CookieName,
		Value:    "",
		Path:     m.config.Path,
		Domain:   m.config.Domain,
		MaxAge:   -1,
		Secure:   m.config.Secure,
		HttpOnly: true,
		SameSite: m.config.SameSite,
	})
}

// GetSession retrieves the session token from the request.
// It checks the cookie first and falls back to the Authorization header.
func (m *SessionManager) GetSession(r *http.Request) string {
	cookie, err := r.Cookie(m.config.CookieName)
	if err == nil && cookie.Value != "" {
		return cookie.Value
	}

	return m.GetBearerToken(r)
}

// GetBearerToken extracts the bearer token from the Authorization header
func (m *SessionManager) GetBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}

	const prefix = "Bearer "
	if len(auth) < len(prefix) || !strings.EqualFold(auth[:len(prefix)], prefix) {
		return ""
	}

	return auth[len(prefix):]
}

// ParseSameSite converts a string to http.SameSite
func ParseSameSite(s string) http.SameSite {
	switch strings.ToLower(s) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	case "lax":
		return http.SameSiteLaxMode
	default:
		return http.SameSiteLaxMode
	}
}
