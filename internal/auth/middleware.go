package auth

import (
	"context"
	"encoding/json"
	"net/http"
)

type contextKey string

const principalKey contextKey = "principal"

// Principal is the authenticated identity attached to the request context
type Principal struct {
	CustomerID string
	Email      string
	Name       string
	Role       string
}

// IsAdmin returns true for admin principals
func (p *Principal) IsAdmin() bool {
	return p.Role == "ADMIN"
}

// PrincipalFromContext returns the authenticated principal, if any
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey).(*Principal)
	return p, ok
}

// Middleware authenticates requests using the session manager and token service
type Middleware struct {
	sessions *SessionManager
	tokens   *TokenService
}

// NewMiddleware creates the auth middleware
func NewMiddleware(sessions *SessionManager, tokens *TokenService) *Middleware {
	return &Middleware{sessions: sessions, tokens: tokens}
}

// principal validates the request's session and returns the principal, or nil
func (m *Middleware) principal(r *http.Request) *Principal {
	token := m.sessions.GetSession(r)
	if token == "" {
		return nil
	}

	claims, err := m.tokens.ValidateSessionToken(token)
	if err != nil {
		return nil
	}

	return &Principal{
		CustomerID: claims.Subject,
		Email:      claims.Email,
		Name:       claims.Name,
		Role:       claims.Role,
	}
}

// Optional attaches the principal to the context when a valid session
// exists, and lets the request through either way.
func (m *Middleware) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if p := m.principal(r); p != nil {
			r = r.WithContext(context.WithValue(r.Context(), principalKey, p))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuth rejects requests without a valid session
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := m.principal(r)
		if p == nil {
			writeAuthError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), principalKey, p)))
	})
}

// RequireAdmin rejects requests without a valid admin session
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := m.principal(r)
		if p == nil {
			writeAuthError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		if !p.IsAdmin() {
			writeAuthError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), principalKey, p)))
	})
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   message,
	})
}
