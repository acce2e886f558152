package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.velora.shop/internal/customer"
)

func testTokens() *TokenService {
	return NewTokenService(TokenServiceConfig{
		Issuer:             "velora",
		Secret:             "test-secret-for-sessions",
		SessionTokenExpiry: time.Hour,
	})
}

func testCustomer() *customer.Customer {
	return &customer.Customer{
		ID:    "c-1",
		Email: "anna@example.com",
		Name:  "Anna Schmidt",
		Role:  customer.RoleCustomer,
	}
}

// === Token tests ===

func TestIssueAndValidateSessionToken(t *testing.T) {
	svc := testTokens()

	token, err := svc.IssueSessionToken(testCustomer())
	if err != nil {
		t.Fatalf("IssueSessionToken failed: %v", err)
	}

	claims, err := svc.ValidateSessionToken(token)
	if err != nil {
		t.Fatalf("ValidateSessionToken failed: %v", err)
	}

	if claims.Subject != "c-1" {
		t.Errorf("Expected subject c-1, got %q", claims.Subject)
	}
	if claims.Email != "anna@example.com" {
		t.Errorf("Unexpected email %q", claims.Email)
	}
	if claims.Role != "CUSTOMER" {
		t.Errorf("Unexpected role %q", claims.Role)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, _ := testTokens().IssueSessionToken(testCustomer())

	other := NewTokenService(TokenServiceConfig{
		Issuer:             "velora",
		Secret:             "a-different-secret",
		SessionTokenExpiry: time.Hour,
	})

	if _, err := other.ValidateSessionToken(token); err != ErrInvalidToken {
		t.Errorf("Expected ErrInvalidToken, got %v", err)
	}
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	svc := testTokens()
	svc.sessionTokenExpiry = -time.Minute

	token, err := svc.IssueSessionToken(testCustomer())
	if err != nil {
		t.Fatalf("IssueSessionToken failed: %v", err)
	}

	if _, err := testTokens().ValidateSessionToken(token); err != ErrExpiredToken {
		t.Errorf("Expected ErrExpiredToken, got %v", err)
	}
}

func TestValidateRejectsWrongIssuer(t *testing.T) {
	other := NewTokenService(TokenServiceConfig{
		Issuer:             "someone-else",
		Secret:             "test-secret-for-sessions",
		SessionTokenExpiry: time.Hour,
	})
	token, _ := other.IssueSessionToken(testCustomer())

	if _, err := testTokens().ValidateSessionToken(token); err != ErrInvalidToken {
		t.Errorf("Expected ErrInvalidToken for wrong issuer, got %v", err)
	}
}

// === Session manager tests ===

func TestSessionCookieRoundTrip(t *testing.T) {
	m := NewSessionManager(DefaultSessionConfig())

	w := httptest.NewRecorder()
	m.SetSession(w, "the-token")

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("Expected one cookie, got %d", len(cookies))
	}
	cookie := cookies[0]
	if cookie.Name != "VELORA_SESSION" || cookie.Value != "the-token" {
		t.Errorf("Unexpected cookie %+v", cookie)
	}
	if !cookie.HttpOnly {
		t.Error("Session cookie must be HttpOnly")
	}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(cookie)
	if got := m.GetSession(r); got != "the-token" {
		t.Errorf("Expected token from cookie, got %q", got)
	}
}

func TestGetSessionFallsBackToBearer(t *testing.T) {
	m := NewSessionManager(DefaultSessionConfig())

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer header-token")

	if got := m.GetSession(r); got != "header-token" {
		t.Errorf("Expected bearer token, got %q", got)
	}
}

func TestClearSessionExpiresCookie(t *testing.T) {
	m := NewSessionManager(DefaultSessionConfig())

	w := httptest.NewRecorder()
	m.ClearSession(w)

	cookie := w.Result().Cookies()[0]
	if cookie.MaxAge != -1 || cookie.Value != "" {
		t.Errorf("Expected expired empty cookie, got %+v", cookie)
	}
}

// === Middleware tests ===

func middlewareUnderTest() (*Middleware, string, string) {
	tokens := testTokens()
	sessions := NewSessionManager(DefaultSessionConfig())
	mw := NewMiddleware(sessions, tokens)

	customerToken, _ := tokens.IssueSessionToken(testCustomer())

	admin := testCustomer()
	admin.ID = "c-admin"
	admin.Role = customer.RoleAdmin
	adminToken, _ := tokens.IssueSessionToken(admin)

	return mw, customerToken, adminToken
}

func TestRequireAuth(t *testing.T) {
	mw, customerToken, _ := middlewareUnderTest()

	var principal *Principal
	handler := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, _ = PrincipalFromContext(r.Context())
	}))

	// Without session
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without session, got %d", w.Code)
	}

	// With session
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+customerToken)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 with session, got %d", w.Code)
	}
	if principal == nil || principal.CustomerID != "c-1" {
		t.Errorf("Expected principal in context, got %+v", principal)
	}
}

func TestRequireAdmin(t *testing.T) {
	mw, customerToken, adminToken := middlewareUnderTest()

	handler := mw.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+customerToken)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for customer, got %d", w.Code)
	}

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+adminToken)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 for admin, got %d", w.Code)
	}
}

func TestOptionalWithoutSession(t *testing.T) {
	mw, _, _ := middlewareUnderTest()

	called := false
	handler := mw.Optional(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if _, ok := PrincipalFromContext(r.Context()); ok {
			t.Error("Expected no principal without session")
		}
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if !called {
		t.Error("Optional middleware must pass anonymous requests through")
	}
}
