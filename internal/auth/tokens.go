// Package auth provides session tokens and request authentication
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"go.velora.shop/internal/customer"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// SessionClaims represents claims in a customer session token
type SessionClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role"`
}

// TokenService issues and validates HS256 session tokens
type TokenService struct {
	issuer             string
	secret             []byte
	sessionTokenExpiry time.Duration
}

// TokenServiceConfig holds configuration for the token service
type TokenServiceConfig struct {
	Issuer             string
	Secret             string
	SessionTokenExpiry time.Duration
}

// NewTokenService creates a new token service
func NewTokenService(cfg TokenServiceConfig) *TokenService {
	expiry := cfg.SessionTokenExpiry
	if expiry <= 0 {
		expiry = 8 * time.Hour
	}
	return &TokenService{
		issuer:             cfg.Issuer,
		secret:             []byte(cfg.Secret),
		sessionTokenExpiry: expiry,
	}
}

// IssueSessionToken creates a session token for a customer
func (s *TokenService) IssueSessionToken(c *customer.Customer) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   c.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTokenExpiry)),
		},
		Email: c.Email,
		Name:  c.Name,
		Role:  string(c.Role),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateSessionToken parses and validates a session token
func (s *TokenService) ValidateSessionToken(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
