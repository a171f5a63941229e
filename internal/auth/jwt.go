package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/flashcard-tutor/internal/domain"
)

// TokenManager issues and validates anonymous client tokens.
// A client token identifies one browser or device; its subject is the
// client ID that scopes the saved deck collection.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager creates a new token manager.
// secret must be at least 32 characters for HS256 security.
func NewTokenManager(secret string, issuer string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// ClientToken is a freshly issued token.
type ClientToken struct {
	Token     string
	ClientID  uuid.UUID
	ExpiresAt time.Time
}

// IssueClientToken creates a signed HS256 JWT for a new client ID.
func (m *TokenManager) IssueClientToken() (*ClientToken, error) {
	clientID := uuid.New()
	now := m.now()
	expiresAt := now.Add(m.ttl)

	claims := jwt.RegisteredClaims{
		Subject:   clientID.String(),
		Issuer:    m.issuer,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(now),
		ID:        uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &ClientToken{Token: signed, ClientID: clientID, ExpiresAt: expiresAt}, nil
}

// ValidateToken parses and validates a client token and returns its client ID.
// All failures wrap domain.ErrUnauthorized.
func (m *TokenManager) ValidateToken(_ context.Context, tokenString string) (uuid.UUID, error) {
	if tokenString == "" {
		return uuid.Nil, fmt.Errorf("token is empty: %w", domain.ErrUnauthorized)
	}

	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse token: %v: %w", err, domain.ErrUnauthorized)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return uuid.Nil, fmt.Errorf("invalid token claims: %w", domain.ErrUnauthorized)
	}

	if claims.Issuer != m.issuer {
		return uuid.Nil, fmt.Errorf("invalid issuer %q: %w", claims.Issuer, domain.ErrUnauthorized)
	}

	clientID, err := uuid.Parse(claims.Subject)
	if err != nil || clientID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("invalid subject: %w", domain.ErrUnauthorized)
	}

	return clientID, nil
}
