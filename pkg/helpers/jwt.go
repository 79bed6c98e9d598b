package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

// TokenManager handles generation and validation of JWT bearer tokens.
// Tokens carry sub = username, a unique jti, issuer, audience and an
// absolute expiry. There is no refresh or revocation; expiry is the only
// bound on a token's lifetime.
type TokenManager struct {
	Secret   []byte
	Issuer   string
	Audience string
	TTL      time.Duration

	now func() time.Time // overridable for tests
}

var defaultManager *TokenManager

func NewTokenManager(secret, issuer, audience string, ttl time.Duration) *TokenManager {
	m := &TokenManager{
		Secret:   []byte(secret),
		Issuer:   issuer,
		Audience: audience,
		TTL:      ttl,
		now:      time.Now,
	}
	defaultManager = m
	return m
}

// DefaultTokenManager returns the last constructed TokenManager (used for auto-wiring routes)
func DefaultTokenManager() *TokenManager { return defaultManager }

// WithClock replaces the clock used for issuance and validation.
func (m *TokenManager) WithClock(now func() time.Time) *TokenManager {
	m.now = now
	return m
}

// Generate issues a signed token for the given username and returns it
// together with its absolute expiry.
func (m *TokenManager) Generate(username string) (string, time.Time, error) {
	now := m.now()
	exp := now.Add(m.TTL)
	claims := jwt.RegisteredClaims{
		Subject:   username,
		ID:        uuid.NewString(),
		Issuer:    m.Issuer,
		Audience:  jwt.ClaimStrings{m.Audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.Secret)
	return s, exp, err
}

// Validate checks signature, issuer, audience and expiry, and returns the
// token's subject (the username). All failures collapse into one error
// surface; callers must not report which check failed.
func (m *TokenManager) Validate(tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.Secret, nil
	},
		jwt.WithIssuer(m.Issuer),
		jwt.WithAudience(m.Audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return "", ErrInvalidToken
	}
	if !tkn.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
