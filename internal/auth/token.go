package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"apptrack/internal/config"
)

// ErrInvalidToken covers every expected validation failure: bad signature,
// wrong issuer or audience, malformed input, expiry. Callers translate it to
// an authentication failure; it is never a fatal condition.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the identity assertion carried by a bearer token. The subject
// registered claim holds the user id.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// UserID returns the stable user identifier the token was issued for.
func (c *Claims) UserID() string {
	return c.Subject
}

// TokenManager issues and validates signed, time-bound identity assertions.
// Its configuration is fixed at construction; nothing is read from ambient
// state at call time.
type TokenManager struct {
	cfg config.AuthConfig
	now func() time.Time
}

// NewTokenManager creates a TokenManager from immutable auth configuration.
func NewTokenManager(cfg config.AuthConfig) (*TokenManager, error) {
	if cfg.Secret == "" {
		return nil, errors.New("auth secret is required")
	}
	if cfg.Issuer == "" || cfg.Audience == "" {
		return nil, errors.New("auth issuer and audience are required")
	}
	if cfg.TokenTTL <= 0 {
		return nil, errors.New("auth token ttl must be positive")
	}
	return &TokenManager{cfg: cfg, now: time.Now}, nil
}

// Issue mints an HS256 token for the given user identity.
func (m *TokenManager) Issue(userID, email string) (string, error) {
	now := m.now().UTC()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.cfg.Issuer,
			Audience:  jwt.ClaimStrings{m.cfg.Audience},
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.cfg.TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.cfg.Secret))
}

// Validate checks signature, issuer, audience, and expiry. Expiry has zero
// leeway: a token expired by one second is rejected.
func (m *TokenManager) Validate(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return []byte(m.cfg.Secret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.cfg.Issuer),
		jwt.WithAudience(m.cfg.Audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return m.now() }),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
