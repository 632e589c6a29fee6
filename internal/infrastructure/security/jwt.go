package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/babycare/shop-api/internal/core/domain"
)

// tokenClaims is the JWT payload: the shop identity plus registered claims
// (sub = email, iat, exp).
type tokenClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"`
	Name  string `json:"name,omitempty"`
}

// JWTManager issues and verifies HS256 access tokens with a shared secret.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTManager panics on an empty secret: an unsigned deployment must never start.
func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	if secret == "" {
		panic("security: empty JWT secret")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs claims with an expiry of now+ttl.
func (m *JWTManager) Issue(claims domain.Claims) (string, error) {
	now := m.now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		Email: claims.Email,
		Role:  claims.Role,
		Name:  claims.Name,
	})

	signed, err := t.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the embedded claims.
// Failures wrap domain.ErrTokenMalformed, ErrTokenSignature or ErrTokenExpired.
func (m *JWTManager) Verify(token string) (*domain.Claims, error) {
	var tc tokenClaims
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)

	parsed, err := parser.ParseWithClaims(token, &tc, func(*jwt.Token) (any, error) {
		return m.secret, nil
	})
	if err != nil {
		return nil, classify(err)
	}
	if !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}

	return &domain.Claims{Email: tc.Email, Role: tc.Role, Name: tc.Name}, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w (%v)", domain.ErrTokenExpired, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w (%v)", domain.ErrTokenSignature, err)
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w (%v)", domain.ErrTokenMalformed, err)
	default:
		return fmt.Errorf("%w (%v)", domain.ErrInvalidToken, err)
	}
}
