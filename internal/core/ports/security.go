package ports

import "github.com/babycare/shop-api/internal/core/domain"

// PasswordHasher turns plaintext passwords into salted one-way hashes.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Verify reports whether plaintext produced hash.
	Verify(plaintext, hash string) bool
}

// TokenIssuer signs identity claims into a time-limited bearer token.
type TokenIssuer interface {
	Issue(claims domain.Claims) (string, error)
}

// TokenVerifier returns the claims of a token, or an error wrapping
// domain.ErrInvalidToken.
type TokenVerifier interface {
	Verify(token string) (*domain.Claims, error)
}
