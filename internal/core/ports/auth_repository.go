package ports

import (
	"context"

	"github.com/babycare/shop-api/internal/core/domain"
)

// UserRepository is the credential store, keyed by email.
type UserRepository interface {
	// FindByEmail returns domain.ErrUserNotFound when no account matches.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create returns domain.ErrUserExists when the email is already taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
