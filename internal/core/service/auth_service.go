package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/babycare/shop-api/internal/core/domain"
	"github.com/babycare/shop-api/internal/core/ports"
)

// AuthService implements registration and login.
type AuthService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
	log    zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenIssuer, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, tokens: tokens, log: log}
}

// normalizeEmail makes lookups insensitive to case and stray whitespace.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// maxPasswordBytes is the longest input bcrypt hashes.
const maxPasswordBytes = 72

// Register creates a customer account. Admin accounts are only created by
// EnsureAdmin.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	role := in.Role
	if role == "" {
		role = domain.RoleCustomer
	}
	if role != domain.RoleCustomer {
		return nil, fmt.Errorf("%w: role %q cannot be self-assigned", domain.ErrInvalidInput, role)
	}
	return s.create(ctx, in.Name, in.Email, role, in.Password)
}

// EnsureAdmin creates the bootstrap admin account unless it already exists.
// An existing account under that email must already hold the admin role.
func (s *AuthService) EnsureAdmin(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	user, err := s.create(ctx, in.Name, in.Email, domain.RoleAdmin, in.Password)
	if !errors.Is(err, domain.ErrUserExists) {
		return user, err
	}

	email := normalizeEmail(in.Email)
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("ensure admin: %w", err)
	}
	if existing.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("ensure admin: %s is held by a %s account: %w", email, existing.Role, domain.ErrUserExists)
	}
	return existing, nil
}

// create checks for an existing account first so the common case gets a
// clean answer; the unique index behind repo.Create settles concurrent races.
func (s *AuthService) create(ctx context.Context, name, email, role, password string) (*domain.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}
	if len(password) > maxPasswordBytes {
		return nil, fmt.Errorf("%w: password must be at most %d bytes", domain.ErrInvalidInput, maxPasswordBytes)
	}

	_, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, domain.ErrUserExists
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("register: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return nil, err
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Name:         name,
		Email:        email,
		Role:         role,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, err
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	s.log.Info().Str("email", created.Email).Str("role", created.Role).Msg("user registered")
	return created, nil
}

// Login verifies credentials and issues an access token. Unknown email and
// wrong password both yield domain.ErrInvalidCredentials; only the log keeps
// them apart.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	email = normalizeEmail(email)

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Info().Str("email", email).Str("reason", "unknown_email").Msg("login rejected")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.log.Info().Str("email", email).Str("reason", "wrong_password").Msg("login rejected")
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(domain.ClaimsFor(user))
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	s.log.Debug().Str("email", email).Msg("login succeeded")
	return &ports.LoginResult{Token: token, User: user}, nil
}
