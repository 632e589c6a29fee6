package main

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/babycare/shop-api/internal/core/domain"
	"github.com/babycare/shop-api/internal/core/ports"
	"github.com/babycare/shop-api/internal/core/service"
	"github.com/babycare/shop-api/internal/infrastructure/security"
	"github.com/babycare/shop-api/internal/pkg/config"
)

type memUsers map[string]*domain.User

func (m memUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := m[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m memUsers) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	if _, ok := m[u.Email]; ok {
		return nil, domain.ErrUserExists
	}
	cp := *u
	m[u.Email] = &cp
	return &cp, nil
}

func newAuth(users memUsers) *service.AuthService {
	jwtm := security.NewJWTManager("secret", time.Hour)
	return service.NewAuthService(users, security.NewBcryptHasher(bcrypt.MinCost), jwtm, zerolog.Nop())
}

func TestRun_InvalidConfig(t *testing.T) {
	t.Setenv("SERVER_URI", "mongodb://127.0.0.1:1")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("EXPIRES_IN", "forever")

	err := run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid duration")
}

func TestSeedAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled", func(t *testing.T) {
		users := memUsers{}
		require.NoError(t, seedAdmin(ctx, newAuth(users), config.AdminConfig{}))
		assert.Empty(t, users)
	})

	t.Run("creates the admin once", func(t *testing.T) {
		users := memUsers{}
		cfg := config.AdminConfig{Name: "Root", Email: "Root@Shop.test", Password: "s3cret"}

		require.NoError(t, seedAdmin(ctx, newAuth(users), cfg))
		require.NoError(t, seedAdmin(ctx, newAuth(users), cfg))
		require.Len(t, users, 1)
		assert.Equal(t, domain.RoleAdmin, users["root@shop.test"].Role)
	})

	t.Run("email held by a customer", func(t *testing.T) {
		users := memUsers{}
		auth := newAuth(users)
		_, err := auth.Register(ctx, ports.RegisterInput{Name: "M", Email: "root@shop.test", Password: "p"})
		require.NoError(t, err)

		err = seedAdmin(ctx, auth, config.AdminConfig{Name: "Root", Email: "root@shop.test", Password: "s3cret"})
		assert.ErrorIs(t, err, domain.ErrUserExists)
		assert.Equal(t, domain.RoleCustomer, users["root@shop.test"].Role)
	})
}
