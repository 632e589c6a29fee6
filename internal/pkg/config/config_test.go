package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseEnv() map[string]string {
	return map[string]string{
		"SERVER_URI": "mongodb://db:27017",
		"JWT_SECRET": "s3cret",
		"EXPIRES_IN": "1d",
	}
}

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(baseEnv()))
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "babKrShop", cfg.Mongo.Database)
	assert.Equal(t, 10*time.Second, cfg.Mongo.Timeout)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL.Duration())
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Empty(t, cfg.Redis.Addr)
	assert.True(t, cfg.Development())
}

func TestLoadWith_RequiredMissing(t *testing.T) {
	for _, key := range []string{"SERVER_URI", "JWT_SECRET", "EXPIRES_IN"} {
		t.Run(key, func(t *testing.T) {
			env := baseEnv()
			delete(env, key)

			_, err := LoadWith(context.Background(), envconfig.MapLookuper(env))
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestLoadWith_Rejects(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"blank secret", "JWT_SECRET", "   "},
		{"zero ttl", "EXPIRES_IN", "0"},
		{"bad ttl", "EXPIRES_IN", "forever"},
		{"low cost", "BCRYPT_COST", "2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := baseEnv()
			env[tt.key] = tt.val

			_, err := LoadWith(context.Background(), envconfig.MapLookuper(env))
			assert.Error(t, err)
		})
	}
}

func TestLoadWith_AdminSeed(t *testing.T) {
	env := baseEnv()
	env["ADMIN_EMAIL"] = "root@shop.test"
	env["ADMIN_PASSWORD"] = "s3cret"

	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(env))
	require.NoError(t, err)
	assert.True(t, cfg.Admin.Enabled())
	assert.Equal(t, "Administrator", cfg.Admin.Name)

	delete(env, "ADMIN_PASSWORD")
	_, err = LoadWith(context.Background(), envconfig.MapLookuper(env))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADMIN_PASSWORD")
}

func TestParseTTL(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"3600", 3600 * time.Millisecond},
		{"500ms", 500 * time.Millisecond},
		{"60s", time.Minute},
		{"7d", 7 * 24 * time.Hour},
		{"1.5d", 36 * time.Hour},
		{"90m", 90 * time.Minute},
		{" 2h ", 2 * time.Hour},
		{"2 Hours", 2 * time.Hour},
		{"1w", 7 * 24 * time.Hour},
		{"1y", 8766 * time.Hour},
		{"1h30m", 90 * time.Minute},
	}
	for _, tt := range tests {
		got, err := ParseTTL(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"", "d", "xd", "soon", "7 fortnights"} {
		_, err := ParseTTL(bad)
		assert.Error(t, err, bad)
	}
}
