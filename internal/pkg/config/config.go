package config

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port            string        `env:"PORT,             default=5000"`
	Env             string        `env:"ENV,              default=development"`
	LogLevel        string        `env:"LOG_LEVEL,        default=info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`

	Auth  AuthConfig
	Admin AdminConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type AuthConfig struct {
	JWTSecret  string `env:"JWT_SECRET,  required"`
	TokenTTL   TTL    `env:"EXPIRES_IN,  required"`
	BcryptCost int    `env:"BCRYPT_COST, default=10"`
}

// AdminConfig seeds the bootstrap admin account at startup. An empty Email
// disables seeding.
type AdminConfig struct {
	Name     string `env:"ADMIN_NAME, default=Administrator"`
	Email    string `env:"ADMIN_EMAIL"`
	Password string `env:"ADMIN_PASSWORD"`
}

func (a AdminConfig) Enabled() bool { return strings.TrimSpace(a.Email) != "" }

type MongoConfig struct {
	URI      string        `env:"SERVER_URI,    required"`
	Database string        `env:"MONGO_DB,      default=babKrShop"`
	Timeout  time.Duration `env:"MONGO_TIMEOUT, default=10s"`
}

// RedisConfig is optional: an empty Addr disables order idempotency.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

// Development reports whether the service runs on a developer machine.
func (c *Config) Development() bool {
	return strings.EqualFold(c.Env, "development")
}

// TTL is a token lifetime written the way the zeit/ms package reads it: a
// number followed by an optional unit ("7d", "2 hours", "1y"). A bare number
// is milliseconds. Go durations with several components ("1h30m") are
// accepted too.
type TTL time.Duration

// EnvDecode satisfies envconfig.Decoder.
func (t *TTL) EnvDecode(val string) error {
	d, err := ParseTTL(val)
	if err != nil {
		return err
	}
	*t = TTL(d)
	return nil
}

func (t TTL) Duration() time.Duration { return time.Duration(t) }

var ttlPattern = regexp.MustCompile(`(?i)^(-?\d*\.?\d+) *([a-z]*)$`)

// ParseTTL parses the EXPIRES_IN formats described on TTL.
func ParseTTL(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty duration")
	}
	if m := ttlPattern.FindStringSubmatch(s); m != nil {
		unit, ok := ttlUnit(strings.ToLower(m[2]))
		if ok {
			n, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				return 0, fmt.Errorf("invalid duration %q", s)
			}
			return time.Duration(n * float64(unit)), nil
		}
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return d, nil
}

func ttlUnit(u string) (time.Duration, bool) {
	const day = 24 * time.Hour
	switch u {
	case "", "ms", "msec", "msecs", "millisecond", "milliseconds":
		return time.Millisecond, true
	case "s", "sec", "secs", "second", "seconds":
		return time.Second, true
	case "m", "min", "mins", "minute", "minutes":
		return time.Minute, true
	case "h", "hr", "hrs", "hour", "hours":
		return time.Hour, true
	case "d", "day", "days":
		return day, true
	case "w", "week", "weeks":
		return 7 * day, true
	case "y", "yr", "yrs", "year", "years":
		return day * 36525 / 100, true
	}
	return 0, false
}

// Load reads configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration through the given lookuper and rejects values
// the service cannot run with.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return errors.New("JWT_SECRET must not be blank")
	}
	if c.Auth.TokenTTL.Duration() <= 0 {
		return errors.New("EXPIRES_IN must be positive")
	}
	if c.Admin.Enabled() && c.Admin.Password == "" {
		return errors.New("ADMIN_PASSWORD is required when ADMIN_EMAIL is set")
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST %d out of range [4,31]", c.Auth.BcryptCost)
	}
	return nil
}
