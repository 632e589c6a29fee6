// @title                       Baby Care Shop API
// @version                     1.0
// @description                 Accounts, catalog and orders of the baby accessories shop.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/babycare/shop-api/internal/api"
	"github.com/babycare/shop-api/internal/api/handler"
	"github.com/babycare/shop-api/internal/core/ports"
	"github.com/babycare/shop-api/internal/core/service"
	"github.com/babycare/shop-api/internal/infrastructure/db/mongo"
	"github.com/babycare/shop-api/internal/infrastructure/db/redis"
	"github.com/babycare/shop-api/internal/infrastructure/security"
	"github.com/babycare/shop-api/internal/pkg/config"
	"github.com/babycare/shop-api/pkg/logger"
)

const serviceName = "shop-api"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		l := logger.Get()
		l.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		// No config means no level; log with defaults.
		logger.Init(logger.Options{Service: serviceName})
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Development(),
		Service: serviceName,
	})

	// --- Store ---
	store, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.Timeout,
	})
	if err != nil {
		return err
	}
	defer closeStore(store, log)

	if err := store.EnsureIndexes(ctx); err != nil {
		return err
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("mongodb connected")

	checks := map[string]handler.Check{"mongodb": store.Ping}

	// --- Idempotency cache (optional) ---
	var idem ports.IdempotencyStore
	redisCfg := redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB}
	if redisCfg.Enabled() {
		rdb, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, order idempotency disabled")
		} else {
			defer closeRedis(rdb, log)
			idem = redis.NewIdempotencyStore(rdb)
			checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
			log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")
		}
	}

	// --- Services ---
	db, timeout := store.DB(), store.Timeout()
	products := mongo.NewProductRepository(db, timeout)
	jwtm := security.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL.Duration())
	auth := service.NewAuthService(mongo.NewUserRepository(db, timeout), security.NewBcryptHasher(cfg.Auth.BcryptCost), jwtm, log)

	if err := seedAdmin(ctx, auth, cfg.Admin); err != nil {
		return err
	}

	e := api.NewRouter(api.RouterConfig{
		Auth:     auth,
		Catalog:  service.NewCatalogService(products, mongo.NewCategoryRepository(db, timeout), log),
		Orders:   service.NewOrderService(mongo.NewOrderRepository(db, timeout), products, idem, log),
		Verifier: jwtm,
		Checks:   checks,
		Logger:   log,
		Metrics:  true,
	})

	// --- Serve until signalled ---
	errCh := make(chan error, 1)
	go func() {
		addr := net.JoinHostPort("", cfg.Port)
		log.Info().Str("addr", addr).Msg("server listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Dur("timeout", cfg.ShutdownTimeout).Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// seedAdmin makes sure the configured bootstrap admin exists. Public
// registration only ever creates customers.
func seedAdmin(ctx context.Context, auth *service.AuthService, cfg config.AdminConfig) error {
	if !cfg.Enabled() {
		return nil
	}
	_, err := auth.EnsureAdmin(ctx, ports.RegisterInput{Name: cfg.Name, Email: cfg.Email, Password: cfg.Password})
	return err
}

func closeStore(store *mongo.Store, log zerolog.Logger) {
	if err := store.Close(context.Background()); err != nil {
		log.Error().Err(err).Msg("mongodb disconnect")
	}
}

func closeRedis(rdb *goredis.Client, log zerolog.Logger) {
	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("redis close")
	}
}
