package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/babycare/shop-api/docs"
	"github.com/babycare/shop-api/internal/api/handler"
	"github.com/babycare/shop-api/internal/api/middleware"
	"github.com/babycare/shop-api/internal/core/domain"
	"github.com/babycare/shop-api/internal/core/ports"
)

// RouterConfig carries everything the router wires together.
type RouterConfig struct {
	Auth     ports.AuthService
	Catalog  ports.CatalogService
	Orders   ports.OrderService
	Verifier ports.TokenVerifier
	// Checks are the readiness probes keyed by dependency name.
	Checks map[string]handler.Check
	Logger zerolog.Logger
	// Metrics mounts the echoprometheus middleware and /metrics. The
	// middleware registers with the default registry, so only one router
	// per process may enable it.
	Metrics bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORS())
	e.Use(requestLogger(cfg.Logger))
	if cfg.Metrics {
		e.Use(echoprometheus.NewMiddleware("shop"))
		e.GET("/metrics", echoprometheus.NewHandler())
	}

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(cfg.Auth)
	productHandler := handler.NewProductHandler(cfg.Catalog)
	categoryHandler := handler.NewCategoryHandler(cfg.Catalog)
	orderHandler := handler.NewOrderHandler(cfg.Orders)
	healthHandler := handler.NewHealthHandler(cfg.Checks)

	authenticated := middleware.Auth(cfg.Verifier, cfg.Logger)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Status and health probes (no auth required) ---
	e.GET("/", healthHandler.Root)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth routes ---
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/me", authHandler.Me, authenticated)

	// --- Catalog: reads are public, writes need an admin token ---
	e.GET("/products", productHandler.List)
	e.GET("/products/:id", productHandler.Get)
	e.GET("/baby-accessories", productHandler.Search)
	e.GET("/categories", categoryHandler.List)

	e.POST("/products", productHandler.Create, authenticated, adminOnly)
	e.POST("/product", productHandler.Create, authenticated, adminOnly)
	e.PUT("/products/:id", productHandler.Update, authenticated, adminOnly)
	e.DELETE("/products/:id", productHandler.Delete, authenticated, adminOnly)
	e.POST("/categories", categoryHandler.Create, authenticated, adminOnly)
	e.POST("/category", categoryHandler.Create, authenticated, adminOnly)

	// --- Orders ---
	orders := e.Group("/orders", authenticated)
	orders.POST("", orderHandler.Place)
	orders.GET("", orderHandler.List)
	orders.GET("/:id", orderHandler.Get)
	orders.PUT("/:id", orderHandler.UpdateStatus, adminOnly)
	orders.DELETE("/:id", orderHandler.Delete, adminOnly)

	return e
}

// requestLogger writes one access log line per request through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= http.StatusInternalServerError {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
