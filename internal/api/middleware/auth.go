package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/babycare/shop-api/internal/core/domain"
	"github.com/babycare/shop-api/internal/core/ports"
)

// Auth validates the bearer token and injects its claims into the context
// as "email", "role" and "name". Every failure answers 401 "unauthorized";
// the precise reason is only logged.
func Auth(verifier ports.TokenVerifier, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, reason := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if reason != "" {
				return reject(c, log, reason)
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				return reject(c, log, tokenReason(err))
			}

			c.Set("email", claims.Email)
			c.Set("role", claims.Role)
			c.Set("name", claims.Name)

			return next(c)
		}
	}
}

func bearerToken(header string) (token, reason string) {
	if header == "" {
		return "", "missing_header"
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
		return "", "malformed_header"
	}
	return strings.TrimSpace(token), ""
}

func tokenReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrTokenSignature):
		return "bad_signature"
	case errors.Is(err, domain.ErrTokenMalformed):
		return "malformed_token"
	default:
		return "invalid_token"
	}
}

func reject(c echo.Context, log zerolog.Logger, reason string) error {
	log.Debug().
		Str("reason", reason).
		Str("method", c.Request().Method).
		Str("path", c.Request().URL.Path).
		Msg("request unauthenticated")
	return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
}
