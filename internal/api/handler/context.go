package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/babycare/shop-api/internal/core/domain"
	"github.com/babycare/shop-api/internal/core/ports"
)

// ctxClaims extracts the claims injected by the Auth middleware. Email and
// role must both be present; their absence means the route was mounted
// without the middleware.
func ctxClaims(c echo.Context) (domain.Claims, error) {
	email, _ := c.Get("email").(string)
	role, _ := c.Get("role").(string)
	if email == "" || role == "" {
		return domain.Claims{}, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	name, _ := c.Get("name").(string)
	return domain.Claims{Email: email, Role: role, Name: name}, nil
}

func ctxActor(c echo.Context) (ports.Actor, error) {
	claims, err := ctxClaims(c)
	if err != nil {
		return ports.Actor{}, err
	}
	return ports.Actor{Email: claims.Email, Role: claims.Role}, nil
}
