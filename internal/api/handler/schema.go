package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/babycare/shop-api/internal/core/domain"
)

// envelope is the body of every catalog, order and auth response.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// errorResponse documents the failure body written by the central error handler.
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func respond(c echo.Context, code int, message string, data any) error {
	return c.JSON(code, envelope{Success: true, Message: message, Data: data})
}

// bindAndValidate decodes the request into req and runs the registered validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}

// --- Auth ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
	Role     string `json:"role"     validate:"omitempty,oneof=customer"`
}

// loginRequest accepts any stored identifier, including accounts created
// before email format checks existed.
type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	Token       string `json:"token"`
	AccessToken string `json:"accessToken"`
}

type meResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Data    domain.Claims `json:"data"`
}

// --- Catalog ---

type createProductRequest struct {
	Title       string  `json:"title"       validate:"required"`
	Image       string  `json:"image"`
	Category    string  `json:"category"    validate:"required"`
	Price       float64 `json:"price"       validate:"gte=0"`
	PrevPrice   float64 `json:"prevPrice"   validate:"gte=0"`
	IsFlashSale bool    `json:"isFlashSale"`
	Rating      float64 `json:"rating"      validate:"gte=0,lte=5"`
	Description string  `json:"description"`
}

// updateProductRequest keeps absent fields nil so they are left untouched.
type updateProductRequest struct {
	Title       *string  `json:"title"`
	Image       *string  `json:"image"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price"       validate:"omitempty,gte=0"`
	PrevPrice   *float64 `json:"prevPrice"   validate:"omitempty,gte=0"`
	IsFlashSale *bool    `json:"isFlashSale"`
	Rating      *float64 `json:"rating"      validate:"omitempty,gte=0,lte=5"`
	Description *string  `json:"description"`
}

type createCategoryRequest struct {
	Name        string `json:"name"        validate:"required"`
	Image       string `json:"image"`
	Description string `json:"description"`
}

// searchResponse keeps the body shape existing storefront clients read from
// GET /baby-accessories.
type searchResponse struct {
	Status  bool              `json:"status"`
	Message string            `json:"message"`
	Data    []*domain.Product `json:"data"`
}

// --- Orders ---

type orderItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity"  validate:"required,gt=0"`
}

type shippingRequest struct {
	Name   string `json:"name"   validate:"required"`
	Street string `json:"street" validate:"required"`
	City   string `json:"city"   validate:"required"`
	Phone  string `json:"phone"`
}

type placeOrderRequest struct {
	Items    []orderItemRequest `json:"items"    validate:"required,min=1,dive"`
	Shipping shippingRequest    `json:"shipping" validate:"required"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending processing shipped delivered cancelled"`
}
