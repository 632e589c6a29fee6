package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/babycare/shop-api/internal/core/domain"
	"github.com/babycare/shop-api/internal/core/ports"
)

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// authenticate mimics what the Auth middleware leaves on the context.
func authenticate(c echo.Context, email, role string) {
	c.Set("email", email)
	c.Set("role", role)
}

type stubAuthService struct {
	registerFn func(ctx context.Context, input ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.LoginResult, error)
}

func (s *stubAuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

type stubCatalogService struct {
	listFn           func(ctx context.Context) ([]*domain.Product, error)
	searchFn         func(ctx context.Context, category string) ([]*domain.Product, error)
	getFn            func(ctx context.Context, id string) (*domain.Product, error)
	createFn         func(ctx context.Context, input ports.ProductInput) (*domain.Product, error)
	updateFn         func(ctx context.Context, id string, patch ports.ProductPatch) (*domain.Product, error)
	deleteFn         func(ctx context.Context, id string) error
	listCategoriesFn func(ctx context.Context) ([]*domain.Category, error)
	createCategoryFn func(ctx context.Context, input ports.CategoryInput) (*domain.Category, error)
}

func (s *stubCatalogService) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.listFn(ctx)
}

func (s *stubCatalogService) SearchByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	return s.searchFn(ctx, category)
}

func (s *stubCatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.getFn(ctx, id)
}

func (s *stubCatalogService) CreateProduct(ctx context.Context, input ports.ProductInput) (*domain.Product, error) {
	return s.createFn(ctx, input)
}

func (s *stubCatalogService) UpdateProduct(ctx context.Context, id string, patch ports.ProductPatch) (*domain.Product, error) {
	return s.updateFn(ctx, id, patch)
}

func (s *stubCatalogService) DeleteProduct(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func (s *stubCatalogService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.listCategoriesFn(ctx)
}

func (s *stubCatalogService) CreateCategory(ctx context.Context, input ports.CategoryInput) (*domain.Category, error) {
	return s.createCategoryFn(ctx, input)
}

type stubOrderService struct {
	placeFn  func(ctx context.Context, input ports.PlaceOrderInput) (*ports.PlaceOrderResult, error)
	listFn   func(ctx context.Context, actor ports.Actor) ([]*domain.Order, error)
	getFn    func(ctx context.Context, actor ports.Actor, id string) (*domain.Order, error)
	updateFn func(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
	deleteFn func(ctx context.Context, id string) error
}

func (s *stubOrderService) PlaceOrder(ctx context.Context, input ports.PlaceOrderInput) (*ports.PlaceOrderResult, error) {
	return s.placeFn(ctx, input)
}

func (s *stubOrderService) ListOrders(ctx context.Context, actor ports.Actor) ([]*domain.Order, error) {
	return s.listFn(ctx, actor)
}

func (s *stubOrderService) GetOrder(ctx context.Context, actor ports.Actor, id string) (*domain.Order, error) {
	return s.getFn(ctx, actor, id)
}

func (s *stubOrderService) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	return s.updateFn(ctx, id, status)
}

func (s *stubOrderService) DeleteOrder(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}
