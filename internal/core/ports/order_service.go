package ports

import (
	"context"

	"github.com/babycare/shop-api/internal/core/domain"
)

// Actor is the authenticated caller of an order operation.
type Actor struct {
	Email string
	Role  string
}

// IsAdmin reports whether the actor may see and manage every order.
func (a Actor) IsAdmin() bool {
	return a.Role == domain.RoleAdmin
}

type OrderItemInput struct {
	ProductID string
	Quantity  int
}

type ShippingInput struct {
	Name   string
	Street string
	City   string
	Phone  string
}

// PlaceOrderInput carries a checkout request.
type PlaceOrderInput struct {
	Actor          Actor
	Items          []OrderItemInput
	Shipping       ShippingInput
	IdempotencyKey string
}

// PlaceOrderResult wraps the placed order.
type PlaceOrderResult struct {
	Order *domain.Order
	// AlreadyExisted is true when the Idempotency-Key matched an earlier order.
	AlreadyExisted bool
}

type OrderService interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*PlaceOrderResult, error)
	ListOrders(ctx context.Context, actor Actor) ([]*domain.Order, error)
	GetOrder(ctx context.Context, actor Actor, id string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
	DeleteOrder(ctx context.Context, id string) error
}
