package ports

import (
	"context"
	"time"

	"github.com/babycare/shop-api/internal/core/domain"
)

// OrderRepository is the order collection. Malformed ids yield
// domain.ErrInvalidID, missing documents domain.ErrOrderNotFound.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) (*domain.Order, error)
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	// List returns all orders when userEmail is empty, otherwise that user's orders.
	List(ctx context.Context, userEmail string) ([]*domain.Order, error)
	// UpdateStatus applies only while the stored status is still from and
	// fails with domain.ErrInvalidTransition otherwise.
	UpdateStatus(ctx context.Context, id string, from, to domain.OrderStatus, at time.Time) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
}

// IdempotencyStore maps a client-supplied key to the order it produced. A key
// is reserved before the order is created, so concurrent retries with the
// same key cannot both create one.
type IdempotencyStore interface {
	// Reserve claims key. When the key is already held it returns
	// reserved=false and the order id stored under it, which is empty while
	// the holder is still placing its order.
	Reserve(ctx context.Context, key string) (orderID string, reserved bool, err error)
	// Complete records the order a reserved key produced.
	Complete(ctx context.Context, key, orderID string) error
	// Release drops a reservation whose order was never created.
	Release(ctx context.Context, key string) error
}
