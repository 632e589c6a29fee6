package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/babycare/shop-api/internal/core/domain"
	"github.com/babycare/shop-api/internal/core/ports"
)

type OrderService struct {
	orders   ports.OrderRepository
	products ports.ProductRepository
	idem     ports.IdempotencyStore // nil disables Idempotency-Key replay
	log      zerolog.Logger
}

func NewOrderService(orders ports.OrderRepository, products ports.ProductRepository, idem ports.IdempotencyStore, log zerolog.Logger) *OrderService {
	return &OrderService{orders: orders, products: products, idem: idem, log: log}
}

// PlaceOrder prices every line from the product store and persists the order
// as pending. When an idempotency key is supplied, the key is reserved before
// anything is created, and a key that already produced an order returns that
// order instead.
func (s *OrderService) PlaceOrder(ctx context.Context, in ports.PlaceOrderInput) (*ports.PlaceOrderResult, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: order has no items", domain.ErrInvalidInput)
	}
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidInput)
		}
	}

	idemKey := ""
	if s.idem != nil && in.IdempotencyKey != "" {
		key := in.Actor.Email + ":" + in.IdempotencyKey
		existing, reserved, err := s.reserve(ctx, key, in.Actor)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return &ports.PlaceOrderResult{Order: existing, AlreadyExisted: true}, nil
		}
		if reserved {
			idemKey = key
		}
	}

	order, err := s.create(ctx, in)
	if err != nil {
		if idemKey != "" {
			if rerr := s.idem.Release(context.WithoutCancel(ctx), idemKey); rerr != nil {
				s.log.Warn().Err(rerr).Msg("failed to release idempotency key")
			}
		}
		return nil, err
	}

	if idemKey != "" {
		if err := s.idem.Complete(ctx, idemKey, order.ID); err != nil {
			s.log.Warn().Err(err).Str("order_id", order.ID).Msg("failed to store idempotency key")
		}
	}

	s.log.Info().
		Str("order_number", order.OrderNumber).
		Str("email", order.UserEmail).
		Float64("total", order.Total).
		Msg("order placed")

	return &ports.PlaceOrderResult{Order: order}, nil
}

// reserve claims key for this checkout. It returns the order a finished
// earlier request produced, or reserved=true when the caller should create
// one. An unreachable store degrades to placing the order without a key.
func (s *OrderService) reserve(ctx context.Context, key string, actor ports.Actor) (*domain.Order, bool, error) {
	id, reserved, err := s.idem.Reserve(ctx, key)
	switch {
	case err != nil:
		s.log.Warn().Err(err).Msg("idempotency store unavailable, placing order anyway")
		return nil, false, nil
	case reserved:
		return nil, true, nil
	case id == "":
		return nil, false, domain.ErrOrderInProgress
	}

	existing, err := s.orders.FindByID(ctx, id)
	switch {
	case errors.Is(err, domain.ErrOrderNotFound), err == nil && !existing.OwnedBy(actor.Email):
		// The order behind the key is gone; this request takes the key over.
		s.log.Info().Str("order_id", id).Msg("idempotency key points at a missing order")
		return nil, true, nil
	case err != nil:
		return nil, false, fmt.Errorf("place order: replay %s: %w", id, err)
	}
	s.log.Info().Str("order_id", id).Msg("idempotent replay")
	return existing, false, nil
}

func (s *OrderService) create(ctx context.Context, in ports.PlaceOrderInput) (*domain.Order, error) {
	items := make([]domain.OrderItem, 0, len(in.Items))
	var total float64
	for _, it := range in.Items {
		p, err := s.products.FindByID(ctx, it.ProductID)
		if err != nil {
			return nil, fmt.Errorf("place order: product %s: %w", it.ProductID, err)
		}
		items = append(items, domain.OrderItem{
			ProductID: p.ID,
			Title:     p.Title,
			Price:     p.Price,
			Quantity:  it.Quantity,
		})
		total += p.Price * float64(it.Quantity)
	}

	now := time.Now().UTC()
	order, err := s.orders.Create(ctx, &domain.Order{
		OrderNumber: generateOrderNumber(),
		UserEmail:   in.Actor.Email,
		Items:       items,
		Total:       math.Round(total*100) / 100,
		Status:      domain.OrderPending,
		Shipping: domain.Shipping{
			Name:   in.Shipping.Name,
			Street: in.Shipping.Street,
			City:   in.Shipping.City,
			Phone:  in.Shipping.Phone,
		},
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		s.log.Error().Err(err).Str("email", in.Actor.Email).Msg("failed to create order")
		return nil, fmt.Errorf("place order: %w", err)
	}
	return order, nil
}

// ListOrders returns every order to admins and the caller's own orders otherwise.
func (s *OrderService) ListOrders(ctx context.Context, actor ports.Actor) ([]*domain.Order, error) {
	if actor.IsAdmin() {
		return s.orders.List(ctx, "")
	}
	return s.orders.List(ctx, actor.Email)
}

func (s *OrderService) GetOrder(ctx context.Context, actor ports.Actor, id string) (*domain.Order, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !o.OwnedBy(actor.Email) {
		return nil, domain.ErrForbidden
	}
	return o, nil
}

// UpdateStatus moves an order along its fulfilment state machine. The store
// only applies the change while the order still has the status it was
// checked against.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !o.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, o.Status, status)
	}

	updated, err := s.orders.UpdateStatus(ctx, id, o.Status, status, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("order_id", id).Str("status", string(status)).Msg("order status updated")
	return updated, nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, id string) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("order_id", id).Msg("order deleted")
	return nil
}

// generateOrderNumber returns a customer-facing reference like BKS-1A2B3C4D5E6F.
func generateOrderNumber() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "BKS-" + strings.ToUpper(id[:12])
}
