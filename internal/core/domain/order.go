package domain

import "time"

// OrderStatus represents the fulfilment state of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:    {OrderProcessing, OrderCancelled},
	OrderProcessing: {OrderShipped, OrderCancelled},
	OrderShipped:    {OrderDelivered},
}

// CanTransitionTo reports whether an order may move from s to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// OrderItem is a priced line of an order. Title and Price are copied from the
// product at placement time so later catalog edits don't rewrite history.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Shipping is the delivery address of an order.
type Shipping struct {
	Name   string `json:"name"`
	Street string `json:"street"`
	City   string `json:"city"`
	Phone  string `json:"phone"`
}

type Order struct {
	ID          string      `json:"_id"`
	OrderNumber string      `json:"orderNumber"`
	UserEmail   string      `json:"userEmail"`
	Items       []OrderItem `json:"items"`
	Total       float64     `json:"total"`
	Status      OrderStatus `json:"status"`
	Shipping    Shipping    `json:"shipping"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// OwnedBy reports whether the order belongs to the account with the given email.
func (o *Order) OwnedBy(email string) bool {
	return o.UserEmail == email
}
