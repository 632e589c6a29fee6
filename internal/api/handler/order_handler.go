package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/babycare/shop-api/internal/api/metrics"
	"github.com/babycare/shop-api/internal/core/domain"
	"github.com/babycare/shop-api/internal/core/ports"
)

// HeaderIdempotencyKey lets a client retry checkout without placing a second order.
const HeaderIdempotencyKey = "Idempotency-Key"

// OrderHandler handles HTTP requests for order operations.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

func toPlaceOrderInput(req placeOrderRequest, actor ports.Actor, idempotencyKey string) ports.PlaceOrderInput {
	items := make([]ports.OrderItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, ports.OrderItemInput{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return ports.PlaceOrderInput{
		Actor: actor,
		Items: items,
		Shipping: ports.ShippingInput{
			Name:   req.Shipping.Name,
			Street: req.Shipping.Street,
			City:   req.Shipping.City,
			Phone:  req.Shipping.Phone,
		},
		IdempotencyKey: idempotencyKey,
	}
}

// Place handles POST /orders.
//
// @Summary      Place an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string             false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      placeOrderRequest  true   "Items and shipping address"
// @Success      201              {object}  envelope
// @Success      200              {object}  envelope  "Replayed from Idempotency-Key"
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      404              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Router       /orders [post]
func (h *OrderHandler) Place(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req placeOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.service.PlaceOrder(c.Request().Context(),
		toPlaceOrderInput(req, actor, c.Request().Header.Get(HeaderIdempotencyKey)))
	if err != nil {
		return err
	}

	if result.AlreadyExisted {
		metrics.OrdersPlacedTotal.WithLabelValues("replayed").Inc()
		return respond(c, http.StatusOK, "Order already placed", result.Order)
	}

	metrics.OrdersPlacedTotal.WithLabelValues("created").Inc()
	metrics.OrderValue.Observe(result.Order.Total)
	return respond(c, http.StatusCreated, "Order placed successfully", result.Order)
}

// List handles GET /orders. Admins see every order, customers their own.
//
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Failure      401  {object}  errorResponse
// @Router       /orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	orders, err := h.service.ListOrders(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "All Orders retrieved successfully", orders)
}

// Get handles GET /orders/:id.
//
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  envelope
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /orders/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	order, err := h.service.GetOrder(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Order retrieved successfully", order)
}

// UpdateStatus handles PUT /orders/:id.
//
// @Summary      Change the status of an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "Order id"
// @Param        body  body      updateOrderStatusRequest  true  "New status"
// @Success      200   {object}  envelope
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /orders/{id} [put]
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	var req updateOrderStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	order, err := h.service.UpdateStatus(c.Request().Context(), c.Param("id"), domain.OrderStatus(req.Status))
	if err != nil {
		return err
	}

	metrics.OrderTransitionsTotal.WithLabelValues(string(order.Status)).Inc()
	return respond(c, http.StatusOK, "Order updated successfully", order)
}

// Delete handles DELETE /orders/:id.
//
// @Summary      Delete an order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  errorResponse
// @Router       /orders/{id} [delete]
func (h *OrderHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteOrder(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Order deleted successfully", nil)
}
