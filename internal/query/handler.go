package query

import (
	"context"

	"github.com/example/storefront-core/internal/domain/actor"
	"github.com/example/storefront-core/internal/domain/cart"
	"github.com/example/storefront-core/internal/domain/order"
	"github.com/example/storefront-core/internal/readmodel"
)

// Handler serves the read side. Authorization stays in the domain services.
type Handler struct {
	cartSvc  *cart.Service
	orderSvc *order.Service
}

func NewHandler(cartSvc *cart.Service, orderSvc *order.Service) *Handler {
	return &Handler{cartSvc: cartSvc, orderSvc: orderSvc}
}

// Cart
func (h *Handler) GetCart(ctx context.Context, a actor.Actor) (*readmodel.CartReadModel, error) {
	return h.cartSvc.GetCart(ctx, a.UserID)
}

// Orders
func (h *Handler) GetOrder(ctx context.Context, a actor.Actor, orderID string) (*readmodel.OrderReadModel, error) {
	return h.orderSvc.Get(ctx, a, orderID)
}

func (h *Handler) ListOrdersByUser(ctx context.Context, a actor.Actor, status string) ([]*readmodel.OrderReadModel, error) {
	return h.orderSvc.ListForUser(ctx, a, status)
}

// ListAllOrders returns all orders (for admin use)
func (h *Handler) ListAllOrders(ctx context.Context, a actor.Actor, status string) ([]*readmodel.OrderReadModel, error) {
	return h.orderSvc.ListAll(ctx, a, status)
}
