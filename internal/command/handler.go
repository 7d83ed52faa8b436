package command

import (
	"context"

	"github.com/example/storefront-core/internal/domain/cart"
	"github.com/example/storefront-core/internal/domain/order"
	"github.com/example/storefront-core/internal/readmodel"
)

// Handler runs the write side. Each command maps to one domain operation.
type Handler struct {
	cartSvc  *cart.Service
	orderSvc *order.Service
}

func NewHandler(cartSvc *cart.Service, orderSvc *order.Service) *Handler {
	return &Handler{cartSvc: cartSvc, orderSvc: orderSvc}
}

// AddToCart merges the quantity into the user's cart
func (h *Handler) AddToCart(ctx context.Context, cmd AddToCart) error {
	return h.cartSvc.AddItem(ctx, cmd.UserID, cmd.ProductID, cmd.Quantity)
}

// UpdateCartItem overwrites an item quantity
func (h *Handler) UpdateCartItem(ctx context.Context, cmd UpdateCartItem) (*readmodel.CartItemReadModel, error) {
	return h.cartSvc.UpdateItem(ctx, cmd.UserID, cmd.ItemID, cmd.Quantity)
}

// RemoveFromCart removes an item from cart
func (h *Handler) RemoveFromCart(ctx context.Context, cmd RemoveFromCart) error {
	return h.cartSvc.RemoveItem(ctx, cmd.UserID, cmd.ItemID)
}

// ClearCart clears all items from cart
func (h *Handler) ClearCart(ctx context.Context, cmd ClearCart) error {
	return h.cartSvc.Clear(ctx, cmd.UserID)
}

// UpdateOrderStatus moves an order through its lifecycle
func (h *Handler) UpdateOrderStatus(ctx context.Context, cmd UpdateOrderStatus) (*readmodel.OrderReadModel, error) {
	return h.orderSvc.UpdateStatus(ctx, cmd.Actor, cmd.OrderID, cmd.Status)
}
