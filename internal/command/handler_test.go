package command

import (
	"context"
	"testing"
	"time"

	"github.com/example/storefront-core/internal/domain/actor"
	"github.com/example/storefront-core/internal/domain/cart"
	"github.com/example/storefront-core/internal/domain/order"
	"github.com/example/storefront-core/internal/infrastructure/store/mocks"
	"github.com/example/storefront-core/internal/readmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler() (*Handler, *mocks.MockCartStore, *mocks.MockOrderStore, *mocks.MockPublisher) {
	cartStore := mocks.NewMockCartStore(readmodel.ProductReadModel{ID: 7, Name: "Mug", Price: 1500})
	orderStore := mocks.NewMockOrderStore(&readmodel.OrderReadModel{
		ID:        "order-1",
		UserID:    "user-1",
		Status:    string(order.StatusPending),
		CreatedAt: time.Now(),
	})
	publisher := mocks.NewMockPublisher()

	handler := NewHandler(
		cart.NewService(cartStore, publisher),
		order.NewService(orderStore, publisher, order.PolicyStrict),
	)
	return handler, cartStore, orderStore, publisher
}

// ============================================
// Cart Command Tests
// ============================================

func TestHandler_CartLifecycle(t *testing.T) {
	handler, cartStore, _, publisher := newTestHandler()
	ctx := context.Background()

	require.NoError(t, handler.AddToCart(ctx, AddToCart{UserID: "user-1", ProductID: 7, Quantity: 2}))
	require.Len(t, cartStore.AddItemCalls, 1)
	assert.Equal(t, int64(7), cartStore.AddItemCalls[0].ProductID)

	c, err := cartStore.GetCart(ctx, "user-1")
	require.NoError(t, err)
	itemID := c.Items[0].ID

	item, err := handler.UpdateCartItem(ctx, UpdateCartItem{UserID: "user-1", ItemID: itemID, Quantity: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, item.Quantity)

	require.NoError(t, handler.RemoveFromCart(ctx, RemoveFromCart{UserID: "user-1", ItemID: itemID}))
	require.NoError(t, handler.AddToCart(ctx, AddToCart{UserID: "user-1", ProductID: 7, Quantity: 1}))
	require.NoError(t, handler.ClearCart(ctx, ClearCart{UserID: "user-1"}))

	assert.Equal(t, []string{
		cart.EventItemAdded,
		cart.EventItemUpdated,
		cart.EventItemRemoved,
		cart.EventItemAdded,
		cart.EventCartCleared,
	}, publisher.EventTypes())
}

func TestHandler_AddToCart_InvalidQuantity(t *testing.T) {
	handler, cartStore, _, _ := newTestHandler()

	err := handler.AddToCart(context.Background(), AddToCart{UserID: "user-1", ProductID: 7, Quantity: 0})

	assert.ErrorIs(t, err, cart.ErrInvalidQuantity)
	assert.Empty(t, cartStore.AddItemCalls)
}

func TestHandler_RemoveFromCart_NotFound(t *testing.T) {
	handler, _, _, _ := newTestHandler()

	err := handler.RemoveFromCart(context.Background(), RemoveFromCart{UserID: "user-1", ItemID: 99})

	assert.ErrorIs(t, err, cart.ErrCartItemNotFound)
}

// ============================================
// Order Command Tests
// ============================================

func TestHandler_UpdateOrderStatus(t *testing.T) {
	handler, _, orderStore, publisher := newTestHandler()
	admin := actor.Actor{UserID: "admin-1", Role: actor.RoleAdmin}

	o, err := handler.UpdateOrderStatus(context.Background(), UpdateOrderStatus{
		Actor:   admin,
		OrderID: "order-1",
		Status:  "PROCESSING",
	})

	require.NoError(t, err)
	assert.Equal(t, "PROCESSING", o.Status)
	assert.Equal(t, 1, orderStore.Writes)
	assert.Equal(t, []string{order.EventOrderStatusChanged}, publisher.EventTypes())
}

func TestHandler_UpdateOrderStatus_CustomerCannotProcess(t *testing.T) {
	handler, _, orderStore, _ := newTestHandler()

	_, err := handler.UpdateOrderStatus(context.Background(), UpdateOrderStatus{
		Actor:   actor.Actor{UserID: "user-1", Role: actor.RoleCustomer},
		OrderID: "order-1",
		Status:  "PROCESSING",
	})

	assert.ErrorIs(t, err, order.ErrTransitionNotAllowed)
	assert.Zero(t, orderStore.Writes)
}
