package store

import (
	"context"

	"github.com/example/storefront-core/internal/readmodel"
)

// CartStoreInterface defines the persistence operations of the cart service.
// Every mutation runs as a single statement or a single transaction.
type CartStoreInterface interface {
	// GetCart returns the user's cart with items, or nil when none exists.
	GetCart(ctx context.Context, userID string) (*readmodel.CartReadModel, error)

	// AddItem upserts the cart for userID and merges quantity into the
	// (cart, product) line item. Returns the resulting item.
	AddItem(ctx context.Context, userID string, productID int64, quantity int) (*readmodel.CartItemReadModel, error)

	// UpdateItem overwrites the quantity of an item owned by userID.
	UpdateItem(ctx context.Context, userID string, itemID int64, quantity int) (*readmodel.CartItemReadModel, error)

	// RemoveItem deletes an item owned by userID and returns it.
	RemoveItem(ctx context.Context, userID string, itemID int64) (*readmodel.CartItemReadModel, error)

	// ClearCart deletes all items of the user's cart and reports how many went.
	ClearCart(ctx context.Context, userID string) (int64, error)
}

// OrderFilter narrows order listings. Empty fields match everything.
type OrderFilter struct {
	UserID string
	Status string
}

// StatusUpdateFunc receives the locked current order and returns the status to store.
type StatusUpdateFunc func(current *readmodel.OrderReadModel) (string, error)

// OrderStoreInterface defines the persistence operations of the order service.
type OrderStoreInterface interface {
	ListOrders(ctx context.Context, filter OrderFilter) ([]*readmodel.OrderReadModel, error)
	GetOrder(ctx context.Context, orderID string) (*readmodel.OrderReadModel, error)

	// UpdateStatus locks the order row, calls decide and writes the returned
	// status in the same transaction. Returns the order as committed.
	UpdateStatus(ctx context.Context, orderID string, decide StatusUpdateFunc) (*readmodel.OrderReadModel, error)
}

// UserStoreInterface reads user contact data.
type UserStoreInterface interface {
	GetUser(ctx context.Context, userID string) (*readmodel.UserReadModel, error)
}
