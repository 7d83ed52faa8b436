package command

import "github.com/example/storefront-core/internal/domain/actor"

// Cart Commands
type AddToCart struct {
	UserID    string `json:"-"`
	ProductID int64  `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type UpdateCartItem struct {
	UserID   string `json:"-"`
	ItemID   int64  `json:"-"`
	Quantity int    `json:"quantity"`
}

type RemoveFromCart struct {
	UserID string `json:"-"`
	ItemID int64  `json:"-"`
}

type ClearCart struct {
	UserID string `json:"-"`
}

// Order Commands
type UpdateOrderStatus struct {
	Actor   actor.Actor `json:"-"`
	OrderID string      `json:"-"`
	Status  string      `json:"status"`
}
