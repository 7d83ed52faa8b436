package cart

import "time"

const (
	EventItemAdded   = "ItemAddedToCart"
	EventItemUpdated = "CartItemUpdated"
	EventItemRemoved = "ItemRemovedFromCart"
	EventCartCleared = "CartCleared"
)

type ItemAddedToCart struct {
	CartID    int64     `json:"cart_id"`
	ItemID    int64     `json:"item_id"`
	UserID    string    `json:"user_id"`
	ProductID int64     `json:"product_id"`
	Quantity  int       `json:"quantity"` // quantity added by this call
	Total     int       `json:"total"`    // line quantity after the merge
	AddedAt   time.Time `json:"added_at"`
}

type CartItemUpdated struct {
	CartID    int64     `json:"cart_id"`
	ItemID    int64     `json:"item_id"`
	UserID    string    `json:"user_id"`
	ProductID int64     `json:"product_id"`
	Quantity  int       `json:"quantity"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ItemRemovedFromCart struct {
	CartID    int64     `json:"cart_id"`
	ItemID    int64     `json:"item_id"`
	UserID    string    `json:"user_id"`
	ProductID int64     `json:"product_id"`
	RemovedAt time.Time `json:"removed_at"`
}

type CartCleared struct {
	UserID    string    `json:"user_id"`
	Removed   int64     `json:"removed"`
	ClearedAt time.Time `json:"cleared_at"`
}
