package readmodel

import "time"

// ProductReadModel is the live product projection joined into carts and orders
type ProductReadModel struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	ImageURL    string `json:"image_url,omitempty"`
	Stock       int    `json:"stock"`
}

// CartItemReadModel is one line of a cart
type CartItemReadModel struct {
	ID        int64             `json:"id"`
	CartID    int64             `json:"cart_id"`
	ProductID int64             `json:"product_id"`
	Quantity  int               `json:"quantity"`
	Product   *ProductReadModel `json:"product,omitempty"`
}

// CartReadModel is the cart of a single user. ID is 0 and the timestamps are nil
// when the user has no cart yet.
type CartReadModel struct {
	ID        int64               `json:"id"`
	UserID    string              `json:"user_id"`
	Items     []CartItemReadModel `json:"items"`
	Total     int64               `json:"total"`
	CreatedAt *time.Time          `json:"created_at,omitempty"`
	UpdatedAt *time.Time          `json:"updated_at,omitempty"`
}

// OrderProductReadModel is a line item of an order
type OrderProductReadModel struct {
	ID        int64            `json:"id"`
	ProductID int64            `json:"product_id"`
	Quantity  int              `json:"quantity"`
	Product   ProductReadModel `json:"product"`
}

// PaymentReadModel carries the payment metadata of an order
type PaymentReadModel struct {
	PaymentMethod string `json:"payment_method"`
}

// OrderReadModel is the order projection returned by every order query
type OrderReadModel struct {
	ID             string                  `json:"id"`
	UserID         string                  `json:"user_id"`
	Name           string                  `json:"name"`
	Address        string                  `json:"address"`
	City           string                  `json:"city"`
	Province       string                  `json:"province"`
	PostalCode     string                  `json:"postal_code"`
	ShippingMethod string                  `json:"shipping_method"`
	Total          int64                   `json:"total"`
	Status         string                  `json:"status"`
	Receipt        *string                 `json:"receipt,omitempty"`
	Image          *string                 `json:"image,omitempty"`
	OrderProducts  []OrderProductReadModel `json:"order_products"`
	Payment        *PaymentReadModel       `json:"payment,omitempty"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
}

// UserReadModel is the subset of the user record the notifier needs
type UserReadModel struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
