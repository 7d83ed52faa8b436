package order

import "time"

const EventOrderStatusChanged = "OrderStatusChanged"

type OrderStatusChanged struct {
	OrderID   string    `json:"order_id"`
	UserID    string    `json:"user_id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	ChangedBy string    `json:"changed_by"`
	Role      string    `json:"role"`
	ChangedAt time.Time `json:"changed_at"`
}
