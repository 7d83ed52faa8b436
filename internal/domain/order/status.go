package order

import (
	"fmt"
	"strings"

	"github.com/example/storefront-core/internal/apperr"
)

type Status string

const (
	StatusPending       Status = "PENDING"
	StatusProcessing    Status = "PROCESSING"
	StatusPacked        Status = "PACKED"
	StatusShipped       Status = "SHIPPED"
	StatusDelivered     Status = "DELIVERED"
	StatusReturnRequest Status = "RETURN_REQUEST"
	StatusReturned      Status = "RETURNED"
	StatusCompleted     Status = "COMPLETED"
	StatusCancelled     Status = "CANCELLED"
)

var ErrInvalidStatus = fmt.Errorf("%w: unknown order status", apperr.ErrValidation)

var descriptions = map[Status]string{
	StatusPending:       "Your order is waiting for payment.",
	StatusProcessing:    "Your order is being processed.",
	StatusPacked:        "Your order is being packed.",
	StatusShipped:       "Your order is on its way.",
	StatusDelivered:     "Your order is out for delivery.",
	StatusReturnRequest: "Your return request is being processed.",
	StatusReturned:      "Your order has been returned.",
	StatusCompleted:     "Your order has arrived and was received.",
	StatusCancelled:     "Your order has been cancelled.",
}

// Statuses lists every status in lifecycle order.
func Statuses() []Status {
	return []Status{
		StatusPending, StatusProcessing, StatusPacked, StatusShipped, StatusDelivered,
		StatusReturnRequest, StatusReturned, StatusCompleted, StatusCancelled,
	}
}

// ParseStatus accepts a status name in any case.
func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return status, nil
}

func (s Status) Valid() bool {
	_, ok := descriptions[s]
	return ok
}

// Description is the customer-facing message shown for the status.
func (s Status) Description() string {
	if d, ok := descriptions[s]; ok {
		return d
	}
	return "Your order status was updated."
}
