package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/example/storefront-core/internal/domain/order"
	"github.com/example/storefront-core/internal/email"
	"github.com/example/storefront-core/internal/event"
	"github.com/example/storefront-core/internal/infrastructure/store"
	"github.com/example/storefront-core/internal/logging"
	"github.com/sirupsen/logrus"
)

// Mailer sends the status email. email.Service satisfies it.
type Mailer interface {
	SendOrderStatusUpdate(to string, update email.StatusUpdate) error
}

// Handler processes events for sending notifications
type Handler struct {
	mailer Mailer
	users  store.UserStoreInterface
	orders store.OrderStoreInterface
	log    *logrus.Entry
}

// NewHandler creates a new notification handler
func NewHandler(mailer Mailer, users store.UserStoreInterface, orders store.OrderStoreInterface) *Handler {
	return &Handler{
		mailer: mailer,
		users:  users,
		orders: orders,
		log:    logging.For("notifier"),
	}
}

// HandleEvent processes an event from Kafka
func (h *Handler) HandleEvent(ctx context.Context, key, value []byte) error {
	var ev event.Event
	if err := json.Unmarshal(value, &ev); err != nil {
		return fmt.Errorf("unmarshal event: %w", err)
	}

	// Only process OrderStatusChanged events
	if ev.EventType == order.EventOrderStatusChanged {
		return h.handleStatusChanged(ctx, ev)
	}

	return nil
}

func (h *Handler) handleStatusChanged(ctx context.Context, ev event.Event) error {
	var e order.OrderStatusChanged
	if err := json.Unmarshal(ev.Data, &e); err != nil {
		return fmt.Errorf("unmarshal %s: %w", order.EventOrderStatusChanged, err)
	}

	log := h.log.WithFields(logrus.Fields{"order_id": e.OrderID, "user_id": e.UserID, "status": e.To})
	log.Info("Processing status change")

	user, err := h.users.GetUser(ctx, e.UserID)
	if errors.Is(err, store.ErrNotFound) {
		log.Warn("User not found, skipping notification")
		return nil
	}
	if err != nil {
		return fmt.Errorf("get user %s: %w", e.UserID, err)
	}
	if user.Email == "" {
		log.Warn("User has no email address, skipping notification")
		return nil
	}

	status := order.Status(e.To)
	update := email.StatusUpdate{
		CustomerName: user.Name,
		OrderID:      e.OrderID,
		Status:       e.To,
		Message:      status.Description(),
	}

	// The email still goes out without line items when the order cannot be read
	if o, err := h.orders.GetOrder(ctx, e.OrderID); err != nil {
		log.WithError(err).Warn("Could not load order details")
	} else {
		update.Total = o.Total
		for _, op := range o.OrderProducts {
			update.Items = append(update.Items, email.OrderItem{
				Name:     op.Product.Name,
				Quantity: op.Quantity,
				Price:    op.Product.Price,
			})
		}
	}

	if err := h.mailer.SendOrderStatusUpdate(user.Email, update); err != nil {
		return fmt.Errorf("send status email for order %s: %w", e.OrderID, err)
	}

	log.WithField("email", user.Email).Info("Status update email sent")
	return nil
}
