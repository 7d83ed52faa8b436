package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/example/storefront-core/internal/apperr"
	"github.com/example/storefront-core/internal/domain/actor"
	"github.com/example/storefront-core/internal/event"
	"github.com/example/storefront-core/internal/infrastructure/store"
	"github.com/example/storefront-core/internal/logging"
	"github.com/example/storefront-core/internal/readmodel"
	"github.com/sirupsen/logrus"
)

const AggregateType = "Order"

var (
	ErrUnauthenticated = fmt.Errorf("%w: user id is required", apperr.ErrUnauthorized)
	ErrAdminRequired   = fmt.Errorf("%w: admin role required", apperr.ErrForbidden)
	ErrOrderNotFound   = fmt.Errorf("%w: order", apperr.ErrNotFound)
	ErrInvalidOrderID  = fmt.Errorf("%w: order id is required", apperr.ErrValidation)
)

type Service struct {
	store     store.OrderStoreInterface
	publisher event.Publisher
	policy    Policy
	log       *logrus.Entry
}

func NewService(s store.OrderStoreInterface, publisher event.Publisher, policy Policy) *Service {
	if publisher == nil {
		publisher = event.Discard{}
	}
	if policy == "" {
		policy = PolicyStrict
	}
	return &Service{store: s, publisher: publisher, policy: policy, log: logging.For("order")}
}

func (s *Service) Policy() Policy { return s.policy }

// ListAll returns every order, optionally narrowed to one status. Admin only.
func (s *Service) ListAll(ctx context.Context, a actor.Actor, status string) ([]*readmodel.OrderReadModel, error) {
	if !a.Authenticated() {
		return nil, ErrUnauthenticated
	}
	if !a.IsAdmin() {
		return nil, ErrAdminRequired
	}

	filter, err := statusFilter(status)
	if err != nil {
		return nil, err
	}
	return s.store.ListOrders(ctx, filter)
}

// ListForUser returns the caller's own orders.
func (s *Service) ListForUser(ctx context.Context, a actor.Actor, status string) ([]*readmodel.OrderReadModel, error) {
	if !a.Authenticated() {
		return nil, ErrUnauthenticated
	}

	filter, err := statusFilter(status)
	if err != nil {
		return nil, err
	}
	filter.UserID = a.UserID
	return s.store.ListOrders(ctx, filter)
}

// Get returns one order. Customers only see their own.
func (s *Service) Get(ctx context.Context, a actor.Actor, orderID string) (*readmodel.OrderReadModel, error) {
	if !a.Authenticated() {
		return nil, ErrUnauthenticated
	}
	if orderID == "" {
		return nil, ErrInvalidOrderID
	}

	o, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		return nil, orderError(orderID, err)
	}
	if !canSee(a, o) {
		return nil, fmt.Errorf("order %s: %w", orderID, ErrOrderNotFound)
	}
	return o, nil
}

// UpdateStatus moves an order to status. The ownership and policy checks
// run against the locked row. Requesting the current status changes nothing.
func (s *Service) UpdateStatus(ctx context.Context, a actor.Actor, orderID, status string) (*readmodel.OrderReadModel, error) {
	if !a.Authenticated() {
		return nil, ErrUnauthenticated
	}
	if orderID == "" {
		return nil, ErrInvalidOrderID
	}
	next, err := ParseStatus(status)
	if err != nil {
		return nil, err
	}

	var from Status
	updated, err := s.store.UpdateStatus(ctx, orderID, func(current *readmodel.OrderReadModel) (string, error) {
		if !canSee(a, current) {
			return "", fmt.Errorf("order %s: %w", orderID, ErrOrderNotFound)
		}
		from = Status(current.Status)
		if from == next {
			return current.Status, nil
		}
		if !s.policy.Allows(a.Role, from, next) {
			return "", fmt.Errorf("%w: %s to %s as %s (allowed: %v)",
				ErrTransitionNotAllowed, from, next, a.Role, s.policy.Next(a.Role, from))
		}
		return string(next), nil
	})
	if err != nil {
		return nil, orderError(orderID, err)
	}
	if from == next {
		return updated, nil
	}

	s.log.WithFields(logrus.Fields{
		"order_id": orderID,
		"from":     from,
		"to":       next,
		"role":     a.Role,
	}).Info("Order status changed")

	s.publish(ctx, OrderStatusChanged{
		OrderID:   orderID,
		UserID:    updated.UserID,
		From:      string(from),
		To:        string(next),
		ChangedBy: a.UserID,
		Role:      string(a.Role),
		ChangedAt: updated.UpdatedAt,
	})
	return updated, nil
}

func canSee(a actor.Actor, o *readmodel.OrderReadModel) bool {
	return a.IsAdmin() || o.UserID == a.UserID
}

func statusFilter(status string) (store.OrderFilter, error) {
	if status == "" {
		return store.OrderFilter{}, nil
	}
	st, err := ParseStatus(status)
	if err != nil {
		return store.OrderFilter{}, err
	}
	return store.OrderFilter{Status: string(st)}, nil
}

func orderError(orderID string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("order %s: %w", orderID, ErrOrderNotFound)
	}
	return err
}

func (s *Service) publish(ctx context.Context, data OrderStatusChanged) {
	if data.ChangedAt.IsZero() {
		data.ChangedAt = time.Now()
	}
	fields := logrus.Fields{"order_id": data.OrderID, "event_type": EventOrderStatusChanged}

	ev, err := event.New(data.OrderID, AggregateType, EventOrderStatusChanged, data)
	if err != nil {
		s.log.WithFields(fields).WithError(err).Error("Failed to build event")
		return
	}
	if err := s.publisher.Publish(ctx, data.OrderID, ev); err != nil {
		s.log.WithFields(fields).WithError(err).Warn("Failed to publish event")
	}
}
