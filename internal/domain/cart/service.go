package cart

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/example/storefront-core/internal/apperr"
	"github.com/example/storefront-core/internal/event"
	"github.com/example/storefront-core/internal/infrastructure/store"
	"github.com/example/storefront-core/internal/logging"
	"github.com/example/storefront-core/internal/readmodel"
	"github.com/sirupsen/logrus"
)

const AggregateType = "Cart"

// MaxQuantity is the largest quantity a cart line can hold (cart_items.quantity is INT).
const MaxQuantity = math.MaxInt32

var (
	ErrUnauthenticated  = fmt.Errorf("%w: user id is required", apperr.ErrUnauthorized)
	ErrInvalidQuantity  = fmt.Errorf("%w: quantity must be at least 1", apperr.ErrValidation)
	ErrQuantityTooLarge = fmt.Errorf("%w: quantity must not exceed %d", apperr.ErrValidation, MaxQuantity)
	ErrInvalidProduct   = fmt.Errorf("%w: product_id must be positive", apperr.ErrValidation)
	ErrInvalidCartItem  = fmt.Errorf("%w: cart item id must be positive", apperr.ErrValidation)
	ErrProductNotFound  = fmt.Errorf("%w: product", apperr.ErrNotFound)
	ErrCartItemNotFound = fmt.Errorf("%w: cart item", apperr.ErrNotFound)
)

type Service struct {
	store     store.CartStoreInterface
	publisher event.Publisher
	log       *logrus.Entry
}

func NewService(s store.CartStoreInterface, publisher event.Publisher) *Service {
	if publisher == nil {
		publisher = event.Discard{}
	}
	return &Service{store: s, publisher: publisher, log: logging.For("cart")}
}

// GetCartID returns the event key of a user's cart. A user has at most one cart.
func GetCartID(userID string) string {
	return "cart-" + userID
}

// GetCart returns the user's cart, or an empty shell with ID 0 when none exists.
func (s *Service) GetCart(ctx context.Context, userID string) (*readmodel.CartReadModel, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	c, err := s.store.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return &readmodel.CartReadModel{UserID: userID, Items: []readmodel.CartItemReadModel{}}, nil
	}
	if c.Items == nil {
		c.Items = []readmodel.CartItemReadModel{}
	}
	c.Total = Total(c.Items)
	return c, nil
}

// Total sums live price times quantity over the items.
func Total(items []readmodel.CartItemReadModel) int64 {
	var total int64
	for _, item := range items {
		if item.Product != nil {
			total += item.Product.Price * int64(item.Quantity)
		}
	}
	return total
}

// AddItem merges quantity into the user's line for productID, creating the
// cart and the line as needed.
func (s *Service) AddItem(ctx context.Context, userID string, productID int64, quantity int) error {
	if userID == "" {
		return ErrUnauthenticated
	}
	if productID <= 0 {
		return ErrInvalidProduct
	}
	if err := checkQuantity(quantity); err != nil {
		return err
	}

	item, err := s.store.AddItem(ctx, userID, productID, quantity)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrReferenceNotFound):
			return fmt.Errorf("add product %d: %w", productID, ErrProductNotFound)
		case errors.Is(err, store.ErrOutOfRange):
			// the merged line went past the column range
			return fmt.Errorf("add product %d: %w", productID, ErrQuantityTooLarge)
		}
		return err
	}

	s.publish(ctx, userID, EventItemAdded, ItemAddedToCart{
		CartID:    item.CartID,
		ItemID:    item.ID,
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		Total:     item.Quantity,
		AddedAt:   time.Now(),
	})
	return nil
}

// UpdateItem overwrites the quantity of one of the user's items.
func (s *Service) UpdateItem(ctx context.Context, userID string, itemID int64, quantity int) (*readmodel.CartItemReadModel, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	if itemID <= 0 {
		return nil, ErrInvalidCartItem
	}
	if err := checkQuantity(quantity); err != nil {
		return nil, err
	}

	item, err := s.store.UpdateItem(ctx, userID, itemID, quantity)
	if err != nil {
		return nil, itemError(itemID, err)
	}

	s.publish(ctx, userID, EventItemUpdated, CartItemUpdated{
		CartID:    item.CartID,
		ItemID:    item.ID,
		UserID:    userID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		UpdatedAt: time.Now(),
	})
	return item, nil
}

func (s *Service) RemoveItem(ctx context.Context, userID string, itemID int64) error {
	if userID == "" {
		return ErrUnauthenticated
	}
	if itemID <= 0 {
		return ErrInvalidCartItem
	}

	item, err := s.store.RemoveItem(ctx, userID, itemID)
	if err != nil {
		return itemError(itemID, err)
	}

	s.publish(ctx, userID, EventItemRemoved, ItemRemovedFromCart{
		CartID:    item.CartID,
		ItemID:    item.ID,
		UserID:    userID,
		ProductID: item.ProductID,
		RemovedAt: time.Now(),
	})
	return nil
}

// Clear empties the user's cart. A user without a cart is not an error.
func (s *Service) Clear(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrUnauthenticated
	}

	n, err := s.store.ClearCart(ctx, userID)
	if err != nil {
		return err
	}
	if n == 0 {
		return nil
	}

	s.publish(ctx, userID, EventCartCleared, CartCleared{
		UserID:    userID,
		Removed:   n,
		ClearedAt: time.Now(),
	})
	return nil
}

func checkQuantity(quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	if quantity > MaxQuantity {
		return ErrQuantityTooLarge
	}
	return nil
}

// items outside the caller's cart look the same as missing ones
func itemError(itemID int64, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("cart item %d: %w", itemID, ErrCartItemNotFound)
	}
	return err
}

func (s *Service) publish(ctx context.Context, userID, eventType string, data any) {
	key := GetCartID(userID)
	fields := logrus.Fields{"user_id": userID, "event_type": eventType}

	ev, err := event.New(key, AggregateType, eventType, data)
	if err != nil {
		s.log.WithFields(fields).WithError(err).Error("Failed to build event")
		return
	}
	if err := s.publisher.Publish(ctx, key, ev); err != nil {
		s.log.WithFields(fields).WithError(err).Warn("Failed to publish event")
	}
}
