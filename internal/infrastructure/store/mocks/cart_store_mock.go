package mocks

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/example/storefront-core/internal/infrastructure/store"
	"github.com/example/storefront-core/internal/readmodel"
)

// MockCartStore is an in-memory CartStoreInterface with the same merge and
// ownership rules as the Postgres store.
type MockCartStore struct {
	mu       sync.Mutex
	carts    map[string]*readmodel.CartReadModel // userID -> cart
	products map[int64]readmodel.ProductReadModel
	nextCart int64
	nextItem int64

	// For tracking calls in tests
	AddItemCalls []AddItemCall
	Err          error
}

// AddItemCall records parameters passed to AddItem
type AddItemCall struct {
	UserID    string
	ProductID int64
	Quantity  int
}

// NewMockCartStore creates a store that knows the given products
func NewMockCartStore(products ...readmodel.ProductReadModel) *MockCartStore {
	m := &MockCartStore{
		carts:    make(map[string]*readmodel.CartReadModel),
		products: make(map[int64]readmodel.ProductReadModel),
	}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *MockCartStore) GetCart(ctx context.Context, userID string) (*readmodel.CartReadModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	c, ok := m.carts[userID]
	if !ok {
		return nil, nil
	}

	out := *c
	out.Items = make([]readmodel.CartItemReadModel, len(c.Items))
	for i, item := range c.Items {
		p := m.products[item.ProductID]
		item.Product = &p
		out.Items[i] = item
	}
	return &out, nil
}

func (m *MockCartStore) AddItem(ctx context.Context, userID string, productID int64, quantity int) (*readmodel.CartItemReadModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.AddItemCalls = append(m.AddItemCalls, AddItemCall{UserID: userID, ProductID: productID, Quantity: quantity})
	if m.Err != nil {
		return nil, m.Err
	}

	// the Postgres transaction rolls back the cart upsert on a bad product
	if _, ok := m.products[productID]; !ok {
		return nil, store.ErrReferenceNotFound
	}

	c, ok := m.carts[userID]
	if !ok {
		m.nextCart++
		now := time.Now()
		c = &readmodel.CartReadModel{ID: m.nextCart, UserID: userID, CreatedAt: &now, UpdatedAt: &now}
		m.carts[userID] = c
	}

	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			if c.Items[i].Quantity > math.MaxInt32-quantity {
				return nil, store.ErrOutOfRange
			}
			c.Items[i].Quantity += quantity
			item := c.Items[i]
			return &item, nil
		}
	}

	m.nextItem++
	item := readmodel.CartItemReadModel{ID: m.nextItem, CartID: c.ID, ProductID: productID, Quantity: quantity}
	c.Items = append(c.Items, item)
	return &item, nil
}

func (m *MockCartStore) UpdateItem(ctx context.Context, userID string, itemID int64, quantity int) (*readmodel.CartItemReadModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	c, ok := m.carts[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items[i].Quantity = quantity
			item := c.Items[i]
			return &item, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *MockCartStore) RemoveItem(ctx context.Context, userID string, itemID int64) (*readmodel.CartItemReadModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	c, ok := m.carts[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	for i, item := range c.Items {
		if item.ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return &item, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *MockCartStore) ClearCart(ctx context.Context, userID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return 0, m.Err
	}
	c, ok := m.carts[userID]
	if !ok {
		return 0, nil
	}
	n := int64(len(c.Items))
	c.Items = nil
	return n, nil
}
